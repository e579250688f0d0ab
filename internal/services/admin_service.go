package services

import (
	"context"

	"storefront/internal/domain"
	applog "storefront/internal/log"
	"storefront/internal/repos"
	"storefront/internal/validate"
)

// UserFields are the user columns an admin may edit.
var UserFields = []string{"id", "name", "password", "latitude", "longitude", "type"}

type AdminService struct {
	Auth  *AuthService
	Users *repos.UserRepo
}

func NewAdminService(auth *AuthService, users *repos.UserRepo) *AdminService {
	return &AdminService{Auth: auth, Users: users}
}

// EditUser changes one field of any user. The value is parsed for the
// field's type and passwords are hashed before storage.
func (s *AdminService) EditUser(ctx context.Context, sess domain.Session, userID int64, field, value string) error {
	if !sess.IsAdmin() {
		applog.Security(nil, "access.denied.admin.user.edit", map[string]any{"user": sess.UserID, "target": userID})
		return ErrDenied
	}
	field, ok := validate.OneOf(field, UserFields...)
	if !ok {
		return invalid("field must be one of id, name, password, latitude, longitude, type")
	}

	var v any
	switch field {
	case "id":
		id, ok := validate.ID(value)
		if !ok {
			return invalid("id must be a positive integer")
		}
		v = id
	case "name":
		n, ok := validate.Name(value)
		if !ok {
			return invalid("name must be 1-50 characters")
		}
		v = n
	case "password":
		if !validate.Password(value) {
			return invalid("password must be non-blank and at most 72 bytes")
		}
		h, err := s.Auth.hash(value)
		if err != nil {
			return err
		}
		v = h
	case "latitude", "longitude":
		f, ok := validate.Coordinate(value)
		if !ok {
			return invalid("%s must be within [0, 100]", field)
		}
		v = f
	case "type":
		r, ok := validate.OneOf(value, string(domain.RoleCustomer), string(domain.RoleManager), string(domain.RoleAdmin))
		if !ok {
			return invalid("type must be customer, manager or admin")
		}
		v = r
	}

	found, err := s.Users.SetField(ctx, userID, field, v)
	if err != nil {
		return err
	}
	if !found {
		return notFoundMsg("user")
	}
	logged := value
	if field == "password" {
		logged = "***"
	}
	applog.Audit(nil, "admin.user.edit", map[string]any{
		"user":   sess.UserID,
		"target": userID,
		"field":  field,
		"value":  logged,
	})
	return nil
}
