package services

import (
	"context"
	"crypto/subtle"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"storefront/internal/domain"
	applog "storefront/internal/log"
	"storefront/internal/repos"
	"storefront/internal/validate"
)

// DefaultSessionTTL is how long an idle HTTP session stays valid.
const DefaultSessionTTL = 24 * time.Hour

type AuthService struct {
	Users *repos.UserRepo
	// HashCost is the bcrypt cost for new hashes; zero means bcrypt.DefaultCost.
	HashCost int
	// SessionTTL is the idle lifetime of a session; zero means DefaultSessionTTL.
	SessionTTL time.Duration
	Now        func() time.Time
}

func NewAuthService(users *repos.UserRepo) *AuthService {
	return &AuthService{Users: users, Now: time.Now}
}

func (s *AuthService) stamp(t time.Time) string {
	return t.UTC().Format(domain.TimeLayout)
}

func (s *AuthService) hash(pw string) (string, error) {
	cost := s.HashCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(pw), cost)
	return string(h), err
}

// Register creates a customer and returns its id.
func (s *AuthService) Register(ctx context.Context, name, password string, lat, lon float64) (int64, error) {
	name, ok := validate.Name(name)
	if !ok {
		return 0, invalid("name must be 1-50 characters")
	}
	if !validate.Password(password) {
		return 0, invalid("password must be non-blank and at most 72 bytes")
	}
	if !validate.InGrid(lat) || !validate.InGrid(lon) {
		return 0, invalid("latitude and longitude must be within [0, 100]")
	}
	h, err := s.hash(password)
	if err != nil {
		return 0, err
	}
	id, err := s.Users.Create(ctx, name, h, lat, lon, domain.RoleCustomer)
	if err != nil {
		return 0, err
	}
	applog.Audit(nil, "auth.register", map[string]any{"user": id})
	return id, nil
}

// Login returns the session of the first user, by id, whose name and password
// match. Rows still holding a plaintext password are upgraded to bcrypt.
func (s *AuthService) Login(ctx context.Context, name, password string) (domain.Session, error) {
	candidates, err := s.Users.ByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return domain.Session{}, err
	}
	for _, u := range candidates {
		legacy, ok := verify(u.Hash, password)
		if !ok {
			continue
		}
		if legacy {
			if h, err := s.hash(password); err == nil {
				if err := s.Users.SetPassword(ctx, u.ID, h); err != nil {
					applog.Error(nil, "auth.rehash", err, map[string]any{"user": u.ID})
				}
			}
		}
		sess := u.Session()
		applog.Audit(nil, "auth.login.success", map[string]any{"user": u.ID, "role": string(sess.Role)})
		return sess, nil
	}
	applog.Security(nil, "auth.login.fail", map[string]any{"name": name, "candidates": len(candidates)})
	return domain.Session{}, ErrBadCreds
}

// verify reports whether pw matches stored, and whether stored was plaintext.
func verify(stored, pw string) (legacy, ok bool) {
	if strings.HasPrefix(stored, "$2") {
		return false, bcrypt.CompareHashAndPassword([]byte(stored), []byte(pw)) == nil
	}
	return true, subtle.ConstantTimeCompare([]byte(stored), []byte(pw)) == 1
}

// BindSession attaches an HTTP session id to a logged-in user.
func (s *AuthService) BindSession(ctx context.Context, sid string, userID int64) error {
	return s.Users.BindSession(ctx, sid, userID, s.stamp(s.Now()))
}

// CurrentSession resolves a session id and slides its idle window forward.
// Sessions idle for longer than the TTL are treated as logged out.
func (s *AuthService) CurrentSession(ctx context.Context, sid string) (domain.Session, error) {
	ttl := s.SessionTTL
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	now := s.Now()
	u, err := s.Users.SessionUser(ctx, sid, s.stamp(now.Add(-ttl)))
	if err != nil {
		return domain.Session{}, notFound(err, "session")
	}
	if err := s.Users.TouchSession(ctx, sid, s.stamp(now)); err != nil {
		return domain.Session{}, err
	}
	return u.Session(), nil
}

// Refresh reloads a user's session from storage, e.g. after an admin edit.
func (s *AuthService) Refresh(ctx context.Context, userID int64) (domain.Session, error) {
	u, err := s.Users.ByID(ctx, userID)
	if err != nil {
		return domain.Session{}, notFound(err, "user")
	}
	return u.Session(), nil
}

func (s *AuthService) Logout(ctx context.Context, sid string) error {
	return s.Users.UnbindSession(ctx, sid)
}
