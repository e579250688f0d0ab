package domain

import "strings"

type Role string

const (
	RoleCustomer Role = "customer"
	RoleManager  Role = "manager"
	RoleAdmin    Role = "admin"
)

// ParseRole normalizes a stored role; char(n) columns come back padded and
// older rows were written capitalized.
func ParseRole(s string) Role {
	return Role(strings.ToLower(strings.TrimSpace(s)))
}

type User struct {
	ID   int64   `db:"userid"`
	Name string  `db:"name"`
	Hash string  `db:"password"`
	Lat  float64 `db:"latitude"`
	Lon  float64 `db:"longitude"`
	Role string  `db:"type"`
}

// Session builds the identity handed to services after a successful login.
func (u User) Session() Session {
	return Session{
		UserID: u.ID,
		Name:   strings.TrimSpace(u.Name),
		Role:   ParseRole(u.Role),
		Lat:    u.Lat,
		Lon:    u.Lon,
	}
}
