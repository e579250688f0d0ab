package repos

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"storefront/internal/domain"
)

type UserRepo struct{ db sqlx.ExtContext }

func NewUserRepo(db sqlx.ExtContext) *UserRepo { return &UserRepo{db: db} }

const userCols = `userid, TRIM(name) AS name, TRIM(password) AS password, latitude, longitude, TRIM(type) AS type`

// Create inserts a user and returns the database-assigned id.
func (r *UserRepo) Create(ctx context.Context, name, hash string, lat, lon float64, role domain.Role) (int64, error) {
	var id int64
	err := get(ctx, r.db, "user.create", &id, `
		INSERT INTO users(name, password, latitude, longitude, type)
		VALUES(?, ?, ?, ?, ?)
		RETURNING userid`, name, hash, lat, lon, string(role))
	return id, err
}

// ByName returns every user with that exact name, oldest first.
func (r *UserRepo) ByName(ctx context.Context, name string) ([]domain.User, error) {
	var out []domain.User
	err := sel(ctx, r.db, "user.by_name", &out,
		`SELECT `+userCols+` FROM users WHERE TRIM(name) = ? ORDER BY userid`, name)
	return out, err
}

func (r *UserRepo) ByID(ctx context.Context, id int64) (domain.User, error) {
	var u domain.User
	err := get(ctx, r.db, "user.by_id", &u, `SELECT `+userCols+` FROM users WHERE userid = ?`, id)
	return u, err
}

func (r *UserRepo) SetPassword(ctx context.Context, id int64, hash string) error {
	_, err := exec(ctx, r.db, "user.set_password", `UPDATE users SET password = ? WHERE userid = ?`, hash, id)
	return err
}

// userColumns maps editable field names to their columns. Column names are
// never taken from input.
var userColumns = map[string]string{
	"id":        "userid",
	"name":      "name",
	"password":  "password",
	"latitude":  "latitude",
	"longitude": "longitude",
	"type":      "type",
}

// SetField updates a single column of a user row and reports whether a row matched.
func (r *UserRepo) SetField(ctx context.Context, id int64, field string, value any) (bool, error) {
	col, ok := userColumns[field]
	if !ok {
		return false, fmt.Errorf("unknown user field %q", field)
	}
	res, err := exec(ctx, r.db, "user.set_"+field, `UPDATE users SET `+col+` = ? WHERE userid = ?`, value, id)
	if err != nil {
		return false, err
	}
	return affected(res) > 0, nil
}

// BindSession links an HTTP session id to a user. seen is a UTC timestamp in
// domain.TimeLayout.
func (r *UserRepo) BindSession(ctx context.Context, sid string, userID int64, seen string) error {
	_, err := exec(ctx, r.db, "session.bind", `
		INSERT INTO sessions(id, userid, last_seen)
		VALUES(?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET userid = excluded.userid, last_seen = excluded.last_seen`, sid, userID, seen)
	return err
}

// SessionUser resolves a session last seen at or after notBefore.
func (r *UserRepo) SessionUser(ctx context.Context, sid, notBefore string) (domain.User, error) {
	var u domain.User
	err := get(ctx, r.db, "session.user", &u, `
		SELECT u.userid, TRIM(u.name) AS name, TRIM(u.password) AS password, u.latitude, u.longitude, TRIM(u.type) AS type
		FROM sessions s
		JOIN users u ON u.userid = s.userid
		WHERE s.id = ? AND s.last_seen >= ?`, sid, notBefore)
	return u, err
}

func (r *UserRepo) TouchSession(ctx context.Context, sid, seen string) error {
	_, err := exec(ctx, r.db, "session.touch", `UPDATE sessions SET last_seen = ? WHERE id = ?`, seen, sid)
	return err
}

func (r *UserRepo) UnbindSession(ctx context.Context, sid string) error {
	_, err := exec(ctx, r.db, "session.unbind", `UPDATE sessions SET userid = NULL WHERE id = ?`, sid)
	return err
}
