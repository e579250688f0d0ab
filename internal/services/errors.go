package services

import (
	"database/sql"
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrDenied            = errors.New("access denied")
	ErrTooFar            = errors.New("store too far")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidInput      = errors.New("invalid input")

	// ErrBadCreds is a NotFound: a failed login is an expected outcome.
	ErrBadCreds = fmt.Errorf("%w: no user with that name and password", ErrNotFound)
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidInput}, args...)...)
}

// notFound maps a missing row to ErrNotFound and leaves other errors alone.
func notFound(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return notFoundMsg(what)
	}
	return err
}

func notFoundMsg(what string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, what)
}
