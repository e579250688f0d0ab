package repos

import "fmt"

// ConnectionError means the database could not be reached at startup.
type ConnectionError struct {
	Driver string
	Err    error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("unable to connect to %s database: %v", e.Driver, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// StatementError wraps a failed statement: malformed SQL, constraint
// violations, or driver errors mid-session. sql.ErrNoRows stays reachable
// through errors.Is.
type StatementError struct {
	Op  string
	Err error
}

func (e *StatementError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StatementError) Unwrap() error { return e.Err }
