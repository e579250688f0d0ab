package repos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

// Gateway owns the single database connection and exposes the raw statement
// primitives. Typed repos are built on the same handle, or on a transaction
// handed out by InTx.
type Gateway struct {
	DB *sqlx.DB
}

func NewGateway(db *sqlx.DB) *Gateway { return &Gateway{DB: db} }

// Table is a loosely typed result set: column names plus rows of column text.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Get returns the cell at row i for the named column, or "" when absent.
func (t Table) Get(i int, col string) string {
	if i < 0 || i >= len(t.Rows) {
		return ""
	}
	for j, c := range t.Columns {
		if c == col && j < len(t.Rows[i]) {
			return t.Rows[i][j]
		}
	}
	return ""
}

// Exec runs a statement that returns no rows.
func (g *Gateway) Exec(ctx context.Context, query string, args ...any) error {
	_, err := exec(ctx, g.DB, "exec", query, args...)
	return err
}

// Count returns how many rows the query yields.
func (g *Gateway) Count(ctx context.Context, query string, args ...any) (int, error) {
	rows, err := g.DB.QueryxContext(ctx, g.DB.Rebind(query), args...)
	if err != nil {
		return 0, &StatementError{Op: "count", Err: err}
	}
	defer rows.Close()
	n := 0
	for rows.Next() {
		n++
	}
	if err := rows.Err(); err != nil {
		return 0, &StatementError{Op: "count", Err: err}
	}
	return n, nil
}

// All returns every row of the query as text, NULL rendered as "".
func (g *Gateway) All(ctx context.Context, query string, args ...any) (Table, error) {
	return queryTable(ctx, g.DB, query, args...)
}

// InTx runs fn inside one transaction; fn's error rolls it back.
func (g *Gateway) InTx(ctx context.Context, fn func(q sqlx.ExtContext) error) error {
	tx, err := g.DB.BeginTxx(ctx, nil)
	if err != nil {
		return &StatementError{Op: "begin", Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return &StatementError{Op: "commit", Err: err}
	}
	return nil
}

func (g *Gateway) Close() error { return g.DB.Close() }

func queryTable(ctx context.Context, q sqlx.ExtContext, query string, args ...any) (Table, error) {
	rows, err := q.QueryxContext(ctx, q.Rebind(query), args...)
	if err != nil {
		return Table{}, &StatementError{Op: "query", Err: err}
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return Table{}, &StatementError{Op: "query", Err: err}
	}
	t := Table{Columns: cols, Rows: [][]string{}}
	for rows.Next() {
		cells := make([]sql.NullString, len(cols))
		dest := make([]any, len(cols))
		for i := range cells {
			dest[i] = &cells[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return Table{}, &StatementError{Op: "query", Err: err}
		}
		row := make([]string, len(cols))
		for i, c := range cells {
			row[i] = c.String
		}
		t.Rows = append(t.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return Table{}, &StatementError{Op: "query", Err: err}
	}
	return t, nil
}

func get(ctx context.Context, q sqlx.ExtContext, op string, dest any, query string, args ...any) error {
	if err := sqlx.GetContext(ctx, q, dest, q.Rebind(query), args...); err != nil {
		return &StatementError{Op: op, Err: err}
	}
	return nil
}

func sel(ctx context.Context, q sqlx.ExtContext, op string, dest any, query string, args ...any) error {
	if err := sqlx.SelectContext(ctx, q, dest, q.Rebind(query), args...); err != nil {
		return &StatementError{Op: op, Err: err}
	}
	return nil
}

func exec(ctx context.Context, q sqlx.ExtContext, op, query string, args ...any) (sql.Result, error) {
	res, err := q.ExecContext(ctx, q.Rebind(query), args...)
	if err != nil {
		return nil, &StatementError{Op: op, Err: err}
	}
	return res, nil
}

func affected(res sql.Result) int64 {
	n, _ := res.RowsAffected()
	return n
}
