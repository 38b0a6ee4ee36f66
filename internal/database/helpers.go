package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/thenoetrevino/taskmanager/internal/models"
)

// Storage-level errors. ErrNotFound-style failures wrap models.ErrNotFound.
var (
	// ErrDuplicate is returned when an insert or update hits a UNIQUE constraint
	ErrDuplicate = errors.New("duplicate value violates unique constraint")

	// ErrReferenced is returned when a delete hits a RESTRICT foreign key
	ErrReferenced = fmt.Errorf("row is still referenced: %w", models.ErrInUse)

	// ErrInvalidReference is returned when a write points at a missing row
	ErrInvalidReference = fmt.Errorf("referenced row does not exist: %w", models.ErrValidation)
)

// DBTX is satisfied by both *sql.DB and *sql.Tx
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// conn binds a DBTX to a dialect so repositories can write "?" placeholders
type conn struct {
	db      DBTX
	dialect Dialect
}

func (c conn) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return c.db.ExecContext(ctx, c.dialect.Rebind(query), args...)
}

func (c conn) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return c.db.QueryContext(ctx, c.dialect.Rebind(query), args...)
}

func (c conn) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return c.db.QueryRowContext(ctx, c.dialect.Rebind(query), args...)
}

// insertReturningID runs an INSERT ... RETURNING id statement
func (c conn) insertReturningID(ctx context.Context, query string, args ...any) (int, error) {
	var id int64
	if err := c.queryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, err
	}
	return int(id), nil
}

// count runs a SELECT COUNT(*) style query
func (c conn) count(ctx context.Context, query string, args ...any) (int, error) {
	var n int64
	if err := c.queryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return int(n), nil
}

// withTx executes a function within a database transaction.
// It automatically handles begin, rollback on error, and commit on success.
func withTx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			log.Printf("failed to rollback transaction: %v", err)
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// mapWriteError converts constraint violations into storage errors
func mapWriteError(err error) error {
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	case isForeignKeyViolation(err):
		return fmt.Errorf("%w: %v", ErrInvalidReference, err)
	default:
		return err
	}
}

// mapDeleteError converts a RESTRICT violation into ErrReferenced
func mapDeleteError(err error) error {
	if err != nil && isForeignKeyViolation(err) {
		return fmt.Errorf("%w: %v", ErrReferenced, err)
	}
	return err
}

// notFound wraps models.ErrNotFound with the missing entity
func notFound(entity string, id any) error {
	return fmt.Errorf("%s %v: %w", entity, id, models.ErrNotFound)
}

// requireAffected turns a zero-row UPDATE/DELETE into a not-found error
func requireAffected(res sql.Result, entity string, id int) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound(entity, id)
	}
	return nil
}

// nullInt64ToPtr converts sql.NullInt64 to *int.
// Returns nil if the value is not valid.
func nullInt64ToPtr(nv sql.NullInt64) *int {
	if nv.Valid {
		val := int(nv.Int64)
		return &val
	}
	return nil
}

// ptrToNullInt64 converts *int to sql.NullInt64 for optional foreign keys
func ptrToNullInt64(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

// NullStringToString converts sql.NullString to string.
// Returns empty string if the value is not valid.
func NullStringToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

// timestamp scans a DATETIME/TIMESTAMPTZ column regardless of how the driver
// surfaces it (time.Time from pgx, time.Time or text from sqlite).
type timestamp struct {
	Time time.Time
}

var timestampLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02T15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999 -0700 MST",
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
}

// Scan implements sql.Scanner
func (t *timestamp) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		t.Time = time.Time{}
		return nil
	case time.Time:
		t.Time = v
		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	default:
		return fmt.Errorf("cannot scan %T into timestamp", src)
	}
}

func (t *timestamp) parse(s string) error {
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", s)
}

// now returns the creation timestamp for new rows
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
