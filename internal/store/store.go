package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound signals a missing row. Entity-specific errors wrap it.
	ErrNotFound = errors.New("not found")
	// ErrInvalid indicates a missing or malformed field.
	ErrInvalid = errors.New("invalid input")
	// ErrConstraint indicates the database rejected a write (foreign key or uniqueness).
	ErrConstraint = errors.New("constraint violation")
)

// kindError names an entity-specific failure while still matching the generic sentinel.
type kindError struct {
	msg  string
	kind error
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

// Option customises a Store.
type Option func(*Store)

// WithClock replaces the clock used to decide whether a show is past or upcoming.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// Store provides persistence backed by Postgres.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// New sets up a Store using the provided database handle.
func New(db *sql.DB, opts ...Option) *Store {
	s := &Store{db: db, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// withTx runs fn inside a transaction. The transaction commits only when fn returns nil;
// any error or panic rolls it back and the connection is released on every path.
func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	if err := fn(tx); err != nil {
		return translateError(err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", translateError(err))
	}
	tx = nil

	return nil
}

// translateError maps Postgres error codes onto the package's error taxonomy.
func translateError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case "23503", "23505":
		return fmt.Errorf("%w: %w", ErrConstraint, err)
	case "23502", "22001":
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

// assignments accumulates "column = $n" fragments for a partial UPDATE.
type assignments struct {
	cols []string
	args []any
}

func (a *assignments) add(col string, value any) {
	a.args = append(a.args, value)
	a.cols = append(a.cols, fmt.Sprintf("%s = $%d", col, len(a.args)))
}

func (a *assignments) addCast(col string, value any, typ string) {
	a.args = append(a.args, value)
	a.cols = append(a.cols, fmt.Sprintf("%s = $%d::%s", col, len(a.args), typ))
}

func (a *assignments) empty() bool {
	return len(a.cols) == 0
}

func setField[T any](a *assignments, col string, value *T) {
	if value != nil {
		a.add(col, *value)
	}
}

type requiredField struct {
	name  string
	value *string
}

// requireNonBlank rejects any present field whose value is only whitespace.
func requireNonBlank(kind error, fields ...requiredField) error {
	for _, f := range fields {
		if f.value != nil && strings.TrimSpace(*f.value) == "" {
			return fmt.Errorf("%w: %s cannot be blank", kind, f.name)
		}
	}
	return nil
}
