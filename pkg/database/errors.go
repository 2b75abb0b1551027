package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL SQLSTATE codes we classify.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeQueryCanceled       = "57014"
)

var (
	// ErrUniqueViolation is returned when an insert or update breaks a unique constraint.
	ErrUniqueViolation = errors.New("unique constraint violation")

	// ErrForeignKeyViolation is returned when a referenced row does not exist.
	ErrForeignKeyViolation = errors.New("foreign key violation")

	// ErrTimeout is returned when a statement exceeds its deadline.
	ErrTimeout = errors.New("statement timeout")
)

// DBError keeps the driver error next to the classification so callers can
// use errors.Is against the sentinels and still log the raw cause.
type DBError struct {
	Kind       error
	Constraint string
	Cause      error
}

func (e *DBError) Error() string {
	if e.Constraint != "" {
		return fmt.Sprintf("%v on %s: %v", e.Kind, e.Constraint, e.Cause)
	}
	return fmt.Sprintf("%v: %v", e.Kind, e.Cause)
}

func (e *DBError) Is(target error) bool { return errors.Is(e.Kind, target) }
func (e *DBError) Unwrap() error        { return e.Cause }

// Classify maps driver errors onto the package sentinels. Errors that are
// not constraint violations or timeouts come back unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	var dbErr *DBError
	if errors.As(err, &dbErr) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return &DBError{Kind: ErrUniqueViolation, Constraint: pgErr.ConstraintName, Cause: err}
		case codeForeignKeyViolation:
			return &DBError{Kind: ErrForeignKeyViolation, Constraint: pgErr.ConstraintName, Cause: err}
		case codeQueryCanceled:
			return &DBError{Kind: ErrTimeout, Cause: err}
		}
	}

	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) {
		return &DBError{Kind: ErrTimeout, Cause: err}
	}

	return err
}

func IsUniqueViolation(err error) bool     { return errors.Is(err, ErrUniqueViolation) }
func IsForeignKeyViolation(err error) bool { return errors.Is(err, ErrForeignKeyViolation) }
func IsTimeout(err error) bool             { return errors.Is(err, ErrTimeout) }
