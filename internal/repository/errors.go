package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolationCode = "23505"

// Constraint names referenced by callers translating unique violations.
const (
	ConstraintAccountEmail    = "users_email_key"
	ConstraintDepartmentName  = "departments_name_key"
	ConstraintBootstrapMarker = "bootstrap_marker_pkey"
)

// ErrBootstrapTaken is returned when another request already created the first admin.
var ErrBootstrapTaken = errors.New("bootstrap admin already created")

// IsUniqueViolation reports whether err is a Postgres unique violation, optionally on a named constraint.
func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolationCode {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}
