package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	marker := &pgconn.PgError{Code: "23505", ConstraintName: ConstraintBootstrapMarker}
	email := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: ConstraintAccountEmail})
	fk := &pgconn.PgError{Code: "23503", ConstraintName: "users_manager_id_fkey"}

	tests := []struct {
		name       string
		err        error
		constraint string
		want       bool
	}{
		{"marker by name", marker, ConstraintBootstrapMarker, true},
		{"marker any constraint", marker, "", true},
		{"marker is not email", marker, ConstraintAccountEmail, false},
		{"wrapped email", email, ConstraintAccountEmail, true},
		{"email is not marker", email, ConstraintBootstrapMarker, false},
		{"foreign key", fk, "", false},
		{"plain error", errors.New("boom"), "", false},
		{"nil", nil, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsUniqueViolation(tt.err, tt.constraint))
		})
	}
}
