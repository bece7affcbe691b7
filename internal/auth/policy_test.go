package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/attendx/hrms-service/internal/domain"
	apperrors "github.com/attendx/hrms-service/pkg/util"
)

func TestCan(t *testing.T) {
	tests := []struct {
		role   domain.Role
		action Action
		want   bool
	}{
		{domain.RoleEmployee, ActionCreateAccount, false},
		{domain.RoleEmployee, ActionListAccounts, false},
		{domain.RoleEmployee, ActionViewAccount, true},
		{domain.RoleHR, ActionCreateAccount, true},
		{domain.RoleHR, ActionListAccounts, true},
		{domain.RoleSubAdmin, ActionCreateAccount, true},
		{domain.RoleSubAdmin, ActionListAccounts, true},
		{domain.RoleAdmin, ActionCreateAccount, true},
		{domain.RoleAdmin, ActionListAccounts, true},
		{domain.Role("root"), ActionListAccounts, false},
		{domain.RoleAdmin, Action("delete_account"), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Can(tt.role, tt.action), "%s/%s", tt.role, tt.action)
	}
}

func TestAuthorize(t *testing.T) {
	err := Authorize(nil, ActionListAccounts)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeUnauthorized))

	err = Authorize(&domain.Account{Role: domain.RoleEmployee}, ActionCreateAccount)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeForbidden))

	assert.NoError(t, Authorize(&domain.Account{Role: domain.RoleHR}, ActionCreateAccount))
}
