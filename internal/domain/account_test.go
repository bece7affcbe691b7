package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	for _, raw := range []string{"employee", "hr", "sub_admin", "admin"} {
		role, err := ParseRole(raw)
		require.NoError(t, err)
		assert.Equal(t, raw, string(role))
	}

	for _, raw := range []string{"", "Admin", "superuser", " hr"} {
		_, err := ParseRole(raw)
		assert.Error(t, err, raw)
	}
}

func TestParseStatus(t *testing.T) {
	status, err := ParseStatus("inactive")
	require.NoError(t, err)
	assert.Equal(t, AccountStatusInactive, status)

	_, err = ParseStatus("suspended")
	assert.Error(t, err)
}

func TestAccount_IsActive(t *testing.T) {
	var missing *Account
	assert.False(t, missing.IsActive())
	assert.True(t, (&Account{Status: AccountStatusActive}).IsActive())
	assert.False(t, (&Account{Status: AccountStatusInactive}).IsActive())
}
