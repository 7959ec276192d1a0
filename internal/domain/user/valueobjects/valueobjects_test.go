package valueobjects

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmail(t *testing.T) {
	email, err := NewEmail("  Jane.Doe@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "jane.doe@example.com", email.String())

	for _, bad := range []string{"", "no-at-sign", "a@b", "spaces in@example.com", "two@@example.com", strings.Repeat("x", 65) + "@example.com"} {
		_, err := NewEmail(bad)
		assert.ErrorIs(t, err, ErrInvalidEmail, bad)
	}
}

func TestNewRole(t *testing.T) {
	for _, valid := range []string{"admin", "staff", "customer"} {
		role, err := NewRole(valid)
		require.NoError(t, err)
		assert.Equal(t, valid, role.String())
	}

	_, err := NewRole("superuser")
	assert.Error(t, err)
}
