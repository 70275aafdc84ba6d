package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/gr1d99/shopping-list-api-sub000/pkg/errors"
)

func TestUsername_Valid(t *testing.T) {
	for _, username := range []string{"gideon", "Alice", "bob99", "JaneDoe"} {
		assert.NoError(t, Username(username), username)
	}
}

func TestUsername_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		username string
	}{
		{"too short", "ab"},
		{"starts with digit", "1gideon"},
		{"starts with space", " gideon"},
		{"starts with punctuation", "-gideon"},
		{"embedded space", "gid eon"},
		{"embedded punctuation", "gid.eon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Username(tt.username)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestUsername_Reserved(t *testing.T) {
	for _, username := range []string{"admin", "Admin", "ADMIN", "root", "http", "www"} {
		err := Username(username)
		require.Error(t, err, username)
		assert.Contains(t, err.Error(), "username not allowed, please choose another")
	}
}

func TestPassword_Valid(t *testing.T) {
	for _, password := range []string{"secret1", "pa55 word", "correct horse"} {
		assert.NoError(t, Password(password), password)
	}
}

func TestPassword_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{"too short", "abc12"},
		{"leading space", " secret1"},
		{"all digits", "12345678"},
		{"all whitespace", "        "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Password(tt.password)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestPasswordsMatch(t *testing.T) {
	assert.NoError(t, PasswordsMatch("secret1", "secret1"))

	err := PasswordsMatch("secret1", "secret2")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrPasswordMismatch)
}

func TestEmail(t *testing.T) {
	for _, email := range []string{"gideon@example.com", "a.b@sub.domain.org", "Upper@Example.COM"} {
		assert.NoError(t, Email(email), email)
	}

	for _, email := range []string{"", "plain", "no@dot", "spaces in@example.com", "@example.com"} {
		err := Email(email)
		require.Error(t, err, email)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	}
}

func TestName_Valid(t *testing.T) {
	for _, name := range []string{"Groceries", "Back to school", "Hardware run"} {
		assert.NoError(t, Name("shopping list", name), name)
	}
}

func TestName_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"too short", "ab"},
		{"starts with digit", "1groceries"},
		{"starts with space", " groceries"},
		{"double space", "back  to school"},
		{"trailing space", "groceries "},
		{"tab separator", "back\tto school"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Name("shopping list", tt.value)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestName_Reserved(t *testing.T) {
	err := Name("shopping list", "admin")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shopping list name not allowed")
}

func TestIsReserved(t *testing.T) {
	assert.True(t, IsReserved("admin"))
	assert.True(t, IsReserved("HTTP"))
	assert.False(t, IsReserved("groceries"))
}
