package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	t.Run("hashes and verifies", func(t *testing.T) {
		hash, err := HashPassword("a-long-enough-password", 4)
		require.NoError(t, err)
		assert.NotEqual(t, "a-long-enough-password", hash)
		assert.NoError(t, CheckPassword("a-long-enough-password", hash))
	})

	t.Run("rejects short passwords", func(t *testing.T) {
		_, err := HashPassword("short", 4)
		assert.ErrorIs(t, err, ErrPasswordTooShort)
	})

	t.Run("rejects passwords over the bcrypt limit", func(t *testing.T) {
		_, err := HashPassword(strings.Repeat("x", 73), 4)
		assert.ErrorIs(t, err, ErrPasswordTooLong)
	})
}

func TestCheckPassword_WrongPassword(t *testing.T) {
	hash, err := HashPassword("a-long-enough-password", 4)
	require.NoError(t, err)

	err = CheckPassword("a-different-password", hash)
	assert.ErrorIs(t, err, ErrInvalidPassword)
}

func TestNewAPIToken(t *testing.T) {
	token, err := NewAPIToken()
	require.NoError(t, err)

	assert.Len(t, token.Plaintext, 43) // 32 random bytes base64url-encoded
	assert.Equal(t, HashToken(token.Plaintext), token.Hash)
	assert.NotEqual(t, token.Plaintext, token.Hash)

	second, err := NewAPIToken()
	require.NoError(t, err)
	assert.NotEqual(t, token.Plaintext, second.Plaintext)
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("a-long-enough-password"))
	assert.ErrorIs(t, ValidatePassword("short"), ErrPasswordTooShort)
	assert.ErrorIs(t, ValidatePassword(strings.Repeat("x", 73)), ErrPasswordTooLong)
}
