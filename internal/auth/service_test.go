package auth

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openshelf/catalog/internal/config"
	"github.com/openshelf/catalog/internal/database"
)

const testPassword = "correct horse battery staple"

func setupTestService(t *testing.T) (*Service, func()) {
	t.Helper()
	dbPath := "./test_auth_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"

	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	service := NewService(db.DB, config.Auth{BcryptCost: 4})

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return service, cleanup
}

func TestService_Register(t *testing.T) {
	service, cleanup := setupTestService(t)
	defer cleanup()

	user, err := service.Register("reader@example.com", testPassword, "Ada", "Reader")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.True(t, user.IsActive)
	assert.False(t, user.IsStaff)
	assert.Empty(t, user.TokenHash)

	t.Run("duplicate email", func(t *testing.T) {
		_, err := service.Register("reader@example.com", testPassword, "", "")
		assert.ErrorIs(t, err, ErrUserExists)
	})

	t.Run("invalid email", func(t *testing.T) {
		_, err := service.Register("not-an-email", testPassword, "", "")
		assert.ErrorIs(t, err, ErrEmailInvalid)
	})

	t.Run("missing password", func(t *testing.T) {
		_, err := service.Register("other@example.com", "", "", "")
		assert.ErrorIs(t, err, ErrPasswordRequired)
	})
}

func TestService_Authenticate(t *testing.T) {
	service, cleanup := setupTestService(t)
	defer cleanup()

	registered, err := service.Register("reader@example.com", testPassword, "", "")
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		user, err := service.Authenticate("reader@example.com", testPassword)
		require.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := service.Authenticate("reader@example.com", "not the password")
		assert.ErrorIs(t, err, ErrInvalidPassword)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := service.Authenticate("nobody@example.com", testPassword)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestService_TokenRoundTrip(t *testing.T) {
	service, cleanup := setupTestService(t)
	defer cleanup()

	user, err := service.Register("reader@example.com", testPassword, "", "")
	require.NoError(t, err)

	token, err := service.IssueToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	resolved, err := service.UserForToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)

	t.Run("reissue invalidates the old token", func(t *testing.T) {
		fresh, err := service.IssueToken(user)
		require.NoError(t, err)

		_, err = service.UserForToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)

		resolved, err := service.UserForToken(fresh)
		require.NoError(t, err)
		assert.Equal(t, user.ID, resolved.ID)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := service.UserForToken("garbage")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
