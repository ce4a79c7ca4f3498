package users

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openshelf/catalog/internal/database"
	"github.com/openshelf/catalog/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, *database.Database, func()) {
	t.Helper()
	dbPath := "./test_users_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"

	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	repo := NewRepository(db.DB)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return repo, db, cleanup
}

func TestRepository_CreateAndGetByEmail(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	user := &entities.User{
		Email:     "reader@example.com",
		FirstName: "Ada",
		LastName:  "Reader",
		IsActive:  true,
	}
	require.NoError(t, repo.Create(user))
	require.NotZero(t, user.ID)

	got, err := repo.GetByEmail("reader@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, "Ada", got.FirstName)

	_, err = repo.GetByEmail("nobody@example.com")
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestRepository_GetByTokenHash(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	user := &entities.User{Email: "reader@example.com", TokenHash: "abc123", IsActive: true}
	require.NoError(t, repo.Create(user))

	got, err := repo.GetByTokenHash("abc123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = repo.GetByTokenHash("missing")
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestRepository_Delete_DetachesOrders(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	user := &entities.User{Email: "buyer@example.com", IsActive: true}
	require.NoError(t, repo.Create(user))

	order := &entities.Order{Reference: "ref-1", UserID: &user.ID, Status: entities.OrderStatusPending}
	require.NoError(t, db.DB.Create(order).Error)

	require.NoError(t, repo.Delete(user.ID))

	var got entities.Order
	require.NoError(t, db.DB.First(&got, order.ID).Error)
	assert.Nil(t, got.UserID, "order should lose its user reference")

	_, err := repo.GetByEmail("buyer@example.com")
	assert.ErrorIs(t, err, database.ErrNotFound)
}
