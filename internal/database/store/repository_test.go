package store

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
	dbPath := "./test_store_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"

	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	repo := NewRepository(db.DB)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return repo, db, cleanup
}

func createUser(t *testing.T, db *database.Database) *entities.User {
	t.Helper()
	user := &entities.User{Email: "buyer@example.com", IsActive: true}
	require.NoError(t, db.DB.Create(user).Error)
	return user
}

func TestRepository_GetProductBySKU(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	product := &entities.Product{Name: "Tote bag", SKU: "TOTE-001", PriceCents: 1500}
	require.NoError(t, repo.CreateProduct(product))

	got, err := repo.GetProductBySKU("TOTE-001")
	require.NoError(t, err)
	assert.Equal(t, product.ID, got.ID)

	_, err = repo.GetProductBySKU("MUG-001")
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestRepository_CreateOrder(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	user := createUser(t, db)
	product := &entities.Product{Name: "Tote bag", SKU: "TOTE-001", PriceCents: 1500}
	require.NoError(t, repo.CreateProduct(product))

	order, err := repo.CreateOrder(user.ID, product.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, order.Reference)
	assert.Equal(t, entities.OrderStatusPending, order.Status)

	got, err := repo.GetOrder(order.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Product)
	assert.Equal(t, "Tote bag", got.Product.Name)
}

func TestRepository_UpdateOrderStatus(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	user := createUser(t, db)
	product := &entities.Product{Name: "Tote bag", SKU: "TOTE-001", PriceCents: 1500}
	require.NoError(t, repo.CreateProduct(product))

	order, err := repo.CreateOrder(user.ID, product.ID)
	require.NoError(t, err)

	// Transitions are unconstrained: pending straight to delivered is fine.
	updated, err := repo.UpdateOrderStatus(order.ID, entities.OrderStatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, entities.OrderStatusDelivered, updated.Status)
}

func TestRepository_DeleteProduct_NullsOrderReference(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	user := createUser(t, db)
	product := &entities.Product{Name: "Tote bag", SKU: "TOTE-001", PriceCents: 1500}
	require.NoError(t, repo.CreateProduct(product))

	order, err := repo.CreateOrder(user.ID, product.ID)
	require.NoError(t, err)

	require.NoError(t, repo.DeleteProduct(product.ID))

	got, err := repo.GetOrder(order.ID)
	require.NoError(t, err, "the order row must survive product deletion")
	assert.Nil(t, got.ProductID)
}

func TestRepository_OrdersForUser(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	user := createUser(t, db)
	product := &entities.Product{Name: "Tote bag", SKU: "TOTE-001", PriceCents: 1500}
	require.NoError(t, repo.CreateProduct(product))

	_, err := repo.CreateOrder(user.ID, product.ID)
	require.NoError(t, err)
	_, err = repo.CreateOrder(user.ID, product.ID)
	require.NoError(t, err)

	orders, err := repo.OrdersForUser(user.ID)
	require.NoError(t, err)
	assert.Len(t, orders, 2)
}

func TestRepository_GetOrder_NotFound(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.GetOrder(999)
	assert.ErrorIs(t, err, database.ErrNotFound)
}
