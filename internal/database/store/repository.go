// Package store provides database operations for products and orders.
package store

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openshelf/catalog/internal/database"
	"github.com/openshelf/catalog/internal/entities"
)

// Repository handles product and order database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new store repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateProduct persists a new product.
func (r *Repository) CreateProduct(product *entities.Product) error {
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// GetProduct retrieves a product by ID.
func (r *Repository) GetProduct(id uint) (*entities.Product, error) {
	var product entities.Product
	err := r.db.First(&product, id).Error
	if err != nil {
		return nil, database.Translate(err)
	}
	return &product, nil
}

// GetProductBySKU retrieves a product by its unique SKU.
func (r *Repository) GetProductBySKU(sku string) (*entities.Product, error) {
	var product entities.Product
	err := r.db.Where("sku = ?", sku).First(&product).Error
	if err != nil {
		return nil, database.Translate(err)
	}
	return &product, nil
}

// DeleteProduct removes a product. Orders referencing it keep their rows
// with the product reference nulled out.
func (r *Repository) DeleteProduct(id uint) error {
	result := r.db.Delete(&entities.Product{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return database.ErrNotFound
	}
	return nil
}

// CreateOrder opens a pending order for a user and product.
func (r *Repository) CreateOrder(userID, productID uint) (*entities.Order, error) {
	order := &entities.Order{
		Reference: uuid.NewString(),
		UserID:    &userID,
		ProductID: &productID,
		Status:    entities.OrderStatusPending,
	}
	if err := r.db.Create(order).Error; err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	return order, nil
}

// GetOrder retrieves an order with its product.
func (r *Repository) GetOrder(id uint) (*entities.Order, error) {
	var order entities.Order
	err := r.db.Preload("Product").First(&order, id).Error
	if err != nil {
		return nil, database.Translate(err)
	}
	return &order, nil
}

// OrdersForUser lists a user's orders, newest first.
func (r *Repository) OrdersForUser(userID uint) ([]entities.Order, error) {
	var orders []entities.Order
	err := r.db.Preload("Product").Where("user_id = ?", userID).
		Order("created_at DESC").Find(&orders).Error
	return orders, err
}

// UpdateOrderStatus moves an order to the given status. Transitions are
// not constrained.
func (r *Repository) UpdateOrderStatus(id uint, status entities.OrderStatus) (*entities.Order, error) {
	order, err := r.GetOrder(id)
	if err != nil {
		return nil, err
	}
	order.Status = status
	if err := r.db.Save(order).Error; err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	return order, nil
}
