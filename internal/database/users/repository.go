// Package users provides database operations for user accounts.
package users

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/openshelf/catalog/internal/database"
	"github.com/openshelf/catalog/internal/entities"
)

// Repository handles all user database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new user.
func (r *Repository) Create(user *entities.User) error {
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by ID.
func (r *Repository) GetByID(id uint) (*entities.User, error) {
	var user entities.User
	err := r.db.First(&user, id).Error
	if err != nil {
		return nil, database.Translate(err)
	}
	return &user, nil
}

// GetByEmail retrieves a user by their sign-in email.
func (r *Repository) GetByEmail(email string) (*entities.User, error) {
	var user entities.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, database.Translate(err)
	}
	return &user, nil
}

// GetByTokenHash retrieves a user by the SHA-256 hash of their API token.
func (r *Repository) GetByTokenHash(hash string) (*entities.User, error) {
	var user entities.User
	err := r.db.Where("token_hash = ?", hash).First(&user).Error
	if err != nil {
		return nil, database.Translate(err)
	}
	return &user, nil
}

// Update saves modified fields of an existing user.
func (r *Repository) Update(user *entities.User) error {
	return r.db.Save(user).Error
}

// Delete soft-deletes a user and detaches their orders. The soft delete
// keeps the row around, so the orders' user reference is nulled out
// explicitly rather than via the foreign key rule.
func (r *Repository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entities.Order{}).Where("user_id = ?", id).
			Update("user_id", nil).Error; err != nil {
			return fmt.Errorf("failed to detach orders: %w", err)
		}
		result := tx.Delete(&entities.User{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return database.ErrNotFound
		}
		return nil
	})
}
