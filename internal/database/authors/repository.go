// Package authors provides database operations for authors, including the
// atomic author-plus-first-book create.
package authors

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/openshelf/catalog/internal/database"
	"github.com/openshelf/catalog/internal/entities"
)

// Repository handles all author database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new authors repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new author.
func (r *Repository) Create(author *entities.Author) error {
	if err := r.db.Create(author).Error; err != nil {
		return fmt.Errorf("failed to create author: %w", err)
	}
	return nil
}

// GetByID retrieves an author by ID.
func (r *Repository) GetByID(id uint) (*entities.Author, error) {
	var author entities.Author
	err := r.db.First(&author, id).Error
	if err != nil {
		return nil, database.Translate(err)
	}
	return &author, nil
}

// GetByName retrieves an author by exact name.
func (r *Repository) GetByName(name string) (*entities.Author, error) {
	var author entities.Author
	err := r.db.Where("name = ?", name).First(&author).Error
	if err != nil {
		return nil, database.Translate(err)
	}
	return &author, nil
}

// List returns all authors ordered by name.
func (r *Repository) List() ([]entities.Author, error) {
	var authors []entities.Author
	err := r.db.Order("name ASC").Find(&authors).Error
	return authors, err
}

// Update saves modified fields of an existing author.
func (r *Repository) Update(author *entities.Author) error {
	return r.db.Save(author).Error
}

// Delete removes an author. The foreign key cascade takes the author's
// books with it.
func (r *Repository) Delete(id uint) error {
	result := r.db.Delete(&entities.Author{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return database.ErrNotFound
	}
	return nil
}

// BooksByAuthor returns all books written by the given author.
func (r *Repository) BooksByAuthor(authorID uint) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Where("author_id = ?", authorID).Order("publication_year ASC").Find(&books).Error
	return books, err
}

// CreateWithBook creates an author and their first book as a single
// transaction. If either write fails nothing is persisted and the failure
// is returned with its cause.
func (r *Repository) CreateWithBook(authorName, title string, publicationYear int) (*entities.Author, *entities.Book, error) {
	author := &entities.Author{Name: authorName}
	book := &entities.Book{Title: title, PublicationYear: publicationYear}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if strings.TrimSpace(authorName) == "" {
			return errors.New("create author: name must not be empty")
		}
		if err := tx.Create(author).Error; err != nil {
			return fmt.Errorf("create author %q: %w", authorName, err)
		}
		if strings.TrimSpace(title) == "" {
			return errors.New("create book: title must not be empty")
		}
		book.AuthorID = author.ID
		if err := tx.Create(book).Error; err != nil {
			return fmt.Errorf("create book %q: %w", title, err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("author-with-book transaction failed: %w", err)
	}
	return author, book, nil
}
