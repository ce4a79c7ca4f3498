// Package libraries provides database operations for libraries and their
// librarians.
package libraries

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/openshelf/catalog/internal/database"
	"github.com/openshelf/catalog/internal/entities"
)

var (
	ErrNameTaken         = errors.New("a library with this name already exists")
	ErrLibrarianAssigned = errors.New("library already has a librarian")
)

// Repository handles all library database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new libraries repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new library. Names are unique within the catalog.
func (r *Repository) Create(name string) (*entities.Library, error) {
	var existing entities.Library
	err := r.db.Where("name = ?", name).First(&existing).Error
	if err == nil {
		return nil, ErrNameTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing library: %w", err)
	}

	library := &entities.Library{Name: name}
	if err := r.db.Create(library).Error; err != nil {
		return nil, fmt.Errorf("failed to create library: %w", err)
	}
	return library, nil
}

// GetByName retrieves a library with its books.
func (r *Repository) GetByName(name string) (*entities.Library, error) {
	var library entities.Library
	err := r.db.Preload("Books.Author").Where("name = ?", name).First(&library).Error
	if err != nil {
		return nil, database.Translate(err)
	}
	return &library, nil
}

// AddBook places a book on the library's shelves.
func (r *Repository) AddBook(libraryID, bookID uint) error {
	var library entities.Library
	if err := r.db.First(&library, libraryID).Error; err != nil {
		return database.Translate(err)
	}
	var book entities.Book
	if err := r.db.First(&book, bookID).Error; err != nil {
		return database.Translate(err)
	}
	return r.db.Model(&library).Association("Books").Append(&book)
}

// RemoveBook takes a book off the library's shelves.
func (r *Repository) RemoveBook(libraryID, bookID uint) error {
	var library entities.Library
	if err := r.db.First(&library, libraryID).Error; err != nil {
		return database.Translate(err)
	}
	var book entities.Book
	if err := r.db.First(&book, bookID).Error; err != nil {
		return database.Translate(err)
	}
	return r.db.Model(&library).Association("Books").Delete(&book)
}

// Books lists all books held by a library.
func (r *Repository) Books(libraryID uint) ([]entities.Book, error) {
	library, err := r.getByID(libraryID)
	if err != nil {
		return nil, err
	}
	var books []entities.Book
	err = r.db.Model(library).Preload("Author").Association("Books").Find(&books)
	return books, err
}

// AssignLibrarian appoints a librarian for a library. Each library has at
// most one librarian.
func (r *Repository) AssignLibrarian(libraryID uint, name string) (*entities.Librarian, error) {
	if _, err := r.getByID(libraryID); err != nil {
		return nil, err
	}

	var existing entities.Librarian
	err := r.db.Where("library_id = ?", libraryID).First(&existing).Error
	if err == nil {
		return nil, ErrLibrarianAssigned
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing librarian: %w", err)
	}

	librarian := &entities.Librarian{Name: name, LibraryID: libraryID}
	if err := r.db.Create(librarian).Error; err != nil {
		return nil, fmt.Errorf("failed to assign librarian: %w", err)
	}
	return librarian, nil
}

// LibrarianFor retrieves the librarian of a library.
func (r *Repository) LibrarianFor(libraryID uint) (*entities.Librarian, error) {
	var librarian entities.Librarian
	err := r.db.Where("library_id = ?", libraryID).First(&librarian).Error
	if err != nil {
		return nil, database.Translate(err)
	}
	return &librarian, nil
}

func (r *Repository) getByID(id uint) (*entities.Library, error) {
	var library entities.Library
	if err := r.db.First(&library, id).Error; err != nil {
		return nil, database.Translate(err)
	}
	return &library, nil
}
