// Package books provides database operations for the book catalog,
// including the filter/search/ordering used by the list endpoints.
package books

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/openshelf/catalog/internal/database"
	"github.com/openshelf/catalog/internal/entities"
)

// Orderable columns for list queries. Anything else falls back to the
// insertion order.
var orderableFields = map[string]string{
	"title":            "books.title",
	"publication_year": "books.publication_year",
}

// Filter narrows a book listing. Title, AuthorName and PublicationYear are
// exact matches; Search is a case-insensitive substring match over title and
// author name; Ordering is "title" or "publication_year" with an optional
// "-" prefix for descending.
type Filter struct {
	Title           string
	AuthorName      string
	PublicationYear int
	Search          string
	Ordering        string
}

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new book. Title uniqueness is the caller's concern;
// use TitleExists before calling when the invariant matters.
func (r *Repository) Create(book *entities.Book) error {
	if err := r.db.Create(book).Error; err != nil {
		return fmt.Errorf("failed to create book: %w", err)
	}
	return r.db.Preload("Author").First(book, book.ID).Error
}

// GetByID retrieves a book with its author.
func (r *Repository) GetByID(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Preload("Author").First(&book, id).Error
	if err != nil {
		return nil, database.Translate(err)
	}
	return &book, nil
}

// GetByTitle retrieves a book by exact title.
func (r *Repository) GetByTitle(title string) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Preload("Author").Where("books.title = ?", title).First(&book).Error
	if err != nil {
		return nil, database.Translate(err)
	}
	return &book, nil
}

// TitleExists reports whether any book already carries the given title.
func (r *Repository) TitleExists(title string) (bool, error) {
	var count int64
	err := r.db.Model(&entities.Book{}).Where("title = ?", title).Count(&count).Error
	return count > 0, err
}

// AuthorExists reports whether an author row with the given ID is present.
func (r *Repository) AuthorExists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&entities.Author{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// List returns books matching the filter, author preloaded.
func (r *Repository) List(filter Filter) ([]entities.Book, error) {
	query := r.db.Model(&entities.Book{}).
		Joins("JOIN authors ON authors.id = books.author_id").
		Preload("Author")

	if filter.Title != "" {
		query = query.Where("books.title = ?", filter.Title)
	}
	if filter.AuthorName != "" {
		query = query.Where("authors.name = ?", filter.AuthorName)
	}
	if filter.PublicationYear != 0 {
		query = query.Where("books.publication_year = ?", filter.PublicationYear)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("LOWER(books.title) LIKE LOWER(?) OR LOWER(authors.name) LIKE LOWER(?)", pattern, pattern)
	}

	if clause, ok := orderClause(filter.Ordering); ok {
		query = query.Order(clause)
	}

	var books []entities.Book
	err := query.Find(&books).Error
	return books, err
}

// Update saves modified fields of an existing book.
func (r *Repository) Update(book *entities.Book) error {
	if err := r.db.Save(book).Error; err != nil {
		return fmt.Errorf("failed to update book: %w", err)
	}
	return r.db.Preload("Author").First(book, book.ID).Error
}

// Delete removes a book by ID.
func (r *Repository) Delete(id uint) error {
	result := r.db.Delete(&entities.Book{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return database.ErrNotFound
	}
	return nil
}

func orderClause(ordering string) (string, bool) {
	if ordering == "" {
		return "", false
	}
	direction := "ASC"
	field := ordering
	if strings.HasPrefix(ordering, "-") {
		direction = "DESC"
		field = ordering[1:]
	}
	column, ok := orderableFields[field]
	if !ok {
		return "", false
	}
	return column + " " + direction, true
}
