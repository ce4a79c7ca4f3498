package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/openshelf/catalog/internal/database"
	"github.com/openshelf/catalog/internal/database/books"
	"github.com/openshelf/catalog/internal/entities"
)

// Publication years are sanity-checked against the era of the printed book.
const earliestPublicationYear = 1450

// BookStore is the persistence surface the books controller needs.
type BookStore interface {
	Create(book *entities.Book) error
	GetByID(id uint) (*entities.Book, error)
	TitleExists(title string) (bool, error)
	AuthorExists(id uint) (bool, error)
	List(filter books.Filter) ([]entities.Book, error)
	Update(book *entities.Book) error
	Delete(id uint) error
}

type BooksController struct {
	store BookStore
}

func NewBooksController(store BookStore) *BooksController {
	return &BooksController{store: store}
}

type createBookRequest struct {
	Title           string `json:"title" binding:"required"`
	PublicationYear int    `json:"publication_year" binding:"required"`
	AuthorID        uint   `json:"author_id" binding:"required"`
}

type updateBookRequest struct {
	Title           *string `json:"title"`
	PublicationYear *int    `json:"publication_year"`
	AuthorID        *uint   `json:"author_id"`
}

// List handles GET /api/books with filter/search/ordering query params.
func (controller *BooksController) List(c *gin.Context) {
	filter := books.Filter{
		Title:      c.Query("title"),
		AuthorName: c.Query("author"),
		Search:     c.Query("search"),
		Ordering:   c.Query("ordering"),
	}
	if raw := c.Query("publication_year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			respondBadRequest(c, "publication_year must be an integer")
			return
		}
		filter.PublicationYear = year
	}

	result, err := controller.store.List(filter)
	if err != nil {
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"books": result, "count": len(result)})
}

// Get handles GET /api/books/:id.
func (controller *BooksController) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	book, err := controller.store.GetByID(id)
	if errors.Is(err, database.ErrNotFound) {
		respondNotFound(c, "book")
		return
	}
	if err != nil {
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

// Create handles POST /api/books. Title uniqueness is checked before any
// write; a duplicate is reported as a field-level validation error.
func (controller *BooksController) Create(c *gin.Context) {
	var req createBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "title, publication_year and author_id are required")
		return
	}

	if fieldErrs := validateBookFields(req.Title, req.PublicationYear); len(fieldErrs) > 0 {
		respondFieldErrors(c, fieldErrs)
		return
	}

	exists, err := controller.store.TitleExists(req.Title)
	if err != nil {
		respondInternalError(c, err)
		return
	}
	if exists {
		respondFieldErrors(c, FieldErrors{"title": "a book with this title already exists"})
		return
	}

	if ok, err := controller.store.AuthorExists(req.AuthorID); err != nil {
		respondInternalError(c, err)
		return
	} else if !ok {
		respondFieldErrors(c, FieldErrors{"author_id": "author does not exist"})
		return
	}

	book := &entities.Book{
		Title:           req.Title,
		PublicationYear: req.PublicationYear,
		AuthorID:        req.AuthorID,
	}
	if err := controller.store.Create(book); err != nil {
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusCreated, book)
}

// Update handles PUT and PATCH /api/books/:id. Absent fields keep their
// stored values.
func (controller *BooksController) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req updateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	book, err := controller.store.GetByID(id)
	if errors.Is(err, database.ErrNotFound) {
		respondNotFound(c, "book")
		return
	}
	if err != nil {
		respondInternalError(c, err)
		return
	}

	if req.Title != nil {
		book.Title = *req.Title
	}
	if req.PublicationYear != nil {
		book.PublicationYear = *req.PublicationYear
	}
	if req.AuthorID != nil {
		book.AuthorID = *req.AuthorID
	}

	if fieldErrs := validateBookFields(book.Title, book.PublicationYear); len(fieldErrs) > 0 {
		respondFieldErrors(c, fieldErrs)
		return
	}

	if req.AuthorID != nil {
		if ok, err := controller.store.AuthorExists(*req.AuthorID); err != nil {
			respondInternalError(c, err)
			return
		} else if !ok {
			respondFieldErrors(c, FieldErrors{"author_id": "author does not exist"})
			return
		}
	}

	if err := controller.store.Update(book); err != nil {
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

// Delete handles DELETE /api/books/:id.
func (controller *BooksController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	err := controller.store.Delete(id)
	if errors.Is(err, database.ErrNotFound) {
		respondNotFound(c, "book")
		return
	}
	if err != nil {
		respondInternalError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func validateBookFields(title string, publicationYear int) FieldErrors {
	errs := FieldErrors{}
	if title == "" {
		errs["title"] = "title must not be empty"
	}
	if publicationYear < earliestPublicationYear || publicationYear > time.Now().Year()+1 {
		errs["publication_year"] = "publication_year is not a plausible year"
	}
	return errs
}
