package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openshelf/catalog/internal/database"
	"github.com/openshelf/catalog/internal/entities"
)

// AuthorStore is the persistence surface the authors controller needs.
type AuthorStore interface {
	Create(author *entities.Author) error
	GetByID(id uint) (*entities.Author, error)
	List() ([]entities.Author, error)
	Delete(id uint) error
	BooksByAuthor(authorID uint) ([]entities.Book, error)
	CreateWithBook(authorName, title string, publicationYear int) (*entities.Author, *entities.Book, error)
}

// TitleIndex answers whether a book title is already in the catalog. The
// with-book create enforces the same title uniqueness as the books endpoint.
type TitleIndex interface {
	TitleExists(title string) (bool, error)
}

type AuthorsController struct {
	store  AuthorStore
	titles TitleIndex
}

func NewAuthorsController(store AuthorStore, titles TitleIndex) *AuthorsController {
	return &AuthorsController{store: store, titles: titles}
}

type createAuthorRequest struct {
	Name string `json:"name" binding:"required"`
}

type createAuthorWithBookRequest struct {
	Name            string `json:"name" binding:"required"`
	Title           string `json:"title" binding:"required"`
	PublicationYear int    `json:"publication_year" binding:"required"`
}

// List handles GET /api/authors.
func (controller *AuthorsController) List(c *gin.Context) {
	result, err := controller.store.List()
	if err != nil {
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"authors": result, "count": len(result)})
}

// Get handles GET /api/authors/:id, books included.
func (controller *AuthorsController) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	author, err := controller.store.GetByID(id)
	if errors.Is(err, database.ErrNotFound) {
		respondNotFound(c, "author")
		return
	}
	if err != nil {
		respondInternalError(c, err)
		return
	}

	authorBooks, err := controller.store.BooksByAuthor(author.ID)
	if err != nil {
		respondInternalError(c, err)
		return
	}
	author.Books = authorBooks

	c.JSON(http.StatusOK, author)
}

// Create handles POST /api/authors.
func (controller *AuthorsController) Create(c *gin.Context) {
	var req createAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFieldErrors(c, FieldErrors{"name": "name must not be empty"})
		return
	}

	author := &entities.Author{Name: req.Name}
	if err := controller.store.Create(author); err != nil {
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusCreated, author)
}

// CreateWithBook handles POST /api/authors/with-book: an author and their
// first book created in one transaction.
func (controller *AuthorsController) CreateWithBook(c *gin.Context) {
	var req createAuthorWithBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "name, title and publication_year are required")
		return
	}

	if fieldErrs := validateBookFields(req.Title, req.PublicationYear); len(fieldErrs) > 0 {
		respondFieldErrors(c, fieldErrs)
		return
	}

	exists, err := controller.titles.TitleExists(req.Title)
	if err != nil {
		respondInternalError(c, err)
		return
	}
	if exists {
		respondFieldErrors(c, FieldErrors{"title": "a book with this title already exists"})
		return
	}

	author, book, err := controller.store.CreateWithBook(req.Name, req.Title, req.PublicationYear)
	if err != nil {
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"author": author, "book": book})
}

// Delete handles DELETE /api/authors/:id. The author's books go with them.
func (controller *AuthorsController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	err := controller.store.Delete(id)
	if errors.Is(err, database.ErrNotFound) {
		respondNotFound(c, "author")
		return
	}
	if err != nil {
		respondInternalError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
