package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/openshelf/catalog/internal/database/books"
	"github.com/openshelf/catalog/internal/entities"
)

// adminBookRow is the flat row shape shown on the management listing.
type adminBookRow struct {
	ID              uint   `json:"id"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	PublicationYear int    `json:"publication_year"`
}

// AdminController is a thin staff-only view over the book catalog:
// one listing with the {title, author, publication_year} columns,
// filterable by publication year, searchable by title and author.
type AdminController struct {
	store BookStore
}

func NewAdminController(store BookStore) *AdminController {
	return &AdminController{store: store}
}

// ListBooks handles GET /admin/books.
func (controller *AdminController) ListBooks(c *gin.Context) {
	filter := books.Filter{
		Search:   c.Query("search"),
		Ordering: c.Query("ordering"),
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

	rows := make([]adminBookRow, 0, len(result))
	for _, book := range result {
		rows = append(rows, toAdminRow(book))
	}
	c.JSON(http.StatusOK, gin.H{"books": rows, "count": len(rows)})
}

func toAdminRow(book entities.Book) adminBookRow {
	return adminBookRow{
		ID:              book.ID,
		Title:           book.Title,
		Author:          book.Author.Name,
		PublicationYear: book.PublicationYear,
	}
}
