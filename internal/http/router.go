package http

import (
	"github.com/gin-gonic/gin"

	"github.com/openshelf/catalog/internal/auth"
	"github.com/openshelf/catalog/internal/database"
	"github.com/openshelf/catalog/internal/database/authors"
	"github.com/openshelf/catalog/internal/database/books"
)

// RouterConfig carries the dependencies for route registration.
type RouterConfig struct {
	DB             *database.Database
	AuthService    *auth.Service
	SessionManager *auth.SessionManager
	Version        string
}

// NewRouter creates and configures the HTTP router with all endpoints.
// Listing and detail routes are public; every mutating route requires an
// authenticated caller, and the admin surface additionally requires staff.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
	}

	identity := auth.NewMiddleware(cfg.AuthService, cfg.SessionManager)
	router.Use(identity.Identify())

	healthController := NewHealthController(cfg.DB, cfg.Version)
	router.GET("/health", healthController.Status)

	authController := NewAuthController(cfg.AuthService, cfg.SessionManager)
	router.POST("/api/auth/register", authController.Register)
	router.POST("/api/auth/login", authController.Login)
	router.POST("/api/auth/logout", authController.Logout)
	router.POST("/api/auth/token", auth.RequireAuth(), authController.RegenerateToken)

	bookRepo := books.NewRepository(cfg.DB.DB)

	booksController := NewBooksController(bookRepo)
	router.GET("/api/books", booksController.List)
	router.GET("/api/books/:id", booksController.Get)
	router.POST("/api/books", auth.RequireAuth(), booksController.Create)
	router.PUT("/api/books/:id", auth.RequireAuth(), booksController.Update)
	router.PATCH("/api/books/:id", auth.RequireAuth(), booksController.Update)
	router.DELETE("/api/books/:id", auth.RequireAuth(), booksController.Delete)

	authorsController := NewAuthorsController(authors.NewRepository(cfg.DB.DB), bookRepo)
	router.GET("/api/authors", authorsController.List)
	router.GET("/api/authors/:id", authorsController.Get)
	router.POST("/api/authors", auth.RequireAuth(), authorsController.Create)
	router.POST("/api/authors/with-book", auth.RequireAuth(), authorsController.CreateWithBook)
	router.DELETE("/api/authors/:id", auth.RequireAuth(), authorsController.Delete)

	adminController := NewAdminController(bookRepo)
	admin := router.Group("/admin", auth.RequireStaff())
	admin.GET("/books", adminController.ListBooks)

	return router
}
