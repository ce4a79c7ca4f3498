package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/openshelf/catalog/internal/database"
	"github.com/openshelf/catalog/internal/entities"
)

type healthCheck struct {
	Component string `json:"component"`
	Status    string `json:"status"`
	Detail    string `json:"detail,omitempty"`
}

type healthReport struct {
	Status  string        `json:"status"`
	Version string        `json:"version,omitempty"`
	Time    string        `json:"time"`
	Checks  []healthCheck `json:"checks"`
}

// HealthController reports whether the service can reach its database and
// whether the catalog schema is queryable.
type HealthController struct {
	db      *database.Database
	version string
}

func NewHealthController(db *database.Database, version string) *HealthController {
	return &HealthController{db: db, version: version}
}

// Status handles GET /health.
func (h *HealthController) Status(c *gin.Context) {
	checks := []healthCheck{
		h.checkConnection(),
		h.checkCatalog(),
	}

	status := "healthy"
	code := http.StatusOK
	for _, check := range checks {
		if check.Status != "ok" {
			status = "unhealthy"
			code = http.StatusServiceUnavailable
			break
		}
	}

	c.IndentedJSON(code, healthReport{
		Status:  status,
		Version: h.version,
		Time:    time.Now().Format(time.RFC3339),
		Checks:  checks,
	})
}

func (h *HealthController) checkConnection() healthCheck {
	check := healthCheck{Component: "database", Status: "ok"}
	if h.db == nil {
		check.Status = "error"
		check.Detail = "not configured"
		return check
	}

	sqlDB, err := h.db.DB.DB()
	if err == nil {
		err = sqlDB.Ping()
	}
	if err != nil {
		check.Status = "error"
		check.Detail = err.Error()
	}
	return check
}

// checkCatalog runs a cheap query against the books table, which fails
// when the schema has not been migrated.
func (h *HealthController) checkCatalog() healthCheck {
	check := healthCheck{Component: "catalog", Status: "ok"}
	if h.db == nil {
		check.Status = "error"
		check.Detail = "not configured"
		return check
	}

	var count int64
	if err := h.db.DB.Model(&entities.Book{}).Count(&count).Error; err != nil {
		check.Status = "error"
		check.Detail = err.Error()
	}
	return check
}
