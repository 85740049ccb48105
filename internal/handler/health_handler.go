package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quotegen/internal/reference"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	catalog *reference.Catalog
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(catalog *reference.Catalog) *HealthHandler {
	return &HealthHandler{catalog: catalog}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz
func (h *HealthHandler) Readiness(c *gin.Context) {
	if h.catalog == nil || len(h.catalog.Materials) == 0 {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "reference data not loaded"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
