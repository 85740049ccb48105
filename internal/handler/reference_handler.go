package handler

import (
	"github.com/gin-gonic/gin"

	"quotegen/internal/reference"
)

// ReferenceHandler serves the lookup lists used while filling in a document.
type ReferenceHandler struct {
	catalog *reference.Catalog
}

// NewReferenceHandler creates a new ReferenceHandler.
func NewReferenceHandler(catalog *reference.Catalog) *ReferenceHandler {
	return &ReferenceHandler{catalog: catalog}
}

// Get handles GET /api/v1/reference
// @Summary Get reference lists
// @Description Material names and payment-term suggestions
// @Tags reference
// @Produce json
// @Success 200 {object} Response{data=reference.Catalog} "Reference lists"
// @Router /reference [get]
func (h *ReferenceHandler) Get(c *gin.Context) {
	RespondOK(c, h.catalog)
}
