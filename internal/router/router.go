package router

import (
	"github.com/gin-gonic/gin"

	"quotegen/internal/handler"
	"quotegen/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	allowedOrigins []string,
	sessionH *handler.SessionHandler,
	referenceH *handler.ReferenceHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(allowedOrigins))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	v1.GET("/reference", referenceH.Get)

	// Document sessions
	sessions := v1.Group("/sessions")
	sessions.POST("", sessionH.Create)
	sessions.GET("/:id", sessionH.Get)
	sessions.DELETE("/:id", sessionH.Delete)
	sessions.PUT("/:id/header", sessionH.UpdateHeader)

	sessions.POST("/:id/lines", sessionH.AddLine)
	sessions.PATCH("/:id/lines/:index", sessionH.UpdateLine)
	sessions.DELETE("/:id/lines/:index", sessionH.RemoveLine)

	sessions.POST("/:id/terms", sessionH.AddTerm)
	sessions.PUT("/:id/terms/:index", sessionH.SetTerm)
	sessions.DELETE("/:id/terms/:index", sessionH.RemoveTerm)
	sessions.PUT("/:id/fixed-terms/:index", sessionH.SetFixedTerm)

	// Workflow transitions
	sessions.POST("/:id/review", sessionH.Review)
	sessions.POST("/:id/edit", sessionH.ReturnToEdit)
	sessions.POST("/:id/submit", sessionH.Submit)
	sessions.GET("/:id/export/csv", sessionH.ExportCSV)
	sessions.GET("/:id/export/pdf", sessionH.ExportPDF)

	return r
}
