package handler

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"quotegen/internal/csvexport"
	"quotegen/internal/domain"
	"quotegen/internal/pdfdoc"
	"quotegen/internal/service"
	"quotegen/internal/workflow"
)

// SessionHandler handles document session endpoints.
type SessionHandler struct {
	sessionService service.SessionService
	renderer       *pdfdoc.Renderer
}

// NewSessionHandler creates a new SessionHandler. A nil renderer falls back to
// the default document title.
func NewSessionHandler(sessionService service.SessionService, renderer *pdfdoc.Renderer) *SessionHandler {
	if renderer == nil {
		renderer = pdfdoc.NewRenderer("")
	}
	return &SessionHandler{sessionService: sessionService, renderer: renderer}
}

// Create handles POST /api/v1/sessions
// @Summary Start a session
// @Description Start a new document session holding a fresh draft
// @Tags sessions
// @Produce json
// @Success 201 {object} Response{data=service.SessionView} "Session created"
// @Router /sessions [post]
func (h *SessionHandler) Create(c *gin.Context) {
	view, err := h.sessionService.Create(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, view)
}

// Get handles GET /api/v1/sessions/:id
// @Summary Get a session
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID (UUID)"
// @Success 200 {object} Response{data=service.SessionView} "Session state"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 404 {object} ErrorResponseBody "Session not found"
// @Router /sessions/{id} [get]
func (h *SessionHandler) Get(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}

	view, err := h.sessionService.Get(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, view)
}

// Delete handles DELETE /api/v1/sessions/:id
// @Summary Discard a session
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID (UUID)"
// @Success 200 {object} Response{data=MessageResponse} "Session deleted"
// @Failure 404 {object} ErrorResponseBody "Session not found"
// @Router /sessions/{id} [delete]
func (h *SessionHandler) Delete(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}

	if err := h.sessionService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "session deleted"})
}

// UpdateHeader handles PUT /api/v1/sessions/:id/header
// @Summary Update document header
// @Description Set customer, place, date, GSTIN, installation charge or payment term. A negative installation charge is ignored.
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID (UUID)"
// @Param request body UpdateHeaderRequest true "Fields to update"
// @Success 200 {object} Response{data=service.SessionView} "Updated session"
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Failure 409 {object} ErrorResponseBody "Session is not being edited"
// @Router /sessions/{id}/header [put]
func (h *SessionHandler) UpdateHeader(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}

	var req UpdateHeaderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	view, err := h.sessionService.UpdateHeader(c.Request.Context(), id, workflow.HeaderUpdate{
		CustomerName: req.CustomerName,
		Place:        req.Place,
		Date:         req.Date,
		GSTIN:        req.GSTIN,
		Surcharge:    req.InstallationCharge,
		PaymentTerm:  req.PaymentTerm,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, view)
}

// AddLine handles POST /api/v1/sessions/:id/lines
// @Summary Add a material line
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID (UUID)"
// @Success 200 {object} Response{data=service.SessionView} "Updated session"
// @Failure 409 {object} ErrorResponseBody "Session is not being edited"
// @Router /sessions/{id}/lines [post]
func (h *SessionHandler) AddLine(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}

	view, err := h.sessionService.AddLine(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, view)
}

// UpdateLine handles PATCH /api/v1/sessions/:id/lines/:index
// @Summary Update a material line field
// @Description Set one field of a material line and recompute its amount. Negative numbers are ignored.
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID (UUID)"
// @Param index path int true "Zero-based line index"
// @Param request body UpdateLineRequest true "Field and raw value"
// @Success 200 {object} Response{data=service.SessionView} "Updated session"
// @Failure 400 {object} ErrorResponseBody "Invalid request or unknown field"
// @Failure 404 {object} ErrorResponseBody "Line not found"
// @Router /sessions/{id}/lines/{index} [patch]
func (h *SessionHandler) UpdateLine(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}
	idx, ok := parseIndex(c)
	if !ok {
		return
	}

	var req UpdateLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	view, err := h.sessionService.UpdateLine(c.Request.Context(), id, idx, service.UpdateLineInput{
		Field: domain.LineField(req.Field),
		Value: req.Value,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, view)
}

// RemoveLine handles DELETE /api/v1/sessions/:id/lines/:index
// @Summary Remove a material line
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID (UUID)"
// @Param index path int true "Zero-based line index"
// @Success 200 {object} Response{data=service.SessionView} "Updated session"
// @Failure 404 {object} ErrorResponseBody "Line not found"
// @Router /sessions/{id}/lines/{index} [delete]
func (h *SessionHandler) RemoveLine(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}
	idx, ok := parseIndex(c)
	if !ok {
		return
	}

	view, err := h.sessionService.RemoveLine(c.Request.Context(), id, idx)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, view)
}

// AddTerm handles POST /api/v1/sessions/:id/terms
// @Summary Add a custom term row
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID (UUID)"
// @Success 200 {object} Response{data=service.SessionView} "Updated session"
// @Router /sessions/{id}/terms [post]
func (h *SessionHandler) AddTerm(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}

	view, err := h.sessionService.AddTerm(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, view)
}

// SetTerm handles PUT /api/v1/sessions/:id/terms/:index
// @Summary Set custom term text
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID (UUID)"
// @Param index path int true "Zero-based term index"
// @Param request body SetTermRequest true "Term text"
// @Success 200 {object} Response{data=service.SessionView} "Updated session"
// @Failure 404 {object} ErrorResponseBody "Term not found"
// @Router /sessions/{id}/terms/{index} [put]
func (h *SessionHandler) SetTerm(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}
	idx, ok := parseIndex(c)
	if !ok {
		return
	}

	var req SetTermRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	view, err := h.sessionService.SetTerm(c.Request.Context(), id, idx, req.Text)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, view)
}

// RemoveTerm handles DELETE /api/v1/sessions/:id/terms/:index
// @Summary Remove a custom term row
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID (UUID)"
// @Param index path int true "Zero-based term index"
// @Success 200 {object} Response{data=service.SessionView} "Updated session"
// @Failure 404 {object} ErrorResponseBody "Term not found"
// @Router /sessions/{id}/terms/{index} [delete]
func (h *SessionHandler) RemoveTerm(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}
	idx, ok := parseIndex(c)
	if !ok {
		return
	}

	view, err := h.sessionService.RemoveTerm(c.Request.Context(), id, idx)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, view)
}

// SetFixedTerm handles PUT /api/v1/sessions/:id/fixed-terms/:index
// @Summary Include or exclude a fixed term
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID (UUID)"
// @Param index path int true "Zero-based fixed term index"
// @Param request body SetFixedTermRequest true "Inclusion flag"
// @Success 200 {object} Response{data=service.SessionView} "Updated session"
// @Failure 404 {object} ErrorResponseBody "Term not found"
// @Router /sessions/{id}/fixed-terms/{index} [put]
func (h *SessionHandler) SetFixedTerm(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}
	idx, ok := parseIndex(c)
	if !ok {
		return
	}

	var req SetFixedTermRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	view, err := h.sessionService.SetFixedTerm(c.Request.Context(), id, idx, *req.Included)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, view)
}

// Review handles POST /api/v1/sessions/:id/review
// @Summary Freeze the draft for review
// @Description Validate the draft and compute totals. The first violation is returned as the error message.
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID (UUID)"
// @Success 200 {object} Response{data=service.SessionView} "Session in review"
// @Failure 409 {object} ErrorResponseBody "Session is not being edited"
// @Failure 422 {object} ErrorResponseBody "Draft is incomplete"
// @Router /sessions/{id}/review [post]
func (h *SessionHandler) Review(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}

	view, err := h.sessionService.Review(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, view)
}

// ReturnToEdit handles POST /api/v1/sessions/:id/edit
// @Summary Return to editing
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID (UUID)"
// @Success 200 {object} Response{data=service.SessionView} "Session being edited"
// @Failure 409 {object} ErrorResponseBody "Session is not in review or a submission is in progress"
// @Router /sessions/{id}/edit [post]
func (h *SessionHandler) ReturnToEdit(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}

	view, err := h.sessionService.ReturnToEdit(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, view)
}

// Submit handles POST /api/v1/sessions/:id/submit
// @Summary Send the reviewed document
// @Description Post the document to the generation service. The session stays in review either way and may be resubmitted.
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID (UUID)"
// @Success 200 {object} Response{data=service.SessionView} "Document sent"
// @Failure 409 {object} ErrorResponseBody "Session is not in review or a submission is in progress"
// @Failure 502 {object} ErrorResponseBody "Document service failed"
// @Router /sessions/{id}/submit [post]
func (h *SessionHandler) Submit(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}

	view, err := h.sessionService.Submit(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, view)
}

// ExportCSV handles GET /api/v1/sessions/:id/export/csv
// @Summary Export the reviewed document as CSV
// @Description Item table followed by totals, amount in words and terms. Available once the draft is in review.
// @Tags sessions
// @Produce text/csv
// @Param id path string true "Session ID (UUID)"
// @Success 200 {file} file "CSV file"
// @Failure 404 {object} ErrorResponseBody "Session not found"
// @Failure 409 {object} ErrorResponseBody "Session has not been reviewed"
// @Router /sessions/{id}/export/csv [get]
func (h *SessionHandler) ExportCSV(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}

	payload, err := h.sessionService.Export(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := csvexport.BuildFilename(payload.QuotationNo, payload.RecipientName)
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Status(http.StatusOK)

	if _, err := c.Writer.Write(csvexport.BOM); err != nil {
		log.Printf("sessionHandler.ExportCSV: write BOM: %v", err)
		return
	}

	w := csvexport.NewWriter(c.Writer)
	if err := w.WriteHeader(); err != nil {
		log.Printf("sessionHandler.ExportCSV: write header: %v", err)
		return
	}
	if err := w.WriteItems(payload.Items); err != nil {
		log.Printf("sessionHandler.ExportCSV: write items: %v", err)
		return
	}
	if err := w.WriteSummary(payload); err != nil {
		log.Printf("sessionHandler.ExportCSV: write summary: %v", err)
		return
	}
	w.Flush()
	if err := w.Error(); err != nil {
		log.Printf("sessionHandler.ExportCSV: flush: %v", err)
	}
}

// ExportPDF handles GET /api/v1/sessions/:id/export/pdf
// @Summary Export the reviewed document as PDF
// @Tags sessions
// @Produce application/pdf
// @Param id path string true "Session ID (UUID)"
// @Success 200 {file} file "PDF file"
// @Failure 404 {object} ErrorResponseBody "Session not found"
// @Failure 409 {object} ErrorResponseBody "Session has not been reviewed"
// @Router /sessions/{id}/export/pdf [get]
func (h *SessionHandler) ExportPDF(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}

	payload, err := h.sessionService.Export(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, payload); err != nil {
		log.Printf("sessionHandler.ExportPDF: render: %v", err)
		RespondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to render document")
		return
	}

	filename := strings.TrimSuffix(csvexport.BuildFilename(payload.QuotationNo, payload.RecipientName), ".csv") + ".pdf"
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
