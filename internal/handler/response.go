package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"quotegen/internal/domain"
	"quotegen/internal/workflow"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound, "SESSION_NOT_FOUND", "session not found"
	case errors.Is(err, domain.ErrLineNotFound):
		return http.StatusNotFound, "LINE_NOT_FOUND", "material line not found"
	case errors.Is(err, domain.ErrTermNotFound):
		return http.StatusNotFound, "TERM_NOT_FOUND", "term not found"
	case errors.Is(err, domain.ErrUnknownField):
		return http.StatusBadRequest, "UNKNOWN_FIELD", "unknown material field; allowed: description, hsn, qty, unitPrice, discount, taxes"
	case errors.Is(err, domain.ErrInputRejected):
		return http.StatusBadRequest, "INPUT_REJECTED", "negative values are not allowed"
	case errors.Is(err, domain.ErrValidationFailed):
		return http.StatusUnprocessableEntity, "VALIDATION_FAILED", "document is incomplete"
	case errors.Is(err, domain.ErrSubmissionInFlight):
		return http.StatusConflict, "SUBMISSION_IN_PROGRESS", "a submission is already in progress"
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict, "INVALID_STATE", "action not allowed in current state"
	case errors.Is(err, domain.ErrSubmissionFailed):
		return http.StatusBadGateway, "SUBMISSION_FAILED", "failed to send invoice"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
// A failed review carries the first violation as the message and every
// violation in the details.
func HandleError(c *gin.Context, err error) {
	var verr *workflow.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusUnprocessableEntity, APIResponse{
			Success: false,
			Error: &APIError{
				Code:    "VALIDATION_FAILED",
				Message: verr.Violation.Message,
				Details: verr.Violations,
			},
		})
		return
	}

	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] request failed: %v", requestID, err)
	}
	RespondError(c, status, code, msg)
}

// parseSessionID reads the :id path parameter.
// Returns false if it is not a UUID (error response already written).
func parseSessionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid session ID")
		return uuid.Nil, false
	}
	return id, true
}

// parseIndex reads the zero-based :index path parameter.
func parseIndex(c *gin.Context) (int, bool) {
	idx, err := strconv.Atoi(c.Param("index"))
	if err != nil || idx < 0 {
		RespondError(c, http.StatusBadRequest, "INVALID_INDEX", "index must be a non-negative integer")
		return 0, false
	}
	return idx, true
}
