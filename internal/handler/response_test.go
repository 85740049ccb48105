package handler_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"quotegen/internal/domain"
	"quotegen/internal/handler"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"session not found", domain.ErrSessionNotFound, http.StatusNotFound, "SESSION_NOT_FOUND"},
		{"line not found", domain.ErrLineNotFound, http.StatusNotFound, "LINE_NOT_FOUND"},
		{"term not found", domain.ErrTermNotFound, http.StatusNotFound, "TERM_NOT_FOUND"},
		{"unknown field", fmt.Errorf("%w: colour", domain.ErrUnknownField), http.StatusBadRequest, "UNKNOWN_FIELD"},
		{"input rejected", domain.ErrInputRejected, http.StatusBadRequest, "INPUT_REJECTED"},
		{"validation failed", domain.ErrValidationFailed, http.StatusUnprocessableEntity, "VALIDATION_FAILED"},
		{"in flight", domain.ErrSubmissionInFlight, http.StatusConflict, "SUBMISSION_IN_PROGRESS"},
		{"invalid transition", domain.ErrInvalidTransition, http.StatusConflict, "INVALID_STATE"},
		{"submission failed", fmt.Errorf("%w: %w", domain.ErrSubmissionFailed, errors.New("timeout")), http.StatusBadGateway, "SUBMISSION_FAILED"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code, _ := handler.MapDomainError(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, code)
		})
	}
}
