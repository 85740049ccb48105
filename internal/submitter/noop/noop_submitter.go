package noop

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"quotegen/internal/domain"
	"quotegen/internal/port"
)

type noopSubmitter struct{}

// NewNoopSubmitter creates a no-op DocumentSubmitter that logs payloads to stdout.
func NewNoopSubmitter() port.DocumentSubmitter {
	return &noopSubmitter{}
}

func (s *noopSubmitter) Submit(_ context.Context, payload *domain.InvoicePayload) (*port.SubmitResult, error) {
	log.Printf("[NOOP SUBMIT] %s for %s: total %s (%d items)",
		payload.QuotationNo, payload.RecipientName, payload.Total.StringFixed(2), len(payload.Items))

	body, err := json.Marshal(map[string]string{
		"status":      "logged",
		"quotationNo": payload.QuotationNo,
	})
	if err != nil {
		return nil, err
	}
	return &port.SubmitResult{StatusCode: http.StatusOK, Body: body}, nil
}
