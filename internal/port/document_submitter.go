package port

import (
	"context"
	"encoding/json"

	"quotegen/internal/domain"
)

// SubmitResult is the remote service's reply to a successful submission.
// Body is opaque to the core.
type SubmitResult struct {
	StatusCode int
	Body       json.RawMessage
}

// DocumentSubmitter delivers a finished payload to the document-generation service.
type DocumentSubmitter interface {
	Submit(ctx context.Context, payload *domain.InvoicePayload) (*SubmitResult, error)
}
