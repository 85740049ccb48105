package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"quotegen/internal/config"
	"quotegen/internal/domain"
	"quotegen/internal/port"
)

const defaultEndpoint = "http://localhost:3001/geninvoice"

// Submitter implements port.DocumentSubmitter by POSTing the payload as JSON
// to the document-generation service.
type Submitter struct {
	endpoint string
	client   *http.Client
}

// NewSubmitter creates an HTTP submitter from the submitter config.
func NewSubmitter(cfg *config.SubmitterConfig) *Submitter {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	return newSubmitter(cfg, endpoint)
}

// NewSubmitterWithEndpoint creates a submitter pointing at a custom endpoint (for testing).
func NewSubmitterWithEndpoint(cfg *config.SubmitterConfig, endpoint string) *Submitter {
	return newSubmitter(cfg, endpoint)
}

func newSubmitter(cfg *config.SubmitterConfig, endpoint string) *Submitter {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Submitter{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

func (s *Submitter) Submit(ctx context.Context, payload *domain.InvoicePayload) (*port.SubmitResult, error) {
	bodyBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshaling payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling document service: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("document service error (status %d): %s", resp.StatusCode, truncate(string(respBody), 500))
	}

	return &port.SubmitResult{
		StatusCode: resp.StatusCode,
		Body:       opaqueBody(respBody),
	}, nil
}

// opaqueBody keeps a JSON reply as-is and wraps anything else as a JSON string.
func opaqueBody(body []byte) json.RawMessage {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil
	}
	if json.Valid(trimmed) {
		return json.RawMessage(trimmed)
	}
	quoted, err := json.Marshal(string(trimmed))
	if err != nil {
		return nil
	}
	return quoted
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
