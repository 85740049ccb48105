package pdffile

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"quotegen/internal/config"
	"quotegen/internal/csvexport"
	"quotegen/internal/domain"
	"quotegen/internal/pdfdoc"
	"quotegen/internal/port"
)

const defaultOutputDir = "documents"

// Submitter implements port.DocumentSubmitter by rendering the payload to a
// PDF file on local disk. It stands in for the remote generation service.
type Submitter struct {
	dir      string
	renderer *pdfdoc.Renderer
}

// NewSubmitter creates a PDF file submitter from the submitter config.
func NewSubmitter(cfg *config.SubmitterConfig) *Submitter {
	dir := cfg.OutputDir
	if dir == "" {
		dir = defaultOutputDir
	}
	return &Submitter{
		dir:      dir,
		renderer: pdfdoc.NewRenderer(cfg.PDFTitle),
	}
}

func (s *Submitter) Submit(_ context.Context, payload *domain.InvoicePayload) (*port.SubmitResult, error) {
	var buf bytes.Buffer
	if err := s.renderer.Render(&buf, payload); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}
	name := csvexport.SanitizeFilename(payload.QuotationNo)
	if name == "" {
		name = "document"
	}
	path := filepath.Join(s.dir, name+".pdf")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return nil, fmt.Errorf("writing pdf: %w", err)
	}

	log.Printf("pdffile.Submit: wrote %s (%d bytes)", path, buf.Len())

	body, err := json.Marshal(map[string]interface{}{
		"file":  path,
		"bytes": buf.Len(),
	})
	if err != nil {
		return nil, err
	}
	return &port.SubmitResult{StatusCode: http.StatusOK, Body: body}, nil
}
