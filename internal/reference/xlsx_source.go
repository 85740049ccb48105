package reference

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"quotegen/internal/port"
)

const (
	MaterialsSheet    = "Materials"
	PaymentTermsSheet = "PaymentTerms"
)

// XLSXSource reads reference lists from the first column of the Materials
// and PaymentTerms sheets of a workbook. A missing sheet yields an empty list.
type XLSXSource struct {
	path string
}

var _ port.ReferenceSource = (*XLSXSource)(nil)

// NewXLSXSource creates a source backed by the workbook at path.
func NewXLSXSource(path string) *XLSXSource {
	return &XLSXSource{path: path}
}

func (s *XLSXSource) LoadMaterials(_ context.Context) ([]string, error) {
	return s.readColumn(MaterialsSheet)
}

func (s *XLSXSource) LoadPaymentTerms(_ context.Context) ([]string, error) {
	return s.readColumn(PaymentTermsSheet)
}

func (s *XLSXSource) readColumn(sheet string) ([]string, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("open Excel file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, nil
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}

	seen := make(map[string]bool)
	var values []string
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		v := strings.TrimSpace(row[0])
		if v == "" || seen[strings.ToLower(v)] {
			continue
		}
		seen[strings.ToLower(v)] = true
		values = append(values, v)
	}
	return values, nil
}
