package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"

	"quotegen/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row of the item table.
var columns = []string{
	"Material",
	"HSN",
	"Qty",
	"Unit Price",
	"Discount %",
	"Tax %",
	"Amount",
}

// Writer wraps csv.Writer for exporting a priced document as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the item table header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteItems writes one row per payload item.
func (w *Writer) WriteItems(items []domain.PayloadItem) error {
	for i := range items {
		if err := w.csv.Write(itemToRow(&items[i])); err != nil {
			return err
		}
	}
	return nil
}

// WriteSummary writes the totals block, the amount in words and the terms
// below the item table, separated by a blank row. Labels sit in the column
// before Amount so the figures line up with the item amounts.
func (w *Writer) WriteSummary(p *domain.InvoicePayload) error {
	rows := [][]string{make([]string, len(columns))}
	if p.InstallationCharge != nil {
		rows = append(rows, summaryRow("Installation Charge", p.InstallationCharge.StringFixed(2)))
	}
	rows = append(rows,
		summaryRow("Untaxed Amount", p.UntaxedAmount.StringFixed(2)),
		summaryRow("SGST", p.SGST.StringFixed(2)),
		summaryRow("CGST", p.CGST.StringFixed(2)),
		summaryRow("Total", p.Total.StringFixed(2)),
		summaryRow("Amount in Words", p.TotalInWords),
	)
	for i, term := range p.Terms {
		label := ""
		if i == 0 {
			label = "Terms"
		}
		rows = append(rows, []string{label, term})
	}
	return w.csv.WriteAll(rows)
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// itemToRow converts a payload item to a row. Discount and tax are left
// empty for documents that do not carry them.
func itemToRow(item *domain.PayloadItem) []string {
	row := make([]string, len(columns))
	row[0] = item.Name
	row[1] = item.HSN
	row[2] = item.Qty.String()
	row[3] = item.UnitPrice.String()
	if item.Discount != nil {
		row[4] = item.Discount.String()
	}
	if item.Tax != nil {
		row[5] = item.Tax.String()
	}
	row[6] = item.Amount.StringFixed(2)
	return row
}

func summaryRow(label, value string) []string {
	row := make([]string, len(columns))
	row[len(columns)-2] = label
	row[len(columns)-1] = value
	return row
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a customer name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for Content-Disposition header.
// Format: {document_number}_{sanitized_customer_name}.csv
func BuildFilename(documentNumber, customerName string) string {
	sanitized := SanitizeFilename(customerName)
	if sanitized == "" {
		return fmt.Sprintf("%s.csv", documentNumber)
	}
	return fmt.Sprintf("%s_%s.csv", documentNumber, sanitized)
}
