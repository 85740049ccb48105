// Package pdfdoc lays out a priced document as a single-page A4 PDF.
package pdfdoc

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"quotegen/internal/docnumber"
	"quotegen/internal/domain"
)

const (
	pageMargin = 15.0
	bodyWidth  = 180.0
	lineHeight = 7.0
)

// Renderer writes payloads as PDF documents under a fixed heading.
type Renderer struct {
	title string
}

// NewRenderer creates a Renderer. An empty title falls back to "INVOICE".
func NewRenderer(title string) *Renderer {
	if strings.TrimSpace(title) == "" {
		title = "INVOICE"
	}
	return &Renderer{title: title}
}

// Title returns the heading printed at the top of each document.
func (r *Renderer) Title() string {
	return r.title
}

// Render writes p to w.
func (r *Renderer) Render(w io.Writer, p *domain.InvoicePayload) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.AddPage()

	r.writeHeading(pdf, p)
	writeItems(pdf, p.Items)
	writeTotals(pdf, p)
	writeTerms(pdf, p)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("rendering pdf: %w", err)
	}
	return nil
}

func (r *Renderer) writeHeading(pdf *gofpdf.Fpdf, p *domain.InvoicePayload) {
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(bodyWidth, 10, r.title, "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(bodyWidth/2, lineHeight, "No: "+p.QuotationNo, "", 0, "L", false, 0, "")
	pdf.CellFormat(bodyWidth/2, lineHeight, "Date: "+displayDate(p.Date), "", 1, "R", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(bodyWidth, lineHeight, "Bill To", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(bodyWidth, lineHeight, p.RecipientName, "", 1, "L", false, 0, "")
	pdf.CellFormat(bodyWidth, lineHeight, p.RecipientAddress, "", 1, "L", false, 0, "")
	if p.RecipientGSTIN != "" {
		pdf.CellFormat(bodyWidth, lineHeight, "GSTIN: "+p.RecipientGSTIN, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

type column struct {
	title string
	width float64
	align string
	value func(*domain.PayloadItem) string
}

func itemColumns(withRates bool) []column {
	if withRates {
		return []column{
			{"Material", 52, "L", func(i *domain.PayloadItem) string { return i.Name }},
			{"HSN", 22, "L", func(i *domain.PayloadItem) string { return i.HSN }},
			{"Qty", 18, "R", func(i *domain.PayloadItem) string { return i.Qty.String() }},
			{"Unit Price", 24, "R", func(i *domain.PayloadItem) string { return i.UnitPrice.String() }},
			{"Disc %", 16, "R", func(i *domain.PayloadItem) string { return optional(i.Discount) }},
			{"Tax %", 16, "R", func(i *domain.PayloadItem) string { return optional(i.Tax) }},
			{"Amount", 32, "R", func(i *domain.PayloadItem) string { return i.Amount.StringFixed(2) }},
		}
	}
	return []column{
		{"Material", 72, "L", func(i *domain.PayloadItem) string { return i.Name }},
		{"HSN", 26, "L", func(i *domain.PayloadItem) string { return i.HSN }},
		{"Qty", 20, "R", func(i *domain.PayloadItem) string { return i.Qty.String() }},
		{"Unit Price", 30, "R", func(i *domain.PayloadItem) string { return i.UnitPrice.String() }},
		{"Amount", 32, "R", func(i *domain.PayloadItem) string { return i.Amount.StringFixed(2) }},
	}
}

func writeItems(pdf *gofpdf.Fpdf, items []domain.PayloadItem) {
	withRates := false
	for i := range items {
		if items[i].Discount != nil || items[i].Tax != nil {
			withRates = true
			break
		}
	}
	cols := itemColumns(withRates)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for _, c := range cols {
		pdf.CellFormat(c.width, lineHeight, c.title, "1", 0, c.align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for i := range items {
		for _, c := range cols {
			pdf.CellFormat(c.width, lineHeight, c.value(&items[i]), "1", 0, c.align, false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(3)
}

func writeTotals(pdf *gofpdf.Fpdf, p *domain.InvoicePayload) {
	const labelWidth, valueWidth = 148.0, 32.0
	row := func(label, value string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 10)
		pdf.CellFormat(labelWidth, lineHeight, label, "", 0, "R", false, 0, "")
		pdf.CellFormat(valueWidth, lineHeight, value, "", 1, "R", false, 0, "")
	}

	if p.InstallationCharge != nil {
		row("Installation Charge", p.InstallationCharge.StringFixed(2), false)
	}
	row("Untaxed Amount", p.UntaxedAmount.StringFixed(2), false)
	row("SGST", p.SGST.StringFixed(2), false)
	row("CGST", p.CGST.StringFixed(2), false)
	row("Total", p.Total.StringFixed(2), true)
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(bodyWidth, lineHeight, "Amount in words: "+p.TotalInWords, "", "L", false)
	pdf.Ln(3)
}

func writeTerms(pdf *gofpdf.Fpdf, p *domain.InvoicePayload) {
	if len(p.Terms) > 0 {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(bodyWidth, lineHeight, "Terms & Conditions", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		for i, term := range p.Terms {
			pdf.MultiCell(bodyWidth, lineHeight-1, fmt.Sprintf("%d. %s", i+1, term), "", "L", false)
		}
		pdf.Ln(2)
	}
	if p.PaymentTerm != "" {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(30, lineHeight, "Payment:", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(bodyWidth-30, lineHeight, p.PaymentTerm, "", 1, "L", false, 0, "")
	}
}

func optional(n *domain.Number) string {
	if n == nil {
		return ""
	}
	return n.String()
}

// displayDate turns a YYYYMMDDHHmm stamp into DD/MM/YYYY. Anything else is
// printed as entered.
func displayDate(raw string) string {
	t, err := time.Parse(docnumber.DateLayout, raw)
	if err != nil {
		return raw
	}
	return t.Format("02/01/2006")
}
