package config

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"quotegen/internal/domain"
	"quotegen/internal/workflow"
)

// fallbackFixedTerms is used by the checklist variant when none are configured.
var fallbackFixedTerms = []string{
	"Delivery within 7 days of order confirmation.",
	"Prices are valid for 30 days from the date of quotation.",
	"Goods once sold will not be taken back.",
}

// DocumentKind returns the configured kind, defaulting to invoice.
func (d *DocumentConfig) DocumentKind() domain.DocumentKind {
	switch domain.DocumentKind(strings.ToLower(strings.TrimSpace(d.Kind))) {
	case domain.DocumentKindQuotation:
		return domain.DocumentKindQuotation
	default:
		return domain.DocumentKindInvoice
	}
}

// Capabilities returns the preset of the configured kind with any explicit
// overrides applied.
func (d *DocumentConfig) Capabilities() domain.Capabilities {
	caps := domain.CapabilitiesFor(d.DocumentKind())
	if d.HasDiscountTax != nil {
		caps.HasDiscountTax = *d.HasDiscountTax
	}
	if d.HasSurcharge != nil {
		caps.HasSurcharge = *d.HasSurcharge
	}
	if d.HasFixedTermsChecklist != nil {
		caps.HasFixedTermsChecklist = *d.HasFixedTermsChecklist
	}
	if d.HasTaxID != nil {
		caps.HasTaxID = *d.HasTaxID
	}
	return caps
}

// DocumentPrefix returns the configured prefix, or "INV"/"QT" by kind.
func (d *DocumentConfig) DocumentPrefix() string {
	if d.Prefix != "" {
		return d.Prefix
	}
	if d.DocumentKind() == domain.DocumentKindQuotation {
		return "QT"
	}
	return "INV"
}

// Title returns the heading printed on rendered documents.
func (d *DocumentConfig) Title() string {
	if d.DocumentKind() == domain.DocumentKindQuotation {
		return "QUOTATION"
	}
	return "INVOICE"
}

// ComponentRate parses the per-component tax rate in percent.
func (d *DocumentConfig) ComponentRate() (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(strings.TrimSpace(d.TaxComponentRate))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid tax component rate %q: %w", d.TaxComponentRate, err)
	}
	if rate.IsNegative() {
		return decimal.Zero, fmt.Errorf("tax component rate must not be negative: %s", rate)
	}
	return rate, nil
}

// FixedTermList returns the configured fixed terms or the built-in list.
func (d *DocumentConfig) FixedTermList() []string {
	if len(d.FixedTerms) > 0 {
		return d.FixedTerms
	}
	return fallbackFixedTerms
}

// WorkflowConfig translates the document settings into machine parameters.
func (d *DocumentConfig) WorkflowConfig() (workflow.Config, error) {
	rate, err := d.ComponentRate()
	if err != nil {
		return workflow.Config{}, err
	}
	return workflow.Config{
		Capabilities:       d.Capabilities(),
		DocumentPrefix:     d.DocumentPrefix(),
		ComponentRate:      rate,
		FixedTerms:         d.FixedTermList(),
		DefaultPaymentTerm: d.DefaultPaymentTerm,
	}, nil
}
