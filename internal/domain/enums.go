package domain

// DocumentKind names a preset of capabilities.
type DocumentKind string

const (
	DocumentKindInvoice   DocumentKind = "invoice"
	DocumentKindQuotation DocumentKind = "quotation"
)

// Capabilities selects which optional fields a document carries.
type Capabilities struct {
	HasDiscountTax         bool `json:"hasDiscountTax"`
	HasSurcharge           bool `json:"hasSurcharge"`
	HasFixedTermsChecklist bool `json:"hasFixedTermsChecklist"`
	HasTaxID               bool `json:"hasTaxId"`
}

// CapabilitiesFor returns the preset for a document kind. Unknown kinds get
// the invoice preset.
func CapabilitiesFor(kind DocumentKind) Capabilities {
	switch kind {
	case DocumentKindQuotation:
		return Capabilities{
			HasSurcharge:           true,
			HasFixedTermsChecklist: true,
		}
	default:
		return Capabilities{
			HasDiscountTax: true,
			HasTaxID:       true,
		}
	}
}

// LineField identifies an editable column of a material line.
type LineField string

const (
	LineFieldDescription LineField = "description"
	LineFieldHSN         LineField = "hsn"
	LineFieldQuantity    LineField = "qty"
	LineFieldUnitPrice   LineField = "unitPrice"
	LineFieldDiscount    LineField = "discount"
	LineFieldTax         LineField = "taxes"
)

// Numeric reports whether the field is a number entered as text.
func (f LineField) Numeric() bool {
	switch f {
	case LineFieldQuantity, LineFieldUnitPrice, LineFieldDiscount, LineFieldTax:
		return true
	}
	return false
}

// WorkflowState is the phase of a document in the edit/review cycle.
type WorkflowState string

const (
	StateEditing    WorkflowState = "editing"
	StateReview     WorkflowState = "review"
	StateSubmitting WorkflowState = "submitting"
)

// SubmissionStatus is the outcome of the most recent submission attempt.
type SubmissionStatus string

const (
	SubmissionNone      SubmissionStatus = ""
	SubmissionSucceeded SubmissionStatus = "succeeded"
	SubmissionFailed    SubmissionStatus = "failed"
)
