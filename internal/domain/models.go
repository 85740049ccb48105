package domain

import (
	"time"
)

// MaterialLine is a single priced row of a draft. Numeric fields hold the raw
// operator text; Amount is derived from them and is never edited directly.
type MaterialLine struct {
	Description string `json:"description"`
	HSN         string `json:"hsn"`
	Quantity    string `json:"qty"`
	UnitPrice   string `json:"unitPrice"`
	Discount    string `json:"discount"`
	Tax         string `json:"taxes"`
	Amount      Money  `json:"amount"`
}

// Field returns the raw text of the named field.
func (l *MaterialLine) Field(f LineField) (string, error) {
	switch f {
	case LineFieldDescription:
		return l.Description, nil
	case LineFieldHSN:
		return l.HSN, nil
	case LineFieldQuantity:
		return l.Quantity, nil
	case LineFieldUnitPrice:
		return l.UnitPrice, nil
	case LineFieldDiscount:
		return l.Discount, nil
	case LineFieldTax:
		return l.Tax, nil
	default:
		return "", ErrUnknownField
	}
}

// SetField stores raw text into the named field. It does not recompute Amount.
func (l *MaterialLine) SetField(f LineField, value string) error {
	switch f {
	case LineFieldDescription:
		l.Description = value
	case LineFieldHSN:
		l.HSN = value
	case LineFieldQuantity:
		l.Quantity = value
	case LineFieldUnitPrice:
		l.UnitPrice = value
	case LineFieldDiscount:
		l.Discount = value
	case LineFieldTax:
		l.Tax = value
	default:
		return ErrUnknownField
	}
	return nil
}

// FixedTerm is a predefined term the operator can include or leave out.
type FixedTerm struct {
	Text     string `json:"text"`
	Included bool   `json:"included"`
}

// TermsSelection holds the fixed checklist and the free-text custom terms.
// Blank custom rows are kept while editing.
type TermsSelection struct {
	Fixed  []FixedTerm `json:"fixed"`
	Custom []string    `json:"custom"`
}

// Clone returns a deep copy.
func (t TermsSelection) Clone() TermsSelection {
	out := TermsSelection{}
	if t.Fixed != nil {
		out.Fixed = append(make([]FixedTerm, 0, len(t.Fixed)), t.Fixed...)
	}
	if t.Custom != nil {
		out.Custom = append(make([]string, 0, len(t.Custom)), t.Custom...)
	}
	return out
}

// DraftDocument is the editable document owned by the workflow.
type DraftDocument struct {
	CustomerName string         `json:"customerName"`
	Place        string         `json:"place"`
	Date         string         `json:"date"`
	GSTIN        string         `json:"gstin"`
	Lines        []MaterialLine `json:"materials"`
	Surcharge    string         `json:"installationCharge"`
	Terms        TermsSelection `json:"terms"`
	PaymentTerm  string         `json:"paymentTerm"`
}

// Clone returns a deep copy so callers can derive a new draft without
// touching the receiver.
func (d DraftDocument) Clone() DraftDocument {
	out := d
	if d.Lines != nil {
		out.Lines = append(make([]MaterialLine, 0, len(d.Lines)), d.Lines...)
	}
	out.Terms = d.Terms.Clone()
	return out
}

// SubmittedDocument is the read-only snapshot taken when a draft enters review.
type SubmittedDocument struct {
	DraftDocument
	FrozenAt time.Time `json:"frozenAt"`
}

// ReviewSummary holds the figures computed for a frozen document.
type ReviewSummary struct {
	LineAmounts        []Money  `json:"lineAmounts"`
	InstallationCharge *Money   `json:"installationCharge,omitempty"`
	UntaxedAmount      Money    `json:"untaxedAmount"`
	SGST               Money    `json:"sgst"`
	CGST               Money    `json:"cgst"`
	Total              Money    `json:"total"`
	TotalInWords       string   `json:"totalInWords"`
	Terms              []string `json:"terms"`
}
