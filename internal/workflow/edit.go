package workflow

import (
	"quotegen/internal/domain"
	"quotegen/internal/pricing"
)

// HeaderUpdate carries the document-level fields to change. Nil fields are
// left as they are.
type HeaderUpdate struct {
	CustomerName *string `json:"customerName"`
	Place        *string `json:"place"`
	Date         *string `json:"date"`
	GSTIN        *string `json:"gstin"`
	Surcharge    *string `json:"installationCharge"`
	PaymentTerm  *string `json:"paymentTerm"`
}

// editable returns a copy of s whose draft may be changed, or an error if the
// session is not being edited.
func editable(s Session) (Session, error) {
	switch s.State {
	case domain.StateEditing:
	case domain.StateSubmitting:
		return s, domain.ErrSubmissionInFlight
	default:
		return s, domain.ErrInvalidTransition
	}
	next := s
	next.Draft = s.Draft.Clone()
	return next, nil
}

// UpdateHeader applies u to the draft. A negative surcharge is refused with
// domain.ErrInputRejected and no field of u is applied.
func (m *Machine) UpdateHeader(s Session, u HeaderUpdate) (Session, error) {
	next, err := editable(s)
	if err != nil {
		return s, err
	}
	if u.Surcharge != nil && pricing.IsNegative(*u.Surcharge) {
		return s, domain.ErrInputRejected
	}

	d := &next.Draft
	if u.CustomerName != nil {
		d.CustomerName = *u.CustomerName
	}
	if u.Place != nil {
		d.Place = *u.Place
	}
	if u.Date != nil {
		d.Date = *u.Date
	}
	if u.GSTIN != nil {
		d.GSTIN = *u.GSTIN
	}
	if u.Surcharge != nil {
		d.Surcharge = *u.Surcharge
	}
	if u.PaymentTerm != nil {
		d.PaymentTerm = *u.PaymentTerm
	}
	return next, nil
}

// AddLine appends an empty material line.
func (m *Machine) AddLine(s Session) (Session, error) {
	next, err := editable(s)
	if err != nil {
		return s, err
	}
	next.Draft.Lines = append(next.Draft.Lines, m.calc.Recompute(domain.MaterialLine{}))
	return next, nil
}

// RemoveLine deletes the material line at idx.
func (m *Machine) RemoveLine(s Session, idx int) (Session, error) {
	next, err := editable(s)
	if err != nil {
		return s, err
	}
	if idx < 0 || idx >= len(next.Draft.Lines) {
		return s, domain.ErrLineNotFound
	}
	next.Draft.Lines = append(next.Draft.Lines[:idx], next.Draft.Lines[idx+1:]...)
	return next, nil
}

// UpdateLine sets one field of the line at idx and recomputes its amount.
// A negative number for a numeric field is refused with
// domain.ErrInputRejected and the session is returned unchanged.
func (m *Machine) UpdateLine(s Session, idx int, field domain.LineField, value string) (Session, error) {
	next, err := editable(s)
	if err != nil {
		return s, err
	}
	if idx < 0 || idx >= len(next.Draft.Lines) {
		return s, domain.ErrLineNotFound
	}
	if field.Numeric() && pricing.IsNegative(value) {
		return s, domain.ErrInputRejected
	}

	line := next.Draft.Lines[idx]
	if err := line.SetField(field, value); err != nil {
		return s, err
	}
	next.Draft.Lines[idx] = m.calc.Recompute(line)
	return next, nil
}

// AddTerm appends an empty custom term row.
func (m *Machine) AddTerm(s Session) (Session, error) {
	next, err := editable(s)
	if err != nil {
		return s, err
	}
	next.Draft.Terms.Custom = append(next.Draft.Terms.Custom, "")
	return next, nil
}

// SetTerm replaces the text of the custom term at idx. Blank text is kept.
func (m *Machine) SetTerm(s Session, idx int, text string) (Session, error) {
	next, err := editable(s)
	if err != nil {
		return s, err
	}
	if idx < 0 || idx >= len(next.Draft.Terms.Custom) {
		return s, domain.ErrTermNotFound
	}
	next.Draft.Terms.Custom[idx] = text
	return next, nil
}

// RemoveTerm deletes the custom term at idx.
func (m *Machine) RemoveTerm(s Session, idx int) (Session, error) {
	next, err := editable(s)
	if err != nil {
		return s, err
	}
	custom := next.Draft.Terms.Custom
	if idx < 0 || idx >= len(custom) {
		return s, domain.ErrTermNotFound
	}
	next.Draft.Terms.Custom = append(custom[:idx], custom[idx+1:]...)
	return next, nil
}

// SetFixedTerm includes or excludes the fixed term at idx.
func (m *Machine) SetFixedTerm(s Session, idx int, included bool) (Session, error) {
	next, err := editable(s)
	if err != nil {
		return s, err
	}
	fixed := next.Draft.Terms.Fixed
	if idx < 0 || idx >= len(fixed) {
		return s, domain.ErrTermNotFound
	}
	fixed[idx].Included = included
	return next, nil
}
