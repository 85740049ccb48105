package workflow

import (
	"context"
	"fmt"
	"strings"

	"quotegen/internal/docnumber"
	"quotegen/internal/domain"
	"quotegen/internal/port"
	"quotegen/internal/pricing"
)

// BeginSubmit moves a reviewed session into the submitting state and builds
// a fresh payload for it. A session already submitting is refused with
// domain.ErrSubmissionInFlight.
func (m *Machine) BeginSubmit(s Session) (Session, *domain.InvoicePayload, error) {
	switch s.State {
	case domain.StateReview:
	case domain.StateSubmitting:
		return s, nil, domain.ErrSubmissionInFlight
	default:
		return s, nil, domain.ErrInvalidTransition
	}

	number := docnumber.Generate(m.now(), m.cfg.DocumentPrefix)
	payload := m.buildPayload(s.Snapshot, s.Summary, number)

	next := s
	next.State = domain.StateSubmitting
	next.Submission = Submission{
		DocumentNumber: number,
		Attempts:       s.Submission.Attempts + 1,
	}
	return next, payload, nil
}

// Dispatch sends payload to the document service. Cancellation of ctx does
// not abort a dispatched submission; it runs until the submitter returns.
func (m *Machine) Dispatch(ctx context.Context, payload *domain.InvoicePayload) (*port.SubmitResult, error) {
	return m.submitter.Submit(context.WithoutCancel(ctx), payload)
}

// CompleteSubmit records the outcome of Dispatch and returns the session to
// review. Sessions not in the submitting state are returned unchanged.
func (m *Machine) CompleteSubmit(s Session, result *port.SubmitResult, err error) Session {
	if s.State != domain.StateSubmitting {
		return s
	}
	next := s
	next.State = domain.StateReview
	if err != nil {
		next.Submission.Status = domain.SubmissionFailed
		next.Submission.Response = nil
		next.Submission.Message = domain.ErrSubmissionFailed.Error()
		return next
	}
	next.Submission.Status = domain.SubmissionSucceeded
	next.Submission.Message = "Invoice sent successfully"
	if result != nil {
		next.Submission.Response = result.Body
	}
	return next
}

// Submit runs BeginSubmit, Dispatch and CompleteSubmit in sequence. A remote
// failure leaves the session in review and is reported wrapped in
// domain.ErrSubmissionFailed.
func (m *Machine) Submit(ctx context.Context, s Session) (Session, error) {
	pending, payload, err := m.BeginSubmit(s)
	if err != nil {
		return s, err
	}
	result, sendErr := m.Dispatch(ctx, payload)
	next := m.CompleteSubmit(pending, result, sendErr)
	if sendErr != nil {
		return next, fmt.Errorf("%w: %w", domain.ErrSubmissionFailed, sendErr)
	}
	return next, nil
}

// Payload builds the payload a submission of s would send, without changing
// state. The document number is generated from the current time.
func (m *Machine) Payload(s Session) (*domain.InvoicePayload, error) {
	if s.Snapshot == nil || s.Summary == nil {
		return nil, domain.ErrInvalidTransition
	}
	return m.buildPayload(s.Snapshot, s.Summary, docnumber.Generate(m.now(), m.cfg.DocumentPrefix)), nil
}

func (m *Machine) buildPayload(doc *domain.SubmittedDocument, summary *domain.ReviewSummary, number string) *domain.InvoicePayload {
	caps := m.cfg.Capabilities

	items := make([]domain.PayloadItem, len(doc.Lines))
	for i := range doc.Lines {
		line := &doc.Lines[i]
		item := domain.PayloadItem{
			Name:      line.Description,
			HSN:       line.HSN,
			Qty:       domain.NewNumber(pricing.CoerceNumericOrZero(line.Quantity)),
			UnitPrice: domain.NewNumber(pricing.CoerceNumericOrZero(line.UnitPrice)),
			Amount:    summary.LineAmounts[i],
		}
		if caps.HasDiscountTax {
			discount := domain.NewNumber(pricing.CoerceNumericOrZero(line.Discount))
			tax := domain.NewNumber(pricing.CoerceNumericOrZero(line.Tax))
			item.Discount = &discount
			item.Tax = &tax
		}
		items[i] = item
	}

	payload := &domain.InvoicePayload{
		Date:             doc.Date,
		QuotationNo:      number,
		RecipientName:    doc.CustomerName,
		RecipientAddress: doc.Place,
		Items:            items,
		UntaxedAmount:    summary.UntaxedAmount,
		SGST:             summary.SGST,
		CGST:             summary.CGST,
		Total:            summary.Total,
		TotalInWords:     summary.TotalInWords,
		Terms:            append([]string{}, summary.Terms...),
		PaymentTerm:      strings.TrimSpace(doc.PaymentTerm),
	}
	if caps.HasTaxID {
		payload.RecipientGSTIN = doc.GSTIN
	}
	if caps.HasSurcharge && summary.InstallationCharge != nil {
		charge := *summary.InstallationCharge
		payload.InstallationCharge = &charge
	}
	return payload
}
