package workflow_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"quotegen/internal/domain"
	"quotegen/internal/port"
	"quotegen/internal/pricing"
	"quotegen/internal/workflow"
	"quotegen/mocks"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func newInvoiceMachine(t *testing.T) (*workflow.Machine, *mocks.MockDocumentSubmitter, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2025, time.January, 15, 10, 30, 0, 0, time.UTC)}
	sub := new(mocks.MockDocumentSubmitter)
	m := workflow.NewMachine(workflow.Config{
		Capabilities:       domain.CapabilitiesFor(domain.DocumentKindInvoice),
		DocumentPrefix:     "INV",
		ComponentRate:      pricing.DefaultComponentRate,
		DefaultPaymentTerm: "Immediate payment",
	}, sub, workflow.WithClock(clock.Now))
	return m, sub, clock
}

func newQuotationMachine(t *testing.T) (*workflow.Machine, *mocks.MockDocumentSubmitter) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2025, time.January, 15, 10, 30, 0, 0, time.UTC)}
	sub := new(mocks.MockDocumentSubmitter)
	m := workflow.NewMachine(workflow.Config{
		Capabilities:   domain.CapabilitiesFor(domain.DocumentKindQuotation),
		DocumentPrefix: "QT",
		ComponentRate:  pricing.DefaultComponentRate,
		FixedTerms:     []string{"Delivery within 7 days", "Prices valid for 30 days"},
	}, sub, workflow.WithClock(clock.Now))
	return m, sub
}

func str(s string) *string { return &s }

// cementSession fills the reference draft: one Cement line for Acme, Pune.
func cementSession(t *testing.T, m *workflow.Machine) workflow.Session {
	t.Helper()
	s := m.New()
	var err error
	for field, value := range map[domain.LineField]string{
		domain.LineFieldDescription: "Cement",
		domain.LineFieldHSN:         "2523",
		domain.LineFieldQuantity:    "10",
		domain.LineFieldUnitPrice:   "100",
		domain.LineFieldDiscount:    "0",
		domain.LineFieldTax:         "0",
	} {
		s, err = m.UpdateLine(s, 0, field, value)
		require.NoError(t, err)
	}
	s, err = m.UpdateHeader(s, workflow.HeaderUpdate{
		CustomerName: str("Acme"),
		Place:        str("Pune"),
		GSTIN:        str("X"),
	})
	require.NoError(t, err)
	return s
}

func TestMachine_New(t *testing.T) {
	m, _, _ := newInvoiceMachine(t)

	s := m.New()

	assert.Equal(t, domain.StateEditing, s.State)
	assert.Equal(t, "202501151030", s.Draft.Date)
	require.Len(t, s.Draft.Lines, 1)
	assert.True(t, s.Draft.Lines[0].Amount.IsZero())
	assert.Equal(t, []string{""}, s.Draft.Terms.Custom)
	assert.Empty(t, s.Draft.Terms.Fixed)
	assert.Equal(t, "Immediate payment", s.Draft.PaymentTerm)
	assert.Nil(t, s.Snapshot)
	assert.Nil(t, s.Summary)
}

func TestMachine_New_QuotationHasFixedTerms(t *testing.T) {
	m, _ := newQuotationMachine(t)

	s := m.New()

	require.Len(t, s.Draft.Terms.Fixed, 2)
	assert.True(t, s.Draft.Terms.Fixed[0].Included)
}

func TestMachine_Scenario_ReviewTotals(t *testing.T) {
	m, _, _ := newInvoiceMachine(t)
	s := cementSession(t, m)

	reviewed, err := m.Review(s)

	require.NoError(t, err)
	assert.Equal(t, domain.StateReview, reviewed.State)
	require.NotNil(t, reviewed.Summary)
	assert.Equal(t, "1000.00", reviewed.Summary.UntaxedAmount.StringFixed(2))
	assert.Equal(t, "90.00", reviewed.Summary.SGST.StringFixed(2))
	assert.Equal(t, "90.00", reviewed.Summary.CGST.StringFixed(2))
	assert.Equal(t, "1180.00", reviewed.Summary.Total.StringFixed(2))
	assert.Equal(t, "One Thousand One Hundred and Eighty Rupees only", reviewed.Summary.TotalInWords)
	assert.Empty(t, reviewed.Summary.Terms)
	require.NotNil(t, reviewed.Snapshot)
	assert.Equal(t, "Acme", reviewed.Snapshot.CustomerName)
}

func TestMachine_Review_MissingCustomerName(t *testing.T) {
	m, _, _ := newInvoiceMachine(t)
	s := cementSession(t, m)
	s, err := m.UpdateHeader(s, workflow.HeaderUpdate{CustomerName: str("")})
	require.NoError(t, err)

	after, err := m.Review(s)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidationFailed)
	var verr *workflow.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Violations, 1)
	assert.Equal(t, "Customer Name", verr.Violation.Field)
	assert.Contains(t, err.Error(), "Customer Name")
	assert.Equal(t, s, after)
	assert.Equal(t, domain.StateEditing, after.State)
}

func TestMachine_Review_NegativeTotalRejected(t *testing.T) {
	m, _, _ := newInvoiceMachine(t)
	s := cementSession(t, m)
	s, err := m.UpdateLine(s, 0, domain.LineFieldDiscount, "150")
	require.NoError(t, err)

	after, err := m.Review(s)

	assert.ErrorIs(t, err, domain.ErrValidationFailed)
	assert.Equal(t, domain.StateEditing, after.State)
}

func TestMachine_Review_NotEditing(t *testing.T) {
	m, _, _ := newInvoiceMachine(t)
	s, err := m.Review(cementSession(t, m))
	require.NoError(t, err)

	_, err = m.Review(s)

	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestMachine_EditsRefusedInReview(t *testing.T) {
	m, _, _ := newInvoiceMachine(t)
	s, err := m.Review(cementSession(t, m))
	require.NoError(t, err)

	_, err = m.UpdateLine(s, 0, domain.LineFieldQuantity, "5")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	_, err = m.AddLine(s)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	_, err = m.UpdateHeader(s, workflow.HeaderUpdate{Place: str("Mumbai")})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestMachine_ReturnToEdit(t *testing.T) {
	m, _, _ := newInvoiceMachine(t)
	draft := cementSession(t, m)
	reviewed, err := m.Review(draft)
	require.NoError(t, err)

	edited, err := m.ReturnToEdit(reviewed)

	require.NoError(t, err)
	assert.Equal(t, domain.StateEditing, edited.State)
	assert.Nil(t, edited.Snapshot)
	assert.Nil(t, edited.Summary)
	assert.Equal(t, draft.Draft, edited.Draft)

	edited, err = m.UpdateLine(edited, 0, domain.LineFieldQuantity, "20")
	require.NoError(t, err)
	assert.Equal(t, "10", reviewed.Snapshot.Lines[0].Quantity, "snapshot must not change")
	assert.Equal(t, "10", reviewed.Draft.Lines[0].Quantity)
}

func TestMachine_ReturnToEdit_FromEditing(t *testing.T) {
	m, _, _ := newInvoiceMachine(t)

	_, err := m.ReturnToEdit(m.New())

	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestMachine_Submit_Success(t *testing.T) {
	m, sub, _ := newInvoiceMachine(t)
	reviewed, err := m.Review(cementSession(t, m))
	require.NoError(t, err)

	sub.On("Submit", mock.Anything, mock.MatchedBy(func(p *domain.InvoicePayload) bool {
		return p.QuotationNo == "INV150120251030" &&
			p.RecipientName == "Acme" &&
			p.RecipientAddress == "Pune" &&
			p.RecipientGSTIN == "X" &&
			p.Total.StringFixed(2) == "1180.00" &&
			len(p.Items) == 1 && p.Items[0].Discount != nil
	})).Return(&port.SubmitResult{StatusCode: 200, Body: json.RawMessage(`{"url":"https://docs/1.pdf"}`)}, nil)

	after, err := m.Submit(context.Background(), reviewed)

	require.NoError(t, err)
	assert.Equal(t, domain.StateReview, after.State)
	assert.Equal(t, domain.SubmissionSucceeded, after.Submission.Status)
	assert.JSONEq(t, `{"url":"https://docs/1.pdf"}`, string(after.Submission.Response))
	assert.Equal(t, "INV150120251030", after.Submission.DocumentNumber)
	assert.Equal(t, 1, after.Submission.Attempts)
	sub.AssertExpectations(t)
}

func TestMachine_Submit_FailureStaysInReview(t *testing.T) {
	m, sub, _ := newInvoiceMachine(t)
	reviewed, err := m.Review(cementSession(t, m))
	require.NoError(t, err)

	sub.On("Submit", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused")).Once()

	after, err := m.Submit(context.Background(), reviewed)

	assert.ErrorIs(t, err, domain.ErrSubmissionFailed)
	assert.Equal(t, domain.StateReview, after.State)
	assert.Equal(t, domain.SubmissionFailed, after.Submission.Status)
	assert.Equal(t, reviewed.Snapshot, after.Snapshot)
	assert.Equal(t, reviewed.Summary, after.Summary)

	sub.On("Submit", mock.Anything, mock.Anything).Return(&port.SubmitResult{StatusCode: 200}, nil).Once()
	retried, err := m.Submit(context.Background(), after)
	require.NoError(t, err)
	assert.Equal(t, domain.SubmissionSucceeded, retried.Submission.Status)
	assert.Equal(t, 2, retried.Submission.Attempts)
	sub.AssertExpectations(t)
}

func TestMachine_Submit_FromEditing(t *testing.T) {
	m, sub, _ := newInvoiceMachine(t)

	_, err := m.Submit(context.Background(), cementSession(t, m))

	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	sub.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}

func TestMachine_BeginSubmit_GuardsInFlight(t *testing.T) {
	m, _, _ := newInvoiceMachine(t)
	reviewed, err := m.Review(cementSession(t, m))
	require.NoError(t, err)

	pending, payload, err := m.BeginSubmit(reviewed)
	require.NoError(t, err)
	require.NotNil(t, payload)
	assert.Equal(t, domain.StateSubmitting, pending.State)

	_, _, err = m.BeginSubmit(pending)
	assert.ErrorIs(t, err, domain.ErrSubmissionInFlight)
	_, err = m.ReturnToEdit(pending)
	assert.ErrorIs(t, err, domain.ErrSubmissionInFlight)
	_, err = m.AddLine(pending)
	assert.ErrorIs(t, err, domain.ErrSubmissionInFlight)
}

func TestMachine_CompleteSubmit_IgnoresOtherStates(t *testing.T) {
	m, _, _ := newInvoiceMachine(t)
	s := m.New()

	assert.Equal(t, s, m.CompleteSubmit(s, nil, nil))
}

func TestMachine_DocumentNumberAcrossEdits(t *testing.T) {
	m, _, clock := newInvoiceMachine(t)
	reviewed, err := m.Review(cementSession(t, m))
	require.NoError(t, err)

	first, _, err := m.BeginSubmit(reviewed)
	require.NoError(t, err)
	first = m.CompleteSubmit(first, &port.SubmitResult{StatusCode: 200}, nil)

	edited, err := m.ReturnToEdit(first)
	require.NoError(t, err)
	again, err := m.Review(edited)
	require.NoError(t, err)
	sameMinute, _, err := m.BeginSubmit(again)
	require.NoError(t, err)
	assert.Equal(t, first.Submission.DocumentNumber, sameMinute.Submission.DocumentNumber)

	clock.t = clock.t.Add(2 * time.Minute)
	later, _, err := m.BeginSubmit(again)
	require.NoError(t, err)
	assert.NotEqual(t, first.Submission.DocumentNumber, later.Submission.DocumentNumber)
	assert.Equal(t, "INV150120251032", later.Submission.DocumentNumber)
}

func TestMachine_Dispatch_IgnoresCancellation(t *testing.T) {
	m, sub, _ := newInvoiceMachine(t)
	reviewed, err := m.Review(cementSession(t, m))
	require.NoError(t, err)
	_, payload, err := m.BeginSubmit(reviewed)
	require.NoError(t, err)

	sub.On("Submit", mock.MatchedBy(func(ctx context.Context) bool {
		return ctx.Err() == nil
	}), payload).Return(&port.SubmitResult{StatusCode: 200}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = m.Dispatch(ctx, payload)

	require.NoError(t, err)
	sub.AssertExpectations(t)
}
