// Package workflow drives a document through editing, review and submission.
//
// Every transition is a function of the current Session and an event that
// returns the next Session. Sessions are values; a transition never mutates
// its input.
package workflow

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"quotegen/internal/docnumber"
	"quotegen/internal/domain"
	"quotegen/internal/port"
	"quotegen/internal/pricing"
	"quotegen/internal/terms"
	"quotegen/internal/validator"
)

// Config parameterises a Machine.
type Config struct {
	Capabilities       domain.Capabilities
	DocumentPrefix     string
	ComponentRate      decimal.Decimal
	FixedTerms         []string
	DefaultPaymentTerm string
}

// Submission records the outcome of the latest submission attempt.
type Submission struct {
	Status         domain.SubmissionStatus `json:"status,omitempty"`
	DocumentNumber string                  `json:"documentNumber,omitempty"`
	Response       json.RawMessage         `json:"response,omitempty"`
	Message        string                  `json:"message,omitempty"`
	Attempts       int                     `json:"attempts"`
}

// Session is the full workflow state of one document.
type Session struct {
	State      domain.WorkflowState      `json:"state"`
	Draft      domain.DraftDocument      `json:"draft"`
	Snapshot   *domain.SubmittedDocument `json:"snapshot,omitempty"`
	Summary    *domain.ReviewSummary     `json:"summary,omitempty"`
	Submission Submission                `json:"submission"`
}

// ValidationError is returned when a draft cannot enter review.
type ValidationError struct {
	Violation  validator.Violation
	Violations []validator.Violation
}

func (e *ValidationError) Error() string { return e.Violation.Message }

func (e *ValidationError) Unwrap() error { return domain.ErrValidationFailed }

// Machine holds the rules applied by every transition. It is stateless and
// safe for concurrent use.
type Machine struct {
	cfg       Config
	calc      *pricing.Calculator
	agg       *pricing.Aggregator
	engine    *validator.Engine
	submitter port.DocumentSubmitter
	now       func() time.Time
}

// Option customises a Machine.
type Option func(*Machine)

// WithClock overrides the time source used for dates and document numbers.
func WithClock(now func() time.Time) Option {
	return func(m *Machine) { m.now = now }
}

// NewMachine creates a Machine.
func NewMachine(cfg Config, submitter port.DocumentSubmitter, opts ...Option) *Machine {
	m := &Machine{
		cfg:       cfg,
		calc:      pricing.NewCalculator(pricing.FormulaFor(cfg.Capabilities)),
		agg:       pricing.NewAggregator(cfg.ComponentRate),
		engine:    validator.NewEngine(cfg.Capabilities),
		submitter: submitter,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Capabilities returns the capability set the machine was built with.
func (m *Machine) Capabilities() domain.Capabilities {
	return m.cfg.Capabilities
}

// New returns a session in the editing state holding a fresh draft with one
// empty material line and one empty custom term row.
func (m *Machine) New() Session {
	var fixed []string
	if m.cfg.Capabilities.HasFixedTermsChecklist {
		fixed = m.cfg.FixedTerms
	}
	return Session{
		State: domain.StateEditing,
		Draft: domain.DraftDocument{
			Date:        docnumber.FormatDate(m.now()),
			Lines:       []domain.MaterialLine{m.calc.Recompute(domain.MaterialLine{})},
			Terms:       terms.NewSelection(fixed),
			PaymentTerm: m.cfg.DefaultPaymentTerm,
		},
	}
}

// Review validates the draft and, when it passes, freezes a snapshot and
// computes its summary. On failure the session is returned unchanged with a
// *ValidationError carrying the first violation.
func (m *Machine) Review(s Session) (Session, error) {
	if s.State != domain.StateEditing {
		return s, domain.ErrInvalidTransition
	}

	if vs := m.engine.Validate(&s.Draft); len(vs) > 0 {
		return s, &ValidationError{Violation: vs[0], Violations: vs}
	}

	snapshot := &domain.SubmittedDocument{
		DraftDocument: s.Draft.Clone(),
		FrozenAt:      m.now(),
	}
	summary, totals := m.summarize(snapshot)
	if totals.Total.IsNegative() {
		v := validator.Violation{
			RuleKey:   "calc.total.non_negative",
			FieldPath: "total",
			Field:     "Total",
			Message:   "Total cannot be negative.",
		}
		return s, &ValidationError{Violation: v, Violations: []validator.Violation{v}}
	}

	next := s
	next.Draft = s.Draft.Clone()
	next.State = domain.StateReview
	next.Snapshot = snapshot
	next.Summary = summary
	next.Submission = Submission{}
	return next, nil
}

// ReturnToEdit discards the snapshot and resumes editing from the draft as it
// was before review.
func (m *Machine) ReturnToEdit(s Session) (Session, error) {
	switch s.State {
	case domain.StateReview:
	case domain.StateSubmitting:
		return s, domain.ErrSubmissionInFlight
	default:
		return s, domain.ErrInvalidTransition
	}

	next := s
	next.Draft = s.Draft.Clone()
	next.State = domain.StateEditing
	next.Snapshot = nil
	next.Summary = nil
	next.Submission = Submission{}
	return next, nil
}
