package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"quotegen/internal/domain"
	"quotegen/internal/workflow"
)

// SessionView is the externally visible state of one operator session.
type SessionView struct {
	ID           uuid.UUID           `json:"id"`
	Capabilities domain.Capabilities `json:"capabilities"`
	workflow.Session
	UpdatedAt time.Time `json:"updatedAt"`
}

// UpdateLineInput is the DTO for changing one column of a material line.
type UpdateLineInput struct {
	Field domain.LineField `json:"field" binding:"required"`
	Value string           `json:"value"`
}

// SessionService defines the operator session contract. Each session owns
// exactly one workflow state and is edited by one actor at a time.
type SessionService interface {
	Create(ctx context.Context) (*SessionView, error)
	Get(ctx context.Context, id uuid.UUID) (*SessionView, error)
	Delete(ctx context.Context, id uuid.UUID) error

	UpdateHeader(ctx context.Context, id uuid.UUID, input workflow.HeaderUpdate) (*SessionView, error)
	AddLine(ctx context.Context, id uuid.UUID) (*SessionView, error)
	UpdateLine(ctx context.Context, id uuid.UUID, index int, input UpdateLineInput) (*SessionView, error)
	RemoveLine(ctx context.Context, id uuid.UUID, index int) (*SessionView, error)
	AddTerm(ctx context.Context, id uuid.UUID) (*SessionView, error)
	SetTerm(ctx context.Context, id uuid.UUID, index int, text string) (*SessionView, error)
	RemoveTerm(ctx context.Context, id uuid.UUID, index int) (*SessionView, error)
	SetFixedTerm(ctx context.Context, id uuid.UUID, index int, included bool) (*SessionView, error)

	Review(ctx context.Context, id uuid.UUID) (*SessionView, error)
	ReturnToEdit(ctx context.Context, id uuid.UUID) (*SessionView, error)
	Submit(ctx context.Context, id uuid.UUID) (*SessionView, error)
	Export(ctx context.Context, id uuid.UUID) (*domain.InvoicePayload, error)

	EvictIdle(ctx context.Context, idleFor time.Duration) int
}

type sessionEntry struct {
	mu        sync.Mutex
	session   workflow.Session
	updatedAt time.Time
}

type sessionService struct {
	machine *workflow.Machine
	now     func() time.Time

	mu       sync.RWMutex
	sessions map[uuid.UUID]*sessionEntry
}

// NewSessionService creates a new in-memory SessionService.
func NewSessionService(machine *workflow.Machine) SessionService {
	return newSessionService(machine, time.Now)
}

// NewSessionServiceWithClock creates a SessionService with a custom time source (for testing).
func NewSessionServiceWithClock(machine *workflow.Machine, now func() time.Time) SessionService {
	return newSessionService(machine, now)
}

func newSessionService(machine *workflow.Machine, now func() time.Time) *sessionService {
	return &sessionService{
		machine:  machine,
		now:      now,
		sessions: make(map[uuid.UUID]*sessionEntry),
	}
}

func (s *sessionService) Create(_ context.Context) (*SessionView, error) {
	id := uuid.New()
	entry := &sessionEntry{
		session:   s.machine.New(),
		updatedAt: s.now(),
	}

	s.mu.Lock()
	s.sessions[id] = entry
	s.mu.Unlock()

	log.Printf("sessionService.Create: session %s created", id)
	return s.view(id, entry), nil
}

func (s *sessionService) Get(_ context.Context, id uuid.UUID) (*SessionView, error) {
	entry, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	return s.view(id, entry), nil
}

func (s *sessionService) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return domain.ErrSessionNotFound
	}
	delete(s.sessions, id)
	log.Printf("sessionService.Delete: session %s removed", id)
	return nil
}

func (s *sessionService) UpdateHeader(_ context.Context, id uuid.UUID, input workflow.HeaderUpdate) (*SessionView, error) {
	return s.apply(id, "UpdateHeader", func(ws workflow.Session) (workflow.Session, error) {
		return s.machine.UpdateHeader(ws, input)
	})
}

func (s *sessionService) AddLine(_ context.Context, id uuid.UUID) (*SessionView, error) {
	return s.apply(id, "AddLine", s.machine.AddLine)
}

func (s *sessionService) UpdateLine(_ context.Context, id uuid.UUID, index int, input UpdateLineInput) (*SessionView, error) {
	return s.apply(id, "UpdateLine", func(ws workflow.Session) (workflow.Session, error) {
		return s.machine.UpdateLine(ws, index, input.Field, input.Value)
	})
}

func (s *sessionService) RemoveLine(_ context.Context, id uuid.UUID, index int) (*SessionView, error) {
	return s.apply(id, "RemoveLine", func(ws workflow.Session) (workflow.Session, error) {
		return s.machine.RemoveLine(ws, index)
	})
}

func (s *sessionService) AddTerm(_ context.Context, id uuid.UUID) (*SessionView, error) {
	return s.apply(id, "AddTerm", s.machine.AddTerm)
}

func (s *sessionService) SetTerm(_ context.Context, id uuid.UUID, index int, text string) (*SessionView, error) {
	return s.apply(id, "SetTerm", func(ws workflow.Session) (workflow.Session, error) {
		return s.machine.SetTerm(ws, index, text)
	})
}

func (s *sessionService) RemoveTerm(_ context.Context, id uuid.UUID, index int) (*SessionView, error) {
	return s.apply(id, "RemoveTerm", func(ws workflow.Session) (workflow.Session, error) {
		return s.machine.RemoveTerm(ws, index)
	})
}

func (s *sessionService) SetFixedTerm(_ context.Context, id uuid.UUID, index int, included bool) (*SessionView, error) {
	return s.apply(id, "SetFixedTerm", func(ws workflow.Session) (workflow.Session, error) {
		return s.machine.SetFixedTerm(ws, index, included)
	})
}

func (s *sessionService) Review(_ context.Context, id uuid.UUID) (*SessionView, error) {
	return s.apply(id, "Review", s.machine.Review)
}

func (s *sessionService) ReturnToEdit(_ context.Context, id uuid.UUID) (*SessionView, error) {
	return s.apply(id, "ReturnToEdit", s.machine.ReturnToEdit)
}

// Submit sends the reviewed document. The session lock is released while the
// remote call is in flight; the submitting state turns away concurrent edits
// and a second submit. On a failed send the returned view carries the failed
// status together with an error wrapping domain.ErrSubmissionFailed.
func (s *sessionService) Submit(ctx context.Context, id uuid.UUID) (*SessionView, error) {
	entry, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	next, payload, err := s.machine.BeginSubmit(entry.session)
	if err != nil {
		entry.mu.Unlock()
		return nil, err
	}
	entry.session = next
	entry.updatedAt = s.now()
	entry.mu.Unlock()

	log.Printf("sessionService.Submit: session %s dispatching %s (attempt %d)",
		id, payload.QuotationNo, next.Submission.Attempts)
	result, sendErr := s.machine.Dispatch(ctx, payload)

	entry.mu.Lock()
	defer entry.mu.Unlock()
	entry.session = s.machine.CompleteSubmit(entry.session, result, sendErr)
	entry.updatedAt = s.now()
	view := s.view(id, entry)

	if sendErr != nil {
		log.Printf("sessionService.Submit: session %s send failed: %v", id, sendErr)
		return view, fmt.Errorf("%w: %w", domain.ErrSubmissionFailed, sendErr)
	}
	log.Printf("sessionService.Submit: session %s sent %s", id, payload.QuotationNo)
	return view, nil
}

// Export builds the payload of a reviewed session without sending it. After a
// submission the payload carries the number that was sent.
func (s *sessionService) Export(_ context.Context, id uuid.UUID) (*domain.InvoicePayload, error) {
	entry, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()

	payload, err := s.machine.Payload(entry.session)
	if err != nil {
		return nil, err
	}
	if n := entry.session.Submission.DocumentNumber; n != "" {
		payload.QuotationNo = n
	}
	return payload, nil
}

// EvictIdle removes sessions untouched for longer than idleFor. Sessions with
// a submission in flight are kept.
func (s *sessionService) EvictIdle(_ context.Context, idleFor time.Duration) int {
	cutoff := s.now().Add(-idleFor)

	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, entry := range s.sessions {
		entry.mu.Lock()
		stale := entry.updatedAt.Before(cutoff) && entry.session.State != domain.StateSubmitting
		entry.mu.Unlock()
		if stale {
			delete(s.sessions, id)
			evicted++
		}
	}
	return evicted
}

func (s *sessionService) lookup(id uuid.UUID) (*sessionEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return entry, nil
}

// apply runs one transition under the session lock. A refused input leaves the
// session as it was and is not reported to the caller.
func (s *sessionService) apply(id uuid.UUID, op string, fn func(workflow.Session) (workflow.Session, error)) (*SessionView, error) {
	entry, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	next, err := fn(entry.session)
	if err != nil {
		if errors.Is(err, domain.ErrInputRejected) {
			log.Printf("sessionService.%s: session %s input ignored: %v", op, id, err)
			return s.view(id, entry), nil
		}
		return nil, err
	}

	entry.session = next
	entry.updatedAt = s.now()
	return s.view(id, entry), nil
}

// view must be called with entry.mu held.
func (s *sessionService) view(id uuid.UUID, entry *sessionEntry) *SessionView {
	return &SessionView{
		ID:           id,
		Capabilities: s.machine.Capabilities(),
		Session:      entry.session,
		UpdatedAt:    entry.updatedAt,
	}
}
