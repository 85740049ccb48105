package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"quotegen/internal/domain"
	"quotegen/internal/service"
	"quotegen/internal/workflow"
)

// MockSessionService is a mock implementation of service.SessionService.
type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) view(args mock.Arguments) (*service.SessionView, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SessionView), args.Error(1)
}

func (m *MockSessionService) Create(ctx context.Context) (*service.SessionView, error) {
	return m.view(m.Called(ctx))
}

func (m *MockSessionService) Get(ctx context.Context, id uuid.UUID) (*service.SessionView, error) {
	return m.view(m.Called(ctx, id))
}

func (m *MockSessionService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSessionService) UpdateHeader(ctx context.Context, id uuid.UUID, input workflow.HeaderUpdate) (*service.SessionView, error) {
	return m.view(m.Called(ctx, id, input))
}

func (m *MockSessionService) AddLine(ctx context.Context, id uuid.UUID) (*service.SessionView, error) {
	return m.view(m.Called(ctx, id))
}

func (m *MockSessionService) UpdateLine(ctx context.Context, id uuid.UUID, index int, input service.UpdateLineInput) (*service.SessionView, error) {
	return m.view(m.Called(ctx, id, index, input))
}

func (m *MockSessionService) RemoveLine(ctx context.Context, id uuid.UUID, index int) (*service.SessionView, error) {
	return m.view(m.Called(ctx, id, index))
}

func (m *MockSessionService) AddTerm(ctx context.Context, id uuid.UUID) (*service.SessionView, error) {
	return m.view(m.Called(ctx, id))
}

func (m *MockSessionService) SetTerm(ctx context.Context, id uuid.UUID, index int, text string) (*service.SessionView, error) {
	return m.view(m.Called(ctx, id, index, text))
}

func (m *MockSessionService) RemoveTerm(ctx context.Context, id uuid.UUID, index int) (*service.SessionView, error) {
	return m.view(m.Called(ctx, id, index))
}

func (m *MockSessionService) SetFixedTerm(ctx context.Context, id uuid.UUID, index int, included bool) (*service.SessionView, error) {
	return m.view(m.Called(ctx, id, index, included))
}

func (m *MockSessionService) Review(ctx context.Context, id uuid.UUID) (*service.SessionView, error) {
	return m.view(m.Called(ctx, id))
}

func (m *MockSessionService) ReturnToEdit(ctx context.Context, id uuid.UUID) (*service.SessionView, error) {
	return m.view(m.Called(ctx, id))
}

func (m *MockSessionService) Submit(ctx context.Context, id uuid.UUID) (*service.SessionView, error) {
	return m.view(m.Called(ctx, id))
}

func (m *MockSessionService) Export(ctx context.Context, id uuid.UUID) (*domain.InvoicePayload, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InvoicePayload), args.Error(1)
}

func (m *MockSessionService) EvictIdle(ctx context.Context, idleFor time.Duration) int {
	args := m.Called(ctx, idleFor)
	return args.Int(0)
}
