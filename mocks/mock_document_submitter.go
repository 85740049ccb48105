package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"quotegen/internal/domain"
	"quotegen/internal/port"
)

// MockDocumentSubmitter is a mock implementation of port.DocumentSubmitter.
type MockDocumentSubmitter struct {
	mock.Mock
}

func (m *MockDocumentSubmitter) Submit(ctx context.Context, payload *domain.InvoicePayload) (*port.SubmitResult, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.SubmitResult), args.Error(1)
}
