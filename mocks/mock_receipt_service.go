package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"ticketscan/internal/repair"
)

// MockReceiptService is a mock implementation of service.ReceiptService.
type MockReceiptService struct {
	mock.Mock
}

func (m *MockReceiptService) Enhance(ctx context.Context, text string) (*repair.Result, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repair.Result), args.Error(1)
}

func (m *MockReceiptService) Cleanup(raw string) *repair.Result {
	args := m.Called(raw)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*repair.Result)
}
