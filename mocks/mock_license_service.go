package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"ticketscan/internal/domain"
	"ticketscan/internal/service"
)

// MockLicenseService is a mock implementation of service.LicenseService.
type MockLicenseService struct {
	mock.Mock
}

func (m *MockLicenseService) Generate(ctx context.Context, input service.GenerateLicensesInput) ([]domain.License, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.License), args.Error(1)
}

func (m *MockLicenseService) Activate(ctx context.Context, input service.ActivateInput) (*service.ActivationResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ActivationResult), args.Error(1)
}

func (m *MockLicenseService) List(ctx context.Context, offset, limit int) ([]domain.LicenseView, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.LicenseView), args.Int(1), args.Error(2)
}

func (m *MockLicenseService) Export(ctx context.Context, w io.Writer) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}
