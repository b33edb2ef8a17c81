package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"ticketscan/internal/domain"
)

// MockLicenseRepo is a mock implementation of port.LicenseRepository.
type MockLicenseRepo struct {
	mock.Mock
}

func (m *MockLicenseRepo) CreateBatch(ctx context.Context, licenses []domain.License) error {
	args := m.Called(ctx, licenses)
	return args.Error(0)
}

func (m *MockLicenseRepo) GetByCode(ctx context.Context, code string) (*domain.License, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.License), args.Error(1)
}

func (m *MockLicenseRepo) List(ctx context.Context, offset, limit int) ([]domain.License, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.License), args.Int(1), args.Error(2)
}

func (m *MockLicenseRepo) BindDevice(ctx context.Context, code, deviceID string, usedAt time.Time) error {
	args := m.Called(ctx, code, deviceID, usedAt)
	return args.Error(0)
}
