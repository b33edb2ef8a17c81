package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"ticketscan/internal/service"
)

// MockAdminService is a mock implementation of service.AdminService.
type MockAdminService struct {
	mock.Mock
}

func (m *MockAdminService) Login(ctx context.Context, input service.AdminLoginInput) (*service.AdminToken, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AdminToken), args.Error(1)
}

func (m *MockAdminService) ValidateToken(tokenString string) (*service.AdminClaims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AdminClaims), args.Error(1)
}
