package mocks

import (
	"github.com/stretchr/testify/mock"

	"gstbook/internal/service"
)

// MockSessionService is a mock implementation of service.SessionService.
type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) ValidateToken(tokenString string) (*service.SessionClaims, string, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*service.SessionClaims), args.String(1), args.Error(2)
}
