package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"gstbook/internal/domain"
	"gstbook/internal/service"
)

// MockSettingsService is a mock implementation of service.SettingsService.
type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) Get(ctx context.Context, shop string) (*domain.ShopSettings, error) {
	args := m.Called(ctx, shop)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShopSettings), args.Error(1)
}

func (m *MockSettingsService) Upsert(ctx context.Context, shop string, input service.UpsertSettingsInput) (*domain.ShopSettings, error) {
	args := m.Called(ctx, shop, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShopSettings), args.Error(1)
}

func (m *MockSettingsService) NextInvoiceNumber(ctx context.Context, shop string) (string, error) {
	args := m.Called(ctx, shop)
	return args.String(0), args.Error(1)
}
