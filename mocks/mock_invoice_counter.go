package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockInvoiceCounter is a mock implementation of port.InvoiceCounter.
type MockInvoiceCounter struct {
	mock.Mock
}

func (m *MockInvoiceCounter) Current(ctx context.Context, shop string) (int, error) {
	args := m.Called(ctx, shop)
	return args.Int(0), args.Error(1)
}

func (m *MockInvoiceCounter) Next(ctx context.Context, shop string) (int, error) {
	args := m.Called(ctx, shop)
	return args.Int(0), args.Error(1)
}

func (m *MockInvoiceCounter) Reset(ctx context.Context, shop string, next int) error {
	args := m.Called(ctx, shop, next)
	return args.Error(0)
}
