package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"gstbook/internal/domain"
	"gstbook/internal/port"
)

// MockInvoiceRepo is a mock implementation of port.InvoiceRepository.
//
// CreateNumbered expectations return the allocated invoice number and an
// error; when the error is nil the mock runs the builder with that number.
type MockInvoiceRepo struct {
	mock.Mock
}

func (m *MockInvoiceRepo) CreateNumbered(ctx context.Context, shop string, build port.NumberedInvoiceBuilder) (*domain.Invoice, error) {
	args := m.Called(ctx, shop, build)
	if err := args.Error(1); err != nil {
		return nil, err
	}
	inv, err := build(args.String(0))
	if err != nil {
		return nil, err
	}
	inv.Shop = shop
	if inv.Status == "" {
		inv.Status = domain.InvoiceStatusDraft
	}
	return inv, nil
}

func (m *MockInvoiceRepo) GetByNumber(ctx context.Context, shop, invoiceNumber string) (*domain.Invoice, error) {
	args := m.Called(ctx, shop, invoiceNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepo) List(ctx context.Context, shop string, filter domain.InvoiceFilter, offset, limit int) ([]domain.Invoice, int, error) {
	args := m.Called(ctx, shop, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Invoice), args.Int(1), args.Error(2)
}

func (m *MockInvoiceRepo) UpdateStatus(ctx context.Context, shop, invoiceNumber string, from, to domain.InvoiceStatus) error {
	args := m.Called(ctx, shop, invoiceNumber, from, to)
	return args.Error(0)
}

func (m *MockInvoiceRepo) Summarize(ctx context.Context, shop string, filter domain.InvoiceFilter) (*domain.TaxSummary, error) {
	args := m.Called(ctx, shop, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxSummary), args.Error(1)
}
