package mocks

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"gstbook/internal/domain"
)

// MockReportService is a mock implementation of service.ReportService.
// ExportRegister writes its first return value, when it is a string, to w.
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) Summary(ctx context.Context, shop string, from, to time.Time) (*domain.TaxSummary, error) {
	args := m.Called(ctx, shop, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxSummary), args.Error(1)
}

func (m *MockReportService) ExportRegister(ctx context.Context, shop string, from, to time.Time, format domain.ExportFormat, w io.Writer) error {
	args := m.Called(ctx, shop, from, to, format, w)
	if body, ok := args.Get(0).(string); ok {
		if _, err := io.WriteString(w, body); err != nil {
			return err
		}
	}
	return args.Error(1)
}
