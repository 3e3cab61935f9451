package service_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gstbook/internal/domain"
	"gstbook/internal/report"
	"gstbook/internal/service"
	"gstbook/mocks"
)

func TestReportService_Summary(t *testing.T) {
	repo := new(mocks.MockInvoiceRepo)
	svc := service.NewReportService(repo, 100)

	from := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	expected := &domain.TaxSummary{InvoiceCount: 3, TotalTax: dec("540")}
	repo.On("Summarize", mock.Anything, shop, domain.InvoiceFilter{From: from, To: to}).Return(expected, nil)

	summary, err := svc.Summary(context.Background(), shop, from, to)
	require.NoError(t, err)
	assert.Equal(t, expected, summary)
}

func TestReportService_Summary_InvalidRange(t *testing.T) {
	svc := service.NewReportService(new(mocks.MockInvoiceRepo), 100)
	now := time.Now()

	_, err := svc.Summary(context.Background(), shop, now, now)
	assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
}

func TestReportService_ExportRegister_UnsupportedFormat(t *testing.T) {
	svc := service.NewReportService(new(mocks.MockInvoiceRepo), 100)

	err := svc.ExportRegister(context.Background(), shop, time.Time{}, time.Time{}, "pdf", &bytes.Buffer{})
	assert.ErrorIs(t, err, domain.ErrUnsupportedExportFormat)
}

func invoicesNumbered(numbers ...string) []domain.Invoice {
	out := make([]domain.Invoice, len(numbers))
	for i, n := range numbers {
		out[i] = domain.Invoice{InvoiceNumber: n, Status: domain.InvoiceStatusPaid, Subtotal: dec("100"), TotalAmount: dec("118")}
	}
	return out
}

func TestReportService_ExportRegister_CSVRespectsMaxRows(t *testing.T) {
	repo := new(mocks.MockInvoiceRepo)
	svc := service.NewReportService(repo, 2)

	repo.On("List", mock.Anything, shop, domain.InvoiceFilter{}, 0, 2).
		Return(invoicesNumbered("INV0003", "INV0002"), 3, nil)

	var buf bytes.Buffer
	err := svc.ExportRegister(context.Background(), shop, time.Time{}, time.Time{}, domain.ExportFormatCSV, &buf)
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(buf.Bytes()[len(report.BOM):])).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "INV0003", rows[1][0])
	assert.Equal(t, "118.00", rows[2][16])
	repo.AssertNumberOfCalls(t, "List", 1)
}

func TestReportService_ExportRegister_XLSX(t *testing.T) {
	repo := new(mocks.MockInvoiceRepo)
	svc := service.NewReportService(repo, 10000)

	repo.On("List", mock.Anything, shop, domain.InvoiceFilter{}, 0, 500).
		Return(invoicesNumbered("INV0001"), 1, nil)

	var buf bytes.Buffer
	err := svc.ExportRegister(context.Background(), shop, time.Time{}, time.Time{}, domain.ExportFormatXLSX, &buf)
	require.NoError(t, err)
	assert.Equal(t, "PK", buf.String()[:2])
}
