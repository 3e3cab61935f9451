package service

import (
	"context"
	"io"
	"time"

	"gstbook/internal/domain"
	"gstbook/internal/port"
	"gstbook/internal/report"
)

const registerPageSize = 500

// ReportService provides GST reporting over a shop's issued invoices.
type ReportService interface {
	// Summary totals the tax collected in [from, to), excluding cancelled invoices.
	// Zero times leave that side of the range open.
	Summary(ctx context.Context, shop string, from, to time.Time) (*domain.TaxSummary, error)
	// ExportRegister writes the GST sales register for [from, to) to w.
	ExportRegister(ctx context.Context, shop string, from, to time.Time, format domain.ExportFormat, w io.Writer) error
}

type reportService struct {
	invoiceRepo port.InvoiceRepository
	maxRows     int
}

// NewReportService creates a new ReportService. maxRows caps the register size.
func NewReportService(invoiceRepo port.InvoiceRepository, maxRows int) ReportService {
	return &reportService{invoiceRepo: invoiceRepo, maxRows: maxRows}
}

func (s *reportService) Summary(ctx context.Context, shop string, from, to time.Time) (*domain.TaxSummary, error) {
	filter, err := dateFilter(from, to)
	if err != nil {
		return nil, err
	}
	return s.invoiceRepo.Summarize(ctx, shop, filter)
}

func (s *reportService) ExportRegister(ctx context.Context, shop string, from, to time.Time, format domain.ExportFormat, w io.Writer) error {
	if format != domain.ExportFormatCSV && format != domain.ExportFormatXLSX {
		return domain.ErrUnsupportedExportFormat
	}
	filter, err := dateFilter(from, to)
	if err != nil {
		return err
	}

	if format == domain.ExportFormatXLSX {
		var all []domain.Invoice
		err := s.eachPage(ctx, shop, filter, func(page []domain.Invoice) error {
			all = append(all, page...)
			return nil
		})
		if err != nil {
			return err
		}
		return report.WriteXLSX(w, all)
	}

	cw := report.NewCSVWriter(w)
	if err := cw.WriteHeader(); err != nil {
		return err
	}
	if err := s.eachPage(ctx, shop, filter, cw.WriteInvoices); err != nil {
		return err
	}
	return cw.Flush()
}

// eachPage feeds invoices to fn in pages, newest first, stopping at maxRows.
func (s *reportService) eachPage(ctx context.Context, shop string, filter domain.InvoiceFilter, fn func([]domain.Invoice) error) error {
	for offset := 0; offset < s.maxRows; offset += registerPageSize {
		limit := registerPageSize
		if remaining := s.maxRows - offset; remaining < limit {
			limit = remaining
		}
		page, total, err := s.invoiceRepo.List(ctx, shop, filter, offset, limit)
		if err != nil {
			return err
		}
		if err := fn(page); err != nil {
			return err
		}
		if offset+len(page) >= total || len(page) < limit {
			return nil
		}
	}
	return nil
}

func dateFilter(from, to time.Time) (domain.InvoiceFilter, error) {
	if !from.IsZero() && !to.IsZero() && !from.Before(to) {
		return domain.InvoiceFilter{}, domain.ErrInvalidDateRange
	}
	return domain.InvoiceFilter{From: from, To: to}, nil
}
