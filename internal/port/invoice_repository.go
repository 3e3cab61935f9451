package port

import (
	"context"

	"gstbook/internal/domain"
)

// NumberedInvoiceBuilder fills in an invoice once its number has been allocated.
type NumberedInvoiceBuilder func(invoiceNumber string) (*domain.Invoice, error)

// InvoiceRepository defines the contract for invoice persistence.
// All query methods include the shop to keep merchants isolated.
type InvoiceRepository interface {
	// CreateNumbered allocates the shop's next invoice number, builds the
	// invoice with it and stores it as one atomic unit. If build or the insert
	// fails the counter is not advanced.
	CreateNumbered(ctx context.Context, shop string, build NumberedInvoiceBuilder) (*domain.Invoice, error)
	GetByNumber(ctx context.Context, shop, invoiceNumber string) (*domain.Invoice, error)
	List(ctx context.Context, shop string, filter domain.InvoiceFilter, offset, limit int) ([]domain.Invoice, int, error)
	// UpdateStatus moves an invoice from status from to status to. It fails with
	// ErrInvalidStatusTransition if the stored status is no longer from.
	UpdateStatus(ctx context.Context, shop, invoiceNumber string, from, to domain.InvoiceStatus) error
	Summarize(ctx context.Context, shop string, filter domain.InvoiceFilter) (*domain.TaxSummary, error)
}
