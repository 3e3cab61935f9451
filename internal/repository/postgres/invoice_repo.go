package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gstbook/internal/domain"
	"gstbook/internal/gst"
	"gstbook/internal/port"
)

type invoiceRepo struct {
	db      *sqlx.DB
	counter port.InvoiceCounter
}

// NewInvoiceRepo creates an InvoiceRepository that allocates invoice numbers
// from shop_settings inside the insert transaction.
func NewInvoiceRepo(db *sqlx.DB) port.InvoiceRepository {
	return &invoiceRepo{db: db}
}

// NewInvoiceRepoWithCounter creates an InvoiceRepository that takes counters
// from an external sequence such as Redis. A failed insert leaves a gap in
// that sequence, since the counter cannot be rolled back with the transaction.
func NewInvoiceRepoWithCounter(db *sqlx.DB, counter port.InvoiceCounter) port.InvoiceRepository {
	return &invoiceRepo{db: db, counter: counter}
}

func (r *invoiceRepo) CreateNumbered(ctx context.Context, shop string, build port.NumberedInvoiceBuilder) (*domain.Invoice, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("invoiceRepo.CreateNumbered begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	a, err := r.allocate(ctx, tx, shop)
	if err != nil {
		return nil, err
	}

	inv, err := build(gst.FormatInvoiceNumber(a.Prefix, a.Counter))
	if err != nil {
		return nil, err
	}
	inv.ID = uuid.New()
	inv.Shop = shop
	if inv.Status == "" {
		inv.Status = domain.InvoiceStatusDraft
	}
	now := time.Now().UTC()
	inv.CreatedAt = now
	inv.UpdatedAt = now

	query := `INSERT INTO invoices (id, shop, invoice_number, order_id, customer_name, customer_gstin,
			supplier_state, place_of_supply, is_inter_state, reverse_charge, items,
			subtotal, cgst, sgst, igst, total_tax, total_amount, amount_in_words,
			status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)`

	_, err = tx.ExecContext(ctx, query,
		inv.ID, inv.Shop, inv.InvoiceNumber, inv.OrderID, inv.CustomerName, inv.CustomerGSTIN,
		inv.SupplierState, inv.PlaceOfSupply, inv.IsInterState, inv.ReverseCharge, inv.Items,
		inv.Subtotal, inv.CGST, inv.SGST, inv.IGST, inv.TotalTax, inv.TotalAmount, inv.AmountInWords,
		inv.Status, inv.Notes, inv.CreatedAt, inv.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "invoices_shop_invoice_number") {
			return nil, domain.ErrDuplicateInvoiceNumber
		}
		return nil, fmt.Errorf("invoiceRepo.CreateNumbered insert: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("invoiceRepo.CreateNumbered commit: %w", err)
	}
	return inv, nil
}

func (r *invoiceRepo) allocate(ctx context.Context, tx *sqlx.Tx, shop string) (*allocation, error) {
	if r.counter == nil {
		return allocate(ctx, tx, shop)
	}

	var prefix string
	err := tx.GetContext(ctx, &prefix, "SELECT invoice_prefix FROM shop_settings WHERE shop = $1", shop)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSettingsNotFound
		}
		return nil, fmt.Errorf("invoiceRepo.allocate prefix: %w", err)
	}
	counter, err := r.counter.Next(ctx, shop)
	if err != nil {
		return nil, err
	}
	return &allocation{Counter: counter, Prefix: prefix}, nil
}

func (r *invoiceRepo) GetByNumber(ctx context.Context, shop, invoiceNumber string) (*domain.Invoice, error) {
	var inv domain.Invoice
	err := r.db.GetContext(ctx, &inv,
		"SELECT * FROM invoices WHERE shop = $1 AND invoice_number = $2", shop, invoiceNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("invoiceRepo.GetByNumber: %w", err)
	}
	return &inv, nil
}

func (r *invoiceRepo) List(ctx context.Context, shop string, filter domain.InvoiceFilter, offset, limit int) ([]domain.Invoice, int, error) {
	where, args := filterClause(shop, filter, false)

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM invoices WHERE "+where, args...); err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.List count: %w", err)
	}

	query := fmt.Sprintf("SELECT * FROM invoices WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		where, len(args)+1, len(args)+2)
	var invoices []domain.Invoice
	if err := r.db.SelectContext(ctx, &invoices, query, append(args, limit, offset)...); err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.List: %w", err)
	}
	return invoices, total, nil
}

func (r *invoiceRepo) UpdateStatus(ctx context.Context, shop, invoiceNumber string, from, to domain.InvoiceStatus) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE invoices SET status = $1, updated_at = NOW()
		WHERE shop = $2 AND invoice_number = $3 AND status = $4`,
		to, shop, invoiceNumber, from)
	if err != nil {
		return fmt.Errorf("invoiceRepo.UpdateStatus: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("invoiceRepo.UpdateStatus: %w", err)
	}
	if rows > 0 {
		return nil
	}

	// Nothing matched: either the invoice is gone or another request moved it first.
	var exists bool
	if err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM invoices WHERE shop = $1 AND invoice_number = $2)`,
		shop, invoiceNumber); err != nil {
		return fmt.Errorf("invoiceRepo.UpdateStatus: %w", err)
	}
	if !exists {
		return domain.ErrInvoiceNotFound
	}
	return domain.ErrInvalidStatusTransition
}

func (r *invoiceRepo) Summarize(ctx context.Context, shop string, filter domain.InvoiceFilter) (*domain.TaxSummary, error) {
	where, args := filterClause(shop, filter, true)
	query := `SELECT COUNT(*) AS invoice_count,
			COALESCE(SUM(subtotal), 0) AS taxable_value,
			COALESCE(SUM(cgst), 0) AS cgst,
			COALESCE(SUM(sgst), 0) AS sgst,
			COALESCE(SUM(igst), 0) AS igst,
			COALESCE(SUM(total_tax), 0) AS total_tax,
			COALESCE(SUM(total_amount), 0) AS total_amount
		FROM invoices WHERE ` + where

	var summary domain.TaxSummary
	if err := r.db.GetContext(ctx, &summary, query, args...); err != nil {
		return nil, fmt.Errorf("invoiceRepo.Summarize: %w", err)
	}
	return &summary, nil
}

// filterClause builds a WHERE clause with positional args. excludeCancelled
// drops cancelled invoices unless a status filter is given.
func filterClause(shop string, f domain.InvoiceFilter, excludeCancelled bool) (string, []interface{}) {
	conds := []string{"shop = $1"}
	args := []interface{}{shop}

	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	} else if excludeCancelled {
		args = append(args, domain.InvoiceStatusCancelled)
		conds = append(conds, fmt.Sprintf("status <> $%d", len(args)))
	}
	if !f.From.IsZero() {
		args = append(args, f.From)
		conds = append(conds, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if !f.To.IsZero() {
		args = append(args, f.To)
		conds = append(conds, fmt.Sprintf("created_at < $%d", len(args)))
	}
	return strings.Join(conds, " AND "), args
}
