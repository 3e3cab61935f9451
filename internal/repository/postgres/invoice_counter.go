package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"gstbook/internal/domain"
	"gstbook/internal/port"
)

// allocateCounterQuery advances the counter in a single statement. The row
// lock it takes serializes concurrent allocations for the same shop.
const allocateCounterQuery = `UPDATE shop_settings
	SET invoice_counter = invoice_counter + 1, updated_at = NOW()
	WHERE shop = $1
	RETURNING invoice_counter - 1 AS counter, invoice_prefix`

type allocation struct {
	Counter int    `db:"counter"`
	Prefix  string `db:"invoice_prefix"`
}

type invoiceCounter struct {
	db *sqlx.DB
}

// NewInvoiceCounter creates an InvoiceCounter backed by the shop_settings row.
func NewInvoiceCounter(db *sqlx.DB) port.InvoiceCounter {
	return &invoiceCounter{db: db}
}

func (c *invoiceCounter) Current(ctx context.Context, shop string) (int, error) {
	var counter int
	err := c.db.GetContext(ctx, &counter, "SELECT invoice_counter FROM shop_settings WHERE shop = $1", shop)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.ErrSettingsNotFound
		}
		return 0, fmt.Errorf("invoiceCounter.Current: %w", err)
	}
	return counter, nil
}

func (c *invoiceCounter) Next(ctx context.Context, shop string) (int, error) {
	a, err := allocate(ctx, c.db, shop)
	if err != nil {
		return 0, err
	}
	return a.Counter, nil
}

func (c *invoiceCounter) Reset(ctx context.Context, shop string, next int) error {
	result, err := c.db.ExecContext(ctx,
		"UPDATE shop_settings SET invoice_counter = $1, updated_at = NOW() WHERE shop = $2", next, shop)
	if err != nil {
		return fmt.Errorf("invoiceCounter.Reset: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrSettingsNotFound
	}
	return nil
}

func allocate(ctx context.Context, q sqlx.QueryerContext, shop string) (*allocation, error) {
	var a allocation
	if err := sqlx.GetContext(ctx, q, &a, allocateCounterQuery, shop); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSettingsNotFound
		}
		return nil, fmt.Errorf("allocating invoice counter: %w", err)
	}
	return &a, nil
}
