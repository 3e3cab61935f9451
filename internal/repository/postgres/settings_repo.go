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

type settingsRepo struct {
	db *sqlx.DB
}

// NewSettingsRepo creates a new PostgreSQL-backed SettingsRepository.
func NewSettingsRepo(db *sqlx.DB) port.SettingsRepository {
	return &settingsRepo{db: db}
}

func (r *settingsRepo) GetByShop(ctx context.Context, shop string) (*domain.ShopSettings, error) {
	var s domain.ShopSettings
	err := r.db.GetContext(ctx, &s, "SELECT * FROM shop_settings WHERE shop = $1", shop)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSettingsNotFound
		}
		return nil, fmt.Errorf("settingsRepo.GetByShop: %w", err)
	}
	return &s, nil
}

func (r *settingsRepo) Upsert(ctx context.Context, s *domain.ShopSettings, resetCounter bool) error {
	query := `INSERT INTO shop_settings (shop, company_name, company_gstin, company_state, company_address,
			invoice_prefix, invoice_counter, default_gst_rate, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		ON CONFLICT (shop) DO UPDATE SET
			company_name = EXCLUDED.company_name,
			company_gstin = EXCLUDED.company_gstin,
			company_state = EXCLUDED.company_state,
			company_address = EXCLUDED.company_address,
			invoice_prefix = EXCLUDED.invoice_prefix,
			invoice_counter = CASE WHEN $9::boolean THEN EXCLUDED.invoice_counter ELSE shop_settings.invoice_counter END,
			default_gst_rate = EXCLUDED.default_gst_rate,
			updated_at = NOW()
		RETURNING invoice_counter, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		s.Shop, s.CompanyName, s.CompanyGSTIN, s.CompanyState, s.CompanyAddress,
		s.InvoicePrefix, s.InvoiceCounter, s.DefaultGSTRate, resetCounter,
	).Scan(&s.InvoiceCounter, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("settingsRepo.Upsert: %w", err)
	}
	return nil
}
