package port

import (
	"context"

	"gstbook/internal/domain"
)

// SettingsRepository defines the contract for per-shop settings persistence.
type SettingsRepository interface {
	GetByShop(ctx context.Context, shop string) (*domain.ShopSettings, error)
	// Upsert creates or updates the settings row. InvoiceCounter is written
	// only when the row is created or resetCounter is true.
	Upsert(ctx context.Context, settings *domain.ShopSettings, resetCounter bool) error
}
