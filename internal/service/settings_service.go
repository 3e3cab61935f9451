package service

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"gstbook/internal/domain"
	"gstbook/internal/gst"
	"gstbook/internal/port"
)

// UpsertSettingsInput is the DTO for saving a shop's company profile.
// Nil pointer fields keep their stored value, or the default for a new shop.
type UpsertSettingsInput struct {
	CompanyName    string           `json:"company_name" binding:"required"`
	CompanyGSTIN   string           `json:"company_gstin"`
	CompanyState   string           `json:"company_state"`
	CompanyAddress string           `json:"company_address"`
	InvoicePrefix  *string          `json:"invoice_prefix"`
	StartingNumber *int             `json:"starting_number"`
	DefaultGSTRate *decimal.Decimal `json:"default_gst_rate"`
}

// SettingsDefaults are applied when a shop saves its settings for the first time.
type SettingsDefaults struct {
	InvoicePrefix  string
	DefaultGSTRate decimal.Decimal
}

// SettingsService defines the shop settings contract.
type SettingsService interface {
	Get(ctx context.Context, shop string) (*domain.ShopSettings, error)
	Upsert(ctx context.Context, shop string, input UpsertSettingsInput) (*domain.ShopSettings, error)
	// NextInvoiceNumber previews the number the next invoice will receive.
	NextInvoiceNumber(ctx context.Context, shop string) (string, error)
}

type settingsService struct {
	repo     port.SettingsRepository
	counter  port.InvoiceCounter
	defaults SettingsDefaults
}

// NewSettingsService creates a new SettingsService implementation.
func NewSettingsService(repo port.SettingsRepository, counter port.InvoiceCounter, defaults SettingsDefaults) SettingsService {
	return &settingsService{repo: repo, counter: counter, defaults: defaults}
}

func (s *settingsService) Get(ctx context.Context, shop string) (*domain.ShopSettings, error) {
	settings, err := s.repo.GetByShop(ctx, shop)
	if err != nil {
		return nil, err
	}
	// The counter backend may be ahead of the stored row.
	current, err := s.counter.Current(ctx, shop)
	if err != nil {
		return nil, err
	}
	settings.InvoiceCounter = current
	return settings, nil
}

func (s *settingsService) Upsert(ctx context.Context, shop string, input UpsertSettingsInput) (*domain.ShopSettings, error) {
	gstin := normalizeGSTIN(input.CompanyGSTIN)
	if gstin != "" && !gst.ValidateGSTIN(gstin) {
		return nil, domain.ErrMalformedGSTIN
	}
	if input.StartingNumber != nil && *input.StartingNumber < 1 {
		return nil, domain.ErrInvalidStartingNumber
	}
	if input.DefaultGSTRate != nil && !validRate(*input.DefaultGSTRate) {
		return nil, domain.ErrInvalidGSTRate
	}

	settings, err := s.repo.GetByShop(ctx, shop)
	isNew := errors.Is(err, domain.ErrSettingsNotFound)
	if err != nil && !isNew {
		return nil, err
	}
	if isNew {
		settings = &domain.ShopSettings{
			Shop:           shop,
			InvoicePrefix:  s.defaults.InvoicePrefix,
			InvoiceCounter: 1,
			DefaultGSTRate: s.defaults.DefaultGSTRate,
		}
	}

	settings.CompanyName = strings.TrimSpace(input.CompanyName)
	settings.CompanyGSTIN = gstin
	settings.CompanyState = resolveCompanyState(input.CompanyState, gstin)
	settings.CompanyAddress = input.CompanyAddress
	if input.InvoicePrefix != nil {
		settings.InvoicePrefix = strings.TrimSpace(*input.InvoicePrefix)
	}
	if input.DefaultGSTRate != nil {
		settings.DefaultGSTRate = *input.DefaultGSTRate
	}
	resetCounter := isNew || input.StartingNumber != nil
	if input.StartingNumber != nil {
		settings.InvoiceCounter = *input.StartingNumber
	}

	if err := s.repo.Upsert(ctx, settings, resetCounter); err != nil {
		return nil, err
	}
	if resetCounter {
		if err := s.counter.Reset(ctx, shop, settings.InvoiceCounter); err != nil {
			return nil, err
		}
		return settings, nil
	}

	current, err := s.counter.Current(ctx, shop)
	if err != nil {
		return nil, err
	}
	settings.InvoiceCounter = current
	return settings, nil
}

func (s *settingsService) NextInvoiceNumber(ctx context.Context, shop string) (string, error) {
	settings, err := s.Get(ctx, shop)
	if err != nil {
		return "", err
	}
	return gst.FormatInvoiceNumber(settings.InvoicePrefix, settings.InvoiceCounter), nil
}

// resolveCompanyState prefers the explicit state, mapped to its table
// spelling when known, then the GSTIN's state, then gst.DefaultState.
func resolveCompanyState(state, gstin string) string {
	state = strings.Join(strings.Fields(state), " ")
	if state != "" {
		if code, ok := gst.StateCode(state); ok {
			name, _ := gst.StateName(code)
			return name
		}
		return state
	}
	if name, ok := gst.StateFromGSTIN(gstin); ok {
		return name
	}
	return gst.DefaultState
}

func normalizeGSTIN(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func validRate(rate decimal.Decimal) bool {
	return !rate.IsNegative() && rate.LessThanOrEqual(decimal.NewFromInt(100))
}
