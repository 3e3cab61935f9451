// Package memory provides in-process implementations of the persistence
// ports. Data lives for the lifetime of the process; it backs tests and the
// storage.backend=memory development mode.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"gstbook/internal/domain"
	"gstbook/internal/gst"
	"gstbook/internal/port"
)

// Store implements SettingsRepository, InvoiceCounter and InvoiceRepository.
type Store struct {
	mu       sync.Mutex
	settings map[string]domain.ShopSettings
	invoices map[string][]domain.Invoice
}

var (
	_ port.SettingsRepository = (*Store)(nil)
	_ port.InvoiceCounter     = (*Store)(nil)
	_ port.InvoiceRepository  = (*Store)(nil)
)

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		settings: make(map[string]domain.ShopSettings),
		invoices: make(map[string][]domain.Invoice),
	}
}

func (s *Store) GetByShop(_ context.Context, shop string) (*domain.ShopSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings, ok := s.settings[shop]
	if !ok {
		return nil, domain.ErrSettingsNotFound
	}
	return &settings, nil
}

func (s *Store) Upsert(_ context.Context, settings *domain.ShopSettings, resetCounter bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	existing, ok := s.settings[settings.Shop]
	if ok {
		settings.CreatedAt = existing.CreatedAt
		if !resetCounter {
			settings.InvoiceCounter = existing.InvoiceCounter
		}
	} else {
		settings.CreatedAt = now
	}
	settings.UpdatedAt = now
	s.settings[settings.Shop] = *settings
	return nil
}

func (s *Store) Current(_ context.Context, shop string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings, ok := s.settings[shop]
	if !ok {
		return 0, domain.ErrSettingsNotFound
	}
	return settings.InvoiceCounter, nil
}

func (s *Store) Next(_ context.Context, shop string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, counter, err := s.advanceLocked(shop)
	return counter, err
}

func (s *Store) Reset(_ context.Context, shop string, next int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings, ok := s.settings[shop]
	if !ok {
		return domain.ErrSettingsNotFound
	}
	settings.InvoiceCounter = next
	settings.UpdatedAt = time.Now().UTC()
	s.settings[shop] = settings
	return nil
}

// advanceLocked allocates the shop's counter. Callers hold s.mu.
func (s *Store) advanceLocked(shop string) (prefix string, counter int, err error) {
	settings, ok := s.settings[shop]
	if !ok {
		return "", 0, domain.ErrSettingsNotFound
	}
	counter = settings.InvoiceCounter
	settings.InvoiceCounter++
	settings.UpdatedAt = time.Now().UTC()
	s.settings[shop] = settings
	return settings.InvoicePrefix, counter, nil
}

func (s *Store) CreateNumbered(_ context.Context, shop string, build port.NumberedInvoiceBuilder) (*domain.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings, ok := s.settings[shop]
	if !ok {
		return nil, domain.ErrSettingsNotFound
	}
	number := gst.FormatInvoiceNumber(settings.InvoicePrefix, settings.InvoiceCounter)
	for i := range s.invoices[shop] {
		if s.invoices[shop][i].InvoiceNumber == number {
			return nil, domain.ErrDuplicateInvoiceNumber
		}
	}

	inv, err := build(number)
	if err != nil {
		return nil, err
	}
	if _, _, err := s.advanceLocked(shop); err != nil {
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

	stored := *inv
	stored.Items = append(domain.InvoiceItems(nil), inv.Items...)
	s.invoices[shop] = append(s.invoices[shop], stored)
	return inv, nil
}

func (s *Store) GetByNumber(_ context.Context, shop, invoiceNumber string) (*domain.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.invoices[shop] {
		if s.invoices[shop][i].InvoiceNumber == invoiceNumber {
			inv := copyInvoice(s.invoices[shop][i])
			return &inv, nil
		}
	}
	return nil, domain.ErrInvoiceNotFound
}

func (s *Store) List(_ context.Context, shop string, filter domain.InvoiceFilter, offset, limit int) ([]domain.Invoice, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := s.matchLocked(shop, filter, false)
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	if offset >= total {
		return []domain.Invoice{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	page := make([]domain.Invoice, 0, end-offset)
	for _, inv := range matched[offset:end] {
		page = append(page, copyInvoice(inv))
	}
	return page, total, nil
}

// copyInvoice detaches Items from the stored backing array.
func copyInvoice(inv domain.Invoice) domain.Invoice {
	if inv.Items != nil {
		inv.Items = append(domain.InvoiceItems(nil), inv.Items...)
	}
	return inv
}

func (s *Store) UpdateStatus(_ context.Context, shop, invoiceNumber string, from, to domain.InvoiceStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.invoices[shop] {
		inv := &s.invoices[shop][i]
		if inv.InvoiceNumber == invoiceNumber {
			if inv.Status != from {
				return domain.ErrInvalidStatusTransition
			}
			inv.Status = to
			inv.UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return domain.ErrInvoiceNotFound
}

func (s *Store) Summarize(_ context.Context, shop string, filter domain.InvoiceFilter) (*domain.TaxSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	summary := &domain.TaxSummary{
		TaxableValue: decimal.Zero,
		CGST:         decimal.Zero,
		SGST:         decimal.Zero,
		IGST:         decimal.Zero,
		TotalTax:     decimal.Zero,
		TotalAmount:  decimal.Zero,
	}
	for _, inv := range s.matchLocked(shop, filter, true) {
		summary.InvoiceCount++
		summary.TaxableValue = summary.TaxableValue.Add(inv.Subtotal)
		summary.CGST = summary.CGST.Add(inv.CGST)
		summary.SGST = summary.SGST.Add(inv.SGST)
		summary.IGST = summary.IGST.Add(inv.IGST)
		summary.TotalTax = summary.TotalTax.Add(inv.TotalTax)
		summary.TotalAmount = summary.TotalAmount.Add(inv.TotalAmount)
	}
	return summary, nil
}

// matchLocked applies the same filter rules as the SQL repository.
func (s *Store) matchLocked(shop string, f domain.InvoiceFilter, excludeCancelled bool) []domain.Invoice {
	var out []domain.Invoice
	for _, inv := range s.invoices[shop] {
		switch {
		case f.Status != "" && inv.Status != f.Status:
			continue
		case f.Status == "" && excludeCancelled && inv.Status == domain.InvoiceStatusCancelled:
			continue
		case !f.From.IsZero() && inv.CreatedAt.Before(f.From):
			continue
		case !f.To.IsZero() && !inv.CreatedAt.Before(f.To):
			continue
		}
		out = append(out, inv)
	}
	return out
}
