package memory_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstbook/internal/domain"
	"gstbook/internal/repository/memory"
)

const testShop = "acme.myshopify.com"

func seed(t *testing.T, s *memory.Store, counter int) {
	t.Helper()
	require.NoError(t, s.Upsert(context.Background(), &domain.ShopSettings{
		Shop:           testShop,
		CompanyName:    "Acme Traders",
		CompanyState:   "Maharashtra",
		InvoicePrefix:  "INV",
		InvoiceCounter: counter,
		DefaultGSTRate: decimal.NewFromInt(18),
	}, true))
}

func draft(number string) (*domain.Invoice, error) {
	return &domain.Invoice{
		InvoiceNumber: number,
		CustomerName:  "Ravi",
		Subtotal:      decimal.NewFromInt(100),
		TotalTax:      decimal.NewFromInt(18),
		CGST:          decimal.NewFromInt(9),
		SGST:          decimal.NewFromInt(9),
		IGST:          decimal.Zero,
		TotalAmount:   decimal.NewFromInt(118),
	}, nil
}

func TestStore_CreateNumbered_Sequential(t *testing.T) {
	s := memory.NewStore()
	seed(t, s, 1)
	ctx := context.Background()

	first, err := s.CreateNumbered(ctx, testShop, draft)
	require.NoError(t, err)
	second, err := s.CreateNumbered(ctx, testShop, draft)
	require.NoError(t, err)

	assert.Equal(t, "INV0001", first.InvoiceNumber)
	assert.Equal(t, "INV0002", second.InvoiceNumber)
	assert.Equal(t, domain.InvoiceStatusDraft, first.Status)
	assert.Equal(t, testShop, first.Shop)
	assert.NotEqual(t, first.ID, second.ID)

	current, err := s.Current(ctx, testShop)
	require.NoError(t, err)
	assert.Equal(t, 3, current)
}

func TestStore_CreateNumbered_ConcurrentIsGapless(t *testing.T) {
	const n = 64
	s := memory.NewStore()
	seed(t, s, 1)

	var wg sync.WaitGroup
	numbers := make([]string, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			inv, err := s.CreateNumbered(context.Background(), testShop, draft)
			errs[i] = err
			if err == nil {
				numbers[i] = inv.InvoiceNumber
			}
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	want := make([]string, n)
	for i := range want {
		want[i] = fmt.Sprintf("INV%04d", i+1)
	}
	sort.Strings(numbers)
	assert.Equal(t, want, numbers)
}

func TestStore_CreateNumbered_BuildErrorDoesNotAdvance(t *testing.T) {
	s := memory.NewStore()
	seed(t, s, 7)
	ctx := context.Background()
	boom := errors.New("boom")

	_, err := s.CreateNumbered(ctx, testShop, func(string) (*domain.Invoice, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)

	inv, err := s.CreateNumbered(ctx, testShop, draft)
	require.NoError(t, err)
	assert.Equal(t, "INV0007", inv.InvoiceNumber)
}

func TestStore_CreateNumbered_NoSettings(t *testing.T) {
	s := memory.NewStore()
	_, err := s.CreateNumbered(context.Background(), testShop, draft)
	assert.ErrorIs(t, err, domain.ErrSettingsNotFound)
}

func TestStore_CreateNumbered_CounterResetCollides(t *testing.T) {
	s := memory.NewStore()
	seed(t, s, 1)
	ctx := context.Background()

	_, err := s.CreateNumbered(ctx, testShop, draft)
	require.NoError(t, err)

	seed(t, s, 1)
	_, err = s.CreateNumbered(ctx, testShop, draft)
	assert.ErrorIs(t, err, domain.ErrDuplicateInvoiceNumber)
}

func TestStore_Upsert_PreservesCounter(t *testing.T) {
	s := memory.NewStore()
	seed(t, s, 5)
	ctx := context.Background()

	_, err := s.Next(ctx, testShop)
	require.NoError(t, err)

	require.NoError(t, s.Upsert(ctx, &domain.ShopSettings{
		Shop:           testShop,
		CompanyName:    "Acme Traders Pvt Ltd",
		InvoicePrefix:  "ACME-",
		InvoiceCounter: 1,
	}, false))

	got, err := s.GetByShop(ctx, testShop)
	require.NoError(t, err)
	assert.Equal(t, 6, got.InvoiceCounter)
	assert.Equal(t, "ACME-", got.InvoicePrefix)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestStore_Next(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()

	_, err := s.Next(ctx, testShop)
	assert.ErrorIs(t, err, domain.ErrSettingsNotFound)

	seed(t, s, 42)
	got, err := s.Next(ctx, testShop)
	require.NoError(t, err)
	assert.Equal(t, 42, got)

	current, err := s.Current(ctx, testShop)
	require.NoError(t, err)
	assert.Equal(t, 43, current)
}

func TestStore_GetByNumberAndUpdateStatus(t *testing.T) {
	s := memory.NewStore()
	seed(t, s, 1)
	ctx := context.Background()

	created, err := s.CreateNumbered(ctx, testShop, draft)
	require.NoError(t, err)

	require.NoError(t, s.UpdateStatus(ctx, testShop, created.InvoiceNumber, domain.InvoiceStatusDraft, domain.InvoiceStatusPaid))
	got, err := s.GetByNumber(ctx, testShop, created.InvoiceNumber)
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusPaid, got.Status)

	_, err = s.GetByNumber(ctx, "other.myshopify.com", created.InvoiceNumber)
	assert.ErrorIs(t, err, domain.ErrInvoiceNotFound)
	assert.ErrorIs(t, s.UpdateStatus(ctx, testShop, "INV9999", domain.InvoiceStatusDraft, domain.InvoiceStatusPaid), domain.ErrInvoiceNotFound)
}

func TestStore_ListAndSummarize(t *testing.T) {
	s := memory.NewStore()
	seed(t, s, 1)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := s.CreateNumbered(ctx, testShop, draft)
		require.NoError(t, err)
	}
	require.NoError(t, s.UpdateStatus(ctx, testShop, "INV0002", domain.InvoiceStatusDraft, domain.InvoiceStatusCancelled))

	all, total, err := s.List(ctx, testShop, domain.InvoiceFilter{}, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, all, 2)

	page, _, err := s.List(ctx, testShop, domain.InvoiceFilter{}, 5, 2)
	require.NoError(t, err)
	assert.Empty(t, page)

	cancelled, total, err := s.List(ctx, testShop, domain.InvoiceFilter{Status: domain.InvoiceStatusCancelled}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "INV0002", cancelled[0].InvoiceNumber)

	summary, err := s.Summarize(ctx, testShop, domain.InvoiceFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, summary.InvoiceCount)
	assert.True(t, summary.TaxableValue.Equal(decimal.NewFromInt(200)))
	assert.True(t, summary.TotalTax.Equal(decimal.NewFromInt(36)))
	assert.True(t, summary.TotalAmount.Equal(decimal.NewFromInt(236)))

	future, err := s.Summarize(ctx, testShop, domain.InvoiceFilter{From: time.Now().Add(time.Hour)})
	require.NoError(t, err)
	assert.Zero(t, future.InvoiceCount)
	assert.True(t, future.TotalAmount.IsZero())
}

func TestStore_UpdateStatus_StaleFromIsRejected(t *testing.T) {
	s := memory.NewStore()
	seed(t, s, 1)
	ctx := context.Background()

	created, err := s.CreateNumbered(ctx, testShop, draft)
	require.NoError(t, err)
	require.NoError(t, s.UpdateStatus(ctx, testShop, created.InvoiceNumber, domain.InvoiceStatusDraft, domain.InvoiceStatusPaid))

	err = s.UpdateStatus(ctx, testShop, created.InvoiceNumber, domain.InvoiceStatusDraft, domain.InvoiceStatusCancelled)
	assert.ErrorIs(t, err, domain.ErrInvalidStatusTransition)

	got, err := s.GetByNumber(ctx, testShop, created.InvoiceNumber)
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusPaid, got.Status)
}

func TestStore_UpdateStatus_ConcurrentSingleWinner(t *testing.T) {
	s := memory.NewStore()
	seed(t, s, 1)
	ctx := context.Background()

	created, err := s.CreateNumbered(ctx, testShop, draft)
	require.NoError(t, err)

	targets := []domain.InvoiceStatus{domain.InvoiceStatusPaid, domain.InvoiceStatusCancelled}
	errs := make([]error, len(targets))
	var wg sync.WaitGroup
	for i, to := range targets {
		wg.Add(1)
		go func(i int, to domain.InvoiceStatus) {
			defer wg.Done()
			errs[i] = s.UpdateStatus(ctx, testShop, created.InvoiceNumber, domain.InvoiceStatusDraft, to)
		}(i, to)
	}
	wg.Wait()

	var winner domain.InvoiceStatus
	failures := 0
	for i, err := range errs {
		if err == nil {
			winner = targets[i]
			continue
		}
		assert.ErrorIs(t, err, domain.ErrInvalidStatusTransition)
		failures++
	}
	assert.Equal(t, 1, failures)

	got, err := s.GetByNumber(ctx, testShop, created.InvoiceNumber)
	require.NoError(t, err)
	assert.Equal(t, winner, got.Status)
}

func TestStore_ReturnedItemsAreDetached(t *testing.T) {
	s := memory.NewStore()
	seed(t, s, 1)
	ctx := context.Background()

	_, err := s.CreateNumbered(ctx, testShop, func(number string) (*domain.Invoice, error) {
		inv, _ := draft(number)
		inv.Items = domain.InvoiceItems{{Description: "Widget", Quantity: 1}}
		return inv, nil
	})
	require.NoError(t, err)

	got, err := s.GetByNumber(ctx, testShop, "INV0001")
	require.NoError(t, err)
	got.Items[0].Description = "changed by caller"

	listed, _, err := s.List(ctx, testShop, domain.InvoiceFilter{}, 0, 10)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Widget", listed[0].Items[0].Description)
	listed[0].Items[0].Quantity = 99

	again, err := s.GetByNumber(ctx, testShop, "INV0001")
	require.NoError(t, err)
	assert.Equal(t, "Widget", again.Items[0].Description)
	assert.Equal(t, int64(1), again.Items[0].Quantity)
}
