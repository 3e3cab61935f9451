package service

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"gstbook/internal/domain"
	"gstbook/internal/gst"
	"gstbook/internal/port"
)

// InvoiceLineInput is one line of a new invoice. A nil GSTRatePercent uses the
// shop's default rate.
type InvoiceLineInput struct {
	Description     string           `json:"description" binding:"required"`
	HSNCode         string           `json:"hsn_code"`
	Quantity        int64            `json:"quantity"`
	Rate            decimal.Decimal  `json:"rate"`
	DiscountPercent decimal.Decimal  `json:"discount_percent"`
	GSTRatePercent  *decimal.Decimal `json:"gst_rate_percent"`
}

// CreateInvoiceInput is the DTO for issuing an invoice.
type CreateInvoiceInput struct {
	OrderID         string             `json:"order_id"`
	CustomerName    string             `json:"customer_name" binding:"required"`
	CustomerGSTIN   string             `json:"customer_gstin"`
	BillingAddress  *gst.Address       `json:"billing_address"`
	ShippingAddress *gst.Address       `json:"shipping_address"`
	ReverseCharge   bool               `json:"reverse_charge"`
	Items           []InvoiceLineInput `json:"items"`
	Notes           string             `json:"notes"`
}

// InvoiceService defines the invoice workflow contract.
type InvoiceService interface {
	Create(ctx context.Context, shop string, input CreateInvoiceInput) (*domain.Invoice, error)
	// Preview computes the invoice the input would produce without storing it
	// or consuming a number.
	Preview(ctx context.Context, shop string, input CreateInvoiceInput) (*domain.Invoice, error)
	GetByNumber(ctx context.Context, shop, invoiceNumber string) (*domain.Invoice, error)
	List(ctx context.Context, shop string, filter domain.InvoiceFilter, offset, limit int) ([]domain.Invoice, int, error)
	UpdateStatus(ctx context.Context, shop, invoiceNumber string, status domain.InvoiceStatus) (*domain.Invoice, error)
}

type invoiceService struct {
	settingsRepo port.SettingsRepository
	invoiceRepo  port.InvoiceRepository
	counter      port.InvoiceCounter
	locker       port.ShopLocker
	logger       logrus.FieldLogger
}

// NewInvoiceService creates a new InvoiceService implementation. locker may
// be nil, in which case creations rely on the repository's atomic counter alone.
func NewInvoiceService(
	settingsRepo port.SettingsRepository,
	invoiceRepo port.InvoiceRepository,
	counter port.InvoiceCounter,
	locker port.ShopLocker,
	logger logrus.FieldLogger,
) InvoiceService {
	return &invoiceService{
		settingsRepo: settingsRepo,
		invoiceRepo:  invoiceRepo,
		counter:      counter,
		locker:       locker,
		logger:       logger,
	}
}

func (s *invoiceService) Create(ctx context.Context, shop string, input CreateInvoiceInput) (*domain.Invoice, error) {
	inv, err := s.prepare(ctx, shop, input)
	if err != nil {
		return nil, err
	}

	if s.locker != nil {
		release, err := s.locker.Acquire(ctx, shop)
		if err != nil {
			return nil, err
		}
		defer release()
	}

	created, err := s.invoiceRepo.CreateNumbered(ctx, shop, func(number string) (*domain.Invoice, error) {
		inv.InvoiceNumber = number
		return inv, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"shop":           shop,
		"invoice_number": created.InvoiceNumber,
		"total_amount":   created.TotalAmount.StringFixed(gst.MoneyPlaces),
		"inter_state":    created.IsInterState,
	}).Info("invoice created")
	return created, nil
}

func (s *invoiceService) Preview(ctx context.Context, shop string, input CreateInvoiceInput) (*domain.Invoice, error) {
	inv, err := s.prepare(ctx, shop, input)
	if err != nil {
		return nil, err
	}
	settings, err := s.settingsRepo.GetByShop(ctx, shop)
	if err != nil {
		return nil, err
	}
	next, err := s.counter.Current(ctx, shop)
	if err != nil {
		return nil, err
	}
	inv.Shop = shop
	inv.InvoiceNumber = gst.FormatInvoiceNumber(settings.InvoicePrefix, next)
	inv.Status = domain.InvoiceStatusDraft
	return inv, nil
}

// prepare validates the input and computes every tax field of the invoice.
func (s *invoiceService) prepare(ctx context.Context, shop string, input CreateInvoiceInput) (*domain.Invoice, error) {
	if len(input.Items) == 0 {
		return nil, domain.ErrNoLineItems
	}

	customerGSTIN := normalizeGSTIN(input.CustomerGSTIN)
	if customerGSTIN != "" && !gst.ValidateGSTIN(customerGSTIN) {
		return nil, domain.ErrMalformedGSTIN
	}

	settings, err := s.settingsRepo.GetByShop(ctx, shop)
	if err != nil {
		return nil, err
	}

	supplierState := resolveCompanyState(settings.CompanyState, settings.CompanyGSTIN)
	placeOfSupply := gst.DeterminePlaceOfSupply(input.BillingAddress, input.ShippingAddress, customerGSTIN != "")
	reverseCharge := input.ReverseCharge || gst.IsReverseChargeApplicable(settings.CompanyGSTIN, customerGSTIN)

	lines := make([]gst.LineItem, len(input.Items))
	for i, item := range input.Items {
		rate := settings.DefaultGSTRate
		if item.GSTRatePercent != nil {
			rate = *item.GSTRatePercent
		}
		lines[i] = gst.LineItem{
			Description:     strings.TrimSpace(item.Description),
			HSNCode:         strings.TrimSpace(item.HSNCode),
			Quantity:        item.Quantity,
			Rate:            item.Rate,
			DiscountPercent: item.DiscountPercent,
			GSTRatePercent:  rate,
		}
	}

	calc, err := gst.Calculate(lines, supplierState, placeOfSupply, reverseCharge)
	if err != nil {
		return nil, err
	}
	if !gst.WithinLimit(calc.TotalAmount) {
		return nil, domain.ErrAmountOutOfRange
	}

	items := make(domain.InvoiceItems, len(lines))
	for i, line := range lines {
		tax := calc.Lines[i]
		items[i] = domain.InvoiceItem{
			Description:     line.Description,
			HSNCode:         line.HSNCode,
			Quantity:        line.Quantity,
			Rate:            line.Rate,
			DiscountPercent: line.DiscountPercent,
			GSTRatePercent:  line.GSTRatePercent,
			TaxableAmount:   tax.TaxableAmount,
			CGSTAmount:      tax.CGSTAmount,
			SGSTAmount:      tax.SGSTAmount,
			IGSTAmount:      tax.IGSTAmount,
			Total:           tax.Total,
		}
	}

	return &domain.Invoice{
		OrderID:       strings.TrimSpace(input.OrderID),
		CustomerName:  strings.TrimSpace(input.CustomerName),
		CustomerGSTIN: customerGSTIN,
		SupplierState: supplierState,
		PlaceOfSupply: placeOfSupply,
		IsInterState:  calc.IsInterState,
		ReverseCharge: calc.ReverseCharge,
		Items:         items,
		Subtotal:      calc.Subtotal,
		CGST:          calc.CGSTAmount,
		SGST:          calc.SGSTAmount,
		IGST:          calc.IGSTAmount,
		TotalTax:      calc.TotalTax,
		TotalAmount:   calc.TotalAmount,
		AmountInWords: gst.AmountInWords(calc.TotalAmount),
		Notes:         input.Notes,
	}, nil
}

func (s *invoiceService) GetByNumber(ctx context.Context, shop, invoiceNumber string) (*domain.Invoice, error) {
	return s.invoiceRepo.GetByNumber(ctx, shop, invoiceNumber)
}

func (s *invoiceService) List(ctx context.Context, shop string, filter domain.InvoiceFilter, offset, limit int) ([]domain.Invoice, int, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, 0, domain.ErrInvalidStatus
	}
	if !filter.From.IsZero() && !filter.To.IsZero() && !filter.From.Before(filter.To) {
		return nil, 0, domain.ErrInvalidDateRange
	}
	return s.invoiceRepo.List(ctx, shop, filter, offset, limit)
}

func (s *invoiceService) UpdateStatus(ctx context.Context, shop, invoiceNumber string, status domain.InvoiceStatus) (*domain.Invoice, error) {
	if !status.Valid() {
		return nil, domain.ErrInvalidStatus
	}
	inv, err := s.invoiceRepo.GetByNumber(ctx, shop, invoiceNumber)
	if err != nil {
		return nil, err
	}
	if !inv.Status.CanTransitionTo(status) {
		return nil, domain.ErrInvalidStatusTransition
	}
	if err := s.invoiceRepo.UpdateStatus(ctx, shop, invoiceNumber, inv.Status, status); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"shop":           shop,
		"invoice_number": invoiceNumber,
		"from":           inv.Status,
		"to":             status,
	}).Info("invoice status changed")

	inv.Status = status
	inv.UpdatedAt = time.Now().UTC()
	return inv, nil
}
