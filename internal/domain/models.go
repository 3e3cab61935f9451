package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShopSettings holds a merchant's company profile and invoice numbering state.
type ShopSettings struct {
	Shop           string          `db:"shop" json:"shop"`
	CompanyName    string          `db:"company_name" json:"company_name"`
	CompanyGSTIN   string          `db:"company_gstin" json:"company_gstin"`
	CompanyState   string          `db:"company_state" json:"company_state"`
	CompanyAddress string          `db:"company_address" json:"company_address"`
	InvoicePrefix  string          `db:"invoice_prefix" json:"invoice_prefix"`
	InvoiceCounter int             `db:"invoice_counter" json:"invoice_counter"`
	DefaultGSTRate decimal.Decimal `db:"default_gst_rate" json:"default_gst_rate"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at" json:"updated_at"`
}

// Invoice is an issued GST invoice. InvoiceNumber is unique per shop.
type Invoice struct {
	ID            uuid.UUID       `db:"id" json:"id"`
	Shop          string          `db:"shop" json:"shop"`
	InvoiceNumber string          `db:"invoice_number" json:"invoice_number"`
	OrderID       string          `db:"order_id" json:"order_id,omitempty"`
	CustomerName  string          `db:"customer_name" json:"customer_name"`
	CustomerGSTIN string          `db:"customer_gstin" json:"customer_gstin,omitempty"`
	SupplierState string          `db:"supplier_state" json:"supplier_state"`
	PlaceOfSupply string          `db:"place_of_supply" json:"place_of_supply"`
	IsInterState  bool            `db:"is_inter_state" json:"is_inter_state"`
	ReverseCharge bool            `db:"reverse_charge" json:"reverse_charge"`
	Items         InvoiceItems    `db:"items" json:"items"`
	Subtotal      decimal.Decimal `db:"subtotal" json:"subtotal"`
	CGST          decimal.Decimal `db:"cgst" json:"cgst"`
	SGST          decimal.Decimal `db:"sgst" json:"sgst"`
	IGST          decimal.Decimal `db:"igst" json:"igst"`
	TotalTax      decimal.Decimal `db:"total_tax" json:"total_tax"`
	TotalAmount   decimal.Decimal `db:"total_amount" json:"total_amount"`
	AmountInWords string          `db:"amount_in_words" json:"amount_in_words"`
	Status        InvoiceStatus   `db:"status" json:"status"`
	Notes         string          `db:"notes" json:"notes"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updated_at"`
}

// InvoiceItem is a stored line item: the merchant's input plus its computed tax.
type InvoiceItem struct {
	Description     string          `json:"description"`
	HSNCode         string          `json:"hsn_code,omitempty"`
	Quantity        int64           `json:"quantity"`
	Rate            decimal.Decimal `json:"rate"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	GSTRatePercent  decimal.Decimal `json:"gst_rate_percent"`
	TaxableAmount   decimal.Decimal `json:"taxable_amount"`
	CGSTAmount      decimal.Decimal `json:"cgst_amount"`
	SGSTAmount      decimal.Decimal `json:"sgst_amount"`
	IGSTAmount      decimal.Decimal `json:"igst_amount"`
	Total           decimal.Decimal `json:"total"`
}

// InvoiceItems is stored as a JSONB column.
type InvoiceItems []InvoiceItem

// Value implements driver.Valuer.
func (items InvoiceItems) Value() (driver.Value, error) {
	if items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(items)
}

// Scan implements sql.Scanner.
func (items *InvoiceItems) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*items = nil
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("InvoiceItems.Scan: unsupported type %T", src)
	}
	return json.Unmarshal(raw, items)
}

// TaxSummary aggregates the tax collected over a set of invoices.
type TaxSummary struct {
	InvoiceCount int             `db:"invoice_count" json:"invoice_count"`
	TaxableValue decimal.Decimal `db:"taxable_value" json:"taxable_value"`
	CGST         decimal.Decimal `db:"cgst" json:"cgst"`
	SGST         decimal.Decimal `db:"sgst" json:"sgst"`
	IGST         decimal.Decimal `db:"igst" json:"igst"`
	TotalTax     decimal.Decimal `db:"total_tax" json:"total_tax"`
	TotalAmount  decimal.Decimal `db:"total_amount" json:"total_amount"`
}

// InvoiceFilter narrows invoice listings. Zero values mean "no filter".
type InvoiceFilter struct {
	Status InvoiceStatus
	From   time.Time
	To     time.Time
}
