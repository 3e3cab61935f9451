package gst

import (
	"github.com/shopspring/decimal"
)

// LineItem is one taxable line on an invoice.
type LineItem struct {
	Description     string          `json:"description"`
	HSNCode         string          `json:"hsn_code,omitempty"`
	Quantity        int64           `json:"quantity"`
	Rate            decimal.Decimal `json:"rate"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	GSTRatePercent  decimal.Decimal `json:"gst_rate_percent"`
}

// TaxableAmount is quantity * rate less the percentage discount, in rupees
// rounded to paise.
func (li LineItem) TaxableAmount() decimal.Decimal {
	gross := li.Rate.Mul(decimal.NewFromInt(li.Quantity))
	net := gross.Mul(hundred.Sub(li.DiscountPercent)).Div(hundred)
	return RoundMoney(net)
}

func (li LineItem) validate(index int) error {
	switch {
	case li.Quantity <= 0:
		return &LineItemError{Index: index, Field: "quantity", Reason: "must be a positive integer"}
	case li.Rate.IsNegative():
		return &LineItemError{Index: index, Field: "rate", Reason: "must not be negative"}
	case li.DiscountPercent.IsNegative() || li.DiscountPercent.GreaterThan(hundred):
		return &LineItemError{Index: index, Field: "discount_percent", Reason: "must be between 0 and 100"}
	case li.GSTRatePercent.IsNegative() || li.GSTRatePercent.GreaterThan(hundred):
		return &LineItemError{Index: index, Field: "gst_rate_percent", Reason: "must be between 0 and 100"}
	}
	return nil
}

// LineTax is the tax breakdown of a single line item.
type LineTax struct {
	TaxableAmount decimal.Decimal `json:"taxable_amount"`
	CGSTAmount    decimal.Decimal `json:"cgst_amount"`
	SGSTAmount    decimal.Decimal `json:"sgst_amount"`
	IGSTAmount    decimal.Decimal `json:"igst_amount"`
	Total         decimal.Decimal `json:"total"`
}

// Calculation is the result of taxing a set of line items.
//
// Every amount is rounded to paise per line item; the aggregate fields are
// exact sums of the rounded line values, so TotalTax equals
// CGST+SGST+IGST and TotalAmount equals Subtotal+TotalTax.
type Calculation struct {
	Subtotal      decimal.Decimal `json:"subtotal"`
	CGSTAmount    decimal.Decimal `json:"cgst_amount"`
	SGSTAmount    decimal.Decimal `json:"sgst_amount"`
	IGSTAmount    decimal.Decimal `json:"igst_amount"`
	TotalTax      decimal.Decimal `json:"total_tax"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	IsInterState  bool            `json:"is_inter_state"`
	ReverseCharge bool            `json:"reverse_charge"`
	Lines         []LineTax       `json:"lines"`
}

// Calculate computes the GST on items supplied from supplierState to
// recipientState. Different states yield IGST; the same state yields CGST and
// SGST in equal halves. State identifiers are compared case-insensitively.
//
// reverseCharge is carried through to the result and does not change any
// amount.
func Calculate(items []LineItem, supplierState, recipientState string, reverseCharge bool) (*Calculation, error) {
	calc := &Calculation{
		Subtotal:      decimal.Zero,
		CGSTAmount:    decimal.Zero,
		SGSTAmount:    decimal.Zero,
		IGSTAmount:    decimal.Zero,
		IsInterState:  !SameState(supplierState, recipientState),
		ReverseCharge: reverseCharge,
		Lines:         make([]LineTax, 0, len(items)),
	}

	for i := range items {
		if err := items[i].validate(i); err != nil {
			return nil, err
		}
	}

	for i := range items {
		line := taxLine(items[i], calc.IsInterState)
		calc.Subtotal = calc.Subtotal.Add(line.TaxableAmount)
		calc.CGSTAmount = calc.CGSTAmount.Add(line.CGSTAmount)
		calc.SGSTAmount = calc.SGSTAmount.Add(line.SGSTAmount)
		calc.IGSTAmount = calc.IGSTAmount.Add(line.IGSTAmount)
		calc.Lines = append(calc.Lines, line)
	}

	calc.TotalTax = calc.CGSTAmount.Add(calc.SGSTAmount).Add(calc.IGSTAmount)
	calc.TotalAmount = calc.Subtotal.Add(calc.TotalTax)
	return calc, nil
}

func taxLine(item LineItem, interState bool) LineTax {
	line := LineTax{
		TaxableAmount: item.TaxableAmount(),
		CGSTAmount:    decimal.Zero,
		SGSTAmount:    decimal.Zero,
		IGSTAmount:    decimal.Zero,
	}
	tax := Percent(line.TaxableAmount, item.GSTRatePercent)
	if interState {
		line.IGSTAmount = tax
	} else {
		line.CGSTAmount, line.SGSTAmount = SplitHalf(tax)
	}
	line.Total = line.TaxableAmount.Add(tax)
	return line
}
