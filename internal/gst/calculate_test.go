package gst_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstbook/internal/gst"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func widget() gst.LineItem {
	return gst.LineItem{
		Description:     "Widget",
		Quantity:        2,
		Rate:            d("500"),
		DiscountPercent: decimal.Zero,
		GSTRatePercent:  d("18"),
	}
}

func assertMoney(t *testing.T, expected string, actual decimal.Decimal, field string) {
	t.Helper()
	assert.True(t, d(expected).Equal(actual), "%s: expected %s, got %s", field, expected, actual)
}

func TestCalculate_IntraStateWidget(t *testing.T) {
	calc, err := gst.Calculate([]gst.LineItem{widget()}, "Maharashtra", "Maharashtra", false)
	require.NoError(t, err)

	assert.False(t, calc.IsInterState)
	assertMoney(t, "1000.00", calc.Subtotal, "subtotal")
	assertMoney(t, "90.00", calc.CGSTAmount, "cgst")
	assertMoney(t, "90.00", calc.SGSTAmount, "sgst")
	assertMoney(t, "0.00", calc.IGSTAmount, "igst")
	assertMoney(t, "180.00", calc.TotalTax, "total_tax")
	assertMoney(t, "1180.00", calc.TotalAmount, "total_amount")
	require.Len(t, calc.Lines, 1)
	assertMoney(t, "1180.00", calc.Lines[0].Total, "line total")
}

func TestCalculate_InterStateUsesIGSTOnly(t *testing.T) {
	items := []gst.LineItem{widget()}

	inter, err := gst.Calculate(items, "Maharashtra", "Karnataka", false)
	require.NoError(t, err)
	assert.True(t, inter.IsInterState)
	assert.True(t, inter.CGSTAmount.IsZero())
	assert.True(t, inter.SGSTAmount.IsZero())
	assertMoney(t, "180.00", inter.IGSTAmount, "igst")

	intra, err := gst.Calculate(items, "Maharashtra", "Maharashtra", false)
	require.NoError(t, err)
	assert.True(t, intra.IGSTAmount.IsZero())
}

func TestCalculate_EmptyItems(t *testing.T) {
	for _, items := range [][]gst.LineItem{nil, {}} {
		calc, err := gst.Calculate(items, "Goa", "Kerala", false)
		require.NoError(t, err)
		assert.True(t, calc.Subtotal.IsZero())
		assert.True(t, calc.TotalTax.IsZero())
		assert.True(t, calc.TotalAmount.IsZero())
		assert.Empty(t, calc.Lines)
	}
}

func TestCalculate_StateComparisonIsCanonical(t *testing.T) {
	calc, err := gst.Calculate([]gst.LineItem{widget()}, "Maharashtra", "  maharashtra ", false)
	require.NoError(t, err)
	assert.False(t, calc.IsInterState)
	assert.True(t, calc.IGSTAmount.IsZero())

	calc, err = gst.Calculate([]gst.LineItem{widget()}, "tamil  nadu", "Tamil Nadu", false)
	require.NoError(t, err)
	assert.False(t, calc.IsInterState)
}

func TestCalculate_OddPaiseSplitSumsExactly(t *testing.T) {
	// 0.05 * 18% = 0.009 -> 0.01 tax, an odd paisa.
	item := gst.LineItem{Description: "Pin", Quantity: 1, Rate: d("0.05"), GSTRatePercent: d("18")}

	calc, err := gst.Calculate([]gst.LineItem{item}, "Goa", "Goa", false)
	require.NoError(t, err)
	assertMoney(t, "0.01", calc.TotalTax, "total_tax")
	assert.True(t, calc.CGSTAmount.Add(calc.SGSTAmount).Equal(calc.TotalTax))
	assertMoney(t, "0.01", calc.CGSTAmount, "cgst")
	assertMoney(t, "0.00", calc.SGSTAmount, "sgst")
}

func TestCalculate_RoundsPerItem(t *testing.T) {
	// 1.11 at 5% is 0.0555, rounded to 0.06 on each line. Rounding once over
	// the subtotal would give 3.33 at 5% = 0.1665 -> 0.17.
	item := gst.LineItem{Description: "Clip", Quantity: 1, Rate: d("1.11"), GSTRatePercent: d("5")}
	items := []gst.LineItem{item, item, item}

	calc, err := gst.Calculate(items, "Goa", "Kerala", false)
	require.NoError(t, err)
	assertMoney(t, "3.33", calc.Subtotal, "subtotal")
	assertMoney(t, "0.18", calc.IGSTAmount, "igst")
	assertMoney(t, "3.51", calc.TotalAmount, "total_amount")
}

func TestCalculate_DiscountApplied(t *testing.T) {
	item := gst.LineItem{Description: "Shirt", Quantity: 3, Rate: d("999.99"), DiscountPercent: d("10"), GSTRatePercent: d("12")}

	calc, err := gst.Calculate([]gst.LineItem{item}, "Delhi", "Punjab", false)
	require.NoError(t, err)
	// 2999.97 * 0.9 = 2699.973 -> 2699.97; 12% = 323.9964 -> 324.00
	assertMoney(t, "2699.97", calc.Subtotal, "subtotal")
	assertMoney(t, "324.00", calc.IGSTAmount, "igst")
	assertMoney(t, "3023.97", calc.TotalAmount, "total_amount")
}

func TestCalculate_ReverseChargeDoesNotChangeAmounts(t *testing.T) {
	items := []gst.LineItem{widget()}

	normal, err := gst.Calculate(items, "Goa", "Goa", false)
	require.NoError(t, err)
	reverse, err := gst.Calculate(items, "Goa", "Goa", true)
	require.NoError(t, err)

	assert.True(t, reverse.ReverseCharge)
	assert.True(t, normal.TotalTax.Equal(reverse.TotalTax))
	assert.True(t, normal.TotalAmount.Equal(reverse.TotalAmount))
}

func TestCalculate_Idempotent(t *testing.T) {
	items := []gst.LineItem{
		widget(),
		{Description: "Cable", Quantity: 7, Rate: d("33.33"), DiscountPercent: d("2.5"), GSTRatePercent: d("28")},
	}
	a, err := gst.Calculate(items, "Bihar", "Assam", false)
	require.NoError(t, err)
	b, err := gst.Calculate(items, "Bihar", "Assam", false)
	require.NoError(t, err)
	assert.Equal(t, a.TotalAmount.String(), b.TotalAmount.String())
	assert.Equal(t, a.IGSTAmount.String(), b.IGSTAmount.String())
	assert.Equal(t, a.Subtotal.String(), b.Subtotal.String())
}

func TestCalculate_SplitInvariant(t *testing.T) {
	rates := []string{"0", "0.25", "3", "5", "12", "18", "28"}
	prices := []string{"0.01", "0.05", "1.11", "9.99", "123.45", "1000", "99999.99"}
	discounts := []string{"0", "7.5", "33.33", "100"}
	states := [][2]string{{"Goa", "Goa"}, {"Goa", "Kerala"}}

	for _, pair := range states {
		for _, rate := range rates {
			for _, price := range prices {
				for _, disc := range discounts {
					name := fmt.Sprintf("%s_%s_%s_%s_%s", pair[0], pair[1], rate, price, disc)
					items := []gst.LineItem{
						{Description: "a", Quantity: 3, Rate: d(price), DiscountPercent: d(disc), GSTRatePercent: d(rate)},
						{Description: "b", Quantity: 1, Rate: d(price), GSTRatePercent: d("18")},
					}
					calc, err := gst.Calculate(items, pair[0], pair[1], false)
					require.NoError(t, err, name)

					sum := calc.CGSTAmount.Add(calc.SGSTAmount).Add(calc.IGSTAmount)
					assert.True(t, sum.Equal(calc.TotalTax), name)
					assert.True(t, calc.Subtotal.Add(calc.TotalTax).Equal(calc.TotalAmount), name)

					intra := calc.CGSTAmount.Add(calc.SGSTAmount)
					if calc.IsInterState {
						assert.True(t, intra.IsZero(), name)
					} else {
						assert.True(t, calc.IGSTAmount.IsZero(), name)
					}
					if calc.TotalTax.IsPositive() {
						assert.True(t, intra.IsZero() != calc.IGSTAmount.IsZero(), name)
					}
				}
			}
		}
	}
}

func TestCalculate_InvalidLineItem(t *testing.T) {
	tests := []struct {
		name  string
		item  gst.LineItem
		field string
	}{
		{"zero_quantity", gst.LineItem{Quantity: 0, Rate: d("1"), GSTRatePercent: d("5")}, "quantity"},
		{"negative_quantity", gst.LineItem{Quantity: -2, Rate: d("1"), GSTRatePercent: d("5")}, "quantity"},
		{"negative_rate", gst.LineItem{Quantity: 1, Rate: d("-0.01"), GSTRatePercent: d("5")}, "rate"},
		{"discount_over_100", gst.LineItem{Quantity: 1, Rate: d("1"), DiscountPercent: d("100.5"), GSTRatePercent: d("5")}, "discount_percent"},
		{"negative_discount", gst.LineItem{Quantity: 1, Rate: d("1"), DiscountPercent: d("-1"), GSTRatePercent: d("5")}, "discount_percent"},
		{"gst_rate_over_100", gst.LineItem{Quantity: 1, Rate: d("1"), GSTRatePercent: d("101")}, "gst_rate_percent"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := []gst.LineItem{widget(), tt.item}
			calc, err := gst.Calculate(items, "Goa", "Goa", false)

			assert.Nil(t, calc)
			assert.ErrorIs(t, err, gst.ErrInvalidLineItem)

			var lineErr *gst.LineItemError
			require.True(t, errors.As(err, &lineErr))
			assert.Equal(t, 1, lineErr.Index)
			assert.Equal(t, tt.field, lineErr.Field)
		})
	}
}

func TestCalculate_AcceptsUnusualRates(t *testing.T) {
	item := gst.LineItem{Description: "Gold", Quantity: 1, Rate: d("10000"), GSTRatePercent: d("3")}
	calc, err := gst.Calculate([]gst.LineItem{item}, "Kerala", "Kerala", false)
	require.NoError(t, err)
	assertMoney(t, "150", calc.CGSTAmount, "cgst")
	assertMoney(t, "150", calc.SGSTAmount, "sgst")
}
