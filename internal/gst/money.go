package gst

import "github.com/shopspring/decimal"

// MoneyPlaces is the number of fraction digits kept on every amount (paise).
const MoneyPlaces = 2

var (
	hundred = decimal.NewFromInt(100)
	two     = decimal.NewFromInt(2)
)

// RoundMoney rounds to paise, half away from zero.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

// Percent returns amount * rate / 100 rounded to paise.
func Percent(amount, rate decimal.Decimal) decimal.Decimal {
	if rate.IsZero() {
		return decimal.Zero
	}
	return RoundMoney(amount.Mul(rate).Div(hundred))
}

// SplitHalf divides an amount into two halves that sum exactly to amount.
// When amount has an odd number of paise the first half takes the extra paisa.
func SplitHalf(amount decimal.Decimal) (first, second decimal.Decimal) {
	first = RoundMoney(amount.Div(two))
	return first, amount.Sub(first)
}

// MaxAmount is the largest amount an invoice column (NUMERIC(14,2)) can hold.
var MaxAmount = decimal.RequireFromString("999999999999.99")

// WithinLimit reports whether |d| fits in an invoice amount column.
func WithinLimit(d decimal.Decimal) bool {
	return d.Abs().LessThanOrEqual(MaxAmount)
}
