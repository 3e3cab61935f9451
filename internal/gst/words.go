package gst

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	onesWords = [...]string{
		"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
		"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
		"Seventeen", "Eighteen", "Nineteen",
	}
	tensWords = [...]string{
		"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
	}
)

// Indian numbering groups, largest first.
var indianGroups = []struct {
	size int64
	word string
}{
	{10000000, "Crore"},
	{100000, "Lakh"},
	{1000, "Thousand"},
}

// AmountInWords spells a rupee amount in the Indian numbering system, e.g.
// "One Lakh Twenty Three Thousand Rupees and Fifty Paise Only".
func AmountInWords(amount decimal.Decimal) string {
	var prefix []string
	if amount.IsNegative() {
		prefix = []string{"Minus"}
		amount = amount.Abs()
	}

	rupees := amount.Floor()
	paise := amount.Sub(rupees).Mul(hundred).Round(0).IntPart()
	if paise == 100 {
		rupees = rupees.Add(decimal.NewFromInt(1))
		paise = 0
	}

	if rupees.IsZero() && paise == 0 {
		return "Zero Rupees Only"
	}

	words := append(prefix, integerWords(rupees)...)
	if rupees.IsZero() {
		words = append(words, "Zero")
	}
	words = append(words, "Rupees")
	if paise > 0 {
		words = append(words, "and")
		words = append(words, hundredsWords(paise)...)
		words = append(words, "Paise")
	}
	words = append(words, "Only")
	return strings.Join(words, " ")
}

// integerWords spells a whole number n >= 0; zero yields no words. Crore
// counts above 99 are spelled recursively ("One Thousand Crore"). The
// arithmetic stays in decimal so amounts beyond int64 are spelled correctly.
func integerWords(n decimal.Decimal) []string {
	var words []string
	for _, g := range indianGroups {
		size := decimal.NewFromInt(g.size)
		if n.GreaterThanOrEqual(size) {
			q, r := n.QuoRem(size, 0)
			words = append(words, integerWords(q)...)
			words = append(words, g.word)
			n = r
		}
	}
	return append(words, hundredsWords(n.IntPart())...)
}

// hundredsWords spells 0 <= n <= 999.
func hundredsWords(n int64) []string {
	var words []string
	if n > 99 {
		words = append(words, onesWords[n/100], "Hundred")
		n %= 100
	}
	if n > 19 {
		words = append(words, tensWords[n/10])
		n %= 10
	}
	if n > 0 {
		words = append(words, onesWords[n])
	}
	return words
}
