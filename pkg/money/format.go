package money

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dmitrymomot/storefront/pkg/catalog"
)

// Round rounds amount to the currency's decimal places.
func Round(amount decimal.Decimal, c catalog.Currency) decimal.Decimal {
	return amount.Round(c.Format.DecimalPlaces)
}

// FormatNumber renders amount with the currency's separators and precision, without a symbol.
func FormatNumber(amount decimal.Decimal, f catalog.Format) string {
	places := max(f.DecimalPlaces, 0)
	rounded := amount.Round(places)

	whole, frac, _ := strings.Cut(rounded.Abs().StringFixed(places), ".")

	var b strings.Builder
	if rounded.IsNegative() {
		b.WriteByte('-')
	}
	b.WriteString(group(whole, f.ThousandSeparator))
	if places > 0 {
		b.WriteString(f.DecimalSeparator)
		b.WriteString(frac)
	}
	return b.String()
}

// Format renders amount in currency c, e.g. "$1,234.50" or "1.234,50 €".
// Negative amounts keep the sign in front of the symbol: "-$5.00".
func Format(amount decimal.Decimal, c catalog.Currency) string {
	number := FormatNumber(amount, c.Format)
	if c.Symbol == "" {
		return number
	}

	if c.Format.SymbolPosition == catalog.SymbolAfter {
		return number + " " + c.Symbol
	}
	if sign, rest, ok := strings.Cut(number, "-"); ok && sign == "" {
		return "-" + c.Symbol + rest
	}
	return c.Symbol + number
}

func group(digits, sep string) string {
	if sep == "" || len(digits) <= 3 {
		return digits
	}

	head := len(digits) % 3
	if head == 0 {
		head = 3
	}

	var b strings.Builder
	b.Grow(len(digits) + (len(digits)/3)*len(sep))
	b.WriteString(digits[:head])
	for i := head; i < len(digits); i += 3 {
		b.WriteString(sep)
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
