// Package money formats and converts prices using the rules carried by
// catalog currencies.
//
// Amounts are [decimal.Decimal] values. Formatting rounds half away from zero
// to the currency's decimal places, groups the integer part with its thousand
// separator and places the symbol before or after the number:
//
//	money.Format(decimal.RequireFromString("1234.5"), usd) // "$1,234.50"
//	money.Format(decimal.RequireFromString("1234.5"), eur) // "1.234,50 €"
//
// Conversion goes through the base currency: amount * rate(to) / rate(from).
package money
