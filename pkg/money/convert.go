package money

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/dmitrymomot/storefront/pkg/catalog"
)

// Convert returns amount * rate(to) / rate(from). The result is not rounded.
func Convert(amount decimal.Decimal, from, to catalog.Currency) (decimal.Decimal, error) {
	if !from.ExchangeRate.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrInvalidRate, from.Code)
	}
	if !to.ExchangeRate.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrInvalidRate, to.Code)
	}
	if from.Code == to.Code {
		return amount, nil
	}
	return amount.Mul(to.ExchangeRate).Div(from.ExchangeRate), nil
}
