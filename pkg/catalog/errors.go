package catalog

import "errors"

var (
	// ErrNotFound is returned when no active entity matches the request.
	ErrNotFound = errors.New("catalog: entity not found")

	ErrInvalidSeed         = errors.New("catalog: invalid seed")
	ErrInvalidLocaleCode   = errors.New("catalog: invalid locale code")
	ErrInvalidCurrencyCode = errors.New("catalog: invalid currency code")
	ErrDuplicateCode       = errors.New("catalog: duplicate code")
	ErrInvalidRate         = errors.New("catalog: invalid exchange rate")
)
