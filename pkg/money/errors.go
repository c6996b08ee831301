package money

import "errors"

var ErrInvalidRate = errors.New("money: exchange rate must be positive")
