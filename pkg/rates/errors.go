package rates

import "errors"

var (
	ErrFeedStatus  = errors.New("rates: unexpected feed status")
	ErrInvalidFeed = errors.New("rates: invalid feed")
	ErrMissingBase = errors.New("rates: feed has no rate for base currency")
)
