package localization

import "errors"

// ErrEmptyCatalog reports a catalog without any active entity.
var ErrEmptyCatalog = errors.New("localization: no active catalog entity")
