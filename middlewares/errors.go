package middlewares

import (
	"errors"
	"fmt"
)

// PanicError is a recovered panic. Recover wraps it in a 500 HTTPError.
type PanicError struct {
	Value any
	Stack []byte // nil when stack printing is disabled
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// AsPanicError extracts the PanicError from an error chain.
func AsPanicError(err error) (*PanicError, bool) {
	var pe *PanicError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
