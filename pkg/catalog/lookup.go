package catalog

import (
	"context"
	"strings"
)

// Lookup resolves codes to active catalog entities.
// A miss is reported as ErrNotFound.
type Lookup[E Entity] interface {
	// FindActive returns the active entity with the given code.
	FindActive(ctx context.Context, code string) (E, error)

	// Default returns the first entity flagged default and active.
	Default(ctx context.Context) (E, error)

	// List returns every entity, active or not, in catalog order.
	List(ctx context.Context) ([]E, error)
}

// LocaleLookup is a Lookup over locales.
type LocaleLookup = Lookup[Locale]

// CurrencyLookup is a Lookup over currencies.
type CurrencyLookup = Lookup[Currency]

// FirstActive returns the first active entity in catalog order,
// ignoring the default flag.
func FirstActive[E Entity](ctx context.Context, l Lookup[E]) (E, error) {
	var zero E
	list, err := l.List(ctx)
	if err != nil {
		return zero, err
	}
	for _, e := range list {
		if e.entry().IsActive {
			return e, nil
		}
	}
	return zero, ErrNotFound
}

// Active filters list down to active entities, preserving order.
func Active[E Entity](list []E) []E {
	out := make([]E, 0, len(list))
	for _, e := range list {
		if e.entry().IsActive {
			out = append(out, e)
		}
	}
	return out
}

func findActive[E Entity](list []E, code string) (E, bool) {
	var zero E
	code = codeKey(code)
	if code == "" {
		return zero, false
	}
	for _, e := range list {
		en := e.entry()
		if en.IsActive && codeKey(en.Code) == code {
			return e, true
		}
	}
	return zero, false
}

func findDefault[E Entity](list []E) (E, bool) {
	var zero E
	for _, e := range list {
		en := e.entry()
		if en.IsActive && en.IsDefault {
			return e, true
		}
	}
	return zero, false
}

// codeKey folds a code for comparison.
func codeKey(code string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(code), "_", "-"))
}
