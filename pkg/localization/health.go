package localization

import (
	"context"
	"fmt"

	"github.com/dmitrymomot/storefront/pkg/catalog"
	"github.com/dmitrymomot/storefront/pkg/health"
)

// CatalogCheck fails while either catalog has no active entity, the
// condition under which resolvers serve the configured fallback.
func CatalogCheck(locales catalog.LocaleLookup, currencies catalog.CurrencyLookup) health.CheckFunc {
	return func(ctx context.Context) error {
		if _, err := catalog.FirstActive(ctx, locales); err != nil {
			return fmt.Errorf("%w: locales: %w", ErrEmptyCatalog, err)
		}
		if _, err := catalog.FirstActive(ctx, currencies); err != nil {
			return fmt.Errorf("%w: currencies: %w", ErrEmptyCatalog, err)
		}
		return nil
	}
}
