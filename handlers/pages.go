package handlers

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/shopspring/decimal"

	"github.com/dmitrymomot/storefront"
	"github.com/dmitrymomot/storefront/pkg/catalog"
	"github.com/dmitrymomot/storefront/pkg/localization"
	"github.com/dmitrymomot/storefront/pkg/money"
	"github.com/dmitrymomot/storefront/views"
)

// Product is a featured item priced in the store's base currency.
type Product struct {
	Name  string
	Price decimal.Decimal
}

// PagesHandler renders the storefront pages.
type PagesHandler struct {
	locales    catalog.LocaleLookup
	currencies catalog.CurrencyLookup
	base       string
	products   []Product
}

// NewPagesHandler creates the pages handler. Product prices are in the
// base currency and shown converted into the request's currency. When the
// base currency is not in the catalog they are shown unconverted.
func NewPagesHandler(locales catalog.LocaleLookup, currencies catalog.CurrencyLookup, base string, products ...Product) *PagesHandler {
	return &PagesHandler{
		locales:    locales,
		currencies: currencies,
		base:       base,
		products:   products,
	}
}

// Routes declares all routes for the pages handler.
func (h *PagesHandler) Routes(r storefront.Router) {
	r.GET("/", h.home)
}

// home lists the featured products in the bound currency.
func (h *PagesHandler) home(c storefront.Context) error {
	base, err := h.currencies.FindActive(c.Context(), h.base)
	if err != nil {
		c.LogWarn("base currency unavailable, showing unconverted prices", "currency", h.base, "error", err)
	}
	rc := c.Localization()

	items := make([]views.Product, 0, len(h.products))
	for _, p := range h.products {
		items = append(items, views.Product{Name: p.Name, Price: h.price(c, rc, base, err == nil, p.Price)})
	}

	nav, err := h.switcher(c)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, views.Layout(c.T("shop.name"), nav, views.Home(items)))
}

func (h *PagesHandler) price(c storefront.Context, rc *localization.RequestContext, base catalog.Currency, known bool, amount decimal.Decimal) string {
	if !known {
		return c.FormatPrice(amount)
	}
	if rc != nil {
		v, err := rc.ConvertPrice(amount, base)
		if err == nil {
			return rc.FormatPrice(v)
		}
		c.LogWarn("price conversion failed", "from", base.Code, "to", rc.Currency().Code, "error", err)
	}
	return money.Format(amount, base)
}

func (h *PagesHandler) switcher(c storefront.Context) (templ.Component, error) {
	locales, err := h.locales.List(c.Context())
	if err != nil {
		return nil, err
	}
	currencies, err := h.currencies.List(c.Context())
	if err != nil {
		return nil, err
	}
	return views.Switcher(catalog.Active(locales), catalog.Active(currencies)), nil
}
