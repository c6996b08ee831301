package handlers

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dmitrymomot/storefront"
	"github.com/dmitrymomot/storefront/pkg/catalog"
	"github.com/dmitrymomot/storefront/pkg/job"
	"github.com/dmitrymomot/storefront/pkg/rates"
)

// LocalizationResponse describes the locale and currency bound to a request.
type LocalizationResponse struct {
	Locale      string         `json:"locale"`
	Direction   string         `json:"direction"`
	Currency    string         `json:"currency"`
	Symbol      string         `json:"symbol"`
	Format      catalog.Format `json:"format"`
	SampleInput string         `json:"sample_input"`
	Sample      string         `json:"sample"`
}

// CatalogResponse lists the entities a switcher can offer.
type CatalogResponse struct {
	Locales    []catalog.Locale   `json:"locales"`
	Currencies []catalog.Currency `json:"currencies"`
}

// APIHandler serves the localization JSON endpoints.
type APIHandler struct {
	locales    catalog.LocaleLookup
	currencies catalog.CurrencyLookup
	adminToken string
}

// APIOption configures an APIHandler.
type APIOption func(*APIHandler)

// WithAdminToken enables POST /api/rates/refresh for requests that carry
// the token as a bearer credential.
func WithAdminToken(token string) APIOption {
	return func(h *APIHandler) {
		h.adminToken = token
	}
}

// NewAPIHandler creates the API handler.
func NewAPIHandler(locales catalog.LocaleLookup, currencies catalog.CurrencyLookup, opts ...APIOption) *APIHandler {
	h := &APIHandler{locales: locales, currencies: currencies}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes declares all routes for the API handler.
func (h *APIHandler) Routes(r storefront.Router) {
	r.Route("/api", func(r storefront.Router) {
		r.GET("/localization", h.localization)
		r.GET("/catalog", h.catalog)
		if h.adminToken != "" {
			r.POST("/rates/refresh", h.refreshRates, h.requireAdmin)
		}
	})
}

// localization returns the request's bound context with a formatted sample.
func (h *APIHandler) localization(c storefront.Context) error {
	amount, err := parseSampleAmount(storefront.QueryDefault(c, "amount", "1234.5"))
	if err != nil {
		return storefront.ErrBadRequest("amount must be a decimal number", storefront.WithErrorCode("invalid_amount"))
	}

	loc, cur := c.Locale(), c.Currency()
	return c.JSON(http.StatusOK, LocalizationResponse{
		Locale:      loc.Code,
		Direction:   string(loc.Direction),
		Currency:    cur.Code,
		Symbol:      cur.Symbol,
		Format:      cur.Format,
		SampleInput: amount.String(),
		Sample:      c.FormatPrice(amount),
	})
}

// Sample amounts are bounded so formatting stays cheap.
const (
	maxAmountLength   = 32
	maxAmountExponent = 15
	minAmountExponent = -12
)

var (
	errAmountRange  = errors.New("amount out of range")
	maxSampleAmount = decimal.New(1, maxAmountExponent)
)

func parseSampleAmount(raw string) (decimal.Decimal, error) {
	if len(raw) > maxAmountLength {
		return decimal.Zero, errAmountRange
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, err
	}
	if exp := amount.Exponent(); exp > maxAmountExponent || exp < minAmountExponent {
		return decimal.Zero, errAmountRange
	}
	if amount.Abs().GreaterThanOrEqual(maxSampleAmount) {
		return decimal.Zero, errAmountRange
	}
	return amount, nil
}

// catalog lists active locales and currencies in catalog order.
func (h *APIHandler) catalog(c storefront.Context) error {
	locales, err := h.locales.List(c.Context())
	if err != nil {
		return err
	}
	currencies, err := h.currencies.List(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, CatalogResponse{
		Locales:    catalog.Active(locales),
		Currencies: catalog.Active(currencies),
	})
}

// refreshRates queues an immediate exchange-rate refresh.
func (h *APIHandler) refreshRates(c storefront.Context) error {
	err := c.Enqueue(rates.TaskName, nil, job.UniqueFor(time.Minute))
	if errors.Is(err, storefront.ErrJobsNotConfigured) {
		return storefront.ErrServiceUnavailable("background jobs are disabled")
	}
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusAccepted)
}

func (h *APIHandler) requireAdmin(next storefront.HandlerFunc) storefront.HandlerFunc {
	return func(c storefront.Context) error {
		token, ok := strings.CutPrefix(c.Header("Authorization"), "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(token), []byte(h.adminToken)) != 1 {
			return storefront.ErrUnauthorized("")
		}
		return next(c)
	}
}
