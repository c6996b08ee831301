package rates

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
)

// Parse reads currency rates from a JSON document. path selects an object
// of code to rate, basePath the code the rates are quoted against.
// Rates are rebased onto base when the feed quotes another currency.
//
//	{"base": "EUR", "rates": {"USD": 1.087, "GBP": 0.857}}
func Parse(body []byte, path, basePath, base string) (map[string]decimal.Decimal, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: malformed json", ErrInvalidFeed)
	}
	doc := gjson.ParseBytes(body)

	obj := doc.Get(path)
	if !obj.IsObject() {
		return nil, fmt.Errorf("%w: %q is not an object", ErrInvalidFeed, path)
	}

	base = strings.ToUpper(base)
	out := make(map[string]decimal.Decimal)
	var parseErr error
	obj.ForEach(func(key, value gjson.Result) bool {
		var (
			rate decimal.Decimal
			err  error
		)
		switch value.Type {
		case gjson.Number:
			rate, err = decimal.NewFromString(value.Raw)
		case gjson.String:
			rate, err = decimal.NewFromString(strings.TrimSpace(value.Str))
		default:
			err = ErrInvalidFeed
		}
		if err != nil || !rate.IsPositive() {
			parseErr = fmt.Errorf("%w: rate for %s: %q", ErrInvalidFeed, key.String(), value.Raw)
			return false
		}
		out[strings.ToUpper(key.String())] = rate
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	quoted := strings.ToUpper(doc.Get(basePath).String())
	if quoted == "" || quoted == base {
		out[base] = decimal.NewFromInt(1)
		return out, nil
	}

	pivot, ok := out[base]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingBase, base)
	}
	out[quoted] = decimal.NewFromInt(1)
	for code, rate := range out {
		out[code] = rate.DivRound(pivot, 10)
	}
	return out, nil
}

// HTTPSource downloads the feed document.
type HTTPSource struct {
	client *http.Client
	url    string
}

// NewHTTPSource returns a source for url. A nil client uses http.DefaultClient.
func NewHTTPSource(client *http.Client, url string) *HTTPSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSource{client: client, url: url}
}

// Fetch returns the response body.
func (s *HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rates: fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrFeedStatus, resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, 1<<20))
}
