package views

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/storefront/pkg/catalog"
	"github.com/dmitrymomot/storefront/pkg/i18n"
	"github.com/dmitrymomot/storefront/pkg/localization"
)

// Switcher renders links to the locale and currency switch endpoints.
// The entries bound to the request are marked with aria-current.
func Switcher(locales []catalog.Locale, currencies []catalog.Currency) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var locale, currency string
		if rc, ok := localization.FromContext(ctx); ok {
			locale, currency = rc.Locale().Code, rc.Currency().Code
		}

		p := printer{w: w}
		p.raw(`<nav class="switcher"><ul class="locales"`)
		p.attr("aria-label", i18n.T(ctx, "switcher.language"))
		p.raw(`>`)
		for _, l := range locales {
			label := l.Name
			if label == "" {
				label = l.Code
			}
			link(&p, "/locale/"+l.Code, label, l.Code, l.Code == locale)
		}
		p.raw(`</ul><ul class="currencies"`)
		p.attr("aria-label", i18n.T(ctx, "switcher.currency"))
		p.raw(`>`)
		for _, c := range currencies {
			link(&p, "/currency/"+c.Code, c.Symbol+" "+c.Code, "", c.Code == currency)
		}
		p.raw(`</ul></nav>`)
		return p.err
	})
}

func link(p *printer, href, label, hreflang string, current bool) {
	p.raw(`<li><a`)
	p.attr("href", string(templ.URL(href)))
	if hreflang != "" {
		p.attr("hreflang", hreflang)
	}
	if current {
		p.attr("aria-current", "true")
	}
	p.raw(`>`)
	p.text(label)
	p.raw(`</a></li>`)
}
