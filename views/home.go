package views

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/storefront/pkg/i18n"
)

// Product is a priced item as shown on the home page. Price is already
// converted and formatted for the request's currency.
type Product struct {
	Name  string
	Price string
}

// Home lists featured products.
func Home(products []Product) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := printer{w: w}
		p.raw(`<h1>`)
		p.text(i18n.T(ctx, "home.title"))
		p.raw(`</h1><p>`)
		p.text(i18n.Tn(ctx, "home.products", len(products)))
		p.raw(`</p><ul class="products">`)
		for _, item := range products {
			p.raw(`<li><span class="name">`)
			p.text(item.Name)
			p.raw(`</span> <span class="price">`)
			p.text(item.Price)
			p.raw(`</span></li>`)
		}
		p.raw(`</ul>`)
		return p.err
	})
}

// ErrorPage renders a status page body.
func ErrorPage(code int, message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := printer{w: w}
		p.raw(`<section class="error"><h1>`)
		p.text(i18n.T(ctx, "error.title", i18n.M{"code": code}))
		p.raw(`</h1><p>`)
		p.text(message)
		p.raw(`</p></section>`)
		return p.err
	})
}
