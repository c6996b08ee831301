package views

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/storefront/pkg/i18n"
	"github.com/dmitrymomot/storefront/pkg/localization"
)

// Layout renders the HTML document around body. The lang and dir attributes
// come from the locale bound to the request; without one the document is
// rendered as left-to-right with no lang.
func Layout(title string, nav, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		lang, dir := "", "ltr"
		if rc, ok := localization.FromContext(ctx); ok {
			lang, dir = rc.Locale().Code, string(rc.Direction())
		}

		p := printer{w: w}
		p.raw(`<!DOCTYPE html><html`)
		if lang != "" {
			p.attr("lang", lang)
		}
		p.attr("dir", dir)
		p.raw(`><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
		p.text(title)
		p.raw(`</title></head><body><header>`)
		p.raw(`<a href="/">`)
		p.text(i18n.T(ctx, "shop.name"))
		p.raw(`</a>`)
		if p.err == nil && nav != nil {
			p.err = nav.Render(ctx, w)
		}
		p.raw(`</header><main>`)
		if p.err == nil && body != nil {
			p.err = body.Render(ctx, w)
		}
		p.raw(`</main></body></html>`)
		return p.err
	})
}

// printer writes markup and keeps the first error.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) raw(s string) {
	if p.err == nil {
		_, p.err = io.WriteString(p.w, s)
	}
}

func (p *printer) text(s string) {
	p.raw(templ.EscapeString(s))
}

func (p *printer) attr(name, value string) {
	p.raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}
