package i18n

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
)

// M holds placeholder values.
type M = map[string]any

// Bundle holds messages for every locale. It is immutable after New and
// safe for concurrent use.
type Bundle struct {
	messages map[string]map[string]string
	fallback string
	missing  func(locale, key string)
}

// Option configures a Bundle.
type Option func(*Bundle) error

// New returns a bundle that falls back to the given locale.
func New(fallback string, opts ...Option) (*Bundle, error) {
	fallback = normalize(fallback)
	if fallback == "" {
		return nil, ErrEmptyLocale
	}

	b := &Bundle{messages: make(map[string]map[string]string), fallback: fallback}
	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// WithMessages adds a nested message tree for locale. Nested keys are
// joined with dots: {"switcher": {"title": "..."}} becomes "switcher.title".
func WithMessages(locale string, tree map[string]any) Option {
	return func(b *Bundle) error {
		locale = normalize(locale)
		if locale == "" {
			return ErrEmptyLocale
		}
		b.add(locale, tree)
		return nil
	}
}

// WithMissingKeyHandler is called when no locale in the chain has the key.
func WithMissingKeyHandler(fn func(locale, key string)) Option {
	return func(b *Bundle) error {
		b.missing = fn
		return nil
	}
}

// T returns the message for key in locale with placeholders replaced.
// Lookup order: locale, its base language, the fallback locale. A missing
// key is returned as is.
func (b *Bundle) T(locale, key string, args ...M) string {
	msg, ok := b.lookup(locale, key)
	if !ok {
		return key
	}
	return replace(msg, args...)
}

// Tn picks the CLDR plural form of n for locale ("key.one", "key.few", ...)
// and falls back to "key.other". n is available as {{count}}.
func (b *Bundle) Tn(locale, key string, n int, args ...M) string {
	form := pluralForm(locale, n)
	msg, ok := b.lookup(locale, key+"."+form)
	if !ok && form != "other" {
		msg, ok = b.lookup(locale, key+".other")
	}
	if !ok {
		return key
	}
	return replace(msg, append([]M{{"count": n}}, args...)...)
}

// Locales returns the loaded locales, sorted.
func (b *Bundle) Locales() []string {
	return slices.Sorted(maps.Keys(b.messages))
}

// Fallback returns the fallback locale.
func (b *Bundle) Fallback() string { return b.fallback }

// Translator binds the bundle to one locale.
func (b *Bundle) Translator(locale string) *Translator {
	locale = normalize(locale)
	if locale == "" {
		locale = b.fallback
	}
	return &Translator{bundle: b, locale: locale}
}

func (b *Bundle) lookup(locale, key string) (string, bool) {
	for _, l := range b.chain(normalize(locale)) {
		if msg, ok := b.messages[l][key]; ok {
			return msg, true
		}
	}
	if b.missing != nil {
		b.missing(locale, key)
	}
	return "", false
}

func (b *Bundle) chain(locale string) []string {
	chain := make([]string, 0, 3)
	if locale != "" {
		chain = append(chain, locale)
		if base := baseLanguage(locale); base != locale {
			chain = append(chain, base)
		}
	}
	if !slices.Contains(chain, b.fallback) {
		chain = append(chain, b.fallback)
	}
	return chain
}

func (b *Bundle) add(locale string, tree map[string]any) {
	msgs := b.messages[locale]
	if msgs == nil {
		msgs = make(map[string]string)
		b.messages[locale] = msgs
	}
	flatten(msgs, tree, "")
}

func flatten(dst map[string]string, tree map[string]any, prefix string) {
	for k, v := range tree {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch v := v.(type) {
		case map[string]any:
			flatten(dst, v, key)
		case string:
			dst[key] = v
		default:
			dst[key] = fmt.Sprint(v)
		}
	}
}

func replace(msg string, args ...M) string {
	if len(args) == 0 || !strings.Contains(msg, "{{") {
		return msg
	}
	var pairs []string
	for _, m := range args {
		for k, v := range m {
			pairs = append(pairs, "{{"+k+"}}", fmt.Sprint(v))
		}
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}

func normalize(locale string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(locale), "_", "-"))
}

func baseLanguage(locale string) string {
	if tag, err := language.Parse(locale); err == nil {
		if base, conf := tag.Base(); conf != language.No {
			return base.String()
		}
	}
	if i := strings.IndexByte(locale, '-'); i > 0 {
		return locale[:i]
	}
	return locale
}

func pluralForm(locale string, n int) string {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	abs := max(n, -n)
	switch plural.Cardinal.MatchPlural(tag, abs, 0, 0, 0, 0) {
	case plural.Zero:
		return "zero"
	case plural.One:
		return "one"
	case plural.Two:
		return "two"
	case plural.Few:
		return "few"
	case plural.Many:
		return "many"
	default:
		return "other"
	}
}
