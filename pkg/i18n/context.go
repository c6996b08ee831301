package i18n

import "context"

// ContextKey is the context key a request's Translator is stored under.
type ContextKey struct{}

// WithTranslator returns a copy of ctx carrying t.
func WithTranslator(ctx context.Context, t *Translator) context.Context {
	return context.WithValue(ctx, ContextKey{}, t)
}

// FromContext returns the translator stored in ctx, or nil.
func FromContext(ctx context.Context) *Translator {
	t, _ := ctx.Value(ContextKey{}).(*Translator)
	return t
}

// T translates key with the translator in ctx. Without one the key is returned.
func T(ctx context.Context, key string, args ...M) string {
	if t := FromContext(ctx); t != nil {
		return t.T(key, args...)
	}
	return key
}

// Tn is the plural form of T.
func Tn(ctx context.Context, key string, n int, args ...M) string {
	if t := FromContext(ctx); t != nil {
		return t.Tn(key, n, args...)
	}
	return key
}
