package i18n

// Translator is a Bundle bound to one locale.
type Translator struct {
	bundle *Bundle
	locale string
}

func (t *Translator) T(key string, args ...M) string {
	return t.bundle.T(t.locale, key, args...)
}

func (t *Translator) Tn(key string, n int, args ...M) string {
	return t.bundle.Tn(t.locale, key, n, args...)
}

// Locale returns the bound locale code.
func (t *Translator) Locale() string { return t.locale }
