package preference

import (
	"strings"
)

// Kind is what a signal asks for.
type Kind string

const (
	KindLocale   Kind = "locale"
	KindCurrency Kind = "currency"
)

// Source is where a signal was read from.
type Source int

const (
	SourceQuery Source = iota
	SourceCookie
	SourceProfile
	SourceSession
	SourceHeader
	// SourceDefault marks values that did not come from the request:
	// the catalog default or the configured fallback.
	SourceDefault
)

func (s Source) String() string {
	switch s {
	case SourceQuery:
		return "query"
	case SourceCookie:
		return "cookie"
	case SourceProfile:
		return "profile"
	case SourceSession:
		return "session"
	case SourceHeader:
		return "header"
	case SourceDefault:
		return "default"
	}
	return "unknown"
}

// Request parameter, cookie and session key names.
const (
	LocaleParam   = "lang"
	CurrencyParam = "currency"

	LocaleKey     = "locale"
	CurrencyKey   = "currency"
	CurrencyIDKey = "currency_id"
)

// Priority lists the sources consulted for each kind, highest first.
var Priority = map[Kind][]Source{
	KindLocale:   {SourceQuery, SourceCookie, SourceProfile, SourceSession, SourceHeader},
	KindCurrency: {SourceQuery, SourceCookie, SourceSession, SourceProfile},
}

// Signal is a candidate code read from one source.
// Rank is the source's index in the kind's priority list.
type Signal struct {
	Kind   Kind
	Source Source
	Code   string
	Rank   int
}

// Signals holds the present signals of one request for both kinds.
type Signals struct {
	Locale   []Signal
	Currency []Signal
}

// AcceptLanguagePrefix returns the first two letters of the primary
// Accept-Language value, lower-cased: "ar-EG,en;q=0.8" gives "ar".
// Wildcards and malformed values give "".
func AcceptLanguagePrefix(header string) string {
	primary, _, _ := strings.Cut(header, ",")
	primary, _, _ = strings.Cut(primary, ";")
	primary = strings.TrimSpace(primary)
	if len(primary) < 2 {
		return ""
	}

	prefix := strings.ToLower(primary[:2])
	for _, r := range prefix {
		if r < 'a' || r > 'z' {
			return ""
		}
	}
	return prefix
}

func sessionKey(kind Kind) string {
	if kind == KindCurrency {
		return CurrencyKey
	}
	return LocaleKey
}

func queryParam(kind Kind) string {
	if kind == KindCurrency {
		return CurrencyParam
	}
	return LocaleParam
}
