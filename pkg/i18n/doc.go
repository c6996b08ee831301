// Package i18n translates interface strings for the resolved locale.
//
// Messages live in one YAML file per locale:
//
//	# translations/ar.yaml
//	switcher:
//	  currency: العملة
//	cart:
//	  items:
//	    one: "{{count}} منتج"
//	    other: "{{count}} منتجات"
//
// Lookups fall back from "pt-br" to "pt" and then to the bundle's fallback
// locale. Plural forms follow CLDR cardinal rules from golang.org/x/text.
package i18n
