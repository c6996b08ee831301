// Package translations embeds the storefront message files.
package translations

import "embed"

// FS holds one YAML file per locale, named after the locale code.
//
//go:embed *.yaml
var FS embed.FS
