package i18n

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// WithYAMLDir loads every "<locale>.yaml" (or .yml) file at the root of fsys.
func WithYAMLDir(fsys fs.FS) Option {
	return func(b *Bundle) error {
		entries, err := fs.ReadDir(fsys, ".")
		if err != nil {
			return fmt.Errorf("i18n: read translations: %w", err)
		}
		for _, e := range entries {
			ext := strings.ToLower(path.Ext(e.Name()))
			if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
				continue
			}

			data, err := fs.ReadFile(fsys, e.Name())
			if err != nil {
				return fmt.Errorf("i18n: read %q: %w", e.Name(), err)
			}
			var tree map[string]any
			if err := yaml.Unmarshal(data, &tree); err != nil {
				return fmt.Errorf("%w: %q: %w", ErrInvalidFile, e.Name(), err)
			}

			locale := normalize(strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
			if locale == "" {
				return fmt.Errorf("%w: %q has no locale name", ErrInvalidFile, e.Name())
			}
			b.add(locale, tree)
		}
		return nil
	}
}
