package i18n

import "errors"

var (
	ErrEmptyLocale = errors.New("i18n: locale cannot be empty")
	ErrInvalidFile = errors.New("i18n: invalid translation file")
)
