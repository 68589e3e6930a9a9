package i18n

import "errors"

var (
	ErrEmptyLanguage        = errors.New("i18n: language cannot be empty")
	ErrNoSupportedLanguages = errors.New("i18n: supported languages cannot be empty")
	ErrInvalidLanguage      = errors.New("i18n: invalid language code")
	ErrUnsupportedDefault   = errors.New("i18n: default language is not supported")
	ErrNilLister            = errors.New("i18n: content lister cannot be nil")
)
