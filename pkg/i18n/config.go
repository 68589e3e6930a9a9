package i18n

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// DefaultLang is the default language code used when no default language is specified.
const DefaultLang = "en"

// Config holds the language configuration owned by the host application.
type Config struct {
	// SupportedLanguages is the fixed set of codes content may be published in.
	SupportedLanguages []string `env:"SUPPORTED_LANGUAGES" envDefault:"en,es,uk" envSeparator:"," yaml:"supported_languages"`

	// DefaultLanguage is the fallback code. Must be one of SupportedLanguages.
	DefaultLanguage string `env:"DEFAULT_LANGUAGE" envDefault:"en" yaml:"default_language"`
}

// Validate checks that every code is a lowercase ISO 639 base subtag and that
// the default language is supported.
func (c Config) Validate() error {
	if c.DefaultLanguage == "" {
		return ErrEmptyLanguage
	}
	if len(c.SupportedLanguages) == 0 {
		return ErrNoSupportedLanguages
	}

	for _, code := range c.SupportedLanguages {
		if err := validateCode(code); err != nil {
			return err
		}
	}
	if err := validateCode(c.DefaultLanguage); err != nil {
		return err
	}

	if !c.Supported().Contains(c.DefaultLanguage) {
		return fmt.Errorf("%w: %q", ErrUnsupportedDefault, c.DefaultLanguage)
	}

	return nil
}

// Supported returns SupportedLanguages as a Set.
func (c Config) Supported() Set {
	return NewSet(c.SupportedLanguages...)
}

// Default returns the configured default language, or DefaultLang if unset.
func (c Config) Default() string {
	if c.DefaultLanguage == "" {
		return DefaultLang
	}
	return c.DefaultLanguage
}

func validateCode(code string) error {
	if code == "" || code != strings.ToLower(code) || strings.ContainsAny(code, "-_ /") {
		return fmt.Errorf("%w: %q", ErrInvalidLanguage, code)
	}
	if _, err := language.ParseBase(code); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidLanguage, code, err)
	}
	return nil
}
