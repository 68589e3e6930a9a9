package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// LanguageOption is one entry of a language picker.
type LanguageOption struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	URL    string `json:"url"`
	Active bool   `json:"active"`
}

// Options builds picker entries for the available languages in the order
// given. Names are the language's own name for itself ("Español",
// "Українська"). href maps a code to the link target; when nil, URL is empty.
func Options(available []string, active string, href func(lang string) string) []LanguageOption {
	options := make([]LanguageOption, 0, len(available))
	for _, code := range available {
		opt := LanguageOption{
			Code:   code,
			Name:   NativeName(code),
			Active: code == active,
		}
		if href != nil {
			opt.URL = href(code)
		}
		options = append(options, opt)
	}
	return options
}

// NativeName returns the self-name of a language, or the code itself when
// the code is unknown.
func NativeName(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	if name := display.Self.Name(tag); name != "" {
		return name
	}
	return code
}
