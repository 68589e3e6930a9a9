package handlers

import (
	"net/http"
	"slices"

	"github.com/dmitrymomot/polyglot/internal"
	"github.com/dmitrymomot/polyglot/middlewares"
	"github.com/dmitrymomot/polyglot/pkg/i18n"
	"github.com/dmitrymomot/polyglot/pkg/langurl"
)

// Languages exposes the available languages and the negotiation outcome as JSON.
type Languages struct {
	negotiator *i18n.Negotiator
}

// NewLanguages creates the language API handler.
func NewLanguages(n *i18n.Negotiator) *Languages {
	return &Languages{negotiator: n}
}

func (h *Languages) Routes(r internal.Router) {
	r.Route("/api", func(r internal.Router) {
		r.GET("/languages", h.list)
		r.GET("/resolve", h.resolve)
	})
}

// LanguagesResponse is the picker model for a page.
type LanguagesResponse struct {
	Default   string                `json:"default"`
	Current   string                `json:"current"`
	Languages []i18n.LanguageOption `json:"languages"`
}

// list answers GET /api/languages?path=/es/lessons/intro.
// Current is the path's language prefix when it has one, otherwise the
// request's negotiated language.
func (h *Languages) list(c internal.Context) error {
	available := h.negotiator.Available(c)
	isAvailable := func(s string) bool { return slices.Contains(available, s) }

	page := c.Query("path")
	current, _, ok := langurl.Split(page, isAvailable)
	if !ok {
		current = h.current(c)
	}

	return c.JSON(http.StatusOK, LanguagesResponse{
		Default: h.negotiator.Default(),
		Current: current,
		Languages: i18n.Options(available, current, func(lang string) string {
			return langurl.Switch(page, lang, isAvailable)
		}),
	})
}

// ResolveResponse explains how the request's language was chosen.
type ResolveResponse struct {
	Language       string       `json:"language"`
	Source         i18n.Source  `json:"source"`
	AcceptLanguage string       `json:"accept_language,omitempty"`
	Preferences    []preference `json:"preferences,omitempty"`
	Available      []string     `json:"available"`
}

type preference struct {
	Tag     string  `json:"tag"`
	Quality float64 `json:"q"`
}

// resolve answers GET /api/resolve.
func (h *Languages) resolve(c internal.Context) error {
	signal := c.Header(middlewares.AcceptLanguageHeader)

	resp := ResolveResponse{
		Language:       middlewares.GetLanguage(c),
		Source:         middlewares.GetLanguageSource(c),
		AcceptLanguage: signal,
		Available:      h.negotiator.Available(c),
	}
	if resp.Language == "" {
		res := h.negotiator.Negotiate(c, signal, nil)
		resp.Language, resp.Source = res.Language, res.Source
	}
	for _, p := range i18n.ParsePreferences(signal) {
		resp.Preferences = append(resp.Preferences, preference{Tag: p.Tag, Quality: p.Quality})
	}

	c.SetHeader("Cache-Control", "no-store")
	return c.JSON(http.StatusOK, resp)
}

func (h *Languages) current(c internal.Context) string {
	if lang := c.Language(); lang != "" {
		return lang
	}
	return h.negotiator.Default()
}
