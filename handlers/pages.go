package handlers

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"path"
	"slices"
	"strings"

	"github.com/dmitrymomot/polyglot/internal"
	"github.com/dmitrymomot/polyglot/pkg/content"
	"github.com/dmitrymomot/polyglot/pkg/i18n"
	"github.com/dmitrymomot/polyglot/pkg/langurl"
)

const markdownContentType = "text/markdown; charset=utf-8"

// Pages serves raw content items under /{lang}/ and redirects every other
// path to its localized form.
type Pages struct {
	store     content.Store
	languages i18n.LanguageSource
}

// NewPages creates the content handler.
func NewPages(store content.Store, languages i18n.LanguageSource) *Pages {
	return &Pages{store: store, languages: languages}
}

func (h *Pages) Routes(r internal.Router) {
	r.GET("/", h.page)
	r.GET("/*", h.page)
}

func (h *Pages) page(c internal.Context) error {
	available := h.languages.Languages(c)
	fallback := h.languages.Default()
	// The default language owns its prefix even without content, so that
	// /{default}/... answers 404 instead of redirecting again.
	isPrefix := func(s string) bool { return s == fallback || slices.Contains(available, s) }

	lang, rest, ok := langurl.Split(c.Request().URL.Path, isPrefix)
	if !ok {
		return h.redirect(c, rest, available)
	}

	id, body, err := h.open(c, lang, rest)
	if err != nil {
		return err
	}
	defer body.Close()

	c.SetHeader("Content-Language", lang)
	return c.Stream(http.StatusOK, contentType(id), body)
}

// open returns the first existing content item backing rest.
func (h *Pages) open(c internal.Context, lang, rest string) (string, io.ReadCloser, error) {
	for _, id := range candidates(lang, rest) {
		body, err := h.store.Open(c, id)
		switch {
		case err == nil:
			return id, body, nil
		case errors.Is(err, content.ErrNotFound), errors.Is(err, content.ErrInvalidID):
			continue
		default:
			return "", nil, internal.ErrInternal("", internal.WithError(err))
		}
	}
	return "", nil, internal.ErrNotFound("page not found", internal.WithErrorCode("page_not_found"))
}

// redirect sends the client to p under the request's language, or the
// first available language when the negotiated one has no content.
func (h *Pages) redirect(c internal.Context, p string, available []string) error {
	lang := c.Language()
	if lang == "" {
		lang = h.languages.Default()
	}
	if !slices.Contains(available, lang) && len(available) > 0 {
		lang = available[0]
	}

	target := langurl.Build(lang, p)
	if q := c.Request().URL.RawQuery; q != "" {
		target += "?" + q
	}
	return c.Redirect(http.StatusFound, target)
}

// candidates lists the content ids that may back rest: the path itself,
// then with ".md", then its index. Hidden segments never match.
func candidates(lang, rest string) []string {
	trimmed := strings.Trim(rest, "/")
	if trimmed == "" {
		return []string{lang + "/index.md"}
	}
	for seg := range strings.SplitSeq(trimmed, "/") {
		if strings.HasPrefix(seg, ".") {
			return nil
		}
	}

	base := lang + "/" + trimmed
	if strings.HasSuffix(rest, "/") {
		return []string{base + "/index.md"}
	}
	return []string{base, base + ".md", base + "/index.md"}
}

func contentType(id string) string {
	switch ext := strings.ToLower(path.Ext(id)); ext {
	case ".md", ".mdx":
		return markdownContentType
	default:
		if t := mime.TypeByExtension(ext); t != "" {
			return t
		}
		return "application/octet-stream"
	}
}
