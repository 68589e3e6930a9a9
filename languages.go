package polyglot

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/dmitrymomot/polyglot/pkg/i18n"
)

// liveLanguages serves available languages from a Scanner that can be
// replaced at runtime. A fresh Scanner starts with an empty cache, so the
// next lookup after Reload rescans the store.
type liveLanguages struct {
	current atomic.Pointer[i18n.Scanner]
	build   func() (*i18n.Scanner, error)
	logger  *slog.Logger
}

func newLiveLanguages(build func() (*i18n.Scanner, error), log *slog.Logger) (*liveLanguages, error) {
	s, err := build()
	if err != nil {
		return nil, err
	}

	l := &liveLanguages{build: build, logger: log}
	l.current.Store(s)
	return l, nil
}

// Languages implements i18n.LanguageSource.
func (l *liveLanguages) Languages(ctx context.Context) []string {
	return l.current.Load().Languages(ctx)
}

// Default implements i18n.LanguageSource.
func (l *liveLanguages) Default() string {
	return l.current.Load().Default()
}

// Ready lists the store only until a scan succeeds and then answers from
// the memoized result.
func (l *liveLanguages) Ready(ctx context.Context) error {
	s := l.current.Load()
	s.Languages(ctx)
	if !s.Scanned() {
		return ErrContentUnavailable
	}
	return nil
}

// Reload swaps in a fresh Scanner. The previous one keeps serving until the
// swap; on error it stays in place.
func (l *liveLanguages) Reload() {
	s, err := l.build()
	if err != nil {
		l.logger.Error("failed to rebuild language scanner", slog.Any("error", err))
		return
	}
	l.current.Store(s)
	l.logger.Info("available languages invalidated")
}

var _ i18n.LanguageSource = (*liveLanguages)(nil)
