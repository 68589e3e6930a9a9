package content

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for more changes before
// reporting.
const DefaultDebounce = 500 * time.Millisecond

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets the quiet period collapsing bursts of file events.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithWatcherLogger sets the watcher logger.
func WithWatcherLogger(l *slog.Logger) WatcherOption {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// Watcher reports changes under a content directory.
type Watcher struct {
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	dir      string
	debounce time.Duration
}

// NewWatcher watches dir and every non-hidden subdirectory.
func NewWatcher(dir string, opts ...WatcherOption) (*Watcher, error) {
	if info, err := os.Stat(dir); err != nil {
		return nil, err
	} else if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrInvalidConfig, dir)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher:  fsw,
		logger:   slog.New(slog.DiscardHandler),
		dir:      dir,
		debounce: DefaultDebounce,
	}
	for _, opt := range opts {
		opt(w)
	}

	if err := w.addTree(dir); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	return w, nil
}

// Run calls onChange once per burst of changes until ctx is done.
// It closes the underlying watcher before returning.
func (w *Watcher) Run(ctx context.Context, onChange func()) error {
	defer w.watcher.Close()

	var (
		timer   *time.Timer
		timerCh <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if hidden(event.Name) {
				continue
			}
			if event.Has(fsnotify.Create) {
				// New directories must be watched explicitly.
				_ = w.addTree(event.Name)
			}

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerCh = timer.C

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.WarnContext(ctx, "content watcher error", slog.Any("error", err))

		case <-timerCh:
			timerCh = nil
			w.logger.InfoContext(ctx, "content changed", slog.String("dir", w.dir))
			onChange()
		}
	}
}

// addTree adds root and its non-hidden subdirectories. Non-directories are ignored.
func (w *Watcher) addTree(root string) error {
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != root && hidden(p) {
			return fs.SkipDir
		}
		return w.watcher.Add(p)
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func hidden(p string) bool {
	return strings.HasPrefix(filepath.Base(p), ".")
}
