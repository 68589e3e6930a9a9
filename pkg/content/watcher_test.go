package content_test

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/polyglot/pkg/content"
)

func TestWatcherReportsChanges(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "en"), 0o755))

	w, err := content.NewWatcher(dir, content.WithDebounce(20*time.Millisecond))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var changes atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func() { changes.Add(1) })
	}()

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "uk"), 0o755))
	require.Eventually(t, func() bool { return changes.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)

	// Directories created after start are watched too.
	before := changes.Load()
	require.Eventually(t, func() bool {
		_ = os.WriteFile(filepath.Join(dir, "uk", "index.md"), []byte("# Привіт"), 0o644)
		return changes.Load() > before
	}, 2*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcherDebouncesBursts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	w, err := content.NewWatcher(dir, content.WithDebounce(200*time.Millisecond))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var changes atomic.Int32
	go func() { _ = w.Run(ctx, func() { changes.Add(1) }) }()

	for _, name := range []string{"a.md", "b.md", "c.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}

	require.Eventually(t, func() bool { return changes.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
	require.Never(t, func() bool { return changes.Load() > 1 }, 400*time.Millisecond, 20*time.Millisecond)
}

func TestNewWatcherInvalidRoot(t *testing.T) {
	t.Parallel()

	_, err := content.NewWatcher(filepath.Join(t.TempDir(), "missing"))
	require.ErrorIs(t, err, os.ErrNotExist)

	file := filepath.Join(t.TempDir(), "file.md")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	_, err = content.NewWatcher(file)
	require.ErrorIs(t, err, content.ErrInvalidConfig)
}
