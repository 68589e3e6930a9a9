package content

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Store is a read-only inventory of content items.
//
// Item ids are slash-separated paths whose first segment is the item's
// language, e.g. "es/lessons/intro.md".
type Store interface {
	// IDs returns the id of every content item.
	IDs(ctx context.Context) ([]string, error)

	// Open returns the raw item body. The caller must close it.
	// Returns ErrNotFound if the item does not exist.
	Open(ctx context.Context, id string) (io.ReadCloser, error)
}

// DefaultExtensions are the file extensions treated as content items.
var DefaultExtensions = []string{".md", ".mdx"}

// validID reports whether id is a clean relative slash path that cannot
// escape the store root.
func validID(id string) bool {
	return id != "." && fs.ValidPath(id) && !strings.Contains(id, "\\")
}

// hasExtension reports whether name ends in one of exts (case-insensitive).
// An empty exts accepts every name.
func hasExtension(name string, exts []string) bool {
	if len(exts) == 0 {
		return true
	}
	lower := strings.ToLower(name)
	for _, ext := range exts {
		if strings.HasSuffix(lower, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}

// validatePatterns rejects malformed exclude globs.
func validatePatterns(patterns []string) error {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("%w: bad exclude pattern %q", ErrInvalidConfig, p)
		}
	}
	return nil
}

// excluded reports whether id matches any of the "**"-aware glob patterns,
// e.g. "*/drafts/**" or "**/*.draft.md".
func excluded(id string, patterns []string) bool {
	for _, p := range patterns {
		if doublestar.MatchUnvalidated(p, id) {
			return true
		}
	}
	return false
}
