package content

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"slices"
	"strings"
)

// FSOption configures an FSStore.
type FSOption func(*FSStore)

// WithExtensions limits the store to files with the given extensions.
// Passing no extensions accepts every regular file.
func WithExtensions(exts ...string) FSOption {
	return func(s *FSStore) {
		s.extensions = exts
	}
}

// WithExclude hides items whose id matches any of the glob patterns.
// Patterns use doublestar syntax, so "**" crosses directories.
func WithExclude(patterns ...string) FSOption {
	return func(s *FSStore) {
		s.exclude = patterns
	}
}

// FSStore serves content items from an fs.FS, such as os.DirFS or embed.FS.
// The fs.FS root must contain language directories directly.
//
// Example structure:
//
//	en/index.md
//	en/lessons/intro.md
//	uk/index.md
type FSStore struct {
	fsys       fs.FS
	extensions []string
	exclude    []string
}

// NewFSStore creates a store over fsys.
func NewFSStore(fsys fs.FS, opts ...FSOption) (*FSStore, error) {
	if fsys == nil {
		return nil, fmt.Errorf("%w: nil filesystem", ErrInvalidConfig)
	}

	s := &FSStore{
		fsys:       fsys,
		extensions: DefaultExtensions,
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := validatePatterns(s.exclude); err != nil {
		return nil, err
	}

	return s, nil
}

// IDs walks the filesystem and returns the sorted paths of all content files.
// Hidden files and directories (leading ".") are skipped.
func (s *FSStore) IDs(ctx context.Context) ([]string, error) {
	var ids []string

	err := fs.WalkDir(s.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if p != "." && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() || !hasExtension(path.Base(p), s.extensions) || excluded(p, s.exclude) {
			return nil
		}

		ids = append(ids, p)
		return nil
	})
	if err != nil {
		return nil, errors.Join(ErrListFailed, err)
	}

	slices.Sort(ids)
	return ids, nil
}

// Open opens a content item by id.
func (s *FSStore) Open(ctx context.Context, id string) (io.ReadCloser, error) {
	if !validID(id) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	if excluded(id, s.exclude) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := s.fsys.Open(id)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("content: open %q: %w", id, err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("content: stat %q: %w", id, err)
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %s is a directory", ErrNotFound, id)
	}

	return f, nil
}

var _ Store = (*FSStore)(nil)
