// Package lockfile reads and writes the plain-text lock artifact.
package lockfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/emdiet/popl/internal/core/domain"
	"github.com/emdiet/popl/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.LockStore = (*Store)(nil)

// Store implements ports.LockStore on the local filesystem.
type Store struct{}

// NewStore creates a new lock Store.
func NewStore() *Store {
	return &Store{}
}

// Read returns the entries of the lock file at path. A missing file has no entries.
func (s *Store) Read(path string) ([]string, error) {
	//nolint:gosec // Path is derived from the located project root
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrLockReadFailed.Error()), "path", path)
	}
	return domain.ParseLockEntries(data), nil
}

// Write replaces the lock file at path with the header and entries.
func (s *Store) Write(path string, entries []string) error {
	//nolint:gosec // Path is derived from the located project root
	if err := os.WriteFile(filepath.Clean(path), domain.FormatLockEntries(entries), domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrLockWriteFailed.Error()), "path", path)
	}
	return nil
}

// Exists reports whether a regular file exists at path.
func (s *Store) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Digest computes the XXHash of the entries in order.
func (s *Store) Digest(entries []string) string {
	hasher := xxhash.New()
	for _, entry := range entries {
		_, _ = hasher.WriteString(entry)
		_, _ = hasher.Write([]byte{0})
	}
	return fmt.Sprintf("%016x", hasher.Sum64())
}
