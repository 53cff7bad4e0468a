package ports

import "github.com/emdiet/popl/internal/core/domain"

// ManifestStore loads and saves project manifests.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ManifestStore interface {
	// Load reads the manifest at path. A malformed document yields domain.ErrManifestParse.
	Load(path string) (*domain.Manifest, error)

	// Save writes the manifest to path, replacing any previous content.
	Save(path string, manifest *domain.Manifest) error

	// Exists reports whether a manifest exists at path.
	Exists(path string) bool
}

// LockStore reads and writes lock artifacts.
type LockStore interface {
	// Read returns the locked specifiers in file order. A missing file yields an empty slice.
	Read(path string) ([]string, error)

	// Write replaces the lock file at path with entries.
	Write(path string, entries []string) error

	// Exists reports whether a lock file exists at path.
	Exists(path string) bool

	// Digest returns a stable fingerprint of entries.
	Digest(entries []string) string
}
