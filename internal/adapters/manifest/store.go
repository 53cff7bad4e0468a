// Package manifest persists the project manifest as indented JSON.
package manifest

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/emdiet/popl/internal/core/domain"
	"github.com/emdiet/popl/internal/core/ports"
	"go.trai.ch/zerr"
)

const indent = "    "

var errDependencyList = zerr.New("dependencies must be an object")

var _ ports.ManifestStore = (*Store)(nil)

// Store implements ports.ManifestStore on the local filesystem.
type Store struct{}

// NewStore creates a new manifest Store.
func NewStore() *Store {
	return &Store{}
}

// Load reads and decodes the manifest at path. Unknown keys are ignored.
func (s *Store) Load(path string) (*domain.Manifest, error) {
	//nolint:gosec // Path is derived from the located project root
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrManifestReadFailed.Error()), "path", path)
	}

	m, err := decode(data)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrManifestParse.Error()), "path", path)
	}
	return m, nil
}

// document shadows the dependency table so it can be checked before decoding.
type document struct {
	domain.Manifest
	Dependencies json.RawMessage `json:"dependencies"`
}

// decode accepts an empty array for dependencies, as written by older manifests.
func decode(data []byte) (*domain.Manifest, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	m := doc.Manifest
	m.Dependencies = make(map[string]string)

	raw := bytes.TrimSpace(doc.Dependencies)
	switch {
	case len(raw) == 0, bytes.Equal(raw, []byte("null")):
	case raw[0] == '[':
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, err
		}
		if len(items) > 0 {
			return nil, zerr.With(errDependencyList, "entries", len(items))
		}
	default:
		if err := json.Unmarshal(raw, &m.Dependencies); err != nil {
			return nil, err
		}
	}
	return &m, nil
}

// Save encodes the manifest and replaces the file at path.
func (s *Store) Save(path string, m *domain.Manifest) error {
	data, err := Encode(m)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrManifestWriteFailed.Error()), "path", path)
	}

	//nolint:gosec // Path is derived from the located project root
	if err := os.WriteFile(filepath.Clean(path), data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrManifestWriteFailed.Error()), "path", path)
	}
	return nil
}

// Exists reports whether a regular file exists at path.
func (s *Store) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Encode renders the manifest with four-space indentation and a trailing newline.
// Version operators such as ">=" are written literally.
func Encode(m *domain.Manifest) ([]byte, error) {
	out := *m
	if out.Dependencies == nil {
		out.Dependencies = map[string]string{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(out); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
