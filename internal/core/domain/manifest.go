// Package domain contains the core domain models of popl: the manifest, the lock entry set,
// the project environment and the requirement grammar.
package domain

import (
	"maps"
	"slices"
)

// ImportedManifestComment is stored in manifests synthesized from a lock file.
const ImportedManifestComment = "Note: core dependencies could not be determined from requirements.txt. " +
	"'popl install' still works though."

// Manifest is the declared-dependency document owned by a project root.
type Manifest struct {
	// Name defaults to the base name of the project directory.
	Name string `json:"name"`

	// Dependencies maps package names to the specifier requested for them.
	Dependencies map[string]string `json:"dependencies"`

	// Comment is informational and only set on manifests synthesized from a lock file.
	Comment string `json:"comment,omitempty"`

	// FromLock marks a manifest synthesized from a lock file.
	FromLock bool `json:"from_requirements_no_core_dependencies,omitempty"`
}

// NewManifest returns a manifest with an empty dependency map.
func NewManifest(name string) *Manifest {
	return &Manifest{
		Name:         name,
		Dependencies: make(map[string]string),
	}
}

// Upsert records specifier under name, replacing any previous entry.
func (m *Manifest) Upsert(name, specifier string) {
	if m.Dependencies == nil {
		m.Dependencies = make(map[string]string)
	}
	m.Dependencies[name] = specifier
}

// DeclaredSpecifiers returns the declared specifiers ordered by package name.
func (m *Manifest) DeclaredSpecifiers() []string {
	names := slices.Sorted(maps.Keys(m.Dependencies))
	specs := make([]string, 0, len(names))
	for _, name := range names {
		specs = append(specs, m.Dependencies[name])
	}
	return specs
}
