// Package config locates popl projects and loads user settings.
package config

import (
	"os"
	"path/filepath"

	"github.com/emdiet/popl/internal/core/domain"
	"github.com/emdiet/popl/internal/core/ports"
)

var _ ports.ProjectLocator = (*Locator)(nil)

// Locator finds the project root by searching for the manifest upward.
type Locator struct{}

// NewLocator creates a new Locator.
func NewLocator() *Locator {
	return &Locator{}
}

// FindRoot walks from start towards the filesystem root and returns the first
// directory containing a manifest.
func (l *Locator) FindRoot(start string) (string, bool) {
	currentDir := filepath.Clean(start)

	for {
		if info, err := os.Stat(filepath.Join(currentDir, domain.ManifestFileName)); err == nil && !info.IsDir() {
			return currentDir, true
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", false
		}
		currentDir = parentDir
	}
}
