package domain

import "path/filepath"

// Project describes the project root governing an invocation.
// It is recomputed on every invocation and never persisted.
type Project struct {
	Root         string
	ManifestPath string
	LockPath     string
	Env          Environment
}

// NewProject derives the project layout rooted at root.
func NewProject(root, envDirName, goos string) Project {
	if envDirName == "" {
		envDirName = DefaultEnvDirName
	}
	envDir := envDirName
	if !filepath.IsAbs(envDir) {
		envDir = filepath.Join(root, envDirName)
	}
	return Project{
		Root:         root,
		ManifestPath: filepath.Join(root, ManifestFileName),
		LockPath:     filepath.Join(root, LockFileName),
		Env:          NewEnvironment(envDir, goos),
	}
}

// Name returns the default manifest name for the project.
func (p Project) Name() string {
	return filepath.Base(p.Root)
}
