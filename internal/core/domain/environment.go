package domain

import (
	"os"
	"path/filepath"
	"strings"
)

// Environment is the handle of an isolated environment: its directory and the executables
// derived from it for a platform.
type Environment struct {
	Dir       string
	BinDir    string
	Runtime   string
	Installer string
}

// NewEnvironment computes the executable paths of the environment at dir for goos.
// It performs no I/O.
func NewEnvironment(dir, goos string) Environment {
	if goos == "windows" {
		bin := filepath.Join(dir, "Scripts")
		return Environment{
			Dir:       dir,
			BinDir:    bin,
			Runtime:   filepath.Join(bin, "python.exe"),
			Installer: filepath.Join(bin, "pip.exe"),
		}
	}

	bin := filepath.Join(dir, "bin")
	return Environment{
		Dir:       dir,
		BinDir:    bin,
		Runtime:   filepath.Join(bin, "python"),
		Installer: filepath.Join(bin, "pip"),
	}
}

// Activate derives a child environment from base with the environment's bin directory
// prepended to PATH and EnvMarkerVar pointing at the environment. PYTHONHOME is dropped,
// like the activation scripts do. Variable order is preserved.
func (e Environment) Activate(base []string) []string {
	out := make([]string, 0, len(base)+2)
	pathSet := false

	for _, entry := range base {
		key, value, _ := strings.Cut(entry, "=")
		switch {
		case strings.EqualFold(key, "PATH"):
			if pathSet {
				continue
			}
			pathSet = true
			if value == "" {
				out = append(out, key+"="+e.BinDir)
			} else {
				out = append(out, key+"="+e.BinDir+string(os.PathListSeparator)+value)
			}
		case key == EnvMarkerVar, key == "PYTHONHOME":
			continue
		default:
			out = append(out, entry)
		}
	}

	if !pathSet {
		out = append(out, "PATH="+e.BinDir)
	}
	return append(out, EnvMarkerVar+"="+e.Dir)
}
