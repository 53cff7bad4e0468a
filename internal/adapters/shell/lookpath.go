package shell

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// lookPath searches for an executable in the directories named by the PATH
// entry of env rather than the current process environment.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if k, v, ok := strings.Cut(e, "="); ok && strings.EqualFold(k, "PATH") {
			path = v
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		for _, candidate := range candidates(filepath.Join(dir, file)) {
			if err := findExecutable(candidate); err == nil {
				return candidate, nil
			}
		}
	}
	return "", exec.ErrNotFound
}

// candidates expands a bare name with the executable suffixes used on Windows.
func candidates(path string) []string {
	if runtime.GOOS != "windows" || filepath.Ext(path) != "" {
		return []string{path}
	}
	return []string{path + ".exe", path + ".bat", path + ".cmd", path}
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && (runtime.GOOS == "windows" || m&0o111 != 0) {
		return nil
	}
	return os.ErrPermission
}

func hasPathSeparator(name string) bool {
	return strings.ContainsRune(name, '/') || strings.ContainsRune(name, filepath.Separator)
}
