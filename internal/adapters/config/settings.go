package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/emdiet/popl/internal/core/domain"
	"github.com/emdiet/popl/internal/core/ports"
	"github.com/joho/godotenv"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.SettingsLoader = (*SettingsLoader)(nil)

// SettingsLoader layers defaults, the user config file, a local .env file and
// the process environment, lowest to highest precedence.
type SettingsLoader struct {
	getenv        func(string) string
	userConfigDir func() (string, error)
}

// NewSettingsLoader creates a SettingsLoader reading the real process environment.
func NewSettingsLoader() *SettingsLoader {
	return &SettingsLoader{
		getenv:        os.Getenv,
		userConfigDir: os.UserConfigDir,
	}
}

// Load resolves the settings for an invocation started in cwd.
func (l *SettingsLoader) Load(cwd string) (domain.Settings, error) {
	settings := domain.DefaultSettings()

	dotenv, err := readDotEnv(filepath.Join(cwd, DotEnvFileName))
	if err != nil {
		return domain.Settings{}, err
	}

	lookup := func(key string) string {
		if v := l.getenv(key); v != "" {
			return v
		}
		return dotenv[key]
	}

	path, explicit := lookup(EnvConfig), true
	if path == "" {
		explicit = false
		if dir, dirErr := l.userConfigDir(); dirErr == nil {
			path = filepath.Join(dir, "popl", "config.yaml")
		}
	}
	if path != "" {
		if err := applyFile(&settings, path, explicit); err != nil {
			return domain.Settings{}, err
		}
	}

	if v := lookup(EnvRuntime); v != "" {
		settings.Runtime = v
	}
	if v := lookup(EnvEnvDir); v != "" {
		settings.EnvDir = v
	}
	if v := lookup(EnvShell); v != "" {
		settings.Shell = strings.Fields(v)
	}
	if v := lookup(EnvLogFormat); v != "" {
		settings.LogFormat = strings.ToLower(v)
	}

	if settings.LogFormat != domain.LogFormatPretty && settings.LogFormat != domain.LogFormatJSON {
		return domain.Settings{}, zerr.With(domain.ErrConfigParseFailed, "log_format", settings.LogFormat)
	}

	return settings, nil
}

// applyFile overlays the YAML file at path. A missing default file is skipped,
// a missing explicit file is an error.
func applyFile(settings *domain.Settings, path string, explicit bool) error {
	// #nosec G304 -- path comes from the user's own configuration
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return nil
		}
		return zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	var file settingsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", path)
	}

	if file.Runtime != "" {
		settings.Runtime = file.Runtime
	}
	if file.EnvDir != "" {
		settings.EnvDir = file.EnvDir
	}
	if len(file.Shell) > 0 {
		settings.Shell = file.Shell
	}
	if file.LogFormat != "" {
		settings.LogFormat = strings.ToLower(file.LogFormat)
	}
	return nil
}

// readDotEnv parses the .env file without touching the process environment.
func readDotEnv(path string) (map[string]string, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	values, err := godotenv.Read(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", path)
	}
	return values, nil
}
