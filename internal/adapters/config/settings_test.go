package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/emdiet/popl/internal/adapters/config"
	"github.com/emdiet/popl/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envFrom(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func noConfigDir() (string, error) {
	return "", errors.New("no config dir")
}

func TestSettingsLoader_Defaults(t *testing.T) {
	loader := config.NewSettingsLoaderWith(envFrom(nil), noConfigDir)

	got, err := loader.Load(t.TempDir())

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), got)
}

func TestSettingsLoader_Layering(t *testing.T) {
	configDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(configDir, "popl"), 0o750))
	yamlContent := `
runtime: python3.12
env_dir: .env-file
shell: ["bash", "-c"]
log_format: json
`
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "popl", "config.yaml"), []byte(yamlContent), 0o600))

	cwd := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(cwd, config.DotEnvFileName),
		[]byte("POPL_ENV_DIR=.venv-dotenv\nPOPL_RUNTIME=python3.11\n"), 0o600))

	tests := []struct {
		name string
		env  map[string]string
		want domain.Settings
	}{
		{
			name: "dotenv overrides file",
			env:  nil,
			want: domain.Settings{
				Runtime:   "python3.11",
				EnvDir:    ".venv-dotenv",
				Shell:     []string{"bash", "-c"},
				LogFormat: domain.LogFormatJSON,
			},
		},
		{
			name: "process env overrides dotenv",
			env: map[string]string{
				config.EnvRuntime:   "pypy3",
				config.EnvShell:     "zsh -c",
				config.EnvLogFormat: "PRETTY",
			},
			want: domain.Settings{
				Runtime:   "pypy3",
				EnvDir:    ".venv-dotenv",
				Shell:     []string{"zsh", "-c"},
				LogFormat: domain.LogFormatPretty,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader := config.NewSettingsLoaderWith(envFrom(tt.env), func() (string, error) {
				return configDir, nil
			})

			got, err := loader.Load(cwd)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSettingsLoader_ExplicitConfigPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("runtime: /opt/python/bin/python3\n"), 0o600))

	loader := config.NewSettingsLoaderWith(envFrom(map[string]string{config.EnvConfig: path}), noConfigDir)
	got, err := loader.Load(t.TempDir())

	require.NoError(t, err)
	assert.Equal(t, "/opt/python/bin/python3", got.Runtime)
	assert.Equal(t, domain.DefaultEnvDirName, got.EnvDir)
}

func TestSettingsLoader_Errors(t *testing.T) {
	dir := t.TempDir()
	malformed := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(malformed, []byte("runtime: [unclosed"), 0o600))

	tests := []struct {
		name    string
		env     map[string]string
		wantErr error
	}{
		{
			name:    "malformed yaml",
			env:     map[string]string{config.EnvConfig: malformed},
			wantErr: domain.ErrConfigParseFailed,
		},
		{
			name:    "missing explicit file",
			env:     map[string]string{config.EnvConfig: filepath.Join(dir, "absent.yaml")},
			wantErr: domain.ErrConfigReadFailed,
		},
		{
			name:    "unknown log format",
			env:     map[string]string{config.EnvLogFormat: "xml"},
			wantErr: domain.ErrConfigParseFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader := config.NewSettingsLoaderWith(envFrom(tt.env), noConfigDir)

			_, err := loader.Load(t.TempDir())

			require.Error(t, err)
			assert.ErrorContains(t, err, tt.wantErr.Error())
		})
	}
}

func TestSettingsLoader_MissingDefaultFileIgnored(t *testing.T) {
	loader := config.NewSettingsLoaderWith(envFrom(nil), func() (string, error) {
		return t.TempDir(), nil
	})

	got, err := loader.Load(t.TempDir())

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), got)
}
