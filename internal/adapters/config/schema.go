package config

// settingsFile is the on-disk shape of the user config file.
type settingsFile struct {
	Runtime   string   `yaml:"runtime"`
	EnvDir    string   `yaml:"env_dir"`
	Shell     []string `yaml:"shell"`
	LogFormat string   `yaml:"log_format"`
}

// Environment variables recognised by the settings loader.
const (
	EnvConfig    = "POPL_CONFIG"
	EnvRuntime   = "POPL_RUNTIME"
	EnvEnvDir    = "POPL_ENV_DIR"
	EnvShell     = "POPL_SHELL"
	EnvLogFormat = "POPL_LOG_FORMAT"
)

// DotEnvFileName is the optional per-directory override file.
const DotEnvFileName = ".env"
