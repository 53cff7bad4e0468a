package domain

import "runtime"

const (
	// LogFormatPretty renders human-readable coloured logs.
	LogFormatPretty = "pretty"
	// LogFormatJSON renders logs as JSON lines.
	LogFormatJSON = "json"
)

// Settings are the user-tunable parameters of popl.
type Settings struct {
	// Runtime is the ambient interpreter used for global installs and environment creation.
	Runtime string `yaml:"runtime"`
	// EnvDir is the environment directory, relative to the project root unless absolute.
	EnvDir string `yaml:"env_dir"`
	// Shell is the argv prefix used by exec --shell; the command line is appended as one argument.
	Shell []string `yaml:"shell"`
	// LogFormat is either LogFormatPretty or LogFormatJSON.
	LogFormat string `yaml:"log_format"`
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return defaultSettingsFor(runtime.GOOS)
}

func defaultSettingsFor(goos string) Settings {
	if goos == "windows" {
		return Settings{
			Runtime:   "python",
			EnvDir:    DefaultEnvDirName,
			Shell:     []string{"cmd", "/C"},
			LogFormat: LogFormatPretty,
		}
	}
	return Settings{
		Runtime:   "python3",
		EnvDir:    DefaultEnvDirName,
		Shell:     []string{"sh", "-c"},
		LogFormat: LogFormatPretty,
	}
}
