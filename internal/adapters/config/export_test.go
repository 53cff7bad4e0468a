package config

// NewSettingsLoaderWith creates a SettingsLoader with injected lookups.
func NewSettingsLoaderWith(getenv func(string) string, userConfigDir func() (string, error)) *SettingsLoader {
	return &SettingsLoader{getenv: getenv, userConfigDir: userConfigDir}
}
