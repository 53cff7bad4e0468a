package domain

import "go.trai.ch/zerr"

var (
	// ErrNotInitialized is returned when no manifest is found walking upward from the working directory.
	ErrNotInitialized = zerr.New("no popl project found, run popl init first")

	// ErrEnvironmentMissing is returned when the isolated environment's executable is absent.
	ErrEnvironmentMissing = zerr.New("virtual environment not found, run popl init again")

	// ErrScriptNotFound is returned when the script passed to run does not exist.
	ErrScriptNotFound = zerr.New("script not found")

	// ErrEmptyCommand is returned when exec is invoked without a command.
	ErrEmptyCommand = zerr.New("no command provided to execute")

	// ErrManifestParse is returned when the manifest is not well-formed JSON.
	ErrManifestParse = zerr.New("failed to parse manifest")

	// ErrManifestReadFailed is returned when the manifest cannot be read.
	ErrManifestReadFailed = zerr.New("failed to read manifest")

	// ErrManifestWriteFailed is returned when the manifest cannot be written.
	ErrManifestWriteFailed = zerr.New("failed to write manifest")

	// ErrLockReadFailed is returned when the lock file cannot be read.
	ErrLockReadFailed = zerr.New("failed to read lock file")

	// ErrLockWriteFailed is returned when the lock file cannot be written.
	ErrLockWriteFailed = zerr.New("failed to write lock file")

	// ErrInstallerFailed is returned when the installer process exits unsuccessfully.
	ErrInstallerFailed = zerr.New("installer failed")

	// ErrFreezeFailed is returned when the installed state cannot be captured.
	ErrFreezeFailed = zerr.New("unable to capture installed packages, lock file left unchanged")

	// ErrEnvironmentCreateFailed is returned when the isolated environment cannot be created.
	ErrEnvironmentCreateFailed = zerr.New("failed to create virtual environment")

	// ErrUnsupportedSpecifier is returned when a requirement string is outside the supported grammar.
	ErrUnsupportedSpecifier = zerr.New("unsupported requirement specifier")

	// ErrConfigReadFailed is returned when a settings file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when a settings file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrCommandStartFailed is returned when a child process cannot be started.
	ErrCommandStartFailed = zerr.New("failed to start command")
)
