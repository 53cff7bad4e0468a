package domain

const (
	// ManifestFileName is the name of the project manifest.
	ManifestFileName = "popl.json"

	// LockFileName is the name of the lock artifact.
	LockFileName = "requirements.txt"

	// DefaultEnvDirName is the default name of the isolated environment directory.
	DefaultEnvDirName = ".venv"

	// LockHeader is the comment written as the first line of every lock file.
	LockHeader = "# this is your requirements lock file"

	// EnvMarkerVar identifies the active isolated environment for child processes.
	EnvMarkerVar = "VIRTUAL_ENV"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)
