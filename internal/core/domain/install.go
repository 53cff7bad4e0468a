package domain

// Scope selects whether an install targets the project environment or the ambient runtime.
type Scope int

const (
	// ScopeLocal installs into the project's isolated environment.
	ScopeLocal Scope = iota
	// ScopeGlobal installs into the ambient runtime, bypassing project bookkeeping.
	ScopeGlobal
)

// String returns the string representation of the Scope.
func (s Scope) String() string {
	if s == ScopeGlobal {
		return "global"
	}
	return "local"
}

// InstallRequest is a request to the install orchestrator.
// An empty Specifiers list requests a full resync of the project.
type InstallRequest struct {
	Specifiers      []string
	Scope           Scope
	PassthroughArgs []string
	// Runtime is the ambient interpreter targeted by ScopeGlobal.
	Runtime string
}

// InstallTarget is the argv prefix invoking an installer, e.g. [".venv/bin/pip"] or
// ["python3", "-m", "pip"].
type InstallTarget struct {
	Argv []string
}

// LocalTarget returns the installer target of an environment.
func LocalTarget(env Environment) InstallTarget {
	return InstallTarget{Argv: []string{env.Installer}}
}

// GlobalTarget returns the installer target of the ambient runtime.
func GlobalTarget(runtime string) InstallTarget {
	return InstallTarget{Argv: []string{runtime, "-m", "pip"}}
}
