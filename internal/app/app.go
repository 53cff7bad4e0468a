// Package app implements the application layer for popl.
package app

import (
	"context"
	"os"
	"path/filepath"
	goruntime "runtime"

	"github.com/emdiet/popl/internal/core/domain"
	"github.com/emdiet/popl/internal/core/ports"
	"github.com/emdiet/popl/internal/engine/orchestrator"
	"github.com/emdiet/popl/internal/engine/provisioner"
	"github.com/emdiet/popl/internal/engine/runner"
	"go.trai.ch/zerr"
)

// InitOptions configures Init.
type InitOptions struct {
	// Import records the entries of an existing lock file in the manifest.
	Import bool
}

// InstallOptions configures Install.
type InstallOptions struct {
	Specifiers  []string
	Global      bool
	Passthrough []string
}

// RunOptions configures Run.
type RunOptions struct {
	// Module runs Target as a module instead of a script path.
	Module bool
	Target string
	Args   []string
}

// ExecOptions configures Exec.
type ExecOptions struct {
	// Shell hands the command line to the configured shell.
	Shell bool
}

// App represents the main application logic.
type App struct {
	locator      ports.ProjectLocator
	settings     ports.SettingsLoader
	orchestrator *orchestrator.Orchestrator
	provisioner  *provisioner.Provisioner
	runner       *runner.Runner
	logger       ports.Logger

	getwd func() (string, error)
	goos  string
}

// New creates a new App instance.
func New(
	locator ports.ProjectLocator,
	settings ports.SettingsLoader,
	orch *orchestrator.Orchestrator,
	prov *provisioner.Provisioner,
	run *runner.Runner,
	logger ports.Logger,
) *App {
	return &App{
		locator:      locator,
		settings:     settings,
		orchestrator: orch,
		provisioner:  prov,
		runner:       run,
		logger:       logger,
		getwd:        os.Getwd,
		goos:         goruntime.GOOS,
	}
}

// WithWorkingDir pins the directory the App resolves projects from.
func (a *App) WithWorkingDir(dir string) *App {
	a.getwd = func() (string, error) { return dir, nil }
	return a
}

// SetJSON switches the logger to JSON lines when it supports it.
func (a *App) SetJSON(enable bool) {
	if l, ok := a.logger.(interface{ SetJSON(bool) }); ok {
		l.SetJSON(enable)
	}
}

// Init provisions a project in the working directory.
func (a *App) Init(ctx context.Context, opts InitOptions) error {
	cwd, settings, err := a.prepare()
	if err != nil {
		return err
	}

	project := domain.NewProject(cwd, settings.EnvDir, a.goos)
	return a.provisioner.Provision(ctx, project, provisioner.ProvisionOptions{
		Import:  opts.Import,
		Runtime: settings.Runtime,
	})
}

// Install installs specifiers into the governing project, or resyncs it when
// none are given. A directory holding only a lock file is turned into a
// project first.
func (a *App) Install(ctx context.Context, opts InstallOptions) error {
	cwd, settings, err := a.prepare()
	if err != nil {
		return err
	}

	req := domain.InstallRequest{
		Specifiers:      opts.Specifiers,
		PassthroughArgs: opts.Passthrough,
		Runtime:         settings.Runtime,
	}
	if opts.Global {
		req.Scope = domain.ScopeGlobal
		if len(opts.Specifiers) > 0 {
			return a.orchestrator.Install(ctx, domain.Project{}, req)
		}
	}

	project, err := a.locate(cwd, settings)
	if err != nil {
		if !fileExists(filepath.Join(cwd, domain.LockFileName)) {
			return err
		}
		project = domain.NewProject(cwd, settings.EnvDir, a.goos)
		if err := a.provisioner.Bootstrap(ctx, project, settings.Runtime); err != nil {
			return err
		}
	}

	return a.orchestrator.Install(ctx, project, req)
}

// Run runs a script or module with the project environment's interpreter.
func (a *App) Run(ctx context.Context, opts RunOptions) error {
	cwd, settings, err := a.prepare()
	if err != nil {
		return err
	}
	project, err := a.locate(cwd, settings)
	if err != nil {
		return err
	}

	if opts.Module {
		return a.runner.RunModule(ctx, project, opts.Target, opts.Args)
	}
	return a.runner.RunScript(ctx, project, cwd, opts.Target, opts.Args)
}

// Exec runs an arbitrary command with the project environment activated.
func (a *App) Exec(ctx context.Context, tokens []string, opts ExecOptions) error {
	if len(tokens) == 0 {
		return domain.ErrEmptyCommand
	}
	cwd, settings, err := a.prepare()
	if err != nil {
		return err
	}
	project, err := a.locate(cwd, settings)
	if err != nil {
		return err
	}

	return a.runner.RunCommand(ctx, project, tokens, runner.ExecOptions{
		Shell:       opts.Shell,
		ShellPrefix: settings.Shell,
	})
}

func (a *App) prepare() (string, domain.Settings, error) {
	cwd, err := a.getwd()
	if err != nil {
		return "", domain.Settings{}, zerr.Wrap(err, "failed to get working directory")
	}

	settings, err := a.settings.Load(cwd)
	if err != nil {
		return "", domain.Settings{}, err
	}
	if settings.LogFormat == domain.LogFormatJSON {
		a.SetJSON(true)
	}
	return cwd, settings, nil
}

func (a *App) locate(cwd string, settings domain.Settings) (domain.Project, error) {
	root, ok := a.locator.FindRoot(cwd)
	if !ok {
		return domain.Project{}, zerr.With(domain.ErrNotInitialized, "cwd", cwd)
	}
	return domain.NewProject(root, settings.EnvDir, a.goos), nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
