// Package orchestrator reconciles the manifest, the lock file and the project
// environment around installer invocations.
package orchestrator

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/emdiet/popl/internal/core/domain"
	"github.com/emdiet/popl/internal/core/ports"
	"go.trai.ch/zerr"
)

// Orchestrator implements the install flows: resync, global install and local
// install with manifest and lock bookkeeping.
type Orchestrator struct {
	installer ports.Installer
	manifests ports.ManifestStore
	locks     ports.LockStore
	telemetry ports.Telemetry
	logger    ports.Logger
}

// NewOrchestrator creates a new Orchestrator.
func NewOrchestrator(
	installer ports.Installer,
	manifests ports.ManifestStore,
	locks ports.LockStore,
	telemetry ports.Telemetry,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		installer: installer,
		manifests: manifests,
		locks:     locks,
		telemetry: telemetry,
		logger:    logger,
	}
}

// Install dispatches req. An empty specifier list resyncs the project
// environment whatever the requested scope.
//
// A failing installer during a local install or resync does not stop the
// bookkeeping; domain.ErrInstallerFailed is returned once it is done.
func (o *Orchestrator) Install(ctx context.Context, project domain.Project, req domain.InstallRequest) error {
	switch {
	case len(req.Specifiers) == 0:
		return o.resync(ctx, project, req)
	case req.Scope == domain.ScopeGlobal:
		return o.installGlobal(ctx, req)
	default:
		return o.installLocal(ctx, project, req)
	}
}

func (o *Orchestrator) resync(ctx context.Context, project domain.Project, req domain.InstallRequest) error {
	if err := requireEnvironment(project.Env); err != nil {
		return err
	}

	manifest, err := o.manifests.Load(project.ManifestPath)
	if err != nil {
		return err
	}

	target := domain.LocalTarget(project.Env)
	lockedOK, err := o.applyLockedClosure(ctx, project, target, req.PassthroughArgs)
	if err != nil {
		return err
	}
	declaredOK := o.applyDeclaredIntent(ctx, manifest, target, req.PassthroughArgs)

	if err := o.refreshLock(ctx, project, target); err != nil {
		return err
	}

	if !lockedOK || !declaredOK {
		return domain.ErrInstallerFailed
	}
	return nil
}

// applyLockedClosure installs the lock entries as they are, without touching
// the manifest or capturing the result.
func (o *Orchestrator) applyLockedClosure(
	ctx context.Context,
	project domain.Project,
	target domain.InstallTarget,
	extraArgs []string,
) (bool, error) {
	locked, err := o.locks.Read(project.LockPath)
	if err != nil {
		return false, err
	}
	if len(locked) == 0 {
		return true, nil
	}

	o.logger.Info(fmt.Sprintf("installing %d locked requirements from %s", len(locked), domain.LockFileName))
	if err := o.runInstall(ctx, target, locked, extraArgs); err != nil {
		o.logger.Error(err)
		return false, nil
	}
	return true, nil
}

// applyDeclaredIntent installs the manifest's declared specifiers. Already
// satisfied requirements are left to the installer.
func (o *Orchestrator) applyDeclaredIntent(
	ctx context.Context,
	manifest *domain.Manifest,
	target domain.InstallTarget,
	extraArgs []string,
) bool {
	declared := manifest.DeclaredSpecifiers()
	if len(declared) == 0 {
		return true
	}

	o.logger.Info(fmt.Sprintf("installing %d declared dependencies from %s", len(declared), domain.ManifestFileName))
	if err := o.runInstall(ctx, target, declared, extraArgs); err != nil {
		o.logger.Error(err)
		return false
	}
	return true
}

func (o *Orchestrator) installGlobal(ctx context.Context, req domain.InstallRequest) error {
	o.logger.Info(fmt.Sprintf("installing into the %s interpreter %s, %s is left untouched",
		req.Scope.String(), req.Runtime, domain.ManifestFileName))
	return o.runInstall(ctx, domain.GlobalTarget(req.Runtime), req.Specifiers, req.PassthroughArgs)
}

func (o *Orchestrator) installLocal(ctx context.Context, project domain.Project, req domain.InstallRequest) error {
	if err := requireEnvironment(project.Env); err != nil {
		return err
	}

	manifest, err := o.manifests.Load(project.ManifestPath)
	if err != nil {
		return err
	}

	target := domain.LocalTarget(project.Env)
	installErr := o.runInstall(ctx, target, req.Specifiers, req.PassthroughArgs)
	if installErr != nil {
		o.logger.Error(installErr)
	}

	for _, raw := range req.Specifiers {
		spec, parseErr := domain.ParseSpecifier(raw)
		if parseErr != nil {
			text := strings.TrimSpace(raw)
			o.logger.Warn(fmt.Sprintf("unsupported requirement %q, recording it under its full text", text))
			manifest.Upsert(text, text)
			continue
		}
		manifest.Upsert(spec.Name, spec.Raw)
		o.logger.Info("recorded " + spec.Describe() + " in " + domain.ManifestFileName)
	}

	if err := o.manifests.Save(project.ManifestPath, manifest); err != nil {
		return err
	}
	if err := o.refreshLock(ctx, project, target); err != nil {
		return err
	}

	if installErr != nil {
		return domain.ErrInstallerFailed
	}
	return nil
}

// refreshLock replaces the lock file with the installer's frozen state. A
// failed capture is logged and leaves the lock file unchanged.
func (o *Orchestrator) refreshLock(ctx context.Context, project domain.Project, target domain.InstallTarget) error {
	vctx, vertex := o.telemetry.Record(ctx, "freeze")
	entries, err := o.installer.Freeze(vctx, target)
	vertex.Complete(err)
	if err != nil {
		o.logger.Error(err)
		return nil
	}

	previous, readErr := o.locks.Read(project.LockPath)
	if err := o.locks.Write(project.LockPath, entries); err != nil {
		return err
	}

	if readErr == nil && o.locks.Digest(previous) == o.locks.Digest(entries) {
		o.logger.Info(domain.LockFileName + " is up to date")
		return nil
	}
	o.logger.Info(fmt.Sprintf("updated %s with %d entries", domain.LockFileName, len(entries)))
	return nil
}

func (o *Orchestrator) runInstall(
	ctx context.Context,
	target domain.InstallTarget,
	specifiers, extraArgs []string,
) error {
	vctx, vertex := o.telemetry.Record(ctx, "install "+strings.Join(specifiers, " "))
	err := o.installer.Install(vctx, target, specifiers, extraArgs)
	vertex.Complete(err)
	return err
}

func requireEnvironment(env domain.Environment) error {
	if _, err := os.Stat(env.Installer); err != nil {
		return zerr.With(domain.ErrEnvironmentMissing, "path", env.Installer)
	}
	return nil
}
