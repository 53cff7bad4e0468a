// Package provisioner initializes popl projects: the environment, the manifest
// and the lock file.
package provisioner

import (
	"context"
	"fmt"
	"os"

	"github.com/emdiet/popl/internal/core/domain"
	"github.com/emdiet/popl/internal/core/ports"
)

// ProvisionOptions configures Provision.
type ProvisionOptions struct {
	// Import folds the existing lock entries into the manifest.
	Import bool
	// Runtime is the ambient interpreter used to create the environment.
	Runtime string
}

// Provisioner creates the artifacts of a project root. It never invokes the installer.
type Provisioner struct {
	envs      ports.EnvironmentProvider
	manifests ports.ManifestStore
	locks     ports.LockStore
	telemetry ports.Telemetry
	logger    ports.Logger
}

// NewProvisioner creates a new Provisioner.
func NewProvisioner(
	envs ports.EnvironmentProvider,
	manifests ports.ManifestStore,
	locks ports.LockStore,
	telemetry ports.Telemetry,
	logger ports.Logger,
) *Provisioner {
	return &Provisioner{
		envs:      envs,
		manifests: manifests,
		locks:     locks,
		telemetry: telemetry,
		logger:    logger,
	}
}

// Provision creates whatever of the environment, manifest and lock file is
// missing at the project root. Existing artifacts are left as they are.
func (p *Provisioner) Provision(ctx context.Context, project domain.Project, opts ProvisionOptions) error {
	manifestExists := p.manifests.Exists(project.ManifestPath)
	envExists := dirExists(project.Env.Dir)

	if manifestExists && envExists {
		p.logger.Info("project already initialized")
		return nil
	}

	if envExists {
		p.logger.Info("virtual environment already exists, skipping creation")
	} else {
		if err := p.createEnvironment(ctx, project, opts.Runtime); err != nil {
			return err
		}
		p.logger.Info("initialized empty popl virtual environment")
	}

	var manifest *domain.Manifest
	if manifestExists {
		p.logger.Info(domain.ManifestFileName + " found, skipping creation")
	} else {
		manifest = domain.NewManifest(project.Name())
		if err := p.manifests.Save(project.ManifestPath, manifest); err != nil {
			return err
		}
		p.logger.Info("initialized empty " + domain.ManifestFileName)
	}

	if !p.locks.Exists(project.LockPath) {
		if opts.Import {
			p.logger.Warn("--import is set but " + domain.LockFileName + " was not found, ignoring flag")
		}
		if err := p.locks.Write(project.LockPath, nil); err != nil {
			return err
		}
		p.logger.Info("initialized empty " + domain.LockFileName)
		return nil
	}

	if !opts.Import {
		p.logger.Info(domain.LockFileName + " found, use `popl install` to install dependencies")
		return nil
	}

	return p.importLock(project, manifest)
}

// importLock records every lock entry in the manifest, keyed by the entry text.
func (p *Provisioner) importLock(project domain.Project, manifest *domain.Manifest) error {
	if manifest == nil {
		loaded, err := p.manifests.Load(project.ManifestPath)
		if err != nil {
			return err
		}
		manifest = loaded
	}

	entries, err := p.locks.Read(project.LockPath)
	if err != nil {
		return err
	}

	p.logger.Info("importing requirements from " + domain.LockFileName + " into " + domain.ManifestFileName)
	for _, entry := range entries {
		manifest.Upsert(entry, entry)
	}
	if err := p.manifests.Save(project.ManifestPath, manifest); err != nil {
		return err
	}
	p.logger.Info(fmt.Sprintf("imported %d requirements into %s", len(entries), domain.ManifestFileName))
	return nil
}

// Bootstrap turns a directory holding only a lock file into a project: it
// creates the environment if needed and writes a manifest marked as
// synthesized, with no declared dependencies.
func (p *Provisioner) Bootstrap(ctx context.Context, project domain.Project, runtime string) error {
	if !dirExists(project.Env.Dir) {
		if err := p.createEnvironment(ctx, project, runtime); err != nil {
			return err
		}
		p.logger.Info("initialized empty popl virtual environment")
	}

	manifest := domain.NewManifest(project.Name())
	manifest.Comment = domain.ImportedManifestComment
	manifest.FromLock = true
	if err := p.manifests.Save(project.ManifestPath, manifest); err != nil {
		return err
	}
	p.logger.Info("initialized popl project from " + domain.LockFileName)
	return nil
}

func (p *Provisioner) createEnvironment(ctx context.Context, project domain.Project, runtime string) error {
	vctx, vertex := p.telemetry.Record(ctx, "create environment")
	err := p.envs.Create(vctx, runtime, project.Env.Dir)
	vertex.Complete(err)
	return err
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
