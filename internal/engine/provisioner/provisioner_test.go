package provisioner_test

import (
	"context"
	"errors"
	"os"
	"runtime"
	"testing"

	"github.com/emdiet/popl/internal/core/domain"
	"github.com/emdiet/popl/internal/core/ports"
	"github.com/emdiet/popl/internal/core/ports/mocks"
	"github.com/emdiet/popl/internal/engine/provisioner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	project   domain.Project
	envs      *mocks.MockEnvironmentProvider
	manifests *mocks.MockManifestStore
	locks     *mocks.MockLockStore
	logger    *mocks.MockLogger
	prov      *provisioner.Provisioner
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	telemetry := mocks.NewMockTelemetry(ctrl)
	vertex := mocks.NewMockVertex(ctrl)
	telemetry.EXPECT().Record(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ string) (context.Context, ports.Vertex) {
			return ctx, vertex
		}).AnyTimes()
	vertex.EXPECT().Complete(gomock.Any()).AnyTimes()

	f := &fixture{
		project:   domain.NewProject(t.TempDir(), "", runtime.GOOS),
		envs:      mocks.NewMockEnvironmentProvider(ctrl),
		manifests: mocks.NewMockManifestStore(ctrl),
		locks:     mocks.NewMockLockStore(ctrl),
		logger:    mocks.NewMockLogger(ctrl),
	}
	f.prov = provisioner.NewProvisioner(f.envs, f.manifests, f.locks, telemetry, f.logger)
	return f
}

// expectCreate expects the environment to be created and materializes its directory.
func (f *fixture) expectCreate(t *testing.T) *gomock.Call {
	t.Helper()
	return f.envs.EXPECT().Create(gomock.Any(), "python3", f.project.Env.Dir).DoAndReturn(
		func(_ context.Context, _, dir string) error {
			return os.MkdirAll(dir, 0o750)
		})
}

func (f *fixture) makeEnvDir(t *testing.T) {
	t.Helper()
	require.NoError(t, os.MkdirAll(f.project.Env.Dir, 0o750))
}

func TestProvision_FreshProject(t *testing.T) {
	f := newFixture(t)
	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()

	f.manifests.EXPECT().Exists(f.project.ManifestPath).Return(false)
	gomock.InOrder(
		f.expectCreate(t),
		f.manifests.EXPECT().Save(f.project.ManifestPath, domain.NewManifest(f.project.Name())).Return(nil),
		f.locks.EXPECT().Exists(f.project.LockPath).Return(false),
		f.locks.EXPECT().Write(f.project.LockPath, nil).Return(nil),
	)

	err := f.prov.Provision(context.Background(), f.project, provisioner.ProvisionOptions{Runtime: "python3"})

	require.NoError(t, err)
	assert.DirExists(t, f.project.Env.Dir)
}

func TestProvision_AlreadyInitialized(t *testing.T) {
	f := newFixture(t)
	f.makeEnvDir(t)

	f.manifests.EXPECT().Exists(f.project.ManifestPath).Return(true)
	f.logger.EXPECT().Info("project already initialized").Times(1)

	err := f.prov.Provision(context.Background(), f.project, provisioner.ProvisionOptions{
		Import:  true,
		Runtime: "python3",
	})

	require.NoError(t, err)
}

func TestProvision_ExistingEnvironmentOnly(t *testing.T) {
	f := newFixture(t)
	f.makeEnvDir(t)
	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()

	f.manifests.EXPECT().Exists(f.project.ManifestPath).Return(false)
	f.envs.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	f.manifests.EXPECT().Save(f.project.ManifestPath, gomock.Any()).Return(nil)
	f.locks.EXPECT().Exists(f.project.LockPath).Return(true)
	f.locks.EXPECT().Read(gomock.Any()).Times(0)

	err := f.prov.Provision(context.Background(), f.project, provisioner.ProvisionOptions{Runtime: "python3"})

	require.NoError(t, err)
}

func TestProvision_Import(t *testing.T) {
	f := newFixture(t)
	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	entries := []string{"requests==2.31.0", "flask>=3"}

	f.manifests.EXPECT().Exists(f.project.ManifestPath).Return(false)
	gomock.InOrder(
		f.expectCreate(t),
		f.manifests.EXPECT().Save(f.project.ManifestPath, gomock.Any()).Return(nil),
		f.locks.EXPECT().Exists(f.project.LockPath).Return(true),
		f.locks.EXPECT().Read(f.project.LockPath).Return(entries, nil),
		f.manifests.EXPECT().Save(f.project.ManifestPath, gomock.Any()).DoAndReturn(
			func(_ string, m *domain.Manifest) error {
				assert.Equal(t, map[string]string{
					"requests==2.31.0": "requests==2.31.0",
					"flask>=3":         "flask>=3",
				}, m.Dependencies)
				return nil
			}),
	)

	err := f.prov.Provision(context.Background(), f.project, provisioner.ProvisionOptions{
		Import:  true,
		Runtime: "python3",
	})

	require.NoError(t, err)
}

func TestProvision_ImportIntoExistingManifest(t *testing.T) {
	f := newFixture(t)
	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	existing := domain.NewManifest("demo")
	existing.Upsert("numpy", "numpy")

	f.manifests.EXPECT().Exists(f.project.ManifestPath).Return(true)
	f.expectCreate(t)
	f.locks.EXPECT().Exists(f.project.LockPath).Return(true)
	f.manifests.EXPECT().Load(f.project.ManifestPath).Return(existing, nil)
	f.locks.EXPECT().Read(f.project.LockPath).Return([]string{"idna==3.7"}, nil)
	f.manifests.EXPECT().Save(f.project.ManifestPath, gomock.Any()).DoAndReturn(
		func(_ string, m *domain.Manifest) error {
			assert.Equal(t, map[string]string{"numpy": "numpy", "idna==3.7": "idna==3.7"}, m.Dependencies)
			return nil
		})

	err := f.prov.Provision(context.Background(), f.project, provisioner.ProvisionOptions{
		Import:  true,
		Runtime: "python3",
	})

	require.NoError(t, err)
}

func TestProvision_ImportWithoutLock(t *testing.T) {
	f := newFixture(t)
	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()

	f.manifests.EXPECT().Exists(f.project.ManifestPath).Return(false)
	f.expectCreate(t)
	f.manifests.EXPECT().Save(f.project.ManifestPath, gomock.Any()).Return(nil)
	f.locks.EXPECT().Exists(f.project.LockPath).Return(false)
	f.logger.EXPECT().Warn(gomock.Any()).Times(1)
	f.locks.EXPECT().Write(f.project.LockPath, nil).Return(nil)

	err := f.prov.Provision(context.Background(), f.project, provisioner.ProvisionOptions{
		Import:  true,
		Runtime: "python3",
	})

	require.NoError(t, err)
}

func TestProvision_CreateFailure(t *testing.T) {
	f := newFixture(t)
	createErr := errors.New("failed to create virtual environment")

	f.manifests.EXPECT().Exists(f.project.ManifestPath).Return(false)
	f.envs.EXPECT().Create(gomock.Any(), "python3", f.project.Env.Dir).Return(createErr)
	f.manifests.EXPECT().Save(gomock.Any(), gomock.Any()).Times(0)

	err := f.prov.Provision(context.Background(), f.project, provisioner.ProvisionOptions{Runtime: "python3"})

	require.ErrorIs(t, err, createErr)
}

func TestBootstrap(t *testing.T) {
	f := newFixture(t)
	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()

	gomock.InOrder(
		f.expectCreate(t),
		f.manifests.EXPECT().Save(f.project.ManifestPath, gomock.Any()).DoAndReturn(
			func(_ string, m *domain.Manifest) error {
				assert.Equal(t, f.project.Name(), m.Name)
				assert.Empty(t, m.Dependencies)
				assert.NotNil(t, m.Dependencies)
				assert.Equal(t, domain.ImportedManifestComment, m.Comment)
				assert.True(t, m.FromLock)
				return nil
			}),
	)

	require.NoError(t, f.prov.Bootstrap(context.Background(), f.project, "python3"))
}

func TestBootstrap_ExistingEnvironment(t *testing.T) {
	f := newFixture(t)
	f.makeEnvDir(t)
	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()

	f.envs.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	f.manifests.EXPECT().Save(f.project.ManifestPath, gomock.Any()).Return(nil)

	require.NoError(t, f.prov.Bootstrap(context.Background(), f.project, "python3"))
}
