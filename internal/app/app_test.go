package app_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/emdiet/popl/internal/adapters/lockfile"
	"github.com/emdiet/popl/internal/adapters/manifest"
	"github.com/emdiet/popl/internal/app"
	"github.com/emdiet/popl/internal/core/domain"
	"github.com/emdiet/popl/internal/core/ports"
	"github.com/emdiet/popl/internal/core/ports/mocks"
	"github.com/emdiet/popl/internal/engine/orchestrator"
	"github.com/emdiet/popl/internal/engine/provisioner"
	"github.com/emdiet/popl/internal/engine/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	cwd       string
	settings  domain.Settings
	locator   *mocks.MockProjectLocator
	installer *mocks.MockInstaller
	envs      *mocks.MockEnvironmentProvider
	executor  *mocks.MockExecutor
	manifests *manifest.Store
	app       *app.App
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

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	log.EXPECT().Error(gomock.Any()).AnyTimes()

	f := &fixture{
		cwd: t.TempDir(),
		settings: domain.Settings{
			Runtime:   "python3",
			EnvDir:    domain.DefaultEnvDirName,
			Shell:     []string{"sh", "-c"},
			LogFormat: domain.LogFormatPretty,
		},
		locator:   mocks.NewMockProjectLocator(ctrl),
		installer: mocks.NewMockInstaller(ctrl),
		envs:      mocks.NewMockEnvironmentProvider(ctrl),
		executor:  mocks.NewMockExecutor(ctrl),
		manifests: manifest.NewStore(),
	}

	settings := mocks.NewMockSettingsLoader(ctrl)
	settings.EXPECT().Load(f.cwd).Return(f.settings, nil).AnyTimes()

	locks := lockfile.NewStore()
	f.app = app.New(
		f.locator,
		settings,
		orchestrator.NewOrchestrator(f.installer, f.manifests, locks, telemetry, log),
		provisioner.NewProvisioner(f.envs, f.manifests, locks, telemetry, log),
		runner.NewRunner(f.executor),
		log,
	).WithWorkingDir(f.cwd)
	return f
}

func (f *fixture) project() domain.Project {
	return domain.NewProject(f.cwd, f.settings.EnvDir, runtime.GOOS)
}

// materializeEnv creates the environment's runtime and installer files.
func materializeEnv(dir string) error {
	env := domain.NewEnvironment(dir, runtime.GOOS)
	if err := os.MkdirAll(env.BinDir, 0o750); err != nil {
		return err
	}
	if err := os.WriteFile(env.Runtime, nil, 0o600); err != nil {
		return err
	}
	return os.WriteFile(env.Installer, nil, 0o600)
}

func (f *fixture) expectCreate() *gomock.Call {
	return f.envs.EXPECT().Create(gomock.Any(), "python3", f.project().Env.Dir).DoAndReturn(
		func(_ context.Context, _, dir string) error {
			return materializeEnv(dir)
		})
}

func TestApp_Init(t *testing.T) {
	f := newFixture(t)
	f.expectCreate()

	err := f.app.Init(context.Background(), app.InitOptions{})

	require.NoError(t, err)
	project := f.project()
	assert.FileExists(t, project.ManifestPath)
	assert.FileExists(t, project.LockPath)

	m, err := f.manifests.Load(project.ManifestPath)
	require.NoError(t, err)
	assert.Equal(t, filepath.Base(f.cwd), m.Name)
	assert.Empty(t, m.Dependencies)
}

func TestApp_Install_Local(t *testing.T) {
	f := newFixture(t)
	project := f.project()
	require.NoError(t, materializeEnv(project.Env.Dir))
	require.NoError(t, f.manifests.Save(project.ManifestPath, domain.NewManifest("demo")))

	target := domain.LocalTarget(project.Env)
	f.locator.EXPECT().FindRoot(f.cwd).Return(f.cwd, true)
	gomock.InOrder(
		f.installer.EXPECT().Install(gomock.Any(), target, []string{"requests==2.31.0"}, []string{"--no-cache-dir"}).Return(nil),
		f.installer.EXPECT().Freeze(gomock.Any(), target).Return([]string{"certifi==2024.2.2", "requests==2.31.0"}, nil),
	)

	err := f.app.Install(context.Background(), app.InstallOptions{
		Specifiers:  []string{"requests==2.31.0"},
		Passthrough: []string{"--no-cache-dir"},
	})

	require.NoError(t, err)
	m, err := f.manifests.Load(project.ManifestPath)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"requests": "requests==2.31.0"}, m.Dependencies)

	lock, err := os.ReadFile(project.LockPath)
	require.NoError(t, err)
	assert.Contains(t, string(lock), "certifi==2024.2.2\nrequests==2.31.0\n")
}

func TestApp_Install_GlobalSkipsProject(t *testing.T) {
	f := newFixture(t)
	f.locator.EXPECT().FindRoot(gomock.Any()).Times(0)
	f.installer.EXPECT().Install(gomock.Any(), domain.GlobalTarget("python3"), []string{"black"}, []string{"--user"}).Return(nil)

	err := f.app.Install(context.Background(), app.InstallOptions{
		Specifiers:  []string{"black"},
		Global:      true,
		Passthrough: []string{"--user"},
	})

	require.NoError(t, err)
	assert.NoFileExists(t, f.project().ManifestPath)
}

func TestApp_Install_NotInitialized(t *testing.T) {
	f := newFixture(t)
	f.locator.EXPECT().FindRoot(f.cwd).Return("", false)

	err := f.app.Install(context.Background(), app.InstallOptions{Specifiers: []string{"flask"}})

	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrNotInitialized.Error())
}

func TestApp_Install_BootstrapsFromLock(t *testing.T) {
	f := newFixture(t)
	project := f.project()
	require.NoError(t, os.WriteFile(project.LockPath, []byte("flask==3.0.0\n"), 0o600))

	target := domain.LocalTarget(project.Env)
	f.locator.EXPECT().FindRoot(f.cwd).Return("", false)
	gomock.InOrder(
		f.expectCreate(),
		f.installer.EXPECT().Install(gomock.Any(), target, []string{"flask==3.0.0"}, gomock.Nil()).Return(nil),
		f.installer.EXPECT().Freeze(gomock.Any(), target).Return([]string{"flask==3.0.0"}, nil),
	)

	err := f.app.Install(context.Background(), app.InstallOptions{})

	require.NoError(t, err)
	m, err := f.manifests.Load(project.ManifestPath)
	require.NoError(t, err)
	assert.True(t, m.FromLock)
	assert.Empty(t, m.Dependencies)
}

func TestApp_Run(t *testing.T) {
	f := newFixture(t)
	project := f.project()
	require.NoError(t, materializeEnv(project.Env.Dir))
	script := filepath.Join(f.cwd, "main.py")
	require.NoError(t, os.WriteFile(script, nil, 0o600))

	f.locator.EXPECT().FindRoot(f.cwd).Return(f.cwd, true).Times(2)
	gomock.InOrder(
		f.executor.EXPECT().Execute(gomock.Any(), domain.Command{
			Argv: []string{project.Env.Runtime, script, "a"},
		}).Return(nil),
		f.executor.EXPECT().Execute(gomock.Any(), domain.Command{
			Argv: []string{project.Env.Runtime, "-m", "pytest"},
		}).Return(&domain.ExitError{Code: 5}),
	)

	require.NoError(t, f.app.Run(context.Background(), app.RunOptions{Target: "main.py", Args: []string{"a"}}))

	err := f.app.Run(context.Background(), app.RunOptions{Module: true, Target: "pytest"})
	assert.Equal(t, 5, domain.ExitCode(err))
}

func TestApp_Exec(t *testing.T) {
	f := newFixture(t)
	project := f.project()
	require.NoError(t, materializeEnv(project.Env.Dir))

	f.locator.EXPECT().FindRoot(f.cwd).Return(f.cwd, true)
	f.executor.EXPECT().Execute(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, cmd domain.Command) error {
			assert.Equal(t, []string{"sh", "-c", "echo $VIRTUAL_ENV"}, cmd.Argv)
			assert.Contains(t, cmd.Env, domain.EnvMarkerVar+"="+project.Env.Dir)
			return nil
		})

	err := f.app.Exec(context.Background(), []string{"echo", "$VIRTUAL_ENV"}, app.ExecOptions{Shell: true})

	require.NoError(t, err)
}

func TestApp_Exec_EmptyCommand(t *testing.T) {
	f := newFixture(t)

	err := f.app.Exec(context.Background(), nil, app.ExecOptions{})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEmptyCommand)
}
