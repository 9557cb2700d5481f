package app_test

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/uccmake/internal/adapters/telemetry"
	"go.trai.ch/uccmake/internal/app"
	"go.trai.ch/uccmake/internal/core/domain"
	"go.trai.ch/uccmake/internal/core/ports/mocks"
	"go.trai.ch/uccmake/internal/engine/pipeline"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

type appMocks struct {
	ctrl      *gomock.Controller
	loader    *mocks.MockConfigLoader
	resolver  *mocks.MockWorkspaceResolver
	backup    *mocks.MockArtifactBackup
	runner    *mocks.MockProcessRunner
	flattener *mocks.MockFlattener
	metrics   *mocks.MockMetricsRecorder
	logger    *mocks.MockLogger
}

func newApp(t *testing.T) (*app.App, *appMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := &appMocks{
		ctrl:      ctrl,
		loader:    mocks.NewMockConfigLoader(ctrl),
		resolver:  mocks.NewMockWorkspaceResolver(ctrl),
		backup:    mocks.NewMockArtifactBackup(ctrl),
		runner:    mocks.NewMockProcessRunner(ctrl),
		flattener: mocks.NewMockFlattener(ctrl),
		metrics:   mocks.NewMockMetricsRecorder(ctrl),
		logger:    mocks.NewMockLogger(ctrl),
	}
	m.logger.EXPECT().Info(gomock.Any(), gomock.Any()).AnyTimes()
	m.metrics.EXPECT().ObserveEvent(gomock.Any()).AnyTimes()

	p := pipeline.New(m.logger, m.resolver, m.backup, m.runner, telemetry.NewNoOpTracer(), m.metrics)
	a := app.New(m.loader, p, m.flattener, m.metrics, m.logger).WithRunID("run-1")
	return a, m
}

func workspacePaths(dir string) domain.WorkspacePaths {
	system := filepath.Join(filepath.Dir(dir), domain.SystemDirName)
	return domain.WorkspacePaths{
		ModuleName:        filepath.Base(dir),
		WorkspaceDir:      dir,
		SystemDir:         system,
		CompilerPath:      filepath.Join(system, domain.CompilerName),
		ConfigurationPath: filepath.Join(dir, domain.ConfigurationFileName),
		ArtifactPath:      filepath.Join(system, filepath.Base(dir)+domain.ArtifactExtension),
		BackupPath:        filepath.Join(system, filepath.Base(dir)+domain.ArtifactExtension+domain.BackupExtension),
		PreBuildHookPath:  filepath.Join(dir, domain.PreBuildHookName),
		PostBuildHookPath: filepath.Join(dir, domain.PostBuildHookName),
	}
}

// expectCompile wires a build that reaches the compiler and exits with code.
func (m *appMocks) expectCompile(dir string, code int, lines ...string) domain.WorkspacePaths {
	paths := workspacePaths(dir)
	m.resolver.EXPECT().Resolve(dir, gomock.Any()).Return(paths, nil)
	m.resolver.EXPECT().Exists(paths.PreBuildHookPath).Return(false)
	m.backup.EXPECT().Backup(paths.ArtifactPath, paths.BackupPath).Return(domain.BackupResult{}, nil)
	m.resolver.EXPECT().Verify(paths).Return(nil)

	proc := mocks.NewMockProcess(m.ctrl)
	proc.EXPECT().Lines().Return(slices.Values(lines))
	proc.EXPECT().Wait().Return(code, nil)
	m.runner.EXPECT().Start(paths.CompileCommand("utf-8")).Return(proc, nil)
	return paths
}

func TestApp_Build_Success(t *testing.T) {
	a, m := newApp(t)
	dir := t.TempDir()

	m.loader.EXPECT().Load(dir).Return(domain.DefaultSettings(), nil)
	paths := m.expectCompile(dir, 0, "Success - 0 error(s), 2 warning(s)")
	m.resolver.EXPECT().Exists(paths.PostBuildHookPath).Return(false)

	gomock.InOrder(
		m.metrics.EXPECT().RecordOutcome("run-1", domain.BuildOutcome{
			Kind:         domain.OutcomeSucceeded,
			WarningCount: 2,
		}),
		m.metrics.EXPECT().Export("metrics.prom").Return(nil),
	)

	err := a.Build(context.Background(), app.BuildOptions{WorkspaceDir: dir, MetricsFile: "metrics.prom"})
	require.NoError(t, err)
}

func TestApp_Build_CompileFailed(t *testing.T) {
	a, m := newApp(t)
	dir := t.TempDir()

	m.loader.EXPECT().Load(dir).Return(domain.DefaultSettings(), nil)
	m.expectCompile(dir, 1)
	m.logger.EXPECT().Warn("Build failed", "errors", uint(0), "warnings", uint(0))
	m.metrics.EXPECT().RecordOutcome("run-1", gomock.Any())
	m.metrics.EXPECT().Export("").Return(nil)

	err := a.Build(context.Background(), app.BuildOptions{WorkspaceDir: dir})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCompileFailed)
}

func TestApp_Build_Aborted(t *testing.T) {
	a, m := newApp(t)
	dir := t.TempDir()
	paths := workspacePaths(dir)

	m.loader.EXPECT().Load(dir).Return(domain.DefaultSettings(), nil)
	m.resolver.EXPECT().Resolve(dir, gomock.Any()).Return(paths, nil)
	m.resolver.EXPECT().Exists(paths.PreBuildHookPath).Return(false)
	m.backup.EXPECT().Backup(gomock.Any(), gomock.Any()).Return(domain.BackupResult{}, nil)
	m.resolver.EXPECT().Verify(paths).Return(zerr.Wrap(domain.ErrMissingExecutable, "cannot compile"))

	var recorded domain.BuildOutcome
	m.metrics.EXPECT().RecordOutcome("run-1", gomock.Any()).Do(func(_ string, o domain.BuildOutcome) {
		recorded = o
	})
	m.metrics.EXPECT().Export("").Return(nil)

	err := a.Build(context.Background(), app.BuildOptions{WorkspaceDir: dir})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBuildAborted)
	assert.Equal(t, domain.OutcomeAborted, recorded.Kind)
	assert.ErrorIs(t, recorded.Reason, domain.ErrMissingExecutable)
}

func TestApp_Build_HookFailureOverride(t *testing.T) {
	a, m := newApp(t)
	dir := t.TempDir()

	m.loader.EXPECT().Load(dir).Return(domain.DefaultSettings(), nil)
	paths := m.expectCompile(dir, 0)
	m.resolver.EXPECT().Exists(paths.PostBuildHookPath).Return(true)

	hook := mocks.NewMockProcess(m.ctrl)
	hook.EXPECT().Lines().Return(slices.Values([]string{"0 files copied."}))
	hook.EXPECT().Wait().Return(1, nil)
	m.runner.EXPECT().Start(paths.HookCommand(paths.PostBuildHookPath, "utf-8")).Return(hook, nil)

	m.metrics.EXPECT().RecordOutcome("run-1", gomock.Any())
	m.metrics.EXPECT().Export("").Return(nil)

	err := a.Build(context.Background(), app.BuildOptions{WorkspaceDir: dir, HookFailure: "fail"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrHookFailed)
}

func TestApp_Build_InvalidOptions(t *testing.T) {
	t.Run("hook failure policy", func(t *testing.T) {
		a, m := newApp(t)
		dir := t.TempDir()
		m.loader.EXPECT().Load(dir).Return(domain.DefaultSettings(), nil)

		err := a.Build(context.Background(), app.BuildOptions{WorkspaceDir: dir, HookFailure: "retry"})
		assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)
	})

	t.Run("log format", func(t *testing.T) {
		a, _ := newApp(t)

		err := a.Build(context.Background(), app.BuildOptions{LogFormat: "xml"})
		assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)
	})
}

func TestApp_Build_UnknownOutputEncoding(t *testing.T) {
	a, m := newApp(t)
	dir := t.TempDir()

	settings := domain.DefaultSettings()
	settings.OutputEncoding = "bogus-enc"
	m.loader.EXPECT().Load(dir).Return(settings, nil)

	err := a.Build(context.Background(), app.BuildOptions{WorkspaceDir: dir})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)
}

func TestApp_Build_ConfigError(t *testing.T) {
	a, m := newApp(t)
	dir := t.TempDir()

	m.loader.EXPECT().Load(dir).Return(domain.Settings{}, zerr.Wrap(domain.ErrConfigParseFailed, "bad yaml"))

	err := a.Build(context.Background(), app.BuildOptions{WorkspaceDir: dir})
	assert.ErrorIs(t, err, domain.ErrConfigParseFailed)
}

func TestApp_Build_PipelinePanic(t *testing.T) {
	a, m := newApp(t)
	dir := t.TempDir()

	m.loader.EXPECT().Load(dir).Return(domain.DefaultSettings(), nil)
	m.resolver.EXPECT().Resolve(dir, gomock.Any()).DoAndReturn(
		func(string, domain.Settings) (domain.WorkspacePaths, error) {
			panic("boom")
		},
	)

	var recorded domain.BuildOutcome
	m.metrics.EXPECT().RecordOutcome("run-1", gomock.Any()).Do(func(_ string, o domain.BuildOutcome) {
		recorded = o
	})
	m.metrics.EXPECT().Export("").Return(nil)

	err := a.Build(context.Background(), app.BuildOptions{WorkspaceDir: dir})
	assert.ErrorIs(t, err, domain.ErrBuildAborted)
	assert.ErrorIs(t, recorded.Reason, domain.ErrPipelinePanicked)
}

func TestApp_Build_MetricsExportError(t *testing.T) {
	a, m := newApp(t)
	dir := t.TempDir()

	m.loader.EXPECT().Load(dir).Return(domain.DefaultSettings(), nil)
	paths := m.expectCompile(dir, 0)
	m.resolver.EXPECT().Exists(paths.PostBuildHookPath).Return(false)
	m.metrics.EXPECT().RecordOutcome("run-1", gomock.Any())
	m.metrics.EXPECT().Export("/nope/metrics.prom").Return(zerr.Wrap(domain.ErrMetricsWriteFailed, "cannot export"))

	err := a.Build(context.Background(), app.BuildOptions{WorkspaceDir: dir, MetricsFile: "/nope/metrics.prom"})
	assert.ErrorIs(t, err, domain.ErrMetricsWriteFailed)
}

func TestApp_Flatten(t *testing.T) {
	t.Run("complete", func(t *testing.T) {
		a, m := newApp(t)
		dir := t.TempDir()
		result := domain.FlattenResult{
			TotalFiles:     2,
			FlattenedFiles: 2,
			Outcomes: []domain.FileOutcome{
				{Path: "a.uc", Succeeded: true},
				{Path: "b.uc", Succeeded: true},
			},
		}

		settings := domain.DefaultSettings()
		settings.Flatten.Ignore = []string{"*.bak"}
		m.loader.EXPECT().Load(dir).Return(settings, nil)
		m.flattener.EXPECT().
			Flatten(filepath.Join(dir, "Classes"), filepath.Join(dir, "classes"), []string{"*.bak"}).
			Return(result, nil)
		m.metrics.EXPECT().ObserveFlatten(result)
		m.metrics.EXPECT().Export("").Return(nil)

		err := a.Flatten(context.Background(), app.FlattenOptions{WorkingDir: dir, Source: "Classes"})
		require.NoError(t, err)
	})

	t.Run("complete with warnings", func(t *testing.T) {
		a, m := newApp(t)
		dir := t.TempDir()
		failure := errors.New("permission denied")
		result := domain.FlattenResult{
			TotalFiles:     2,
			FlattenedFiles: 1,
			Outcomes: []domain.FileOutcome{
				{Path: "a.uc", Succeeded: true},
				{Path: "b.uc", Err: failure},
			},
		}

		m.loader.EXPECT().Load(dir).Return(domain.DefaultSettings(), nil)
		m.flattener.EXPECT().Flatten(gomock.Any(), gomock.Any(), gomock.Any()).Return(result, nil)
		m.logger.EXPECT().Error(failure)
		m.logger.EXPECT().Warn("Flattening complete with warnings",
			"flattened", uint(1), "total", uint(2), "destination", filepath.Join(dir, "classes"))
		m.metrics.EXPECT().ObserveFlatten(result)
		m.metrics.EXPECT().Export("").Return(nil)

		err := a.Flatten(context.Background(), app.FlattenOptions{WorkingDir: dir, Source: "Classes"})
		require.NoError(t, err)
	})

	t.Run("absolute destination", func(t *testing.T) {
		a, m := newApp(t)
		dir := t.TempDir()
		out := t.TempDir()

		settings := domain.DefaultSettings()
		settings.Flatten.Destination = out
		m.loader.EXPECT().Load(dir).Return(settings, nil)
		m.flattener.EXPECT().Flatten(filepath.Join(dir, "src"), out, gomock.Any()).Return(domain.FlattenResult{}, nil)
		m.metrics.EXPECT().ObserveFlatten(gomock.Any())
		m.metrics.EXPECT().Export("").Return(nil)

		require.NoError(t, a.Flatten(context.Background(), app.FlattenOptions{WorkingDir: dir, Source: "src"}))
	})

	t.Run("fatal error", func(t *testing.T) {
		a, m := newApp(t)
		dir := t.TempDir()

		m.loader.EXPECT().Load(dir).Return(domain.DefaultSettings(), nil)
		m.flattener.EXPECT().Flatten(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(domain.FlattenResult{}, zerr.Wrap(domain.ErrDestinationNotEmpty, "refusing to flatten"))

		err := a.Flatten(context.Background(), app.FlattenOptions{WorkingDir: dir, Source: "Classes"})
		assert.ErrorIs(t, err, domain.ErrDestinationNotEmpty)
	})
}

type formatLogger struct {
	*mocks.MockLogger
	format domain.LogFormat
}

func (l *formatLogger) SetFormat(format domain.LogFormat) { l.format = format }

func TestApp_LogFormat(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	log := &formatLogger{MockLogger: mocks.NewMockLogger(ctrl)}

	loader.EXPECT().Load(gomock.Any()).Return(domain.Settings{}, zerr.Wrap(domain.ErrConfigReadFailed, "cannot read"))

	a := app.New(loader, nil, nil, nil, log)
	err := a.Flatten(context.Background(), app.FlattenOptions{Source: "Classes", LogFormat: "json"})

	require.ErrorIs(t, err, domain.ErrConfigReadFailed)
	assert.Equal(t, domain.LogFormatJSON, log.format)
}
