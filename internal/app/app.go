// Package app implements the application layer for uccmake.
package app

import (
	"context"
	"path/filepath"

	"github.com/google/uuid"
	"go.trai.ch/uccmake/internal/core/domain"
	"go.trai.ch/uccmake/internal/core/ports"
	"go.trai.ch/uccmake/internal/engine/pipeline"
	"go.trai.ch/zerr"
)

// BuildOptions configures a single build.
type BuildOptions struct {
	// WorkspaceDir is the module directory. Empty means the working directory.
	WorkspaceDir string
	// HookFailure overrides the configured hook failure policy when set.
	HookFailure string
	// LogFormat selects the log format. Empty means auto.
	LogFormat string
	// MetricsFile receives Prometheus text-format metrics when set.
	MetricsFile string
}

// FlattenOptions configures a single flatten run.
type FlattenOptions struct {
	WorkingDir  string
	Source      string
	LogFormat   string
	MetricsFile string
}

// formatSetter is implemented by loggers whose record format can change at runtime.
type formatSetter interface {
	SetFormat(format domain.LogFormat)
}

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	pipeline     *pipeline.Pipeline
	flattener    ports.Flattener
	metrics      ports.MetricsRecorder
	logger       ports.Logger
	newRunID     func() string
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	p *pipeline.Pipeline,
	flattener ports.Flattener,
	metrics ports.MetricsRecorder,
	logger ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		pipeline:     p,
		flattener:    flattener,
		metrics:      metrics,
		logger:       logger,
		newRunID:     uuid.NewString,
	}
}

// WithRunID makes the app use a fixed run id. Used for testing.
func (a *App) WithRunID(id string) *App {
	a.newRunID = func() string { return id }
	return a
}

// Build runs the full pipeline for one workspace and maps its outcome to an
// error. A nil error means the compile succeeded.
func (a *App) Build(ctx context.Context, opts BuildOptions) (err error) {
	if err := a.applyLogFormat(opts.LogFormat); err != nil {
		return err
	}

	dir, err := resolveDir(opts.WorkspaceDir)
	if err != nil {
		return err
	}

	settings, err := a.configLoader.Load(dir)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}
	if opts.HookFailure != "" {
		settings.Hooks.OnFailure = domain.HookPolicy(opts.HookFailure)
		if err := settings.Validate(); err != nil {
			return err
		}
	}

	runID := a.newRunID()
	a.logger.Info("Starting build", "run_id", runID, "workspace", dir)

	outcome := a.runPipeline(ctx, pipeline.Request{
		WorkspaceDir: dir,
		Settings:     settings,
		RunID:        runID,
	})

	a.metrics.RecordOutcome(runID, outcome)
	defer func() {
		if exportErr := a.metrics.Export(opts.MetricsFile); exportErr != nil && err == nil {
			err = exportErr
		}
	}()

	return a.outcomeError(outcome)
}

// runPipeline converts a pipeline panic into an aborted outcome.
func (a *App) runPipeline(ctx context.Context, req pipeline.Request) (outcome domain.BuildOutcome) {
	defer zerr.Defer(func(err error) {
		outcome = domain.Aborted(zerr.With(
			zerr.Wrap(domain.ErrPipelinePanicked, "build stopped unexpectedly"),
			"panic", err.Error(),
		))
	})
	return a.pipeline.Run(ctx, req)
}

func (a *App) outcomeError(outcome domain.BuildOutcome) error {
	switch outcome.Kind {
	case domain.OutcomeSucceeded:
		a.logger.Info("Build succeeded", "errors", outcome.ErrorCount, "warnings", outcome.WarningCount)
		return nil
	case domain.OutcomeCompileFailed:
		a.logger.Warn("Build failed", "errors", outcome.ErrorCount, "warnings", outcome.WarningCount)
		return zerr.With(zerr.Wrap(outcome.Reason, "build failed"), "errors", outcome.ErrorCount)
	case domain.OutcomeHookFailed:
		return zerr.Wrap(outcome.Reason, "post-build hook failed")
	default:
		reason := outcome.Reason
		if reason == nil {
			reason = domain.ErrBuildAborted
		}
		return zerr.With(zerr.Wrap(domain.ErrBuildAborted, "build did not complete"), "reason", reason.Error())
	}
}

// Flatten copies the nested source folder below the working directory into
// the configured flat destination.
func (a *App) Flatten(_ context.Context, opts FlattenOptions) error {
	if err := a.applyLogFormat(opts.LogFormat); err != nil {
		return err
	}

	dir, err := resolveDir(opts.WorkingDir)
	if err != nil {
		return err
	}

	settings, err := a.configLoader.Load(dir)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	source := filepath.Join(dir, opts.Source)
	destination := settings.Flatten.Destination
	if !filepath.IsAbs(destination) {
		destination = filepath.Join(dir, destination)
	}

	result, err := a.flattener.Flatten(source, destination, settings.Flatten.Ignore)
	if err != nil {
		return zerr.Wrap(err, "flatten failed")
	}

	for _, failed := range result.Failed() {
		a.logger.Error(failed.Err)
	}

	if result.Complete() {
		a.logger.Info("Flattening complete", "files", result.FlattenedFiles, "destination", destination)
	} else {
		a.logger.Warn(
			"Flattening complete with warnings",
			"flattened", result.FlattenedFiles,
			"total", result.TotalFiles,
			"destination", destination,
		)
	}

	a.metrics.ObserveFlatten(result)
	return a.metrics.Export(opts.MetricsFile)
}

func (a *App) applyLogFormat(name string) error {
	format, err := domain.ParseLogFormat(name)
	if err != nil {
		return err
	}
	if setter, ok := a.logger.(formatSetter); ok {
		setter.SetFormat(format)
	}
	return nil
}

func resolveDir(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", zerr.With(zerr.Wrap(domain.ErrInvalidWorkspace, "cannot resolve directory"), "path", dir)
	}
	return abs, nil
}
