// Package pipeline sequences the stages of a single module build.
package pipeline

import (
	"context"
	"errors"
	"sync"

	"go.trai.ch/uccmake/internal/core/domain"
	"go.trai.ch/uccmake/internal/core/ports"
	"go.trai.ch/uccmake/internal/engine/classifier"
	"go.trai.ch/zerr"
)

// Request describes one build.
type Request struct {
	WorkspaceDir string
	Settings     domain.Settings
	RunID        string
}

// Pipeline runs pre-build, backup, compile and post-build for one workspace.
//
// Every external process runs at most once per Run. The pipeline assumes no
// other process touches the workspace, the artifact or the backup meanwhile.
type Pipeline struct {
	logger   ports.Logger
	resolver ports.WorkspaceResolver
	backup   ports.ArtifactBackup
	runner   ports.ProcessRunner
	tracer   ports.Tracer
	metrics  ports.MetricsRecorder

	mu    sync.RWMutex
	stage domain.Stage
}

// New creates a new Pipeline.
func New(
	logger ports.Logger,
	resolver ports.WorkspaceResolver,
	backup ports.ArtifactBackup,
	runner ports.ProcessRunner,
	tracer ports.Tracer,
	metrics ports.MetricsRecorder,
) *Pipeline {
	return &Pipeline{
		logger:   logger,
		resolver: resolver,
		backup:   backup,
		runner:   runner,
		tracer:   tracer,
		metrics:  metrics,
	}
}

// Stage returns the current stage.
func (p *Pipeline) Stage() domain.Stage {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.stage
}

func (p *Pipeline) setStage(stage domain.Stage) {
	p.mu.Lock()
	p.stage = stage
	p.mu.Unlock()

	p.logger.Info("Entering stage", "stage", stage.String())
}

// Run executes the build described by req and reports its outcome.
func (p *Pipeline) Run(ctx context.Context, req Request) domain.BuildOutcome {
	p.mu.Lock()
	p.stage = domain.StageIdle
	p.mu.Unlock()

	ctx, span := p.tracer.Start(ctx, "build", ports.WithAttribute(ports.AttrRunID, req.RunID))
	defer span.End()

	outcome := p.run(ctx, span, req)

	span.SetAttribute("outcome", outcome.Kind.String())
	span.SetAttribute("errors", outcome.ErrorCount)
	span.SetAttribute("warnings", outcome.WarningCount)
	if outcome.Reason != nil {
		span.RecordError(outcome.Reason)
	}

	return outcome
}

func (p *Pipeline) run(ctx context.Context, span ports.Span, req Request) domain.BuildOutcome {
	// Settings are checked before any stage touches the workspace.
	if err := req.Settings.Validate(); err != nil {
		p.setStage(domain.StageAborted)
		return domain.Aborted(err)
	}

	paths, err := p.resolver.Resolve(req.WorkspaceDir, req.Settings)
	if err != nil {
		p.setStage(domain.StageAborted)
		return domain.Aborted(err)
	}
	span.SetAttribute(ports.AttrModule, paths.ModuleName)

	policy := req.Settings.Hooks.OnFailure
	encoding := req.Settings.OutputEncoding

	err = p.inStage(ctx, domain.StagePreBuild, func(ports.Span) error {
		return p.hook(paths, paths.PreBuildHookPath, encoding)
	})
	if err != nil {
		if policy == domain.HookPolicyFail {
			p.setStage(domain.StageAborted)
			return domain.Aborted(err)
		}
		p.logger.Warn("Pre-build hook failed", "error", err)
	}

	err = p.inStage(ctx, domain.StageBackup, func(span ports.Span) error {
		result, err := p.backup.Backup(paths.ArtifactPath, paths.BackupPath)
		span.SetAttribute("performed", result.Performed)
		span.SetAttribute("bytes", result.Bytes)
		return err
	})
	if err != nil {
		p.setStage(domain.StageFailed)
		return domain.Aborted(err)
	}

	if err := p.resolver.Verify(paths); err != nil {
		p.setStage(domain.StageAborted)
		return domain.Aborted(err)
	}

	var tally *domain.BuildTally
	var exitCode int
	err = p.inStage(ctx, domain.StageCompiling, func(span ports.Span) error {
		var err error
		exitCode, tally, err = p.execute(paths.CompileCommand(encoding))
		span.SetAttribute("exit_code", exitCode)
		if err != nil {
			return err
		}
		if exitCode != 0 {
			return zerr.With(zerr.Wrap(domain.ErrCompileFailed, "compiler exited with non-zero status"), "exit_code", exitCode)
		}
		return nil
	})

	if err != nil {
		if !errors.Is(err, domain.ErrCompileFailed) {
			p.setStage(domain.StageAborted)
			return domain.Aborted(err)
		}
		p.setStage(domain.StageFailed)
		errorCount, warningCount := tally.Counts()
		return domain.BuildOutcome{
			Kind:         domain.OutcomeCompileFailed,
			Reason:       err,
			ErrorCount:   errorCount,
			WarningCount: warningCount,
		}
	}

	p.setStage(domain.StageSucceeded)
	errorCount, warningCount := tally.Counts()
	if tally.Summary != nil && tally.Summary.Result != domain.ResultSuccess {
		p.logger.Warn("Compiler exited with status 0 but reported failure", "summary", tally.Summary.String())
	}

	outcome := domain.BuildOutcome{
		Kind:         domain.OutcomeSucceeded,
		ErrorCount:   errorCount,
		WarningCount: warningCount,
	}

	err = p.inStage(ctx, domain.StagePostBuild, func(ports.Span) error {
		return p.hook(paths, paths.PostBuildHookPath, encoding)
	})
	if err != nil {
		if policy == domain.HookPolicyFail {
			p.setStage(domain.StageFailed)
			outcome.Kind = domain.OutcomeHookFailed
			outcome.Reason = err
			return outcome
		}
		p.logger.Warn("Post-build hook failed", "error", err)
	}

	p.setStage(domain.StageDone)
	return outcome
}

// inStage enters stage and runs fn inside a span for it.
func (p *Pipeline) inStage(
	ctx context.Context,
	stage domain.Stage,
	fn func(span ports.Span) error,
) error {
	p.setStage(stage)

	_, span := p.tracer.Start(ctx, "stage."+stage.String(), ports.WithAttribute(ports.AttrStage, stage.String()))
	defer span.End()

	err := fn(span)
	if err != nil {
		span.RecordError(zerr.With(err, "stage", stage.String()))
	}
	return err
}

// hook runs the hook at path when it exists. Any failure, including a
// non-zero exit, is reported as domain.ErrHookFailed.
func (p *Pipeline) hook(paths domain.WorkspacePaths, path, encoding string) error {
	if !p.resolver.Exists(path) {
		return nil
	}

	code, _, err := p.execute(paths.HookCommand(path, encoding))
	if err != nil {
		return zerr.With(
			zerr.With(zerr.Wrap(domain.ErrHookFailed, "hook did not run"), "path", path),
			"reason", err.Error(),
		)
	}
	if code != 0 {
		return zerr.With(
			zerr.With(zerr.Wrap(domain.ErrHookFailed, "hook exited with non-zero status"), "path", path),
			"exit_code", code,
		)
	}
	return nil
}

// execute runs cmd, classifying and logging every output line, and waits for
// it to exit.
func (p *Pipeline) execute(cmd domain.Command) (int, *domain.BuildTally, error) {
	proc, err := p.runner.Start(cmd)
	if err != nil {
		return -1, nil, err
	}

	tally := &domain.BuildTally{}
	for ev, err := range classifier.ClassifyAll(proc.Lines()) {
		if err != nil {
			tally.Fault()
			p.logger.Error(err)
			continue
		}
		tally.Observe(ev)
		p.metrics.ObserveEvent(ev)
		p.logEvent(ev)
	}

	code, err := proc.Wait()
	return code, tally, err
}

func (p *Pipeline) logEvent(ev domain.Event) {
	switch ev.Level() {
	case domain.LevelError:
		p.logger.Error(zerr.New(ev.String()))
	case domain.LevelWarn:
		p.logger.Warn(ev.String())
	default:
		p.logger.Info(ev.String())
	}
}
