package domain

// OutcomeKind is the terminal result of a build.
type OutcomeKind int

const (
	// OutcomeAborted means the build stopped before the compiler ran to completion.
	OutcomeAborted OutcomeKind = iota
	// OutcomeCompileFailed means the compiler exited with a non-zero status.
	OutcomeCompileFailed
	// OutcomeSucceeded means the compiler exited with status zero.
	OutcomeSucceeded
	// OutcomeHookFailed means a hook failed under the "fail" hook policy after a successful compile.
	OutcomeHookFailed
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeAborted:
		return "aborted"
	case OutcomeCompileFailed:
		return "compile_failed"
	case OutcomeSucceeded:
		return "succeeded"
	case OutcomeHookFailed:
		return "hook_failed"
	default:
		return "unknown"
	}
}

// BuildOutcome is the final result of a pipeline run.
type BuildOutcome struct {
	Kind OutcomeKind
	// Reason is set for every kind except OutcomeSucceeded.
	Reason       error
	ErrorCount   uint
	WarningCount uint
}

// Aborted returns an aborted outcome caused by reason.
func Aborted(reason error) BuildOutcome {
	return BuildOutcome{Kind: OutcomeAborted, Reason: reason}
}

// Succeeded reports whether the build succeeded.
func (o BuildOutcome) Succeeded() bool {
	return o.Kind == OutcomeSucceeded
}
