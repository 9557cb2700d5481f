package domain

// Stage is a state of the build pipeline.
type Stage int

const (
	// StageIdle is the state before anything ran.
	StageIdle Stage = iota
	// StagePreBuild runs the pre-build hook.
	StagePreBuild
	// StageBackup moves the previous artifact aside.
	StageBackup
	// StageCompiling runs the compiler.
	StageCompiling
	// StageSucceeded is entered when the compiler exits with status zero.
	StageSucceeded
	// StageFailed is entered on a non-zero compiler exit or a failed backup.
	StageFailed
	// StageAborted is entered when a precondition is missing or a process cannot start.
	StageAborted
	// StagePostBuild runs the post-build hook.
	StagePostBuild
	// StageDone is the final state of a successful build.
	StageDone
)

var stageNames = [...]string{
	StageIdle:      "idle",
	StagePreBuild:  "pre_build",
	StageBackup:    "backup",
	StageCompiling: "compiling",
	StageSucceeded: "succeeded",
	StageFailed:    "failed",
	StageAborted:   "aborted",
	StagePostBuild: "post_build",
	StageDone:      "done",
}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return "unknown"
	}
	return stageNames[s]
}

// Terminal reports whether no transition leaves this stage.
func (s Stage) Terminal() bool {
	switch s {
	case StageFailed, StageAborted, StageDone:
		return true
	default:
		return false
	}
}

// ParseStage returns the stage named name.
func ParseStage(name string) (Stage, bool) {
	for s, n := range stageNames {
		if n == name {
			return Stage(s), true
		}
	}
	return StageIdle, false
}
