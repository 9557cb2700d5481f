package domain

// BuildTally accumulates counts over the events of a single process run.
type BuildTally struct {
	Lines    uint
	Warnings uint
	Errors   uint
	Faults   uint
	Aborted  bool
	Summary  *BuildSummary
}

// Observe records a classified event.
func (t *BuildTally) Observe(ev Event) {
	t.Lines++

	switch e := ev.(type) {
	case Diagnostic:
		if e.Severity == SeverityError {
			t.Errors++
		} else {
			t.Warnings++
		}
	case CompileAborted:
		t.Aborted = true
	case BuildSummary:
		s := e
		t.Summary = &s
	}
}

// Fault records a line that could not be classified.
func (t *BuildTally) Fault() {
	t.Lines++
	t.Faults++
}

// Counts returns the error and warning counts of the run.
// The summary line wins when one was seen.
func (t *BuildTally) Counts() (errorCount, warningCount uint) {
	if t.Summary != nil {
		return t.Summary.ErrorCount, t.Summary.WarningCount
	}
	return t.Errors, t.Warnings
}
