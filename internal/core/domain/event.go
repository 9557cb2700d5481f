package domain

import (
	"strconv"
	"strings"
)

// Level is the log severity an event is reported at.
type Level int

const (
	// LevelInfo is used for informational output.
	LevelInfo Level = iota
	// LevelWarn is used for warnings.
	LevelWarn
	// LevelError is used for errors.
	LevelError
)

// String returns the lower-case name of the level.
func (l Level) String() string {
	switch l {
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Event is a single classified line of compiler or hook output.
// Every input line maps to exactly one Event.
type Event interface {
	// Level reports the severity the event is logged at.
	Level() Level
	// String renders the event as a single human readable line.
	String() string

	event()
}

// Severity distinguishes compiler warnings from compiler errors.
type Severity int

const (
	// SeverityWarning marks a diagnostic that does not fail the compile.
	SeverityWarning Severity = iota
	// SeverityError marks a diagnostic that fails the compile.
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// SummaryResult is the result reported by the compiler's summary line.
type SummaryResult int

const (
	// ResultSuccess is reported by a "Success - " summary line.
	ResultSuccess SummaryResult = iota
	// ResultFailure is reported by a "Failure - " summary line.
	ResultFailure
)

func (r SummaryResult) String() string {
	if r == ResultFailure {
		return "Failure"
	}
	return "Success"
}

// Diagnostic is a compiler warning or error attributed to a source identifier.
type Diagnostic struct {
	Severity Severity
	Source   string
	Message  string
}

func (Diagnostic) event() {}

// Level implements Event.
func (d Diagnostic) Level() Level {
	if d.Severity == SeverityError {
		return LevelError
	}
	return LevelWarn
}

func (d Diagnostic) String() string {
	if d.Source == "" {
		return d.Message
	}
	return d.Source + " : " + d.Message
}

// CompileAborted is emitted for the compiler's abort line.
type CompileAborted struct{}

func (CompileAborted) event() {}

// Level implements Event.
func (CompileAborted) Level() Level { return LevelError }

func (CompileAborted) String() string { return "Compile aborted due to errors." }

// BuildSummary is the compiler's terminal status line.
type BuildSummary struct {
	Result       SummaryResult
	ErrorCount   uint
	WarningCount uint
}

func (BuildSummary) event() {}

// Level implements Event.
func (s BuildSummary) Level() Level {
	if s.Result == ResultFailure {
		return LevelError
	}
	return LevelInfo
}

func (s BuildSummary) String() string {
	var b strings.Builder
	b.WriteString(s.Result.String())
	b.WriteString(" - ")
	b.WriteString(strconv.FormatUint(uint64(s.ErrorCount), 10))
	b.WriteString(" error(s), ")
	b.WriteString(strconv.FormatUint(uint64(s.WarningCount), 10))
	b.WriteString(" warning(s)")
	return b.String()
}

// FileCopyProgress is emitted by hooks for each file they copy.
type FileCopyProgress struct {
	FileName string
}

func (FileCopyProgress) event() {}

// Level implements Event.
func (FileCopyProgress) Level() Level { return LevelInfo }

func (p FileCopyProgress) String() string { return "Copying " + p.FileName }

// FileCopyTotal is emitted by hooks once copying has finished.
type FileCopyTotal struct {
	Count uint
}

func (FileCopyTotal) event() {}

// Level implements Event.
func (FileCopyTotal) Level() Level { return LevelInfo }

func (t FileCopyTotal) String() string {
	return strconv.FormatUint(uint64(t.Count), 10) + " files copied."
}

// PlainLine is any line that matches no other rule.
type PlainLine struct {
	Text string
}

func (PlainLine) event() {}

// Level implements Event.
func (PlainLine) Level() Level { return LevelInfo }

func (p PlainLine) String() string { return p.Text }
