// Package classifier turns compiler and hook output lines into events.
package classifier

import (
	"iter"
	"strconv"
	"strings"

	"go.trai.ch/uccmake/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	errorMarker   = ": Error,"
	warningMarker = ": Warning,"
	sourceSep     = " : "

	abortedLine   = "Compile aborted due to errors."
	successPrefix = "Success - "
	failurePrefix = "Failure - "
	countSep      = ", "

	copyingPrefix = "Copying "
	copiedSuffix  = " copied."
)

var severityWord = map[domain.Severity]string{
	domain.SeverityError:   "Error,",
	domain.SeverityWarning: "Warning,",
}

// Classify maps one output line to its event. The first matching rule wins.
//
// A summary line with unparsable counts is a fault: Classify returns a nil
// event and an error wrapping domain.ErrMalformedSummary.
func Classify(line string) (domain.Event, error) {
	switch {
	case strings.Contains(line, errorMarker):
		return diagnostic(domain.SeverityError, line), nil
	case strings.Contains(line, warningMarker):
		return diagnostic(domain.SeverityWarning, line), nil
	case line == abortedLine:
		return domain.CompileAborted{}, nil
	case strings.HasPrefix(line, successPrefix):
		return summary(domain.ResultSuccess, line, line[len(successPrefix):])
	case strings.HasPrefix(line, failurePrefix):
		return summary(domain.ResultFailure, line, line[len(failurePrefix):])
	}

	if strings.HasPrefix(line, copyingPrefix) {
		if fields := strings.Fields(line); len(fields) >= 2 {
			return domain.FileCopyProgress{FileName: fields[1]}, nil
		}
	}

	if strings.HasSuffix(line, copiedSuffix) {
		if fields := strings.Fields(line); len(fields) > 0 {
			if n, err := strconv.ParseUint(fields[0], 10, 0); err == nil {
				return domain.FileCopyTotal{Count: uint(n)}, nil
			}
		}
	}

	return domain.PlainLine{Text: line}, nil
}

// ClassifyAll classifies every line of lines in order.
func ClassifyAll(lines iter.Seq[string]) iter.Seq2[domain.Event, error] {
	return func(yield func(domain.Event, error) bool) {
		for line := range lines {
			if !yield(Classify(line)) {
				return
			}
		}
	}
}

// diagnostic splits line on the first " : ". Further separators stay part of
// the message. The leading severity word of the message is dropped.
func diagnostic(severity domain.Severity, line string) domain.Diagnostic {
	source, message, found := strings.Cut(line, sourceSep)
	if !found {
		return domain.Diagnostic{Severity: severity, Message: strings.TrimSpace(line)}
	}

	message = strings.TrimSpace(message)
	if rest, ok := strings.CutPrefix(message, severityWord[severity]); ok {
		message = strings.TrimSpace(rest)
	}

	return domain.Diagnostic{
		Severity: severity,
		Source:   strings.TrimSpace(source),
		Message:  message,
	}
}

func summary(result domain.SummaryResult, line, rest string) (domain.Event, error) {
	parts := strings.Split(rest, countSep)
	if len(parts) != 2 {
		return nil, malformed(line)
	}

	errorCount, ok := leadingCount(parts[0])
	if !ok {
		return nil, malformed(line)
	}
	warningCount, ok := leadingCount(parts[1])
	if !ok {
		return nil, malformed(line)
	}

	return domain.BuildSummary{
		Result:       result,
		ErrorCount:   errorCount,
		WarningCount: warningCount,
	}, nil
}

// leadingCount parses the first whitespace separated token of s.
func leadingCount(s string) (uint, bool) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0, false
	}
	n, err := strconv.ParseUint(fields[0], 10, 0)
	if err != nil {
		return 0, false
	}
	return uint(n), true
}

func malformed(line string) error {
	return zerr.With(zerr.Wrap(domain.ErrMalformedSummary, "failed to parse summary counts"), "line", line)
}
