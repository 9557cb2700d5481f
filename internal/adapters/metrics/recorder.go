// Package metrics records build metrics and exports them in the Prometheus
// text format.
package metrics

import "go.trai.ch/uccmake/internal/core/domain"

// eventKind returns the metric label of an event.
func eventKind(ev domain.Event) string {
	switch ev.(type) {
	case domain.Diagnostic:
		return "diagnostic"
	case domain.CompileAborted:
		return "compile_aborted"
	case domain.BuildSummary:
		return "summary"
	case domain.FileCopyProgress:
		return "file_copy_progress"
	case domain.FileCopyTotal:
		return "file_copy_total"
	default:
		return "plain"
	}
}
