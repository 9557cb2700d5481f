// Package ports defines the core interfaces for the application.
package ports

import (
	"iter"

	"go.trai.ch/uccmake/internal/core/domain"
)

// ProcessRunner launches external processes and exposes their output line by line.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type ProcessRunner interface {
	// Start launches cmd with its standard output piped.
	//
	// A launch failure is reported as domain.ErrProcessStartFailed and is
	// distinct from a non-zero exit code returned later by Process.Wait.
	Start(cmd domain.Command) (Process, error)
}

// Process is a running external process.
type Process interface {
	// Lines yields the standard output lines as they arrive, without line
	// terminators. The sequence ends when the stream closes.
	Lines() iter.Seq[string]

	// Wait blocks until the process exits and returns its exit code.
	// A non-zero exit code is not an error.
	Wait() (int, error)
}
