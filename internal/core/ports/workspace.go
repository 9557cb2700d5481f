package ports

import "go.trai.ch/uccmake/internal/core/domain"

// WorkspaceResolver derives and checks the paths of a workspace.
//
//go:generate go run go.uber.org/mock/mockgen -source=workspace.go -destination=mocks/mock_workspace.go -package=mocks
type WorkspaceResolver interface {
	// Resolve computes every workspace path from dir. It does not touch the
	// file system unless compiler search on PATH is enabled in settings.
	Resolve(dir string, settings domain.Settings) (domain.WorkspacePaths, error)

	// Verify fails with domain.ErrMissingExecutable or
	// domain.ErrMissingConfiguration when a required file is absent.
	Verify(paths domain.WorkspacePaths) error

	// Exists reports whether path names a regular file. Hooks are optional
	// and only run when present.
	Exists(path string) bool
}
