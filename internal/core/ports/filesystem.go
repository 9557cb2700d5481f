package ports

import "go.trai.ch/uccmake/internal/core/domain"

//go:generate go run go.uber.org/mock/mockgen -source=filesystem.go -destination=mocks/mock_filesystem.go -package=mocks

// Flattener copies a nested source tree into a single flat directory.
type Flattener interface {
	// Flatten copies every file below source into destination by base name.
	// Entries whose name matches one of the ignore patterns are skipped.
	//
	// Per-file failures are recorded in the result and do not stop the walk.
	Flatten(source, destination string, ignore []string) (domain.FlattenResult, error)
}

// ArtifactBackup moves a previous build artifact aside before compiling.
type ArtifactBackup interface {
	// Backup copies artifact to backup and removes artifact.
	// It is a no-op when artifact does not exist.
	Backup(artifact, backup string) (domain.BackupResult, error)
}
