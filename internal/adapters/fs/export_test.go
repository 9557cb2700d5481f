package fs

import "go.trai.ch/uccmake/internal/core/ports"

// NewBackupWithOps creates a Backup with replaced file removal and hashing.
func NewBackupWithOps(
	logger ports.Logger,
	remove func(string) error,
	hash func(string) (uint64, error),
) *Backup {
	b := NewBackup(NewHasher(), logger)
	if remove != nil {
		b.remove = remove
	}
	if hash != nil {
		b.hash = hash
	}
	return b
}
