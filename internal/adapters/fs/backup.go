package fs

import (
	"errors"
	"fmt"
	iofs "io/fs"
	"os"

	"go.trai.ch/uccmake/internal/core/domain"
	"go.trai.ch/uccmake/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ArtifactBackup = (*Backup)(nil)

// Backup moves the previous build artifact aside before a compile.
//
// It assumes a single writer: no other process touches the artifact or the
// backup while it runs.
type Backup struct {
	hasher *Hasher
	logger ports.Logger

	remove func(name string) error
	hash   func(path string) (uint64, error)
}

// NewBackup creates a new Backup.
func NewBackup(hasher *Hasher, logger ports.Logger) *Backup {
	return &Backup{
		hasher: hasher,
		logger: logger,
		remove: os.Remove,
		hash:   hasher.ComputeFileHash,
	}
}

// Backup implements ports.ArtifactBackup.
func (b *Backup) Backup(artifact, backup string) (domain.BackupResult, error) {
	var result domain.BackupResult

	info, err := os.Stat(artifact)
	switch {
	case errors.Is(err, iofs.ErrNotExist):
		return result, nil
	case err != nil:
		return result, backupError("stat", artifact, err)
	case info.IsDir():
		return result, backupError("stat", artifact, errors.New("artifact is a directory"))
	}

	if err := b.remove(backup); err != nil && !errors.Is(err, iofs.ErrNotExist) {
		return result, backupError("remove_stale", backup, err)
	}

	n, sum, err := b.hasher.CopyFile(artifact, backup)
	if err != nil {
		return result, backupError("copy", backup, err)
	}

	written, err := b.hash(backup)
	if err != nil {
		return result, backupError("verify", backup, err)
	}
	if written != sum {
		verifyErr := zerr.With(
			zerr.With(zerr.Wrap(domain.ErrBackupVerifyFailed, "backup is corrupt"), "expected", checksum(sum)),
			"actual", checksum(written),
		)
		return result, backupError("verify", backup, verifyErr)
	}

	b.logger.Info(fmt.Sprintf("Created backup of %s", artifact), "checksum", checksum(sum))
	b.logger.Info(fmt.Sprintf("Backup saved as %s", backup))

	if err := b.remove(artifact); err != nil {
		return result, backupError("remove_artifact", artifact, err)
	}

	result.Performed = true
	result.Bytes = n
	result.Checksum = sum

	return result, nil
}

// backupError wraps cause in ErrBackupFailed. A verification failure already
// carries it through ErrBackupVerifyFailed.
func backupError(step, path string, cause error) error {
	err := cause
	if !errors.Is(cause, domain.ErrBackupVerifyFailed) {
		err = zerr.With(zerr.Wrap(domain.ErrBackupFailed, "artifact backup aborted"), "reason", cause.Error())
	}
	return zerr.With(zerr.With(err, "step", step), "path", path)
}

func checksum(sum uint64) string {
	return fmt.Sprintf("%016x", sum)
}
