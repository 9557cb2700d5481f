package fs_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/uccmake/internal/adapters/fs"
	"go.trai.ch/uccmake/internal/core/domain"
	"go.trai.ch/uccmake/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func errorStep(t *testing.T, err error) any {
	t.Helper()
	var zErr *zerr.Error
	require.True(t, errors.As(err, &zErr))
	return zErr.Metadata()["step"]
}

func TestBackup_Backup(t *testing.T) {
	tmpDir := t.TempDir()
	artifact := filepath.Join(tmpDir, "Core.u")
	backup := filepath.Join(tmpDir, "Core.u.bak")
	content := []byte("compiled package")

	require.NoError(t, os.WriteFile(artifact, content, 0o600))
	require.NoError(t, os.WriteFile(backup, []byte("stale backup"), 0o600))

	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	gomock.InOrder(
		logger.EXPECT().Info("Created backup of "+artifact, "checksum", gomock.Any()),
		logger.EXPECT().Info("Backup saved as "+backup),
	)

	b := fs.NewBackup(fs.NewHasher(), logger)
	result, err := b.Backup(artifact, backup)
	require.NoError(t, err)

	assert.True(t, result.Performed)
	assert.Equal(t, int64(len(content)), result.Bytes)
	assert.Equal(t, xxhash.Sum64(content), result.Checksum)

	_, statErr := os.Stat(artifact)
	require.ErrorIs(t, statErr, os.ErrNotExist)

	saved, err := os.ReadFile(backup)
	require.NoError(t, err)
	assert.Equal(t, content, saved)
}

func TestBackup_Backup_NoArtifact(t *testing.T) {
	tmpDir := t.TempDir()
	backup := filepath.Join(tmpDir, "Core.u.bak")
	require.NoError(t, os.WriteFile(backup, []byte("previous backup"), 0o600))

	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)

	b := fs.NewBackup(fs.NewHasher(), logger)
	result, err := b.Backup(filepath.Join(tmpDir, "Core.u"), backup)
	require.NoError(t, err)
	assert.False(t, result.Performed)

	// The previous backup is only replaced when there is a new artifact.
	saved, err := os.ReadFile(backup)
	require.NoError(t, err)
	assert.Equal(t, "previous backup", string(saved))
}

func TestBackup_Backup_ArtifactIsDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	artifact := filepath.Join(tmpDir, "Core.u")
	require.NoError(t, os.Mkdir(artifact, 0o750))

	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)

	b := fs.NewBackup(fs.NewHasher(), logger)
	_, err := b.Backup(artifact, filepath.Join(tmpDir, "Core.u.bak"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBackupFailed)
}

func TestBackup_Backup_StaleBackupIsDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	artifact := filepath.Join(tmpDir, "Core.u")
	backup := filepath.Join(tmpDir, "Core.u.bak")

	require.NoError(t, os.WriteFile(artifact, []byte("compiled"), 0o600))
	require.NoError(t, os.MkdirAll(filepath.Join(backup, "child"), 0o750))

	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)

	b := fs.NewBackup(fs.NewHasher(), logger)
	_, err := b.Backup(artifact, backup)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBackupFailed)

	// The artifact is left in place when the backup cannot be made.
	assert.FileExists(t, artifact)
}

func TestBackup_Backup_RemoveArtifactFails(t *testing.T) {
	tmpDir := t.TempDir()
	artifact := filepath.Join(tmpDir, "Core.u")
	backup := filepath.Join(tmpDir, "Core.u.bak")
	content := []byte("compiled package")
	require.NoError(t, os.WriteFile(artifact, content, 0o600))

	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any(), gomock.Any()).Times(2)

	remove := func(name string) error {
		if name == artifact {
			return os.ErrPermission
		}
		return os.Remove(name)
	}

	b := fs.NewBackupWithOps(logger, remove, nil)
	result, err := b.Backup(artifact, backup)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBackupFailed)
	assert.NotErrorIs(t, err, domain.ErrBackupVerifyFailed)
	assert.Equal(t, "remove_artifact", errorStep(t, err))
	assert.False(t, result.Performed)

	// Both copies remain: the backup is complete and the original was not removed.
	saved, err := os.ReadFile(backup)
	require.NoError(t, err)
	assert.Equal(t, content, saved)
	original, err := os.ReadFile(artifact)
	require.NoError(t, err)
	assert.Equal(t, content, original)
}

func TestBackup_Backup_ChecksumMismatch(t *testing.T) {
	tmpDir := t.TempDir()
	artifact := filepath.Join(tmpDir, "Core.u")
	backup := filepath.Join(tmpDir, "Core.u.bak")
	content := []byte("compiled package")
	require.NoError(t, os.WriteFile(artifact, content, 0o600))

	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)

	hash := func(string) (uint64, error) {
		return xxhash.Sum64(content) + 1, nil
	}

	b := fs.NewBackupWithOps(logger, nil, hash)
	result, err := b.Backup(artifact, backup)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBackupFailed)
	assert.ErrorIs(t, err, domain.ErrBackupVerifyFailed)
	assert.Equal(t, "verify", errorStep(t, err))
	assert.False(t, result.Performed)

	// The artifact is kept when the backup cannot be trusted.
	original, err := os.ReadFile(artifact)
	require.NoError(t, err)
	assert.Equal(t, content, original)
}

func TestBackup_Backup_VerifyReadFails(t *testing.T) {
	tmpDir := t.TempDir()
	artifact := filepath.Join(tmpDir, "Core.u")
	require.NoError(t, os.WriteFile(artifact, []byte("compiled"), 0o600))

	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)

	hash := func(string) (uint64, error) {
		return 0, errors.New("read error")
	}

	b := fs.NewBackupWithOps(logger, nil, hash)
	_, err := b.Backup(artifact, filepath.Join(tmpDir, "Core.u.bak"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBackupFailed)
	assert.NotErrorIs(t, err, domain.ErrBackupVerifyFailed)
	assert.Equal(t, "verify", errorStep(t, err))
	assert.FileExists(t, artifact)
}
