package fs

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/uccmake/internal/core/domain"
	"go.trai.ch/uccmake/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Flattener = (*Flattener)(nil)

// Flattener copies a nested source tree into one flat directory.
//
// Files are copied by base name in lexical walk order, so when two
// subdirectories contain the same name the later one wins.
//
// A subdirectory that cannot be read counts as a single failed entry and the
// files below it are never seen, so TotalFiles is a lower bound whenever an
// outcome carries a read error.
type Flattener struct {
	walker *Walker
	hasher *Hasher
	logger ports.Logger
}

// NewFlattener creates a new Flattener.
func NewFlattener(walker *Walker, hasher *Hasher, logger ports.Logger) *Flattener {
	return &Flattener{walker: walker, hasher: hasher, logger: logger}
}

// Flatten implements ports.Flattener.
func (f *Flattener) Flatten(source, destination string, ignore []string) (domain.FlattenResult, error) {
	var result domain.FlattenResult

	source, err := filepath.Abs(source)
	if err != nil {
		return result, pathError(domain.ErrSourceDirectoryNotFound, "cannot flatten", source, err)
	}
	destination, err = filepath.Abs(destination)
	if err != nil {
		return result, pathError(domain.ErrDestinationCreateFailed, "cannot flatten", destination, err)
	}

	info, err := os.Stat(source)
	if err != nil {
		return result, pathError(domain.ErrSourceDirectoryNotFound, "cannot flatten", source, err)
	}
	if !info.IsDir() {
		return result, pathError(domain.ErrSourceDirectoryNotFound, "source is not a directory", source, nil)
	}

	if err := prepareDestination(destination); err != nil {
		return result, err
	}

	copied := make(map[string]string)

	for path, walkErr := range f.walker.Walk(source, ignore, destination) {
		result.TotalFiles++

		if walkErr != nil {
			result.Outcomes = append(result.Outcomes, domain.FileOutcome{
				Path: path,
				Err:  zerr.With(zerr.Wrap(walkErr, "failed to read directory"), "path", path),
			})
			continue
		}

		name := filepath.Base(path)
		if previous, ok := copied[name]; ok {
			f.logger.Warn("Overwriting flattened file", "file", name, "previous", previous, "source", path)
		}

		if _, _, err := f.hasher.CopyFile(path, filepath.Join(destination, name)); err != nil {
			result.Outcomes = append(result.Outcomes, domain.FileOutcome{
				Path: path,
				Err:  zerr.With(zerr.Wrap(err, "failed to copy file"), "path", path),
			})
			continue
		}

		copied[name] = path
		result.FlattenedFiles++
		result.Outcomes = append(result.Outcomes, domain.FileOutcome{Path: path, Succeeded: true})
	}

	return result, nil
}

// prepareDestination creates destination when absent and refuses to continue
// when it already holds at least one file.
func prepareDestination(destination string) error {
	entries, err := os.ReadDir(destination)
	switch {
	case errors.Is(err, iofs.ErrNotExist):
		if mkErr := os.MkdirAll(destination, domain.DirPerm); mkErr != nil {
			return pathError(domain.ErrDestinationCreateFailed, "cannot flatten", destination, mkErr)
		}
		return nil
	case err != nil:
		return pathError(domain.ErrDestinationCreateFailed, "cannot flatten", destination, err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			return zerr.With(pathError(domain.ErrDestinationNotEmpty, "refusing to flatten", destination, nil), "file", entry.Name())
		}
	}

	return nil
}

// pathError wraps sentinel with the failing path and, when set, the text of
// the underlying cause.
func pathError(sentinel error, msg, path string, cause error) error {
	err := zerr.With(zerr.Wrap(sentinel, msg), "path", path)
	if cause != nil {
		err = zerr.With(err, "reason", cause.Error())
	}
	return err
}
