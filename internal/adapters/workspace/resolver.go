// Package workspace derives and checks the paths of a module workspace.
package workspace

import (
	"os"
	"os/exec"
	"path/filepath"

	"go.trai.ch/uccmake/internal/core/domain"
	"go.trai.ch/uccmake/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.WorkspaceResolver = (*Resolver)(nil)

// Resolver implements ports.WorkspaceResolver.
type Resolver struct {
	lookPath func(file string) (string, error)
}

// NewResolver creates a new Resolver.
func NewResolver() *Resolver {
	return &Resolver{lookPath: exec.LookPath}
}

// Resolve computes the workspace paths for dir.
//
// The workspace layout is
//
//	<parent>/<module>/make.ini
//	<parent>/<module>/PreBuild.bat
//	<parent>/System/ucc.exe
//	<parent>/System/<module>.u
func (r *Resolver) Resolve(dir string, settings domain.Settings) (domain.WorkspacePaths, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return domain.WorkspacePaths{}, zerr.With(
			zerr.With(zerr.Wrap(domain.ErrInvalidWorkspace, "cannot resolve workspace"), "path", dir),
			"reason", err.Error(),
		)
	}

	module := filepath.Base(abs)
	if module == string(filepath.Separator) || module == "." {
		return domain.WorkspacePaths{}, zerr.With(
			zerr.Wrap(domain.ErrInvalidWorkspace, "workspace has no module name"), "path", abs,
		)
	}

	system := filepath.Join(filepath.Dir(abs), domain.SystemDirName)
	artifact := filepath.Join(system, module+domain.ArtifactExtension)

	return domain.WorkspacePaths{
		ModuleName:        module,
		WorkspaceDir:      abs,
		SystemDir:         system,
		CompilerPath:      r.compilerPath(system, settings),
		ConfigurationPath: filepath.Join(abs, domain.ConfigurationFileName),
		ArtifactPath:      artifact,
		BackupPath:        artifact + domain.BackupExtension,
		PreBuildHookPath:  inWorkspace(abs, settings.Hooks.PreBuild),
		PostBuildHookPath: inWorkspace(abs, settings.Hooks.PostBuild),
	}, nil
}

// compilerPath prefers a PATH hit when search is enabled.
func (r *Resolver) compilerPath(system string, settings domain.Settings) string {
	if filepath.IsAbs(settings.Compiler) {
		return settings.Compiler
	}
	if settings.CompilerSearchPath {
		if found, err := r.lookPath(settings.Compiler); err == nil {
			if abs, err := filepath.Abs(found); err == nil {
				return abs
			}
		}
	}
	return filepath.Join(system, settings.Compiler)
}

func inWorkspace(workspace, name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(workspace, name)
}

// Verify checks that the compiler and its configuration exist.
func (r *Resolver) Verify(paths domain.WorkspacePaths) error {
	if !isFile(paths.CompilerPath) {
		return zerr.With(zerr.Wrap(domain.ErrMissingExecutable, "cannot compile"), "path", paths.CompilerPath)
	}
	if !isFile(paths.ConfigurationPath) {
		return zerr.With(zerr.Wrap(domain.ErrMissingConfiguration, "cannot compile"), "path", paths.ConfigurationPath)
	}
	return nil
}

// Exists reports whether path names a regular file.
func (r *Resolver) Exists(path string) bool {
	return isFile(path)
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
