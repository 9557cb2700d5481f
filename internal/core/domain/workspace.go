package domain

// WorkspacePaths holds every path derived from a workspace directory.
// It is computed once per invocation and never mutated afterwards.
type WorkspacePaths struct {
	ModuleName        string
	WorkspaceDir      string
	SystemDir         string
	CompilerPath      string
	ConfigurationPath string
	ArtifactPath      string
	BackupPath        string
	PreBuildHookPath  string
	PostBuildHookPath string
}

// CompileCommand returns the compiler invocation for these paths.
func (p WorkspacePaths) CompileCommand(encoding string) Command {
	return Command{
		Executable: p.CompilerPath,
		Args:       []string{CompileVerb, ConfigurationFlag + p.ConfigurationPath},
		Dir:        p.SystemDir,
		Encoding:   encoding,
	}
}

// HookCommand returns the invocation for a hook script located at path.
func (p WorkspacePaths) HookCommand(path, encoding string) Command {
	return Command{
		Executable: path,
		Dir:        p.WorkspaceDir,
		Encoding:   encoding,
	}
}

// Command describes a single external process launch.
type Command struct {
	Executable string
	Args       []string
	Dir        string
	// Encoding names the text encoding of the process output, e.g. "windows-1252".
	// An empty value means UTF-8.
	Encoding string
}
