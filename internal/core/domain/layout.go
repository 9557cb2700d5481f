package domain

const (
	// CompilerName is the default file name of the compiler binary.
	CompilerName = "ucc.exe"

	// SystemDirName is the directory next to the workspace that holds the compiler and artifacts.
	SystemDirName = "System"

	// ConfigurationFileName is the compiler configuration file inside the workspace.
	ConfigurationFileName = "make.ini"

	// PreBuildHookName is the hook run before the backup and compile stages.
	PreBuildHookName = "PreBuild.bat"

	// PostBuildHookName is the hook run after a successful compile.
	PostBuildHookName = "PostBuild.bat"

	// ArtifactExtension is appended to the module name to form the artifact file name.
	ArtifactExtension = ".u"

	// BackupExtension is appended to the artifact path to form the backup path.
	BackupExtension = ".bak"

	// FlattenDestinationName is the default flatten target relative to the working directory.
	FlattenDestinationName = "classes"

	// SettingsFileName is the optional per-workspace settings file.
	SettingsFileName = "uccmake.yaml"

	// EnvFileName is the optional per-workspace environment file.
	EnvFileName = ".env"

	// CompileVerb is the compiler sub-command used for builds.
	CompileVerb = "make"

	// ConfigurationFlag prefixes the configuration path on the compiler command line.
	ConfigurationFlag = "-ini="

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)
