package domain

import "go.trai.ch/zerr"

var (
	// ErrMissingExecutable is returned when the compiler binary does not exist on disk.
	ErrMissingExecutable = zerr.New("compiler executable not found")

	// ErrMissingConfiguration is returned when the workspace has no make.ini.
	ErrMissingConfiguration = zerr.New("configuration file not found")

	// ErrInvalidWorkspace is returned when the workspace directory cannot be turned into an absolute path.
	ErrInvalidWorkspace = zerr.New("invalid workspace directory")

	// ErrSourceDirectoryNotFound is returned when the flatten source does not exist or is not a directory.
	ErrSourceDirectoryNotFound = zerr.New("source directory not found")

	// ErrDestinationNotEmpty is returned when the flatten destination already contains files.
	ErrDestinationNotEmpty = zerr.New("destination directory is not empty")

	// ErrDestinationCreateFailed is returned when the flatten destination cannot be created.
	ErrDestinationCreateFailed = zerr.New("failed to create destination directory")

	// ErrBackupFailed is returned when any step of the artifact backup fails.
	ErrBackupFailed = zerr.New("failed to back up artifact")

	// ErrBackupVerifyFailed is returned when the written backup does not match the artifact checksum.
	// It wraps ErrBackupFailed.
	ErrBackupVerifyFailed = zerr.Wrap(ErrBackupFailed, "backup checksum does not match artifact")

	// ErrProcessStartFailed is returned when an external process cannot be launched.
	ErrProcessStartFailed = zerr.New("failed to start process")

	// ErrProcessWaitFailed is returned when waiting on an external process fails for a reason other than its exit code.
	ErrProcessWaitFailed = zerr.New("failed to wait for process")

	// ErrProcessOutputFailed is returned when the output stream of a process cannot be read.
	ErrProcessOutputFailed = zerr.New("failed to read process output")

	// ErrUnsupportedEncoding is returned when the configured output encoding is unknown.
	ErrUnsupportedEncoding = zerr.New("unsupported output encoding")

	// ErrMalformedSummary is returned when a Success/Failure summary line has unparsable counts.
	ErrMalformedSummary = zerr.New("malformed build summary")

	// ErrBuildAborted is returned when the pipeline stops before the compiler produced a result.
	ErrBuildAborted = zerr.New("build aborted")

	// ErrCompileFailed is returned when the compiler exits with a non-zero status.
	ErrCompileFailed = zerr.New("compile failed")

	// ErrHookFailed is returned when a hook fails and the hook failure policy is "fail".
	ErrHookFailed = zerr.New("hook failed")

	// ErrInvalidConfiguration is returned when a configuration value is not allowed.
	ErrInvalidConfiguration = zerr.New("invalid configuration")

	// ErrConfigReadFailed is returned when the settings file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read configuration file")

	// ErrConfigParseFailed is returned when the settings file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse configuration file")

	// ErrEnvFileReadFailed is returned when the workspace .env file cannot be read.
	ErrEnvFileReadFailed = zerr.New("failed to read env file")

	// ErrMetricsWriteFailed is returned when the metrics text file cannot be written.
	ErrMetricsWriteFailed = zerr.New("failed to write metrics file")

	// ErrPipelinePanicked is returned when the build pipeline panics.
	ErrPipelinePanicked = zerr.New("build pipeline panicked")
)
