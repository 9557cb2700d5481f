package domain

import (
	"slices"

	"go.trai.ch/zerr"
	"golang.org/x/text/encoding/htmlindex"
)

// HookPolicy decides what a failing hook does to the build outcome.
type HookPolicy string

const (
	// HookPolicyIgnore logs hook failures and carries on.
	HookPolicyIgnore HookPolicy = "ignore"
	// HookPolicyFail turns hook failures into build failures.
	HookPolicyFail HookPolicy = "fail"
)

// LogFormat selects how log records are rendered.
type LogFormat string

const (
	// LogFormatAuto picks pretty output on a terminal and text otherwise.
	LogFormatAuto LogFormat = "auto"
	// LogFormatPretty renders colored human readable lines.
	LogFormatPretty LogFormat = "pretty"
	// LogFormatText renders logfmt style key=value lines.
	LogFormatText LogFormat = "text"
	// LogFormatJSON renders one JSON object per line.
	LogFormatJSON LogFormat = "json"
)

// ParseLogFormat validates a log format name. An empty name means auto.
func ParseLogFormat(name string) (LogFormat, error) {
	if name == "" {
		return LogFormatAuto, nil
	}
	f := LogFormat(name)
	switch f {
	case LogFormatAuto, LogFormatPretty, LogFormatText, LogFormatJSON:
		return f, nil
	default:
		return "", zerr.With(zerr.Wrap(ErrInvalidConfiguration, "unknown log format"), "log_format", name)
	}
}

// HookSettings configures the pre- and post-build hooks.
type HookSettings struct {
	PreBuild  string
	PostBuild string
	OnFailure HookPolicy
}

// FlattenSettings configures the source flattener.
type FlattenSettings struct {
	Ignore      []string
	Destination string
}

// Settings is the merged per-workspace configuration.
type Settings struct {
	Compiler           string
	CompilerSearchPath bool
	OutputEncoding     string
	Hooks              HookSettings
	Flatten            FlattenSettings
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		Compiler:       CompilerName,
		OutputEncoding: "utf-8",
		Hooks: HookSettings{
			PreBuild:  PreBuildHookName,
			PostBuild: PostBuildHookName,
			OnFailure: HookPolicyIgnore,
		},
		Flatten: FlattenSettings{
			Destination: FlattenDestinationName,
		},
	}
}

// Validate checks that every value is allowed.
func (s Settings) Validate() error {
	if s.Compiler == "" {
		return zerr.With(zerr.Wrap(ErrInvalidConfiguration, "compiler must not be empty"), "key", "compiler")
	}
	if s.Hooks.PreBuild == "" || s.Hooks.PostBuild == "" {
		return zerr.With(zerr.Wrap(ErrInvalidConfiguration, "hook names must not be empty"), "key", "hooks")
	}
	if s.Flatten.Destination == "" {
		return zerr.With(
			zerr.Wrap(ErrInvalidConfiguration, "flatten destination must not be empty"),
			"key", "flatten.destination",
		)
	}
	if !slices.Contains([]HookPolicy{HookPolicyIgnore, HookPolicyFail}, s.Hooks.OnFailure) {
		return zerr.With(
			zerr.Wrap(ErrInvalidConfiguration, "hook failure policy must be 'ignore' or 'fail'"),
			"hooks.on_failure", string(s.Hooks.OnFailure),
		)
	}
	if s.OutputEncoding != "" {
		if _, err := htmlindex.Get(s.OutputEncoding); err != nil {
			return zerr.With(
				zerr.With(zerr.Wrap(ErrInvalidConfiguration, "unknown output encoding"), "key", "output_encoding"),
				"output_encoding", s.OutputEncoding,
			)
		}
	}
	return nil
}
