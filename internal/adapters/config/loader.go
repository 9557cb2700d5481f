// Package config provides the settings loader for uccmake.
package config

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"go.trai.ch/uccmake/internal/core/domain"
	"go.trai.ch/uccmake/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the settings file.
const (
	EnvCompiler           = "UCCMAKE_COMPILER"
	EnvCompilerSearchPath = "UCCMAKE_COMPILER_SEARCH_PATH"
	EnvOutputEncoding     = "UCCMAKE_OUTPUT_ENCODING"
	EnvHookFailure        = "UCCMAKE_HOOK_FAILURE"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader.
//
// Sources are merged from lowest to highest priority: defaults, uccmake.yaml,
// the workspace .env file, the process environment.
type Loader struct {
	logger    ports.Logger
	lookupEnv func(key string) (string, bool)
}

// NewLoader creates a new Loader reading the process environment.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{logger: logger, lookupEnv: os.LookupEnv}
}

// Load reads the settings for the workspace at workspaceDir.
func (l *Loader) Load(workspaceDir string) (domain.Settings, error) {
	settings := domain.DefaultSettings()

	path := filepath.Join(workspaceDir, domain.SettingsFileName)
	file, err := readSettingsfile(path)
	if err != nil {
		return settings, err
	}
	if file != nil {
		applySettingsfile(&settings, file)
		l.logger.Info("Loaded settings", "path", path)
	}

	dotenv, err := readEnvFile(filepath.Join(workspaceDir, domain.EnvFileName))
	if err != nil {
		return settings, err
	}

	lookup := func(key string) (string, bool) {
		if v, ok := l.lookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}

	if err := applyEnvironment(&settings, lookup); err != nil {
		return settings, err
	}

	if err := settings.Validate(); err != nil {
		return settings, err
	}

	return settings, nil
}

// readSettingsfile returns nil when the file does not exist.
func readSettingsfile(path string) (*Settingsfile, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is derived from the workspace
	if errors.Is(err, iofs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, zerr.With(
			zerr.With(zerr.Wrap(domain.ErrConfigReadFailed, "cannot load settings"), "path", path),
			"reason", err.Error(),
		)
	}

	var file Settingsfile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(
			zerr.With(zerr.Wrap(domain.ErrConfigParseFailed, "invalid YAML"), "path", path),
			"reason", err.Error(),
		)
	}

	return &file, nil
}

func applySettingsfile(s *domain.Settings, f *Settingsfile) {
	setString(&s.Compiler, f.Compiler)
	if f.CompilerSearchPath != nil {
		s.CompilerSearchPath = *f.CompilerSearchPath
	}
	setString(&s.OutputEncoding, f.OutputEncoding)
	setString(&s.Hooks.PreBuild, f.Hooks.PreBuild)
	setString(&s.Hooks.PostBuild, f.Hooks.PostBuild)
	if f.Hooks.OnFailure != nil {
		s.Hooks.OnFailure = domain.HookPolicy(*f.Hooks.OnFailure)
	}
	if f.Flatten.Ignore != nil {
		s.Flatten.Ignore = f.Flatten.Ignore
	}
	setString(&s.Flatten.Destination, f.Flatten.Destination)
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// readEnvFile returns an empty map when the file does not exist. The process
// environment is not modified.
func readEnvFile(path string) (map[string]string, error) {
	env, err := godotenv.Read(path)
	if errors.Is(err, iofs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, zerr.With(
			zerr.With(zerr.Wrap(domain.ErrEnvFileReadFailed, "cannot load environment"), "path", path),
			"reason", err.Error(),
		)
	}
	return env, nil
}

func applyEnvironment(s *domain.Settings, lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvCompiler); ok {
		s.Compiler = v
	}
	if v, ok := lookup(EnvCompilerSearchPath); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return zerr.With(
				zerr.Wrap(domain.ErrInvalidConfiguration, "expected a boolean"),
				EnvCompilerSearchPath, v,
			)
		}
		s.CompilerSearchPath = b
	}
	if v, ok := lookup(EnvOutputEncoding); ok {
		s.OutputEncoding = v
	}
	if v, ok := lookup(EnvHookFailure); ok {
		s.Hooks.OnFailure = domain.HookPolicy(v)
	}
	return nil
}
