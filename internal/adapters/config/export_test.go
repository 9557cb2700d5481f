package config

import "go.trai.ch/uccmake/internal/core/ports"

// NewLoaderWithEnv creates a Loader reading variables from env instead of the
// process environment.
func NewLoaderWithEnv(logger ports.Logger, env map[string]string) *Loader {
	return &Loader{
		logger: logger,
		lookupEnv: func(key string) (string, bool) {
			v, ok := env[key]
			return v, ok
		},
	}
}
