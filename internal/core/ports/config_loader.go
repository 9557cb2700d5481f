package ports

import "go.trai.ch/uccmake/internal/core/domain"

// ConfigLoader defines the interface for loading the workspace settings.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load merges defaults, the workspace settings file, the workspace .env
	// file and the process environment into validated settings.
	Load(workspaceDir string) (domain.Settings, error)
}
