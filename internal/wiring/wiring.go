// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/uccmake/internal/adapters/config"
	_ "go.trai.ch/uccmake/internal/adapters/fs"
	_ "go.trai.ch/uccmake/internal/adapters/logger"
	_ "go.trai.ch/uccmake/internal/adapters/metrics"
	_ "go.trai.ch/uccmake/internal/adapters/shell"
	_ "go.trai.ch/uccmake/internal/adapters/telemetry"
	_ "go.trai.ch/uccmake/internal/adapters/workspace"
	// Register app and engine nodes.
	_ "go.trai.ch/uccmake/internal/app"
	_ "go.trai.ch/uccmake/internal/engine/pipeline"
)
