// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/peek/internal/adapters/activity"
	_ "go.trai.ch/peek/internal/adapters/config"
	_ "go.trai.ch/peek/internal/adapters/fs"
	_ "go.trai.ch/peek/internal/adapters/local"
	_ "go.trai.ch/peek/internal/adapters/logger"
	_ "go.trai.ch/peek/internal/adapters/notify"
	_ "go.trai.ch/peek/internal/adapters/preview"
	_ "go.trai.ch/peek/internal/adapters/remote"
	_ "go.trai.ch/peek/internal/adapters/watcher"
	_ "go.trai.ch/peek/internal/adapters/workspace"
	// Register app and engine nodes.
	_ "go.trai.ch/peek/internal/app"
	_ "go.trai.ch/peek/internal/engine/assets"
	_ "go.trai.ch/peek/internal/engine/locator"
	_ "go.trai.ch/peek/internal/engine/matcher"
)
