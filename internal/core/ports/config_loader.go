package ports

import "go.trai.ch/peek/internal/core/domain"

// ConfigLoader defines the interface for loading the configuration surface.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the settings from the given config file.
	// A missing file yields domain.DefaultSettings().
	Load(path string) (domain.Settings, error)
}
