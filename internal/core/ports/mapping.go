// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
	"time"

	"go.trai.ch/peek/internal/core/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=mapping.go -destination=mocks/mock_mapping.go -package=mocks

// MappingLoader reads the bundled local mapping files of a workspace.
type MappingLoader interface {
	// Load merges every readable candidate for root, later candidates winning.
	// Unreadable or malformed candidates are skipped; Load never fails.
	Load(root, override string) domain.AssetMapping
}

// MappingFetcher fetches the remote mapping.
type MappingFetcher interface {
	// Fetch performs exactly one GET against url, bounded by timeout.
	// A non-empty activity signal is sent as the x-activity-id header.
	// Failures are returned as *domain.FetchError.
	Fetch(ctx context.Context, url string, timeout time.Duration, activity string) (domain.AssetMapping, error)
}

// ActivityReader reads the activity signal of a workspace.
type ActivityReader interface {
	// Read returns the trimmed signal file content, or "" when absent or unreadable.
	Read(root, fileName string) string
}
