package remote

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/peek/internal/core/ports"
)

// NodeID is the unique identifier for the remote mapping fetcher Graft node.
const NodeID graft.ID = "adapter.remote"

func init() {
	graft.Register(graft.Node[ports.MappingFetcher]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.MappingFetcher, error) {
			return NewFetcher(), nil
		},
	})
}
