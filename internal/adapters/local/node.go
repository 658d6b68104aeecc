package local

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/peek/internal/adapters/logger"
	"go.trai.ch/peek/internal/core/ports"
)

// NodeID is the unique identifier for the local mapping loader Graft node.
const NodeID graft.ID = "adapter.local"

func init() {
	graft.Register(graft.Node[ports.MappingLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.MappingLoader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(log), nil
		},
	})
}
