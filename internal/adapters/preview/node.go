package preview

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/peek/internal/core/ports"
)

// NodeID is the unique identifier for the preview renderer Graft node.
const NodeID graft.ID = "adapter.preview"

func init() {
	graft.Register(graft.Node[ports.Renderer]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Renderer, error) {
			return NewRenderer(), nil
		},
	})
}
