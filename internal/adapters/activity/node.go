package activity

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/peek/internal/adapters/fs"
	"go.trai.ch/peek/internal/core/ports"
)

// NodeID is the unique identifier for the activity reader Graft node.
const NodeID graft.ID = "adapter.activity"

func init() {
	graft.Register(graft.Node[ports.ActivityReader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.NodeID},
		Run: func(ctx context.Context) (ports.ActivityReader, error) {
			fsys, err := graft.Dep[fs.FileSystem](ctx)
			if err != nil {
				return nil, err
			}
			return NewReaderWithFS(fsys), nil
		},
	})
}
