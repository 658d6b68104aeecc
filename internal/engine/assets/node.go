package assets

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/peek/internal/adapters/activity"
	"go.trai.ch/peek/internal/adapters/local"
	"go.trai.ch/peek/internal/adapters/logger"
	"go.trai.ch/peek/internal/adapters/notify"
	"go.trai.ch/peek/internal/adapters/remote"
	"go.trai.ch/peek/internal/adapters/workspace"
	"go.trai.ch/peek/internal/core/ports"
)

// NodeID is the unique identifier for the asset cache Graft node.
const NodeID graft.ID = "engine.assets"

func init() {
	graft.Register(graft.Node[*Cache]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			local.NodeID,
			remote.NodeID,
			activity.NodeID,
			workspace.NodeID,
			notify.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Cache, error) {
			localLoader, err := graft.Dep[ports.MappingLoader](ctx)
			if err != nil {
				return nil, err
			}
			fetcher, err := graft.Dep[ports.MappingFetcher](ctx)
			if err != nil {
				return nil, err
			}
			reader, err := graft.Dep[ports.ActivityReader](ctx)
			if err != nil {
				return nil, err
			}
			locator, err := graft.Dep[ports.WorkspaceLocator](ctx)
			if err != nil {
				return nil, err
			}
			notifier, err := graft.Dep[ports.Notifier](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewCache(localLoader, fetcher, reader, locator, notifier, log), nil
		},
	})
}
