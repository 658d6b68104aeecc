package workspace

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/peek/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the workspace locator Graft node.
	NodeID graft.ID = "adapter.workspace"
	// ConcreteNodeID exposes the concrete locator so the CLI can set the roots.
	ConcreteNodeID graft.ID = "adapter.workspace.concrete"
)

func init() {
	graft.Register(graft.Node[*Locator]{
		ID:        ConcreteNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Locator, error) {
			return NewLocator()
		},
	})

	graft.Register(graft.Node[ports.WorkspaceLocator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{ConcreteNodeID},
		Run: func(ctx context.Context) (ports.WorkspaceLocator, error) {
			return graft.Dep[*Locator](ctx)
		},
	})
}
