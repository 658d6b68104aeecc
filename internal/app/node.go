package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/peek/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/peek/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/peek/internal/adapters/notify"    //nolint:depguard // Wired in app layer
	"go.trai.ch/peek/internal/adapters/preview"   //nolint:depguard // Wired in app layer
	"go.trai.ch/peek/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/peek/internal/adapters/workspace" //nolint:depguard // Wired in app layer
	"go.trai.ch/peek/internal/core/ports"
	"go.trai.ch/peek/internal/engine/assets"
	"go.trai.ch/peek/internal/engine/locator"
	"go.trai.ch/peek/internal/engine/matcher"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the Components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components holds everything the CLI entry point needs.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			workspace.NodeID,
			workspace.ConcreteNodeID,
			assets.NodeID,
			matcher.NodeID,
			locator.NodeID,
			preview.NodeID,
			watcher.NodeID,
			notify.NodeID,
			logger.NodeID,
			logger.ConcreteNodeID,
		},
		Run: runApp,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{AppNodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: a, Logger: log}, nil
		},
	})
}

func runApp(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}
	workspaces, err := graft.Dep[ports.WorkspaceLocator](ctx)
	if err != nil {
		return nil, err
	}
	roots, err := graft.Dep[*workspace.Locator](ctx)
	if err != nil {
		return nil, err
	}
	cache, err := graft.Dep[*assets.Cache](ctx)
	if err != nil {
		return nil, err
	}
	m, err := graft.Dep[*matcher.Matcher](ctx)
	if err != nil {
		return nil, err
	}
	resolver, err := graft.Dep[*locator.Resolver](ctx)
	if err != nil {
		return nil, err
	}
	renderer, err := graft.Dep[ports.Renderer](ctx)
	if err != nil {
		return nil, err
	}
	w, err := graft.Dep[ports.Watcher](ctx)
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
	concreteLog, err := graft.Dep[*logger.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, workspaces, cache, m, resolver, renderer, w, notifier, log).
		WithWorkspaceSetter(roots).
		WithLogSwitch(concreteLog), nil
}
