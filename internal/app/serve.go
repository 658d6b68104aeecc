package app

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"time"

	"go.trai.ch/peek/internal/adapters/daemon"  //nolint:depguard // Wired in app layer
	"go.trai.ch/peek/internal/adapters/watcher" //nolint:depguard // Wired in app layer
	"go.trai.ch/peek/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

var _ daemon.Service = (*App)(nil)

// ServeOptions configures the editor daemon.
type ServeOptions struct {
	In          io.Reader
	Out         io.Writer
	IdleTimeout time.Duration
}

// Serve loads every workspace and answers daemon requests until the input ends,
// ctx is cancelled, a shutdown request arrives or the daemon stays idle too long.
// While serving, file changes trigger reloads and the background refresh loop runs.
func (a *App) Serve(ctx context.Context, opts ServeOptions) error {
	a.refreshOnHover = true
	defer a.background.Wait()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if _, err := a.Reload(ctx, ""); err != nil {
		a.notifier.NotifyError(err)
	}

	a.cache.Start(ctx)
	defer a.cache.Stop()

	debouncer := watcher.NewDebouncer(watcher.DefaultDebounceWindow, func(paths []string) {
		a.handleChanges(ctx, paths)
	})
	defer debouncer.Stop()

	if err := a.watcher.Start(ctx, a.watchDirs()); err != nil {
		return zerr.Wrap(err, "failed to watch workspaces")
	}
	defer func() {
		if err := a.watcher.Stop(); err != nil {
			a.logger.Warn("failed to stop file watcher: " + err.Error())
		}
	}()

	lifecycle := daemon.NewLifecycle(opts.IdleTimeout)
	defer lifecycle.Shutdown()
	server := daemon.NewServer(a, lifecycle, a.logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		return server.Serve(gctx, opts.In, opts.Out)
	})
	g.Go(func() error {
		for event := range a.watcher.Events() {
			debouncer.Add(event.Path)
		}
		return nil
	})
	return g.Wait()
}

// handleChanges reacts to a debounced batch of changed paths.
// A config change reloads settings and every workspace; other changes reload the owning workspace.
// Newly created directories that hold watched files are added to the watcher.
func (a *App) handleChanges(ctx context.Context, paths []string) {
	if a.configPath != "" && slices.Contains(paths, a.configPath) {
		if err := a.applySettings(a.configPath); err != nil {
			a.notifier.NotifyError(err)
			return
		}
		a.watch(a.watchDirs())
		a.cache.RestartAutoRefresh()
		a.reload(ctx, "")
		return
	}

	dirs := a.watchDirs()
	if slices.ContainsFunc(paths, func(path string) bool { return slices.Contains(dirs, path) }) {
		a.watch(dirs)
	}

	var roots []string
	for _, path := range paths {
		root, ok := a.affectedRoot(path)
		if ok && !slices.Contains(roots, root) {
			roots = append(roots, root)
		}
	}
	for _, root := range roots {
		a.reload(ctx, root)
	}
}

func (a *App) watch(dirs []string) {
	if err := a.watcher.Watch(dirs); err != nil {
		a.logger.Warn("failed to watch directories: " + err.Error())
	}
}

func (a *App) reload(ctx context.Context, root string) {
	if err := a.cache.Reload(ctx, root); err != nil {
		a.notifier.NotifyError(zerr.Wrap(err, "failed to reload asset mappings"))
		return
	}
	a.logger.Info(fmt.Sprintf("reloaded %d asset mappings", a.cache.Stats(root).Total))
}

// affectedRoot returns the workspace whose mapping depends on path.
// A path naming the directory of a watched file counts, so creating that directory reloads too.
func (a *App) affectedRoot(path string) (string, bool) {
	s := a.cache.Settings()
	for _, root := range a.workspaces.Roots() {
		watched := domain.MappingCandidates(root, s.AssetMappingPath)
		watched = append(watched, filepath.Join(root, s.ActivityIDFile))
		for _, file := range watched {
			if path == file || (path != root && path == filepath.Dir(file)) {
				return root, true
			}
		}
	}
	return "", false
}

// watchDirs returns the directories holding mapping, activity and config files.
func (a *App) watchDirs() []string {
	s := a.cache.Settings()
	var dirs []string
	add := func(dir string) {
		if !slices.Contains(dirs, dir) {
			dirs = append(dirs, dir)
		}
	}
	for _, root := range a.workspaces.Roots() {
		for _, path := range domain.MappingCandidates(root, s.AssetMappingPath) {
			add(filepath.Dir(path))
		}
		add(filepath.Dir(filepath.Join(root, s.ActivityIDFile)))
	}
	if a.configPath != "" {
		add(filepath.Dir(a.configPath))
	}
	return dirs
}
