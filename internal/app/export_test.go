package app

import "context"

// HandleChanges exposes handleChanges for tests.
func (a *App) HandleChanges(ctx context.Context, paths []string) {
	a.handleChanges(ctx, paths)
}

// WatchDirs exposes watchDirs for tests.
func (a *App) WatchDirs() []string {
	return a.watchDirs()
}
