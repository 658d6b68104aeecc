// Package assets keeps per-workspace asset mappings loaded and fresh.
package assets

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.trai.ch/peek/internal/core/domain"
	"go.trai.ch/peek/internal/core/ports"
	"golang.org/x/sync/errgroup"
)

// workspaceData is one published registry entry. Entries are values and their
// mappings are never mutated after publication; writers publish a replacement.
type workspaceData struct {
	mapping    domain.AssetMapping
	signal     string
	lastUpdate time.Time
}

// Cache owns the workspace registry, the refresh guard and the background loop.
type Cache struct {
	local    ports.MappingLoader
	remote   ports.MappingFetcher
	activity ports.ActivityReader
	locator  ports.WorkspaceLocator
	notifier ports.Notifier
	logger   ports.Logger

	mu       sync.RWMutex
	settings domain.Settings
	registry map[string]workspaceData
	locks    map[string]workspaceLock

	// refreshing drops overlapping on-demand checks across all workspaces.
	refreshing atomic.Bool

	loopMu     sync.Mutex
	loopParent context.Context //nolint:containedctx // parent of every restarted loop
	loopCancel context.CancelFunc
	loopDone   chan struct{}
}

// NewCache creates a Cache with default settings and an empty registry.
func NewCache(
	local ports.MappingLoader,
	remote ports.MappingFetcher,
	activity ports.ActivityReader,
	locator ports.WorkspaceLocator,
	notifier ports.Notifier,
	logger ports.Logger,
) *Cache {
	return &Cache{
		local:    local,
		remote:   remote,
		activity: activity,
		locator:  locator,
		notifier: notifier,
		logger:   logger,
		settings: domain.DefaultSettings(),
		registry: make(map[string]workspaceData),
		locks:    make(map[string]workspaceLock),
	}
}

// Configure replaces the settings. Callers follow up with RestartAutoRefresh and Reload
// when the change affects the loop or the loaded data.
func (c *Cache) Configure(s domain.Settings) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.settings = s
}

// Settings returns the current settings.
func (c *Cache) Settings() domain.Settings {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.settings
}

// Resolve looks up an asset identifier in the workspace mapping. It never performs I/O.
func (c *Cache) Resolve(assetID, root string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	url := c.registry[root].mapping[assetID]
	return url, url != ""
}

// AssetIDs returns the loaded asset identifiers of a workspace in sorted order.
func (c *Cache) AssetIDs(root string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.registry[root].mapping.IDs()
}

// AddMapping inserts or overwrites one entry. The timestamp and activity signal are kept.
func (c *Cache) AddMapping(assetID, url, root string) {
	c.update(root, func(cur workspaceData) workspaceData {
		next := cur.mapping.Clone()
		next[assetID] = url
		cur.mapping = next
		return cur
	})
}

// Reload clears and reloads one workspace, or every workspace when root is empty.
// Local files are loaded first and one remote fetch is merged on top.
// Remote failures leave the local data in place and are returned.
func (c *Cache) Reload(ctx context.Context, root string) error {
	s := c.Settings()

	if root != "" {
		lock := c.lockFor(root)
		lock.Lock()
		defer lock.Unlock()

		data, err := c.load(ctx, root, s)
		c.update(root, func(workspaceData) workspaceData { return data })
		return err
	}

	roots := c.locator.Roots()
	loaded := make([]workspaceData, len(roots))
	errs := make([]error, len(roots))

	var g errgroup.Group
	for i, r := range roots {
		g.Go(func() error {
			lock := c.lockFor(r)
			lock.Lock()
			defer lock.Unlock()

			loaded[i], errs[i] = c.load(ctx, r, s)
			return nil
		})
	}
	_ = g.Wait()

	fresh := make(map[string]workspaceData, len(roots))
	for i, r := range roots {
		fresh[r] = loaded[i]
	}

	c.mu.Lock()
	c.registry = fresh
	c.mu.Unlock()

	return errors.Join(errs...)
}

// load runs the full load sequence for one workspace without publishing it.
func (c *Cache) load(ctx context.Context, root string, s domain.Settings) (workspaceData, error) {
	data := workspaceData{
		mapping: c.local.Load(root, s.AssetMappingPath),
		signal:  c.activity.Read(root, s.ActivityIDFile),
	}
	if data.mapping == nil {
		data.mapping = domain.AssetMapping{}
	}

	if !s.RemoteEnabled() {
		return data, nil
	}

	remote, err := c.remote.Fetch(ctx, s.AssetAPIURL, s.APITimeout, data.signal)
	if err != nil {
		return data, err
	}
	data.mapping = data.mapping.Overlay(remote)
	data.lastUpdate = time.Now()
	return data, nil
}

// CheckAndRefreshIfNeeded refreshes a workspace when its activity signal changed or
// its last remote update is older than the threshold. A changed signal clears the
// mapping before fetching. The call is dropped when another check is running.
// It reports whether a refresh ran.
func (c *Cache) CheckAndRefreshIfNeeded(ctx context.Context, root string) (bool, error) {
	s := c.Settings()
	if !s.OnDemandRefreshEnabled() {
		return false, nil
	}

	if !c.refreshing.CompareAndSwap(false, true) {
		return false, nil
	}
	defer c.refreshing.Store(false)

	signal := c.activity.Read(root, s.ActivityIDFile)
	cur := c.snapshot(root)

	var (
		changed bool
		err     error
	)
	switch {
	case signal != cur.signal:
		changed, err = c.refresh(ctx, root, s, signal, true)
	case s.RemoteEnabled() && (cur.lastUpdate.IsZero() || time.Since(cur.lastUpdate) > s.RefreshOnHoverThreshold):
		changed, err = c.refresh(ctx, root, s, signal, false)
	default:
		return false, nil
	}

	c.reportSilent(s, len(c.snapshot(root).mapping), changed, err)
	return true, err
}

// refresh is the single refresh operation shared by the on-demand check and the
// background loop. It holds the workspace lock for its whole duration.
// With invalidate set, the mapping is cleared and the new signal recorded before fetching.
// It reports whether the mapping changed.
func (c *Cache) refresh(
	ctx context.Context,
	root string,
	s domain.Settings,
	signal string,
	invalidate bool,
) (bool, error) {
	lock := c.lockFor(root)
	lock.Lock()
	defer lock.Unlock()

	changed := false
	if invalidate {
		before, _ := c.update(root, func(cur workspaceData) workspaceData {
			cur.mapping = domain.AssetMapping{}
			cur.signal = signal
			return cur
		})
		changed = len(before.mapping) > 0
	}

	if !s.RemoteEnabled() {
		return changed, nil
	}

	remote, err := c.remote.Fetch(ctx, s.AssetAPIURL, s.APITimeout, signal)
	if err != nil {
		return changed, err
	}

	now := time.Now()
	before, after := c.update(root, func(cur workspaceData) workspaceData {
		cur.mapping = cur.mapping.Overlay(remote)
		cur.lastUpdate = now
		return cur
	})
	return changed || before.mapping.Fingerprint() != after.mapping.Fingerprint(), nil
}

// Stats reports one workspace, or aggregates every workspace when root is empty.
func (c *Cache) Stats(root string) domain.Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if root != "" {
		data, ok := c.registry[root]
		if !ok {
			return domain.Stats{}
		}
		return domain.Stats{
			Total:          len(data.mapping),
			Loaded:         len(data.mapping) > 0,
			Workspaces:     1,
			LastUpdate:     data.lastUpdate,
			ActivitySignal: data.signal,
			Fingerprint:    data.mapping.Fingerprint(),
		}
	}

	var stats domain.Stats
	for _, data := range c.registry {
		stats.Total += len(data.mapping)
		stats.Workspaces++
		if data.lastUpdate.After(stats.LastUpdate) {
			stats.LastUpdate = data.lastUpdate
		}
	}
	stats.Loaded = stats.Total > 0
	stats.ActivitySignal = c.registry[c.locator.Primary()].signal
	return stats
}

// Start runs the background refresh loop until ctx is cancelled or Stop is called.
// An interval of zero disables the loop.
func (c *Cache) Start(ctx context.Context) {
	c.loopMu.Lock()
	defer c.loopMu.Unlock()

	c.stopLocked()
	c.loopParent = ctx
	c.startLocked()
}

// Stop stops the background loop and waits for it to exit.
func (c *Cache) Stop() {
	c.loopMu.Lock()
	defer c.loopMu.Unlock()

	c.stopLocked()
	c.loopParent = nil
}

// RestartAutoRefresh restarts the background loop with the current interval.
// It does nothing before Start.
func (c *Cache) RestartAutoRefresh() {
	c.loopMu.Lock()
	defer c.loopMu.Unlock()

	c.stopLocked()
	c.startLocked()
}

func (c *Cache) startLocked() {
	interval := c.Settings().AutoRefreshInterval
	if c.loopParent == nil || interval <= 0 {
		return
	}

	ctx, cancel := context.WithCancel(c.loopParent)
	done := make(chan struct{})
	c.loopCancel = cancel
	c.loopDone = done

	go c.loop(ctx, interval, done)
}

func (c *Cache) stopLocked() {
	if c.loopCancel == nil {
		return
	}
	c.loopCancel()
	<-c.loopDone
	c.loopCancel = nil
	c.loopDone = nil
}

func (c *Cache) loop(ctx context.Context, interval time.Duration, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.backgroundRefresh(ctx)
		}
	}
}

// backgroundRefresh re-fetches the primary workspace, merging over the current data.
// It is not covered by the on-demand guard but shares the workspace lock.
func (c *Cache) backgroundRefresh(ctx context.Context) {
	s := c.Settings()
	root := c.locator.Primary()
	if root == "" || !s.RemoteEnabled() {
		return
	}

	changed, err := c.refresh(ctx, root, s, c.snapshot(root).signal, false)
	if ctx.Err() != nil {
		return
	}
	c.reportSilent(s, len(c.snapshot(root).mapping), changed, err)
}

// reportSilent logs the outcome of a refresh nobody asked for and notifies the
// user when refresh notifications are enabled.
func (c *Cache) reportSilent(s domain.Settings, total int, changed bool, err error) {
	if err != nil {
		c.logger.Warn("asset refresh failed: " + err.Error())
		if s.ShowRefreshNotification {
			c.notifier.NotifyError(err)
		}
		return
	}
	if changed && s.ShowRefreshNotification {
		c.notifier.Notify(fmt.Sprintf("asset mappings refreshed (%d entries)", total))
	}
}

func (c *Cache) snapshot(root string) workspaceData {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.registry[root]
}

// update publishes fn's result for root and returns the entries before and after.
func (c *Cache) update(root string, fn func(workspaceData) workspaceData) (workspaceData, workspaceData) {
	c.mu.Lock()
	defer c.mu.Unlock()

	before := c.registry[root]
	after := fn(before)
	if after.mapping == nil {
		after.mapping = domain.AssetMapping{}
	}
	c.registry[root] = after
	return before, after
}

// workspaceLock is a one-slot semaphore serializing loads and refreshes of one workspace.
type workspaceLock chan struct{}

func (l workspaceLock) Lock() {
	l <- struct{}{}
}

func (l workspaceLock) Unlock() {
	<-l
}

func (c *Cache) lockFor(root string) workspaceLock {
	c.mu.Lock()
	defer c.mu.Unlock()

	lock, ok := c.locks[root]
	if !ok {
		lock = make(workspaceLock, 1)
		c.locks[root] = lock
	}
	return lock
}
