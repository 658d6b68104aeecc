// Package app implements the application layer for peek.
package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.trai.ch/peek/internal/core/domain"
	"go.trai.ch/peek/internal/core/ports"
	"go.trai.ch/peek/internal/engine/assets"
	"go.trai.ch/peek/internal/engine/locator"
	"go.trai.ch/peek/internal/engine/matcher"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	workspaces   ports.WorkspaceLocator
	cache        *assets.Cache
	matcher      *matcher.Matcher
	resolver     *locator.Resolver
	renderer     ports.Renderer
	watcher      ports.Watcher
	notifier     ports.Notifier
	logger       ports.Logger

	configPath string

	// refreshOnHover is set while serving; hovers then start an on-demand check.
	refreshOnHover bool
	background     sync.WaitGroup

	workspaceSetter WorkspaceSetter
	logSwitch       LogSwitch
}

// WorkspaceSetter replaces the known workspace roots.
type WorkspaceSetter interface {
	SetRoots(roots []string) error
}

// LogSwitch toggles the log output mode.
type LogSwitch interface {
	SetJSON(enable bool)
	SetQuiet(quiet bool)
}

// SetupOptions holds the global CLI options.
type SetupOptions struct {
	Workspaces []string
	ConfigPath string
	JSONLogs   bool
	Quiet      bool
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	workspaces ports.WorkspaceLocator,
	cache *assets.Cache,
	m *matcher.Matcher,
	resolver *locator.Resolver,
	renderer ports.Renderer,
	watcher ports.Watcher,
	notifier ports.Notifier,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		workspaces:   workspaces,
		cache:        cache,
		matcher:      m,
		resolver:     resolver,
		renderer:     renderer,
		watcher:      watcher,
		notifier:     notifier,
		logger:       log,
	}
}

// WithWorkspaceSetter lets Setup replace the workspace roots.
func (a *App) WithWorkspaceSetter(s WorkspaceSetter) *App {
	a.workspaceSetter = s
	return a
}

// WithLogSwitch lets Setup switch the log output mode.
func (a *App) WithLogSwitch(s LogSwitch) *App {
	a.logSwitch = s
	return a
}

// Setup applies the global options: log mode, workspace roots and settings.
func (a *App) Setup(opts SetupOptions) error {
	if a.logSwitch != nil {
		a.logSwitch.SetJSON(opts.JSONLogs)
		a.logSwitch.SetQuiet(opts.Quiet)
	}
	if a.workspaceSetter != nil {
		if err := a.workspaceSetter.SetRoots(opts.Workspaces); err != nil {
			return zerr.Wrap(err, "failed to set workspace roots")
		}
	}
	return a.LoadSettings(opts.ConfigPath)
}

// Load reloads every workspace once. Failures are reported, not returned,
// so one-shot commands still answer from whatever data did load.
func (a *App) Load(ctx context.Context) {
	if _, err := a.Reload(ctx, ""); err != nil {
		a.notifier.NotifyError(err)
	}
}

// LoadSettings reads the config file and applies it to the cache.
// An empty path selects the config file of the primary workspace.
func (a *App) LoadSettings(configPath string) error {
	if configPath == "" {
		primary := a.workspaces.Primary()
		if primary == "" {
			return domain.ErrNoWorkspaces
		}
		configPath = domain.DefaultConfigPath(primary)
	}
	abs, err := filepath.Abs(configPath)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to resolve config path"), "path", configPath)
	}
	a.configPath = abs
	return a.applySettings(abs)
}

func (a *App) applySettings(path string) error {
	settings, err := a.configLoader.Load(path)
	if err != nil {
		return zerr.Wrap(err, "failed to load settings")
	}
	a.cache.Configure(settings)
	return nil
}

// Settings returns the settings in effect.
func (a *App) Settings() domain.Settings {
	return a.cache.Settings()
}

// Hover matches the cursor position, resolves what it points at and renders the preview.
// It only reads memory and the local filesystem; a refresh, if due, runs in the background.
func (a *App) Hover(ctx context.Context, document, line string, character int) (domain.Hover, error) {
	if document == "" {
		return domain.Hover{}, zerr.With(domain.ErrInvalidRequest, "missing", "document")
	}

	root, err := a.workspaces.WorkspaceFor(document)
	if err != nil {
		root = ""
	}
	if a.refreshOnHover {
		a.checkInBackground(ctx, a.assetRoot(root))
	}

	hover := domain.Hover{Match: a.matcher.Match(line, character)}

	switch hover.Match.Kind {
	case domain.MatchAssetToken:
		id := hover.Match.Value
		url, ok := a.cache.Resolve(id, a.assetRoot(root))
		if !ok {
			hover.Preview = domain.Preview{Kind: domain.PreviewAssetUnresolved, AssetID: id}
			break
		}
		hover.Preview = a.preview(url, document, root)
		hover.Preview.AssetID = id
	case domain.MatchImageReference:
		hover.Preview = a.preview(hover.Match.Value, document, root)
	case domain.MatchNone:
		return hover, nil
	}

	s := a.cache.Settings()
	hover.Markdown = a.renderer.Render(hover.Preview, s.MaxWidth, s.MaxHeight)
	return hover, nil
}

// HoverFile hovers a position in a file on disk.
// lineNumber is 1-based; character is a 0-based rune offset into that line.
func (a *App) HoverFile(ctx context.Context, document string, lineNumber, character int) (domain.Hover, error) {
	abs, err := filepath.Abs(document)
	if err != nil {
		return domain.Hover{}, zerr.With(zerr.Wrap(err, "failed to resolve document path"), "document", document)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return domain.Hover{}, zerr.With(zerr.Wrap(err, "failed to read document"), "document", abs)
	}

	lines := strings.Split(string(data), "\n")
	if lineNumber < 1 || lineNumber > len(lines) {
		err := zerr.With(domain.ErrInvalidRequest, "line", lineNumber)
		return domain.Hover{}, zerr.With(err, "lines", len(lines))
	}
	line := strings.TrimSuffix(lines[lineNumber-1], "\r")

	return a.Hover(ctx, abs, line, character)
}

func (a *App) preview(raw, document, root string) domain.Preview {
	loc := a.resolver.Resolve(raw, document, root)
	if !loc.Found() {
		return domain.Preview{Kind: domain.PreviewImageNotFound, Raw: raw}
	}
	return domain.Preview{Kind: domain.PreviewImage, Raw: raw, Location: loc}
}

// assetRoot picks the workspace whose mapping answers asset lookups:
// the owning workspace, or the primary one for documents outside every workspace.
func (a *App) assetRoot(root string) string {
	if root != "" {
		return root
	}
	return a.workspaces.Primary()
}

func (a *App) checkInBackground(ctx context.Context, root string) {
	if root == "" {
		return
	}
	a.background.Go(func() {
		// Failures are logged and reported by the cache.
		_, _ = a.cache.CheckAndRefreshIfNeeded(context.WithoutCancel(ctx), root)
	})
}

// Resolve looks up one asset identifier in the workspace owning document.
func (a *App) Resolve(_ context.Context, assetID, document string) (string, bool, error) {
	root, err := a.rootFor(document)
	if err != nil {
		return "", false, err
	}
	url, ok := a.cache.Resolve(assetID, root)
	return url, ok, nil
}

// AssetIDs lists the loaded asset identifiers of the workspace owning document.
func (a *App) AssetIDs(document string) ([]string, error) {
	root, err := a.rootFor(document)
	if err != nil {
		return nil, err
	}
	return a.cache.AssetIDs(root), nil
}

// AddMapping sets one entry in the workspace owning document.
func (a *App) AddMapping(_ context.Context, assetID, url, document string) error {
	root, err := a.rootFor(document)
	if err != nil {
		return err
	}
	a.cache.AddMapping(assetID, url, root)
	return nil
}

// Reload reloads the workspace owning document, or every workspace when document is empty,
// and returns the resulting stats. Remote failures are returned with the stats of the local data.
func (a *App) Reload(ctx context.Context, document string) (domain.Stats, error) {
	root := ""
	if document != "" {
		var err error
		if root, err = a.workspaces.WorkspaceFor(document); err != nil {
			return domain.Stats{}, err
		}
	}

	err := a.cache.Reload(ctx, root)
	stats := a.cache.Stats(root)
	if err != nil {
		return stats, zerr.Wrap(err, "failed to reload asset mappings")
	}
	return stats, nil
}

// Stats reports the workspace owning document, or every workspace when document is empty.
func (a *App) Stats(_ context.Context, document string) (domain.Stats, error) {
	if document == "" {
		return a.cache.Stats(""), nil
	}
	root, err := a.workspaces.WorkspaceFor(document)
	if err != nil {
		return domain.Stats{}, err
	}
	return a.cache.Stats(root), nil
}

// rootFor returns the workspace owning document, or the primary workspace for an empty document.
func (a *App) rootFor(document string) (string, error) {
	if document == "" {
		if primary := a.workspaces.Primary(); primary != "" {
			return primary, nil
		}
		return "", domain.ErrNoWorkspaces
	}
	return a.workspaces.WorkspaceFor(document)
}
