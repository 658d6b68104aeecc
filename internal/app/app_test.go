package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/peek/internal/adapters/fs"
	"go.trai.ch/peek/internal/adapters/preview"
	"go.trai.ch/peek/internal/adapters/workspace"
	"go.trai.ch/peek/internal/app"
	"go.trai.ch/peek/internal/core/domain"
	"go.trai.ch/peek/internal/core/ports"
	"go.trai.ch/peek/internal/core/ports/mocks"
	"go.trai.ch/peek/internal/engine/assets"
	"go.trai.ch/peek/internal/engine/locator"
	"go.trai.ch/peek/internal/engine/matcher"
	"go.uber.org/mock/gomock"
)

const (
	root   = "/ws"
	doc    = "/ws/docs/README.md"
	apiURL = "https://api.example.com/assets"
)

type fixture struct {
	config   *mocks.MockConfigLoader
	local    *mocks.MockMappingLoader
	remote   *mocks.MockMappingFetcher
	activity *mocks.MockActivityReader
	watcher  *mocks.MockWatcher
	notifier *mocks.MockNotifier
	logger   *mocks.MockLogger
	cache    *assets.Cache
	app      *app.App
}

func newFixture(t *testing.T, fsys fs.FileSystem, roots ...string) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	workspaces, err := workspace.NewLocator(roots...)
	require.NoError(t, err)

	f := &fixture{
		config:   mocks.NewMockConfigLoader(ctrl),
		local:    mocks.NewMockMappingLoader(ctrl),
		remote:   mocks.NewMockMappingFetcher(ctrl),
		activity: mocks.NewMockActivityReader(ctrl),
		watcher:  mocks.NewMockWatcher(ctrl),
		notifier: mocks.NewMockNotifier(ctrl),
		logger:   mocks.NewMockLogger(ctrl),
	}
	f.cache = assets.NewCache(f.local, f.remote, f.activity, workspaces, f.notifier, f.logger)
	f.cache.Configure(domain.DefaultSettings())
	f.app = app.New(
		f.config,
		workspaces,
		f.cache,
		matcher.New(),
		locator.NewResolver(fsys),
		preview.NewRenderer(),
		f.watcher,
		f.notifier,
		f.logger,
	)
	return f
}

func newMapFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixture(t, fs.NewMapFSAdapter(root, fstest.MapFS{
		"docs/img/a.png":  {Data: []byte("png")},
		"assets/logo.svg": {Data: []byte("svg")},
	}), root)
}

// loadLocal fills the cache for r from a local-only reload.
func (f *fixture) loadLocal(t *testing.T, r string, mapping domain.AssetMapping) {
	t.Helper()
	f.local.EXPECT().Load(r, "").Return(mapping)
	f.activity.EXPECT().Read(r, domain.DefaultActivityIDFile).Return("")
	require.NoError(t, f.cache.Reload(t.Context(), r))
}

func TestApp_Hover(t *testing.T) {
	f := newMapFixture(t)
	f.loadLocal(t, root, domain.AssetMapping{
		"__ASSET_1_2": "https://cdn.example.com/x.png",
		"__ASSET_3_4": "assets/logo.svg",
		"__ASSET_5_6": "assets/missing.png",
	})

	tests := []struct {
		name     string
		line     string
		char     int
		kind     domain.PreviewKind
		location string
		markdown string
	}{
		{
			name:     "asset resolved to url",
			line:     `const img = "__ASSET_1_2";`,
			char:     15,
			kind:     domain.PreviewImage,
			location: "https://cdn.example.com/x.png",
			markdown: "![Image Preview](https://cdn.example.com/x.png|width=400,height=400)\n\n" +
				"Path: `https://cdn.example.com/x.png`\n\nAsset: `__ASSET_1_2`",
		},
		{
			name:     "asset resolved to workspace file",
			line:     "icon __ASSET_3_4",
			char:     7,
			kind:     domain.PreviewImage,
			location: "file:///ws/assets/logo.svg",
		},
		{
			name: "asset resolved to missing file",
			line: "icon __ASSET_5_6",
			char: 7,
			kind: domain.PreviewImageNotFound,
			markdown: "Image not found: assets/missing.png\n\n" +
				"Asset: `__ASSET_5_6`",
		},
		{
			name:     "asset not in mapping",
			line:     "icon __ASSET_9_9",
			char:     7,
			kind:     domain.PreviewAssetUnresolved,
			markdown: "Asset not found: __ASSET_9_9\n\n" + preview.ReloadHint,
		},
		{
			name:     "image relative to document",
			line:     `See "./img/a.png" for details`,
			char:     8,
			kind:     domain.PreviewImage,
			location: "file:///ws/docs/img/a.png",
			markdown: "![Image Preview](file:///ws/docs/img/a.png|width=400,height=400)\n\n" +
				"Path: `./img/a.png`",
		},
		{
			name:     "missing image",
			line:     "background: ../shared/bg.svg;",
			char:     15,
			kind:     domain.PreviewImageNotFound,
			markdown: "Image not found: ../shared/bg.svg",
		},
		{
			name: "nothing under cursor",
			line: `title = "hello world"`,
			char: 10,
			kind: domain.PreviewNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hover, err := f.app.Hover(t.Context(), doc, tt.line, tt.char)
			require.NoError(t, err)

			assert.Equal(t, tt.kind, hover.Preview.Kind)
			if tt.location != "" {
				assert.Equal(t, tt.location, hover.Preview.Location.Value)
			}
			if tt.markdown != "" || tt.kind == domain.PreviewNone {
				assert.Equal(t, tt.markdown, hover.Markdown)
			}
		})
	}
}

func TestApp_HoverRequiresDocument(t *testing.T) {
	f := newMapFixture(t)

	_, err := f.app.Hover(t.Context(), "", "__ASSET_1_2", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrInvalidRequest.Error())
}

func TestApp_HoverOutsideWorkspaceUsesPrimaryMapping(t *testing.T) {
	f := newMapFixture(t)
	f.loadLocal(t, root, domain.AssetMapping{"__ASSET_1_2": "https://cdn.example.com/x.png"})

	hover, err := f.app.Hover(t.Context(), "/elsewhere/notes.md", "__ASSET_1_2", 3)
	require.NoError(t, err)

	assert.Equal(t, domain.PreviewImage, hover.Preview.Kind)
	assert.Equal(t, "__ASSET_1_2", hover.Preview.AssetID)
}

func TestApp_HoverUsesOwningWorkspace(t *testing.T) {
	f := newFixture(t, fs.NewMapFSAdapter("/", fstest.MapFS{}), "/a", "/b")
	f.loadLocal(t, "/a", domain.AssetMapping{"__ASSET_1_1": "https://a.example.com/x.png"})
	f.loadLocal(t, "/b", domain.AssetMapping{"__ASSET_1_1": "https://b.example.com/x.png"})

	hover, err := f.app.Hover(t.Context(), "/b/page.md", "__ASSET_1_1", 0)
	require.NoError(t, err)
	assert.Equal(t, "https://b.example.com/x.png", hover.Preview.Raw)
}

func TestApp_HoverFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "img"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "img", "a.png"), []byte("png"), 0o600))
	document := filepath.Join(dir, "page.md")
	require.NoError(t, os.WriteFile(document, []byte("# Title\r\n![a](img/a.png)\r\n"), 0o600))

	f := newFixture(t, fs.NewOSFS(), dir)

	t.Run("reads the requested line", func(t *testing.T) {
		hover, err := f.app.HoverFile(t.Context(), document, 2, 6)
		require.NoError(t, err)
		assert.Equal(t, domain.ImageReference("img/a.png"), hover.Match)
		assert.Equal(t, domain.PreviewImage, hover.Preview.Kind)
		assert.True(t, strings.HasSuffix(hover.Preview.Location.Value, "/img/a.png"))
	})

	t.Run("line out of range", func(t *testing.T) {
		_, err := f.app.HoverFile(t.Context(), document, 10, 0)
		require.Error(t, err)
		assert.Contains(t, err.Error(), domain.ErrInvalidRequest.Error())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := f.app.HoverFile(t.Context(), filepath.Join(dir, "nope.md"), 1, 0)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read document")
	})
}

func TestApp_LoadSettings(t *testing.T) {
	f := newMapFixture(t)

	s := domain.DefaultSettings()
	s.MaxWidth = 120
	f.config.EXPECT().Load(domain.DefaultConfigPath(root)).Return(s, nil)

	require.NoError(t, f.app.LoadSettings(""))
	assert.Equal(t, 120, f.app.Settings().MaxWidth)
}

func TestApp_LoadSettingsError(t *testing.T) {
	f := newMapFixture(t)
	f.config.EXPECT().Load("/etc/peek.yaml").Return(domain.Settings{}, domain.ErrConfigParseFailed)

	err := f.app.LoadSettings("/etc/peek.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrConfigParseFailed.Error())
}

type recordingSetup struct {
	roots []string
	json  bool
	quiet bool
}

func (r *recordingSetup) SetRoots(roots []string) error {
	r.roots = roots
	return nil
}

func (r *recordingSetup) SetJSON(enable bool) { r.json = enable }

func (r *recordingSetup) SetQuiet(quiet bool) { r.quiet = quiet }

func TestApp_Setup(t *testing.T) {
	f := newMapFixture(t)
	rec := &recordingSetup{}
	f.app.WithWorkspaceSetter(rec).WithLogSwitch(rec)

	f.config.EXPECT().Load("/cfg/peek.yaml").Return(domain.DefaultSettings(), nil)

	err := f.app.Setup(app.SetupOptions{
		Workspaces: []string{"/a", "/b"},
		ConfigPath: "/cfg/peek.yaml",
		JSONLogs:   true,
		Quiet:      true,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"/a", "/b"}, rec.roots)
	assert.True(t, rec.json)
	assert.True(t, rec.quiet)
}

func TestApp_ResolveAndAddMapping(t *testing.T) {
	f := newMapFixture(t)
	f.loadLocal(t, root, domain.AssetMapping{"__ASSET_1_2": "https://cdn.example.com/x.png"})

	url, ok, err := f.app.Resolve(t.Context(), "__ASSET_1_2", "")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "https://cdn.example.com/x.png", url)

	require.NoError(t, f.app.AddMapping(t.Context(), "__ASSET_7_7", "https://cdn.example.com/y.png", doc))

	url, ok, err = f.app.Resolve(t.Context(), "__ASSET_7_7", doc)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "https://cdn.example.com/y.png", url)

	ids, err := f.app.AssetIDs("")
	require.NoError(t, err)
	assert.Equal(t, []string{"__ASSET_1_2", "__ASSET_7_7"}, ids)

	_, _, err = f.app.Resolve(t.Context(), "__ASSET_1_2", "/elsewhere/x.md")
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrWorkspaceNotFound.Error())
}

func TestApp_ReloadReportsRemoteFailure(t *testing.T) {
	f := newMapFixture(t)
	s := domain.DefaultSettings()
	s.AssetAPIURL = apiURL
	f.cache.Configure(s)

	f.local.EXPECT().Load(root, "").Return(domain.AssetMapping{"a": "1", "b": "2"})
	f.activity.EXPECT().Read(root, domain.DefaultActivityIDFile).Return("")
	f.remote.EXPECT().Fetch(gomock.Any(), apiURL, domain.DefaultAPITimeout, "").
		Return(nil, &domain.FetchError{Kind: domain.ErrRemoteHTTPStatus, StatusCode: 503})

	stats, err := f.app.Reload(t.Context(), "")
	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrRemoteHTTPStatus)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Workspaces)
}

func TestApp_Stats(t *testing.T) {
	f := newMapFixture(t)
	f.loadLocal(t, root, domain.AssetMapping{"a": "1"})

	stats, err := f.app.Stats(t.Context(), doc)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Total)
	assert.True(t, stats.Loaded)

	_, err = f.app.Stats(t.Context(), "/elsewhere/x.md")
	require.Error(t, err)
}

func TestApp_HandleChanges(t *testing.T) {
	t.Run("mapping file reloads its workspace", func(t *testing.T) {
		f := newFixture(t, fs.NewMapFSAdapter("/", fstest.MapFS{}), "/a", "/b")
		f.local.EXPECT().Load("/b", "").Return(domain.AssetMapping{"x": "1"})
		f.activity.EXPECT().Read("/b", domain.DefaultActivityIDFile).Return("")
		f.logger.EXPECT().Info("reloaded 1 asset mappings")

		f.app.HandleChanges(t.Context(), []string{
			"/b/.vscode/image-assets.json",
			"/b/.image-assets.json",
			"/a/unrelated.txt",
		})
	})

	t.Run("activity file reloads its workspace", func(t *testing.T) {
		f := newMapFixture(t)
		f.local.EXPECT().Load(root, "").Return(nil)
		f.activity.EXPECT().Read(root, domain.DefaultActivityIDFile).Return("v2")
		f.logger.EXPECT().Info("reloaded 0 asset mappings")

		f.app.HandleChanges(t.Context(), []string{"/ws/.activityId"})
	})

	t.Run("config change reloads settings and every workspace", func(t *testing.T) {
		f := newMapFixture(t)
		configPath := domain.DefaultConfigPath(root)

		s := domain.DefaultSettings()
		s.AssetMappingPath = "custom.json"
		f.config.EXPECT().Load(configPath).Return(domain.DefaultSettings(), nil)
		require.NoError(t, f.app.LoadSettings(""))

		f.config.EXPECT().Load(configPath).Return(s, nil)
		f.watcher.EXPECT().Watch([]string{"/ws", "/ws/.vscode"}).Return(nil)
		f.local.EXPECT().Load(root, "custom.json").Return(domain.AssetMapping{"a": "1", "b": "2"})
		f.activity.EXPECT().Read(root, domain.DefaultActivityIDFile).Return("")
		f.logger.EXPECT().Info("reloaded 2 asset mappings")

		f.app.HandleChanges(t.Context(), []string{configPath})
		assert.Equal(t, "custom.json", f.app.Settings().AssetMappingPath)
	})

	t.Run("config change watches the new override directory", func(t *testing.T) {
		f := newMapFixture(t)
		configPath := domain.DefaultConfigPath(root)
		f.config.EXPECT().Load(configPath).Return(domain.DefaultSettings(), nil)
		require.NoError(t, f.app.LoadSettings(""))

		s := domain.DefaultSettings()
		s.AssetMappingPath = "maps/custom.json"
		f.config.EXPECT().Load(configPath).Return(s, nil)
		f.watcher.EXPECT().Watch([]string{"/ws/maps", "/ws", "/ws/.vscode"}).Return(domain.ErrWatcherStartFailed)
		f.logger.EXPECT().Warn(gomock.Any())
		f.local.EXPECT().Load(root, "maps/custom.json").Return(nil)
		f.activity.EXPECT().Read(root, domain.DefaultActivityIDFile).Return("")
		f.logger.EXPECT().Info("reloaded 0 asset mappings")

		f.app.HandleChanges(t.Context(), []string{configPath})
	})

	t.Run("created editor directory is watched and reloads its workspace", func(t *testing.T) {
		f := newMapFixture(t)
		f.watcher.EXPECT().Watch([]string{"/ws", "/ws/.vscode"}).Return(nil)
		f.local.EXPECT().Load(root, "").Return(domain.AssetMapping{"a": "1"})
		f.activity.EXPECT().Read(root, domain.DefaultActivityIDFile).Return("")
		f.logger.EXPECT().Info("reloaded 1 asset mappings")

		f.app.HandleChanges(t.Context(), []string{"/ws/.vscode"})
	})

	t.Run("broken config is reported", func(t *testing.T) {
		f := newMapFixture(t)
		configPath := domain.DefaultConfigPath(root)
		f.config.EXPECT().Load(configPath).Return(domain.DefaultSettings(), nil)
		require.NoError(t, f.app.LoadSettings(""))

		f.config.EXPECT().Load(configPath).Return(domain.Settings{}, domain.ErrConfigParseFailed)
		f.notifier.EXPECT().NotifyError(gomock.Any())

		f.app.HandleChanges(t.Context(), []string{configPath})
	})
}

func TestApp_WatchDirs(t *testing.T) {
	f := newMapFixture(t)
	f.config.EXPECT().Load("/cfg/peek.yaml").Return(domain.DefaultSettings(), nil)
	require.NoError(t, f.app.LoadSettings("/cfg/peek.yaml"))

	assert.Equal(t, []string{"/ws", "/ws/.vscode", "/cfg"}, f.app.WatchDirs())
}

func emptyEvents() iter.Seq[ports.WatchEvent] {
	return func(func(ports.WatchEvent) bool) {}
}

func TestApp_Serve(t *testing.T) {
	f := newMapFixture(t)
	f.local.EXPECT().Load(root, "").Return(domain.AssetMapping{"__ASSET_1_2": "https://cdn.example.com/x.png"})
	f.activity.EXPECT().Read(root, domain.DefaultActivityIDFile).Return("").AnyTimes()
	f.watcher.EXPECT().Start(gomock.Any(), []string{"/ws", "/ws/.vscode"}).Return(nil)
	f.watcher.EXPECT().Events().Return(emptyEvents())
	f.watcher.EXPECT().Stop().Return(nil)

	in := strings.NewReader(strings.Join([]string{
		`{"id":1,"op":"hover","params":{"document":"/ws/a.md","line":"x __ASSET_1_2","character":4}}`,
		`{"id":2,"op":"resolve","params":{"assetId":"__ASSET_1_2"}}`,
		`{"id":3,"op":"stats"}`,
	}, "\n") + "\n")
	var out bytes.Buffer

	err := f.app.Serve(t.Context(), app.ServeOptions{In: in, Out: &out})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)

	var hover struct {
		ID     int `json:"id"`
		Result struct {
			Match    string `json:"match"`
			Preview  string `json:"preview"`
			Location string `json:"location"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &hover))
	assert.Equal(t, 1, hover.ID)
	assert.Equal(t, "asset", hover.Result.Match)
	assert.Equal(t, "image", hover.Result.Preview)
	assert.Equal(t, "https://cdn.example.com/x.png", hover.Result.Location)

	assert.JSONEq(t,
		`{"id":2,"result":{"assetId":"__ASSET_1_2","url":"https://cdn.example.com/x.png","found":true}}`,
		lines[1])
	assert.Contains(t, lines[2], `"total":1`)
}

func TestApp_ServeWatcherFailure(t *testing.T) {
	f := newMapFixture(t)
	f.local.EXPECT().Load(root, "").Return(nil)
	f.activity.EXPECT().Read(root, domain.DefaultActivityIDFile).Return("")
	f.watcher.EXPECT().Start(gomock.Any(), gomock.Any()).Return(domain.ErrWatcherStartFailed)

	err := f.app.Serve(t.Context(), app.ServeOptions{In: strings.NewReader(""), Out: &bytes.Buffer{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to watch workspaces")
}

func TestApp_ServeStopsWithContext(t *testing.T) {
	f := newMapFixture(t)
	f.local.EXPECT().Load(root, "").Return(nil)
	f.activity.EXPECT().Read(root, domain.DefaultActivityIDFile).Return("")
	f.watcher.EXPECT().Start(gomock.Any(), gomock.Any()).Return(nil)
	f.watcher.EXPECT().Events().Return(emptyEvents())
	f.watcher.EXPECT().Stop().Return(nil)

	pr, pw := io.Pipe()
	defer func() { _ = pw.Close() }()

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() {
		done <- f.app.Serve(ctx, app.ServeOptions{In: pr, Out: &bytes.Buffer{}})
	}()

	cancel()
	require.NoError(t, <-done)
}
