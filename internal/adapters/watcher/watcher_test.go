package watcher_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/peek/internal/adapters/watcher"
	"go.trai.ch/peek/internal/core/ports"
	"go.trai.ch/peek/internal/core/ports/mocks"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
)

func TestWatcher_ReportsFileChanges(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	root := t.TempDir()
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn(gomock.Any()).AnyTimes()

	w, err := watcher.NewWatcher(mockLogger)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	require.NoError(t, w.Start(ctx, []string{root, filepath.Join(root, "missing")}))

	target := filepath.Join(root, ".activityId")
	require.NoError(t, os.WriteFile(target, []byte("v2"), 0o600))

	events := make(chan ports.WatchEvent, 10)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for event := range w.Events() {
			events <- event
		}
	}()

	select {
	case event := <-events:
		assert.Equal(t, target, event.Path)
		assert.Contains(t, []ports.WatchOp{ports.OpCreate, ports.OpWrite}, event.Operation)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for watch event")
	}

	require.NoError(t, w.Stop())
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("event iterator did not finish after Stop")
	}
}

func TestWatcher_SkipsMissingDirectories(t *testing.T) {
	ctrl := gomock.NewController(t)
	w, err := watcher.NewWatcher(mocks.NewMockLogger(ctrl))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	require.NoError(t, w.Start(ctx, []string{filepath.Join(t.TempDir(), "nope")}))
	require.NoError(t, w.Stop())
}

func TestWatcher_WatchAddsDirectoriesCreatedLater(t *testing.T) {
	root := t.TempDir()
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn(gomock.Any()).AnyTimes()

	w, err := watcher.NewWatcher(mockLogger)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	editorDir := filepath.Join(root, ".vscode")
	require.NoError(t, w.Start(ctx, []string{root, editorDir}))
	defer func() { _ = w.Stop() }()

	require.NoError(t, os.Mkdir(editorDir, 0o750))
	require.NoError(t, w.Watch([]string{root, editorDir}))

	target := filepath.Join(editorDir, "image-assets.json")
	require.NoError(t, os.WriteFile(target, []byte(`{"a":"1"}`), 0o600))

	events := make(chan ports.WatchEvent, 10)
	go func() {
		for event := range w.Events() {
			events <- event
		}
	}()

	timeout := time.After(5 * time.Second)
	for {
		select {
		case event := <-events:
			if event.Path == target {
				return
			}
		case <-timeout:
			t.Fatal("timed out waiting for an event from the added directory")
		}
	}
}
