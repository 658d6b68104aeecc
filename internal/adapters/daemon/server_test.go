package daemon_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/peek/internal/adapters/daemon"
	"go.trai.ch/peek/internal/core/domain"
	"go.trai.ch/peek/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type fakeService struct {
	mapping  map[string]string
	added    map[string]string
	reloads  int
	hoverErr error
}

func (f *fakeService) Hover(_ context.Context, document, line string, character int) (domain.Hover, error) {
	if f.hoverErr != nil {
		return domain.Hover{}, f.hoverErr
	}
	return domain.Hover{
		Match: domain.ImageReference("./a.png"),
		Preview: domain.Preview{
			Kind:     domain.PreviewImage,
			Raw:      "./a.png",
			Location: domain.LocalFile("file://" + document + "/a.png"),
		},
		Markdown: line[:character],
	}, nil
}

func (f *fakeService) Resolve(_ context.Context, assetID, _ string) (string, bool, error) {
	url, ok := f.mapping[assetID]
	return url, ok, nil
}

func (f *fakeService) AddMapping(_ context.Context, assetID, url, _ string) error {
	f.added[assetID] = url
	return nil
}

func (f *fakeService) Reload(_ context.Context, _ string) (domain.Stats, error) {
	f.reloads++
	return domain.Stats{Total: 2, Loaded: true, Workspaces: 1}, nil
}

func (f *fakeService) Stats(_ context.Context, document string) (domain.Stats, error) {
	if document == "/elsewhere/doc.md" {
		return domain.Stats{}, errors.New("document is outside every known workspace")
	}
	return domain.Stats{Total: 2, Loaded: true, Workspaces: 1, ActivitySignal: "v1"}, nil
}

func serve(t *testing.T, svc daemon.Service, lc *daemon.Lifecycle, input string) []map[string]any {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Error(gomock.Any()).AnyTimes()

	var out bytes.Buffer
	srv := daemon.NewServer(svc, lc, mockLogger)
	require.NoError(t, srv.Serve(t.Context(), strings.NewReader(input), &out))

	var responses []map[string]any
	scanner := bufio.NewScanner(&out)
	for scanner.Scan() {
		var resp map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &resp))
		responses = append(responses, resp)
	}
	return responses
}

func TestServer_Dispatch(t *testing.T) {
	svc := &fakeService{
		mapping: map[string]string{"__ASSET_1_2": "https://cdn.example.com/1/2.png"},
		added:   map[string]string{},
	}
	input := strings.Join([]string{
		`{"id":1,"op":"resolve","params":{"assetId":"__ASSET_1_2"}}`,
		`{"id":2,"op":"resolve","params":{"assetId":"__ASSET_9_9"}}`,
		``,
		`{"id":"a","op":"addMapping","params":{"assetId":"__ASSET_3_4","url":"./x.png"}}`,
		`{"id":3,"op":"reload"}`,
		`{"id":4,"op":"stats","params":{"document":"/ws/doc.md"}}`,
		`{"id":5,"op":"hover","params":{"document":"/ws","line":"see ./a.png","character":4}}`,
	}, "\n")

	responses := serve(t, svc, daemon.NewLifecycle(0), input)
	require.Len(t, responses, 6)

	assert.Equal(t, map[string]any{
		"id":     float64(1),
		"result": map[string]any{"assetId": "__ASSET_1_2", "url": "https://cdn.example.com/1/2.png", "found": true},
	}, responses[0])
	assert.Equal(t, map[string]any{"assetId": "__ASSET_9_9", "found": false}, responses[1]["result"])

	assert.Equal(t, "a", responses[2]["id"])
	assert.Equal(t, map[string]any{"ok": true}, responses[2]["result"])
	assert.Equal(t, map[string]string{"__ASSET_3_4": "./x.png"}, svc.added)

	assert.Equal(t, 1, svc.reloads)
	assert.Equal(t, map[string]any{"total": float64(2), "loaded": true, "workspaces": float64(1)}, responses[3]["result"])
	assert.Equal(t, "v1", responses[4]["result"].(map[string]any)["activitySignal"])

	assert.Equal(t, map[string]any{
		"match":    "image",
		"value":    "./a.png",
		"preview":  "image",
		"location": "file:///ws/a.png",
		"markdown": "see ",
	}, responses[5]["result"])
}

func TestServer_Errors(t *testing.T) {
	svc := &fakeService{hoverErr: errors.New("document is outside every known workspace")}
	input := strings.Join([]string{
		`not json`,
		`{"id":1,"op":"teleport"}`,
		`{"id":2,"op":"resolve","params":{}}`,
		`{"id":3,"op":"addMapping","params":{"assetId":"__ASSET_1_1"}}`,
		`{"id":4,"op":"hover","params":{"document":"/elsewhere/doc.md"}}`,
		`{"id":5,"op":"stats","params":{"document":"/elsewhere/doc.md"}}`,
	}, "\n")

	responses := serve(t, svc, daemon.NewLifecycle(0), input)
	require.Len(t, responses, 6)

	assert.Nil(t, responses[0]["id"])
	assert.Contains(t, responses[0]["error"], "invalid request")
	for _, resp := range responses[1:4] {
		assert.Contains(t, resp["error"], "invalid request")
		assert.Nil(t, resp["result"])
	}
	assert.Contains(t, responses[4]["error"], "outside every known workspace")
	assert.Contains(t, responses[5]["error"], "outside every known workspace")
}

func TestServer_ShutdownOp(t *testing.T) {
	svc := &fakeService{}
	input := `{"id":1,"op":"ping"}` + "\n" +
		`{"id":2,"op":"shutdown"}` + "\n" +
		`{"id":3,"op":"ping"}` + "\n"

	responses := serve(t, svc, daemon.NewLifecycle(time.Hour), input)
	require.Len(t, responses, 2, "requests after shutdown are not answered")

	ping := responses[0]["result"].(map[string]any)
	assert.Contains(t, ping, "uptimeMs")
	assert.Contains(t, ping, "idleRemainingMs")
	assert.Equal(t, map[string]any{"ok": true}, responses[1]["result"])
}

func TestServer_ContextCancelled(t *testing.T) {
	ctrl := gomock.NewController(t)
	srv := daemon.NewServer(&fakeService{}, daemon.NewLifecycle(0), mocks.NewMockLogger(ctrl))

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	var out bytes.Buffer
	pr, pw := io.Pipe()
	defer pw.Close()
	require.NoError(t, srv.Serve(ctx, pr, &out))
	assert.Empty(t, out.String())
}
