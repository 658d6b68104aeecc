package daemon

import (
	"encoding/json"
	"time"

	"go.trai.ch/peek/internal/core/domain"
)

// Op names accepted by the daemon.
const (
	OpHover      = "hover"
	OpResolve    = "resolve"
	OpAddMapping = "addMapping"
	OpReload     = "reload"
	OpStats      = "stats"
	OpPing       = "ping"
	OpShutdown   = "shutdown"
)

// Request is one line of input.
type Request struct {
	ID     json.RawMessage `json:"id,omitempty"`
	Op     string          `json:"op"`
	Params Params          `json:"params"`
}

// Params carries the arguments of every op; each op reads the fields it needs.
type Params struct {
	Document string `json:"document,omitempty"`
	// Line is the text of the hovered line.
	Line      string `json:"line,omitempty"`
	Character int    `json:"character,omitempty"`
	AssetID   string `json:"assetId,omitempty"`
	URL       string `json:"url,omitempty"`
}

// Response is one line of output, echoing the request ID.
type Response struct {
	ID     json.RawMessage `json:"id,omitempty"`
	Result any             `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// HoverResult is the result of OpHover.
type HoverResult struct {
	Match    string `json:"match"`
	Value    string `json:"value,omitempty"`
	Preview  string `json:"preview"`
	Location string `json:"location,omitempty"`
	Markdown string `json:"markdown,omitempty"`
}

// ResolveResult is the result of OpResolve.
type ResolveResult struct {
	AssetID string `json:"assetId"`
	URL     string `json:"url,omitempty"`
	Found   bool   `json:"found"`
}

// PingResult is the result of OpPing.
type PingResult struct {
	Uptime        int64 `json:"uptimeMs"`
	IdleRemaining int64 `json:"idleRemainingMs"`
}

// OKResult is the result of ops with nothing else to report.
type OKResult struct {
	OK bool `json:"ok"`
}

func newHoverResult(h domain.Hover) HoverResult {
	return HoverResult{
		Match:    h.Match.Kind.String(),
		Value:    h.Match.Value,
		Preview:  h.Preview.Kind.String(),
		Location: h.Preview.Location.Value,
		Markdown: h.Markdown,
	}
}

func millis(d time.Duration) int64 {
	return d.Milliseconds()
}
