// Package preview renders hover previews as Markdown.
package preview

import (
	"fmt"
	"strings"

	"go.trai.ch/peek/internal/core/domain"
	"go.trai.ch/peek/internal/core/ports"
)

var _ ports.Renderer = (*Renderer)(nil)

// ReloadHint is appended to unresolved asset previews.
const ReloadHint = "Run `peek reload` to refresh the asset mappings."

// Renderer produces the Markdown body of a hover.
type Renderer struct{}

// NewRenderer creates a Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render returns the Markdown for p, or "" when there is nothing to show.
func (r *Renderer) Render(p domain.Preview, maxWidth, maxHeight int) string {
	var b strings.Builder

	switch p.Kind {
	case domain.PreviewImage:
		fmt.Fprintf(&b, "![Image Preview](%s|width=%d,height=%d)\n\n", p.Location.Value, maxWidth, maxHeight)
		fmt.Fprintf(&b, "Path: `%s`", p.Raw)
	case domain.PreviewImageNotFound:
		fmt.Fprintf(&b, "Image not found: %s", p.Raw)
	case domain.PreviewAssetUnresolved:
		fmt.Fprintf(&b, "Asset not found: %s\n\n%s", p.AssetID, ReloadHint)
		return b.String()
	default:
		return ""
	}

	if p.AssetID != "" {
		fmt.Fprintf(&b, "\n\nAsset: `%s`", p.AssetID)
	}
	return b.String()
}
