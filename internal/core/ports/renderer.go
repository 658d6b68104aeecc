package ports

import "go.trai.ch/peek/internal/core/domain"

// Renderer turns a preview into the text shown to the user.
//
//go:generate go run go.uber.org/mock/mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// Render returns the Markdown body for the preview; empty for domain.PreviewNone.
	Render(p domain.Preview, maxWidth, maxHeight int) string
}
