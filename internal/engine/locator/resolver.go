// Package locator turns raw image references into displayable locations.
package locator

import (
	"net/url"
	"path/filepath"
	"strings"

	"go.trai.ch/peek/internal/adapters/fs"
	"go.trai.ch/peek/internal/core/domain"
)

// Resolver resolves references against the document directory and the workspace root.
type Resolver struct {
	fs fs.FileSystem
}

// NewResolver creates a Resolver reading through the given filesystem.
func NewResolver(fsys fs.FileSystem) *Resolver {
	return &Resolver{fs: fsys}
}

// Resolve returns the location of raw as seen from document, falling back to root.
// Either document or root may be empty.
func (r *Resolver) Resolve(raw, document, root string) domain.Location {
	switch {
	case strings.HasPrefix(raw, "http://"), strings.HasPrefix(raw, "https://"):
		return domain.AbsoluteURL(raw)
	case strings.HasPrefix(raw, "//"):
		return domain.AbsoluteURL("https:" + raw)
	}

	if document != "" {
		candidate := raw
		if !filepath.IsAbs(candidate) {
			candidate = filepath.Join(filepath.Dir(document), raw)
		}
		if fs.Exists(r.fs, candidate) {
			return domain.LocalFile(FileURI(candidate))
		}
	}

	if root != "" {
		// Absolute references are joined too, so "/img/a.png" means root-relative here.
		candidate := filepath.Join(root, raw)
		if fs.Exists(r.fs, candidate) {
			return domain.LocalFile(FileURI(candidate))
		}
	}

	return domain.NotFound(raw)
}

// FileURI converts an absolute OS path into a file:// URI.
func FileURI(path string) string {
	p := filepath.ToSlash(filepath.Clean(path))
	if !strings.HasPrefix(p, "/") {
		// Windows volume paths such as C:/img.png.
		p = "/" + p
	}
	return (&url.URL{Scheme: "file", Path: p}).String()
}
