// Package workspace tracks the workspace roots and maps documents to them.
package workspace

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/peek/internal/core/domain"
	"go.trai.ch/peek/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.WorkspaceLocator = (*Locator)(nil)

// Locator holds an ordered list of absolute workspace roots.
type Locator struct {
	mu    sync.RWMutex
	roots []string
}

// NewLocator creates a Locator for the given roots.
// With no roots, the current working directory is used.
func NewLocator(roots ...string) (*Locator, error) {
	l := &Locator{}
	if err := l.SetRoots(roots); err != nil {
		return nil, err
	}
	return l, nil
}

// SetRoots replaces the workspace roots. Relative roots are made absolute and duplicates dropped.
func (l *Locator) SetRoots(roots []string) error {
	if len(roots) == 0 {
		cwd, err := os.Getwd()
		if err != nil {
			return zerr.Wrap(err, domain.ErrNoWorkspaces.Error())
		}
		roots = []string{cwd}
	}

	cleaned := make([]string, 0, len(roots))
	for _, root := range roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to resolve workspace root"), "root", root)
		}
		if !slices.Contains(cleaned, abs) {
			cleaned = append(cleaned, abs)
		}
	}

	l.mu.Lock()
	l.roots = cleaned
	l.mu.Unlock()
	return nil
}

// Roots returns a copy of the roots; the first one is the primary workspace.
func (l *Locator) Roots() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.roots)
}

// Primary returns the first root, or "" if none is known.
func (l *Locator) Primary() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if len(l.roots) == 0 {
		return ""
	}
	return l.roots[0]
}

// WorkspaceFor returns the deepest root that contains the document.
func (l *Locator) WorkspaceFor(document string) (string, error) {
	abs, err := filepath.Abs(document)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrWorkspaceNotFound.Error()), "document", document)
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	best := ""
	for _, root := range l.roots {
		if contains(root, abs) && len(root) > len(best) {
			best = root
		}
	}
	if best == "" {
		return "", zerr.With(domain.ErrWorkspaceNotFound, "document", abs)
	}
	return best, nil
}

func contains(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
