// Package local implements the MappingLoader port for mapping files bundled in a workspace.
package local

import (
	"fmt"

	"go.trai.ch/peek/internal/adapters/fs"
	"go.trai.ch/peek/internal/core/domain"
	"go.trai.ch/peek/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.MappingLoader = (*Loader)(nil)

// Loader merges the JSON mapping files of a workspace.
type Loader struct {
	fs     fs.FileSystem
	logger ports.Logger
}

// NewLoader creates a Loader reading from the OS filesystem.
func NewLoader(logger ports.Logger) *Loader {
	return NewLoaderWithFS(fs.NewOSFS(), logger)
}

// NewLoaderWithFS creates a Loader on top of the given filesystem.
func NewLoaderWithFS(fsys fs.FileSystem, logger ports.Logger) *Loader {
	return &Loader{fs: fsys, logger: logger}
}

// Load reads every candidate of root in order and merges them, later candidates winning.
// A candidate that is missing is skipped silently; one that is unreadable or malformed
// is logged and skipped.
func (l *Loader) Load(root, override string) domain.AssetMapping {
	merged := make(domain.AssetMapping)
	if root == "" {
		return merged
	}

	for _, path := range domain.MappingCandidates(root, override) {
		mapping, err := l.loadFile(path)
		if err != nil {
			l.logger.Warn(fmt.Sprintf("skipping %s: %v", path, err))
			continue
		}
		if mapping == nil {
			continue
		}
		merged = merged.Overlay(mapping)
	}

	return merged
}

// loadFile returns nil, nil for a missing candidate.
func (l *Loader) loadFile(path string) (domain.AssetMapping, error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		if fs.IsNotExist(err) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrLocalFileUnreadable.Error()), "path", path)
	}

	mapping, skipped, err := domain.DecodeMapping(data)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrLocalFileMalformed.Error()), "path", path)
	}
	if skipped > 0 {
		l.logger.Warn(fmt.Sprintf("ignored %d non-string entries in %s", skipped, path))
	}

	return mapping, nil
}
