// Package activity implements the ActivityReader port on top of a plain text file.
package activity

import (
	"path/filepath"
	"strings"

	"go.trai.ch/peek/internal/adapters/fs"
	"go.trai.ch/peek/internal/core/domain"
	"go.trai.ch/peek/internal/core/ports"
)

var _ ports.ActivityReader = (*Reader)(nil)

// Reader reads the activity signal file of a workspace.
// It keeps no state: every call goes back to disk so that changes are visible to the caller.
type Reader struct {
	fs fs.FileSystem
}

// NewReader creates a Reader on the OS filesystem.
func NewReader() *Reader {
	return NewReaderWithFS(fs.NewOSFS())
}

// NewReaderWithFS creates a Reader on top of the given filesystem.
func NewReaderWithFS(fsys fs.FileSystem) *Reader {
	return &Reader{fs: fsys}
}

// Read returns the trimmed content of fileName under root.
// Missing, unreadable and blank files all read as "".
func (r *Reader) Read(root, fileName string) string {
	if root == "" {
		return ""
	}
	if fileName == "" {
		fileName = domain.DefaultActivityIDFile
	}

	path := fileName
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, fileName)
	}

	data, err := r.fs.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
