package workspace_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/peek/internal/adapters/workspace"
)

func TestLocator_DefaultsToWorkingDirectory(t *testing.T) {
	cwd, err := os.Getwd()
	require.NoError(t, err)

	l, err := workspace.NewLocator()
	require.NoError(t, err)

	assert.Equal(t, []string{cwd}, l.Roots())
	assert.Equal(t, cwd, l.Primary())
}

func TestLocator_SetRoots(t *testing.T) {
	a := t.TempDir()
	b := t.TempDir()

	l, err := workspace.NewLocator(a, b, a)
	require.NoError(t, err)

	assert.Equal(t, []string{a, b}, l.Roots())
	assert.Equal(t, a, l.Primary())

	roots := l.Roots()
	roots[0] = "mutated"
	assert.Equal(t, a, l.Primary(), "Roots must return a copy")
}

func TestLocator_WorkspaceFor(t *testing.T) {
	outer := t.TempDir()
	inner := filepath.Join(outer, "packages", "web")
	other := t.TempDir()

	l, err := workspace.NewLocator(outer, inner, other)
	require.NoError(t, err)

	tests := []struct {
		name     string
		document string
		want     string
	}{
		{name: "file in outer root", document: filepath.Join(outer, "README.md"), want: outer},
		{name: "deepest root wins", document: filepath.Join(inner, "src", "app.tsx"), want: inner},
		{name: "root itself", document: other, want: other},
		{name: "sibling prefix is not contained", document: inner + "-old/file.md", want: outer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := l.WorkspaceFor(tt.document)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLocator_WorkspaceForOutside(t *testing.T) {
	root := t.TempDir()
	l, err := workspace.NewLocator(root)
	require.NoError(t, err)

	_, err = l.WorkspaceFor(filepath.Join(t.TempDir(), "doc.md"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "document is outside every known workspace")
}
