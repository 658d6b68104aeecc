package ports

//go:generate go run go.uber.org/mock/mockgen -source=workspace.go -destination=mocks/mock_workspace.go -package=mocks

// WorkspaceLocator maps documents to the workspace that owns them.
type WorkspaceLocator interface {
	// Roots returns every known workspace root; the first one is the primary workspace.
	Roots() []string
	// Primary returns the primary workspace root, or "" if none is known.
	Primary() string
	// WorkspaceFor returns the deepest root containing the document.
	WorkspaceFor(document string) (string, error)
}
