package domain

import "path/filepath"

const (
	// ConfigFileName is the name of the per-workspace configuration file.
	ConfigFileName = ".peek.yaml"

	// DotMappingFileName is the dotfile mapping candidate at the workspace root.
	DotMappingFileName = ".image-assets.json"

	// NamedMappingFileName is the named mapping candidate at the workspace root.
	NamedMappingFileName = "assets.config.json"

	// EditorDirName is the tool-specific subdirectory holding the last mapping candidate.
	EditorDirName = ".vscode"

	// EditorMappingFileName is the mapping candidate inside EditorDirName.
	EditorMappingFileName = "image-assets.json"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// DefaultMappingPaths returns the fixed mapping candidates for a workspace root, in merge order.
func DefaultMappingPaths(root string) []string {
	return []string{
		filepath.Join(root, DotMappingFileName),
		filepath.Join(root, NamedMappingFileName),
		filepath.Join(root, EditorDirName, EditorMappingFileName),
	}
}

// MappingCandidates returns the full candidate list for a workspace root.
// A configured override comes first; relative overrides are joined to the root.
func MappingCandidates(root, override string) []string {
	defaults := DefaultMappingPaths(root)
	if override == "" {
		return defaults
	}
	if !filepath.IsAbs(override) {
		override = filepath.Join(root, override)
	}
	return append([]string{override}, defaults...)
}

// DefaultConfigPath returns the config file path for a workspace root.
func DefaultConfigPath(root string) string {
	return filepath.Join(root, ConfigFileName)
}
