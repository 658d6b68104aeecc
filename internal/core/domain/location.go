package domain

// LocationKind tags a Location.
type LocationKind uint8

const (
	// LocationNotFound means the reference could not be located.
	LocationNotFound LocationKind = iota
	// LocationAbsoluteURL is an http(s) URL.
	LocationAbsoluteURL
	// LocationLocalFile is an existing local file expressed as a file:// URI.
	LocationLocalFile
)

// String returns the kind name.
func (k LocationKind) String() string {
	switch k {
	case LocationAbsoluteURL:
		return "url"
	case LocationLocalFile:
		return "file"
	default:
		return "not-found"
	}
}

// Location is a resolved, displayable image location.
type Location struct {
	Kind LocationKind
	// Value is the URL, the file URI, or the original reference for LocationNotFound.
	Value string
}

// AbsoluteURL returns a Location for a remote URL.
func AbsoluteURL(u string) Location {
	return Location{Kind: LocationAbsoluteURL, Value: u}
}

// LocalFile returns a Location for a local file URI.
func LocalFile(uri string) Location {
	return Location{Kind: LocationLocalFile, Value: uri}
}

// NotFound returns a Location for a reference that does not exist.
func NotFound(raw string) Location {
	return Location{Kind: LocationNotFound, Value: raw}
}

// Found reports whether the location can be displayed.
func (l Location) Found() bool {
	return l.Kind != LocationNotFound
}

// PreviewKind tags a Preview.
type PreviewKind uint8

const (
	// PreviewNone means there is nothing to show.
	PreviewNone PreviewKind = iota
	// PreviewImage carries a displayable location.
	PreviewImage
	// PreviewImageNotFound means the reference did not resolve to an existing file.
	PreviewImageNotFound
	// PreviewAssetUnresolved means the asset identifier is not in the mapping.
	PreviewAssetUnresolved
)

// Preview is what the rendering collaborator receives for one hover.
type Preview struct {
	Kind PreviewKind
	// Raw is the reference as written, or the URL an asset resolved to.
	Raw string
	// AssetID is set when the hover started from an asset identifier.
	AssetID string
	// Location is set for PreviewImage.
	Location Location
}

// String returns the kind name.
func (k PreviewKind) String() string {
	switch k {
	case PreviewImage:
		return "image"
	case PreviewImageNotFound:
		return "image-not-found"
	case PreviewAssetUnresolved:
		return "asset-unresolved"
	default:
		return "none"
	}
}

// Hover is the answer to one hover request.
type Hover struct {
	Match   Match
	Preview Preview
	// Markdown is the rendered preview; empty when nothing matched.
	Markdown string
}
