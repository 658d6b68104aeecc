package domain

// MatchKind tags a Match.
type MatchKind uint8

const (
	// MatchNone means nothing under the cursor looks like an image.
	MatchNone MatchKind = iota
	// MatchAssetToken means the cursor is on an asset identifier.
	MatchAssetToken
	// MatchImageReference means the cursor is on a literal URL or path.
	MatchImageReference
)

// String returns the kind name.
func (k MatchKind) String() string {
	switch k {
	case MatchAssetToken:
		return "asset"
	case MatchImageReference:
		return "image"
	default:
		return "none"
	}
}

// Match is the outcome of matching a cursor position against a line of text.
type Match struct {
	Kind MatchKind
	// Value is the asset identifier or the raw reference; empty for MatchNone.
	Value string
}

// NoMatch is the Match returned when nothing matched.
var NoMatch = Match{Kind: MatchNone}

// AssetToken returns a Match for an asset identifier.
func AssetToken(id string) Match {
	return Match{Kind: MatchAssetToken, Value: id}
}

// ImageReference returns a Match for a literal reference.
func ImageReference(raw string) Match {
	return Match{Kind: MatchImageReference, Value: raw}
}
