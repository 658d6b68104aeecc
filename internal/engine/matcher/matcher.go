// Package matcher finds the image reference or asset identifier under a cursor.
package matcher

import (
	"regexp"
	"slices"
	"strings"

	"go.trai.ch/peek/internal/core/domain"
)

// Extensions is the set of recognized image file extensions, lower-case.
var Extensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".svg", ".webp", ".ico"}

const extAlternation = `(?:png|jpg|jpeg|gif|bmp|svg|webp|ico)`

var (
	assetPattern      = regexp.MustCompile(`__ASSET_\d+_\d+`)
	assetExactPattern = regexp.MustCompile(`^__ASSET_\d+_\d+$`)

	imagePattern = regexp.MustCompile(`(?i)` +
		`(?:https?://[^\s)'"]+\.` + extAlternation + `)` +
		`|(?:(?:\.\.?/|/)[^\s)'"]*\.` + extAlternation + `)` +
		`|(?:[a-zA-Z]:[\\/][^\s)'"]*\.` + extAlternation + `)`)

	quotedPattern = regexp.MustCompile("[\"'`]([^\"'`]+)[\"'`]")
	parenPattern  = regexp.MustCompile(`\(([^)]+)\)`)
)

// Rule is one matching strategy. pos is a byte offset into line.
type Rule func(line string, pos int) (domain.Match, bool)

// DefaultRules are the strategies in priority order.
var DefaultRules = []Rule{AssetWord, ImageWord, QuotedSpan, ParenSpan}

// Matcher tries its rules in order and returns the first hit.
type Matcher struct {
	rules []Rule
}

// New creates a Matcher with the default rules.
func New() *Matcher {
	return NewWithRules(DefaultRules...)
}

// NewWithRules creates a Matcher with custom rules.
func NewWithRules(rules ...Rule) *Matcher {
	return &Matcher{rules: slices.Clone(rules)}
}

// Match returns what the cursor at character offset (in runes) points at.
// Offsets outside the line are clamped to its bounds.
func (m *Matcher) Match(line string, offset int) domain.Match {
	pos := byteOffset(line, offset)
	for _, rule := range m.rules {
		if match, ok := rule(line, pos); ok {
			return match
		}
	}
	return domain.NoMatch
}

// AssetWord matches an asset identifier run containing pos.
func AssetWord(line string, pos int) (domain.Match, bool) {
	if span, ok := runAt(assetPattern, line, pos); ok {
		return domain.AssetToken(span), true
	}
	return domain.NoMatch, false
}

// ImageWord matches a URL, relative path or drive-letter path run containing pos.
func ImageWord(line string, pos int) (domain.Match, bool) {
	if span, ok := runAt(imagePattern, line, pos); ok {
		return domain.ImageReference(span), true
	}
	return domain.NoMatch, false
}

// QuotedSpan matches the inner text of a quoted span containing pos,
// either as an asset identifier or as an image path.
func QuotedSpan(line string, pos int) (domain.Match, bool) {
	for _, inner := range spansAt(quotedPattern, line, pos) {
		if IsAssetIdentifier(inner) {
			return domain.AssetToken(inner), true
		}
		if HasImageExtension(inner) {
			return domain.ImageReference(inner), true
		}
	}
	return domain.NoMatch, false
}

// ParenSpan matches the inner text of a parenthesized span containing pos.
// Only the image extension is checked; asset identifiers in parentheses are not recognized.
func ParenSpan(line string, pos int) (domain.Match, bool) {
	for _, inner := range spansAt(parenPattern, line, pos) {
		if HasImageExtension(inner) {
			return domain.ImageReference(inner), true
		}
	}
	return domain.NoMatch, false
}

// IsAssetIdentifier reports whether text is exactly an asset identifier.
func IsAssetIdentifier(text string) bool {
	return assetExactPattern.MatchString(text)
}

// HasImageExtension reports whether the last path element of ref ends in a recognized extension.
// A leading dot (as in ".png") is a hidden file name, not an extension.
func HasImageExtension(ref string) bool {
	base := ref[strings.LastIndex(ref, "/")+1:]
	i := strings.LastIndex(base, ".")
	if i <= 0 {
		return false
	}
	return slices.Contains(Extensions, strings.ToLower(base[i:]))
}

// runAt returns the first match of re whose range contains pos, ends included.
func runAt(re *regexp.Regexp, line string, pos int) (string, bool) {
	for _, loc := range re.FindAllStringIndex(line, -1) {
		if loc[0] <= pos && pos <= loc[1] {
			return line[loc[0]:loc[1]], true
		}
	}
	return "", false
}

// spansAt returns the first capture group of every match of re whose full range contains pos.
func spansAt(re *regexp.Regexp, line string, pos int) []string {
	var out []string
	for _, loc := range re.FindAllStringSubmatchIndex(line, -1) {
		if loc[0] <= pos && pos <= loc[1] {
			out = append(out, line[loc[2]:loc[3]])
		}
	}
	return out
}

// byteOffset converts a rune offset into a byte offset, clamped to the line.
func byteOffset(line string, offset int) int {
	if offset <= 0 {
		return 0
	}
	n := 0
	for i := range line {
		if n == offset {
			return i
		}
		n++
	}
	return len(line)
}
