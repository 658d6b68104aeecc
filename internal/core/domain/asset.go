package domain

import (
	"bytes"
	"encoding/json"
	"maps"
	"slices"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"
)

// AssetMapping maps asset identifiers to image URLs or paths.
// A published mapping is treated as immutable; writers build a new one and swap it in.
type AssetMapping map[string]string

// Clone returns an independent copy of the mapping. A nil mapping clones to an empty one.
func (m AssetMapping) Clone() AssetMapping {
	out := make(AssetMapping, len(m))
	maps.Copy(out, m)
	return out
}

// Overlay returns a new mapping holding m's entries overwritten by top's entries.
func (m AssetMapping) Overlay(top AssetMapping) AssetMapping {
	out := make(AssetMapping, len(m)+len(top))
	maps.Copy(out, m)
	maps.Copy(out, top)
	return out
}

// IDs returns the asset identifiers in sorted order.
func (m AssetMapping) IDs() []string {
	return slices.Sorted(maps.Keys(m))
}

// Fingerprint returns a stable hash of the mapping contents, independent of insertion order.
// An empty mapping has fingerprint 0.
func (m AssetMapping) Fingerprint() uint64 {
	if len(m) == 0 {
		return 0
	}
	d := xxhash.New()
	for _, id := range m.IDs() {
		_, _ = d.WriteString(id)
		_, _ = d.Write([]byte{0})
		_, _ = d.WriteString(m[id])
		_, _ = d.Write([]byte{0})
	}
	return d.Sum64()
}

// DecodeMapping parses a JSON object into a mapping.
// Entries whose value is not a string are dropped and counted in skipped.
// Anything other than a JSON object fails with ErrNotJSONObject.
func DecodeMapping(data []byte) (mapping AssetMapping, skipped int, err error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, 0, ErrNotJSONObject
	}

	var raw map[string]any
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, 0, zerr.Wrap(err, ErrNotJSONObject.Error())
	}

	mapping = make(AssetMapping, len(raw))
	for id, v := range raw {
		s, ok := v.(string)
		if !ok {
			skipped++
			continue
		}
		mapping[id] = s
	}
	return mapping, skipped, nil
}

// Stats summarizes the loaded mappings for one workspace or for all of them.
type Stats struct {
	// Total is the number of loaded entries.
	Total int `json:"total"`
	// Loaded reports whether any entry is loaded.
	Loaded bool `json:"loaded"`
	// Workspaces is the number of workspaces the stats cover.
	Workspaces int `json:"workspaces"`
	// LastUpdate is the time of the last successful remote fetch, zero if none.
	LastUpdate time.Time `json:"lastUpdate,omitzero"`
	// ActivitySignal is the activity signal recorded with the mapping.
	ActivitySignal string `json:"activitySignal,omitempty"`
	// Fingerprint is the mapping fingerprint (single workspace only).
	Fingerprint uint64 `json:"fingerprint,omitempty"`
}
