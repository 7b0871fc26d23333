// Package authority ranks ingestion sources. Reconciliation visits radio rows
// from higher-ranked sources first, so their values win first-write-wins
// merges. Brand identities use per-field entries: the authority for a field
// may overwrite a value another source set.
package authority

import (
	"path/filepath"

	"github.com/hamcat/rigmap/pkg/types"
)

// Authority determines which source is authoritative for each field.
type Authority interface {
	// Find returns the highest priority authority for a field.
	Find(fieldPath string, resourceType types.ResourceType) *Field

	// List returns all authorities for a resource type.
	List(resourceType types.ResourceType) []Field

	// Rank returns the whole-record priority of a source; unknown sources rank 0.
	Rank(source types.SourceID, resourceType types.ResourceType) int
}

// Field defines source priority for a field path. Path "*" ranks whole records.
type Field struct {
	Path     string         `json:"path" yaml:"path"`
	Source   types.SourceID `json:"source" yaml:"source"`
	Priority int            `json:"priority" yaml:"priority"` // higher = more authoritative
}

type authorities struct {
	radioAuthorities []Field
	brandAuthorities []Field
}

// New creates an Authority with the default rankings.
func New() Authority {
	return &authorities{
		radioAuthorities: defaultRadioAuthorities(),
		brandAuthorities: defaultBrandAuthorities(),
	}
}

// Find returns the authority configuration for a specific field.
func (a *authorities) Find(fieldPath string, resourceType types.ResourceType) *Field {
	return byField(fieldPath, a.List(resourceType))
}

// List returns all authorities for a resource type.
func (a *authorities) List(resourceType types.ResourceType) []Field {
	switch resourceType {
	case types.ResourceTypeRadio:
		return a.radioAuthorities
	case types.ResourceTypeBrand:
		return a.brandAuthorities
	default:
		return nil
	}
}

// Rank returns the priority of source's "*" entry.
func (a *authorities) Rank(source types.SourceID, resourceType types.ResourceType) int {
	best := 0
	for _, f := range a.List(resourceType) {
		if f.Source == source && f.Path == "*" && f.Priority > best {
			best = f.Priority
		}
	}
	return best
}

// byField returns the highest priority authority for a given field path.
// Ties go to the more specific (longer) pattern.
func byField(fieldPath string, authorities []Field) *Field {
	var bestMatch *Field
	var bestPriority int
	var bestMatchLength int

	for i, auth := range authorities {
		if !matchesPattern(fieldPath, auth.Path) {
			continue
		}
		patternLength := len(auth.Path)
		if bestMatch == nil || auth.Priority > bestPriority ||
			(auth.Priority == bestPriority && patternLength > bestMatchLength) {
			bestMatch = &authorities[i]
			bestPriority = auth.Priority
			bestMatchLength = patternLength
		}
	}
	return bestMatch
}

// matchesPattern checks if a field path matches a pattern (supports * wildcards).
func matchesPattern(fieldPath, pattern string) bool {
	if fieldPath == pattern {
		return true
	}
	if len(pattern) > 0 && pattern[len(pattern)-1] == '*' {
		prefix := pattern[:len(pattern)-1]
		return len(fieldPath) >= len(prefix) && fieldPath[:len(prefix)] == prefix
	}
	matched, err := filepath.Match(pattern, fieldPath)
	if err != nil {
		return false
	}
	return matched
}

func defaultRadioAuthorities() []Field {
	return []Field{
		// Whole-record order used by dedup. Fields are never ranked
		// individually: merges are first-write-wins.
		{Path: "*", Source: types.CuratedID, Priority: 100},
		{Path: "*", Source: types.FCCGrantID, Priority: 90},
		{Path: "*", Source: types.StoreID, Priority: 80},
		{Path: "*", Source: types.CatalogCSVID, Priority: 60},
		{Path: "*", Source: types.MarkdownID, Priority: 50},
	}
}

func defaultBrandAuthorities() []Field {
	return []Field{
		{Path: "*", Source: types.CuratedID, Priority: 100},
		{Path: "*", Source: types.GranteeExtractID, Priority: 90},
		{Path: "*", Source: types.StoreID, Priority: 80},

		// The extract carries the legal name as filed with the FCC.
		{Path: "FullName", Source: types.GranteeExtractID, Priority: 110},
	}
}
