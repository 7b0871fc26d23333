// Package differ provides functionality for comparing catalogs and detecting changes.
package differ

import (
	"fmt"
	"strings"

	"github.com/hamcat/rigmap/pkg/catalogs"
)

// ChangeType represents the type of change.
type ChangeType string

const (
	// ChangeTypeAdd indicates an item was added.
	ChangeTypeAdd ChangeType = "add"
	// ChangeTypeUpdate indicates an item was updated.
	ChangeTypeUpdate ChangeType = "update"
	// ChangeTypeRemove indicates an item was removed.
	ChangeTypeRemove ChangeType = "remove"
)

// FieldChange represents a change to a specific field.
type FieldChange struct {
	Path     string     `json:"path" yaml:"path"` // Go field name, e.g. "FreqBandsTX"
	OldValue string     `json:"old,omitempty" yaml:"old,omitempty"`
	NewValue string     `json:"new,omitempty" yaml:"new,omitempty"`
	Type     ChangeType `json:"type" yaml:"type"`
}

// RadioUpdate represents an update to an existing radio.
type RadioUpdate struct {
	Key      string         `json:"key" yaml:"key"` // normalized brand/model
	Existing catalogs.Radio `json:"-" yaml:"-"`
	New      catalogs.Radio `json:"-" yaml:"-"`
	Changes  []FieldChange  `json:"changes" yaml:"changes"`
}

// BrandUpdate represents an update to an existing brand identity.
type BrandUpdate struct {
	Name     string         `json:"name" yaml:"name"`
	Existing catalogs.Brand `json:"-" yaml:"-"`
	New      catalogs.Brand `json:"-" yaml:"-"`
	Changes  []FieldChange  `json:"changes" yaml:"changes"`
}

// RadioChangeset represents changes to radios.
type RadioChangeset struct {
	Added   []catalogs.Radio `json:"added,omitempty" yaml:"added,omitempty"`
	Updated []RadioUpdate    `json:"updated,omitempty" yaml:"updated,omitempty"`
	Removed []catalogs.Radio `json:"removed,omitempty" yaml:"removed,omitempty"`
}

// BrandChangeset represents changes to brand identities.
type BrandChangeset struct {
	Added   []catalogs.Brand `json:"added,omitempty" yaml:"added,omitempty"`
	Updated []BrandUpdate    `json:"updated,omitempty" yaml:"updated,omitempty"`
	Removed []catalogs.Brand `json:"removed,omitempty" yaml:"removed,omitempty"`
}

// Changeset represents all changes between two catalogs.
type Changeset struct {
	Radios  *RadioChangeset  `json:"radios" yaml:"radios"`
	Brands  *BrandChangeset  `json:"brands" yaml:"brands"`
	Summary ChangesetSummary `json:"summary" yaml:"summary"`
}

// ChangesetSummary provides summary statistics for a changeset.
type ChangesetSummary struct {
	RadiosAdded   int `json:"radios_added" yaml:"radios_added"`
	RadiosUpdated int `json:"radios_updated" yaml:"radios_updated"`
	RadiosRemoved int `json:"radios_removed" yaml:"radios_removed"`
	BrandsAdded   int `json:"brands_added" yaml:"brands_added"`
	BrandsUpdated int `json:"brands_updated" yaml:"brands_updated"`
	BrandsRemoved int `json:"brands_removed" yaml:"brands_removed"`
	TotalChanges  int `json:"total_changes" yaml:"total_changes"`
}

// calculateSummary computes the summary for a changeset.
func calculateSummary(radios *RadioChangeset, brands *BrandChangeset) ChangesetSummary {
	s := ChangesetSummary{
		RadiosAdded:   len(radios.Added),
		RadiosUpdated: len(radios.Updated),
		RadiosRemoved: len(radios.Removed),
		BrandsAdded:   len(brands.Added),
		BrandsUpdated: len(brands.Updated),
		BrandsRemoved: len(brands.Removed),
	}
	s.TotalChanges = s.RadiosAdded + s.RadiosUpdated + s.RadiosRemoved +
		s.BrandsAdded + s.BrandsUpdated + s.BrandsRemoved
	return s
}

// IsEmpty returns true if the changeset contains no changes.
func (c *Changeset) IsEmpty() bool {
	return c.Summary.TotalChanges == 0
}

// HasChanges returns true if the changeset contains any changes.
func (c *Changeset) HasChanges() bool {
	return c.Summary.TotalChanges > 0
}

// HasChanges returns true if the radio changeset contains any changes.
func (r *RadioChangeset) HasChanges() bool {
	return len(r.Added) > 0 || len(r.Updated) > 0 || len(r.Removed) > 0
}

// HasChanges returns true if the brand changeset contains any changes.
func (b *BrandChangeset) HasChanges() bool {
	return len(b.Added) > 0 || len(b.Updated) > 0 || len(b.Removed) > 0
}

// String returns a human-readable summary of the changeset.
func (c *Changeset) String() string {
	if c.IsEmpty() {
		return "No changes detected"
	}

	var parts []string
	if c.Radios.HasChanges() {
		parts = append(parts, "Radios: "+counts(len(c.Radios.Added), len(c.Radios.Updated), len(c.Radios.Removed)))
	}
	if c.Brands.HasChanges() {
		parts = append(parts, "Brands: "+counts(len(c.Brands.Added), len(c.Brands.Updated), len(c.Brands.Removed)))
	}
	return strings.Join(parts, "; ")
}

func counts(added, updated, removed int) string {
	var parts []string
	if added > 0 {
		parts = append(parts, fmt.Sprintf("%d added", added))
	}
	if updated > 0 {
		parts = append(parts, fmt.Sprintf("%d updated", updated))
	}
	if removed > 0 {
		parts = append(parts, fmt.Sprintf("%d removed", removed))
	}
	return strings.Join(parts, ", ")
}
