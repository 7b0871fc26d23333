package differ

import (
	"sort"

	"github.com/hamcat/rigmap/pkg/catalogs"
)

// Differ handles change detection between catalog contents.
type Differ interface {
	// Radios compares two sets of radios by normalized key.
	Radios(existing, updated []catalogs.Radio) *RadioChangeset

	// Brands compares two sets of brand identities by name.
	Brands(existing, updated []catalogs.Brand) *BrandChangeset

	// Catalogs compares two complete catalogs.
	Catalogs(existing, updated catalogs.Reader) *Changeset
}

// differ is the default implementation of Differ.
type differ struct {
	ignoreFields map[string]bool
	valueWidth   int
}

// New creates a Differ with default settings.
func New(opts ...Option) Differ {
	d := &differ{
		ignoreFields: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Radios compares two sets of radios and returns changes. Radios are
// matched by normalized key, so a case-only change of brand or model is an
// update, not a remove plus an add.
func (diff *differ) Radios(existing, updated []catalogs.Radio) *RadioChangeset {
	changeset := &RadioChangeset{}

	existingMap := make(map[string]catalogs.Radio, len(existing))
	for _, r := range existing {
		existingMap[r.Key().String()] = r
	}
	newMap := make(map[string]catalogs.Radio, len(updated))
	for _, r := range updated {
		newMap[r.Key().String()] = r
	}

	for _, r := range updated {
		key := r.Key().String()
		old, exists := existingMap[key]
		if !exists {
			changeset.Added = append(changeset.Added, r)
			continue
		}
		if changes := diff.radio(old, r); len(changes) > 0 {
			changeset.Updated = append(changeset.Updated, RadioUpdate{
				Key:      key,
				Existing: old,
				New:      r,
				Changes:  changes,
			})
		}
	}

	for _, r := range existing {
		if _, exists := newMap[r.Key().String()]; !exists {
			changeset.Removed = append(changeset.Removed, r)
		}
	}

	sortRadioChangeset(changeset)
	return changeset
}

// Brands compares two sets of brand identities and returns changes.
func (diff *differ) Brands(existing, updated []catalogs.Brand) *BrandChangeset {
	changeset := &BrandChangeset{}

	existingMap := make(map[string]catalogs.Brand, len(existing))
	for _, b := range existing {
		existingMap[b.Name] = b
	}
	newMap := make(map[string]catalogs.Brand, len(updated))
	for _, b := range updated {
		newMap[b.Name] = b
	}

	for _, b := range updated {
		old, exists := existingMap[b.Name]
		if !exists {
			changeset.Added = append(changeset.Added, b)
			continue
		}
		if changes := diff.brand(old, b); len(changes) > 0 {
			changeset.Updated = append(changeset.Updated, BrandUpdate{
				Name:     b.Name,
				Existing: old,
				New:      b,
				Changes:  changes,
			})
		}
	}

	for _, b := range existing {
		if _, exists := newMap[b.Name]; !exists {
			changeset.Removed = append(changeset.Removed, b)
		}
	}

	sortBrandChangeset(changeset)
	return changeset
}

// Catalogs compares two complete catalogs.
func (diff *differ) Catalogs(existing, updated catalogs.Reader) *Changeset {
	changeset := &Changeset{
		Radios: diff.Radios(existing.Radios().List(), updated.Radios().List()),
		Brands: diff.Brands(existing.Brands().List(), updated.Brands().List()),
	}
	changeset.Summary = calculateSummary(changeset.Radios, changeset.Brands)
	return changeset
}

// radio compares the display identity and every mergeable field.
func (diff *differ) radio(existing, updated catalogs.Radio) []FieldChange {
	var changes []FieldChange
	changes = diff.compare(changes, "Brand", existing.Brand, updated.Brand)
	changes = diff.compare(changes, "Model", existing.Model, updated.Model)
	for _, field := range catalogs.MergeableFields {
		changes = diff.compare(changes, field, existing.FieldString(field), updated.FieldString(field))
	}
	return changes
}

func (diff *differ) brand(existing, updated catalogs.Brand) []FieldChange {
	var changes []FieldChange
	changes = diff.compare(changes, "GranteeCode", existing.GranteeCode, updated.GranteeCode)
	changes = diff.compare(changes, "FullName", existing.FullName, updated.FullName)
	changes = diff.compare(changes, "Website", existing.Website, updated.Website)
	changes = diff.compare(changes, "Country", existing.Country, updated.Country)
	changes = diff.compare(changes, "Notes", existing.Notes, updated.Notes)
	return changes
}

func (diff *differ) compare(changes []FieldChange, path, oldValue, newValue string) []FieldChange {
	if oldValue == newValue || diff.ignoreFields[path] {
		return changes
	}
	return append(changes, FieldChange{
		Path:     path,
		OldValue: truncateString(oldValue, diff.valueWidth),
		NewValue: truncateString(newValue, diff.valueWidth),
		Type:     ChangeTypeUpdate,
	})
}

func sortRadioChangeset(c *RadioChangeset) {
	byKey := func(rs []catalogs.Radio) func(i, j int) bool {
		return func(i, j int) bool { return rs[i].Key().String() < rs[j].Key().String() }
	}
	sort.Slice(c.Added, byKey(c.Added))
	sort.Slice(c.Removed, byKey(c.Removed))
	sort.Slice(c.Updated, func(i, j int) bool { return c.Updated[i].Key < c.Updated[j].Key })
}

func sortBrandChangeset(c *BrandChangeset) {
	sort.Slice(c.Added, func(i, j int) bool { return c.Added[i].Name < c.Added[j].Name })
	sort.Slice(c.Removed, func(i, j int) bool { return c.Removed[i].Name < c.Removed[j].Name })
	sort.Slice(c.Updated, func(i, j int) bool { return c.Updated[i].Name < c.Updated[j].Name })
}

// truncateString shortens s to n runes with a trailing "...".
func truncateString(s string, n int) string {
	if n <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}
