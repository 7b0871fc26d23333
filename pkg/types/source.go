//nolint:revive // Package types provides common type definitions
package types

import "slices"

// SourceID identifies where a catalog row came from.
type SourceID string

// String returns the string representation of a source ID.
func (id SourceID) String() string {
	return string(id)
}

// Source identifiers, one per reader.
const (
	// CuratedID identifies the hand-maintained grantee table and brand sheet.
	CuratedID SourceID = "curated"

	// GranteeExtractID identifies the FCC grantee XML extract.
	GranteeExtractID SourceID = "grantee_extract"

	// FCCGrantID identifies FCC equipment grant XML rows.
	FCCGrantID SourceID = "fcc_grant"

	// CatalogCSVID identifies free-text catalog spreadsheets exported as CSV.
	CatalogCSVID SourceID = "catalog_csv"

	// MarkdownID identifies scraped markdown tables.
	MarkdownID SourceID = "markdown"

	// StoreID identifies rows already persisted in the database.
	StoreID SourceID = "store"
)

// SourceIDs returns all available source identifiers.
func SourceIDs() []SourceID {
	return []SourceID{
		CuratedID,
		GranteeExtractID,
		FCCGrantID,
		CatalogCSVID,
		MarkdownID,
		StoreID,
	}
}

// IsValid returns true if the SourceID is one of the defined constants.
func (id SourceID) IsValid() bool {
	return slices.Contains(SourceIDs(), id)
}
