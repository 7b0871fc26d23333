package ingest

import (
	"github.com/hamcat/rigmap/pkg/catalogs"
)

// Batch is the raw output of one or more readers.
type Batch struct {
	Name     string
	Radios   []catalogs.Radio // free-text rows, brand and model as written
	Grants   []Grant          // FCC grant rows, not yet parsed
	Grantees []Grantee        // grantee extract pairs
	Brands   []catalogs.Brand // brand sheet rows
	Report   *Report
}

// NewBatch creates an empty batch.
func NewBatch(name string) *Batch {
	return &Batch{Name: name, Report: NewReport(name)}
}

// Append adds other's rows and report to b.
func (b *Batch) Append(other *Batch) {
	if other == nil {
		return
	}
	b.Radios = append(b.Radios, other.Radios...)
	b.Grants = append(b.Grants, other.Grants...)
	b.Grantees = append(b.Grantees, other.Grantees...)
	b.Brands = append(b.Brands, other.Brands...)
	b.Report.Merge(other.Report)
}

// Len returns the number of accepted rows of every kind.
func (b *Batch) Len() int {
	return len(b.Radios) + len(b.Grants) + len(b.Grantees) + len(b.Brands)
}

// Grantee is one row of the FCC grantee extract.
type Grantee struct {
	Code string
	Name string
	Line int
}

// Grant is one row of an FCC equipment authorization extract.
type Grant struct {
	FCCID     string
	GrantDate string
	LowerMHz  string
	UpperMHz  string
	Purpose   string
	Line      int
}
