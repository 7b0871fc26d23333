// Package reconcile turns a list of radio records that may describe the same
// device several times into a catalog with exactly one record per
// normalized (brand, model) key.
//
// The pieces are:
//
//   - Merge folds one record into another without losing information.
//   - Deduplicate groups records by key and folds each group into its most
//     complete member.
//   - Validate checks the one-record-per-key invariant.
//   - RenameBrand moves every record and the brand identity from one name
//     to another, then deduplicates the target brand.
//   - CleanGranteePrefix and SyncBrands repair catalogs built from older
//     imports.
//
// Catalog-level operations work on copies and commit only when every step
// succeeded.
package reconcile

import (
	"github.com/hamcat/rigmap/pkg/authority"
	"github.com/hamcat/rigmap/pkg/errors"
	"github.com/hamcat/rigmap/pkg/normalize"
	"github.com/hamcat/rigmap/pkg/provenance"
)

type options struct {
	partition string // normalized brand, empty for the whole catalog
	authority authority.Authority
	tracker   provenance.Tracker
}

// Option configures a reconciliation operation.
type Option func(*options) error

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

func newOptions(opts ...Option) (*options, error) {
	return (&options{}).apply(opts...)
}

// WithPartition restricts deduplication to records of one brand. Records
// of other brands pass through untouched.
func WithPartition(brand string) Option {
	return func(o *options) error {
		b := normalize.Brand(brand)
		if b == "" {
			return &errors.ValidationError{Field: "partition", Message: "cannot be empty"}
		}
		o.partition = b
		return nil
	}
}

// WithAuthority visits records from higher-ranked sources first. Without it
// the input order is the discovery order.
func WithAuthority(a authority.Authority) Option {
	return func(o *options) error {
		if a == nil {
			return &errors.ValidationError{Field: "authority", Message: "cannot be nil"}
		}
		o.authority = a
		return nil
	}
}

// WithProvenance records field-level provenance for every merge.
func WithProvenance(t provenance.Tracker) Option {
	return func(o *options) error {
		if t == nil {
			return &errors.ValidationError{Field: "tracker", Message: "cannot be nil"}
		}
		o.tracker = t
		return nil
	}
}

func (o *options) inPartition(brand string) bool {
	return o.partition == "" || normalize.Brand(brand) == o.partition
}
