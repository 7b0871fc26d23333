package store

import (
	"context"

	"github.com/hamcat/rigmap/pkg/catalogs"
	"github.com/hamcat/rigmap/pkg/errors"
	"github.com/hamcat/rigmap/pkg/grantee"
	"github.com/hamcat/rigmap/pkg/reconcile"
)

// Deduplicate collapses duplicate keys in the stored catalog.
func (s *Store) Deduplicate(ctx context.Context, opts ...reconcile.Option) (*reconcile.Result, error) {
	return s.Apply(ctx, func(ctx context.Context, cat catalogs.Catalog) (*reconcile.Result, error) {
		res, err := reconcile.Deduplicate(ctx, cat.Radios().List(), opts...)
		if err != nil {
			return nil, err
		}
		cat.Radios().Replace(res.Records)
		return res, nil
	})
}

// RenameBrand renames a brand in the stored catalog and merges the
// collisions it creates. table is retargeted only when the transaction
// commits.
func (s *Store) RenameBrand(ctx context.Context, table *grantee.Table, oldName, newName string, opts ...reconcile.Option) (*reconcile.Result, error) {
	var work *grantee.Table
	if table != nil {
		work = table.Clone()
	}
	res, err := s.Apply(ctx, func(ctx context.Context, cat catalogs.Catalog) (*reconcile.Result, error) {
		return reconcile.RenameBrand(ctx, cat, work, oldName, newName, opts...)
	})
	if err != nil {
		return nil, err
	}
	if table != nil {
		table.ReplaceWith(work)
	}
	return res, nil
}

// CleanGranteePrefix strips a leaked grantee code from one brand's model
// names in the stored catalog.
func (s *Store) CleanGranteePrefix(ctx context.Context, brand, code string, opts ...reconcile.Option) (*reconcile.Result, error) {
	return s.Apply(ctx, func(ctx context.Context, cat catalogs.Catalog) (*reconcile.Result, error) {
		return reconcile.CleanGranteePrefix(ctx, cat, brand, code, opts...)
	})
}

// SyncBrands creates missing brand identities in the stored catalog.
func (s *Store) SyncBrands(ctx context.Context, table *grantee.Table) (*reconcile.Result, error) {
	return s.Apply(ctx, func(ctx context.Context, cat catalogs.Catalog) (*reconcile.Result, error) {
		return reconcile.SyncBrands(ctx, cat, table)
	})
}

// SeedTable assigns the grantee code of every stored brand identity to that
// identity in table, so codes learned or renamed in earlier runs keep
// resolving to the brand that owns them. A stored owner replaces the curated
// name for its code; the curated name stays an alias.
func (s *Store) SeedTable(ctx context.Context, table *grantee.Table) (int, error) {
	var rows []BrandModel
	if err := s.db.WithContext(ctx).Where("grantee_code <> ?", "").Order("id").Find(&rows).Error; err != nil {
		return 0, errors.WrapResource("load", "brands", "", err)
	}
	n := 0
	for _, b := range rows {
		if table.Assign(b.GranteeCode, b.Name) {
			n++
		}
	}
	return n, nil
}
