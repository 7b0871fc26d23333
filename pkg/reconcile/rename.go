package reconcile

import (
	"context"
	"strings"

	"github.com/hamcat/rigmap/pkg/catalogs"
	"github.com/hamcat/rigmap/pkg/errors"
	"github.com/hamcat/rigmap/pkg/grantee"
	"github.com/hamcat/rigmap/pkg/logging"
	"github.com/hamcat/rigmap/pkg/provenance"
	"github.com/hamcat/rigmap/pkg/types"
)

// RenameBrand moves every radio whose brand is exactly oldName to newName,
// moves the brand identity and its grantee codes, and deduplicates the
// newName brand so collisions merge.
//
// If a brand identity named newName already exists, its blank fields are
// backfilled from oldName's identity and oldName's identity is removed.
// The catalog and table are only changed when every step succeeds.
// Renaming a brand to itself is a no-op. table may be nil.
func RenameBrand(ctx context.Context, cat catalogs.Catalog, table *grantee.Table, oldName, newName string, opts ...Option) (*Result, error) {
	o, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, &errors.ValidationError{Field: "catalog", Message: "cannot be nil"}
	}
	if strings.TrimSpace(oldName) == "" {
		return nil, &errors.ValidationError{Field: "old", Message: "cannot be empty"}
	}
	if strings.TrimSpace(newName) == "" {
		return nil, &errors.ValidationError{Field: "new", Message: "cannot be empty"}
	}

	ctx = logging.WithOperation(logging.WithBrand(ctx, oldName), "rename")
	logger := logging.FromContext(ctx)

	if oldName == newName {
		o.partition = ""
		result := newResult("rename", o)
		result.Records = cat.Radios().List()
		result.finalize(o)
		logger.Debug().Msg("Rename to the same name, nothing to do")
		return result, nil
	}

	work, err := cat.Copy()
	if err != nil {
		return nil, errors.WrapResource("copy", "catalog", "", err)
	}
	var tbl *grantee.Table
	if table != nil {
		tbl = table.Clone()
	}

	radios := work.Radios().List()
	renamed := 0
	for i := range radios {
		if radios[i].Brand != oldName {
			continue
		}
		radios[i].Brand = newName
		renamed++
		if o.tracker != nil {
			o.tracker.Track(types.ResourceTypeRadio, radios[i].Key().String(), "Brand", provenance.Provenance{
				Source:        radios[i].Source,
				Value:         newName,
				PreviousValue: oldName,
				Reason:        provenance.ReasonRenamed,
			})
		}
	}

	brandsMerged, err := moveIdentity(ctx, work, oldName, newName)
	if err != nil {
		return nil, errors.WrapResource("rename", "brand", oldName, err)
	}
	codes := 0
	if tbl != nil {
		codes = tbl.Rename(oldName, newName)
	}

	if err := WithPartition(newName)(o); err != nil {
		return nil, err
	}
	result, err := deduplicate(ctx, radios, o)
	if err != nil {
		return nil, err
	}
	result.Operation = "rename"
	result.Metadata.Stats.Renamed = renamed
	result.Metadata.Stats.BrandsMerged = brandsMerged

	work.Radios().Replace(result.Records)
	if err := cat.ReplaceWith(work); err != nil {
		return nil, errors.WrapResource("commit", "catalog", "", err)
	}
	if table != nil {
		table.ReplaceWith(tbl)
	}

	logger.Info().
		Str("new_brand", newName).
		Int("renamed", renamed).
		Int("merged", result.Metadata.Stats.Absorbed).
		Int("codes_moved", codes).
		Int("brand_records", result.Metadata.Stats.PartitionSize).
		Msg("Renamed brand")
	return result, nil
}

// moveIdentity transfers oldName's brand identity to newName. It returns 1
// when both identities existed and were merged.
//
// An identity holds one grantee code. When newName already owns a different
// code, oldName's code cannot move onto the identity; it is recorded in the
// target's notes and still resolves to newName through the table.
func moveIdentity(ctx context.Context, cat catalogs.Catalog, oldName, newName string) (int, error) {
	brands := cat.Brands()
	oldBrand, hasOld := brands.Get(oldName)
	if !hasOld {
		return 0, nil
	}
	if err := brands.Delete(oldName); err != nil {
		return 0, err
	}

	if target, hasNew := brands.Get(newName); hasNew {
		target.Backfill(oldBrand)
		if code := oldBrand.GranteeCode; code != "" && code != target.GranteeCode {
			logging.FromContext(ctx).Warn().
				Str("new_brand", newName).
				Str("grantee_code", code).
				Str("kept_code", target.GranteeCode).
				Msg("Target brand already owns a grantee code, old code kept in notes only")
			target.Notes, _ = mergeNotes(target.Notes, granteeCodeNote(code, oldName))
		}
		return 1, brands.Set(target)
	}

	moved := oldBrand
	moved.Name = newName
	return 0, brands.Set(moved)
}

func granteeCodeNote(code, oldName string) string {
	return "Also files under grantee code " + code + " (formerly " + oldName + ")"
}
