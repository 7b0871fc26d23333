package reconcile

import (
	"context"
	"strings"

	"github.com/hamcat/rigmap/pkg/catalogs"
	"github.com/hamcat/rigmap/pkg/errors"
	"github.com/hamcat/rigmap/pkg/grantee"
	"github.com/hamcat/rigmap/pkg/logging"
)

// CleanGranteePrefix strips a leaked grantee code from the model names of
// one brand, "2AJGM-UV5R" becoming "UV5R", and merges any records that now
// collide. Only radios whose brand is exactly brand are touched.
func CleanGranteePrefix(ctx context.Context, cat catalogs.Catalog, brand, code string, opts ...Option) (*Result, error) {
	o, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, &errors.ValidationError{Field: "catalog", Message: "cannot be nil"}
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, &errors.ValidationError{Field: "grantee_code", Message: "cannot be empty"}
	}
	if err := WithPartition(brand)(o); err != nil {
		return nil, err
	}

	ctx = logging.WithOperation(logging.WithBrand(ctx, brand), "clean-prefix")

	work, err := cat.Copy()
	if err != nil {
		return nil, errors.WrapResource("copy", "catalog", "", err)
	}

	radios := work.Radios().List()
	cleaned := 0
	for i := range radios {
		r := &radios[i]
		if r.Brand != brand || !strings.HasPrefix(r.Model, code) {
			continue
		}
		model := grantee.ModelAfterCode(r.Model, code)
		if model == "" || model == r.Model {
			continue
		}
		r.Model = model
		cleaned++
	}

	result, err := deduplicate(ctx, radios, o)
	if err != nil {
		return nil, err
	}
	result.Operation = "clean-prefix"
	result.Metadata.Stats.PrefixesCleaned = cleaned

	work.Radios().Replace(result.Records)
	if err := cat.ReplaceWith(work); err != nil {
		return nil, errors.WrapResource("commit", "catalog", "", err)
	}

	logging.FromContext(ctx).Info().
		Str("grantee_code", code).
		Int("cleaned", cleaned).
		Int("merged", result.Metadata.Stats.Absorbed).
		Msg("Cleaned grantee prefixes")
	return result, nil
}

// SyncBrands creates a brand identity for every radio brand that has none.
// A new identity takes the grantee code the table knows for the brand when
// no other identity owns that code yet. table may be nil.
func SyncBrands(ctx context.Context, cat catalogs.Catalog, table *grantee.Table) (*Result, error) {
	if cat == nil {
		return nil, &errors.ValidationError{Field: "catalog", Message: "cannot be nil"}
	}
	o := &options{}
	result := newResult("sync-brands", o)
	logger := logging.FromContext(logging.WithOperation(ctx, "sync-brands"))

	work, err := cat.Copy()
	if err != nil {
		return nil, errors.WrapResource("copy", "catalog", "", err)
	}

	for _, name := range work.Radios().Brands() {
		if strings.TrimSpace(name) == "" || work.Brands().Exists(name) {
			continue
		}
		brand := catalogs.Brand{Name: name}
		if table != nil {
			if code, ok := table.Code(name); ok {
				if _, owned := work.Brands().ByGranteeCode(code); !owned {
					brand.GranteeCode = code
					if canonical, _ := table.Lookup(code); canonical == name {
						brand.FullName = table.FullName(code)
					}
				}
			}
		}
		if err := work.Brands().Add(brand); err != nil {
			return nil, errors.WrapResource("create", "brand", name, err)
		}
		result.CreatedBrands = append(result.CreatedBrands, brand)
		logger.Debug().Str("brand", name).Str("grantee_code", brand.GranteeCode).Msg("Created brand identity")
	}

	if err := cat.ReplaceWith(work); err != nil {
		return nil, errors.WrapResource("commit", "catalog", "", err)
	}

	result.Records = cat.Radios().List()
	result.Metadata.Stats.RecordsIn = len(result.Records)
	result.Metadata.Stats.BrandsCreated = len(result.CreatedBrands)
	result.finalize(o)
	logger.Info().Int("created", len(result.CreatedBrands)).Msg("Synced brand identities")
	return result, nil
}
