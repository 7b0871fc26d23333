package pipeline

import (
	"context"
	"strings"

	"github.com/hamcat/rigmap/internal/ingest"
	"github.com/hamcat/rigmap/pkg/catalogs"
	"github.com/hamcat/rigmap/pkg/grantee"
	"github.com/hamcat/rigmap/pkg/logging"
	"github.com/hamcat/rigmap/pkg/types"
)

// brandFields are the descriptive brand fields a source may overwrite when
// it is the field's authority. GranteeCode is identity and only backfilled.
var brandFields = []struct {
	name string
	ptr  func(*catalogs.Brand) *string
}{
	{"FullName", func(b *catalogs.Brand) *string { return &b.FullName }},
	{"Website", func(b *catalogs.Brand) *string { return &b.Website }},
	{"Country", func(b *catalogs.Brand) *string { return &b.Country }},
	{"Notes", func(b *catalogs.Brand) *string { return &b.Notes }},
}

// overwrite copies into dst every field of src that source is the authority
// for and that differs from dst. Blank src values never overwrite. It returns
// the number of fields changed.
func (p *Pipeline) overwrite(dst *catalogs.Brand, src catalogs.Brand, source types.SourceID) int {
	changed := 0
	for _, f := range brandFields {
		v := strings.TrimSpace(*f.ptr(&src))
		cur := f.ptr(dst)
		if v == "" || v == strings.TrimSpace(*cur) {
			continue
		}
		auth := p.authority.Find(f.name, types.ResourceTypeBrand)
		if auth == nil || auth.Source != source {
			continue
		}
		*cur = v
		changed++
	}
	return changed
}

// importGrantees records extract pairs in the table and backfills brand
// identities. The first non-blank name for a code wins in the table; a new
// identity takes the table's canonical name for the code so identity and
// table agree. The extract's legal name replaces FullName where the extract
// is the field's authority.
func (p *Pipeline) importGrantees(ctx context.Context, table *grantee.Table, cat catalogs.Catalog, rows []ingest.Grantee, result *Result) {
	logger := logging.FromContext(ctx)
	brands := cat.Brands()

	for _, g := range rows {
		if g.Name == "" {
			continue
		}
		if table.Import(g.Code, g.Name) {
			result.Stats.GranteesImported++
		}
		name, ok := table.Lookup(g.Code)
		if !ok {
			continue
		}
		filed := catalogs.Brand{Name: name, GranteeCode: g.Code, FullName: g.Name}

		if owner, ok := brands.ByGranteeCode(g.Code); ok {
			p.updateBrand(ctx, brands, owner, filed, types.GranteeExtractID, result)
			continue
		}
		if named, ok := brands.Get(name); ok {
			p.updateBrand(ctx, brands, named, filed, types.GranteeExtractID, result)
			continue
		}
		if err := brands.Add(filed); err != nil {
			logger.Debug().Err(err).Str("grantee_code", g.Code).Msg("Skipped grantee brand")
			continue
		}
		result.Stats.BrandsCreated++
	}
}

// importBrands upserts brand sheet rows. Existing identities have blank
// fields filled and keep set values unless the sheet is the field's
// authority.
func (p *Pipeline) importBrands(ctx context.Context, table *grantee.Table, cat catalogs.Catalog, rows []catalogs.Brand, result *Result) {
	brands := cat.Brands()
	for _, b := range rows {
		if b.GranteeCode != "" {
			table.Import(b.GranteeCode, b.Name)
		}
		if existing, ok := brands.Get(b.Name); ok {
			p.updateBrand(ctx, brands, existing, b, types.CuratedID, result)
			continue
		}
		if err := brands.Add(b); err != nil {
			result.Report.Record(err)
			continue
		}
		result.Stats.BrandsCreated++
	}
}

// updateBrand backfills existing from src, applies the fields source is
// authoritative for and saves the identity when anything changed.
func (p *Pipeline) updateBrand(ctx context.Context, brands *catalogs.Brands, existing, src catalogs.Brand, source types.SourceID, result *Result) {
	changed := existing.Backfill(src) + p.overwrite(&existing, src, source)
	if changed == 0 {
		return
	}
	if err := brands.Set(existing); err != nil {
		logging.FromContext(ctx).Debug().Err(err).Str("brand", existing.Name).Msg("Skipped brand update")
		result.Report.Record(err)
		return
	}
	result.Stats.BrandsUpdated++
}
