// Package pipeline runs one import pass: raw rows in, a reconciled catalog
// out.
//
// A pass imports grantee pairs and brand rows into the grantee table and
// brand identities, resolves FCC grant rows through the table, optionally
// backfills FCC IDs, and deduplicates the new rows together with the
// catalog's existing records. The catalog and table are changed only when
// the whole pass succeeds.
package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hamcat/rigmap/internal/ingest"
	"github.com/hamcat/rigmap/internal/metrics"
	"github.com/hamcat/rigmap/pkg/authority"
	"github.com/hamcat/rigmap/pkg/catalogs"
	"github.com/hamcat/rigmap/pkg/errors"
	"github.com/hamcat/rigmap/pkg/grantee"
	"github.com/hamcat/rigmap/pkg/logging"
	"github.com/hamcat/rigmap/pkg/provenance"
	"github.com/hamcat/rigmap/pkg/reconcile"
	"github.com/hamcat/rigmap/pkg/types"
)

// Pipeline holds the collaborators of an import pass.
type Pipeline struct {
	table     *grantee.Table
	policy    UnresolvedPolicy
	backfill  bool
	authority authority.Authority
	metrics   *metrics.Metrics
	tracker   provenance.Tracker
}

// New creates a pipeline resolving FCC IDs through table.
func New(table *grantee.Table, opts ...Option) (*Pipeline, error) {
	if table == nil {
		return nil, &errors.ValidationError{Field: "table", Message: "cannot be nil"}
	}
	p := &Pipeline{
		table:     table,
		policy:    UnresolvedKeep,
		authority: authority.New(),
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Result is the outcome of a pass.
type Result struct {
	RunID string

	// Reconcile holds the deduplicated records and merge statistics.
	Reconcile *reconcile.Result

	// Report aggregates row problems from the readers and the pass.
	Report *ingest.Report

	Stats Stats
}

// Stats counts what the pass did with the input rows.
type Stats struct {
	Resolved         int // FCC rows whose grantee code was found
	Unresolved       int // FCC rows kept under a provisional brand
	Dropped          int // FCC rows skipped
	TextRows         int // free-text rows passed through
	Backfilled       int // FCC IDs composed from the table
	GranteesImported int // codes new to the table
	BrandsCreated    int
	BrandsUpdated    int
}

// Run reconciles batch into cat. cat may be empty.
func (p *Pipeline) Run(ctx context.Context, cat catalogs.Catalog, batch *ingest.Batch) (res *Result, err error) {
	if cat == nil {
		return nil, &errors.ValidationError{Field: "catalog", Message: "cannot be nil"}
	}
	if batch == nil {
		batch = ingest.NewBatch("")
	}

	runID := uuid.NewString()
	ctx = logging.WithOperation(logging.WithRunID(ctx, runID), "import")
	logger := logging.FromContext(ctx)
	start := time.Now()
	defer func() {
		p.metrics.RecordOperation("import", time.Since(start), err)
	}()

	result := &Result{RunID: runID, Report: ingest.NewReport(batch.Name)}
	result.Report.Merge(batch.Report)

	work, err := cat.Copy()
	if err != nil {
		return nil, errors.WrapResource("copy", "catalog", "", err)
	}
	table := p.table.Clone()

	p.importGrantees(ctx, table, work, batch.Grantees, result)
	p.importBrands(ctx, table, work, batch.Brands, result)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records := work.Radios().List()
	records = append(records, p.resolveGrants(table, batch.Grants, result)...)
	for _, r := range batch.Radios {
		records = append(records, catalogs.DeepCopyRadio(r))
		result.Stats.TextRows++
	}
	if p.backfill {
		result.Stats.Backfilled = backfillFCCIDs(table, records)
	}

	opts := []reconcile.Option{reconcile.WithAuthority(p.authority)}
	if p.tracker != nil {
		opts = append(opts, reconcile.WithProvenance(p.tracker))
	}
	rec, err := reconcile.Deduplicate(ctx, records, opts...)
	if err != nil {
		return nil, err
	}
	rec.Operation = "import"
	result.Reconcile = rec

	work.Radios().Replace(rec.Records)
	if err := cat.ReplaceWith(work); err != nil {
		return nil, errors.WrapResource("commit", "catalog", "", err)
	}
	p.table.ReplaceWith(table)

	p.recordMetrics(result)
	logger.Info().
		Int("records", len(rec.Records)).
		Int("resolved", result.Stats.Resolved).
		Int("unresolved", result.Stats.Unresolved).
		Int("dropped", result.Stats.Dropped).
		Int("absorbed", rec.Metadata.Stats.Absorbed).
		Int("skipped_rows", result.Report.Total()).
		Msg("Import pass complete")
	return result, nil
}

// resolveGrants turns FCC grant rows into radios.
func (p *Pipeline) resolveGrants(table *grantee.Table, grants []ingest.Grant, result *Result) []catalogs.Radio {
	out := make([]catalogs.Radio, 0, len(grants))
	for _, g := range grants {
		radio := catalogs.Radio{
			FCCID:       g.FCCID,
			FreqBandsTX: ingest.BandLabel(g.Bands()),
			Notes:       g.Notes(),
			Source:      types.FCCGrantID,
		}

		res, err := table.Parse(g.FCCID)
		if err == nil {
			radio.Brand = res.Brand
			radio.Model = res.Model
			result.Stats.Resolved++
			out = append(out, radio)
			continue
		}

		result.Report.Record(err)
		code, model := grantee.GuessCode(g.FCCID)
		if p.policy == UnresolvedDrop || code == "" || model == "" {
			result.Stats.Dropped++
			continue
		}
		radio.Brand = code
		radio.Model = model
		result.Stats.Unresolved++
		out = append(out, radio)
	}
	return out
}

// backfillFCCIDs fills blank FCC IDs from the brand's grantee code.
func backfillFCCIDs(table *grantee.Table, records []catalogs.Radio) int {
	n := 0
	for i := range records {
		if records[i].FCCID != "" {
			continue
		}
		if id, ok := table.GenerateFCCID(records[i].Brand, records[i].Model); ok {
			records[i].FCCID = id
			n++
		}
	}
	return n
}

func (p *Pipeline) recordMetrics(result *Result) {
	if p.metrics == nil {
		return
	}
	for _, r := range result.Reconcile.Records {
		if r.Source != types.StoreID {
			p.metrics.RecordRows(string(r.Source), metrics.OutcomeAccepted, 1)
		}
	}
	p.metrics.RecordRows("input", metrics.OutcomeMalformed, result.Report.Count(ingest.KindMalformed))
	p.metrics.RecordRows(string(types.FCCGrantID), metrics.OutcomeUnresolved, result.Stats.Unresolved)
	p.metrics.RecordRows(string(types.FCCGrantID), metrics.OutcomeDropped, result.Stats.Dropped)
	p.metrics.RecordResult(result.Reconcile)
}
