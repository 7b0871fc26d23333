package reconcile

import (
	"fmt"
	"time"

	"github.com/hamcat/rigmap/pkg/catalogs"
	"github.com/hamcat/rigmap/pkg/provenance"
)

// Result is the outcome of a reconciliation operation.
type Result struct {
	// Operation is "dedupe", "rename", "clean-prefix" or "sync-brands".
	Operation string

	// Records is the full record set after the operation.
	Records []catalogs.Radio

	// Superseded are the records absorbed into a survivor. They carry their
	// storage IDs so a store can delete them.
	Superseded []catalogs.Radio

	// CreatedBrands are brand identities added by the operation.
	CreatedBrands []catalogs.Brand

	// Provenance is a snapshot of the tracker, nil when tracking was off.
	Provenance provenance.Map

	Metadata ResultMetadata
}

// ResultMetadata contains metadata about the operation.
type ResultMetadata struct {
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	// Partition is the normalized brand the operation was restricted to.
	Partition string

	Stats Statistics
}

// Statistics counts what an operation did.
type Statistics struct {
	RecordsIn       int
	RecordsOut      int
	Groups          int // distinct keys inside the partition
	MergedGroups    int // groups that had more than one record
	Absorbed        int // records folded into a survivor
	FieldsAdopted   int
	FieldsKept      int // conflicting incoming values set aside
	NotesAppended   int
	Renamed         int
	PrefixesCleaned int
	BrandsCreated   int
	BrandsMerged    int
	PartitionSize   int // records in the partition after the operation
}

func newResult(operation string, o *options) *Result {
	return &Result{
		Operation: operation,
		Metadata: ResultMetadata{
			StartTime: time.Now(),
			Partition: o.partition,
		},
	}
}

// finalize stamps the end time and fills derived counters.
func (r *Result) finalize(o *options) {
	r.Metadata.EndTime = time.Now()
	r.Metadata.Duration = r.Metadata.EndTime.Sub(r.Metadata.StartTime)
	r.Metadata.Stats.RecordsOut = len(r.Records)
	r.Metadata.Stats.Absorbed = len(r.Superseded)
	if o.partition != "" {
		n := 0
		for _, rec := range r.Records {
			if o.inPartition(rec.Brand) {
				n++
			}
		}
		r.Metadata.Stats.PartitionSize = n
	}
	if o.tracker != nil {
		r.Provenance = o.tracker.Map()
	}
}

// HasChanges reports whether the operation changed anything.
func (r *Result) HasChanges() bool {
	s := r.Metadata.Stats
	return s.Absorbed > 0 || s.Renamed > 0 || s.PrefixesCleaned > 0 || s.BrandsCreated > 0 || s.BrandsMerged > 0
}

// Summary returns a one-line description of the result.
func (r *Result) Summary() string {
	s := r.Metadata.Stats
	switch r.Operation {
	case "rename":
		return fmt.Sprintf("renamed %d records, merged %d collisions; %d records now under %s",
			s.Renamed, s.Absorbed, s.PartitionSize, r.Metadata.Partition)
	case "clean-prefix":
		return fmt.Sprintf("cleaned %d model names, merged %d duplicates", s.PrefixesCleaned, s.Absorbed)
	case "sync-brands":
		return fmt.Sprintf("created %d brand identities", s.BrandsCreated)
	default:
		return fmt.Sprintf("%d records in, %d out; %d absorbed across %d groups",
			s.RecordsIn, s.RecordsOut, s.Absorbed, s.MergedGroups)
	}
}
