package ingest

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hamcat/rigmap/pkg/constants"
	"github.com/hamcat/rigmap/pkg/errors"
)

// Kind classifies a skipped or flagged row.
type Kind string

// Row error kinds.
const (
	KindMalformed  Kind = "malformed_input"
	KindUnresolved Kind = "unresolved_grantee"
	KindOther      Kind = "other"
)

// Report aggregates per-row problems over a pass: a count per kind and the
// first few examples of each.
type Report struct {
	Name     string
	Rows     int // data rows seen
	Accepted int // rows that produced a record
	Counts   map[Kind]int
	Examples map[Kind][]string
}

// NewReport creates an empty report.
func NewReport(name string) *Report {
	return &Report{
		Name:     name,
		Counts:   make(map[Kind]int),
		Examples: make(map[Kind][]string),
	}
}

// KindOf classifies an error.
func KindOf(err error) Kind {
	switch {
	case errors.IsMalformedInput(err):
		return KindMalformed
	case errors.IsUnresolvedGrantee(err):
		return KindUnresolved
	default:
		return KindOther
	}
}

// Record counts err under its kind and keeps it as an example while there is room.
func (r *Report) Record(err error) {
	if err == nil {
		return
	}
	kind := KindOf(err)
	r.Counts[kind]++
	if len(r.Examples[kind]) < constants.MaxReportExamples {
		r.Examples[kind] = append(r.Examples[kind], err.Error())
	}
}

// Count returns the number of rows recorded under kind.
func (r *Report) Count(kind Kind) int {
	return r.Counts[kind]
}

// Total returns the number of rows recorded under any kind.
func (r *Report) Total() int {
	n := 0
	for _, c := range r.Counts {
		n += c
	}
	return n
}

// Merge adds other's counts and examples to r.
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	r.Rows += other.Rows
	r.Accepted += other.Accepted
	for kind, n := range other.Counts {
		r.Counts[kind] += n
	}
	for kind, ex := range other.Examples {
		room := constants.MaxReportExamples - len(r.Examples[kind])
		if room <= 0 {
			continue
		}
		if len(ex) > room {
			ex = ex[:room]
		}
		r.Examples[kind] = append(r.Examples[kind], ex...)
	}
}

// Kinds returns the recorded kinds in a stable order.
func (r *Report) Kinds() []Kind {
	kinds := make([]Kind, 0, len(r.Counts))
	for k := range r.Counts {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Summary renders the report for the terminal.
func (r *Report) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d rows read, %d accepted", r.Rows, r.Accepted)
	for _, kind := range r.Kinds() {
		fmt.Fprintf(&b, "\n  %s: %d", kind, r.Counts[kind])
		for _, ex := range r.Examples[kind] {
			fmt.Fprintf(&b, "\n    - %s", ex)
		}
	}
	return b.String()
}
