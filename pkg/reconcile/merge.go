package reconcile

import (
	"strings"

	"github.com/hamcat/rigmap/pkg/authority"
	"github.com/hamcat/rigmap/pkg/catalogs"
	"github.com/hamcat/rigmap/pkg/provenance"
	"github.com/hamcat/rigmap/pkg/types"
)

// Merge folds incoming into existing and returns the result. Neither input
// is modified.
//
// For every mergeable field other than notes, a blank value on existing is
// filled from incoming and a set value is kept. Incoming notes are appended
// on a new line unless existing notes already contain them. Brand, Model,
// ID and Source always come from existing.
func Merge(existing, incoming catalogs.Radio) catalogs.Radio {
	return (&Merger{}).Merge(existing, incoming)
}

// Merger is Merge with optional provenance tracking and counters.
type Merger struct {
	tracker   provenance.Tracker
	authority authority.Authority
	stats     *Statistics
}

// NewMerger creates a Merger. Both arguments may be nil.
func NewMerger(tracker provenance.Tracker, a authority.Authority) *Merger {
	return &Merger{tracker: tracker, authority: a}
}

func newMerger(o *options, stats *Statistics) *Merger {
	return &Merger{tracker: o.tracker, authority: o.authority, stats: stats}
}

// Merge folds incoming into existing.
func (m *Merger) Merge(existing, incoming catalogs.Radio) catalogs.Radio {
	out := catalogs.DeepCopyRadio(existing)
	in := catalogs.DeepCopyRadio(incoming)
	id := out.Key().String()

	for _, field := range catalogs.MergeableFields {
		if field == catalogs.NotesField {
			continue
		}
		switch {
		case in.IsBlank(field):
		case out.IsBlank(field):
			out.CopyField(&in, field)
			m.count(func(s *Statistics) { s.FieldsAdopted++ })
			m.track(id, field, in.Source, provenance.Provenance{
				Value:  in.FieldValue(field),
				Reason: provenance.ReasonAdopted,
			})
		case out.FieldString(field) != in.FieldString(field):
			m.count(func(s *Statistics) { s.FieldsKept++ })
			m.track(id, field, in.Source, provenance.Provenance{
				Value:         in.FieldValue(field),
				PreviousValue: out.FieldValue(field),
				Reason:        provenance.ReasonKept,
			})
		}
	}

	if notes, ok := mergeNotes(out.Notes, in.Notes); ok {
		prev := out.Notes
		out.Notes = notes
		m.count(func(s *Statistics) { s.NotesAppended++ })
		m.track(id, catalogs.NotesField, in.Source, provenance.Provenance{
			Value:         notes,
			PreviousValue: prev,
			Reason:        provenance.ReasonAppended,
		})
	}
	return out
}

// mergeNotes appends incoming to existing on a new line unless it is blank
// or already a substring of existing.
func mergeNotes(existing, incoming string) (string, bool) {
	add := strings.TrimSpace(incoming)
	if add == "" || strings.Contains(existing, add) {
		return existing, false
	}
	if strings.TrimSpace(existing) == "" {
		return add, true
	}
	return existing + "\n" + add, true
}

func (m *Merger) count(fn func(*Statistics)) {
	if m.stats != nil {
		fn(m.stats)
	}
}

func (m *Merger) track(id, field string, source types.SourceID, p provenance.Provenance) {
	if m.tracker == nil {
		return
	}
	p.Source = source
	p.Field = field
	if m.authority != nil {
		p.Authority = m.authority.Rank(source, types.ResourceTypeRadio)
	}
	m.tracker.Track(types.ResourceTypeRadio, id, field, p)
}
