package reconcile

import (
	"context"
	"sort"

	"github.com/hamcat/rigmap/pkg/authority"
	"github.com/hamcat/rigmap/pkg/catalogs"
	"github.com/hamcat/rigmap/pkg/errors"
	"github.com/hamcat/rigmap/pkg/logging"
	"github.com/hamcat/rigmap/pkg/normalize"
	"github.com/hamcat/rigmap/pkg/types"
)

type group struct {
	key     normalize.Key
	members []catalogs.Radio
}

// Deduplicate collapses records that share a normalized (brand, model) key.
//
// Records are grouped in discovery order. Within a group the most complete
// record survives, ties going to the earlier record, and every other member
// is merged into it in rank order. Groups are emitted where their first
// member appeared. The output is checked with Validate before it is
// returned; running Deduplicate on its own output changes nothing.
func Deduplicate(ctx context.Context, records []catalogs.Radio, opts ...Option) (*Result, error) {
	o, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	return deduplicate(ctx, records, o)
}

func deduplicate(ctx context.Context, records []catalogs.Radio, o *options) (*Result, error) {
	logger := logging.FromContext(ctx)
	result := newResult("dedupe", o)
	stats := &result.Metadata.Stats
	stats.RecordsIn = len(records)

	ordered := discoveryOrder(records, o.authority)
	for i, r := range ordered {
		if r.Key().IsZero() {
			return nil, &errors.ValidationError{Field: "records", Value: i, Message: "record has a blank brand or model"}
		}
	}

	index := make(map[normalize.Key]int)
	var groups []*group
	for _, r := range ordered {
		if !o.inPartition(r.Brand) {
			continue
		}
		k := r.Key()
		if i, ok := index[k]; ok {
			groups[i].members = append(groups[i].members, r)
			continue
		}
		index[k] = len(groups)
		groups = append(groups, &group{key: k, members: []catalogs.Radio{r}})
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	merger := newMerger(o, stats)
	survivors := make(map[normalize.Key]catalogs.Radio, len(groups))
	for _, g := range groups {
		survivor, absorbed := collapse(merger, g.members)
		survivors[g.key] = survivor
		if len(absorbed) == 0 {
			continue
		}
		stats.MergedGroups++
		result.Superseded = append(result.Superseded, absorbed...)
		logger.Debug().
			Str("key", g.key.String()).
			Int("members", len(g.members)).
			Int("completeness", survivor.Completeness()).
			Msg("Merged duplicate records")
	}
	stats.Groups = len(groups)

	emitted := make(map[normalize.Key]bool, len(groups))
	result.Records = make([]catalogs.Radio, 0, len(ordered))
	for _, r := range ordered {
		if !o.inPartition(r.Brand) {
			result.Records = append(result.Records, r)
			continue
		}
		k := r.Key()
		if emitted[k] {
			continue
		}
		emitted[k] = true
		result.Records = append(result.Records, survivors[k])
	}

	if err := Validate(result.Records); err != nil {
		logger.Error().Err(err).Msg("Duplicate keys survived deduplication")
		return nil, err
	}

	result.finalize(o)
	logger.Info().
		Str("partition", o.partition).
		Int("records_in", stats.RecordsIn).
		Int("records_out", stats.RecordsOut).
		Int("absorbed", stats.Absorbed).
		Msg("Deduplicated records")
	return result, nil
}

// collapse ranks members by completeness and folds the rest into the first.
func collapse(m *Merger, members []catalogs.Radio) (catalogs.Radio, []catalogs.Radio) {
	if len(members) == 1 {
		return members[0], nil
	}

	ranked := append([]catalogs.Radio(nil), members...)
	scores := make([]int, len(ranked))
	for i := range ranked {
		scores[i] = ranked[i].Completeness()
	}
	order := make([]int, len(ranked))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	survivor := ranked[order[0]]
	absorbed := make([]catalogs.Radio, 0, len(ranked)-1)
	for _, i := range order[1:] {
		survivor = m.Merge(survivor, ranked[i])
		absorbed = append(absorbed, ranked[i])
	}
	return survivor, absorbed
}

// discoveryOrder returns deep copies of records, stable-sorted by source rank
// when an authority is given.
func discoveryOrder(records []catalogs.Radio, a authority.Authority) []catalogs.Radio {
	out := make([]catalogs.Radio, len(records))
	for i, r := range records {
		out[i] = catalogs.DeepCopyRadio(r)
	}
	if a == nil {
		return out
	}
	sort.SliceStable(out, func(i, j int) bool {
		return a.Rank(out[i].Source, types.ResourceTypeRadio) > a.Rank(out[j].Source, types.ResourceTypeRadio)
	})
	return out
}

// Validate reports the first normalized key held by more than one record.
func Validate(records []catalogs.Radio) error {
	counts := make(map[normalize.Key]int, len(records))
	for _, r := range records {
		counts[r.Key()]++
	}
	for _, r := range records {
		k := r.Key()
		if counts[k] > 1 {
			return &errors.InvariantViolationError{Key: k.String(), Count: counts[k]}
		}
	}
	return nil
}
