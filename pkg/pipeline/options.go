package pipeline

import (
	"strings"

	"github.com/hamcat/rigmap/internal/metrics"
	"github.com/hamcat/rigmap/pkg/authority"
	"github.com/hamcat/rigmap/pkg/errors"
	"github.com/hamcat/rigmap/pkg/provenance"
)

// UnresolvedPolicy decides what happens to FCC rows whose grantee code is
// not in the table.
type UnresolvedPolicy int

const (
	// UnresolvedKeep keeps the row under the text before its first "-" as a
	// provisional brand, so it stays available for manual correction.
	UnresolvedKeep UnresolvedPolicy = iota

	// UnresolvedDrop skips the row and counts it.
	UnresolvedDrop
)

// String returns the config spelling of the policy.
func (p UnresolvedPolicy) String() string {
	if p == UnresolvedDrop {
		return "drop"
	}
	return "keep"
}

// ParseUnresolvedPolicy parses "keep" or "drop".
func ParseUnresolvedPolicy(s string) (UnresolvedPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "keep":
		return UnresolvedKeep, nil
	case "drop":
		return UnresolvedDrop, nil
	}
	return UnresolvedKeep, &errors.ValidationError{Field: "unresolved", Value: s, Message: "must be keep or drop"}
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithUnresolvedPolicy sets the policy for unresolved FCC IDs.
func WithUnresolvedPolicy(policy UnresolvedPolicy) Option {
	return func(p *Pipeline) error {
		if policy != UnresolvedKeep && policy != UnresolvedDrop {
			return &errors.ValidationError{Field: "unresolved", Value: int(policy), Message: "unknown policy"}
		}
		p.policy = policy
		return nil
	}
}

// WithFCCIDBackfill composes FCC IDs for radios of brands with a known
// grantee code.
func WithFCCIDBackfill(enabled bool) Option {
	return func(p *Pipeline) error {
		p.backfill = enabled
		return nil
	}
}

// WithAuthority replaces the default source ranking used to order records
// before deduplication.
func WithAuthority(a authority.Authority) Option {
	return func(p *Pipeline) error {
		if a == nil {
			return &errors.ValidationError{Field: "authority", Message: "cannot be nil"}
		}
		p.authority = a
		return nil
	}
}

// WithMetrics records row and merge counters.
func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Pipeline) error {
		p.metrics = m
		return nil
	}
}

// WithProvenance records field-level provenance for every merge.
func WithProvenance(t provenance.Tracker) Option {
	return func(p *Pipeline) error {
		if t == nil {
			return &errors.ValidationError{Field: "tracker", Message: "cannot be nil"}
		}
		p.tracker = t
		return nil
	}
}
