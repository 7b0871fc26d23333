// Package grantee resolves FCC grantee codes to brand identities and splits
// FCC IDs into grantee code and model.
//
// A Table is an explicit value passed to whoever needs it. It is seeded from
// the curated table, backfilled from the FCC grantee extract, and retargeted
// when a brand is renamed.
package grantee

import (
	"sort"
	"strings"
	"sync"

	"github.com/hamcat/rigmap/pkg/normalize"
)

// Table maps grantee codes to canonical brand names.
type Table struct {
	mu      sync.RWMutex
	names   map[string]string // code -> canonical brand name
	aliases map[string]string // normalized brand -> code
	fulls   map[string]string // code -> legal name
	noFCC   map[string]bool   // normalized brand
	codes   []string          // longest first, then lexical
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{
		names:   make(map[string]string),
		aliases: make(map[string]string),
		fulls:   make(map[string]string),
		noFCC:   make(map[string]bool),
	}
}

// NewDefaultTable returns a table seeded from the embedded curated list.
func NewDefaultTable() (*Table, error) {
	c, err := DefaultCurated()
	if err != nil {
		return nil, err
	}
	t := NewTable()
	t.Seed(c)
	return t, nil
}

// Seed loads curated entries. The first brand given for a code becomes its
// canonical name; later brands for the same code are recorded as aliases.
// Curated names override names previously imported from the extract.
func (t *Table) Seed(c *Curated) {
	t.mu.Lock()
	defer t.mu.Unlock()

	seen := make(map[string]bool)
	for _, e := range c.Grantees {
		code := strings.TrimSpace(e.Code)
		brand := strings.TrimSpace(e.Brand)
		if code == "" || brand == "" {
			continue
		}
		if !seen[code] {
			seen[code] = true
			t.setName(code, brand)
		}
		if _, ok := t.aliases[normalize.Brand(brand)]; !ok {
			t.aliases[normalize.Brand(brand)] = code
		}
		if e.FullName != "" && t.fulls[code] == "" {
			t.fulls[code] = strings.TrimSpace(e.FullName)
		}
	}
	for _, b := range c.NoFCCBrands {
		t.noFCC[normalize.Brand(b)] = true
	}
}

// Import records a code/name pair from the authoritative grantee extract.
// The first non-blank name for a code wins and curated names are never
// replaced. It reports whether the table changed.
func (t *Table) Import(code, name string) bool {
	code = strings.TrimSpace(code)
	name = strings.TrimSpace(name)
	if code == "" || name == "" {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.fulls[code] == "" {
		t.fulls[code] = name
	}
	if _, exists := t.names[code]; exists {
		return false
	}
	t.setName(code, name)
	if _, ok := t.aliases[normalize.Brand(name)]; !ok {
		t.aliases[normalize.Brand(name)] = code
	}
	return true
}

// Assign makes name the canonical brand of code, replacing any curated or
// imported name. The replaced name stays an alias of code. It is used for
// codes owned by a persisted brand identity, which may have been renamed
// since the curated table was written. It reports whether the table changed.
func (t *Table) Assign(code, name string) bool {
	code = strings.TrimSpace(code)
	name = strings.TrimSpace(name)
	if code == "" || name == "" {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	prev, exists := t.names[code]
	if exists && prev == name {
		return false
	}
	if exists {
		if _, ok := t.aliases[normalize.Brand(prev)]; !ok {
			t.aliases[normalize.Brand(prev)] = code
		}
	}
	t.setName(code, name)
	if _, ok := t.aliases[normalize.Brand(name)]; !ok {
		t.aliases[normalize.Brand(name)] = code
	}
	return true
}

// Lookup returns the canonical brand name for an exact code.
func (t *Table) Lookup(code string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	name, ok := t.names[code]
	return name, ok
}

// FullName returns the legal name filed for a code, if known.
func (t *Table) FullName(code string) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.fulls[code]
}

// Code returns the grantee code for a brand or one of its aliases.
func (t *Table) Code(brand string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	code, ok := t.aliases[normalize.Brand(brand)]
	return code, ok
}

// NoFCC reports whether a brand is known to sell no FCC-certified radios.
func (t *Table) NoFCC(brand string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.noFCC[normalize.Brand(brand)]
}

// Codes returns all codes in match order: longest first, ties lexical.
func (t *Table) Codes() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]string(nil), t.codes...)
}

// Len returns the number of codes.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.names)
}

// Entries returns one entry per code, sorted by code.
func (t *Table) Entries() []Entry {
	t.mu.RLock()
	out := make([]Entry, 0, len(t.names))
	for code, name := range t.names {
		out = append(out, Entry{Brand: name, Code: code, FullName: t.fulls[code]})
	}
	t.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// CodesFor returns every code whose canonical name is brand, sorted.
func (t *Table) CodesFor(brand string) []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var out []string
	for code, name := range t.names {
		if name == brand {
			out = append(out, code)
		}
	}
	sort.Strings(out)
	return out
}

// Rename retargets every code owned by oldName to newName and returns how
// many codes moved. Aliases of oldName keep resolving.
func (t *Table) Rename(oldName, newName string) int {
	if oldName == newName {
		return 0
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	moved := 0
	for code, name := range t.names {
		if name != oldName {
			continue
		}
		t.names[code] = newName
		if _, ok := t.aliases[normalize.Brand(newName)]; !ok {
			t.aliases[normalize.Brand(newName)] = code
		}
		moved++
	}
	return moved
}

// Clone returns an independent copy of the table.
func (t *Table) Clone() *Table {
	t.mu.RLock()
	defer t.mu.RUnlock()

	c := NewTable()
	for k, v := range t.names {
		c.names[k] = v
	}
	for k, v := range t.aliases {
		c.aliases[k] = v
	}
	for k, v := range t.fulls {
		c.fulls[k] = v
	}
	for k, v := range t.noFCC {
		c.noFCC[k] = v
	}
	c.codes = append([]string(nil), t.codes...)
	return c
}

// ReplaceWith makes t an independent copy of src.
func (t *Table) ReplaceWith(src *Table) {
	if src == nil || src == t {
		return
	}
	c := src.Clone()

	t.mu.Lock()
	defer t.mu.Unlock()
	t.names = c.names
	t.aliases = c.aliases
	t.fulls = c.fulls
	t.noFCC = c.noFCC
	t.codes = c.codes
}

// setName must be called with the write lock held.
func (t *Table) setName(code, name string) {
	if _, exists := t.names[code]; !exists {
		t.codes = insertCode(t.codes, code)
	}
	t.names[code] = name
}

// insertCode adds code to codes, keeping longest-first then lexical order.
func insertCode(codes []string, code string) []string {
	i := sort.Search(len(codes), func(i int) bool {
		if len(codes[i]) != len(code) {
			return len(codes[i]) < len(code)
		}
		return codes[i] >= code
	})
	codes = append(codes, "")
	copy(codes[i+1:], codes[i:])
	codes[i] = code
	return codes
}
