package catalogs

import (
	"sync"

	"github.com/hamcat/rigmap/pkg/normalize"
)

// Radios is a concurrent safe, insertion-ordered list of radio records.
// Duplicate keys are allowed while a pass is in progress; the reconcile
// package is responsible for collapsing them.
type Radios struct {
	mu     sync.RWMutex
	radios []*Radio
}

// NewRadios creates a Radios list holding copies of the given records.
func NewRadios(radios ...Radio) *Radios {
	r := &Radios{radios: make([]*Radio, 0, len(radios))}
	for _, radio := range radios {
		c := DeepCopyRadio(radio)
		r.radios = append(r.radios, &c)
	}
	return r
}

// Add appends a radio after validating its identity.
func (r *Radios) Add(radio Radio) error {
	if err := radio.Validate(); err != nil {
		return err
	}
	c := DeepCopyRadio(radio)

	r.mu.Lock()
	r.radios = append(r.radios, &c)
	r.mu.Unlock()
	return nil
}

// Find returns copies of every radio whose normalized key equals key, in order.
func (r *Radios) Find(key normalize.Key) []Radio {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Radio
	for _, radio := range r.radios {
		if radio.Key() == key {
			out = append(out, DeepCopyRadio(*radio))
		}
	}
	return out
}

// ByBrand returns copies of every radio whose stored brand equals brand exactly.
func (r *Radios) ByBrand(brand string) []Radio {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Radio
	for _, radio := range r.radios {
		if radio.Brand == brand {
			out = append(out, DeepCopyRadio(*radio))
		}
	}
	return out
}

// Brands returns the distinct stored brand strings in first-appearance order.
func (r *Radios) Brands() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool)
	var out []string
	for _, radio := range r.radios {
		if !seen[radio.Brand] {
			seen[radio.Brand] = true
			out = append(out, radio.Brand)
		}
	}
	return out
}

// Len returns the number of radios.
func (r *Radios) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.radios)
}

// List returns deep copies of all radios in insertion order.
func (r *Radios) List() []Radio {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Radio, 0, len(r.radios))
	for _, radio := range r.radios {
		out = append(out, DeepCopyRadio(*radio))
	}
	return out
}

// Replace swaps the whole list for the given records.
func (r *Radios) Replace(radios []Radio) {
	next := make([]*Radio, 0, len(radios))
	for _, radio := range radios {
		c := DeepCopyRadio(radio)
		next = append(next, &c)
	}

	r.mu.Lock()
	r.radios = next
	r.mu.Unlock()
}

// Clear removes all radios.
func (r *Radios) Clear() {
	r.mu.Lock()
	r.radios = r.radios[:0]
	r.mu.Unlock()
}
