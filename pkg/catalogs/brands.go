package catalogs

import (
	"sort"
	"sync"

	"github.com/hamcat/rigmap/pkg/errors"
)

// Brands is a concurrent safe set of brand identities keyed by name.
// Grantee codes are unique across the set.
type Brands struct {
	mu     sync.RWMutex
	brands map[string]*Brand
	codes  map[string]string // grantee code -> brand name
}

// NewBrands creates a Brands set, adding any brands given.
func NewBrands(brands ...Brand) *Brands {
	b := &Brands{}
	b.reset(brands)
	return b
}

// Get returns a copy of the brand with the given name and whether it exists.
func (b *Brands) Get(name string) (Brand, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	brand, ok := b.brands[name]
	if !ok {
		return Brand{}, false
	}
	return *brand, true
}

// ByGranteeCode returns the brand owning code.
func (b *Brands) ByGranteeCode(code string) (Brand, bool) {
	if code == "" {
		return Brand{}, false
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	brand, ok := b.brands[b.codes[code]]
	if !ok {
		return Brand{}, false
	}
	return *brand, true
}

// Add inserts a new brand. It fails if the name exists or the grantee code
// is already owned by another brand.
func (b *Brands) Add(brand Brand) error {
	if err := brand.Validate(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.brands[brand.Name]; exists {
		return &errors.AlreadyExistsError{Resource: "brand", ID: brand.Name}
	}
	if err := b.checkCode(brand.Name, brand.GranteeCode); err != nil {
		return err
	}
	b.put(brand)
	return nil
}

// Set inserts or replaces a brand (upsert semantics).
func (b *Brands) Set(brand Brand) error {
	if err := brand.Validate(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.checkCode(brand.Name, brand.GranteeCode); err != nil {
		return err
	}
	b.put(brand)
	return nil
}

// Delete removes a brand by name.
func (b *Brands) Delete(name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	existing, exists := b.brands[name]
	if !exists {
		return &errors.NotFoundError{Resource: "brand", ID: name}
	}
	b.dropCode(existing)
	delete(b.brands, name)
	return nil
}

// Exists checks if a brand exists.
func (b *Brands) Exists(name string) bool {
	b.mu.RLock()
	_, ok := b.brands[name]
	b.mu.RUnlock()
	return ok
}

// Len returns the number of brands.
func (b *Brands) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.brands)
}

// List returns copies of all brands sorted by name.
func (b *Brands) List() []Brand {
	b.mu.RLock()
	brands := make([]Brand, 0, len(b.brands))
	for _, brand := range b.brands {
		brands = append(brands, *brand)
	}
	b.mu.RUnlock()

	sort.Slice(brands, func(i, j int) bool {
		return brands[i].Name < brands[j].Name
	})
	return brands
}

// Replace swaps the whole set for the given brands.
func (b *Brands) Replace(brands []Brand) {
	b.mu.Lock()
	b.reset(brands)
	b.mu.Unlock()
}

// reset must be called with the lock held or before b is shared.
func (b *Brands) reset(brands []Brand) {
	b.brands = make(map[string]*Brand, len(brands))
	b.codes = make(map[string]string, len(brands))
	for _, brand := range brands {
		b.put(brand)
	}
}

// put must be called with the lock held.
func (b *Brands) put(brand Brand) {
	if old, ok := b.brands[brand.Name]; ok {
		b.dropCode(old)
	}
	b.brands[brand.Name] = &brand
	if brand.GranteeCode != "" {
		b.codes[brand.GranteeCode] = brand.Name
	}
}

// dropCode must be called with the lock held.
func (b *Brands) dropCode(brand *Brand) {
	if brand.GranteeCode != "" && b.codes[brand.GranteeCode] == brand.Name {
		delete(b.codes, brand.GranteeCode)
	}
}

// checkCode must be called with the lock held.
func (b *Brands) checkCode(name, code string) error {
	if code == "" {
		return nil
	}
	if owner, ok := b.codes[code]; ok && owner != name {
		return &errors.ValidationError{
			Field:   "grantee_code",
			Value:   code,
			Message: "already owned by brand " + owner,
		}
	}
	return nil
}
