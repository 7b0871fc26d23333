// Package catalogs holds the radio device catalog: radio records keyed by
// (brand, model) and the brand identities they reference.
//
// The catalog is an in-memory working set. Collections are safe for
// concurrent use; reconciliation operations work on a Copy and commit with
// ReplaceWith so a failed pass leaves the original untouched.
//
// Example usage:
//
//	cat := catalogs.New(catalogs.WithRadios(radios...))
//	work, _ := cat.Copy()
//	// ... mutate work ...
//	if err := cat.ReplaceWith(work); err != nil {
//	    return err
//	}
package catalogs

import (
	"github.com/hamcat/rigmap/pkg/errors"
)

// Compile-time interface checks.
var (
	_ Catalog = (*catalog)(nil)
	_ Reader  = (*catalog)(nil)
	_ Writer  = (*catalog)(nil)
	_ Merger  = (*catalog)(nil)
	_ Copier  = (*catalog)(nil)
)

type catalog struct {
	radios *Radios
	brands *Brands
}

// Option configures a catalog.
type Option func(*catalog)

// WithRadios seeds the catalog with radio records.
func WithRadios(radios ...Radio) Option {
	return func(c *catalog) {
		c.radios = NewRadios(radios...)
	}
}

// WithBrands seeds the catalog with brand identities.
func WithBrands(brands ...Brand) Option {
	return func(c *catalog) {
		c.brands = NewBrands(brands...)
	}
}

// New creates an in-memory catalog.
func New(opts ...Option) Catalog {
	c := &catalog{
		radios: NewRadios(),
		brands: NewBrands(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Radios returns the radio collection.
func (c *catalog) Radios() *Radios {
	return c.radios
}

// Brands returns the brand collection.
func (c *catalog) Brands() *Brands {
	return c.brands
}

// Brand returns the brand identity with the given name.
func (c *catalog) Brand(name string) (Brand, error) {
	brand, ok := c.brands.Get(name)
	if !ok {
		return Brand{}, &errors.NotFoundError{Resource: "brand", ID: name}
	}
	return brand, nil
}

// AddRadio appends a radio.
func (c *catalog) AddRadio(radio Radio) error {
	return c.radios.Add(radio)
}

// SetBrand upserts a brand identity.
func (c *catalog) SetBrand(brand Brand) error {
	return c.brands.Set(brand)
}

// DeleteBrand removes a brand identity.
func (c *catalog) DeleteBrand(name string) error {
	return c.brands.Delete(name)
}

// ReplaceWith swaps both collections for copies of source's contents.
func (c *catalog) ReplaceWith(source Reader) error {
	if source == nil {
		return &errors.ValidationError{Field: "source", Message: "cannot be nil"}
	}
	radios := source.Radios().List()
	brands := source.Brands().List()

	c.radios.Replace(radios)
	c.brands.Replace(brands)
	return nil
}

// Copy returns a deep copy of the catalog.
func (c *catalog) Copy() (Catalog, error) {
	return &catalog{
		radios: NewRadios(c.radios.List()...),
		brands: NewBrands(c.brands.List()...),
	}, nil
}
