package catalogs

// Reader provides read-only access to catalog data.
type Reader interface {
	Radios() *Radios
	Brands() *Brands

	// Brand returns the brand identity with the given name.
	Brand(name string) (Brand, error)
}

// Writer provides write operations for catalog data.
type Writer interface {
	// AddRadio appends a radio; duplicate keys are allowed until the next dedup pass.
	AddRadio(radio Radio) error

	// SetBrand upserts a brand identity.
	SetBrand(brand Brand) error

	// DeleteBrand removes a brand identity by name.
	DeleteBrand(name string) error
}

// Merger provides whole-catalog replacement.
type Merger interface {
	// ReplaceWith replaces this catalog's contents with source's contents.
	ReplaceWith(source Reader) error
}

// Copier provides catalog copying capabilities.
type Copier interface {
	// Copy returns a deep copy of the catalog.
	Copy() (Catalog, error)
}

// Catalog is the complete interface combining all catalog capabilities.
type Catalog interface {
	Reader
	Writer
	Merger
	Copier
}
