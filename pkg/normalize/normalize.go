// Package normalize canonicalizes brand and model strings for comparison.
//
// Normalized forms are only used as grouping keys. Stored records keep the
// spelling of their authoritative source.
package normalize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Brand trims surrounding whitespace and title-cases each word.
// "baofeng" and "BAOFENG " both normalize to "Baofeng".
func Brand(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	// Casers carry state and are not safe for concurrent use.
	return cases.Title(language.Und).String(s)
}

// Model trims surrounding whitespace and upper-cases.
func Model(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// Key is the normalized identity of a radio record.
type Key struct {
	Brand string
	Model string
}

// KeyOf builds the normalized key for a raw brand and model.
func KeyOf(brand, model string) Key {
	return Key{Brand: Brand(brand), Model: Model(model)}
}

// String renders the key as "Brand/MODEL".
func (k Key) String() string {
	return k.Brand + "/" + k.Model
}

// IsZero reports whether either half of the key is empty.
func (k Key) IsZero() bool {
	return k.Brand == "" || k.Model == ""
}
