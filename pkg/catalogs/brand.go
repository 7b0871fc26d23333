package catalogs

import (
	"strings"

	"github.com/hamcat/rigmap/pkg/errors"
)

// Brand is the identity of a manufacturer or rebadger.
type Brand struct {
	Name        string `json:"name" yaml:"name"`                                     // Canonical display name, unique
	GranteeCode string `json:"grantee_code,omitempty" yaml:"grantee_code,omitempty"` // FCC grantee code, unique when set
	FullName    string `json:"full_name,omitempty" yaml:"full_name,omitempty"`       // Legal name as filed with the FCC
	Website     string `json:"website,omitempty" yaml:"website,omitempty"`
	Country     string `json:"country,omitempty" yaml:"country,omitempty"`
	Notes       string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Validate checks that the brand has a name.
func (b Brand) Validate() error {
	if strings.TrimSpace(b.Name) == "" {
		return &errors.ValidationError{Field: "name", Message: "cannot be empty"}
	}
	return nil
}

// Backfill copies into b every descriptive field that is blank on b and set on src.
// Name is never touched. It returns the number of fields filled.
func (b *Brand) Backfill(src Brand) int {
	filled := 0
	fill := func(dst *string, v string) {
		if strings.TrimSpace(*dst) == "" && strings.TrimSpace(v) != "" {
			*dst = v
			filled++
		}
	}
	fill(&b.GranteeCode, src.GranteeCode)
	fill(&b.FullName, src.FullName)
	fill(&b.Website, src.Website)
	fill(&b.Country, src.Country)
	fill(&b.Notes, src.Notes)
	return filled
}
