package catalogs

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/hamcat/rigmap/pkg/constants"
	"github.com/hamcat/rigmap/pkg/errors"
	"github.com/hamcat/rigmap/pkg/normalize"
	"github.com/hamcat/rigmap/pkg/types"
)

// Radio is one device in the catalog, identified by (Brand, Model).
type Radio struct {
	ID    uint   `json:"id,omitempty" yaml:"-"`         // Storage row id, zero until persisted
	Brand string `json:"brand" yaml:"brand"`             // Brand display name as stored
	Model string `json:"model" yaml:"model"`             // Model designation as stored
	FCCID string `json:"fcc_id,omitempty" yaml:"fcc_id,omitempty"`

	IntroYear           *int   `json:"intro_year,omitempty" yaml:"intro_year,omitempty"`
	FreqBandsTX         string `json:"freq_bands_tx,omitempty" yaml:"freq_bands_tx,omitempty"`
	PowerWatts          string `json:"power_watts,omitempty" yaml:"power_watts,omitempty"`
	SatelliteTracking   string `json:"satellite_tracking,omitempty" yaml:"satellite_tracking,omitempty"`
	HarmonicSuppression string `json:"harmonic_suppression,omitempty" yaml:"harmonic_suppression,omitempty"`
	GPS                 string `json:"gps,omitempty" yaml:"gps,omitempty"`
	APRS                string `json:"aprs,omitempty" yaml:"aprs,omitempty"`
	AirBand             string `json:"air_band,omitempty" yaml:"air_band,omitempty"`
	DMR                 string `json:"dmr,omitempty" yaml:"dmr,omitempty"`
	Display             string `json:"display,omitempty" yaml:"display,omitempty"`
	BatteryMAH          *int   `json:"battery_mah,omitempty" yaml:"battery_mah,omitempty"`
	CostApprox          string `json:"cost_approx,omitempty" yaml:"cost_approx,omitempty"`
	RebadgesClones      string `json:"rebadges_clones,omitempty" yaml:"rebadges_clones,omitempty"`
	Website             string `json:"website,omitempty" yaml:"website,omitempty"`
	Notes               string `json:"notes,omitempty" yaml:"notes,omitempty"`

	Source types.SourceID `json:"source,omitempty" yaml:"source,omitempty"` // Reader that produced the row
}

// MergeableFields lists, by Go field name, every attribute that participates
// in merge and completeness scoring. Identity fields (Brand, Model) and
// bookkeeping fields (ID, Source) are excluded.
var MergeableFields = []string{
	"FCCID",
	"IntroYear",
	"FreqBandsTX",
	"PowerWatts",
	"SatelliteTracking",
	"HarmonicSuppression",
	"GPS",
	"APRS",
	"AirBand",
	"DMR",
	"Display",
	"BatteryMAH",
	"CostApprox",
	"RebadgesClones",
	"Website",
	"Notes",
}

// NotesField is the mergeable field that accumulates instead of keeping the first value.
const NotesField = "Notes"

// Key returns the normalized identity of the radio.
func (r Radio) Key() normalize.Key {
	return normalize.KeyOf(r.Brand, r.Model)
}

// Validate checks that the radio has a usable identity.
func (r Radio) Validate() error {
	if strings.TrimSpace(r.Brand) == "" {
		return &errors.ValidationError{Field: "brand", Message: "cannot be empty"}
	}
	if strings.TrimSpace(r.Model) == "" {
		return &errors.ValidationError{Field: "model", Value: r.Brand, Message: "cannot be empty"}
	}
	if len(r.Model) > constants.MaxModelLength {
		return &errors.ValidationError{Field: "model", Value: r.Model, Message: "too long"}
	}
	return nil
}

// IsBlank reports whether the named mergeable field has no value.
// Strings that are only whitespace count as blank.
func (r *Radio) IsBlank(field string) bool {
	return IsBlankValue(r.field(field))
}

// Completeness counts the non-blank mergeable fields.
func (r *Radio) Completeness() int {
	n := 0
	for _, f := range MergeableFields {
		if !r.IsBlank(f) {
			n++
		}
	}
	return n
}

// FieldString renders a mergeable field for logs and provenance.
func (r *Radio) FieldString(field string) string {
	v := r.field(field)
	switch v.Kind() {
	case reflect.String:
		return v.String()
	case reflect.Ptr:
		if v.IsNil() {
			return ""
		}
		return fmt.Sprint(v.Elem().Interface())
	default:
		return ""
	}
}

// FieldValue returns the raw value of a mergeable field.
func (r *Radio) FieldValue(field string) any {
	v := r.field(field)
	if !v.IsValid() {
		return nil
	}
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil
		}
		return v.Elem().Interface()
	}
	return v.Interface()
}

// CopyField sets field on r to the value src holds. Pointer fields are
// copied by value so the two radios never share storage.
func (r *Radio) CopyField(src *Radio, field string) {
	dst := r.field(field)
	from := src.field(field)
	if !dst.IsValid() || !from.IsValid() || !dst.CanSet() {
		return
	}
	if from.Kind() == reflect.Ptr && !from.IsNil() {
		cp := reflect.New(from.Elem().Type())
		cp.Elem().Set(from.Elem())
		dst.Set(cp)
		return
	}
	dst.Set(from)
}

func (r *Radio) field(name string) reflect.Value {
	return reflect.ValueOf(r).Elem().FieldByName(name)
}

// IsBlankValue reports whether v is a zero value, a nil pointer, or a
// whitespace-only string.
func IsBlankValue(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	default:
		return v.IsZero()
	}
}

// DeepCopyRadio returns a copy of r that shares no pointers with it.
func DeepCopyRadio(r Radio) Radio {
	c := r
	if r.IntroYear != nil {
		y := *r.IntroYear
		c.IntroYear = &y
	}
	if r.BatteryMAH != nil {
		b := *r.BatteryMAH
		c.BatteryMAH = &b
	}
	return c
}
