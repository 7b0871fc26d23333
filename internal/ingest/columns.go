package ingest

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/hamcat/rigmap/internal/utils/ptr"
	"github.com/hamcat/rigmap/pkg/catalogs"
	"github.com/hamcat/rigmap/pkg/constants"
	"github.com/hamcat/rigmap/pkg/errors"
	"github.com/hamcat/rigmap/pkg/types"
)

type setter func(r *catalogs.Radio, v string)

// radioColumns maps lower-cased catalog headers to record fields.
var radioColumns = map[string]setter{
	"brand":                       func(r *catalogs.Radio, v string) { r.Brand = v },
	"model":                       func(r *catalogs.Radio, v string) { r.Model = v },
	"fcc_id":                      func(r *catalogs.Radio, v string) { r.FCCID = v },
	"intro year":                  func(r *catalogs.Radio, v string) { r.IntroYear = parseYear(v) },
	"freq. bands (tx)":            func(r *catalogs.Radio, v string) { r.FreqBandsTX = v },
	"power (w)":                   func(r *catalogs.Radio, v string) { r.PowerWatts = v },
	"satellite tracking":          func(r *catalogs.Radio, v string) { r.SatelliteTracking = v },
	"harmonic suppression status": func(r *catalogs.Radio, v string) { r.HarmonicSuppression = v },
	"gps":                         func(r *catalogs.Radio, v string) { r.GPS = v },
	"aprs":                        func(r *catalogs.Radio, v string) { r.APRS = v },
	"air band":                    func(r *catalogs.Radio, v string) { r.AirBand = v },
	"dmr":                         func(r *catalogs.Radio, v string) { r.DMR = v },
	"display":                     func(r *catalogs.Radio, v string) { r.Display = v },
	"battery (mah)":               func(r *catalogs.Radio, v string) { r.BatteryMAH = parseFirstInt(v) },
	"cost (approx)":               func(r *catalogs.Radio, v string) { r.CostApprox = v },
	"known rebadges / clones":     func(r *catalogs.Radio, v string) { r.RebadgesClones = v },
	"website":                     func(r *catalogs.Radio, v string) { r.Website = v },
	"notes":                       func(r *catalogs.Radio, v string) { r.Notes = v },
}

type brandSetter func(b *catalogs.Brand, v string)

// brandColumns maps lower-cased brand sheet headers to brand fields.
var brandColumns = map[string]brandSetter{
	"name":         func(b *catalogs.Brand, v string) { b.Name = v },
	"grantee_code": func(b *catalogs.Brand, v string) { b.GranteeCode = v },
	"full_name":    func(b *catalogs.Brand, v string) { b.FullName = v },
	"website":      func(b *catalogs.Brand, v string) { b.Website = v },
	"country":      func(b *catalogs.Brand, v string) { b.Country = v },
	"notes":        func(b *catalogs.Brand, v string) { b.Notes = v },
}

func headerKey(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	return strings.ToLower(strings.TrimSpace(h))
}

// radioLayout resolves a header row to per-column setters.
type radioLayout struct {
	source  types.SourceID
	name    string
	setters []setter
}

func newRadioLayout(source types.SourceID, name string, header []string) (*radioLayout, error) {
	l := &radioLayout{source: source, name: name, setters: make([]setter, len(header))}
	found := map[string]bool{}
	for i, h := range header {
		key := headerKey(h)
		if fn, ok := radioColumns[key]; ok {
			l.setters[i] = fn
			found[key] = true
		}
	}
	for _, required := range []string{"brand", "model"} {
		if !found[required] {
			return nil, &errors.ParseError{
				Format:  string(source),
				File:    name,
				Message: "missing required column " + strconv.Quote(required),
			}
		}
	}
	return l, nil
}

// radio builds a record from one row. Cells beyond the header are ignored.
func (l *radioLayout) radio(cells []string, line int) (catalogs.Radio, error) {
	r := catalogs.Radio{Source: l.source}
	for i, cell := range cells {
		if i >= len(l.setters) || l.setters[i] == nil {
			continue
		}
		if v := strings.TrimSpace(cell); v != "" {
			l.setters[i](&r, v)
		}
	}

	switch {
	case r.Brand == "":
		return r, errors.NewMalformedInputError(string(l.source), line, "Brand", "brand is blank")
	case r.Model == "":
		return r, errors.NewMalformedInputError(string(l.source), line, "Model", "model is blank")
	case len(r.Model) > constants.MaxModelLength:
		return r, errors.NewMalformedInputError(string(l.source), line, "Model", "model is too long")
	}
	return r, nil
}

// parseYear accepts "2019" and spreadsheet floats like "2019.0".
func parseYear(s string) *int {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || f <= 0 || f != float64(int(f)) {
		return nil
	}
	return ptr.Int(int(f))
}

var firstInt = regexp.MustCompile(`\d+`)

// parseFirstInt extracts the first run of digits, "3100 (Adv)" giving 3100.
func parseFirstInt(s string) *int {
	m := firstInt.FindString(s)
	if m == "" {
		return nil
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return nil
	}
	return ptr.Int(n)
}
