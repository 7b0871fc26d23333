package ingest

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hamcat/rigmap/pkg/catalogs"
	"github.com/hamcat/rigmap/pkg/errors"
	"github.com/hamcat/rigmap/pkg/types"
)

func TestReadCatalogCSV(t *testing.T) {
	batch, err := ReadFile(context.Background(), filepath.Join("testdata", "catalog.csv"), FormatCatalogCSV)
	require.NoError(t, err)

	require.Len(t, batch.Radios, 3)
	assert.Equal(t, 4, batch.Report.Rows, "fully blank rows are not counted")
	assert.Equal(t, 3, batch.Report.Accepted)
	assert.Equal(t, 1, batch.Report.Count(KindMalformed))

	uv5r := batch.Radios[0]
	assert.Equal(t, "Baofeng", uv5r.Brand)
	assert.Equal(t, "UV-5R", uv5r.Model)
	assert.Equal(t, "2AJGM-UV5R", uv5r.FCCID)
	require.NotNil(t, uv5r.IntroYear)
	assert.Equal(t, 2012, *uv5r.IntroYear)
	assert.Equal(t, "VHF, UHF", uv5r.FreqBandsTX)
	assert.Equal(t, "Pofung UV-5R", uv5r.RebadgesClones)
	assert.Equal(t, types.CatalogCSVID, uv5r.Source)

	second := batch.Radios[1]
	assert.Equal(t, "baofeng", second.Brand, "readers keep brands as written")
	require.NotNil(t, second.BatteryMAH)
	assert.Equal(t, 3100, *second.BatteryMAH)
	assert.Nil(t, second.IntroYear)

	assert.Contains(t, batch.Report.Examples[KindMalformed][0], "brand is blank")
}

func TestReadCatalogCSVRequiresIdentityColumns(t *testing.T) {
	_, err := ReadCatalogCSV(strings.NewReader("Brand,FCC_ID\nIcom,AFJ705\n"), "bad.csv")
	var perr *errors.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Message, "model")

	_, err = ReadCatalogCSV(strings.NewReader(""), "empty.csv")
	assert.Error(t, err)
}

func TestReadCatalogCSVLazyQuotes(t *testing.T) {
	in := "Brand,Model,Notes\nIcom,IC-705,\"QRP \"portable\" rig\"\nYaesu,FT-60R,5\" whip\n"
	batch, err := ReadCatalogCSV(strings.NewReader(in), "quotes.csv")
	require.NoError(t, err)
	require.Len(t, batch.Radios, 2)
	assert.Equal(t, `QRP "portable" rig`, batch.Radios[0].Notes)
	assert.Equal(t, `5" whip`, batch.Radios[1].Notes)
}

func TestParseYearAndBattery(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"2019", 2019, true},
		{"2019.0", 2019, true},
		{"2019.5", 0, false},
		{"unknown", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		t.Run("year "+tt.in, func(t *testing.T) {
			got := parseYear(tt.in)
			if !tt.ok {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}

	assert.Equal(t, 3100, *parseFirstInt("3100 (Adv)"))
	assert.Equal(t, 1500, *parseFirstInt("approx 1500mAh"))
	assert.Nil(t, parseFirstInt("n/a"))
}

func TestReadMarkdown(t *testing.T) {
	in := `# Handhelds

Some intro text.

| Brand | Model | GPS | DMR | Notes |
|:------|:-----:|-----|-----|-------|
| Baofeng | UV-5R | No | | cheap |
| Tyt | MD-380 | | Tier II | |
|  | orphan | | | |

Trailing paragraph with a | pipe.
`
	batch, err := ReadMarkdown(strings.NewReader(in), "master.md")
	require.NoError(t, err)

	require.Len(t, batch.Radios, 2)
	assert.Equal(t, "No", batch.Radios[0].GPS)
	assert.Empty(t, batch.Radios[0].DMR)
	assert.Equal(t, "cheap", batch.Radios[0].Notes)
	assert.Equal(t, "Tier II", batch.Radios[1].DMR, "empty cells keep column positions")
	assert.Equal(t, types.MarkdownID, batch.Radios[1].Source)
	assert.Equal(t, 1, batch.Report.Count(KindMalformed))

	_, err = ReadMarkdown(strings.NewReader("no table here"), "empty.md")
	assert.Error(t, err)
}

func TestReadBrandsCSV(t *testing.T) {
	in := "Name,Grantee_Code,Full_Name,Website,Country,Notes\n" +
		"Baofeng,2AJGM,Fujian Nan'an Baofeng Electronic Co.,https://baofeng.example,China,\n" +
		",ZZZ,,,,\n" +
		"Icom,AFJ,Icom Inc.,,Japan,ham\n"
	batch, err := ReadBrandsCSV(strings.NewReader(in), "brands.csv")
	require.NoError(t, err)

	require.Len(t, batch.Brands, 2)
	assert.Equal(t, "2AJGM", batch.Brands[0].GranteeCode)
	assert.Equal(t, "Japan", batch.Brands[1].Country)
	assert.Equal(t, 1, batch.Report.Count(KindMalformed))
}

func TestReadGrants(t *testing.T) {
	batch, err := ReadFile(context.Background(), filepath.Join("testdata", "grants.xml"), FormatFCCXML)
	require.NoError(t, err)

	require.Len(t, batch.Grants, 2)
	assert.Equal(t, 3, batch.Report.Rows)
	assert.Equal(t, 1, batch.Report.Count(KindMalformed))

	g := batch.Grants[0]
	assert.Equal(t, "2AJGM-UV5R", g.FCCID)
	assert.Equal(t, "FCC Grant Date: 2019-04-01; Purpose: Original Equipment; Freq: 144.0-148.0 MHz", g.Notes())
	assert.Equal(t, []string{BandVHF}, g.Bands())
	assert.Equal(t, []string{BandUHF}, batch.Grants[1].Bands())
	assert.Equal(t, 3, batch.Grants[1].Line)
}

func TestReadGrantees(t *testing.T) {
	in := `<?xml version="1.0" encoding="ISO-8859-1"?>
<Results>
<Row><grantee_code>2AJGM</grantee_code><grantee_name>PO FUNG ELECTRONIC (HK) INTERNATONAL GROUP COMPANY LIMITED</grantee_name></Row>
<Row><grantee_code>AFJ</grantee_code><grantee_name>Icom Inc. R&D</grantee_name></Row>
<Row><grantee_code></grantee_code><grantee_name>Nobody</grantee_name></Row>
<Row><grantee_code>K66</grantee_code><grantee_name></grantee_name></Row>
</Results>`
	batch, err := ReadGrantees(strings.NewReader(in), "results.xml")
	require.NoError(t, err)

	require.Len(t, batch.Grantees, 3)
	assert.Equal(t, "Icom Inc. R&D", batch.Grantees[1].Name)
	assert.Empty(t, batch.Grantees[2].Name)
	assert.Equal(t, 1, batch.Report.Count(KindMalformed))
}

func TestSanitizeXML(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"R&D", "R&amp;D"},
		{"A &amp; B", "A &amp; B"},
		{"&lt;x&gt;", "&lt;x&gt;"},
		{"&quot;&apos;", "&quot;&apos;"},
		{"&#38;", "&#38;"},
		{"&ampersand", "&amp;ampersand"},
		{"AT&T", "AT&amp;T"},
		{"tail &", "tail &amp;"},
		{"no entities", "no entities"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, string(SanitizeXML([]byte(tt.in))))
		})
	}
}

func TestBandsFor(t *testing.T) {
	tests := []struct {
		name   string
		lo, hi float64
		want   []string
	}{
		{"2m", 144, 148, []string{BandVHF}},
		{"70cm", 420, 450, []string{BandUHF}},
		{"dual band", 136, 520, []string{BandVHF, BandUHF}},
		{"hf rig", 1.8, 54, []string{BandHF, BandVHF}},
		{"10m", 28, 29.7, []string{BandHF}},
		{"reversed", 148, 144, []string{BandVHF}},
		{"microwave", 2300, 2450, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BandsFor(tt.lo, tt.hi))
		})
	}
	assert.Nil(t, Grant{LowerMHz: "n/a", UpperMHz: "148"}.Bands())
	assert.Equal(t, "VHF, UHF", BandLabel([]string{BandVHF, BandUHF}))
}

func TestParseFormat(t *testing.T) {
	for _, f := range Formats() {
		got, err := ParseFormat(string(f))
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}
	got, err := ParseFormat("MD")
	require.NoError(t, err)
	assert.Equal(t, FormatMarkdown, got)

	_, err = ParseFormat("xlsx")
	assert.True(t, errors.IsValidationError(err))
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
		ok   bool
	}{
		{path: "radios.CSV", want: FormatCatalogCSV, ok: true},
		{path: "docs/radios.md", want: FormatMarkdown, ok: true},
		{path: "grants.xml", want: FormatFCCXML, ok: true},
		{path: "catalog.yaml", want: FormatSnapshot, ok: true},
		{path: "brands.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := FormatFromPath(tt.path)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadSnapshot(t *testing.T) {
	year := 2012
	cat := catalogs.New(
		catalogs.WithBrands(catalogs.Brand{Name: "Baofeng", GranteeCode: "2AJGM"}),
		catalogs.WithRadios(
			catalogs.Radio{ID: 4, Brand: "Baofeng", Model: "UV-5R", IntroYear: &year},
			catalogs.Radio{ID: 5, Brand: "Baofeng", Model: " "},
		),
	)

	for _, format := range []catalogs.Format{catalogs.FormatYAML, catalogs.FormatJSON} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, catalogs.SnapshotOf(cat).Encode(&buf, format))

			batch, err := Read(&buf, FormatSnapshot, "export")
			require.NoError(t, err)
			require.Len(t, batch.Radios, 1)
			assert.Zero(t, batch.Radios[0].ID)
			assert.Equal(t, 2012, *batch.Radios[0].IntroYear)
			require.Len(t, batch.Brands, 1)
			assert.Equal(t, "2AJGM", batch.Brands[0].GranteeCode)
			assert.Equal(t, 3, batch.Report.Rows)
			assert.Equal(t, 1, batch.Report.Count(KindMalformed))
		})
	}
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(context.Background(), filepath.Join(t.TempDir(), "nope.csv"), FormatCatalogCSV)
	var ioErr *errors.IOError
	assert.ErrorAs(t, err, &ioErr)
}

func TestReportMergeCapsExamples(t *testing.T) {
	a := NewReport("a")
	b := NewReport("b")
	for i := 0; i < 4; i++ {
		a.Record(errors.NewMalformedInputError("csv", i+1, "Brand", "brand is blank"))
		b.Record(errors.NewUnresolvedGranteeError("XYZZY-FOO", ""))
		b.Record(errors.NewMalformedInputError("csv", i+10, "Model", "model is blank"))
	}
	a.Rows, b.Rows = 10, 20
	a.Merge(b)

	assert.Equal(t, 30, a.Rows)
	assert.Equal(t, 8, a.Count(KindMalformed))
	assert.Equal(t, 4, a.Count(KindUnresolved))
	assert.Len(t, a.Examples[KindMalformed], 5)
	assert.Equal(t, 12, a.Total())
	assert.Equal(t, []Kind{KindMalformed, KindUnresolved}, a.Kinds())
	assert.Contains(t, a.Summary(), "unresolved_grantee: 4")
}

func TestBatchAppend(t *testing.T) {
	a, err := ReadCatalogCSV(strings.NewReader("Brand,Model\nIcom,IC-705\n"), "a.csv")
	require.NoError(t, err)
	b, err := ReadGrantees(strings.NewReader("<R><Row><grantee_code>AFJ</grantee_code></Row></R>"), "b.xml")
	require.NoError(t, err)

	a.Append(b)
	a.Append(nil)
	assert.Equal(t, 2, a.Len())
	assert.Equal(t, 2, a.Report.Accepted)
}
