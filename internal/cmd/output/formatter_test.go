package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hamcat/rigmap/internal/ingest"
	"github.com/hamcat/rigmap/internal/utils/ptr"
	"github.com/hamcat/rigmap/pkg/catalogs"
	"github.com/hamcat/rigmap/pkg/differ"
	"github.com/hamcat/rigmap/pkg/errors"
)

func testRadios() []catalogs.Radio {
	return []catalogs.Radio{
		{Brand: "Baofeng", Model: "UV-5R", FCCID: "2AJGM-UV5R", FreqBandsTX: "VHF, UHF", IntroYear: ptr.Int(2012)},
		{Brand: "Icom", Model: "IC-705", Notes: "first line\nsecond line"},
	}
}

func TestFormatters(t *testing.T) {
	data := RadiosToTableData(testRadios(), false)

	tests := []struct {
		format Format
		want   []string
	}{
		{format: FormatTable, want: []string{"UV-5R", "2AJGM-UV5R", "2012"}},
		{format: FormatMarkdown, want: []string{"## Radios", "Brand", "UV-5R", "|"}},
		{format: FormatJSON, want: []string{`"Headers": [`, `"UV-5R"`}},
		{format: FormatYAML, want: []string{"headers:", "- UV-5R"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, NewFormatter(tt.format).Format(&buf, data))
			for _, want := range tt.want {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestTableFormatterFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, map[string]int{"radios": 2}))
	assert.JSONEq(t, `{"radios": 2}`, buf.String())
}

func TestMarkdownFormatterNeedsTableData(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, NewFormatter(FormatMarkdown).Format(&buf, []string{"x"}))
}

func TestWideRadiosTable(t *testing.T) {
	narrow := RadiosToTableData(testRadios(), false)
	wide := RadiosToTableData(testRadios(), true)
	assert.Len(t, narrow.Headers, 5)
	assert.Len(t, wide.Headers, 12)
	assert.Equal(t, "first line\nsecond line", wide.Rows[1][11])

	var buf bytes.Buffer
	require.NoError(t, (&TableFormatter{}).Format(&buf, wide))
	assert.Contains(t, buf.String(), "first line / second line")
}

func TestReportToTableData(t *testing.T) {
	report := ingest.NewReport("catalog.csv")
	report.Record(errors.NewMalformedInputError("catalog_csv", 3, "brand", "blank brand"))
	report.Record(errors.NewMalformedInputError("catalog_csv", 9, "model", "blank model"))
	report.Record(errors.NewUnresolvedGranteeError("XYZZY-FOO", "no grantee code prefix"))

	data := ReportToTableData(report)
	require.Len(t, data.Rows, 2)
	assert.Equal(t, string(ingest.KindMalformed), data.Rows[0][0])
	assert.Equal(t, "2", data.Rows[0][1])
	assert.Contains(t, data.Rows[0][2], "row 9")

	assert.Empty(t, ReportToTableData(nil).Rows)
}

func TestChangesetToTableData(t *testing.T) {
	before := catalogs.New(catalogs.WithRadios(testRadios()[0]))
	after := catalogs.New(
		catalogs.WithBrands(catalogs.Brand{Name: "Icom", GranteeCode: "AFJ"}),
		catalogs.WithRadios(catalogs.Radio{Brand: "Baofeng", Model: "UV-5R", FCCID: "2AJGM-UV5R", FreqBandsTX: "VHF, UHF", IntroYear: ptr.Int(2013)}),
	)

	data := ChangesetToTableData(differ.New().Catalogs(before, after))
	assert.Equal(t, [][]string{
		{"update", "radio", "Baofeng UV-5R", "IntroYear", "2012", "2013"},
		{"add", "brand", "Icom", "", "", ""},
	}, data.Rows)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "", want: ""},
		{in: "JSON", want: FormatJSON},
		{in: "markdown", want: FormatMarkdown},
		{in: "wide", want: FormatWide},
		{in: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectFormatExplicit(t *testing.T) {
	assert.Equal(t, FormatYAML, DetectFormat("YAML"))
}

func TestWrite(t *testing.T) {
	raw := map[string]int{"radios": 2}
	radios := RadiosToTableData(testRadios(), false)
	brands := BrandsToTableData([]catalogs.Brand{{Name: "Baofeng", GranteeCode: "2AJGM"}})

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "json", raw, radios, brands))
	assert.JSONEq(t, `{"radios": 2}`, buf.String())

	buf.Reset()
	require.NoError(t, Write(&buf, "table", raw, radios, brands))
	assert.Contains(t, buf.String(), "UV-5R")
	assert.Contains(t, buf.String(), "2AJGM")

	buf.Reset()
	require.NoError(t, Write(&buf, "json", nil, brands))
	assert.Contains(t, buf.String(), `"Title": "Brands"`)
}
