package catalogs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hamcat/rigmap/pkg/errors"
)

func intPtr(v int) *int { return &v }

func TestRadioCompleteness(t *testing.T) {
	tests := []struct {
		name  string
		radio Radio
		want  int
	}{
		{name: "empty", radio: Radio{Brand: "Baofeng", Model: "UV-5R"}, want: 0},
		{name: "whitespace is blank", radio: Radio{Brand: "Baofeng", Model: "UV-5R", GPS: "  ", Notes: "\n"}, want: 0},
		{name: "identity not counted", radio: Radio{Brand: "Baofeng", Model: "UV-5R", Source: "curated", ID: 9}, want: 0},
		{
			name: "mixed kinds",
			radio: Radio{
				Brand:      "Icom",
				Model:      "IC-705",
				FCCID:      "AFJ-IC705",
				IntroYear:  intPtr(2020),
				BatteryMAH: intPtr(0),
				GPS:        "Yes",
			},
			want: 4,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tt.radio
			assert.Equal(t, tt.want, r.Completeness())
		})
	}
}

func TestMergeableFieldsExist(t *testing.T) {
	r := &Radio{}
	for _, f := range MergeableFields {
		assert.True(t, r.field(f).IsValid(), "field %s missing on Radio", f)
	}
	assert.Contains(t, MergeableFields, NotesField)
	assert.NotContains(t, MergeableFields, "Brand")
	assert.NotContains(t, MergeableFields, "Model")
}

func TestRadioCopyField(t *testing.T) {
	src := Radio{IntroYear: intPtr(2016), DMR: "Tier II"}
	var dst Radio

	dst.CopyField(&src, "IntroYear")
	dst.CopyField(&src, "DMR")

	require.NotNil(t, dst.IntroYear)
	assert.Equal(t, 2016, *dst.IntroYear)
	assert.Equal(t, "Tier II", dst.DMR)

	*src.IntroYear = 1999
	assert.Equal(t, 2016, *dst.IntroYear, "pointer fields must not be shared")

	assert.Equal(t, "2016", dst.FieldString("IntroYear"))
	assert.Equal(t, 2016, dst.FieldValue("IntroYear"))
	assert.Nil(t, dst.FieldValue("BatteryMAH"))
}

func TestRadioValidate(t *testing.T) {
	assert.NoError(t, Radio{Brand: "Yaesu", Model: "FT-60R"}.Validate())

	err := Radio{Brand: " ", Model: "FT-60R"}.Validate()
	assert.True(t, errors.IsValidationError(err))

	err = Radio{Brand: "Yaesu"}.Validate()
	assert.True(t, errors.IsValidationError(err))
}

func TestRadioKey(t *testing.T) {
	a := Radio{Brand: "baofeng", Model: "uv-5r"}
	b := Radio{Brand: "Baofeng", Model: "UV-5R"}
	assert.Equal(t, a.Key(), b.Key())
}

func TestBrandBackfill(t *testing.T) {
	dst := Brand{Name: "Pofung", Website: "https://pofung.example"}
	src := Brand{Name: "Baofeng", GranteeCode: "2AJGM", Website: "https://baofeng.example", Country: "CN"}

	filled := dst.Backfill(src)

	assert.Equal(t, 2, filled)
	assert.Equal(t, "Pofung", dst.Name)
	assert.Equal(t, "2AJGM", dst.GranteeCode)
	assert.Equal(t, "https://pofung.example", dst.Website)
	assert.Equal(t, "CN", dst.Country)
}
