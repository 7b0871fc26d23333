package authority

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hamcat/rigmap/pkg/types"
)

func TestRank(t *testing.T) {
	a := New()

	assert.Greater(t, a.Rank(types.CuratedID, types.ResourceTypeRadio), a.Rank(types.FCCGrantID, types.ResourceTypeRadio))
	assert.Greater(t, a.Rank(types.FCCGrantID, types.ResourceTypeRadio), a.Rank(types.MarkdownID, types.ResourceTypeRadio))
	assert.Equal(t, 0, a.Rank("unknown", types.ResourceTypeRadio))
	assert.Equal(t, 0, a.Rank(types.CuratedID, "nope"))
	assert.Equal(t, 90, a.Rank(types.GranteeExtractID, types.ResourceTypeBrand), "field entries do not change the record rank")
}

func TestFind(t *testing.T) {
	tests := []struct {
		name         string
		field        string
		resourceType types.ResourceType
		want         types.SourceID
	}{
		{name: "extract owns the legal name", field: "FullName", resourceType: types.ResourceTypeBrand, want: types.GranteeExtractID},
		{name: "brand sheet owns the rest", field: "Website", resourceType: types.ResourceTypeBrand, want: types.CuratedID},
		{name: "radio fields use the record rank", field: "FCCID", resourceType: types.ResourceTypeRadio, want: types.CuratedID},
	}

	a := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := a.Find(tt.field, tt.resourceType)
			require.NotNil(t, f)
			assert.Equal(t, tt.want, f.Source)
		})
	}

	assert.Nil(t, a.Find("Name", "nope"))
}

func TestByFieldPrefersSpecificPattern(t *testing.T) {
	fields := []Field{
		{Path: "*", Source: types.CuratedID, Priority: 100},
		{Path: "Full*", Source: types.StoreID, Priority: 100},
	}
	f := byField("FullName", fields)
	require.NotNil(t, f)
	assert.Equal(t, types.StoreID, f.Source)
	assert.Nil(t, byField("FullName", nil))
}

func TestMatchesPattern(t *testing.T) {
	tests := []struct {
		path    string
		pattern string
		want    bool
	}{
		{path: "FCCID", pattern: "FCCID", want: true},
		{path: "FCCID", pattern: "*", want: true},
		{path: "FreqBandsTX", pattern: "Freq*", want: true},
		{path: "GPS", pattern: "G?S", want: true},
		{path: "GPS", pattern: "APRS", want: false},
		{path: "GPS", pattern: "[", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.path+"~"+tt.pattern, func(t *testing.T) {
			assert.Equal(t, tt.want, matchesPattern(tt.path, tt.pattern))
		})
	}
}
