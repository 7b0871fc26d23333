package reconcile

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hamcat/rigmap/pkg/authority"
	"github.com/hamcat/rigmap/pkg/catalogs"
	"github.com/hamcat/rigmap/pkg/errors"
	"github.com/hamcat/rigmap/pkg/provenance"
	"github.com/hamcat/rigmap/pkg/types"
)

func TestDeduplicateGroupsByNormalizedKey(t *testing.T) {
	records := []catalogs.Radio{
		{Brand: "baofeng", Model: "uv-5r", GPS: "No"},
		{Brand: "Icom", Model: "IC-705"},
		{Brand: "Baofeng", Model: "UV-5R", DMR: "No"},
	}

	res, err := Deduplicate(context.Background(), records)
	require.NoError(t, err)

	require.Len(t, res.Records, 2)
	assert.Equal(t, "No", res.Records[0].GPS)
	assert.Equal(t, "No", res.Records[0].DMR)
	assert.Equal(t, "Icom", res.Records[1].Brand, "groups keep first-appearance order")
	assert.Len(t, res.Superseded, 1)
	assert.Equal(t, 2, res.Metadata.Stats.Groups)
	assert.Equal(t, 1, res.Metadata.Stats.MergedGroups)
	assert.True(t, res.HasChanges())
	assert.Contains(t, res.Summary(), "1 absorbed")
}

func TestDeduplicateMostCompleteSurvives(t *testing.T) {
	records := []catalogs.Radio{
		{ID: 1, Brand: "Tyt", Model: "MD-380", Notes: "first"},
		{ID: 2, Brand: "TYT", Model: "md-380", FCCID: "2AMJR-MD380", GPS: "No", DMR: "Tier II"},
		{ID: 3, Brand: "tyt", Model: "MD-380", GPS: "Yes", APRS: "No", Notes: "third"},
	}

	res, err := Deduplicate(context.Background(), records)
	require.NoError(t, err)
	require.Len(t, res.Records, 1)

	got := res.Records[0]
	assert.Equal(t, uint(2), got.ID, "highest completeness survives")
	assert.Equal(t, "TYT", got.Brand, "stored spelling comes from the survivor")
	assert.Equal(t, "No", got.GPS)
	assert.Equal(t, "No", got.APRS)
	assert.Equal(t, "third\nfirst", got.Notes, "ties fold in discovery order")

	ids := []uint{res.Superseded[0].ID, res.Superseded[1].ID}
	assert.Equal(t, []uint{3, 1}, ids)
}

func TestDeduplicateTieKeepsEarlier(t *testing.T) {
	records := []catalogs.Radio{
		{ID: 10, Brand: "Icom", Model: "IC-R6", GPS: "No"},
		{ID: 11, Brand: "Icom", Model: "IC-R6", GPS: "Yes"},
	}
	res, err := Deduplicate(context.Background(), records)
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	assert.Equal(t, uint(10), res.Records[0].ID)
	assert.Equal(t, "No", res.Records[0].GPS)
}

func TestDeduplicateIdempotent(t *testing.T) {
	records := []catalogs.Radio{
		{Brand: "Baofeng", Model: "UV-5R", GPS: "No"},
		{Brand: "baofeng", Model: "uv-5r", DMR: "No", Notes: "a"},
		{Brand: "Baofeng", Model: "BF-F8HP", Notes: "b"},
		{Brand: "baofeng", Model: "bf-f8hp", Notes: "c"},
	}
	first, err := Deduplicate(context.Background(), records)
	require.NoError(t, err)
	second, err := Deduplicate(context.Background(), first.Records)
	require.NoError(t, err)

	assert.Equal(t, first.Records, second.Records)
	assert.False(t, second.HasChanges())
}

func TestDeduplicatePartition(t *testing.T) {
	records := []catalogs.Radio{
		{Brand: "Icom", Model: "IC-705"},
		{Brand: "Icom", Model: "ic-705"},
		{Brand: "Baofeng", Model: "UV-5R"},
		{Brand: "BAOFENG", Model: "uv-5r"},
	}

	res, err := Deduplicate(context.Background(), records, WithPartition("baofeng"))
	require.NoError(t, err)
	assert.Len(t, res.Records, 3)
	assert.Equal(t, "Baofeng", res.Metadata.Partition)
	assert.Equal(t, 1, res.Metadata.Stats.PartitionSize)
	assert.Equal(t, "Icom", res.Records[0].Brand)
	assert.Equal(t, "Icom", res.Records[1].Brand)

	// The partition pass leaves Icom duplicated, so a full validation fails.
	assert.True(t, errors.IsInvariantViolation(Validate(res.Records)))
}

func TestDeduplicateAuthorityOrder(t *testing.T) {
	records := []catalogs.Radio{
		{Brand: "Retevis", Model: "RT3S", GPS: "No", Source: types.MarkdownID},
		{Brand: "Retevis", Model: "RT3S", GPS: "Yes", Source: types.CuratedID},
	}

	res, err := Deduplicate(context.Background(), records, WithAuthority(authority.New()))
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	assert.Equal(t, "Yes", res.Records[0].GPS)
	assert.Equal(t, types.CuratedID, res.Records[0].Source)

	res, err = Deduplicate(context.Background(), records)
	require.NoError(t, err)
	assert.Equal(t, "No", res.Records[0].GPS, "without authority the input order decides")
}

func TestDeduplicateProvenance(t *testing.T) {
	tracker := provenance.NewTracker(true)
	res, err := Deduplicate(context.Background(), []catalogs.Radio{
		{Brand: "Icom", Model: "IC-705", GPS: "Yes"},
		{Brand: "Icom", Model: "IC-705", DMR: "No", Source: types.MarkdownID},
	}, WithProvenance(tracker))
	require.NoError(t, err)
	assert.NotEmpty(t, res.Provenance)
	assert.Equal(t, 1, res.Metadata.Stats.FieldsAdopted)
}

func TestDeduplicateRejectsBlankIdentity(t *testing.T) {
	_, err := Deduplicate(context.Background(), []catalogs.Radio{{Brand: "Icom"}})
	assert.True(t, errors.IsValidationError(err))
}

func TestDeduplicateOptions(t *testing.T) {
	_, err := Deduplicate(context.Background(), nil, WithPartition("  "))
	assert.True(t, errors.IsValidationError(err))
	_, err = Deduplicate(context.Background(), nil, WithAuthority(nil))
	assert.True(t, errors.IsValidationError(err))
	_, err = Deduplicate(context.Background(), nil, WithProvenance(nil))
	assert.True(t, errors.IsValidationError(err))
}

func TestDeduplicateCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Deduplicate(ctx, []catalogs.Radio{{Brand: "Icom", Model: "IC-705"}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(nil))
	assert.NoError(t, Validate([]catalogs.Radio{{Brand: "Icom", Model: "IC-705"}, {Brand: "Icom", Model: "IC-7300"}}))

	err := Validate([]catalogs.Radio{
		{Brand: "Icom", Model: "IC-705"},
		{Brand: "Yaesu", Model: "FT-60R"},
		{Brand: "ICOM", Model: "ic-705"},
	})
	var inv *errors.InvariantViolationError
	require.ErrorAs(t, err, &inv)
	assert.Equal(t, "Icom/IC-705", inv.Key)
	assert.Equal(t, 2, inv.Count)
}

func BenchmarkDeduplicate(b *testing.B) {
	records := make([]catalogs.Radio, 0, 2000)
	for i := 0; i < 1000; i++ {
		model := fmt.Sprintf("UV-%d", i)
		records = append(records,
			catalogs.Radio{Brand: "Baofeng", Model: model, GPS: "No"},
			catalogs.Radio{Brand: "baofeng", Model: model, DMR: "No"},
		)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Deduplicate(context.Background(), records); err != nil {
			b.Fatal(err)
		}
	}
}
