package usecase

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CropAdvisor/internal/domain/models"
)

func TestFilterByCropIsCaseInsensitiveSubstring(t *testing.T) {
	got := FilterByCrop(sampleRecords(), "RICE")
	require.Len(t, got, 2)
	for _, r := range got {
		assert.Contains(t, strings.ToLower(r.Crop), "rice")
	}

	assert.Empty(t, FilterByCrop(sampleRecords(), "saffron"))
	assert.NotNil(t, FilterByCrop(nil, "rice"))
}

func TestFilterByState(t *testing.T) {
	got := FilterByState(sampleRecords(), "punj")
	require.Len(t, got, 2)
	assert.Equal(t, "2", got[0].ID)
	assert.Equal(t, "3", got[1].ID)
}

func TestTrendingOrdersByAbsoluteChange(t *testing.T) {
	got := Trending(sampleRecords(), TrendingLimit)
	require.Len(t, got, 5)

	ids := make([]string, len(got))
	for i, r := range got {
		ids[i] = r.ID
	}
	assert.Equal(t, []string{"6", "7", "3", "2", "5"}, ids)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, math.Abs(got[i-1].ChangePercent), math.Abs(got[i].ChangePercent))
	}

	assert.Len(t, Trending(sampleRecords()[:2], TrendingLimit), 2)
}

func TestTrendingDoesNotReorderInput(t *testing.T) {
	in := sampleRecords()
	_ = Trending(in, TrendingLimit)
	assert.Equal(t, "1", in[0].ID)
}

func TestStatesAreDistinctAndSorted(t *testing.T) {
	got := States(sampleRecords())
	assert.Equal(t, []string{"Haryana", "Karnataka", "Maharashtra", "Punjab", "Uttar Pradesh"}, got)
	assert.Equal(t, []string{}, States(nil))
}

func TestCropsAreDistinctAndSorted(t *testing.T) {
	got := Crops(sampleRecords())
	assert.Equal(t, []string{"Onion", "Paddy(Dhan)(Common)", "Potato", "Rice", "Tomato", "Wheat", "rice"}, got)
}

func TestSearchTable(t *testing.T) {
	tests := []struct {
		name  string
		query TableQuery
		want  []string
	}{
		{"no filters", TableQuery{State: "all", Crop: "all"}, []string{"1", "2", "3", "4", "5", "6", "7"}},
		{"q matches crop", TableQuery{Q: "whe"}, []string{"2"}},
		{"q matches market", TableQuery{Q: "kolar"}, []string{"6"}},
		{"q matches variety", TableQuery{Q: "basmati"}, []string{"1"}},
		{"exact state", TableQuery{State: "Punjab", Crop: "all"}, []string{"2", "3"}},
		{"exact crop is case sensitive", TableQuery{Crop: "rice"}, []string{"5"}},
		{"q and state", TableQuery{Q: "rice", State: "Karnataka"}, []string{"5"}},
		{"no match", TableQuery{Q: "saffron"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SearchTable(sampleRecords(), tt.query)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func ids(records []models.PriceRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}
