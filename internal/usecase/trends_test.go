package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CropAdvisor/pkg/util"
)

func TestGenerateTrendShape(t *testing.T) {
	today := time.Date(2024, 3, 10, 18, 0, 0, 0, time.UTC)
	records := FilterByCrop(sampleRecords(), "rice") // mean 3750
	base := 3750.0

	points := GenerateTrend(records, 15, today, util.NewSeededRandom(11))
	require.Len(t, points, 15)

	assert.Equal(t, "2024-02-25", points[0].Date)
	assert.Equal(t, "2024-03-10", points[14].Date)
	for i, p := range points {
		if i > 0 {
			assert.Less(t, points[i-1].Date, p.Date)
		}
		assert.GreaterOrEqual(t, p.Price, 0.8*base)
		assert.LessOrEqual(t, p.Price, base*1.1)
		assert.GreaterOrEqual(t, p.Volume, 500)
		assert.LessOrEqual(t, p.Volume, 1500)
	}
}

func TestGenerateTrendExactWithFixedNoise(t *testing.T) {
	today := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	records := sampleRecords()[:1] // base 4000

	points := GenerateTrend(records, 2, today, util.FixedRandom(0.5))
	require.Len(t, points, 2)

	// i=1: seasonal sin(pi/2)*0.05 = 0.05
	assert.Equal(t, 4200.0, points[0].Price)
	// i=0: no variation, no seasonal
	assert.Equal(t, 4000.0, points[1].Price)
	assert.Equal(t, 1000, points[1].Volume)
}

func TestGenerateTrendFloorsAtEightyPercent(t *testing.T) {
	today := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	records := sampleRecords()[:1]

	points := GenerateTrend(records, 1, today, util.FixedRandom(0))
	require.Len(t, points, 1)
	// variation -0.05 keeps the price above the floor
	assert.Equal(t, 3800.0, points[0].Price)
	assert.Equal(t, 500, points[0].Volume)
}

func TestGenerateTrendEmpty(t *testing.T) {
	today := time.Now()
	assert.Empty(t, GenerateTrend(nil, 15, today, util.FixedRandom(0.5)))
	assert.Empty(t, GenerateTrend(sampleRecords(), 0, today, util.FixedRandom(0.5)))
	assert.Empty(t, GenerateTrend(sampleRecords(), -3, today, util.FixedRandom(0.5)))
	assert.NotNil(t, GenerateTrend(nil, 15, today, util.FixedRandom(0.5)))
}
