package usecase

import (
	"math"
	"time"

	"CropAdvisor/internal/domain/models"
	"CropAdvisor/pkg/util"
)

const (
	trendVariation = 0.1  // total width of the uniform daily variation
	trendSeasonal  = 0.05 // amplitude of the seasonal sine
	trendFloor     = 0.8  // prices never go below this share of the base
	volumeBase     = 500
	volumeSpan     = 1000
)

// GenerateTrend synthesizes a days-long daily series ending at today around
// the mean current price of records. It returns an empty series when records
// is empty or days is not positive.
//
// The series is illustrative only; it is not historical data.
func GenerateTrend(records []models.PriceRecord, days int, today time.Time, rnd util.Random) []models.TrendPoint {
	points := make([]models.TrendPoint, 0)
	if len(records) == 0 || days <= 0 {
		return points
	}

	var sum float64
	for _, r := range records {
		sum += r.CurrentPrice
	}
	base := sum / float64(len(records))
	today = today.UTC()

	for i := days - 1; i >= 0; i-- {
		variation := (rnd.Float64() - 0.5) * trendVariation
		seasonal := math.Sin(float64(i)/float64(days)*math.Pi) * trendSeasonal
		price := math.Round(base * (1 + variation + seasonal))
		volume := int(math.Round(volumeBase + rnd.Float64()*volumeSpan))

		points = append(points, models.TrendPoint{
			Date:   today.AddDate(0, 0, -i).Format(time.DateOnly),
			Price:  math.Max(price, base*trendFloor),
			Volume: volume,
		})
	}
	return points
}
