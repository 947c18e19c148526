package agmarknet

import (
	"math"
	"strconv"
	"strings"
	"time"

	"CropAdvisor/internal/domain/models"
	"CropAdvisor/pkg/util"
)

const (
	defaultCrop    = "Unknown Crop"
	defaultVariety = "Common"
	defaultMarket  = "Unknown Market"
	defaultState   = "Unknown State"

	// previousPrice is drawn from currentPrice * [noiseLow, noiseLow+noiseSpan).
	noiseLow  = 0.95
	noiseSpan = 0.10
)

// Normalize converts raw rows into price records. Rows whose rounded current
// price is not positive, or whose derived fields overflow, are dropped;
// dropped reports how many.
// IDs are assigned sequentially to the kept rows, starting at "1".
func Normalize(rows []RawRow, rnd util.Random, now time.Time) (records []models.PriceRecord, dropped int) {
	records = make([]models.PriceRecord, 0, len(rows))
	fetchedAt := now.UTC().Format(time.RFC3339)

	for _, row := range rows {
		raw, ok := firstParseable(row.ModalPrice, row.MaxPrice, row.MinPrice)
		if !ok {
			raw = 0
		}
		current := math.Round(raw)
		if current <= 0 {
			dropped++
			continue
		}

		minPrice, ok := util.ParseFloat(row.MinPrice.String())
		if !ok {
			minPrice = raw
		}
		maxPrice, ok := util.ParseFloat(row.MaxPrice.String())
		if !ok {
			maxPrice = raw
		}

		previous := previousPrice(current, rnd)
		change := current - previous
		pct := change / previous * 100
		if !finite(previous) || !finite(change) || !finite(pct) {
			dropped++
			continue
		}
		lastUpdated := strings.TrimSpace(row.ArrivalDate.String())
		if lastUpdated == "" {
			lastUpdated = fetchedAt
		}

		records = append(records, models.PriceRecord{
			ID:            strconv.Itoa(len(records) + 1),
			Crop:          orDefault(row.Commodity, defaultCrop),
			Variety:       orDefault(row.Variety, defaultVariety),
			Market:        orDefault(row.Market, defaultMarket),
			State:         orDefault(row.State, defaultState),
			District:      strings.TrimSpace(row.District.String()),
			CurrentPrice:  current,
			PreviousPrice: previous,
			Change:        change,
			ChangePercent: util.Round2(pct),
			MinPrice:      math.Max(0, math.Round(minPrice)),
			MaxPrice:      math.Max(0, math.Round(maxPrice)),
			ModalPrice:    current,
			LastUpdated:   lastUpdated,
			Unit:          models.UnitQuintal,
		})
	}
	return records, dropped
}

// previousPrice synthesizes a prior quote within [0.95, 1.05] of current.
// current is a positive integer, so the clamp bounds always contain it.
func previousPrice(current float64, rnd util.Random) float64 {
	p := math.Round(current * (noiseLow + rnd.Float64()*noiseSpan))
	lo := math.Ceil(current * noiseLow)
	hi := math.Floor(current * (noiseLow + noiseSpan))
	return math.Min(math.Max(p, lo), hi)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func firstParseable(fields ...field) (float64, bool) {
	for _, f := range fields {
		if v, ok := util.ParseFloat(f.String()); ok {
			return v, true
		}
	}
	return 0, false
}

func orDefault(f field, def string) string {
	if s := strings.TrimSpace(f.String()); s != "" {
		return s
	}
	return def
}
