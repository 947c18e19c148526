package usecase

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"CropAdvisor/internal/domain/models"
)

const (
	movementThreshold   = 2.0
	surgeThreshold      = 5.0
	volatilityThreshold = 8.0
	highImpactThreshold = 10.0

	maxInsights       = 4
	maxVolatileCrops  = 3
	topVolumesLimit   = 5
	volumeProxyFactor = 10
	stableCropsLabel  = "Multiple commodities"
	timeframeSession  = "Current market session"
	timeframeToday    = "Today"
	timeframeCurrent  = "Current"
)

// Summarize counts rising (> +2%), falling (< -2%) and stable records.
func Summarize(records []models.PriceRecord) models.MovementSummary {
	var s models.MovementSummary
	for _, r := range records {
		switch {
		case r.ChangePercent > movementThreshold:
			s.Rising++
		case r.ChangePercent < -movementThreshold:
			s.Falling++
		}
	}
	s.Stable = len(records) - s.Rising - s.Falling
	return s
}

// BuildInsights derives the movement summary, up to four narrative insights
// and the top markets by price-range proxy volume.
func BuildInsights(records []models.PriceRecord) models.MarketInsights {
	out := models.MarketInsights{
		Insights:   []models.MarketInsight{},
		TopVolumes: []models.MarketVolume{},
	}
	if len(records) == 0 {
		return out
	}

	out.Summary = Summarize(records)

	sorted := make([]models.PriceRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ChangePercent > sorted[j].ChangePercent
	})

	if top := sorted[0]; top.ChangePercent > surgeThreshold {
		out.Insights = append(out.Insights, models.MarketInsight{
			Type:  models.InsightBullish,
			Title: top.Crop + " Prices Surge",
			Description: fmt.Sprintf("%s prices have increased by %.1f%% in %s, %s. Current rate: ₹%s/quintal.",
				top.Crop, top.ChangePercent, top.Market, top.State, formatPrice(top.CurrentPrice)),
			Impact:    magnitudeImpact(top.ChangePercent),
			Crops:     []string{top.Crop},
			Timeframe: timeframeSession,
		})
	}

	if low := sorted[len(sorted)-1]; low.ChangePercent < -surgeThreshold {
		out.Insights = append(out.Insights, models.MarketInsight{
			Type:  models.InsightBearish,
			Title: low.Crop + " Prices Decline",
			Description: fmt.Sprintf("%s prices have dropped by %.1f%% in %s, %s. Current rate: ₹%s/quintal.",
				low.Crop, math.Abs(low.ChangePercent), low.Market, low.State, formatPrice(low.CurrentPrice)),
			Impact:    magnitudeImpact(low.ChangePercent),
			Crops:     []string{low.Crop},
			Timeframe: timeframeSession,
		})
	}

	var volatile []models.PriceRecord
	for _, r := range records {
		if math.Abs(r.ChangePercent) > volatilityThreshold {
			volatile = append(volatile, r)
		}
	}
	if len(volatile) > 0 {
		crops := make([]string, 0, maxVolatileCrops)
		for i := 0; i < len(volatile) && i < maxVolatileCrops; i++ {
			crops = append(crops, volatile[i].Crop)
		}
		out.Insights = append(out.Insights, models.MarketInsight{
			Type:  models.InsightAlert,
			Title: "High Volatility Alert",
			Description: fmt.Sprintf("%d crops showing high volatility today. Monitor %s and others closely.",
				len(volatile), volatile[0].Crop),
			Impact:    models.ImpactHigh,
			Crops:     crops,
			Timeframe: timeframeToday,
		})
	}

	if s := out.Summary; s.Stable > s.Rising+s.Falling {
		out.Insights = append(out.Insights, models.MarketInsight{
			Type:  models.InsightNeutral,
			Title: "Market Stability",
			Description: fmt.Sprintf("%d crops showing stable prices today, indicating balanced supply-demand conditions across major markets.",
				s.Stable),
			Impact:    models.ImpactLow,
			Crops:     []string{stableCropsLabel},
			Timeframe: timeframeCurrent,
		})
	}

	if len(out.Insights) > maxInsights {
		out.Insights = out.Insights[:maxInsights]
	}
	out.TopVolumes = TopVolumes(records, topVolumesLimit)
	return out
}

// TopVolumes ranks markets by sum((max-min)*10). Ties are ordered by market name.
func TopVolumes(records []models.PriceRecord, limit int) []models.MarketVolume {
	sums := make(map[string]float64)
	for _, r := range records {
		sums[r.Market] += (r.MaxPrice - r.MinPrice) * volumeProxyFactor
	}

	out := make([]models.MarketVolume, 0, len(sums))
	for market, v := range sums {
		out = append(out, models.MarketVolume{
			Market: market,
			Volume: math.Round(v),
			Basis:  models.VolumeBasisPriceRange,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Volume != out[j].Volume {
			return out[i].Volume > out[j].Volume
		}
		return out[i].Market < out[j].Market
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func magnitudeImpact(changePercent float64) models.Impact {
	if math.Abs(changePercent) > highImpactThreshold {
		return models.ImpactHigh
	}
	return models.ImpactMedium
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
