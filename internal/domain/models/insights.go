package models

type InsightType string

const (
	InsightBullish InsightType = "bullish"
	InsightBearish InsightType = "bearish"
	InsightNeutral InsightType = "neutral"
	InsightAlert   InsightType = "alert"
)

type Impact string

const (
	ImpactHigh   Impact = "high"
	ImpactMedium Impact = "medium"
	ImpactLow    Impact = "low"
)

// VolumeBasisPriceRange marks MarketVolume figures as the price-range proxy
// sum((max-min)*10), not traded quantity.
const VolumeBasisPriceRange = "price_range_proxy"

type MovementSummary struct {
	Rising  int `json:"rising"`
	Falling int `json:"falling"`
	Stable  int `json:"stable"`
}

type MarketInsight struct {
	Type        InsightType `json:"type"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Impact      Impact      `json:"impact"`
	Crops       []string    `json:"crops"`
	Timeframe   string      `json:"timeframe"`
}

// MarketVolume ranks a market by a proxy volume. See VolumeBasisPriceRange.
type MarketVolume struct {
	Market string  `json:"market"`
	Volume float64 `json:"volume"`
	Basis  string  `json:"basis"`
}

type MarketInsights struct {
	Summary    MovementSummary `json:"summary"`
	Insights   []MarketInsight `json:"insights"`
	TopVolumes []MarketVolume  `json:"topVolumes"`
}
