package models

import "time"

const (
	// UnitQuintal is the pricing unit of every record (100 kg).
	UnitQuintal = "quintal"

	SourceGovernment       = "Government of India (data.gov.in)"
	SourceGovernmentNoData = "Government of India (data.gov.in) - No data available"
	SourceUpstreamError    = "Government API Error - No data available"
)

// PriceRecord is one normalized mandi price quotation. Prices are per quintal.
//
// PreviousPrice, Change and ChangePercent are synthesized from CurrentPrice
// with random noise; they are not an observed day-over-day delta.
type PriceRecord struct {
	ID            string  `json:"id"`
	Crop          string  `json:"crop"`
	Variety       string  `json:"variety"`
	Market        string  `json:"market"`
	State         string  `json:"state"`
	District      string  `json:"district,omitempty"`
	CurrentPrice  float64 `json:"currentPrice"`
	PreviousPrice float64 `json:"previousPrice"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	MinPrice      float64 `json:"minPrice"`
	MaxPrice      float64 `json:"maxPrice"`
	ModalPrice    float64 `json:"modalPrice"`
	LastUpdated   string  `json:"lastUpdated"`
	Unit          string  `json:"unit"`
}

// AggregateResult is the outcome of one upstream fetch. Success is false and
// Data is empty when the upstream failed or produced no usable rows.
type AggregateResult struct {
	Success     bool          `json:"success"`
	Data        []PriceRecord `json:"data"`
	LastUpdated time.Time     `json:"lastUpdated"`
	Source      string        `json:"source"`
}

// Failed builds a failure result with the given source label.
func Failed(source string, at time.Time) AggregateResult {
	return AggregateResult{
		Success:     false,
		Data:        []PriceRecord{},
		LastUpdated: at,
		Source:      source,
	}
}

// TrendPoint is one day of a synthetic price series.
type TrendPoint struct {
	Date   string  `json:"date"`
	Price  float64 `json:"price"`
	Volume int     `json:"volume"`
}
