package models

// Requests for mandi HTTP endpoints. Defined in domain for consistency and reuse.

type CropRequest struct {
	Name string `query:"name" json:"name" validate:"required,max=100"`
}

type StateRequest struct {
	Name string `query:"name" json:"name" validate:"required,max=100"`
}

type StateSearchRequest struct {
	State string `query:"state" json:"state" validate:"required,max=100"`
}

type TableSearchRequest struct {
	Q     string `query:"q" json:"q" validate:"max=100"`
	State string `query:"state" json:"state" default:"all" validate:"max=100"`
	Crop  string `query:"crop" json:"crop" default:"all" validate:"max=100"`
}

type TrendRequest struct {
	Crop string `query:"crop" json:"crop" validate:"required,max=100"`
	Days int    `query:"days" json:"days" default:"15" validate:"gte=1,lte=365"`
}

// LegacyPricesRequest mirrors the query flags of /api/mandi-prices.
type LegacyPricesRequest struct {
	Crop     string `query:"crop"`
	State    string `query:"state"`
	Trending string `query:"trending"`
	States   string `query:"states"`
	Search   string `query:"search"`
}
