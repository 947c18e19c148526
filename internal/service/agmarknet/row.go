package agmarknet

import (
	"bytes"
	"strconv"

	json "github.com/goccy/go-json"
)

// field is a JSON value that the upstream may send as a string, a number or null.
type field string

func (f *field) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*f = ""
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = field(s)
	default:
		// numbers and booleans keep their literal text
		*f = field(b)
	}
	return nil
}

func (f field) String() string { return string(f) }

// RawRow is one upstream commodity row. Every field is optional.
type RawRow struct {
	State       field `json:"state"`
	District    field `json:"district"`
	Market      field `json:"market"`
	Commodity   field `json:"commodity"`
	Variety     field `json:"variety"`
	Grade       field `json:"grade"`
	ArrivalDate field `json:"arrival_date"`
	MinPrice    field `json:"min_price"`
	MaxPrice    field `json:"max_price"`
	ModalPrice  field `json:"modal_price"`
}

type recordsResponse struct {
	Records []RawRow `json:"records"`
	Total   field    `json:"total"`
}

// total returns the upstream-reported total, or -1 when absent.
func (r recordsResponse) total() int {
	n, err := strconv.Atoi(r.Total.String())
	if err != nil {
		return -1
	}
	return n
}
