package util

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseFloat parses a loosely formatted number ("1,850", " 2100.5 ").
// It reports false for empty, unparsable or non-finite input.
func ParseFloat(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// Round2 rounds half away from zero to two decimal places.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
