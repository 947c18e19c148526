package usecase

import (
	"math"
	"sort"
	"strings"

	"CropAdvisor/internal/domain/models"
)

// TrendingLimit is the size of the trending view.
const TrendingLimit = 5

// filterAll is the table-search value that disables a filter.
const filterAll = "all"

// FilterByCrop keeps records whose crop contains name, ignoring case.
func FilterByCrop(records []models.PriceRecord, name string) []models.PriceRecord {
	needle := strings.ToLower(name)
	return filter(records, func(r models.PriceRecord) bool {
		return strings.Contains(strings.ToLower(r.Crop), needle)
	})
}

// FilterByState keeps records whose state contains name, ignoring case.
func FilterByState(records []models.PriceRecord, name string) []models.PriceRecord {
	needle := strings.ToLower(name)
	return filter(records, func(r models.PriceRecord) bool {
		return strings.Contains(strings.ToLower(r.State), needle)
	})
}

// Trending returns up to limit records ordered by descending |changePercent|.
// Equal magnitudes keep their input order.
func Trending(records []models.PriceRecord, limit int) []models.PriceRecord {
	out := make([]models.PriceRecord, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		return math.Abs(out[i].ChangePercent) > math.Abs(out[j].ChangePercent)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// States lists the distinct states, sorted.
func States(records []models.PriceRecord) []string {
	return distinct(records, func(r models.PriceRecord) string { return r.State })
}

// Crops lists the distinct crop names, sorted.
func Crops(records []models.PriceRecord) []string {
	return distinct(records, func(r models.PriceRecord) string { return r.Crop })
}

// TableQuery filters the price table. Q matches crop, market or variety as a
// case-insensitive substring; State and Crop are exact and "all" or "" disables them.
type TableQuery struct {
	Q     string
	State string
	Crop  string
}

func SearchTable(records []models.PriceRecord, q TableQuery) []models.PriceRecord {
	needle := strings.ToLower(strings.TrimSpace(q.Q))
	return filter(records, func(r models.PriceRecord) bool {
		if needle != "" &&
			!strings.Contains(strings.ToLower(r.Crop), needle) &&
			!strings.Contains(strings.ToLower(r.Market), needle) &&
			!strings.Contains(strings.ToLower(r.Variety), needle) {
			return false
		}
		if isFilter(q.State) && r.State != q.State {
			return false
		}
		if isFilter(q.Crop) && r.Crop != q.Crop {
			return false
		}
		return true
	})
}

func isFilter(v string) bool {
	return v != "" && !strings.EqualFold(v, filterAll)
}

func filter(records []models.PriceRecord, keep func(models.PriceRecord) bool) []models.PriceRecord {
	out := make([]models.PriceRecord, 0)
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

func distinct(records []models.PriceRecord, key func(models.PriceRecord) string) []string {
	seen := make(map[string]struct{}, len(records))
	out := make([]string, 0)
	for _, r := range records {
		k := key(r)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
