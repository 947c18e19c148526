package agmarknet

import (
	"math"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CropAdvisor/internal/domain/models"
	"CropAdvisor/pkg/util"
)

var fixedNow = time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

func decodeRows(t *testing.T, s string) []RawRow {
	t.Helper()
	var rows []RawRow
	require.NoError(t, json.Unmarshal([]byte(s), &rows))
	return rows
}

func TestRawRowAcceptsStringsAndNumbers(t *testing.T) {
	rows := decodeRows(t, `[
		{"commodity":"Wheat","modal_price":"2150","min_price":2100,"max_price":null}
	]`)
	require.Len(t, rows, 1)
	assert.Equal(t, "2150", rows[0].ModalPrice.String())
	assert.Equal(t, "2100", rows[0].MinPrice.String())
	assert.Equal(t, "", rows[0].MaxPrice.String())
}

func TestNormalizePricePriority(t *testing.T) {
	rows := decodeRows(t, `[
		{"commodity":"Wheat","modal_price":"2150.4","min_price":"2100","max_price":"2200"},
		{"commodity":"Onion","modal_price":"","min_price":"1500","max_price":"1800.6"},
		{"commodity":"Garlic","modal_price":"NR","max_price":"","min_price":"900"},
		{"commodity":"Tomato"}
	]`)

	records, dropped := Normalize(rows, util.NewSeededRandom(1), fixedNow)
	require.Len(t, records, 3)
	assert.Equal(t, 1, dropped)

	assert.Equal(t, 2150.0, records[0].CurrentPrice)
	assert.Equal(t, 1801.0, records[1].CurrentPrice)
	assert.Equal(t, 900.0, records[2].CurrentPrice)

	// missing bounds fall back to the raw current price
	assert.Equal(t, 900.0, records[2].MaxPrice)
	assert.Equal(t, 900.0, records[2].MinPrice)
	assert.Equal(t, 1801.0, records[1].ModalPrice)
}

func TestNormalizeDefaultsAndIDs(t *testing.T) {
	rows := decodeRows(t, `[
		{"modal_price":"0"},
		{"modal_price":"1200","arrival_date":"15/01/2024"},
		{"commodity":" Basmati Rice ","variety":"1121","market":"Karnal","state":"Haryana","district":"Karnal","modal_price":"4100"}
	]`)

	records, dropped := Normalize(rows, util.NewSeededRandom(2), fixedNow)
	require.Len(t, records, 2)
	assert.Equal(t, 1, dropped)

	first := records[0]
	assert.Equal(t, "1", first.ID)
	assert.Equal(t, "Unknown Crop", first.Crop)
	assert.Equal(t, "Common", first.Variety)
	assert.Equal(t, "Unknown Market", first.Market)
	assert.Equal(t, "Unknown State", first.State)
	assert.Equal(t, "", first.District)
	assert.Equal(t, "15/01/2024", first.LastUpdated)
	assert.Equal(t, "quintal", first.Unit)

	second := records[1]
	assert.Equal(t, "2", second.ID)
	assert.Equal(t, "Basmati Rice", second.Crop)
	assert.Equal(t, "1121", second.Variety)
	assert.Equal(t, fixedNow.Format(time.RFC3339), second.LastUpdated)
}

func TestNormalizeDerivedFieldInvariants(t *testing.T) {
	prices := []string{"1", "7", "19", "20", "101", "1850", "2149.5", "99999"}
	var rows []RawRow
	for _, p := range prices {
		for i := 0; i < 25; i++ {
			rows = append(rows, RawRow{Commodity: "Maize", ModalPrice: field(p)})
		}
	}

	records, dropped := Normalize(rows, util.NewSeededRandom(7), fixedNow)
	require.Zero(t, dropped)
	require.Len(t, records, len(rows))

	for _, r := range records {
		assert.Greater(t, r.CurrentPrice, 0.0)
		assert.GreaterOrEqual(t, r.PreviousPrice, 0.95*r.CurrentPrice, "record %s", r.ID)
		assert.LessOrEqual(t, r.PreviousPrice, 1.05*r.CurrentPrice, "record %s", r.ID)
		assert.Equal(t, math.Round(r.CurrentPrice-r.PreviousPrice), r.Change)
		assert.Equal(t, util.Round2((r.CurrentPrice-r.PreviousPrice)/r.PreviousPrice*100), r.ChangePercent)
	}
}

func TestPreviousPriceClampsToBand(t *testing.T) {
	assert.Equal(t, 96.0, previousPrice(101, util.FixedRandom(0)))
	assert.Equal(t, 106.0, previousPrice(101, util.FixedRandom(0.9999999)))
	assert.Equal(t, 1.0, previousPrice(1, util.FixedRandom(0)))
}

func TestNormalizeDropsRowsWithOverflowingPrices(t *testing.T) {
	rows := []RawRow{
		{Commodity: "Wheat", ModalPrice: "1.79e308"},
		{Commodity: "Maize", ModalPrice: "2000"},
	}

	var (
		records []models.PriceRecord
		dropped int
	)
	require.NotPanics(t, func() {
		records, dropped = Normalize(rows, util.FixedRandom(0.99), fixedNow)
	})
	require.Len(t, records, 1)
	assert.Equal(t, 1, dropped)
	assert.Equal(t, "Maize", records[0].Crop)
	assert.Equal(t, "1", records[0].ID)
}
