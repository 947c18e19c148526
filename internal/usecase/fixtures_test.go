package usecase

import (
	"CropAdvisor/internal/domain/models"
)

func rec(id, crop, variety, market, state string, current, pct float64) models.PriceRecord {
	return models.PriceRecord{
		ID:            id,
		Crop:          crop,
		Variety:       variety,
		Market:        market,
		State:         state,
		CurrentPrice:  current,
		ChangePercent: pct,
		MinPrice:      current - 100,
		MaxPrice:      current + 100,
		ModalPrice:    current,
		Unit:          models.UnitQuintal,
	}
}

func sampleRecords() []models.PriceRecord {
	return []models.PriceRecord{
		rec("1", "Rice", "Basmati", "Karnal", "Haryana", 4000, 1.2),
		rec("2", "Wheat", "Dara", "Khanna", "Punjab", 2200, -3.5),
		rec("3", "Paddy(Dhan)(Common)", "Common", "Amritsar", "Punjab", 2100, 4.1),
		rec("4", "Onion", "Red", "Lasalgaon", "Maharashtra", 1800, -0.4),
		rec("5", "rice", "Sona Masuri", "Raichur", "Karnataka", 3500, 2.5),
		rec("6", "Tomato", "Hybrid", "Kolar", "Karnataka", 1200, 4.9),
		rec("7", "Potato", "Jyoti", "Agra", "Uttar Pradesh", 900, -4.7),
	}
}
