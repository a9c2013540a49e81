package services

import (
	"stockwatch/internal/models"
)

// CalculateStock nets received against sold for base and every variation key
// seen in either ledger. Availability is clamped at zero. For order-sourced
// groups a key with no receipts is dropped entirely.
func CalculateStock(sel *SourceSelection, sold map[models.VariationKey]int) *models.StockSheet {
	sheet := &models.StockSheet{
		Base:       stockLevel(sel, sold, models.BaseVariation),
		Variations: make(map[models.VariationKey]models.StockLevel),
	}

	keys := make(map[models.VariationKey]struct{})
	for key := range sel.Received {
		keys[key] = struct{}{}
	}
	for key := range sold {
		keys[key] = struct{}{}
	}

	for key := range keys {
		if key.IsBase() {
			continue
		}
		if sel.Source == models.SourceCompletedOrder {
			if _, ok := sel.Received[key]; !ok {
				continue
			}
		}
		sheet.Variations[key] = stockLevel(sel, sold, key)
	}

	return sheet
}

func stockLevel(sel *SourceSelection, sold map[models.VariationKey]int, key models.VariationKey) models.StockLevel {
	meta := sel.Metadata[key]
	return models.StockLevel{
		Available: Available(sel.Received[key], sold[key]),
		UnitPrice: meta.UnitPrice,
		UnitType:  meta.UnitType,
	}
}

// Available is max(0, received - sold).
func Available(received, sold int) int {
	if available := received - sold; available > 0 {
		return available
	}
	return 0
}
