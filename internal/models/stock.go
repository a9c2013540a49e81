package models

import (
	"github.com/shopspring/decimal"
)

// StockLevel is the computed availability of one slot with its metadata.
type StockLevel struct {
	Available int                 `json:"available"`
	UnitPrice decimal.NullDecimal `json:"unit_price"`
	UnitType  string              `json:"unit_type"`
}

// StockSheet is the calculator output for one item-group.
type StockSheet struct {
	Base       StockLevel                  `json:"base"`
	Variations map[VariationKey]StockLevel `json:"variations"`
}

// HasVariations reports whether any variation slot survived calculation.
func (s *StockSheet) HasVariations() bool {
	return len(s.Variations) > 0
}

// GroupStock is the per-item-group record handed to the presentation layer.
type GroupStock struct {
	GroupName       string                               `json:"group_name"`
	MemberIDs       []int64                              `json:"member_ids"`
	InventoryID     int64                                `json:"inventory_id"`
	Source          LedgerSource                         `json:"source"`
	Threshold       int                                  `json:"threshold"`
	BaseStock       int                                  `json:"base_stock"`
	BasePrice       decimal.NullDecimal                  `json:"base_price"`
	BaseUnit        string                               `json:"base_unit"`
	VariationStocks map[VariationKey]int                 `json:"variation_stocks"`
	VariationPrices map[VariationKey]decimal.NullDecimal `json:"variation_prices"`
	VariationUnits  map[VariationKey]string              `json:"variation_units"`
	AlertsEmitted   []AlertEvaluation                    `json:"alerts_emitted"`
}

// NewGroupStock flattens a stock sheet into the exposed record shape.
func NewGroupStock(group *ItemGroup, source LedgerSource, threshold int, sheet *StockSheet) *GroupStock {
	gs := &GroupStock{
		GroupName:       group.Name,
		MemberIDs:       group.IDs(),
		InventoryID:     group.CanonicalID(),
		Source:          source,
		Threshold:       threshold,
		BaseStock:       sheet.Base.Available,
		BasePrice:       sheet.Base.UnitPrice,
		BaseUnit:        sheet.Base.UnitType,
		VariationStocks: make(map[VariationKey]int, len(sheet.Variations)),
		VariationPrices: make(map[VariationKey]decimal.NullDecimal, len(sheet.Variations)),
		VariationUnits:  make(map[VariationKey]string, len(sheet.Variations)),
		AlertsEmitted:   []AlertEvaluation{},
	}
	for key, level := range sheet.Variations {
		gs.VariationStocks[key] = level.Available
		gs.VariationPrices[key] = level.UnitPrice
		gs.VariationUnits[key] = level.UnitType
	}
	return gs
}
