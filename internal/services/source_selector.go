package services

import (
	"stockwatch/internal/models"

	"github.com/shopspring/decimal"
)

// VariationMeta is the price and unit type shown for one slot.
type VariationMeta struct {
	UnitPrice decimal.NullDecimal
	UnitType  string
}

// SourceSelection is the single ledger a group's stock and metadata derive from.
type SourceSelection struct {
	Source      models.LedgerSource
	HasReceipts bool
	Received    map[models.VariationKey]int
	Metadata    map[models.VariationKey]VariationMeta
}

// SelectSource applies source exclusivity. One completed receipt anywhere in
// the group switches the whole group to receipts; admin rows are then ignored
// even when newer.
func SelectSource(snapshot *LedgerSnapshot) *SourceSelection {
	hasReceipts := len(snapshot.Receipts) > 0

	sel := &SourceSelection{
		Source:      models.SourceAdminStock,
		HasReceipts: hasReceipts,
		Received:    snapshot.ReceivedFromAdmin,
	}
	events := snapshot.AdminStock
	if hasReceipts {
		sel.Source = models.SourceCompletedOrder
		sel.Received = snapshot.ReceivedFromReceipts
		events = snapshot.Receipts
	}

	sel.Metadata = latestMetadata(events)
	return sel
}

// latestMetadata keeps, per variation key, the metadata of the newest event.
func latestMetadata(events []models.ReceivedEvent) map[models.VariationKey]VariationMeta {
	latest := make(map[models.VariationKey]*models.ReceivedEvent)
	for i := range events {
		ev := &events[i]
		if ev.NewerThan(latest[ev.VariationKey]) {
			latest[ev.VariationKey] = ev
		}
	}

	meta := make(map[models.VariationKey]VariationMeta, len(latest))
	for key, ev := range latest {
		m := VariationMeta{UnitPrice: ev.UnitPrice}
		if ev.UnitType != nil {
			m.UnitType = *ev.UnitType
		}
		meta[key] = m
	}
	return meta
}
