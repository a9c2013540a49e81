package services

import (
	"context"
	"log"

	"stockwatch/internal/models"
	"stockwatch/internal/repositories"
)

// LedgerSnapshot holds one read of both ledgers for an item-group. Received
// totals are kept per source so the selector can pick exactly one.
type LedgerSnapshot struct {
	Receipts             []models.ReceivedEvent
	AdminStock           []models.ReceivedEvent
	ReceivedFromReceipts map[models.VariationKey]int
	ReceivedFromAdmin    map[models.VariationKey]int
	Sold                 map[models.VariationKey]int
}

// LedgerReader aggregates the receipt and sale ledgers for a set of items.
type LedgerReader interface {
	Read(ctx context.Context, itemIDs []int64) *LedgerSnapshot
}

type ledgerReader struct {
	receiptRepo    repositories.ReceiptRepository
	adminStockRepo repositories.AdminStockRepository
	saleRepo       repositories.SaleRepository
	foldCase       bool
}

// NewLedgerReader creates a reader. With foldCase set, variation keys from
// every ledger are lowercased before aggregation; otherwise keys must match exactly.
func NewLedgerReader(receiptRepo repositories.ReceiptRepository, adminStockRepo repositories.AdminStockRepository, saleRepo repositories.SaleRepository, foldCase bool) LedgerReader {
	return &ledgerReader{
		receiptRepo:    receiptRepo,
		adminStockRepo: adminStockRepo,
		saleRepo:       saleRepo,
		foldCase:       foldCase,
	}
}

// Read never fails: a ledger that cannot be read contributes nothing.
func (r *ledgerReader) Read(ctx context.Context, itemIDs []int64) *LedgerSnapshot {
	snapshot := &LedgerSnapshot{
		ReceivedFromReceipts: make(map[models.VariationKey]int),
		ReceivedFromAdmin:    make(map[models.VariationKey]int),
		Sold:                 make(map[models.VariationKey]int),
	}

	receipts, err := r.receiptRepo.ListCompleted(ctx, itemIDs)
	if err != nil {
		log.Printf("Failed to read receipts for items %v: %v", itemIDs, err)
		receipts = nil
	}
	snapshot.Receipts = r.normalize(receipts)
	for _, ev := range snapshot.Receipts {
		snapshot.ReceivedFromReceipts[ev.VariationKey] += ev.Quantity
	}

	adminRows, err := r.adminStockRepo.ListPositive(ctx, itemIDs)
	if err != nil {
		log.Printf("Failed to read admin stock for items %v: %v", itemIDs, err)
		adminRows = nil
	}
	for _, ev := range r.normalize(adminRows) {
		if ev.Quantity <= 0 {
			continue
		}
		snapshot.AdminStock = append(snapshot.AdminStock, ev)
		snapshot.ReceivedFromAdmin[ev.VariationKey] += ev.Quantity
	}

	sold, err := r.saleRepo.ListByItems(ctx, itemIDs)
	if err != nil {
		log.Printf("Failed to read sales for items %v: %v", itemIDs, err)
		sold = nil
	}
	for _, ev := range sold {
		snapshot.Sold[r.key(ev.VariationKey)] += ev.Quantity
	}

	return snapshot
}

func (r *ledgerReader) normalize(events []models.ReceivedEvent) []models.ReceivedEvent {
	for i := range events {
		events[i].VariationKey = r.key(events[i].VariationKey)
	}
	return events
}

func (r *ledgerReader) key(k models.VariationKey) models.VariationKey {
	if r.foldCase {
		return k.Fold()
	}
	return k
}
