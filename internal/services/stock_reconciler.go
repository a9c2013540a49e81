package services

import (
	"context"
	"fmt"
	"log"

	"stockwatch/internal/caching"
	"stockwatch/internal/models"
	"stockwatch/internal/repositories"
)

// StockReconciler runs the full pipeline for the item-group containing an item.
type StockReconciler interface {
	Reconcile(ctx context.Context, itemID int64) (*models.GroupStock, error)
}

type stockReconciler struct {
	itemRepo    repositories.ItemRepository
	resolver    GroupResolver
	reader      LedgerReader
	synthesizer AlertSynthesizer
	publisher   caching.SnapshotPublisher
}

// NewStockReconciler wires the pipeline. publisher may be nil.
func NewStockReconciler(itemRepo repositories.ItemRepository, resolver GroupResolver, reader LedgerReader, synthesizer AlertSynthesizer, publisher caching.SnapshotPublisher) StockReconciler {
	return &stockReconciler{
		itemRepo:    itemRepo,
		resolver:    resolver,
		reader:      reader,
		synthesizer: synthesizer,
		publisher:   publisher,
	}
}

// Reconcile only fails when the item itself cannot be loaded or is deleted. Every later
// stage degrades instead of failing.
func (s *stockReconciler) Reconcile(ctx context.Context, itemID int64) (*models.GroupStock, error) {
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("load item %d: %w", itemID, err)
	}
	if item.Deleted {
		return nil, fmt.Errorf("item %d is deleted: %w", itemID, repositories.ErrItemNotFound)
	}

	group := s.resolver.Resolve(ctx, item)
	snapshot := s.reader.Read(ctx, group.IDs())
	selection := SelectSource(snapshot)
	sheet := CalculateStock(selection, snapshot.Sold)

	threshold := group.Threshold()
	stock := models.NewGroupStock(group, selection.Source, threshold, sheet)
	stock.AlertsEmitted = s.synthesizer.Synthesize(ctx, stock.InventoryID, threshold, sheet)

	if s.publisher != nil {
		if err := s.publisher.PublishGroupStock(ctx, stock); err != nil {
			log.Printf("Failed to publish stock snapshot for item %d: %v", stock.InventoryID, err)
		}
	}

	return stock, nil
}
