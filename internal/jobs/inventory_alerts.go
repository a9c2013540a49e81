package jobs

import (
	"context"
	"fmt"
	"log"

	"stockwatch/internal/models"
	"stockwatch/internal/repositories"
	"stockwatch/internal/services"
)

// StockSweepService reconciles every item-group in the catalog once.
type StockSweepService struct {
	itemRepo   repositories.ItemRepository
	reconciler services.StockReconciler
	batchSize  int
}

type SweepResult struct {
	Groups    int
	Breaches  int
	NewAlerts int
	Failures  int
}

func NewStockSweepService(itemRepo repositories.ItemRepository, reconciler services.StockReconciler, batchSize int) *StockSweepService {
	if batchSize <= 0 {
		batchSize = 500
	}
	return &StockSweepService{
		itemRepo:   itemRepo,
		reconciler: reconciler,
		batchSize:  batchSize,
	}
}

// SweepAll pages through active items and reconciles each name group once.
// A failing group is logged and skipped; only a catalog read error aborts.
func (s *StockSweepService) SweepAll(ctx context.Context) (*SweepResult, error) {
	result := &SweepResult{}
	seen := make(map[string]bool)

	for offset := 0; ; offset += s.batchSize {
		items, err := s.itemRepo.ListActive(ctx, s.batchSize, offset)
		if err != nil {
			log.Printf("Failed to list catalog items at offset %d: %v", offset, err)
			return result, err
		}

		for _, item := range items {
			key := groupKey(item)
			if seen[key] {
				continue
			}
			seen[key] = true

			stock, err := s.reconciler.Reconcile(ctx, item.ID)
			if err != nil {
				log.Printf("Failed to reconcile item %d: %v", item.ID, err)
				result.Failures++
				continue
			}

			result.Groups++
			result.Breaches += len(stock.AlertsEmitted)
			for _, eval := range stock.AlertsEmitted {
				if eval.Created {
					result.NewAlerts++
				}
			}
		}

		if len(items) < s.batchSize {
			return result, nil
		}
	}
}

// groupKey is the normalized name, or the id for unnamed items which never merge.
func groupKey(item *models.InventoryItem) string {
	if name := item.NormalizedName(); name != "" {
		return "name:" + name
	}
	return fmt.Sprintf("id:%d", item.ID)
}

// ScheduledSweep is the gocron entry point
func (s *StockSweepService) ScheduledSweep(ctx context.Context) error {
	log.Println("Starting scheduled stock sweep")

	result, err := s.SweepAll(ctx)
	if err != nil {
		log.Printf("Scheduled stock sweep failed: %v", err)
		return err
	}

	log.Printf("Scheduled stock sweep completed: %d groups, %d breaches, %d new alerts, %d failures",
		result.Groups, result.Breaches, result.NewAlerts, result.Failures)
	return nil
}
