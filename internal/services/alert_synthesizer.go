package services

import (
	"context"
	"errors"
	"log"
	"sort"
	"time"

	"stockwatch/internal/models"
	"stockwatch/internal/repositories"

	"github.com/google/uuid"
)

// AlertSynthesizer classifies stock slots and records breaches.
type AlertSynthesizer interface {
	Synthesize(ctx context.Context, inventoryID int64, threshold int, sheet *models.StockSheet) []models.AlertEvaluation
}

type alertSynthesizer struct {
	alertRepo repositories.AlertRepository
	now       func() time.Time
}

func NewAlertSynthesizer(alertRepo repositories.AlertRepository) AlertSynthesizer {
	return &alertSynthesizer{
		alertRepo: alertRepo,
		now:       time.Now,
	}
}

// ClassifyStock maps availability to a status. Equal to threshold is low stock.
func ClassifyStock(available, threshold int) models.StockStatus {
	switch {
	case available <= 0:
		return models.StockStatusOutOfStock
	case available <= threshold:
		return models.StockStatusLowStock
	default:
		return models.StockStatusOK
	}
}

// Synthesize evaluates every variation slot, or the base slot when the group
// has no variations, and inserts an unresolved alert for each breach that has
// none open yet. Alerts are never resolved here. Store failures are logged and
// the breach is still returned with Persisted unset.
func (s *alertSynthesizer) Synthesize(ctx context.Context, inventoryID int64, threshold int, sheet *models.StockSheet) []models.AlertEvaluation {
	evaluations := []models.AlertEvaluation{}

	for _, key := range alertSlots(sheet) {
		available := sheet.Base.Available
		if !key.IsBase() {
			available = sheet.Variations[key].Available
		}

		alertType, breached := ClassifyStock(available, threshold).AlertType()
		if !breached {
			continue
		}

		evaluations = append(evaluations, s.record(ctx, inventoryID, key, alertType, available, threshold))
	}

	return evaluations
}

func (s *alertSynthesizer) record(ctx context.Context, inventoryID int64, key models.VariationKey, alertType models.AlertType, available, threshold int) models.AlertEvaluation {
	eval := models.AlertEvaluation{
		VariationKey: key,
		AlertType:    alertType,
		Available:    available,
		Threshold:    threshold,
	}

	alert := &models.Alert{
		ID:           uuid.New(),
		InventoryID:  inventoryID,
		VariationKey: key,
		AlertType:    alertType,
		CreatedAt:    s.now().UTC(),
	}

	created, err := s.alertRepo.InsertIfAbsent(ctx, alert)
	if err != nil {
		log.Printf("Failed to persist %s alert for item %d variation %q: %v", alertType, inventoryID, key, err)
		return eval
	}
	eval.Persisted = true

	if created {
		eval.Created = true
		eval.AlertID = &alert.ID
		log.Printf("Raised %s alert %s for item %d variation %q (available %d, threshold %d)", alertType, alert.ID, inventoryID, key, available, threshold)
		return eval
	}

	existing, err := s.alertRepo.FindUnresolved(ctx, inventoryID, alertType, key)
	switch {
	case err == nil:
		eval.AlertID = &existing.ID
	case errors.Is(err, repositories.ErrAlertNotFound):
		// resolved between the insert and this lookup
	default:
		log.Printf("Failed to look up open %s alert for item %d variation %q: %v", alertType, inventoryID, key, err)
	}
	return eval
}

// alertSlots lists the slots subject to evaluation in a stable order. Base is
// only evaluated for groups without variations.
func alertSlots(sheet *models.StockSheet) []models.VariationKey {
	if !sheet.HasVariations() {
		return []models.VariationKey{models.BaseVariation}
	}
	keys := make([]models.VariationKey, 0, len(sheet.Variations))
	for key := range sheet.Variations {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
