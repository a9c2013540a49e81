package repositories

import (
	"context"
	"errors"
	"fmt"

	"stockwatch/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type AlertRepository interface {
	// InsertIfAbsent stores alert unless an unresolved alert already exists
	// for its (inventory_id, variation_key, alert_type). Reports whether a row was written.
	InsertIfAbsent(ctx context.Context, alert *models.Alert) (bool, error)
	FindUnresolved(ctx context.Context, inventoryID int64, alertType models.AlertType, key models.VariationKey) (*models.Alert, error)
	CountUnresolved(ctx context.Context) (int, error)
	Resolve(ctx context.Context, id uuid.UUID) error
}

type alertRepo struct {
	db Database
}

func NewAlertRepository(db Database) AlertRepository {
	return &alertRepo{db: db}
}

func (r *alertRepo) InsertIfAbsent(ctx context.Context, alert *models.Alert) (bool, error) {
	query := `
		INSERT INTO inventory_alerts (id, inventory_id, variation_key, alert_type, is_resolved, created_at)
		VALUES ($1, $2, $3, $4, FALSE, $5)
		ON CONFLICT (inventory_id, variation_key, alert_type) WHERE is_resolved = FALSE DO NOTHING
	`
	tag, err := r.db.Exec(ctx, query, alert.ID, alert.InventoryID, string(alert.VariationKey), string(alert.AlertType), alert.CreatedAt)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *alertRepo) FindUnresolved(ctx context.Context, inventoryID int64, alertType models.AlertType, key models.VariationKey) (*models.Alert, error) {
	query := `
		SELECT id, inventory_id, variation_key, alert_type, is_resolved, created_at, resolved_at
		FROM inventory_alerts
		WHERE inventory_id = $1 AND alert_type = $2 AND variation_key = $3 AND is_resolved = FALSE
		ORDER BY created_at
		LIMIT 1
	`
	var (
		alert   models.Alert
		rawKey  string
		rawType string
	)
	err := r.db.QueryRow(ctx, query, inventoryID, string(alertType), string(key)).
		Scan(&alert.ID, &alert.InventoryID, &rawKey, &rawType, &alert.IsResolved, &alert.CreatedAt, &alert.ResolvedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("item %d %s %q: %w", inventoryID, alertType, key, ErrAlertNotFound)
		}
		return nil, err
	}
	alert.VariationKey = models.VariationKey(rawKey)
	alert.AlertType = models.AlertType(rawType)
	return &alert, nil
}

// CountUnresolved backs the unresolved-alert badge.
func (r *alertRepo) CountUnresolved(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM inventory_alerts WHERE is_resolved = FALSE`).Scan(&count)
	return count, err
}

func (r *alertRepo) Resolve(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE inventory_alerts
		SET is_resolved = TRUE, resolved_at = NOW()
		WHERE id = $1 AND is_resolved = FALSE
	`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("alert %s: %w", id, ErrAlertNotFound)
	}
	return nil
}
