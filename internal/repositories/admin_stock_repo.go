package repositories

import (
	"context"

	"stockwatch/internal/models"
)

// AdminStockRepository reads stock entered directly by administrators.
type AdminStockRepository interface {
	ListPositive(ctx context.Context, itemIDs []int64) ([]models.ReceivedEvent, error)
}

type adminStockRepo struct {
	db Database
}

func NewAdminStockRepository(db Database) AdminStockRepository {
	return &adminStockRepo{db: db}
}

// ListPositive returns admin rows with a positive quantity, most recently
// updated first. OccurredAt carries updated_at.
func (r *adminStockRepo) ListPositive(ctx context.Context, itemIDs []int64) ([]models.ReceivedEvent, error) {
	query := `
		SELECT id, inventory_id, COALESCE(variation_key, ''), quantity, unit_price::text, unit_type, updated_at
		FROM admin_stock_entries
		WHERE inventory_id = ANY($1) AND quantity > 0
		ORDER BY updated_at DESC, id DESC
	`
	rows, err := r.db.Query(ctx, query, itemIDs)
	if err != nil {
		return nil, err
	}
	return collectReceived(rows, models.SourceAdminStock)
}
