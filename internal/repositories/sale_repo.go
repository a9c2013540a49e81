package repositories

import (
	"context"

	"stockwatch/internal/models"
)

type SaleRepository interface {
	ListByItems(ctx context.Context, itemIDs []int64) ([]models.SoldEvent, error)
}

type saleRepo struct {
	db Database
}

func NewSaleRepository(db Database) SaleRepository {
	return &saleRepo{db: db}
}

func (r *saleRepo) ListByItems(ctx context.Context, itemIDs []int64) ([]models.SoldEvent, error) {
	query := `
		SELECT inventory_id, COALESCE(variation_key, ''), quantity
		FROM sales
		WHERE inventory_id = ANY($1)
	`
	rows, err := r.db.Query(ctx, query, itemIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sold []models.SoldEvent
	for rows.Next() {
		var (
			ev  models.SoldEvent
			key string
		)
		if err := rows.Scan(&ev.ItemID, &key, &ev.Quantity); err != nil {
			return nil, err
		}
		ev.VariationKey = models.ParseVariationKey(key)
		sold = append(sold, ev)
	}
	return sold, rows.Err()
}
