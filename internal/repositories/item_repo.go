package repositories

import (
	"context"
	"errors"
	"fmt"

	"stockwatch/internal/models"

	"github.com/jackc/pgx/v5"
)

type ItemRepository interface {
	GetByID(ctx context.Context, id int64) (*models.InventoryItem, error)
	ListByNormalizedName(ctx context.Context, normalizedName string) ([]*models.InventoryItem, error)
	ListActive(ctx context.Context, limit, offset int) ([]*models.InventoryItem, error)
}

type itemRepo struct {
	db Database
}

func NewItemRepository(db Database) ItemRepository {
	return &itemRepo{db: db}
}

const itemColumns = `id, name, category, location, reorder_threshold, supplier_id, deleted, updated_at`

func scanItem(row pgx.Row) (*models.InventoryItem, error) {
	item := &models.InventoryItem{}
	err := row.Scan(&item.ID, &item.Name, &item.Category, &item.Location, &item.ReorderThreshold, &item.SupplierID, &item.Deleted, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *itemRepo) GetByID(ctx context.Context, id int64) (*models.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE id = $1`
	item, err := scanItem(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("item %d: %w", id, ErrItemNotFound)
		}
		return nil, err
	}
	return item, nil
}

// ListByNormalizedName returns non-deleted items whose trimmed, lowercased
// name equals normalizedName, ordered by id.
func (r *itemRepo) ListByNormalizedName(ctx context.Context, normalizedName string) ([]*models.InventoryItem, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM inventory_items
		WHERE LOWER(TRIM(name)) = $1 AND deleted = FALSE
		ORDER BY id
	`
	rows, err := r.db.Query(ctx, query, normalizedName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.InventoryItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *itemRepo) ListActive(ctx context.Context, limit, offset int) ([]*models.InventoryItem, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM inventory_items
		WHERE deleted = FALSE
		ORDER BY id
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.InventoryItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
