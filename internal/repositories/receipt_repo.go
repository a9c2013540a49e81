package repositories

import (
	"context"
	"fmt"

	"stockwatch/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// ReceiptRepository reads purchase-order receipt lines.
type ReceiptRepository interface {
	ListCompleted(ctx context.Context, itemIDs []int64) ([]models.ReceivedEvent, error)
}

type receiptRepo struct {
	db Database
}

func NewReceiptRepository(db Database) ReceiptRepository {
	return &receiptRepo{db: db}
}

// ListCompleted returns completed or confirmed receipts for the items,
// newest first. Pending and cancelled lines never leave the database.
func (r *receiptRepo) ListCompleted(ctx context.Context, itemIDs []int64) ([]models.ReceivedEvent, error) {
	query := `
		SELECT id, inventory_id, COALESCE(variation_key, ''), quantity, unit_price::text, unit_type, received_at
		FROM order_receipts
		WHERE inventory_id = ANY($1) AND status IN ($2, $3)
		ORDER BY received_at DESC, id DESC
	`
	rows, err := r.db.Query(ctx, query, itemIDs, models.ReceiptStatusCompleted, models.ReceiptStatusConfirmed)
	if err != nil {
		return nil, err
	}
	return collectReceived(rows, models.SourceCompletedOrder)
}

// collectReceived scans receipt-shaped rows and closes them.
func collectReceived(rows pgx.Rows, source models.LedgerSource) ([]models.ReceivedEvent, error) {
	defer rows.Close()

	var events []models.ReceivedEvent
	for rows.Next() {
		var (
			ev       models.ReceivedEvent
			key      string
			rawPrice *string
		)
		if err := rows.Scan(&ev.EventID, &ev.ItemID, &key, &ev.Quantity, &rawPrice, &ev.UnitType, &ev.OccurredAt); err != nil {
			return nil, err
		}
		if rawPrice != nil {
			price, err := decimal.NewFromString(*rawPrice)
			if err != nil {
				return nil, fmt.Errorf("event %d: malformed unit price %q: %w", ev.EventID, *rawPrice, err)
			}
			ev.UnitPrice = decimal.NewNullDecimal(price)
		}
		ev.VariationKey = models.ParseVariationKey(key)
		ev.Source = source
		events = append(events, ev)
	}
	return events, rows.Err()
}
