package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerSource identifies where a received quantity was recorded.
type LedgerSource string

const (
	SourceCompletedOrder LedgerSource = "completed_order"
	SourceAdminStock     LedgerSource = "admin_stock"
)

// Receipt statuses that count toward received stock.
const (
	ReceiptStatusCompleted = "completed"
	ReceiptStatusConfirmed = "confirmed"
)

// ReceivedEvent is one inbound stock record. For admin-entered stock,
// OccurredAt holds the row's last-updated timestamp.
type ReceivedEvent struct {
	EventID      int64               `json:"event_id" db:"id"`
	ItemID       int64               `json:"item_id" db:"inventory_id"`
	VariationKey VariationKey        `json:"variation_key" db:"variation_key"`
	Quantity     int                 `json:"quantity" db:"quantity"`
	UnitPrice    decimal.NullDecimal `json:"unit_price" db:"unit_price"`
	UnitType     *string             `json:"unit_type,omitempty" db:"unit_type"`
	OccurredAt   time.Time           `json:"occurred_at" db:"occurred_at"`
	Source       LedgerSource        `json:"source" db:"-"`
}

// SoldEvent is one outbound sale line.
type SoldEvent struct {
	ItemID       int64        `json:"item_id" db:"inventory_id"`
	VariationKey VariationKey `json:"variation_key" db:"variation_key"`
	Quantity     int          `json:"quantity" db:"quantity"`
}

// NewerThan orders events by recency, breaking ties on the higher event id.
func (e *ReceivedEvent) NewerThan(other *ReceivedEvent) bool {
	if other == nil {
		return true
	}
	if e.OccurredAt.Equal(other.OccurredAt) {
		return e.EventID > other.EventID
	}
	return e.OccurredAt.After(other.OccurredAt)
}
