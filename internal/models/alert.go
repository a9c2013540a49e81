package models

import (
	"time"

	"github.com/google/uuid"
)

// AlertType represents the kind of threshold breach
type AlertType string

const (
	AlertTypeLowStock   AlertType = "low_stock"
	AlertTypeOutOfStock AlertType = "out_of_stock"
)

// StockStatus is the classification of one stock slot against its threshold
type StockStatus string

const (
	StockStatusOK         StockStatus = "ok"
	StockStatusLowStock   StockStatus = "low_stock"
	StockStatusOutOfStock StockStatus = "out_of_stock"
)

// AlertType maps a breach status to its alert type. ok has no alert.
func (s StockStatus) AlertType() (AlertType, bool) {
	switch s {
	case StockStatusLowStock:
		return AlertTypeLowStock, true
	case StockStatusOutOfStock:
		return AlertTypeOutOfStock, true
	default:
		return "", false
	}
}

// Alert is a persisted threshold breach. Alerts are only resolved by an
// explicit external action; recovery above threshold leaves them open.
type Alert struct {
	ID           uuid.UUID    `json:"id" db:"id"`
	InventoryID  int64        `json:"inventory_id" db:"inventory_id"`
	VariationKey VariationKey `json:"variation_key" db:"variation_key"`
	AlertType    AlertType    `json:"alert_type" db:"alert_type"`
	IsResolved   bool         `json:"is_resolved" db:"is_resolved"`
	CreatedAt    time.Time    `json:"created_at" db:"created_at"`
	ResolvedAt   *time.Time   `json:"resolved_at,omitempty" db:"resolved_at"`
}

// AlertEvaluation is the outcome of evaluating one breached slot during a run.
// Persisted is false when the store write failed; the breach is still reported.
type AlertEvaluation struct {
	VariationKey VariationKey `json:"variation_key"`
	AlertType    AlertType    `json:"alert_type"`
	Available    int          `json:"available"`
	Threshold    int          `json:"threshold"`
	AlertID      *uuid.UUID   `json:"alert_id,omitempty"`
	Created      bool         `json:"created"`
	Persisted    bool         `json:"persisted"`
}
