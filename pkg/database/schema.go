package database

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgconn"
)

// Execer is the subset of pgxpool.Pool needed to apply the schema.
type Execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// Statements are idempotent and applied in order.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS inventory_items (
		id                BIGSERIAL PRIMARY KEY,
		name              TEXT NOT NULL DEFAULT '',
		category          TEXT NOT NULL DEFAULT '',
		location          TEXT NOT NULL DEFAULT '',
		reorder_threshold INTEGER NOT NULL DEFAULT 0,
		supplier_id       BIGINT,
		deleted           BOOLEAN NOT NULL DEFAULT FALSE,
		updated_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_inventory_items_normalized_name
		ON inventory_items (LOWER(TRIM(name))) WHERE deleted = FALSE`,
	`CREATE TABLE IF NOT EXISTS order_receipts (
		id              BIGSERIAL PRIMARY KEY,
		inventory_id    BIGINT NOT NULL REFERENCES inventory_items(id),
		variation_key   TEXT NOT NULL DEFAULT '',
		quantity        INTEGER NOT NULL,
		unit_price      NUMERIC(12, 2),
		unit_type       TEXT,
		status          TEXT NOT NULL,
		received_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_order_receipts_inventory ON order_receipts (inventory_id)`,
	`CREATE TABLE IF NOT EXISTS admin_stock_entries (
		id              BIGSERIAL PRIMARY KEY,
		inventory_id    BIGINT NOT NULL REFERENCES inventory_items(id),
		variation_key   TEXT NOT NULL DEFAULT '',
		quantity        INTEGER NOT NULL,
		unit_price      NUMERIC(12, 2),
		unit_type       TEXT,
		updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_admin_stock_entries_inventory ON admin_stock_entries (inventory_id)`,
	`CREATE TABLE IF NOT EXISTS sales (
		id              BIGSERIAL PRIMARY KEY,
		inventory_id    BIGINT NOT NULL REFERENCES inventory_items(id),
		variation_key   TEXT NOT NULL DEFAULT '',
		quantity        INTEGER NOT NULL,
		sold_at         TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sales_inventory ON sales (inventory_id)`,
	`CREATE TABLE IF NOT EXISTS inventory_alerts (
		id              UUID PRIMARY KEY,
		inventory_id    BIGINT NOT NULL,
		variation_key   TEXT NOT NULL DEFAULT '',
		alert_type      TEXT NOT NULL CHECK (alert_type IN ('low_stock', 'out_of_stock')),
		is_resolved     BOOLEAN NOT NULL DEFAULT FALSE,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		resolved_at     TIMESTAMPTZ
	)`,
	// At most one open alert per slot; InsertIfAbsent relies on this index.
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_inventory_alerts_open
		ON inventory_alerts (inventory_id, variation_key, alert_type) WHERE is_resolved = FALSE`,
}

// Migrate applies the schema. Safe to run on every start.
func Migrate(ctx context.Context, db Execer) error {
	for i, stmt := range schemaStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i+1, err)
		}
	}
	log.Printf("Database schema applied (%d statements)", len(schemaStatements))
	return nil
}
