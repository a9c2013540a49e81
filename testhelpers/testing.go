package testhelpers

import (
	"context"
	"os"
	"testing"
	"time"

	"stockwatch/internal/models"
	"stockwatch/pkg/database"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TestDB holds the database connection for testing
type TestDB struct {
	Pool    *pgxpool.Pool
	Cleanup func() error
}

// SetupTestDB connects to TEST_DATABASE_URL, applies the schema and truncates
// every table. The test is skipped when no database is reachable.
func SetupTestDB(t *testing.T, connString string) *TestDB {
	t.Helper()

	if connString == "" {
		connString = os.Getenv("TEST_DATABASE_URL")
		if connString == "" {
			connString = "host=localhost port=5432 user=postgres password=postgres dbname=stockwatch_test sslmode=disable"
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		t.Skipf("Test database not available: %v", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		t.Skipf("Test database not available: %v", err)
	}

	if err := database.Migrate(ctx, pool); err != nil {
		pool.Close()
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	db := &TestDB{
		Pool: pool,
		Cleanup: func() error {
			pool.Close()
			return nil
		},
	}
	TruncateAll(t, db)
	return db
}

// TruncateAll empties every stockwatch table
func TruncateAll(t *testing.T, db *TestDB) {
	t.Helper()

	_, err := db.Pool.Exec(context.Background(),
		`TRUNCATE inventory_alerts, sales, admin_stock_entries, order_receipts, inventory_items RESTART IDENTITY CASCADE`)
	if err != nil {
		t.Fatalf("Failed to truncate tables: %v", err)
	}
}

// SetupTestItem creates a catalog item and returns its id
func SetupTestItem(t *testing.T, db *TestDB, name string, threshold int) int64 {
	t.Helper()

	var id int64
	err := db.Pool.QueryRow(context.Background(),
		`INSERT INTO inventory_items (name, reorder_threshold) VALUES ($1, $2) RETURNING id`,
		name, threshold).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test item: %v", err)
	}
	return id
}

// Variation builds the stored key for an attribute set; nil means base stock.
func Variation(attributes map[string]string) models.VariationKey {
	return models.NewVariationKey(attributes)
}

// SetupTestReceipt records a receipt line. price may be empty for no price.
func SetupTestReceipt(t *testing.T, db *TestDB, itemID int64, key models.VariationKey, quantity int, price, status string, receivedAt time.Time) {
	t.Helper()

	var unitPrice *string
	if price != "" {
		unitPrice = &price
	}
	_, err := db.Pool.Exec(context.Background(), `
		INSERT INTO order_receipts (inventory_id, variation_key, quantity, unit_price, status, received_at)
		VALUES ($1, $2, $3, $4::numeric, $5, $6)
	`, itemID, string(key), quantity, unitPrice, status, receivedAt)
	if err != nil {
		t.Fatalf("Failed to create test receipt: %v", err)
	}
}

// SetupTestAdminStock records an admin stock entry
func SetupTestAdminStock(t *testing.T, db *TestDB, itemID int64, key models.VariationKey, quantity int) {
	t.Helper()

	_, err := db.Pool.Exec(context.Background(),
		`INSERT INTO admin_stock_entries (inventory_id, variation_key, quantity) VALUES ($1, $2, $3)`,
		itemID, string(key), quantity)
	if err != nil {
		t.Fatalf("Failed to create test admin stock: %v", err)
	}
}

// SetupTestSale records a sale line
func SetupTestSale(t *testing.T, db *TestDB, itemID int64, key models.VariationKey, quantity int) {
	t.Helper()

	_, err := db.Pool.Exec(context.Background(),
		`INSERT INTO sales (inventory_id, variation_key, quantity) VALUES ($1, $2, $3)`,
		itemID, string(key), quantity)
	if err != nil {
		t.Fatalf("Failed to create test sale: %v", err)
	}
}
