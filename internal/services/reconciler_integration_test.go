package services

import (
	"context"
	"testing"
	"time"

	"stockwatch/internal/models"
	"stockwatch/internal/repositories"
	"stockwatch/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIntegrationReconciler(db *testhelpers.TestDB) (StockReconciler, repositories.AlertRepository) {
	itemRepo := repositories.NewItemRepository(db.Pool)
	alertRepo := repositories.NewAlertRepository(db.Pool)
	reader := NewLedgerReader(
		repositories.NewReceiptRepository(db.Pool),
		repositories.NewAdminStockRepository(db.Pool),
		repositories.NewSaleRepository(db.Pool),
		false,
	)
	reconciler := NewStockReconciler(itemRepo, NewGroupResolver(itemRepo), reader, NewAlertSynthesizer(alertRepo), nil)
	return reconciler, alertRepo
}

func TestReconcile_Postgres_HammerGroup(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	db := testhelpers.SetupTestDB(t, "")
	defer db.Cleanup()

	ctx := context.Background()
	first := testhelpers.SetupTestItem(t, db, "Hammer", 5)
	second := testhelpers.SetupTestItem(t, db, " hammer", 8)

	testhelpers.SetupTestReceipt(t, db, first, "", 10, "12.50", models.ReceiptStatusCompleted, time.Now().Add(-time.Hour))
	testhelpers.SetupTestReceipt(t, db, second, "", 4, "13.00", models.ReceiptStatusConfirmed, time.Now())
	testhelpers.SetupTestReceipt(t, db, second, "", 50, "", "pending", time.Now())
	testhelpers.SetupTestAdminStock(t, db, first, "", 100)
	testhelpers.SetupTestSale(t, db, first, "", 11)

	reconciler, alertRepo := newIntegrationReconciler(db)

	stock, err := reconciler.Reconcile(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, first, stock.InventoryID)
	assert.Equal(t, []int64{first, second}, stock.MemberIDs)
	assert.Equal(t, models.SourceCompletedOrder, stock.Source)
	assert.Equal(t, 5, stock.Threshold)
	assert.Equal(t, 3, stock.BaseStock)
	assert.Equal(t, "13", stock.BasePrice.Decimal.String())
	require.Len(t, stock.AlertsEmitted, 1)
	assert.Equal(t, models.AlertTypeLowStock, stock.AlertsEmitted[0].AlertType)
	assert.True(t, stock.AlertsEmitted[0].Created)

	again, err := reconciler.Reconcile(ctx, first)
	require.NoError(t, err)
	require.Len(t, again.AlertsEmitted, 1)
	assert.False(t, again.AlertsEmitted[0].Created)

	count, err := alertRepo.CountUnresolved(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, alertRepo.Resolve(ctx, *again.AlertsEmitted[0].AlertID))
	count, err = alertRepo.CountUnresolved(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestReconcile_Postgres_PaintVariations(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	db := testhelpers.SetupTestDB(t, "")
	defer db.Cleanup()

	ctx := context.Background()
	paint := testhelpers.SetupTestItem(t, db, "Paint", 5)

	blueGloss := testhelpers.Variation(map[string]string{"Color": "Blue", "Finish": "Gloss"})
	red := testhelpers.Variation(map[string]string{"Color": "Red"})

	testhelpers.SetupTestReceipt(t, db, paint, blueGloss, 10, "20.00", models.ReceiptStatusCompleted, time.Now())
	testhelpers.SetupTestReceipt(t, db, paint, red, 3, "", models.ReceiptStatusCompleted, time.Now())
	testhelpers.SetupTestSale(t, db, paint, testhelpers.Variation(map[string]string{" Finish ": "Gloss", "Color": "Blue"}), 2)

	reconciler, _ := newIntegrationReconciler(db)

	stock, err := reconciler.Reconcile(ctx, paint)
	require.NoError(t, err)
	assert.Equal(t, models.VariationKey("Color:Blue|Finish:Gloss"), blueGloss)
	assert.Equal(t, 8, stock.VariationStocks[blueGloss])
	assert.Equal(t, 3, stock.VariationStocks[red])

	require.Len(t, stock.AlertsEmitted, 1)
	assert.Equal(t, red, stock.AlertsEmitted[0].VariationKey)
	assert.Equal(t, models.AlertTypeLowStock, stock.AlertsEmitted[0].AlertType)
}
