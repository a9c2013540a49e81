package services

import (
	"context"
	"sync"

	"stockwatch/internal/models"
	"stockwatch/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockItemRepository mocks the ItemRepository interface for testing
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) GetByID(ctx context.Context, id int64) (*models.InventoryItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InventoryItem), args.Error(1)
}

func (m *MockItemRepository) ListByNormalizedName(ctx context.Context, normalizedName string) ([]*models.InventoryItem, error) {
	args := m.Called(ctx, normalizedName)
	return args.Get(0).([]*models.InventoryItem), args.Error(1)
}

func (m *MockItemRepository) ListActive(ctx context.Context, limit, offset int) ([]*models.InventoryItem, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.InventoryItem), args.Error(1)
}

// MockReceiptRepository mocks the ReceiptRepository interface for testing
type MockReceiptRepository struct {
	mock.Mock
}

func (m *MockReceiptRepository) ListCompleted(ctx context.Context, itemIDs []int64) ([]models.ReceivedEvent, error) {
	args := m.Called(ctx, itemIDs)
	return args.Get(0).([]models.ReceivedEvent), args.Error(1)
}

// MockAdminStockRepository mocks the AdminStockRepository interface for testing
type MockAdminStockRepository struct {
	mock.Mock
}

func (m *MockAdminStockRepository) ListPositive(ctx context.Context, itemIDs []int64) ([]models.ReceivedEvent, error) {
	args := m.Called(ctx, itemIDs)
	return args.Get(0).([]models.ReceivedEvent), args.Error(1)
}

// MockSaleRepository mocks the SaleRepository interface for testing
type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) ListByItems(ctx context.Context, itemIDs []int64) ([]models.SoldEvent, error) {
	args := m.Called(ctx, itemIDs)
	return args.Get(0).([]models.SoldEvent), args.Error(1)
}

// MockAlertRepository mocks the AlertRepository interface for testing
type MockAlertRepository struct {
	mock.Mock
}

func (m *MockAlertRepository) InsertIfAbsent(ctx context.Context, alert *models.Alert) (bool, error) {
	args := m.Called(ctx, alert)
	return args.Bool(0), args.Error(1)
}

func (m *MockAlertRepository) FindUnresolved(ctx context.Context, inventoryID int64, alertType models.AlertType, key models.VariationKey) (*models.Alert, error) {
	args := m.Called(ctx, inventoryID, alertType, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Alert), args.Error(1)
}

func (m *MockAlertRepository) CountUnresolved(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockAlertRepository) Resolve(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockSnapshotPublisher mocks the SnapshotPublisher interface for testing
type MockSnapshotPublisher struct {
	mock.Mock
}

func (m *MockSnapshotPublisher) PublishGroupStock(ctx context.Context, stock *models.GroupStock) error {
	args := m.Called(ctx, stock)
	return args.Error(0)
}

// memoryAlertStore keeps alert history in memory with the same insert-if-absent
// rule as the inventory_alerts partial unique index.
type memoryAlertStore struct {
	mu     sync.Mutex
	alerts []*models.Alert
}

var _ repositories.AlertRepository = (*memoryAlertStore)(nil)

func (s *memoryAlertStore) InsertIfAbsent(_ context.Context, alert *models.Alert) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.alerts {
		if !a.IsResolved && a.InventoryID == alert.InventoryID && a.AlertType == alert.AlertType && a.VariationKey == alert.VariationKey {
			return false, nil
		}
	}
	stored := *alert
	s.alerts = append(s.alerts, &stored)
	return true, nil
}

func (s *memoryAlertStore) FindUnresolved(_ context.Context, inventoryID int64, alertType models.AlertType, key models.VariationKey) (*models.Alert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.alerts {
		if !a.IsResolved && a.InventoryID == inventoryID && a.AlertType == alertType && a.VariationKey == key {
			found := *a
			return &found, nil
		}
	}
	return nil, repositories.ErrAlertNotFound
}

func (s *memoryAlertStore) CountUnresolved(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, a := range s.alerts {
		if !a.IsResolved {
			count++
		}
	}
	return count, nil
}

func (s *memoryAlertStore) Resolve(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.alerts {
		if a.ID == id && !a.IsResolved {
			a.IsResolved = true
			return nil
		}
	}
	return repositories.ErrAlertNotFound
}
