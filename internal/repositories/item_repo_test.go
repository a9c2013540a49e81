package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

var itemRowColumns = []string{"id", "name", "category", "location", "reorder_threshold", "supplier_id", "deleted", "updated_at"}

type ItemRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    ItemRepository
	context context.Context
	now     time.Time
}

func (suite *ItemRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	require.NoError(suite.T(), err)
	suite.mock = mock
	suite.repo = NewItemRepository(mock)
	suite.context = context.Background()
	suite.now = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
}

func (suite *ItemRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestItemRepoTestSuite(t *testing.T) {
	suite.Run(t, new(ItemRepoTestSuite))
}

func (suite *ItemRepoTestSuite) TestGetByID_Success() {
	supplier := int64(7)
	rows := pgxmock.NewRows(itemRowColumns).
		AddRow(int64(1), "Hammer", "Tools", "A1", 10, &supplier, false, suite.now)
	suite.mock.ExpectQuery(`FROM inventory_items WHERE id = \$1`).
		WithArgs(int64(1)).
		WillReturnRows(rows)

	item, err := suite.repo.GetByID(suite.context, 1)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Hammer", item.Name)
	assert.Equal(suite.T(), 10, item.ReorderThreshold)
	require.NotNil(suite.T(), item.SupplierID)
	assert.Equal(suite.T(), int64(7), *item.SupplierID)
}

func (suite *ItemRepoTestSuite) TestGetByID_NotFound() {
	suite.mock.ExpectQuery(`FROM inventory_items WHERE id = \$1`).
		WithArgs(int64(42)).
		WillReturnError(pgx.ErrNoRows)

	item, err := suite.repo.GetByID(suite.context, 42)
	assert.Nil(suite.T(), item)
	assert.True(suite.T(), errors.Is(err, ErrItemNotFound))
}

func (suite *ItemRepoTestSuite) TestListByNormalizedName() {
	rows := pgxmock.NewRows(itemRowColumns).
		AddRow(int64(1), "Hammer", "Tools", "A1", 10, (*int64)(nil), false, suite.now).
		AddRow(int64(2), " hammer ", "Tools", "B4", 12, (*int64)(nil), false, suite.now)
	suite.mock.ExpectQuery(`WHERE LOWER\(TRIM\(name\)\) = \$1 AND deleted = FALSE`).
		WithArgs("hammer").
		WillReturnRows(rows)

	items, err := suite.repo.ListByNormalizedName(suite.context, "hammer")
	require.NoError(suite.T(), err)
	require.Len(suite.T(), items, 2)
	assert.Equal(suite.T(), int64(2), items[1].ID)
	assert.Nil(suite.T(), items[0].SupplierID)
}

func (suite *ItemRepoTestSuite) TestListByNormalizedName_QueryError() {
	suite.mock.ExpectQuery(`FROM inventory_items`).
		WithArgs("paint").
		WillReturnError(errors.New("connection refused"))

	items, err := suite.repo.ListByNormalizedName(suite.context, "paint")
	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), items)
}

func (suite *ItemRepoTestSuite) TestListActive() {
	rows := pgxmock.NewRows(itemRowColumns).
		AddRow(int64(3), "Paint", "Decor", "C2", 5, (*int64)(nil), false, suite.now)
	suite.mock.ExpectQuery(`WHERE deleted = FALSE\s+ORDER BY id\s+LIMIT \$1 OFFSET \$2`).
		WithArgs(500, 0).
		WillReturnRows(rows)

	items, err := suite.repo.ListActive(suite.context, 500, 0)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), items, 1)
	assert.Equal(suite.T(), "Paint", items[0].Name)
}
