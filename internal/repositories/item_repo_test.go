package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/Mrinankcoder/garment-vendor/internal/models"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type ItemRepoTestSuite struct {
	suite.Suite
	mock     pgxmock.PgxPoolIface
	repo     ItemRepository
	vendorID uuid.UUID
	itemID   uuid.UUID
	context  context.Context
}

func (suite *ItemRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewItemRepo(mock)
	suite.vendorID = uuid.New()
	suite.itemID = uuid.New()
	suite.context = context.Background()
}

func (suite *ItemRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestItemRepoTestSuite(t *testing.T) {
	suite.Run(t, new(ItemRepoTestSuite))
}

func (suite *ItemRepoTestSuite) itemRows(quantity int, available bool) *pgxmock.Rows {
	now := time.Now()
	return pgxmock.NewRows([]string{"id", "vendor_id", "name", "size", "color", "unit_price", "quantity", "available", "created_at", "updated_at"}).
		AddRow(suite.itemID, suite.vendorID, "Linen Shirt", "M", "White", "10.00", quantity, available, now, now)
}

func (suite *ItemRepoTestSuite) TestCreate_Success() {
	item := &models.Item{
		ID:        suite.itemID,
		VendorID:  suite.vendorID,
		Name:      "Linen Shirt",
		Size:      "M",
		Color:     "White",
		UnitPrice: decimal.RequireFromString("10.00"),
		Quantity:  5,
		Available: true,
	}

	suite.mock.ExpectExec(`INSERT INTO items`).
		WithArgs(item.ID, item.VendorID, item.Name, item.Size, item.Color, item.UnitPrice, item.Quantity, item.Available).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Create(suite.context, item)
	assert.NoError(suite.T(), err)
}

func (suite *ItemRepoTestSuite) TestGetByID_Success() {
	suite.mock.ExpectQuery(`SELECT (.+) FROM items`).
		WithArgs(suite.itemID).
		WillReturnRows(suite.itemRows(5, true))

	item, err := suite.repo.GetByID(suite.context, suite.itemID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.itemID, item.ID)
	assert.Equal(suite.T(), 5, item.Quantity)
	assert.True(suite.T(), item.Sellable())
	assert.True(suite.T(), item.UnitPrice.Equal(decimal.RequireFromString("10.00")))
}

func (suite *ItemRepoTestSuite) TestGetByID_NotFound() {
	suite.mock.ExpectQuery(`SELECT (.+) FROM items`).
		WithArgs(suite.itemID).
		WillReturnError(pgx.ErrNoRows)

	item, err := suite.repo.GetByID(suite.context, suite.itemID)
	assert.ErrorIs(suite.T(), err, pgx.ErrNoRows)
	assert.Nil(suite.T(), item)
}

// Two consecutive reads with no intervening write return identical values.
func (suite *ItemRepoTestSuite) TestGetByID_IdempotentReads() {
	now := time.Now()
	for i := 0; i < 2; i++ {
		suite.mock.ExpectQuery(`SELECT (.+) FROM items`).
			WithArgs(suite.itemID).
			WillReturnRows(pgxmock.NewRows([]string{"id", "vendor_id", "name", "size", "color", "unit_price", "quantity", "available", "created_at", "updated_at"}).
				AddRow(suite.itemID, suite.vendorID, "Linen Shirt", "M", "White", "10.00", 5, true, now, now))
	}

	first, err := suite.repo.GetByID(suite.context, suite.itemID)
	assert.NoError(suite.T(), err)
	second, err := suite.repo.GetByID(suite.context, suite.itemID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), first, second)
}

func (suite *ItemRepoTestSuite) TestDecrementStock() {
	suite.mock.ExpectExec(`UPDATE items`).
		WithArgs(3, suite.itemID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := suite.repo.DecrementStock(suite.context, suite.itemID, 3)
	assert.NoError(suite.T(), err)
}

func (suite *ItemRepoTestSuite) TestListLowStock() {
	suite.mock.ExpectQuery(`SELECT (.+) FROM items`).
		WithArgs(10).
		WillReturnRows(suite.itemRows(2, true))

	items, err := suite.repo.ListLowStock(suite.context, 10)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), items, 1)
	assert.Equal(suite.T(), 2, items[0].Quantity)
}

func (suite *ItemRepoTestSuite) TestListByVendor() {
	suite.mock.ExpectQuery(`SELECT (.+) FROM items`).
		WithArgs(suite.vendorID, 50, 0).
		WillReturnRows(suite.itemRows(5, true))

	items, err := suite.repo.ListByVendor(suite.context, suite.vendorID, 50, 0)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), items, 1)
	assert.Equal(suite.T(), suite.vendorID, items[0].VendorID)
}

func (suite *ItemRepoTestSuite) TestDelete() {
	suite.mock.ExpectExec(`DELETE FROM items`).
		WithArgs(suite.itemID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := suite.repo.Delete(suite.context, suite.itemID)
	assert.NoError(suite.T(), err)
}
