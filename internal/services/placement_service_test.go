package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

var itemColumns = []string{"id", "vendor_id", "name", "size", "color", "unit_price", "quantity", "available", "created_at", "updated_at"}

type PlacementServiceTestSuite struct {
	suite.Suite
	mock     pgxmock.PgxPoolIface
	cache    *MockCacheService
	svc      PlacementServiceInterface
	vendorID uuid.UUID
	itemID   uuid.UUID
	context  context.Context
}

func (suite *PlacementServiceTestSuite) SetupTest() {
	mockPool, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mockPool

	suite.cache = new(MockCacheService)
	suite.svc = NewPlacementService(mockPool, suite.cache, zap.NewNop())
	suite.vendorID = uuid.New()
	suite.itemID = uuid.New()
	suite.context = context.Background()
}

func (suite *PlacementServiceTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestPlacementServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PlacementServiceTestSuite))
}

func (suite *PlacementServiceTestSuite) expectBegin() {
	suite.mock.ExpectBeginTx(pgx.TxOptions{IsoLevel: pgx.Serializable})
}

func (suite *PlacementServiceTestSuite) expectOrderInsert(retailer string) {
	suite.mock.ExpectExec(`INSERT INTO orders`).
		WithArgs(pgxmock.AnyArg(), retailer).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
}

func (suite *PlacementServiceTestSuite) expectItemRead(itemID uuid.UUID, price string, quantity int, available bool) {
	now := time.Now()
	suite.mock.ExpectQuery(`SELECT (.+) FROM items`).
		WithArgs(itemID).
		WillReturnRows(pgxmock.NewRows(itemColumns).
			AddRow(itemID, suite.vendorID, "Linen Shirt", "M", "White", price, quantity, available, now, now))
}

func (suite *PlacementServiceTestSuite) expectLineAppend(itemID uuid.UUID, qty int, price string) {
	suite.mock.ExpectExec(`INSERT INTO order_items`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), itemID, qty, decimal.RequireFromString(price)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
}

func (suite *PlacementServiceTestSuite) expectDecrement(itemID uuid.UUID, qty int) {
	suite.mock.ExpectExec(`UPDATE items`).
		WithArgs(qty, itemID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
}

func (suite *PlacementServiceTestSuite) placementKind(err error) FailureKind {
	placementErr, ok := err.(*PlacementError)
	if !assert.True(suite.T(), ok, "expected *PlacementError, got %v", err) {
		return ""
	}
	return placementErr.Kind
}

// Item A has quantity 5 at price 10.00; ordering 3 succeeds, captures
// the price, and leaves quantity 2.
func (suite *PlacementServiceTestSuite) TestPlaceOrder_Success() {
	suite.expectBegin()
	suite.expectOrderInsert("RetailerX")
	suite.expectItemRead(suite.itemID, "10.00", 5, true)
	suite.expectLineAppend(suite.itemID, 3, "10.00")
	suite.expectDecrement(suite.itemID, 3)
	suite.mock.ExpectCommit()

	suite.cache.On("DeleteItem", mock.Anything, suite.itemID).Return(nil)
	suite.cache.On("DeleteVendorSummary", mock.Anything, suite.vendorID).Return(nil)

	orderID, err := suite.svc.PlaceOrder(suite.context, "RetailerX", []OrderLine{{ItemID: suite.itemID, Quantity: 3}})
	assert.NoError(suite.T(), err)
	assert.NotEqual(suite.T(), uuid.Nil, orderID)

	// The committed decrement must evict the cached item so reads stop
	// serving the pre-placement quantity.
	suite.cache.AssertCalled(suite.T(), "DeleteItem", mock.Anything, suite.itemID)
	suite.cache.AssertExpectations(suite.T())
}

func (suite *PlacementServiceTestSuite) TestPlaceOrder_EmptyRetailerRejectedBeforeTransaction() {
	_, err := suite.svc.PlaceOrder(suite.context, "  ", []OrderLine{{ItemID: suite.itemID, Quantity: 1}})
	assert.Equal(suite.T(), KindInvalidRequest, suite.placementKind(err))
}

func (suite *PlacementServiceTestSuite) TestPlaceOrder_EmptyLinesRejectedBeforeTransaction() {
	_, err := suite.svc.PlaceOrder(suite.context, "RetailerX", nil)
	assert.Equal(suite.T(), KindInvalidRequest, suite.placementKind(err))
}

func (suite *PlacementServiceTestSuite) TestPlaceOrder_NonPositiveQuantityRejectedBeforeTransaction() {
	_, err := suite.svc.PlaceOrder(suite.context, "RetailerX", []OrderLine{{ItemID: suite.itemID, Quantity: 0}})
	assert.Equal(suite.T(), KindInvalidRequest, suite.placementKind(err))
}

// Only 2 units remain; requesting 3 aborts the whole placement and the
// order row is rolled back with it.
func (suite *PlacementServiceTestSuite) TestPlaceOrder_InsufficientStock() {
	suite.expectBegin()
	suite.expectOrderInsert("RetailerY")
	suite.expectItemRead(suite.itemID, "10.00", 2, true)
	suite.mock.ExpectRollback()

	_, err := suite.svc.PlaceOrder(suite.context, "RetailerY", []OrderLine{{ItemID: suite.itemID, Quantity: 3}})
	assert.Equal(suite.T(), KindInsufficientStock, suite.placementKind(err))

	placementErr := err.(*PlacementError)
	assert.Equal(suite.T(), suite.itemID, placementErr.ItemID)
	suite.cache.AssertNotCalled(suite.T(), "DeleteItem", mock.Anything, mock.Anything)
	suite.cache.AssertNotCalled(suite.T(), "DeleteVendorSummary", mock.Anything, mock.Anything)
}

// An unavailable item cannot be sold even with stock on hand.
func (suite *PlacementServiceTestSuite) TestPlaceOrder_UnavailableItem() {
	suite.expectBegin()
	suite.expectOrderInsert("RetailerX")
	suite.expectItemRead(suite.itemID, "10.00", 5, false)
	suite.mock.ExpectRollback()

	_, err := suite.svc.PlaceOrder(suite.context, "RetailerX", []OrderLine{{ItemID: suite.itemID, Quantity: 1}})
	assert.Equal(suite.T(), KindInsufficientStock, suite.placementKind(err))
}

// A missing item on the second line rolls back the first line's effects
// even though that line was individually valid.
func (suite *PlacementServiceTestSuite) TestPlaceOrder_MissingItemRollsBackValidLines() {
	missingID := uuid.New()

	suite.expectBegin()
	suite.expectOrderInsert("RetailerZ")
	suite.expectItemRead(suite.itemID, "10.00", 5, true)
	suite.expectLineAppend(suite.itemID, 1, "10.00")
	suite.expectDecrement(suite.itemID, 1)
	suite.mock.ExpectQuery(`SELECT (.+) FROM items`).
		WithArgs(missingID).
		WillReturnError(pgx.ErrNoRows)
	suite.mock.ExpectRollback()

	_, err := suite.svc.PlaceOrder(suite.context, "RetailerZ", []OrderLine{
		{ItemID: suite.itemID, Quantity: 1},
		{ItemID: missingID, Quantity: 1},
	})
	assert.Equal(suite.T(), KindNotFound, suite.placementKind(err))

	placementErr := err.(*PlacementError)
	assert.Equal(suite.T(), missingID, placementErr.ItemID)
}

// Duplicate-item lines are checked sequentially: the second line reads
// the stock the first line left behind, so the requested total is
// effectively cumulative.
func (suite *PlacementServiceTestSuite) TestPlaceOrder_DuplicateLinesObserveEarlierDecrement() {
	suite.expectBegin()
	suite.expectOrderInsert("RetailerX")
	suite.expectItemRead(suite.itemID, "10.00", 5, true)
	suite.expectLineAppend(suite.itemID, 3, "10.00")
	suite.expectDecrement(suite.itemID, 3)
	suite.expectItemRead(suite.itemID, "10.00", 2, true)
	suite.mock.ExpectRollback()

	_, err := suite.svc.PlaceOrder(suite.context, "RetailerX", []OrderLine{
		{ItemID: suite.itemID, Quantity: 3},
		{ItemID: suite.itemID, Quantity: 3},
	})
	assert.Equal(suite.T(), KindInsufficientStock, suite.placementKind(err))
}

func (suite *PlacementServiceTestSuite) TestPlaceOrder_DuplicateLinesWithinStockSucceed() {
	suite.expectBegin()
	suite.expectOrderInsert("RetailerX")
	suite.expectItemRead(suite.itemID, "10.00", 5, true)
	suite.expectLineAppend(suite.itemID, 2, "10.00")
	suite.expectDecrement(suite.itemID, 2)
	suite.expectItemRead(suite.itemID, "10.00", 3, true)
	suite.expectLineAppend(suite.itemID, 2, "10.00")
	suite.expectDecrement(suite.itemID, 2)
	suite.mock.ExpectCommit()

	suite.cache.On("DeleteItem", mock.Anything, suite.itemID).Return(nil)
	suite.cache.On("DeleteVendorSummary", mock.Anything, suite.vendorID).Return(nil)

	orderID, err := suite.svc.PlaceOrder(suite.context, "RetailerX", []OrderLine{
		{ItemID: suite.itemID, Quantity: 2},
		{ItemID: suite.itemID, Quantity: 2},
	})
	assert.NoError(suite.T(), err)
	assert.NotEqual(suite.T(), uuid.Nil, orderID)
}

// A serialization failure at commit surfaces as ConflictAborted with no
// partial effect; the caller may resubmit.
func (suite *PlacementServiceTestSuite) TestPlaceOrder_SerializationConflictAtCommit() {
	suite.expectBegin()
	suite.expectOrderInsert("RetailerX")
	suite.expectItemRead(suite.itemID, "10.00", 1, true)
	suite.expectLineAppend(suite.itemID, 1, "10.00")
	suite.expectDecrement(suite.itemID, 1)
	suite.mock.ExpectCommit().WillReturnError(&pgconn.PgError{Code: "40001"})

	_, err := suite.svc.PlaceOrder(suite.context, "RetailerX", []OrderLine{{ItemID: suite.itemID, Quantity: 1}})
	assert.Equal(suite.T(), KindConflictAborted, suite.placementKind(err))
	suite.cache.AssertNotCalled(suite.T(), "DeleteItem", mock.Anything, mock.Anything)
	suite.cache.AssertNotCalled(suite.T(), "DeleteVendorSummary", mock.Anything, mock.Anything)
}

// A serialization failure can also surface mid-statement when a
// concurrent placement touches the same rows.
func (suite *PlacementServiceTestSuite) TestPlaceOrder_SerializationConflictMidTransaction() {
	suite.expectBegin()
	suite.expectOrderInsert("RetailerX")
	suite.expectItemRead(suite.itemID, "10.00", 1, true)
	suite.expectLineAppend(suite.itemID, 1, "10.00")
	suite.mock.ExpectExec(`UPDATE items`).
		WithArgs(1, suite.itemID).
		WillReturnError(&pgconn.PgError{Code: "40001"})
	suite.mock.ExpectRollback()

	_, err := suite.svc.PlaceOrder(suite.context, "RetailerX", []OrderLine{{ItemID: suite.itemID, Quantity: 1}})
	assert.Equal(suite.T(), KindConflictAborted, suite.placementKind(err))
}

func (suite *PlacementServiceTestSuite) TestPlaceOrder_MultipleItemsSingleCommit() {
	secondItem := uuid.New()

	suite.expectBegin()
	suite.expectOrderInsert("RetailerX")
	suite.expectItemRead(suite.itemID, "10.00", 5, true)
	suite.expectLineAppend(suite.itemID, 3, "10.00")
	suite.expectDecrement(suite.itemID, 3)
	suite.expectItemRead(secondItem, "24.99", 2, true)
	suite.expectLineAppend(secondItem, 1, "24.99")
	suite.expectDecrement(secondItem, 1)
	suite.mock.ExpectCommit()

	suite.cache.On("DeleteItem", mock.Anything, suite.itemID).Return(nil)
	suite.cache.On("DeleteItem", mock.Anything, secondItem).Return(nil)
	suite.cache.On("DeleteVendorSummary", mock.Anything, suite.vendorID).Return(nil)

	orderID, err := suite.svc.PlaceOrder(suite.context, "RetailerX", []OrderLine{
		{ItemID: suite.itemID, Quantity: 3},
		{ItemID: secondItem, Quantity: 1},
	})
	assert.NoError(suite.T(), err)
	assert.NotEqual(suite.T(), uuid.Nil, orderID)

	suite.cache.AssertCalled(suite.T(), "DeleteItem", mock.Anything, suite.itemID)
	suite.cache.AssertCalled(suite.T(), "DeleteItem", mock.Anything, secondItem)
}
