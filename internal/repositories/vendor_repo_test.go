package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/Mrinankcoder/garment-vendor/internal/models"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type VendorRepoTestSuite struct {
	suite.Suite
	mock     pgxmock.PgxPoolIface
	repo     VendorRepository
	vendorID uuid.UUID
	context  context.Context
}

func (suite *VendorRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewVendorRepo(mock)
	suite.vendorID = uuid.New()
	suite.context = context.Background()
}

func (suite *VendorRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestVendorRepoTestSuite(t *testing.T) {
	suite.Run(t, new(VendorRepoTestSuite))
}

func (suite *VendorRepoTestSuite) TestCreate_Success() {
	vendor := &models.Vendor{
		ID:      suite.vendorID,
		Name:    "Northline Garments",
		Contact: "sales@northline.example",
	}

	suite.mock.ExpectExec(`INSERT INTO vendors`).
		WithArgs(vendor.ID, vendor.Name, vendor.Contact).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Create(suite.context, vendor)
	assert.NoError(suite.T(), err)
}

func (suite *VendorRepoTestSuite) TestGetByID_Success() {
	now := time.Now()
	suite.mock.ExpectQuery(`SELECT (.+) FROM vendors`).
		WithArgs(suite.vendorID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "contact", "created_at", "updated_at"}).
			AddRow(suite.vendorID, "Northline Garments", "sales@northline.example", now, now))

	vendor, err := suite.repo.GetByID(suite.context, suite.vendorID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Northline Garments", vendor.Name)
}

func (suite *VendorRepoTestSuite) TestStockSummary() {
	suite.mock.ExpectQuery(`SELECT COUNT\(\*\), COALESCE\(SUM\(quantity\), 0\)`).
		WithArgs(suite.vendorID).
		WillReturnRows(pgxmock.NewRows([]string{"count", "coalesce"}).AddRow(4, 37))

	summary, err := suite.repo.StockSummary(suite.context, suite.vendorID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.vendorID, summary.VendorID)
	assert.Equal(suite.T(), 4, summary.SellableItems)
	assert.Equal(suite.T(), 37, summary.TotalQuantity)
}

func (suite *VendorRepoTestSuite) TestDelete() {
	suite.mock.ExpectExec(`DELETE FROM vendors`).
		WithArgs(suite.vendorID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := suite.repo.Delete(suite.context, suite.vendorID)
	assert.NoError(suite.T(), err)
}
