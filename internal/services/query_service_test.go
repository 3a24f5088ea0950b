package services

import (
	"context"
	"testing"

	"github.com/Mrinankcoder/garment-vendor/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) List(ctx context.Context, limit, offset int) ([]*models.Order, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByRetailer(ctx context.Context, retailerName string, limit, offset int) ([]*models.Order, error) {
	args := m.Called(ctx, retailerName, limit, offset)
	return args.Get(0).([]*models.Order), args.Error(1)
}

type MockOrderItemRepository struct {
	mock.Mock
}

func (m *MockOrderItemRepository) Create(ctx context.Context, orderItem *models.OrderItem) error {
	args := m.Called(ctx, orderItem)
	return args.Error(0)
}

func (m *MockOrderItemRepository) ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]*models.OrderItem, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]*models.OrderItem), args.Error(1)
}

func TestQueryServiceVendorStockSummary_CacheHit(t *testing.T) {
	vendorRepo := new(MockVendorRepository)
	cache := new(MockCacheService)
	svc := NewQueryService(vendorRepo, new(MockOrderRepository), new(MockOrderItemRepository), cache)

	vendorID := uuid.New()
	cached := &models.VendorStockSummary{VendorID: vendorID, SellableItems: 2, TotalQuantity: 9}
	cache.On("GetVendorSummary", mock.Anything, vendorID).Return(cached, nil)

	summary, err := svc.VendorStockSummary(context.Background(), vendorID)
	assert.NoError(t, err)
	assert.Equal(t, cached, summary)
	vendorRepo.AssertNotCalled(t, "StockSummary", mock.Anything, vendorID)
}

func TestQueryServiceVendorStockSummary_CacheMiss(t *testing.T) {
	vendorRepo := new(MockVendorRepository)
	cache := new(MockCacheService)
	svc := NewQueryService(vendorRepo, new(MockOrderRepository), new(MockOrderItemRepository), cache)

	vendorID := uuid.New()
	computed := &models.VendorStockSummary{VendorID: vendorID, SellableItems: 4, TotalQuantity: 37}
	cache.On("GetVendorSummary", mock.Anything, vendorID).Return(nil, nil)
	vendorRepo.On("StockSummary", mock.Anything, vendorID).Return(computed, nil)
	cache.On("SetVendorSummary", mock.Anything, computed, summaryCacheTTL).Return(nil)

	summary, err := svc.VendorStockSummary(context.Background(), vendorID)
	assert.NoError(t, err)
	assert.Equal(t, computed, summary)
	cache.AssertExpectations(t)
}

func TestQueryServiceGetOrder_AttachesCapturedLines(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	orderItemRepo := new(MockOrderItemRepository)
	svc := NewQueryService(new(MockVendorRepository), orderRepo, orderItemRepo, new(MockCacheService))

	orderID := uuid.New()
	order := &models.Order{ID: orderID, RetailerName: "RetailerX"}
	lines := []*models.OrderItem{
		{ID: uuid.New(), OrderID: orderID, ItemID: uuid.New(), Quantity: 3, PriceAtPurchase: decimal.RequireFromString("10.00")},
	}

	orderRepo.On("GetByID", mock.Anything, orderID).Return(order, nil)
	orderItemRepo.On("ListByOrderID", mock.Anything, orderID).Return(lines, nil)

	got, err := svc.GetOrder(context.Background(), orderID)
	assert.NoError(t, err)
	assert.Equal(t, lines, got.Items)
	assert.True(t, got.Items[0].PriceAtPurchase.Equal(decimal.RequireFromString("10.00")))
}

func TestQueryServiceOrderHistory(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	orderItemRepo := new(MockOrderItemRepository)
	svc := NewQueryService(new(MockVendorRepository), orderRepo, orderItemRepo, new(MockCacheService))

	first := &models.Order{ID: uuid.New(), RetailerName: "RetailerX"}
	second := &models.Order{ID: uuid.New(), RetailerName: "RetailerY"}

	orderRepo.On("List", mock.Anything, 50, 0).Return([]*models.Order{first, second}, nil)
	orderItemRepo.On("ListByOrderID", mock.Anything, first.ID).Return([]*models.OrderItem{{OrderID: first.ID}}, nil)
	orderItemRepo.On("ListByOrderID", mock.Anything, second.ID).Return([]*models.OrderItem{{OrderID: second.ID}}, nil)

	orders, err := svc.OrderHistory(context.Background(), 50, 0)
	assert.NoError(t, err)
	assert.Len(t, orders, 2)
	assert.Len(t, orders[0].Items, 1)
}
