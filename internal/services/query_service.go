package services

import (
	"context"
	"time"

	"github.com/Mrinankcoder/garment-vendor/internal/caching"
	"github.com/Mrinankcoder/garment-vendor/internal/models"
	"github.com/Mrinankcoder/garment-vendor/internal/repositories"

	"github.com/google/uuid"
)

const summaryCacheTTL = time.Minute

// QueryService is the read-only projection surface. It runs on the
// pool, outside any placement transaction, so it only ever observes
// committed state.
type QueryService interface {
	VendorStockSummary(ctx context.Context, vendorID uuid.UUID) (*models.VendorStockSummary, error)
	GetOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	OrderHistory(ctx context.Context, limit, offset int) ([]*models.Order, error)
	RetailerOrderHistory(ctx context.Context, retailerName string, limit, offset int) ([]*models.Order, error)
}

type queryService struct {
	vendorRepo    repositories.VendorRepository
	orderRepo     repositories.OrderRepository
	orderItemRepo repositories.OrderItemRepository
	cache         caching.CacheService
}

func NewQueryService(vendorRepo repositories.VendorRepository, orderRepo repositories.OrderRepository, orderItemRepo repositories.OrderItemRepository, cache caching.CacheService) QueryService {
	return &queryService{
		vendorRepo:    vendorRepo,
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		cache:         cache,
	}
}

func (s *queryService) VendorStockSummary(ctx context.Context, vendorID uuid.UUID) (*models.VendorStockSummary, error) {
	if cached, err := s.cache.GetVendorSummary(ctx, vendorID); err == nil && cached != nil {
		return cached, nil
	}

	summary, err := s.vendorRepo.StockSummary(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	_ = s.cache.SetVendorSummary(ctx, summary, summaryCacheTTL)
	return summary, nil
}

func (s *queryService) GetOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	items, err := s.orderItemRepo.ListByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return order, nil
}

func (s *queryService) OrderHistory(ctx context.Context, limit, offset int) ([]*models.Order, error) {
	orders, err := s.orderRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	return s.attachLines(ctx, orders)
}

func (s *queryService) RetailerOrderHistory(ctx context.Context, retailerName string, limit, offset int) ([]*models.Order, error) {
	orders, err := s.orderRepo.ListByRetailer(ctx, retailerName, limit, offset)
	if err != nil {
		return nil, err
	}
	return s.attachLines(ctx, orders)
}

func (s *queryService) attachLines(ctx context.Context, orders []*models.Order) ([]*models.Order, error) {
	for _, order := range orders {
		items, err := s.orderItemRepo.ListByOrderID(ctx, order.ID)
		if err != nil {
			return nil, err
		}
		order.Items = items
	}
	return orders, nil
}
