package services

import (
	"context"
	"errors"
	"time"

	"github.com/Mrinankcoder/garment-vendor/internal/caching"
	"github.com/Mrinankcoder/garment-vendor/internal/models"
	"github.com/Mrinankcoder/garment-vendor/internal/repositories"

	"github.com/google/uuid"
)

const itemCacheTTL = 5 * time.Minute

// ItemService covers vendor-facing catalog maintenance. These are
// independent single-row writes with no cross-row invariants; only the
// placement engine ever moves stock for an order.
type ItemService interface {
	Create(ctx context.Context, item *models.Item) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error)
	Update(ctx context.Context, item *models.Item) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Item, error)
	ListByVendor(ctx context.Context, vendorID uuid.UUID, limit, offset int) ([]*models.Item, error)
	Search(ctx context.Context, filter *models.ItemSearchFilter) ([]*models.Item, error)
}

type itemService struct {
	itemRepo   repositories.ItemRepository
	vendorRepo repositories.VendorRepository
	cache      caching.CacheService
}

func NewItemService(itemRepo repositories.ItemRepository, vendorRepo repositories.VendorRepository, cache caching.CacheService) ItemService {
	return &itemService{
		itemRepo:   itemRepo,
		vendorRepo: vendorRepo,
		cache:      cache,
	}
}

func (s *itemService) validate(item *models.Item) error {
	if item.Name == "" {
		return errors.New("item name is required")
	}
	if item.VendorID == uuid.Nil {
		return errors.New("vendor ID is required")
	}
	if item.Quantity < 0 {
		return errors.New("quantity cannot be negative")
	}
	if item.UnitPrice.IsNegative() {
		return errors.New("unit price cannot be negative")
	}
	return nil
}

func (s *itemService) Create(ctx context.Context, item *models.Item) error {
	if err := s.validate(item); err != nil {
		return err
	}

	// The owning vendor must exist
	if _, err := s.vendorRepo.GetByID(ctx, item.VendorID); err != nil {
		return errors.New("vendor not found")
	}

	item.ID = uuid.New()

	return s.itemRepo.Create(ctx, item)
}

func (s *itemService) GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	if cached, err := s.cache.GetItem(ctx, id); err == nil && cached != nil {
		return cached, nil
	}

	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	_ = s.cache.SetItem(ctx, item, itemCacheTTL)
	return item, nil
}

func (s *itemService) Update(ctx context.Context, item *models.Item) error {
	if err := s.validate(item); err != nil {
		return err
	}

	if err := s.itemRepo.Update(ctx, item); err != nil {
		return err
	}

	_ = s.cache.DeleteItem(ctx, item.ID)
	_ = s.cache.DeleteVendorSummary(ctx, item.VendorID)
	return nil
}

func (s *itemService) Delete(ctx context.Context, id uuid.UUID) error {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.itemRepo.Delete(ctx, id); err != nil {
		return err
	}

	_ = s.cache.DeleteItem(ctx, id)
	_ = s.cache.DeleteVendorSummary(ctx, item.VendorID)
	return nil
}

func (s *itemService) List(ctx context.Context, limit, offset int) ([]*models.Item, error) {
	return s.itemRepo.List(ctx, limit, offset)
}

func (s *itemService) ListByVendor(ctx context.Context, vendorID uuid.UUID, limit, offset int) ([]*models.Item, error) {
	return s.itemRepo.ListByVendor(ctx, vendorID, limit, offset)
}

func (s *itemService) Search(ctx context.Context, filter *models.ItemSearchFilter) ([]*models.Item, error) {
	if filter == nil {
		return nil, errors.New("filter cannot be nil")
	}
	return s.itemRepo.AdvancedSearch(ctx, filter)
}
