package services

import (
	"context"
	"errors"

	"github.com/Mrinankcoder/garment-vendor/internal/models"
	"github.com/Mrinankcoder/garment-vendor/internal/repositories"

	"github.com/google/uuid"
)

type VendorService interface {
	Create(ctx context.Context, vendor *models.Vendor) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Vendor, error)
	Update(ctx context.Context, vendor *models.Vendor) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Vendor, error)
}

type vendorService struct {
	vendorRepo repositories.VendorRepository
}

func NewVendorService(vendorRepo repositories.VendorRepository) VendorService {
	return &vendorService{
		vendorRepo: vendorRepo,
	}
}

func (s *vendorService) Create(ctx context.Context, vendor *models.Vendor) error {
	if vendor.Name == "" {
		return errors.New("vendor name is required")
	}

	vendor.ID = uuid.New()

	return s.vendorRepo.Create(ctx, vendor)
}

func (s *vendorService) GetByID(ctx context.Context, id uuid.UUID) (*models.Vendor, error) {
	return s.vendorRepo.GetByID(ctx, id)
}

func (s *vendorService) Update(ctx context.Context, vendor *models.Vendor) error {
	if vendor.Name == "" {
		return errors.New("vendor name is required")
	}

	return s.vendorRepo.Update(ctx, vendor)
}

func (s *vendorService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.vendorRepo.Delete(ctx, id)
}

func (s *vendorService) List(ctx context.Context, limit, offset int) ([]*models.Vendor, error) {
	return s.vendorRepo.List(ctx, limit, offset)
}
