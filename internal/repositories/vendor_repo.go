package repositories

import (
	"context"

	"github.com/Mrinankcoder/garment-vendor/internal/models"

	"github.com/google/uuid"
)

type VendorRepository interface {
	Create(ctx context.Context, vendor *models.Vendor) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Vendor, error)
	Update(ctx context.Context, vendor *models.Vendor) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Vendor, error)
	StockSummary(ctx context.Context, id uuid.UUID) (*models.VendorStockSummary, error)
}

type vendorRepo struct {
	db DB
}

func NewVendorRepo(db DB) VendorRepository {
	return &vendorRepo{db: db}
}

func (r *vendorRepo) Create(ctx context.Context, vendor *models.Vendor) error {
	query := `
		INSERT INTO vendors (id, name, contact, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, vendor.ID, vendor.Name, vendor.Contact)
	return err
}

func (r *vendorRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Vendor, error) {
	vendor := &models.Vendor{}
	query := `
		SELECT id, name, contact, created_at, updated_at
		FROM vendors
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&vendor.ID, &vendor.Name, &vendor.Contact, &vendor.CreatedAt, &vendor.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return vendor, nil
}

func (r *vendorRepo) Update(ctx context.Context, vendor *models.Vendor) error {
	query := `
		UPDATE vendors
		SET name = $1, contact = $2, updated_at = NOW()
		WHERE id = $3
	`
	_, err := r.db.Exec(ctx, query, vendor.Name, vendor.Contact, vendor.ID)
	return err
}

// Delete removes the vendor; its items go with it via ON DELETE CASCADE.
func (r *vendorRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM vendors WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *vendorRepo) List(ctx context.Context, limit, offset int) ([]*models.Vendor, error) {
	query := `
		SELECT id, name, contact, created_at, updated_at
		FROM vendors
		ORDER BY name
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vendors []*models.Vendor
	for rows.Next() {
		vendor := &models.Vendor{}
		if err := rows.Scan(&vendor.ID, &vendor.Name, &vendor.Contact, &vendor.CreatedAt, &vendor.UpdatedAt); err != nil {
			return nil, err
		}
		vendors = append(vendors, vendor)
	}
	return vendors, rows.Err()
}

// StockSummary counts the vendor's sellable items and their total
// quantity on hand. Reads only committed state.
func (r *vendorRepo) StockSummary(ctx context.Context, id uuid.UUID) (*models.VendorStockSummary, error) {
	summary := &models.VendorStockSummary{VendorID: id}
	query := `
		SELECT COUNT(*), COALESCE(SUM(quantity), 0)
		FROM items
		WHERE vendor_id = $1 AND available = TRUE AND quantity > 0
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&summary.SellableItems, &summary.TotalQuantity)
	if err != nil {
		return nil, err
	}
	return summary, nil
}
