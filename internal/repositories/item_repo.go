package repositories

import (
	"context"
	"fmt"

	"github.com/Mrinankcoder/garment-vendor/internal/models"

	"github.com/google/uuid"
)

type ItemRepository interface {
	Create(ctx context.Context, item *models.Item) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error)
	Update(ctx context.Context, item *models.Item) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Item, error)
	ListByVendor(ctx context.Context, vendorID uuid.UUID, limit, offset int) ([]*models.Item, error)
	ListLowStock(ctx context.Context, threshold int) ([]*models.Item, error)
	DecrementStock(ctx context.Context, id uuid.UUID, qty int) error
	AdvancedSearch(ctx context.Context, filter *models.ItemSearchFilter) ([]*models.Item, error)
}

type itemRepo struct {
	db DB
}

func NewItemRepo(db DB) ItemRepository {
	return &itemRepo{db: db}
}

func scanItem(row interface{ Scan(dest ...any) error }) (*models.Item, error) {
	item := &models.Item{}
	err := row.Scan(&item.ID, &item.VendorID, &item.Name, &item.Size, &item.Color, &item.UnitPrice, &item.Quantity, &item.Available, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *itemRepo) Create(ctx context.Context, item *models.Item) error {
	query := `
		INSERT INTO items (id, vendor_id, name, size, color, unit_price, quantity, available, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, item.ID, item.VendorID, item.Name, item.Size, item.Color, item.UnitPrice, item.Quantity, item.Available)
	return err
}

func (r *itemRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	query := `
		SELECT id, vendor_id, name, size, color, unit_price, quantity, available, created_at, updated_at
		FROM items
		WHERE id = $1
	`
	return scanItem(r.db.QueryRow(ctx, query, id))
}

func (r *itemRepo) Update(ctx context.Context, item *models.Item) error {
	query := `
		UPDATE items
		SET name = $1, size = $2, color = $3, unit_price = $4, quantity = $5, available = $6, updated_at = NOW()
		WHERE id = $7
	`
	_, err := r.db.Exec(ctx, query, item.Name, item.Size, item.Color, item.UnitPrice, item.Quantity, item.Available, item.ID)
	return err
}

func (r *itemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM items WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *itemRepo) List(ctx context.Context, limit, offset int) ([]*models.Item, error) {
	query := `
		SELECT id, vendor_id, name, size, color, unit_price, quantity, available, created_at, updated_at
		FROM items
		ORDER BY name
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *itemRepo) ListByVendor(ctx context.Context, vendorID uuid.UUID, limit, offset int) ([]*models.Item, error) {
	query := `
		SELECT id, vendor_id, name, size, color, unit_price, quantity, available, created_at, updated_at
		FROM items
		WHERE vendor_id = $1
		ORDER BY name
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, vendorID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// ListLowStock returns sellable items at or below the given threshold,
// for the background alert job.
func (r *itemRepo) ListLowStock(ctx context.Context, threshold int) ([]*models.Item, error) {
	query := `
		SELECT id, vendor_id, name, size, color, unit_price, quantity, available, created_at, updated_at
		FROM items
		WHERE available = TRUE AND quantity <= $1
		ORDER BY quantity
	`
	rows, err := r.db.Query(ctx, query, threshold)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// DecrementStock reduces quantity by qty. It performs no validation of
// its own: the placement engine has already verified qty against the
// current quantity inside the same transaction, keeping the
// check-then-act sequence behind one isolation boundary.
func (r *itemRepo) DecrementStock(ctx context.Context, id uuid.UUID, qty int) error {
	query := `
		UPDATE items
		SET quantity = quantity - $1, updated_at = NOW()
		WHERE id = $2
	`
	_, err := r.db.Exec(ctx, query, qty, id)
	return err
}

// AdvancedSearch performs filtered item search with pagination
func (r *itemRepo) AdvancedSearch(ctx context.Context, filter *models.ItemSearchFilter) ([]*models.Item, error) {
	if filter.Limit == 0 {
		filter.Limit = 50
	}
	if filter.SortBy == "" {
		filter.SortBy = "name"
	}
	if filter.SortOrder == "" {
		filter.SortOrder = "asc"
	}

	queryBase := `
		SELECT id, vendor_id, name, size, color, unit_price, quantity, available, created_at, updated_at
		FROM items
		WHERE 1=1
	`
	args := []any{}
	conditionCount := 0

	if filter.Query != "" {
		conditionCount++
		queryBase += fmt.Sprintf(` AND (name ILIKE $%d OR size ILIKE $%d OR color ILIKE $%d)`, conditionCount, conditionCount, conditionCount)
		args = append(args, "%"+filter.Query+"%")
	}
	if filter.VendorID != nil {
		conditionCount++
		queryBase += fmt.Sprintf(` AND vendor_id = $%d`, conditionCount)
		args = append(args, *filter.VendorID)
	}
	if filter.Available != nil {
		conditionCount++
		queryBase += fmt.Sprintf(` AND available = $%d`, conditionCount)
		args = append(args, *filter.Available)
	}
	if filter.MinQuantity != nil {
		conditionCount++
		queryBase += fmt.Sprintf(` AND quantity >= $%d`, conditionCount)
		args = append(args, *filter.MinQuantity)
	}
	if filter.MaxQuantity != nil {
		conditionCount++
		queryBase += fmt.Sprintf(` AND quantity <= $%d`, conditionCount)
		args = append(args, *filter.MaxQuantity)
	}
	if filter.MinPrice != nil {
		conditionCount++
		queryBase += fmt.Sprintf(` AND unit_price >= $%d`, conditionCount)
		args = append(args, *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		conditionCount++
		queryBase += fmt.Sprintf(` AND unit_price <= $%d`, conditionCount)
		args = append(args, *filter.MaxPrice)
	}

	// Whitelist sort fields to keep ORDER BY injection-safe
	sortBy := "name"
	switch filter.SortBy {
	case "name", "created_at", "quantity", "unit_price":
		sortBy = filter.SortBy
	}
	sortOrder := "ASC"
	if filter.SortOrder == "desc" {
		sortOrder = "DESC"
	}
	queryBase += fmt.Sprintf(` ORDER BY %s %s`, sortBy, sortOrder)

	conditionCount++
	queryBase += fmt.Sprintf(` LIMIT $%d`, conditionCount)
	args = append(args, filter.Limit)
	conditionCount++
	queryBase += fmt.Sprintf(` OFFSET $%d`, conditionCount)
	args = append(args, filter.Offset)

	rows, err := r.db.Query(ctx, queryBase, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
