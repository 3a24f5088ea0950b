package repositories

import (
	"context"

	"github.com/Mrinankcoder/garment-vendor/internal/models"

	"github.com/google/uuid"
)

// OrderRepository is append-only: orders are immutable once created, so
// there is no update or delete path.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	List(ctx context.Context, limit, offset int) ([]*models.Order, error)
	ListByRetailer(ctx context.Context, retailerName string, limit, offset int) ([]*models.Order, error)
}

type orderRepo struct {
	db DB
}

func NewOrderRepo(db DB) OrderRepository {
	return &orderRepo{db: db}
}

func (r *orderRepo) Create(ctx context.Context, order *models.Order) error {
	query := `
		INSERT INTO orders (id, retailer_name, created_at)
		VALUES ($1, $2, NOW())
	`
	_, err := r.db.Exec(ctx, query, order.ID, order.RetailerName)
	return err
}

func (r *orderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order := &models.Order{}
	query := `
		SELECT id, retailer_name, created_at
		FROM orders
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&order.ID, &order.RetailerName, &order.CreatedAt)
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepo) List(ctx context.Context, limit, offset int) ([]*models.Order, error) {
	query := `
		SELECT id, retailer_name, created_at
		FROM orders
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	return r.queryOrders(ctx, query, limit, offset)
}

func (r *orderRepo) ListByRetailer(ctx context.Context, retailerName string, limit, offset int) ([]*models.Order, error) {
	query := `
		SELECT id, retailer_name, created_at
		FROM orders
		WHERE retailer_name = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	return r.queryOrders(ctx, query, retailerName, limit, offset)
}

func (r *orderRepo) queryOrders(ctx context.Context, query string, args ...any) ([]*models.Order, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		order := &models.Order{}
		if err := rows.Scan(&order.ID, &order.RetailerName, &order.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}
