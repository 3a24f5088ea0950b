package repositories

import (
	"context"

	"github.com/Mrinankcoder/garment-vendor/internal/models"

	"github.com/google/uuid"
)

// OrderItemRepository is append-only like OrderRepository. The captured
// price_at_purchase is historical fact and must never be rewritten.
type OrderItemRepository interface {
	Create(ctx context.Context, orderItem *models.OrderItem) error
	ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]*models.OrderItem, error)
}

type orderItemRepo struct {
	db DB
}

func NewOrderItemRepo(db DB) OrderItemRepository {
	return &orderItemRepo{db: db}
}

func (r *orderItemRepo) Create(ctx context.Context, orderItem *models.OrderItem) error {
	query := `
		INSERT INTO order_items (id, order_id, item_id, quantity, price_at_purchase, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`
	_, err := r.db.Exec(ctx, query, orderItem.ID, orderItem.OrderID, orderItem.ItemID, orderItem.Quantity, orderItem.PriceAtPurchase)
	return err
}

func (r *orderItemRepo) ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]*models.OrderItem, error) {
	query := `
		SELECT id, order_id, item_id, quantity, price_at_purchase, created_at
		FROM order_items
		WHERE order_id = $1
		ORDER BY created_at
	`
	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orderItems []*models.OrderItem
	for rows.Next() {
		orderItem := &models.OrderItem{}
		if err := rows.Scan(&orderItem.ID, &orderItem.OrderID, &orderItem.ItemID, &orderItem.Quantity, &orderItem.PriceAtPurchase, &orderItem.CreatedAt); err != nil {
			return nil, err
		}
		orderItems = append(orderItems, orderItem)
	}
	return orderItems, rows.Err()
}
