package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItem references an Item without owning it. PriceAtPurchase is
// captured when the order is placed and is the sole source of truth for
// the line's cost; later changes to the item's price never touch it.
type OrderItem struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	OrderID         uuid.UUID       `json:"order_id" db:"order_id"`
	ItemID          uuid.UUID       `json:"item_id" db:"item_id"`
	Quantity        int             `json:"quantity" db:"quantity"`
	PriceAtPurchase decimal.Decimal `json:"price_at_purchase" db:"price_at_purchase"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
}
