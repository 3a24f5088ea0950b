package models

import (
	"time"

	"github.com/google/uuid"
)

type Vendor struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Contact   string    `json:"contact" db:"contact"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// VendorStockSummary aggregates a vendor's currently sellable items.
type VendorStockSummary struct {
	VendorID      uuid.UUID `json:"vendor_id"`
	SellableItems int       `json:"sellable_items"`
	TotalQuantity int       `json:"total_quantity"`
}
