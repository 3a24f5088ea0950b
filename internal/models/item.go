package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemSearchFilter holds search and filter criteria for item queries
type ItemSearchFilter struct {
	Query       string           `json:"query,omitempty"`        // Full-text search across name, size, color
	VendorID    *uuid.UUID       `json:"vendor_id,omitempty"`    // Filter by owning vendor
	Available   *bool            `json:"available,omitempty"`    // Availability flag filter
	MinQuantity *int             `json:"min_quantity,omitempty"` // Minimum stock quantity
	MaxQuantity *int             `json:"max_quantity,omitempty"` // Maximum stock quantity
	MinPrice    *decimal.Decimal `json:"min_price,omitempty"`    // Minimum unit price
	MaxPrice    *decimal.Decimal `json:"max_price,omitempty"`    // Maximum unit price
	SortBy      string           `json:"sort_by,omitempty"`      // Sort field: name, created_at, quantity, unit_price
	SortOrder   string           `json:"sort_order,omitempty"`   // Sort order: asc, desc
	Limit       int              `json:"limit,omitempty"`        // Page size (default: 50)
	Offset      int              `json:"offset,omitempty"`       // Page offset
}

type Item struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	VendorID  uuid.UUID       `json:"vendor_id" db:"vendor_id"`
	Name      string          `json:"name" db:"name"`
	Size      string          `json:"size" db:"size"`
	Color     string          `json:"color" db:"color"`
	UnitPrice decimal.Decimal `json:"unit_price" db:"unit_price"`
	Quantity  int             `json:"quantity" db:"quantity"`
	Available bool            `json:"available" db:"available"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`
}

// Sellable reports whether the item can currently be sold: the vendor
// has not switched it off and at least one unit is on hand.
func (i *Item) Sellable() bool {
	return i.Available && i.Quantity > 0
}
