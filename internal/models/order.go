package models

import (
	"time"

	"github.com/google/uuid"
)

// Order is immutable once created. There is no update or cancel path;
// mistaken orders are handled by resubmitting a corrected request.
type Order struct {
	ID           uuid.UUID `json:"id" db:"id"`
	RetailerName string    `json:"retailer_name" db:"retailer_name"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`

	// Items is populated by the query surface when returning order
	// history; the order repository itself never scans it.
	Items []*OrderItem `json:"items,omitempty"`
}
