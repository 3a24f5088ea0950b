package models

import (
	"time"

	"github.com/google/uuid"
)

type ItemImage struct {
	ID        uuid.UUID `json:"id" db:"id"`
	ItemID    uuid.UUID `json:"item_id" db:"item_id"`
	ObjectKey string    `json:"object_key" db:"object_key"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
