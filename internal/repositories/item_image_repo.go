package repositories

import (
	"context"

	"github.com/Mrinankcoder/garment-vendor/internal/models"

	"github.com/google/uuid"
)

type ItemImageRepository interface {
	Create(ctx context.Context, image *models.ItemImage) error
	ListByItemID(ctx context.Context, itemID uuid.UUID) ([]*models.ItemImage, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type itemImageRepo struct {
	db DB
}

func NewItemImageRepo(db DB) ItemImageRepository {
	return &itemImageRepo{db: db}
}

func (r *itemImageRepo) Create(ctx context.Context, image *models.ItemImage) error {
	query := `
		INSERT INTO item_images (id, item_id, object_key, created_at)
		VALUES ($1, $2, $3, NOW())
	`
	_, err := r.db.Exec(ctx, query, image.ID, image.ItemID, image.ObjectKey)
	return err
}

func (r *itemImageRepo) ListByItemID(ctx context.Context, itemID uuid.UUID) ([]*models.ItemImage, error) {
	query := `
		SELECT id, item_id, object_key, created_at
		FROM item_images
		WHERE item_id = $1
		ORDER BY created_at
	`
	rows, err := r.db.Query(ctx, query, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []*models.ItemImage
	for rows.Next() {
		image := &models.ItemImage{}
		if err := rows.Scan(&image.ID, &image.ItemID, &image.ObjectKey, &image.CreatedAt); err != nil {
			return nil, err
		}
		images = append(images, image)
	}
	return images, rows.Err()
}

func (r *itemImageRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM item_images WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}
