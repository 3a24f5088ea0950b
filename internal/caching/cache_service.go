package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Mrinankcoder/garment-vendor/internal/models"
)

// CacheService fronts the read side of the catalog. Only committed
// state is ever cached: writers invalidate after their transaction
// commits, never before.
type CacheService interface {
	// Item caching
	GetItem(ctx context.Context, itemID uuid.UUID) (*models.Item, error)
	SetItem(ctx context.Context, item *models.Item, ttl time.Duration) error
	DeleteItem(ctx context.Context, itemID uuid.UUID) error

	// Vendor stock summary caching
	GetVendorSummary(ctx context.Context, vendorID uuid.UUID) (*models.VendorStockSummary, error)
	SetVendorSummary(ctx context.Context, summary *models.VendorStockSummary, ttl time.Duration) error
	DeleteVendorSummary(ctx context.Context, vendorID uuid.UUID) error

	// Cache invalidation
	InvalidateAll(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
	logger *zap.Logger
}

func NewRedisCacheService(addr, password string, db int, logger *zap.Logger) CacheService {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("redis ping failed on initialization", zap.String("addr", addr), zap.Error(err))
	}

	return &redisCacheService{client: client, logger: logger}
}

func itemKey(itemID uuid.UUID) string {
	return fmt.Sprintf("garment:item:%s", itemID.String())
}

func vendorSummaryKey(vendorID uuid.UUID) string {
	return fmt.Sprintf("garment:vendor-summary:%s", vendorID.String())
}

func (r *redisCacheService) GetItem(ctx context.Context, itemID uuid.UUID) (*models.Item, error) {
	data, err := r.client.Get(ctx, itemKey(itemID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var item models.Item
	if err := json.Unmarshal(data, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *redisCacheService) SetItem(ctx context.Context, item *models.Item, ttl time.Duration) error {
	data, err := json.Marshal(item)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, itemKey(item.ID), data, ttl).Err()
}

func (r *redisCacheService) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	return r.client.Del(ctx, itemKey(itemID)).Err()
}

func (r *redisCacheService) GetVendorSummary(ctx context.Context, vendorID uuid.UUID) (*models.VendorStockSummary, error) {
	data, err := r.client.Get(ctx, vendorSummaryKey(vendorID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var summary models.VendorStockSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (r *redisCacheService) SetVendorSummary(ctx context.Context, summary *models.VendorStockSummary, ttl time.Duration) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, vendorSummaryKey(summary.VendorID), data, ttl).Err()
}

func (r *redisCacheService) DeleteVendorSummary(ctx context.Context, vendorID uuid.UUID) error {
	return r.client.Del(ctx, vendorSummaryKey(vendorID)).Err()
}

func (r *redisCacheService) InvalidateAll(ctx context.Context) error {
	iter := r.client.Scan(ctx, 0, "garment:*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return r.client.Del(ctx, keys...).Err()
}
