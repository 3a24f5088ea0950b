package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/Mrinankcoder/garment-vendor/internal/caching"
	"github.com/Mrinankcoder/garment-vendor/internal/models"
	"github.com/Mrinankcoder/garment-vendor/internal/repositories"
)

// OrderLine is one (item, quantity) pair of a placement request.
type OrderLine struct {
	ItemID   uuid.UUID `json:"item_id"`
	Quantity int       `json:"quantity"`
}

// PlacementServiceInterface defines the order placement engine.
type PlacementServiceInterface interface {
	PlaceOrder(ctx context.Context, retailerName string, lines []OrderLine) (uuid.UUID, error)
}

// txBeginner is the one capability the engine needs from the pool. It
// is satisfied by *pgxpool.Pool and by pgxmock in tests.
type txBeginner interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

type placementService struct {
	db     txBeginner
	cache  caching.CacheService
	logger *zap.Logger
}

// NewPlacementService creates a new order placement engine instance
func NewPlacementService(db txBeginner, cache caching.CacheService, logger *zap.Logger) PlacementServiceInterface {
	return &placementService{
		db:     db,
		cache:  cache,
		logger: logger,
	}
}

// PlaceOrder validates a multi-line order against live inventory,
// records one Order plus one priced OrderItem per line, and decrements
// stock, all inside a single serializable transaction. Any failure
// rolls back every effect, including the order row itself; the store
// ends in its exact pre-call state.
//
// Lines are processed in caller order. A line referencing the same item
// as an earlier line observes that line's decrement, so duplicate-item
// lines are checked sequentially and cumulatively rather than being
// merged up front.
func (s *placementService) PlaceOrder(ctx context.Context, retailerName string, lines []OrderLine) (uuid.UUID, error) {
	if strings.TrimSpace(retailerName) == "" {
		return uuid.Nil, invalidRequest("retailer name is required")
	}
	if len(lines) == 0 {
		return uuid.Nil, invalidRequest("order must contain at least one line")
	}
	for _, line := range lines {
		if line.Quantity <= 0 {
			return uuid.Nil, &PlacementError{
				Kind:   KindInvalidRequest,
				ItemID: line.ItemID,
				Reason: "quantity must be positive",
			}
		}
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return uuid.Nil, fmt.Errorf("begin placement transaction: %w", err)
	}
	// Rollback is a no-op once the transaction has committed.
	defer tx.Rollback(ctx)

	orderRepo := repositories.NewOrderRepo(tx)
	orderItemRepo := repositories.NewOrderItemRepo(tx)
	itemRepo := repositories.NewItemRepo(tx)

	// CreatedAt is assigned by the database on insert.
	order := &models.Order{
		ID:           uuid.New(),
		RetailerName: retailerName,
	}
	if err := orderRepo.Create(ctx, order); err != nil {
		return uuid.Nil, s.translateStoreError(err, "create order")
	}

	vendorIDs := make(map[uuid.UUID]struct{})
	itemIDs := make(map[uuid.UUID]struct{})
	for _, line := range lines {
		// Re-read through the transaction so this line observes any
		// decrement an earlier line applied to the same item.
		item, err := itemRepo.GetByID(ctx, line.ItemID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return uuid.Nil, itemNotFound(line.ItemID)
			}
			return uuid.Nil, s.translateStoreError(err, "read item")
		}

		if !item.Available {
			return uuid.Nil, insufficientStock(item.ID, "item is not available for sale")
		}
		if item.Quantity < line.Quantity {
			return uuid.Nil, insufficientStock(item.ID,
				fmt.Sprintf("requested %d units, %d in stock", line.Quantity, item.Quantity))
		}

		orderItem := &models.OrderItem{
			ID:              uuid.New(),
			OrderID:         order.ID,
			ItemID:          item.ID,
			Quantity:        line.Quantity,
			PriceAtPurchase: item.UnitPrice,
		}
		if err := orderItemRepo.Create(ctx, orderItem); err != nil {
			return uuid.Nil, s.translateStoreError(err, "append order line")
		}
		if err := itemRepo.DecrementStock(ctx, item.ID, line.Quantity); err != nil {
			return uuid.Nil, s.translateStoreError(err, "decrement stock")
		}

		vendorIDs[item.VendorID] = struct{}{}
		itemIDs[item.ID] = struct{}{}
	}

	if err := tx.Commit(ctx); err != nil {
		if isSerializationFailure(err) {
			return uuid.Nil, conflictAborted(err)
		}
		return uuid.Nil, fmt.Errorf("commit placement transaction: %w", err)
	}

	s.logger.Info("order placed",
		zap.String("order_id", order.ID.String()),
		zap.String("retailer", retailerName),
		zap.Int("lines", len(lines)))

	// Committed decrements make cached items and vendor summaries stale.
	for itemID := range itemIDs {
		if err := s.cache.DeleteItem(ctx, itemID); err != nil {
			s.logger.Warn("failed to invalidate item cache",
				zap.String("item_id", itemID.String()), zap.Error(err))
		}
	}
	for vendorID := range vendorIDs {
		if err := s.cache.DeleteVendorSummary(ctx, vendorID); err != nil {
			s.logger.Warn("failed to invalidate vendor summary cache",
				zap.String("vendor_id", vendorID.String()), zap.Error(err))
		}
	}

	return order.ID, nil
}

// translateStoreError maps mid-transaction store failures onto the
// placement taxonomy. Serialization conflicts can surface on any
// statement, not just commit.
func (s *placementService) translateStoreError(err error, op string) error {
	if isSerializationFailure(err) {
		return conflictAborted(err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// isSerializationFailure reports whether err is a Postgres
// serialization or deadlock abort (SQLSTATE 40001 or 40P01), the two
// conditions under which a concurrent placement forces this one to
// abort without effect.
func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}
