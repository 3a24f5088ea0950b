package jobs

import (
	"context"

	"github.com/Mrinankcoder/garment-vendor/internal/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultLowStockThreshold = 10

// StockAlertService periodically scans the catalog for sellable items
// running low so vendors can restock before orders start failing with
// insufficient stock.
type StockAlertService struct {
	itemRepo repositories.ItemRepository
	logger   *zap.Logger
}

type StockAlert struct {
	VendorID     uuid.UUID
	ItemID       uuid.UUID
	ItemName     string
	CurrentStock int
	Threshold    int
}

func NewStockAlertService(itemRepo repositories.ItemRepository, logger *zap.Logger) *StockAlertService {
	return &StockAlertService{
		itemRepo: itemRepo,
		logger:   logger,
	}
}

func (a *StockAlertService) CheckLowStock(ctx context.Context, threshold int) ([]StockAlert, error) {
	if threshold <= 0 {
		threshold = defaultLowStockThreshold
	}

	items, err := a.itemRepo.ListLowStock(ctx, threshold)
	if err != nil {
		a.logger.Error("failed to scan for low stock items", zap.Error(err))
		return nil, err
	}

	alerts := make([]StockAlert, 0, len(items))
	for _, item := range items {
		alerts = append(alerts, StockAlert{
			VendorID:     item.VendorID,
			ItemID:       item.ID,
			ItemName:     item.Name,
			CurrentStock: item.Quantity,
			Threshold:    threshold,
		})
	}

	return alerts, nil
}

func (a *StockAlertService) LogLowStockAlerts(alerts []StockAlert) {
	if len(alerts) == 0 {
		return
	}

	for _, alert := range alerts {
		a.logger.Warn("low stock",
			zap.String("vendor_id", alert.VendorID.String()),
			zap.String("item_id", alert.ItemID.String()),
			zap.String("item", alert.ItemName),
			zap.Int("quantity", alert.CurrentStock),
			zap.Int("threshold", alert.Threshold))
	}
}

func (a *StockAlertService) CheckAndLog(ctx context.Context, threshold int) error {
	alerts, err := a.CheckLowStock(ctx, threshold)
	if err != nil {
		return err
	}
	a.LogLowStockAlerts(alerts)
	return nil
}
