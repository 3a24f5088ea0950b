package background

import (
	"context"
	"time"

	"github.com/Mrinankcoder/garment-vendor/internal/caching"
	"github.com/Mrinankcoder/garment-vendor/internal/jobs"
	"github.com/Mrinankcoder/garment-vendor/internal/repositories"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

const summaryRefreshTTL = time.Minute

// JobScheduler runs the platform's periodic maintenance jobs.
type JobScheduler struct {
	scheduler  gocron.Scheduler
	alertSvc   *jobs.StockAlertService
	vendorRepo repositories.VendorRepository
	cache      caching.CacheService
	logger     *zap.Logger
}

// NewJobScheduler creates a new job scheduler
func NewJobScheduler(alertSvc *jobs.StockAlertService, vendorRepo repositories.VendorRepository, cache caching.CacheService, logger *zap.Logger) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	js := &JobScheduler{
		scheduler:  scheduler,
		alertSvc:   alertSvc,
		vendorRepo: vendorRepo,
		cache:      cache,
		logger:     logger,
	}

	if err := js.registerJobs(); err != nil {
		return nil, err
	}

	return js, nil
}

// Start starts the job scheduler
func (js *JobScheduler) Start() {
	js.logger.Info("starting background job scheduler")
	js.scheduler.Start()
}

// Stop stops the job scheduler
func (js *JobScheduler) Stop() error {
	js.logger.Info("stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() error {
	// Low stock scan - every 15 minutes
	_, err := js.scheduler.NewJob(
		gocron.DurationJob(15*time.Minute),
		gocron.NewTask(js.runLowStockScan, context.Background()),
		gocron.WithName("low-stock-scan"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return err
	}

	// Vendor summary cache refresh - every minute
	_, err = js.scheduler.NewJob(
		gocron.DurationJob(time.Minute),
		gocron.NewTask(js.refreshVendorSummaries, context.Background()),
		gocron.WithName("vendor-summary-refresh"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	return err
}

func (js *JobScheduler) runLowStockScan(ctx context.Context) {
	if err := js.alertSvc.CheckAndLog(ctx, 0); err != nil {
		js.logger.Error("low stock scan failed", zap.Error(err))
	}
}

// refreshVendorSummaries recomputes each vendor's sellable stock
// summary into the cache so the read surface stays warm between
// placements.
func (js *JobScheduler) refreshVendorSummaries(ctx context.Context) {
	vendors, err := js.vendorRepo.List(ctx, 500, 0)
	if err != nil {
		js.logger.Error("failed to list vendors for summary refresh", zap.Error(err))
		return
	}

	for _, vendor := range vendors {
		summary, err := js.vendorRepo.StockSummary(ctx, vendor.ID)
		if err != nil {
			js.logger.Warn("failed to compute vendor summary",
				zap.String("vendor_id", vendor.ID.String()), zap.Error(err))
			continue
		}
		if err := js.cache.SetVendorSummary(ctx, summary, summaryRefreshTTL); err != nil {
			js.logger.Warn("failed to cache vendor summary",
				zap.String("vendor_id", vendor.ID.String()), zap.Error(err))
		}
	}
}
