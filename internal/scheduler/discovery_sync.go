package scheduler

import (
	"context"
	"time"

	"github.com/flarehq/flare/internal/catalog"
	"github.com/flarehq/flare/internal/logger"
)

// DiscoverySyncer periodically refreshes the catalog from the enabled
// discovery sources. Cycles are single-flight: the catalog service
// collapses a timer tick that lands while a request-triggered cycle is
// still running into that in-flight cycle instead of overlapping it.
type DiscoverySyncer struct {
	catalog       *catalog.Service
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewDiscoverySyncer creates a new discovery syncer. manualTrigger may
// be nil when no manual refresh endpoint is wired.
func NewDiscoverySyncer(
	svc *catalog.Service,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *DiscoverySyncer {
	return &DiscoverySyncer{
		catalog:       svc,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start begins the periodic refresh loop. The first cycle runs on the
// first tick, not at startup: the initial catalog read triggers its
// own cycle anyway.
func (ds *DiscoverySyncer) Start(ctx context.Context) {
	ticker := time.NewTicker(ds.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				ds.run(ctx)
			case <-ds.manualTrigger:
				ds.logger.Info("manual discovery refresh triggered")
				ds.run(ctx)
			case <-ds.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the syncer.
func (ds *DiscoverySyncer) Stop() {
	close(ds.stopCh)
}

func (ds *DiscoverySyncer) run(ctx context.Context) {
	if err := ds.catalog.RefreshCatalog(ctx); err != nil {
		ds.logger.Error("periodic discovery refresh failed",
			logger.Error(err))
	}
}
