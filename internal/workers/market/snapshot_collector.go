package market

import (
	"context"
	"time"

	"cryptopulse/internal/metrics"
	marketsvc "cryptopulse/internal/services/market"
	"cryptopulse/internal/workers"
)

// top coin pages warmed on every run
var warmedLimits = []int{10, 50, 100}

// SnapshotCollector keeps the market data cache warm so dashboard
// endpoints serve from Redis even when the upstream is rate limited.
type SnapshotCollector struct {
	*workers.BaseWorker
	market *marketsvc.Service
}

// NewSnapshotCollector creates the cache warming worker
func NewSnapshotCollector(market *marketsvc.Service, interval time.Duration, enabled bool) *SnapshotCollector {
	return &SnapshotCollector{
		BaseWorker: workers.NewBaseWorker("market_snapshot_collector", interval, enabled),
		market:     market,
	}
}

// Run refreshes the cached market snapshots
func (c *SnapshotCollector) Run(ctx context.Context) error {
	start := time.Now()
	log := c.Log()

	var firstErr error
	record := func(name string, err error) {
		if err != nil {
			log.Warn("Snapshot refresh failed", "snapshot", name, "error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	for _, limit := range warmedLimits {
		_, err := c.market.TopCoins(ctx, limit)
		record("top_coins", err)
	}

	_, err := c.market.GlobalOverview(ctx)
	record("overview", err)

	_, err = c.market.Trending(ctx)
	record("trending", err)

	_, err = c.market.Movers(ctx, 5)
	record("movers", err)

	elapsed := time.Since(start)
	metrics.RecordWorkerExecution(c.Name(), elapsed, firstErr)

	if firstErr != nil {
		c.RecordError(firstErr, elapsed)
		return firstErr
	}

	c.RecordRun(elapsed)
	log.Debug("Market snapshots refreshed", "elapsed", elapsed)
	return nil
}
