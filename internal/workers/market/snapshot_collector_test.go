package market

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cryptopulse/internal/adapters/config"
	marketsvc "cryptopulse/internal/services/market"
)

func TestSnapshotCollector_Run(t *testing.T) {
	svc := marketsvc.NewService(marketsvc.NewDemoSource(), nil, config.CoinGeckoConfig{UseDemoData: true})
	collector := NewSnapshotCollector(svc, time.Minute, true)

	assert.Equal(t, "market_snapshot_collector", collector.Name())
	assert.Equal(t, time.Minute, collector.Interval())
	assert.True(t, collector.Enabled())

	require.NoError(t, collector.Run(context.Background()))

	health := collector.Health()
	assert.Equal(t, int64(1), health.RunCount)
	assert.Equal(t, int64(0), health.ErrorCount)
	assert.Nil(t, health.LastError)
}
