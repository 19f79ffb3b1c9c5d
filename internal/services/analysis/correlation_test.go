package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cryptopulse/internal/domain/market"
	"cryptopulse/pkg/errors"
)

type stubProvider struct {
	histories map[string][]float64
}

func (s *stubProvider) PriceHistory(_ context.Context, coinID string, _ int) (*market.PriceHistory, error) {
	prices, ok := s.histories[coinID]
	if !ok {
		return nil, errors.ErrNoData
	}
	return historyFromPrices(coinID, prices), nil
}

func (s *stubProvider) CoinDetails(_ context.Context, coinID string) (*market.CoinDetails, error) {
	return nil, errors.ErrNotFound
}

func TestCorrelate_RealData(t *testing.T) {
	up := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	down := []float64{8, 7, 6, 5, 4, 3, 2, 1}

	provider := &stubProvider{histories: map[string][]float64{
		"bitcoin":  up,
		"ethereum": up,
		"inverse":  down,
	}}
	c := NewCorrelator(provider)

	result := c.Correlate(context.Background(), []string{"bitcoin", "ethereum", "inverse"}, 30)

	require.NotNil(t, result)
	assert.False(t, result.DemoData)
	assert.Equal(t, 30, result.Days)

	m := result.CorrelationMatrix
	require.Len(t, m, 3)

	// Diagonal is exactly 1
	for _, id := range []string{"bitcoin", "ethereum", "inverse"} {
		assert.Equal(t, 1.0, m[id][id])
	}

	// Identical series correlate perfectly, mirrored series inversely
	assert.InDelta(t, 1.0, m["bitcoin"]["ethereum"], 1e-9)
	assert.InDelta(t, -1.0, m["bitcoin"]["inverse"], 1e-9)

	// Symmetry
	assert.Equal(t, m["bitcoin"]["ethereum"], m["ethereum"]["bitcoin"])
	assert.Equal(t, m["bitcoin"]["inverse"], m["inverse"]["bitcoin"])
}

func TestCorrelate_TruncatesToShortestSeries(t *testing.T) {
	provider := &stubProvider{histories: map[string][]float64{
		"bitcoin":  {50, 60, 1, 2, 3, 4},
		"ethereum": {10, 20, 30, 40},
	}}
	c := NewCorrelator(provider)

	result := c.Correlate(context.Background(), []string{"bitcoin", "ethereum"}, 30)

	// Only the most recent 4 bitcoin points align with ethereum, and
	// those move in lockstep
	assert.InDelta(t, 1.0, result.CorrelationMatrix["bitcoin"]["ethereum"], 1e-9)
}

func TestCorrelate_ConstantSeriesFallsBackToZero(t *testing.T) {
	provider := &stubProvider{histories: map[string][]float64{
		"tether":  {1, 1, 1, 1, 1},
		"bitcoin": {1, 2, 3, 4, 5},
	}}
	c := NewCorrelator(provider)

	result := c.Correlate(context.Background(), []string{"tether", "bitcoin"}, 30)

	assert.Equal(t, 0.0, result.CorrelationMatrix["tether"]["bitcoin"])
	assert.Equal(t, 1.0, result.CorrelationMatrix["tether"]["tether"])
}

func TestCorrelate_DemoFallback(t *testing.T) {
	c := NewCorrelator(&stubProvider{histories: map[string][]float64{}})

	coins := []string{"bitcoin", "ethereum", "tether", "solana"}
	result := c.Correlate(context.Background(), coins, 7)

	require.True(t, result.DemoData)
	assert.Equal(t, 7, result.Days)

	m := result.CorrelationMatrix
	for _, id := range coins {
		assert.Equal(t, 1.0, m[id][id])
	}

	// Category bands from the demo model
	btcEth := m["bitcoin"]["ethereum"]
	assert.GreaterOrEqual(t, btcEth, 0.7)
	assert.Less(t, btcEth, 0.9)

	tetherBtc := m["tether"]["bitcoin"]
	assert.GreaterOrEqual(t, tetherBtc, 0.0)
	assert.Less(t, tetherBtc, 0.3)

	solEth := m["solana"]["ethereum"]
	assert.GreaterOrEqual(t, solEth, 0.3)
	assert.Less(t, solEth, 0.7)

	// Symmetric and deterministic across runs
	assert.Equal(t, m["bitcoin"]["ethereum"], m["ethereum"]["bitcoin"])
	again := c.Correlate(context.Background(), coins, 7)
	assert.Equal(t, m["bitcoin"]["ethereum"], again.CorrelationMatrix["bitcoin"]["ethereum"])

	// Known coins resolve to their display identity
	assert.Equal(t, "Bitcoin", result.CoinDetails["bitcoin"].Name)
	assert.Equal(t, "BTC", result.CoinDetails["bitcoin"].Symbol)
}

func TestPairSeed(t *testing.T) {
	s1 := pairSeed("bitcoin", "ethereum")
	s2 := pairSeed("ethereum", "bitcoin")

	assert.Equal(t, s1, s2, "seed must not depend on pair order")
	assert.GreaterOrEqual(t, s1, 0.0)
	assert.Less(t, s1, 1.0)
}

func TestFallbackCoinMeta(t *testing.T) {
	meta := fallbackCoinMeta("shiba-inu")
	assert.Equal(t, "Shiba-Inu", meta.Name)
	assert.Equal(t, "SHIB", meta.Symbol)

	short := fallbackCoinMeta("bat")
	assert.Equal(t, "BAT", short.Symbol)
}
