package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cryptopulse/internal/domain/market"
	"cryptopulse/pkg/errors"
)

func historyFromPrices(id string, prices []float64) *market.PriceHistory {
	pts := make([]market.PricePoint, len(prices))
	for i, p := range prices {
		pts[i] = market.PricePoint{Timestamp: int64(i) * 86400000, Price: p}
	}
	return &market.PriceHistory{ID: id, Prices: pts}
}

func TestAnalyze_NoData(t *testing.T) {
	pa := NewPriceAnalyzer()

	_, err := pa.Analyze(&market.PriceHistory{ID: "bitcoin"})
	assert.ErrorIs(t, err, errors.ErrNoData)

	_, err = pa.Analyze(nil)
	assert.ErrorIs(t, err, errors.ErrNoData)
}

func TestAnalyze_MovingAverages(t *testing.T) {
	pa := NewPriceAnalyzer()

	// Linear ramp 1..60 makes window means easy to verify
	prices := make([]float64, 60)
	for i := range prices {
		prices[i] = float64(i + 1)
	}

	result, err := pa.Analyze(historyFromPrices("bitcoin", prices))
	require.NoError(t, err)

	require.NotNil(t, result.MovingAverages["MA7"])
	require.NotNil(t, result.MovingAverages["MA50"])
	assert.InDelta(t, 57.0, *result.MovingAverages["MA7"], 1e-9)  // mean of 54..60
	assert.InDelta(t, 35.5, *result.MovingAverages["MA50"], 1e-9) // mean of 11..60
	assert.Equal(t, 60.0, result.CurrentPrice)
}

func TestAnalyze_ShortSeries(t *testing.T) {
	pa := NewPriceAnalyzer()

	result, err := pa.Analyze(historyFromPrices("bitcoin", []float64{100, 101, 102}))
	require.NoError(t, err)

	assert.Nil(t, result.MovingAverages["MA7"])
	assert.Nil(t, result.MovingAverages["MA14"])
	assert.Nil(t, result.MovingAverages["MA30"])
	assert.Nil(t, result.MovingAverages["MA50"])
	assert.Nil(t, result.Momentum.Roc7d)
	assert.False(t, result.Momentum.IsUptrend714)
	assert.False(t, result.Momentum.IsUptrend1430)
	// Without both crossover signals the label degrades pessimistically
	assert.Equal(t, "Strong Downtrend", result.Summary.Trend)
}

func TestAnalyze_UptrendLabel(t *testing.T) {
	pa := NewPriceAnalyzer()

	prices := make([]float64, 40)
	for i := range prices {
		prices[i] = 100 + float64(i)*2
	}

	result, err := pa.Analyze(historyFromPrices("ethereum", prices))
	require.NoError(t, err)

	assert.True(t, result.Momentum.IsUptrend714)
	assert.True(t, result.Momentum.IsUptrend1430)
	assert.Equal(t, "Strong Uptrend", result.Summary.Trend)
}

func TestTrendLabel(t *testing.T) {
	cases := []struct {
		name     string
		up714    bool
		up1430   bool
		expected string
	}{
		{"both up", true, true, "Strong Uptrend"},
		{"short up only", true, false, "Moderate Uptrend"},
		{"both down", false, false, "Strong Downtrend"},
		{"long up only", false, true, "Moderate Downtrend"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			label := trendLabel(MomentumMetrics{IsUptrend714: tc.up714, IsUptrend1430: tc.up1430})
			assert.Equal(t, tc.expected, label)
		})
	}
}

func TestVolatilityLevel(t *testing.T) {
	high := 5.1
	mid := 2.1
	low := 2.0

	assert.Equal(t, "High", volatilityLevel(&high))
	assert.Equal(t, "Medium", volatilityLevel(&mid))
	assert.Equal(t, "Low", volatilityLevel(&low))
	assert.Equal(t, "Low", volatilityLevel(nil))
}

func TestPredictRange(t *testing.T) {
	vol := 3.0
	p := predictRange(100, &vol)

	// Weekly band works out to 1.96 * volatility
	assert.InDelta(t, 100*(1-0.0588), p.LowerBound, 1e-9)
	assert.InDelta(t, 100*(1+0.0588), p.UpperBound, 1e-9)
	assert.Equal(t, 100.0, p.CurrentPrice)

	flat := predictRange(100, nil)
	assert.Equal(t, 100.0, flat.LowerBound)
	assert.Equal(t, 100.0, flat.UpperBound)
}

func TestSampleStd(t *testing.T) {
	assert.Nil(t, sampleStd(nil))
	assert.Nil(t, sampleStd([]float64{1}))

	std := sampleStd([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	require.NotNil(t, std)
	assert.InDelta(t, 2.138, *std, 0.001)
}
