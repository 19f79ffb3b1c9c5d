package analysis

import (
	"fmt"
	"math"

	"github.com/markcheno/go-talib"

	"cryptopulse/internal/domain/market"
	"cryptopulse/pkg/errors"
	"cryptopulse/pkg/logger"
)

// Moving average windows reported by the analyzer
var maWindows = []int{7, 14, 30, 50}

// VolatilityMetrics describes dispersion of daily returns. Fields are nil
// when the series is too short for the window.
type VolatilityMetrics struct {
	OverallVolatilityPercent *float64 `json:"overall_volatility_percent"`
	AvgDailyChange           *float64 `json:"avg_daily_change"`
	Volatility7d             *float64 `json:"volatility_7d"`
	Volatility14d            *float64 `json:"volatility_14d"`
	Volatility30d            *float64 `json:"volatility_30d"`
}

// MomentumMetrics carries rate-of-change values and trend flags
type MomentumMetrics struct {
	Roc7d         *float64 `json:"roc_7d"`
	Roc14d        *float64 `json:"roc_14d"`
	Roc30d        *float64 `json:"roc_30d"`
	IsUptrend714  bool     `json:"is_uptrend_7_14"`
	IsUptrend1430 bool     `json:"is_uptrend_14_30"`
}

// PricePrediction is the volatility-scaled 7-day range estimate
type PricePrediction struct {
	CurrentPrice float64 `json:"current_price"`
	LowerBound   float64 `json:"lower_bound"`
	UpperBound   float64 `json:"upper_bound"`
}

// AnalysisSummary is the headline interpretation of the metrics
type AnalysisSummary struct {
	Trend             string `json:"trend"`
	VolatilityLevel   string `json:"volatility_level"`
	RecentPerformance string `json:"recent_performance"`
}

// PriceAnalysis is the full analyzer output for one coin
type PriceAnalysis struct {
	CoinID          string              `json:"coin_id"`
	CurrentPrice    float64             `json:"current_price"`
	MovingAverages  map[string]*float64 `json:"moving_averages"`
	Volatility      VolatilityMetrics   `json:"volatility"`
	Momentum        MomentumMetrics     `json:"momentum"`
	PricePrediction PricePrediction     `json:"price_prediction"`
	Summary         AnalysisSummary     `json:"summary"`
}

// PriceAnalyzer computes trend, volatility and momentum metrics from a
// price history series.
type PriceAnalyzer struct {
	log *logger.Logger
}

// NewPriceAnalyzer creates a price analyzer
func NewPriceAnalyzer() *PriceAnalyzer {
	return &PriceAnalyzer{log: logger.Get().With("component", "price_analyzer")}
}

// Analyze runs the full metric suite over a price history.
// Returns ErrNoData when the history carries no price points.
func (pa *PriceAnalyzer) Analyze(history *market.PriceHistory) (*PriceAnalysis, error) {
	if history == nil || len(history.Prices) == 0 {
		return nil, errors.ErrNoData
	}

	prices := make([]float64, len(history.Prices))
	for i, p := range history.Prices {
		prices[i] = p.Price
	}
	n := len(prices)
	currentPrice := prices[n-1]

	mas := map[string]*float64{}
	for _, w := range maWindows {
		mas[fmt.Sprintf("MA%d", w)] = lastSMA(prices, w)
	}

	returns := dailyReturns(prices)
	vol := VolatilityMetrics{
		OverallVolatilityPercent: sampleStd(returns),
		AvgDailyChange:           meanAbsDiff(prices),
		Volatility7d:             sampleStd(tail(returns, 7)),
		Volatility14d:            sampleStd(tail(returns, 14)),
		Volatility30d:            sampleStd(tail(returns, 30)),
	}

	momentum := MomentumMetrics{
		Roc7d:         lastROC(prices, 7),
		Roc14d:        lastROC(prices, 14),
		Roc30d:        lastROC(prices, 30),
		IsUptrend714:  maAbove(mas["MA7"], mas["MA14"]),
		IsUptrend1430: maAbove(mas["MA14"], mas["MA30"]),
	}

	prediction := predictRange(currentPrice, vol.OverallVolatilityPercent)

	return &PriceAnalysis{
		CoinID:          history.ID,
		CurrentPrice:    currentPrice,
		MovingAverages:  mas,
		Volatility:      vol,
		Momentum:        momentum,
		PricePrediction: prediction,
		Summary: AnalysisSummary{
			Trend:             trendLabel(momentum),
			VolatilityLevel:   volatilityLevel(vol.OverallVolatilityPercent),
			RecentPerformance: recentPerformance(momentum.Roc7d),
		},
	}, nil
}

// predictRange estimates a 95% confidence band for the next 7 days,
// treating the observed volatility as a weekly figure scaled to daily.
func predictRange(currentPrice float64, volatility *float64) PricePrediction {
	vol := 0.0
	if volatility != nil {
		vol = *volatility
	}
	dailyVol := vol / math.Sqrt(7)
	weeklyRange := 1.96 * dailyVol * math.Sqrt(7)

	return PricePrediction{
		CurrentPrice: currentPrice,
		LowerBound:   currentPrice * (1 - weeklyRange/100),
		UpperBound:   currentPrice * (1 + weeklyRange/100),
	}
}

// trendLabel collapses the two MA crossover flags into a 4-way label.
// Mixed signals with the short-term cross down read as a moderate downtrend.
func trendLabel(m MomentumMetrics) string {
	switch {
	case m.IsUptrend714 && m.IsUptrend1430:
		return "Strong Uptrend"
	case m.IsUptrend714:
		return "Moderate Uptrend"
	case !m.IsUptrend714 && !m.IsUptrend1430:
		return "Strong Downtrend"
	default:
		return "Moderate Downtrend"
	}
}

func volatilityLevel(volatility *float64) string {
	vol := 0.0
	if volatility != nil {
		vol = *volatility
	}
	switch {
	case vol > 5:
		return "High"
	case vol > 2:
		return "Medium"
	default:
		return "Low"
	}
}

func recentPerformance(roc7 *float64) string {
	if roc7 == nil {
		return "0.00% (7d)"
	}
	return fmt.Sprintf("%.2f%% (7d)", *roc7)
}

// lastSMA returns the most recent simple moving average over the window,
// or nil while the window is not yet full.
func lastSMA(prices []float64, window int) *float64 {
	if len(prices) < window || window < 1 {
		return nil
	}
	sma := talib.Sma(prices, window)
	v := sma[len(sma)-1]
	return &v
}

// lastROC returns the latest rate of change over the period in percent,
// or nil when the series is shorter than the lookback.
func lastROC(prices []float64, period int) *float64 {
	if len(prices) <= period {
		return nil
	}
	roc := talib.Roc(prices, period)
	v := roc[len(roc)-1]
	return &v
}

func maAbove(short, long *float64) bool {
	return short != nil && long != nil && *short > *long
}

// dailyReturns is the percent change between consecutive prices
func dailyReturns(prices []float64) []float64 {
	if len(prices) < 2 {
		return nil
	}
	out := make([]float64, 0, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		if prices[i-1] == 0 {
			out = append(out, 0)
			continue
		}
		out = append(out, (prices[i]/prices[i-1]-1)*100)
	}
	return out
}

// sampleStd is the n-1 weighted standard deviation; nil below 2 samples
func sampleStd(values []float64) *float64 {
	if len(values) < 2 {
		return nil
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	std := math.Sqrt(sq / float64(len(values)-1))
	return &std
}

func meanAbsDiff(prices []float64) *float64 {
	if len(prices) < 2 {
		return nil
	}
	var sum float64
	for i := 1; i < len(prices); i++ {
		sum += math.Abs(prices[i] - prices[i-1])
	}
	v := sum / float64(len(prices)-1)
	return &v
}

func tail(values []float64, n int) []float64 {
	if len(values) <= n {
		return values
	}
	return values[len(values)-n:]
}
