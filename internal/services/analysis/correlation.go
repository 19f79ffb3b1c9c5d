package analysis

import (
	"context"
	"hash/fnv"
	"math"
	"sort"
	"strings"
	"unicode"

	"cryptopulse/internal/domain/market"
	"cryptopulse/pkg/logger"
)

// PriceProvider supplies price history and coin identity for correlation
type PriceProvider interface {
	PriceHistory(ctx context.Context, coinID string, days int) (*market.PriceHistory, error)
	CoinDetails(ctx context.Context, coinID string) (*market.CoinDetails, error)
}

// CorrelationResult is the pairwise correlation payload
type CorrelationResult struct {
	CorrelationMatrix map[string]map[string]float64 `json:"correlation_matrix"`
	CoinDetails       map[string]market.CoinMeta    `json:"coin_details"`
	Days              int                           `json:"days"`
	DemoData          bool                          `json:"demo_data,omitempty"`
}

// Correlator computes pairwise price correlation across coins
type Correlator struct {
	provider PriceProvider
	log      *logger.Logger
}

// NewCorrelator creates a correlator backed by the given price provider
func NewCorrelator(provider PriceProvider) *Correlator {
	return &Correlator{
		provider: provider,
		log:      logger.Get().With("component", "correlator"),
	}
}

// Correlate builds the correlation matrix for the given coins. When any
// coin's history cannot be fetched the whole result degrades to the
// deterministic demo matrix, flagged with demo_data.
func (c *Correlator) Correlate(ctx context.Context, coinIDs []string, days int) *CorrelationResult {
	priceData := make(map[string][]float64, len(coinIDs))
	degraded := false

	for _, id := range coinIDs {
		history, err := c.provider.PriceHistory(ctx, id, days)
		if err != nil || history == nil || len(history.Prices) == 0 {
			degraded = true
			c.log.Warn("No price data for correlation", "coin_id", id, "error", err)
			continue
		}
		prices := make([]float64, len(history.Prices))
		for i, p := range history.Prices {
			prices[i] = p.Price
		}
		priceData[id] = prices
	}

	if degraded || len(priceData) < 2 {
		return &CorrelationResult{
			CorrelationMatrix: demoMatrix(coinIDs),
			CoinDetails:       demoCoinDetails(coinIDs),
			Days:              days,
			DemoData:          true,
		}
	}

	matrix := make(map[string]map[string]float64, len(priceData))
	for id := range priceData {
		matrix[id] = make(map[string]float64, len(priceData))
	}

	ids := make([]string, 0, len(priceData))
	for id := range priceData {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for i, a := range ids {
		matrix[a][a] = 1.0
		for _, b := range ids[i+1:] {
			corr := pairCorrelation(priceData[a], priceData[b])
			matrix[a][b] = corr
			matrix[b][a] = corr
		}
	}

	return &CorrelationResult{
		CorrelationMatrix: matrix,
		CoinDetails:       c.coinDetails(ctx, ids),
		Days:              days,
	}
}

// pairCorrelation truncates both series to the shared most-recent window
// and computes Pearson correlation. Degenerate inputs yield 0.
func pairCorrelation(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if n == 0 {
		return 0
	}
	corr := pearson(a[len(a)-n:], b[len(b)-n:])
	if math.IsNaN(corr) {
		return 0
	}
	return corr
}

// pearson is the standard product-moment correlation coefficient.
// Returns NaN when either series has zero variance.
func pearson(x, y []float64) float64 {
	n := float64(len(x))
	if n == 0 {
		return math.NaN()
	}

	var sumX, sumY float64
	for i := range x {
		sumX += x[i]
		sumY += y[i]
	}
	meanX, meanY := sumX/n, sumY/n

	var cov, varX, varY float64
	for i := range x {
		dx, dy := x[i]-meanX, y[i]-meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return math.NaN()
	}
	return cov / math.Sqrt(varX*varY)
}

// coinDetails resolves names and symbols, falling back to a derived
// identity when the lookup fails.
func (c *Correlator) coinDetails(ctx context.Context, ids []string) map[string]market.CoinMeta {
	out := make(map[string]market.CoinMeta, len(ids))
	for _, id := range ids {
		details, err := c.provider.CoinDetails(ctx, id)
		if err != nil || details == nil {
			out[id] = fallbackCoinMeta(id)
			continue
		}
		out[id] = market.CoinMeta{
			Name:   details.Name,
			Symbol: strings.ToUpper(details.Symbol),
		}
	}
	return out
}

// demoMatrix produces a plausible, deterministic correlation matrix:
// stablecoins correlate weakly with everything, bitcoin and ethereum
// strongly with each other, the rest moderately.
func demoMatrix(coinIDs []string) map[string]map[string]float64 {
	matrix := make(map[string]map[string]float64, len(coinIDs))
	for _, id := range coinIDs {
		matrix[id] = make(map[string]float64, len(coinIDs))
	}

	for i, a := range coinIDs {
		matrix[a][a] = 1.0
		for _, b := range coinIDs[i+1:] {
			if a == b {
				continue
			}
			seed := pairSeed(a, b)
			var corr float64
			switch {
			case isStablecoin(a) || isStablecoin(b):
				corr = seed * 0.3
			case (strings.Contains(a, "bitcoin") && strings.Contains(b, "ethereum")) ||
				(strings.Contains(b, "bitcoin") && strings.Contains(a, "ethereum")):
				corr = 0.7 + seed*0.2
			default:
				corr = 0.3 + seed*0.4
			}
			matrix[a][b] = corr
			matrix[b][a] = corr
		}
	}
	return matrix
}

// pairSeed maps an unordered coin pair to a stable value in [0, 1)
func pairSeed(a, b string) float64 {
	if a > b {
		a, b = b, a
	}
	h := fnv.New32a()
	h.Write([]byte(a + "-" + b))
	return float64(h.Sum32()%1000) / 1000.0
}

func isStablecoin(id string) bool {
	return strings.Contains(id, "tether") || strings.Contains(id, "usdc") ||
		strings.Contains(id, "usd-coin")
}

// knownCoins backs the demo correlation identity lookup
var knownCoins = map[string]market.CoinMeta{
	"bitcoin":       {Name: "Bitcoin", Symbol: "BTC"},
	"ethereum":      {Name: "Ethereum", Symbol: "ETH"},
	"tether":        {Name: "Tether", Symbol: "USDT"},
	"usd-coin":      {Name: "USD Coin", Symbol: "USDC"},
	"binancecoin":   {Name: "BNB", Symbol: "BNB"},
	"ripple":        {Name: "XRP", Symbol: "XRP"},
	"solana":        {Name: "Solana", Symbol: "SOL"},
	"cardano":       {Name: "Cardano", Symbol: "ADA"},
	"dogecoin":      {Name: "Dogecoin", Symbol: "DOGE"},
	"avalanche-2":   {Name: "Avalanche", Symbol: "AVAX"},
	"polkadot":      {Name: "Polkadot", Symbol: "DOT"},
	"matic-network": {Name: "Polygon", Symbol: "MATIC"},
	"litecoin":      {Name: "Litecoin", Symbol: "LTC"},
}

func demoCoinDetails(coinIDs []string) map[string]market.CoinMeta {
	out := make(map[string]market.CoinMeta, len(coinIDs))
	for _, id := range coinIDs {
		if meta, ok := knownCoins[id]; ok {
			out[id] = meta
			continue
		}
		out[id] = fallbackCoinMeta(id)
	}
	return out
}

func fallbackCoinMeta(id string) market.CoinMeta {
	symbol := strings.ToUpper(id)
	if len(id) > 3 {
		symbol = strings.ToUpper(id[:4])
	}
	return market.CoinMeta{Name: titleCase(id), Symbol: symbol}
}

// titleCase uppercases the first letter of each dash- or space-separated word
func titleCase(s string) string {
	out := []rune(s)
	upper := true
	for i, r := range out {
		switch {
		case upper && unicode.IsLetter(r):
			out[i] = unicode.ToUpper(r)
			upper = false
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			upper = true
		}
	}
	return string(out)
}
