package market

import (
	"context"
	"hash/fnv"
	"math"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	domain "cryptopulse/internal/domain/market"
)

// Synthetic series parameters: 3% daily volatility with a slight upward
// drift and a gentle seasonal wave, volume tracking move size.
const (
	demoVolatility  = 0.03
	demoSeasonalAmp = 0.005
)

// DemoSource generates deterministic synthetic market data. Series are
// seeded per coin id so repeated requests return identical charts.
type DemoSource struct{}

// NewDemoSource creates the synthetic source
func NewDemoSource() *DemoSource {
	return &DemoSource{}
}

// TopCoins returns the static demo listing truncated to limit
func (s *DemoSource) TopCoins(_ context.Context, limit int) ([]domain.Coin, error) {
	coins := demoCoins()
	if limit < len(coins) {
		coins = coins[:limit]
	}
	return coins, nil
}

// CoinDetails derives a detail payload from the demo listing
func (s *DemoSource) CoinDetails(_ context.Context, coinID string) (*domain.CoinDetails, error) {
	var coin *domain.Coin
	coins := demoCoins()
	for i := range coins {
		if coins[i].ID == coinID {
			coin = &coins[i]
			break
		}
	}

	details := &domain.CoinDetails{
		ID:     coinID,
		Symbol: coinID,
		Name:   coinID,
	}
	price := decimal.NewFromFloat(demoBasePrice(coinID))
	if coin != nil {
		details.Symbol = coin.Symbol
		details.Name = coin.Name
		details.Image = domain.CoinImage{Large: coin.Image}
		price = coin.CurrentPrice
		details.MarketData.MarketCapRank = coin.MarketCapRank
		if coin.PriceChangePercentage24h != nil {
			details.MarketData.PriceChangePercentage24h = *coin.PriceChangePercentage24h
		}
		if coin.PriceChangePercentage7d != nil {
			details.MarketData.PriceChangePercentage7d = *coin.PriceChangePercentage7d
		}
		if coin.PriceChangePercentage30d != nil {
			details.MarketData.PriceChangePercentage30d = *coin.PriceChangePercentage30d
		}
		details.MarketData.MarketCap = map[string]decimal.Decimal{"usd": coin.MarketCap}
		details.MarketData.TotalVolume = map[string]decimal.Decimal{"usd": coin.TotalVolume}
	}
	details.MarketData.CurrentPrice = map[string]decimal.Decimal{"usd": price}
	return details, nil
}

// PriceHistory generates a seeded random walk with seasonality
func (s *DemoSource) PriceHistory(_ context.Context, coinID string, days int) (*domain.PriceHistory, error) {
	basePrice := demoBasePrice(coinID)

	// Hourly resolution up to 90 days, daily beyond
	pointsPerDay := 24
	stepHours := 1
	if days > 90 {
		pointsPerDay = 1
		stepHours = 24
	}
	numPoints := days * pointsPerDay

	rng := rand.New(rand.NewSource(seedFor(coinID)))
	trend := -0.001 + rng.Float64()*0.003

	now := time.Now()
	history := &domain.PriceHistory{
		ID:      coinID,
		Prices:  make([]domain.PricePoint, 0, numPoints),
		Volumes: make([]domain.VolumePoint, 0, numPoints),
	}

	price := basePrice
	for i := 0; i < numPoints; i++ {
		at := now.Add(-time.Duration(numPoints-i) * time.Duration(stepHours) * time.Hour)
		ts := at.UnixMilli()
		date := at.Format("2006-01-02 15:04:05")

		noise := rng.NormFloat64() * demoVolatility
		seasonal := demoSeasonalAmp * math.Sin(float64(i)/(float64(numPoints)/6))
		change := trend + noise + seasonal
		if i > 0 {
			price *= 1 + change
		}

		history.Prices = append(history.Prices, domain.PricePoint{
			Timestamp: ts,
			Date:      date,
			Price:     price,
		})

		volumeBase := basePrice * 1000
		volumeFactor := 1 + math.Abs(change)*20
		volume := volumeBase * volumeFactor * (0.8 + rng.Float64()*0.4)
		history.Volumes = append(history.Volumes, domain.VolumePoint{
			Timestamp: ts,
			Date:      date,
			Volume:    volume,
		})
	}
	return history, nil
}

// GlobalOverview returns a static market snapshot
func (s *DemoSource) GlobalOverview(_ context.Context) (*domain.Overview, error) {
	return &domain.Overview{
		Data: domain.OverviewData{
			ActiveCryptocurrencies: 9873,
			OngoingICOs:            49,
			EndedICOs:              3376,
			Markets:                884,
			TotalMarketCap: map[string]float64{
				"btc": 44762234.04481033,
				"eth": 693087145.5207373,
				"usd": 2603112563189.9116,
			},
			TotalVolume: map[string]float64{
				"btc": 2155301.7866844186,
				"eth": 33371584.72862561,
				"usd": 125339950787.44937,
			},
			MarketCapPercentage: map[string]float64{
				"btc": 50.886, "eth": 16.736, "usdt": 3.705, "bnb": 2.521,
				"usdc": 2.064, "sol": 1.691, "xrp": 1.625, "steth": 1.23,
				"ada": 0.913, "doge": 0.879,
			},
			MarketCapChangePercentage24hUSD: 2.3,
			UpdatedAt:                       time.Now().Unix(),
		},
	}, nil
}

// Trending returns a static trending list
func (s *DemoSource) Trending(_ context.Context) (*domain.Trending, error) {
	items := []domain.TrendingItem{
		{ID: "bitcoin", Name: "Bitcoin", Symbol: "BTC", MarketCapRank: 1},
		{ID: "ethereum", Name: "Ethereum", Symbol: "ETH", MarketCapRank: 2},
		{ID: "solana", Name: "Solana", Symbol: "SOL", MarketCapRank: 5},
		{ID: "cardano", Name: "Cardano", Symbol: "ADA", MarketCapRank: 8},
		{ID: "dogecoin", Name: "Dogecoin", Symbol: "DOGE", MarketCapRank: 9},
		{ID: "polkadot", Name: "Polkadot", Symbol: "DOT", MarketCapRank: 13},
		{ID: "polygon", Name: "Polygon", Symbol: "MATIC", MarketCapRank: 15},
	}
	trending := &domain.Trending{Coins: make([]domain.TrendingEntry, 0, len(items))}
	for _, item := range items {
		trending.Coins = append(trending.Coins, domain.TrendingEntry{Item: item})
	}
	return trending, nil
}

// Movers fabricates gainers and losers from the demo listing with a
// fixed seed so responses stay stable.
func (s *DemoSource) Movers(_ context.Context, limit int) (*domain.Movers, error) {
	coins := demoCoins()
	rng := rand.New(rand.NewSource(42))

	movers := &domain.Movers{}
	for i := 0; i < limit && i < len(coins); i++ {
		gainer := coins[i]
		gain := 5.0 + rng.Float64()*20.0
		gainer.PriceChangePercentage24h = &gain
		movers.Gainers = append(movers.Gainers, gainer)
	}
	for i := 0; i < limit && i < len(coins); i++ {
		loser := coins[len(coins)-i-1]
		loss := -20.0 + rng.Float64()*17.0
		loser.PriceChangePercentage24h = &loss
		movers.Losers = append(movers.Losers, loser)
	}
	return movers, nil
}

func demoBasePrice(coinID string) float64 {
	switch coinID {
	case "bitcoin":
		return 50000
	case "ethereum":
		return 3000
	case "solana":
		return 100
	default:
		return 10
	}
}

func seedFor(coinID string) int64 {
	h := fnv.New64a()
	h.Write([]byte(coinID))
	return int64(h.Sum64())
}

func f64(v float64) *float64 { return &v }

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func decPtr(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}

// demoCoins is the static listing used when the upstream API is out of
// reach, mirroring the well-known majors.
func demoCoins() []domain.Coin {
	return []domain.Coin{
		{
			ID: "bitcoin", Symbol: "btc", Name: "Bitcoin",
			Image:                        "https://assets.coingecko.com/coins/images/1/large/bitcoin.png",
			CurrentPrice:                 dec(62000),
			MarketCap:                    dec(1202323234243),
			MarketCapRank:                1,
			FullyDilutedValuation:        decPtr(1302111111111),
			TotalVolume:                  dec(25250525252),
			High24h:                      dec(63000),
			Low24h:                       dec(61000),
			PriceChange24h:               dec(1500),
			PriceChangePercentage24h:     f64(2.5),
			PriceChangePercentage7d:      f64(5.2),
			PriceChangePercentage30d:     f64(10.5),
			MarketCapChange24h:           dec(30000000000),
			MarketCapChangePercentage24h: 2.6,
			CirculatingSupply:            dec(18500000),
			TotalSupply:                  decPtr(21000000),
			MaxSupply:                    decPtr(21000000),
			ATH:                          dec(68000),
			ATHChangePercentage:          -8.5,
			ATHDate:                      "2021-11-10T14:24:11.849Z",
			ATL:                          dec(67.81),
			ATLChangePercentage:          90250.44,
			ATLDate:                      "2013-07-06T00:00:00.000Z",
			LastUpdated:                  "2023-01-07T23:24:54.758Z",
		},
		{
			ID: "ethereum", Symbol: "eth", Name: "Ethereum",
			Image:                        "https://assets.coingecko.com/coins/images/279/large/ethereum.png",
			CurrentPrice:                 dec(3200),
			MarketCap:                    dec(384440623062),
			MarketCapRank:                2,
			FullyDilutedValuation:        decPtr(384440623062),
			TotalVolume:                  dec(8950000000),
			High24h:                      dec(3250),
			Low24h:                       dec(3150),
			PriceChange24h:               dec(50),
			PriceChangePercentage24h:     f64(1.6),
			PriceChangePercentage7d:      f64(3.8),
			PriceChangePercentage30d:     f64(7.2),
			MarketCapChange24h:           dec(6000000000),
			MarketCapChangePercentage24h: 1.6,
			CirculatingSupply:            dec(120235687),
			TotalSupply:                  decPtr(120235687),
			ATH:                          dec(4878.26),
			ATHChangePercentage:          -34.6,
			ATHDate:                      "2021-11-10T14:24:19.604Z",
			ATL:                          dec(0.432979),
			ATLChangePercentage:          736000.44,
			ATLDate:                      "2015-10-20T00:00:00.000Z",
			LastUpdated:                  "2023-01-07T23:25:30.098Z",
		},
		{
			ID: "solana", Symbol: "sol", Name: "Solana",
			Image:                        "https://assets.coingecko.com/coins/images/4128/large/solana.png",
			CurrentPrice:                 dec(104.5),
			MarketCap:                    dec(40560420000),
			MarketCapRank:                5,
			FullyDilutedValuation:        decPtr(56978530000),
			TotalVolume:                  dec(2310000000),
			High24h:                      dec(108.02),
			Low24h:                       dec(102.45),
			PriceChange24h:               dec(2.05),
			PriceChangePercentage24h:     f64(2.0),
			PriceChangePercentage7d:      f64(15.3),
			PriceChangePercentage30d:     f64(33.4),
			MarketCapChange24h:           dec(782000000),
			MarketCapChangePercentage24h: 1.97,
			CirculatingSupply:            dec(388526280),
			TotalSupply:                  decPtr(545126540),
			ATH:                          dec(259.96),
			ATHChangePercentage:          -59.8,
			ATHDate:                      "2021-11-06T21:54:35.825Z",
			ATL:                          dec(0.500801),
			ATLChangePercentage:          20700.56,
			ATLDate:                      "2020-05-11T19:35:23.449Z",
			LastUpdated:                  "2023-01-07T23:25:56.252Z",
		},
		{
			ID: "cardano", Symbol: "ada", Name: "Cardano",
			Image:                        "https://assets.coingecko.com/coins/images/975/large/cardano.png",
			CurrentPrice:                 dec(0.52),
			MarketCap:                    dec(18035420000),
			MarketCapRank:                8,
			FullyDilutedValuation:        decPtr(23478520000),
			TotalVolume:                  dec(498700000),
			High24h:                      dec(0.533),
			Low24h:                       dec(0.512),
			PriceChange24h:               dec(0.008),
			PriceChangePercentage24h:     f64(1.56),
			PriceChangePercentage7d:      f64(6.4),
			PriceChangePercentage30d:     f64(21.8),
			MarketCapChange24h:           dec(280000000),
			MarketCapChangePercentage24h: 1.58,
			CirculatingSupply:            dec(34700521892),
			TotalSupply:                  decPtr(45000000000),
			MaxSupply:                    decPtr(45000000000),
			ATH:                          dec(3.09),
			ATHChangePercentage:          -83.17,
			ATHDate:                      "2021-09-02T06:00:10.474Z",
			ATL:                          dec(0.01925275),
			ATLChangePercentage:          2600.46,
			ATLDate:                      "2020-03-13T02:22:55.254Z",
			LastUpdated:                  "2023-01-07T23:25:46.403Z",
		},
		{
			ID: "dogecoin", Symbol: "doge", Name: "Dogecoin",
			Image:                        "https://assets.coingecko.com/coins/images/5/large/dogecoin.png",
			CurrentPrice:                 dec(0.078),
			MarketCap:                    dec(10890000000),
			MarketCapRank:                9,
			TotalVolume:                  dec(588800000),
			High24h:                      dec(0.0802),
			Low24h:                       dec(0.0773),
			PriceChange24h:               dec(0.00076),
			PriceChangePercentage24h:     f64(0.98),
			PriceChangePercentage7d:      f64(1.5),
			PriceChangePercentage30d:     f64(11.2),
			MarketCapChange24h:           dec(106000000),
			MarketCapChangePercentage24h: 0.98,
			CirculatingSupply:            dec(139900000000),
			ATH:                          dec(0.731578),
			ATHChangePercentage:          -89.39,
			ATHDate:                      "2021-05-08T05:08:23.458Z",
			ATL:                          dec(0.0000869),
			ATLChangePercentage:          89750.97,
			ATLDate:                      "2015-05-06T00:00:00.000Z",
			LastUpdated:                  "2023-01-07T23:26:00.175Z",
		},
	}
}
