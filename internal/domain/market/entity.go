package market

import "github.com/shopspring/decimal"

// Coin is one row of the coins-by-market-cap listing
type Coin struct {
	ID                           string           `json:"id"`
	Symbol                       string           `json:"symbol"`
	Name                         string           `json:"name"`
	Image                        string           `json:"image"`
	CurrentPrice                 decimal.Decimal  `json:"current_price"`
	MarketCap                    decimal.Decimal  `json:"market_cap"`
	MarketCapRank                int              `json:"market_cap_rank"`
	FullyDilutedValuation        *decimal.Decimal `json:"fully_diluted_valuation"`
	TotalVolume                  decimal.Decimal  `json:"total_volume"`
	High24h                      decimal.Decimal  `json:"high_24h"`
	Low24h                       decimal.Decimal  `json:"low_24h"`
	PriceChange24h               decimal.Decimal  `json:"price_change_24h"`
	PriceChangePercentage24h     *float64         `json:"price_change_percentage_24h"`
	PriceChangePercentage7d      *float64         `json:"price_change_percentage_7d_in_currency,omitempty"`
	PriceChangePercentage30d     *float64         `json:"price_change_percentage_30d_in_currency,omitempty"`
	MarketCapChange24h           decimal.Decimal  `json:"market_cap_change_24h"`
	MarketCapChangePercentage24h float64          `json:"market_cap_change_percentage_24h"`
	CirculatingSupply            decimal.Decimal  `json:"circulating_supply"`
	TotalSupply                  *decimal.Decimal `json:"total_supply"`
	MaxSupply                    *decimal.Decimal `json:"max_supply"`
	ATH                          decimal.Decimal  `json:"ath"`
	ATHChangePercentage          float64          `json:"ath_change_percentage"`
	ATHDate                      string           `json:"ath_date"`
	ATL                          decimal.Decimal  `json:"atl"`
	ATLChangePercentage          float64          `json:"atl_change_percentage"`
	ATLDate                      string           `json:"atl_date"`
	LastUpdated                  string           `json:"last_updated"`
}

// CoinDetails is the subset of the per-coin detail payload the dashboard uses
type CoinDetails struct {
	ID          string     `json:"id"`
	Symbol      string     `json:"symbol"`
	Name        string     `json:"name"`
	Description CoinText   `json:"description"`
	Image       CoinImage  `json:"image"`
	MarketData  MarketData `json:"market_data"`
}

// CoinText carries the english-only localized strings
type CoinText struct {
	EN string `json:"en"`
}

// CoinImage holds the coin image URLs by size
type CoinImage struct {
	Thumb string `json:"thumb"`
	Small string `json:"small"`
	Large string `json:"large"`
}

// MarketData is the market block inside coin details
type MarketData struct {
	CurrentPrice             map[string]decimal.Decimal `json:"current_price"`
	MarketCap                map[string]decimal.Decimal `json:"market_cap"`
	TotalVolume              map[string]decimal.Decimal `json:"total_volume"`
	High24h                  map[string]decimal.Decimal `json:"high_24h"`
	Low24h                   map[string]decimal.Decimal `json:"low_24h"`
	PriceChangePercentage24h float64                    `json:"price_change_percentage_24h"`
	PriceChangePercentage7d  float64                    `json:"price_change_percentage_7d"`
	PriceChangePercentage30d float64                    `json:"price_change_percentage_30d"`
	MarketCapRank            int                        `json:"market_cap_rank"`
}

// PricePoint is a single timestamped price sample
type PricePoint struct {
	Timestamp int64   `json:"timestamp"`
	Date      string  `json:"date"`
	Price     float64 `json:"price"`
}

// VolumePoint is a single timestamped volume sample
type VolumePoint struct {
	Timestamp int64   `json:"timestamp"`
	Date      string  `json:"date"`
	Volume    float64 `json:"volume"`
}

// PriceHistory is the flattened market chart for one coin
type PriceHistory struct {
	ID      string        `json:"id"`
	Prices  []PricePoint  `json:"prices"`
	Volumes []VolumePoint `json:"volumes"`
}

// Overview is the global market snapshot
type Overview struct {
	Data OverviewData `json:"data"`
}

// OverviewData carries the global market aggregates keyed by currency
type OverviewData struct {
	ActiveCryptocurrencies          int                `json:"active_cryptocurrencies"`
	UpcomingICOs                    int                `json:"upcoming_icos"`
	OngoingICOs                     int                `json:"ongoing_icos"`
	EndedICOs                       int                `json:"ended_icos"`
	Markets                         int                `json:"markets"`
	TotalMarketCap                  map[string]float64 `json:"total_market_cap"`
	TotalVolume                     map[string]float64 `json:"total_volume"`
	MarketCapPercentage             map[string]float64 `json:"market_cap_percentage"`
	MarketCapChangePercentage24hUSD float64            `json:"market_cap_change_percentage_24h_usd"`
	UpdatedAt                       int64              `json:"updated_at"`
}

// Trending is the trending-search payload
type Trending struct {
	Coins []TrendingEntry `json:"coins"`
}

// TrendingEntry wraps each trending coin item
type TrendingEntry struct {
	Item TrendingItem `json:"item"`
}

// TrendingItem identifies one trending coin
type TrendingItem struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Symbol        string `json:"symbol"`
	MarketCapRank int    `json:"market_cap_rank"`
	Thumb         string `json:"thumb"`
	Small         string `json:"small"`
}

// Movers pairs the top gaining and losing coins over 24h
type Movers struct {
	Gainers []Coin `json:"gainers"`
	Losers  []Coin `json:"losers"`
}

// CoinMeta is the minimal identity used in correlation responses
type CoinMeta struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}
