package stocks

import "time"

// PriceBar is one daily OHLCV row for a stock
type PriceBar struct {
	Symbol string    `json:"Symbol"`
	Date   time.Time `json:"Date"`
	Open   float64   `json:"Open"`
	High   float64   `json:"High"`
	Low    float64   `json:"Low"`
	Close  float64   `json:"Close"`
	Volume float64   `json:"Volume"`

	// Rolling means, populated only once the window is full
	MA7  *float64 `json:"7_day_ma,omitempty"`
	MA30 *float64 `json:"30_day_ma,omitempty"`
}

// NewsItem is one headline row from the news snapshot
type NewsItem struct {
	Company     string `json:"Company"`
	Headline    string `json:"Headline"`
	Source      string `json:"Source"`
	PublishedAt string `json:"PublishedAt"`
	URL         string `json:"URL,omitempty"`
}

// Mover is one row of the gainers or losers snapshot
type Mover struct {
	Company       string  `json:"Company"`
	Symbol        string  `json:"Symbol"`
	Price         float64 `json:"Price"`
	ChangePercent float64 `json:"Change (%)"`
}

// MovingAverages compares the latest close against its rolling means
type MovingAverages struct {
	MA7         *float64 `json:"ma_7"`
	MA30        *float64 `json:"ma_30"`
	PriceVsMA7  string   `json:"price_vs_ma7"`
	PriceVsMA30 string   `json:"price_vs_ma30"`
}

// Analysis is the per-symbol trend and volatility summary
type Analysis struct {
	Symbol            string         `json:"symbol"`
	CurrentPrice      float64        `json:"current_price"`
	MovingAverages    MovingAverages `json:"moving_averages"`
	VolatilityPercent float64        `json:"volatility_percent"`
	Trend             string         `json:"trend"`
	DataPoints        int            `json:"data_points"`
}

// Trend labels used by Analysis
const (
	TrendStrongUptrend   = "strong_uptrend"
	TrendUptrend         = "uptrend"
	TrendNeutral         = "neutral"
	TrendDowntrend       = "downtrend"
	TrendStrongDowntrend = "strong_downtrend"
)

// AnalyzedHeadline is one headline with its sentiment attached
type AnalyzedHeadline struct {
	Headline      string  `json:"headline"`
	Sentiment     string  `json:"sentiment"`
	CompoundScore float64 `json:"compound_score"`
	PublishedAt   string  `json:"published_at"`
	Company       string  `json:"company"`
	Source        string  `json:"source"`
}

// HeadlineSentiment aggregates sentiment across a set of headlines
type HeadlineSentiment struct {
	SentimentCounts       map[string]int     `json:"sentiment_counts"`
	SentimentDistribution map[string]float64 `json:"sentiment_distribution"`
	SentimentScores       SentimentScores    `json:"sentiment_scores"`
	HeadlinesAnalyzed     int                `json:"headlines_analyzed"`
	OverallSentiment      string             `json:"overall_sentiment"`
	AnalyzedHeadlines     []AnalyzedHeadline `json:"analyzed_headlines"`

	// Scope markers, set depending on the query
	Company string `json:"company,omitempty"`
	Market  string `json:"market,omitempty"`
}

// SentimentScores is the averaged score block for a headline batch
type SentimentScores struct {
	Compound float64 `json:"compound"`
	Positive float64 `json:"positive"`
	Neutral  float64 `json:"neutral"`
	Negative float64 `json:"negative"`
}

// NewsImpact relates headline sentiment to recent price movement
type NewsImpact struct {
	Symbol            string            `json:"symbol"`
	Company           string            `json:"company"`
	PriceChange       float64           `json:"price_change"`
	SentimentScore    float64           `json:"sentiment_score"`
	Correlation       string            `json:"correlation"`
	SentimentAnalysis HeadlineSentiment `json:"sentiment_analysis"`
}
