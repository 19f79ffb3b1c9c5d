package coingecko

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"cryptopulse/internal/adapters/config"
	"cryptopulse/internal/domain/market"
	"cryptopulse/pkg/errors"
	"cryptopulse/pkg/logger"
)

const (
	userAgent = "CryptoPulse/1.0.0"

	// Below this many remaining requests we honor the reset header
	rateLimitThreshold = 5
)

// Client is a CoinGecko REST client with both pre-emptive and reactive
// rate limiting. The free tier is strict, so every request passes a
// token-bucket limiter and the x-ratelimit response headers feed back
// into a cooldown window.
type Client struct {
	cfg        config.CoinGeckoConfig
	httpClient *http.Client
	limiter    *rate.Limiter
	log        *logger.Logger

	mu             sync.Mutex
	limitRemaining int
	limitReset     time.Time
}

// NewClient creates a CoinGecko client from config
func NewClient(cfg config.CoinGeckoConfig) *Client {
	rpm := cfg.RequestsPerMinute
	if rpm <= 0 {
		rpm = 30
	}
	return &Client{
		cfg:            cfg,
		httpClient:     &http.Client{Timeout: cfg.Timeout},
		limiter:        rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), 1),
		log:            logger.Get().With("component", "coingecko"),
		limitRemaining: 100,
	}
}

// TopCoins lists coins ordered by market cap descending
func (c *Client) TopCoins(ctx context.Context, limit int) ([]market.Coin, error) {
	params := url.Values{
		"vs_currency":             []string{"usd"},
		"order":                   []string{"market_cap_desc"},
		"per_page":                []string{strconv.Itoa(limit)},
		"page":                    []string{"1"},
		"sparkline":               []string{"false"},
		"price_change_percentage": []string{"24h,7d,30d"},
	}

	data, err := c.get(ctx, "coins/markets", params)
	if err != nil {
		return nil, err
	}

	var coins []market.Coin
	if err := json.Unmarshal(data, &coins); err != nil {
		return nil, errors.Wrap(err, "decode coins/markets response")
	}
	return coins, nil
}

// CoinDetails fetches the detail payload for one coin
func (c *Client) CoinDetails(ctx context.Context, coinID string) (*market.CoinDetails, error) {
	params := url.Values{
		"localization":   []string{"false"},
		"tickers":        []string{"false"},
		"market_data":    []string{"true"},
		"community_data": []string{"true"},
		"developer_data": []string{"false"},
	}

	data, err := c.get(ctx, "coins/"+url.PathEscape(coinID), params)
	if err != nil {
		return nil, err
	}

	var details market.CoinDetails
	if err := json.Unmarshal(data, &details); err != nil {
		return nil, errors.Wrap(err, "decode coin details response")
	}
	return &details, nil
}

// marketChart is the raw market_chart wire format: [timestamp_ms, value]
type marketChart struct {
	Prices       [][]float64 `json:"prices"`
	TotalVolumes [][]float64 `json:"total_volumes"`
}

// PriceHistory fetches and flattens the market chart for a coin.
// Sampling is hourly up to 90 days, daily beyond that.
func (c *Client) PriceHistory(ctx context.Context, coinID string, days int) (*market.PriceHistory, error) {
	interval := "hourly"
	if days > 90 {
		interval = "daily"
	}
	params := url.Values{
		"vs_currency": []string{"usd"},
		"days":        []string{strconv.Itoa(days)},
		"interval":    []string{interval},
	}

	data, err := c.get(ctx, "coins/"+url.PathEscape(coinID)+"/market_chart", params)
	if err != nil {
		return nil, err
	}

	var chart marketChart
	if err := json.Unmarshal(data, &chart); err != nil {
		return nil, errors.Wrap(err, "decode market chart response")
	}

	history := &market.PriceHistory{
		ID:      coinID,
		Prices:  make([]market.PricePoint, 0, len(chart.Prices)),
		Volumes: make([]market.VolumePoint, 0, len(chart.TotalVolumes)),
	}
	for _, p := range chart.Prices {
		if len(p) < 2 {
			continue
		}
		ts := int64(p[0])
		history.Prices = append(history.Prices, market.PricePoint{
			Timestamp: ts,
			Date:      formatTimestamp(ts),
			Price:     p[1],
		})
	}
	for _, v := range chart.TotalVolumes {
		if len(v) < 2 {
			continue
		}
		ts := int64(v[0])
		history.Volumes = append(history.Volumes, market.VolumePoint{
			Timestamp: ts,
			Date:      formatTimestamp(ts),
			Volume:    v[1],
		})
	}
	return history, nil
}

// GlobalOverview fetches the global market snapshot
func (c *Client) GlobalOverview(ctx context.Context) (*market.Overview, error) {
	data, err := c.get(ctx, "global", nil)
	if err != nil {
		return nil, err
	}

	var overview market.Overview
	if err := json.Unmarshal(data, &overview); err != nil {
		return nil, errors.Wrap(err, "decode global overview response")
	}
	return &overview, nil
}

// Trending fetches the trending-search coins
func (c *Client) Trending(ctx context.Context) (*market.Trending, error) {
	data, err := c.get(ctx, "search/trending", nil)
	if err != nil {
		return nil, err
	}

	var trending market.Trending
	if err := json.Unmarshal(data, &trending); err != nil {
		return nil, errors.Wrap(err, "decode trending response")
	}
	return &trending, nil
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	if err := c.throttle(ctx); err != nil {
		return nil, err
	}

	reqURL := c.cfg.BaseURL + "/" + endpoint
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build coingecko request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if c.cfg.APIKey != "" {
		req.Header.Set("x-cg-demo-api-key", c.cfg.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrUpstreamUnavailable, "coingecko request failed: %v", err)
	}
	defer resp.Body.Close()

	c.observeRateHeaders(resp.Header)

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read coingecko response")
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, errors.Wrapf(errors.ErrRateLimitExceeded, "coingecko %s", endpoint)
	case resp.StatusCode >= 400:
		return nil, errors.Wrapf(errors.ErrUpstreamUnavailable,
			"coingecko %s returned %d", endpoint, resp.StatusCode)
	}
	return payload, nil
}

// throttle blocks on the token bucket, then honors an advertised reset
// window when the remaining quota is nearly exhausted.
func (c *Client) throttle(ctx context.Context) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return errors.Wrap(err, "rate limiter wait")
	}

	c.mu.Lock()
	remaining, reset := c.limitRemaining, c.limitReset
	c.mu.Unlock()

	if remaining <= rateLimitThreshold && time.Now().Before(reset) {
		wait := time.Until(reset) + time.Second
		c.log.Debug("Rate limit nearly exhausted, backing off", "wait", wait)
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func (c *Client) observeRateHeaders(h http.Header) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if v := h.Get("x-ratelimit-remaining"); v != "" {
		if remaining, err := strconv.Atoi(v); err == nil {
			c.limitRemaining = remaining
		}
	}
	if v := h.Get("x-ratelimit-reset"); v != "" {
		if reset, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.limitReset = time.Unix(reset, 0)
		}
	}
}

func formatTimestamp(tsMillis int64) string {
	return time.UnixMilli(tsMillis).Format("2006-01-02 15:04:05")
}
