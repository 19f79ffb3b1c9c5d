package coingecko

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cryptopulse/internal/adapters/config"
	"cryptopulse/pkg/errors"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(config.CoinGeckoConfig{
		BaseURL:           server.URL,
		APIKey:            "test-key",
		RequestsPerMinute: 6000,
		Timeout:           5 * time.Second,
	})
}

func TestTopCoins(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/coins/markets", r.URL.Path)
		assert.Equal(t, "usd", r.URL.Query().Get("vs_currency"))
		assert.Equal(t, "market_cap_desc", r.URL.Query().Get("order"))
		assert.Equal(t, "5", r.URL.Query().Get("per_page"))
		assert.Equal(t, "24h,7d,30d", r.URL.Query().Get("price_change_percentage"))
		assert.Equal(t, "test-key", r.Header.Get("x-cg-demo-api-key"))

		w.Write([]byte(`[
			{"id":"bitcoin","symbol":"btc","name":"Bitcoin","current_price":50000,"market_cap_rank":1},
			{"id":"ethereum","symbol":"eth","name":"Ethereum","current_price":3000,"market_cap_rank":2}
		]`))
	}))

	coins, err := client.TopCoins(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, coins, 2)
	assert.Equal(t, "bitcoin", coins[0].ID)
	assert.Equal(t, "eth", coins[1].Symbol)
}

func TestPriceHistory_IntervalSelection(t *testing.T) {
	var gotInterval string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotInterval = r.URL.Query().Get("interval")
		w.Write([]byte(`{"prices":[[1700000000000,42000.5]],"total_volumes":[[1700000000000,1000000]]}`))
	}))

	history, err := client.PriceHistory(context.Background(), "bitcoin", 30)
	require.NoError(t, err)
	assert.Equal(t, "hourly", gotInterval)

	require.Len(t, history.Prices, 1)
	assert.Equal(t, int64(1700000000000), history.Prices[0].Timestamp)
	assert.Equal(t, 42000.5, history.Prices[0].Price)
	assert.NotEmpty(t, history.Prices[0].Date)
	require.Len(t, history.Volumes, 1)

	_, err = client.PriceHistory(context.Background(), "bitcoin", 180)
	require.NoError(t, err)
	assert.Equal(t, "daily", gotInterval)
}

func TestGet_RateLimited(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))

	_, err := client.TopCoins(context.Background(), 10)
	assert.ErrorIs(t, err, errors.ErrRateLimitExceeded)
}

func TestGet_UpstreamError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.GlobalOverview(context.Background())
	assert.ErrorIs(t, err, errors.ErrUpstreamUnavailable)
}

func TestObserveRateHeaders(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("x-ratelimit-remaining", "3")
		w.Header().Set("x-ratelimit-reset", "1700000000")
		w.Write([]byte(`{}`))
	}))

	_, err := client.GlobalOverview(context.Background())
	require.NoError(t, err)

	client.mu.Lock()
	defer client.mu.Unlock()
	assert.Equal(t, 3, client.limitRemaining)
	assert.Equal(t, time.Unix(1700000000, 0), client.limitReset)
}
