package market

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cryptopulse/internal/adapters/config"
	domain "cryptopulse/internal/domain/market"
)

type stubSource struct {
	coins     []domain.Coin
	details   *domain.CoinDetails
	history   *domain.PriceHistory
	err       error
	topCalls  int
	histCalls int
}

func (s *stubSource) TopCoins(ctx context.Context, limit int) ([]domain.Coin, error) {
	s.topCalls++
	if s.err != nil {
		return nil, s.err
	}
	return s.coins, nil
}

func (s *stubSource) CoinDetails(ctx context.Context, coinID string) (*domain.CoinDetails, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.details, nil
}

func (s *stubSource) PriceHistory(ctx context.Context, coinID string, days int) (*domain.PriceHistory, error) {
	s.histCalls++
	if s.err != nil {
		return nil, s.err
	}
	return s.history, nil
}

func (s *stubSource) GlobalOverview(ctx context.Context) (*domain.Overview, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Overview{}, nil
}

func (s *stubSource) Trending(ctx context.Context) (*domain.Trending, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Trending{}, nil
}

type memCache struct {
	store map[string][]byte
	sets  int
}

func newMemCache() *memCache {
	return &memCache{store: map[string][]byte{}}
}

func (c *memCache) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := c.store[key]
	if !ok {
		return errors.New("cache miss")
	}
	return json.Unmarshal(raw, dest)
}

func (c *memCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.store[key] = raw
	c.sets++
	return nil
}

func coinWithChange(id string, change float64) domain.Coin {
	return domain.Coin{ID: id, PriceChangePercentage24h: &change}
}

func TestTopCoins_FallsBackToDemoOnError(t *testing.T) {
	src := &stubSource{err: errors.New("upstream down")}
	svc := NewService(src, nil, config.CoinGeckoConfig{})

	coins, err := svc.TopCoins(context.Background(), 5)
	require.NoError(t, err)
	assert.NotEmpty(t, coins)
	assert.Equal(t, "bitcoin", coins[0].ID)
}

func TestTopCoins_CachesResult(t *testing.T) {
	src := &stubSource{coins: []domain.Coin{{ID: "bitcoin"}}}
	cache := newMemCache()
	svc := NewService(src, cache, config.CoinGeckoConfig{})

	_, err := svc.TopCoins(context.Background(), 5)
	require.NoError(t, err)
	_, err = svc.TopCoins(context.Background(), 5)
	require.NoError(t, err)

	assert.Equal(t, 1, src.topCalls)
	assert.Equal(t, 1, cache.sets)
}

func TestPriceHistory_DemoModeSkipsUpstream(t *testing.T) {
	src := &stubSource{history: &domain.PriceHistory{ID: "bitcoin"}}
	svc := NewService(src, nil, config.CoinGeckoConfig{UseDemoData: true})

	history, err := svc.PriceHistory(context.Background(), "bitcoin", 7)
	require.NoError(t, err)
	assert.Equal(t, 0, src.histCalls)
	assert.Len(t, history.Prices, 7*24)
}

func TestMovers_RanksByChange(t *testing.T) {
	src := &stubSource{coins: []domain.Coin{
		coinWithChange("a", 2.0),
		coinWithChange("b", -8.0),
		coinWithChange("c", 11.5),
		{ID: "nochange"},
		coinWithChange("d", -1.0),
	}}
	svc := NewService(src, nil, config.CoinGeckoConfig{})

	movers, err := svc.Movers(context.Background(), 2)
	require.NoError(t, err)

	require.Len(t, movers.Gainers, 2)
	assert.Equal(t, "c", movers.Gainers[0].ID)
	assert.Equal(t, "a", movers.Gainers[1].ID)

	require.Len(t, movers.Losers, 2)
	assert.Equal(t, "b", movers.Losers[0].ID)
	assert.Equal(t, "d", movers.Losers[1].ID)
}

func TestMovers_FallsBackToDemoOnError(t *testing.T) {
	src := &stubSource{err: errors.New("upstream down")}
	svc := NewService(src, nil, config.CoinGeckoConfig{})

	movers, err := svc.Movers(context.Background(), 3)
	require.NoError(t, err)
	assert.Len(t, movers.Gainers, 3)
	assert.Len(t, movers.Losers, 3)
}
