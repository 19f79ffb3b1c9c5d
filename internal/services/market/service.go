package market

import (
	"context"
	"fmt"
	"sort"
	"time"

	"cryptopulse/internal/adapters/config"
	domain "cryptopulse/internal/domain/market"
	"cryptopulse/internal/metrics"
	"cryptopulse/pkg/logger"
)

// Cache is the subset of the Redis wrapper the service needs.
// A nil Cache disables caching entirely.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// Cache TTLs per endpoint class
const (
	listingTTL  = 2 * time.Minute
	detailsTTL  = 10 * time.Minute
	historyTTL  = 10 * time.Minute
	overviewTTL = 5 * time.Minute
	trendingTTL = 10 * time.Minute
	moversTTL   = 2 * time.Minute
)

const upstream = "coingecko"

// Service serves market data with a cache in front of the live source
// and the synthetic source behind it. Upstream failures never surface
// to callers; they degrade to demo data instead.
type Service struct {
	live  Source
	demo  *DemoSource
	cache Cache
	cfg   config.CoinGeckoConfig
	log   *logger.Logger
}

// NewService assembles the market data service
func NewService(live Source, cache Cache, cfg config.CoinGeckoConfig) *Service {
	return &Service{
		live:  live,
		demo:  NewDemoSource(),
		cache: cache,
		cfg:   cfg,
		log:   logger.Get().With("component", "market_service"),
	}
}

// TopCoins lists the top coins by market cap
func (s *Service) TopCoins(ctx context.Context, limit int) ([]domain.Coin, error) {
	key := fmt.Sprintf("market:top:%d", limit)
	var cached []domain.Coin
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	start := time.Now()
	coins, err := s.live.TopCoins(ctx, limit)
	metrics.RecordUpstreamCall(upstream, "coins/markets", time.Since(start), err)
	if err != nil {
		s.log.Warn("Top coins fetch failed, serving demo data", "error", err)
		metrics.RecordUpstreamFallback(upstream, "coins/markets")
		return s.demo.TopCoins(ctx, limit)
	}

	s.cacheSet(ctx, key, coins, listingTTL)
	return coins, nil
}

// CoinDetails fetches detail data for one coin
func (s *Service) CoinDetails(ctx context.Context, coinID string) (*domain.CoinDetails, error) {
	key := "market:details:" + coinID
	var cached domain.CoinDetails
	if s.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	start := time.Now()
	details, err := s.live.CoinDetails(ctx, coinID)
	metrics.RecordUpstreamCall(upstream, "coins/{id}", time.Since(start), err)
	if err != nil {
		s.log.Warn("Coin details fetch failed, serving demo data", "coin_id", coinID, "error", err)
		metrics.RecordUpstreamFallback(upstream, "coins/{id}")
		return s.demo.CoinDetails(ctx, coinID)
	}

	s.cacheSet(ctx, key, details, detailsTTL)
	return details, nil
}

// PriceHistory returns the price chart for a coin. When demo mode is
// forced in config the synthetic source serves directly, bridging the
// free-tier rate limits.
func (s *Service) PriceHistory(ctx context.Context, coinID string, days int) (*domain.PriceHistory, error) {
	if s.cfg.UseDemoData {
		return s.demo.PriceHistory(ctx, coinID, days)
	}

	key := fmt.Sprintf("market:history:%s:%d", coinID, days)
	var cached domain.PriceHistory
	if s.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	start := time.Now()
	history, err := s.live.PriceHistory(ctx, coinID, days)
	metrics.RecordUpstreamCall(upstream, "market_chart", time.Since(start), err)
	if err != nil {
		s.log.Warn("Price history fetch failed, serving demo data", "coin_id", coinID, "error", err)
		metrics.RecordUpstreamFallback(upstream, "market_chart")
		return s.demo.PriceHistory(ctx, coinID, days)
	}

	s.cacheSet(ctx, key, history, historyTTL)
	return history, nil
}

// GlobalOverview returns the global market snapshot
func (s *Service) GlobalOverview(ctx context.Context) (*domain.Overview, error) {
	key := "market:overview"
	var cached domain.Overview
	if s.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	start := time.Now()
	overview, err := s.live.GlobalOverview(ctx)
	metrics.RecordUpstreamCall(upstream, "global", time.Since(start), err)
	if err != nil {
		s.log.Warn("Market overview fetch failed, serving demo data", "error", err)
		metrics.RecordUpstreamFallback(upstream, "global")
		return s.demo.GlobalOverview(ctx)
	}

	s.cacheSet(ctx, key, overview, overviewTTL)
	return overview, nil
}

// Trending returns the trending coins
func (s *Service) Trending(ctx context.Context) (*domain.Trending, error) {
	key := "market:trending"
	var cached domain.Trending
	if s.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	start := time.Now()
	trending, err := s.live.Trending(ctx)
	metrics.RecordUpstreamCall(upstream, "search/trending", time.Since(start), err)
	if err != nil {
		s.log.Warn("Trending fetch failed, serving demo data", "error", err)
		metrics.RecordUpstreamFallback(upstream, "search/trending")
		return s.demo.Trending(ctx)
	}

	s.cacheSet(ctx, key, trending, trendingTTL)
	return trending, nil
}

// Movers derives the top gainers and losers from the top 100 listing
func (s *Service) Movers(ctx context.Context, limit int) (*domain.Movers, error) {
	key := fmt.Sprintf("market:movers:%d", limit)
	var cached domain.Movers
	if s.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	start := time.Now()
	coins, err := s.live.TopCoins(ctx, 100)
	metrics.RecordUpstreamCall(upstream, "coins/markets", time.Since(start), err)
	if err != nil {
		s.log.Warn("Movers fetch failed, serving demo data", "error", err)
		metrics.RecordUpstreamFallback(upstream, "coins/markets")
		return s.demo.Movers(ctx, limit)
	}

	movers := rankMovers(coins, limit)
	s.cacheSet(ctx, key, movers, moversTTL)
	return movers, nil
}

// rankMovers sorts coins by 24h change and slices off the extremes.
// Coins without a change figure are excluded.
func rankMovers(coins []domain.Coin, limit int) *domain.Movers {
	valid := make([]domain.Coin, 0, len(coins))
	for _, c := range coins {
		if c.PriceChangePercentage24h != nil {
			valid = append(valid, c)
		}
	}

	sort.SliceStable(valid, func(i, j int) bool {
		return *valid[i].PriceChangePercentage24h > *valid[j].PriceChangePercentage24h
	})

	movers := &domain.Movers{}
	for i := 0; i < limit && i < len(valid); i++ {
		movers.Gainers = append(movers.Gainers, valid[i])
	}
	for i := 0; i < limit && i < len(valid); i++ {
		movers.Losers = append(movers.Losers, valid[len(valid)-i-1])
	}
	return movers
}

func (s *Service) cacheGet(ctx context.Context, key string, dest interface{}) bool {
	if s.cache == nil {
		return false
	}
	err := s.cache.Get(ctx, key, dest)
	metrics.RecordCacheGet(err == nil)
	return err == nil
}

func (s *Service) cacheSet(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value, ttl); err != nil {
		s.log.Warn("Cache write failed", "key", key, "error", err)
		metrics.RecordCacheSet(err)
		return
	}
	metrics.RecordCacheSet(nil)
}
