package market

import (
	"context"

	domain "cryptopulse/internal/domain/market"
)

// Source supplies market data. The live implementation is the CoinGecko
// client; DemoSource generates deterministic synthetic data so the
// dashboard keeps working through upstream outages and rate limits.
type Source interface {
	TopCoins(ctx context.Context, limit int) ([]domain.Coin, error)
	CoinDetails(ctx context.Context, coinID string) (*domain.CoinDetails, error)
	PriceHistory(ctx context.Context, coinID string, days int) (*domain.PriceHistory, error)
	GlobalOverview(ctx context.Context) (*domain.Overview, error)
	Trending(ctx context.Context) (*domain.Trending, error)
}
