package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"

	"cryptopulse/internal/adapters/coingecko"
	"cryptopulse/internal/adapters/config"
	"cryptopulse/internal/adapters/errors/noop"
	"cryptopulse/internal/adapters/errors/sentry"
	"cryptopulse/internal/adapters/reddit"
	"cryptopulse/internal/adapters/redis"
	"cryptopulse/internal/api"
	"cryptopulse/internal/api/health"
	"cryptopulse/internal/metrics"
	"cryptopulse/internal/services/analysis"
	marketsvc "cryptopulse/internal/services/market"
	sentimentsvc "cryptopulse/internal/services/sentiment"
	stockssvc "cryptopulse/internal/services/stocks"
	"cryptopulse/internal/workers"
	marketworker "cryptopulse/internal/workers/market"
	"cryptopulse/pkg/errors"
	"cryptopulse/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize logger
	if err := logger.Init(cfg.App.LogLevel, cfg.App.Env); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	defer logger.Sync()

	log := logger.Get()
	log.Infof("Starting %s in %s mode", cfg.App.Name, cfg.App.Env)

	// Initialize error tracker
	errorTracker := initErrorTracker(cfg, log)
	logger.SetErrorTracker(errorTracker)

	// API payloads carry prices as plain JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	metrics.Init()

	// Optional Redis cache
	var cache *redis.Client
	if cfg.Redis.Enabled() {
		cache, err = redis.NewClient(cfg.Redis)
		if err != nil {
			log.Warnf("Redis unavailable, caching disabled: %v", err)
			cache = nil
		} else {
			defer cache.Close()
			log.Info("Redis cache initialized")
		}
	} else {
		log.Info("Redis not configured, caching disabled")
	}

	// Market data: live CoinGecko client behind the cached service
	coingeckoClient := coingecko.NewClient(cfg.CoinGecko)
	var marketCache marketsvc.Cache
	if cache != nil {
		marketCache = cache
	}
	market := marketsvc.NewService(coingeckoClient, marketCache, cfg.CoinGecko)

	// Sentiment and analysis
	analyzer := sentimentsvc.NewAnalyzer()
	priceAnalyzer := analysis.NewPriceAnalyzer()
	correlator := analysis.NewCorrelator(market)

	// Reddit
	redditClient := reddit.NewClient(cfg.Reddit)
	if !redditClient.HasCredentials() {
		log.Warn("Reddit credentials not configured, sentiment endpoint will require setup")
	}

	// Stocks
	stocksData := stockssvc.NewDataService(cfg.Stocks)
	stocksSentiment := stockssvc.NewSentimentService(analyzer, stocksData)

	// Health checks cover only configured dependencies
	checks := map[string]health.Checker{}
	if cache != nil {
		checks["redis"] = cache.Health
	}
	healthHandler := health.New(log, checks, cfg.App.Name, cfg.App.Version)

	server := api.NewServer(
		api.ServerConfig{
			Port:        cfg.Server.Port,
			ServiceName: cfg.App.Name,
			Version:     cfg.App.Version,
		},
		api.Services{
			Market:          market,
			Reddit:          redditClient,
			Analyzer:        analyzer,
			PriceAnalyzer:   priceAnalyzer,
			Correlator:      correlator,
			StocksData:      stocksData,
			StocksSentiment: stocksSentiment,
		},
		healthHandler,
		log,
	)

	// Background workers: cache warming only makes sense with Redis
	scheduler := workers.NewScheduler()
	snapshotEnabled := cfg.Workers.SnapshotEnabled && cache != nil
	scheduler.RegisterWorker(marketworker.NewSnapshotCollector(market, cfg.Workers.SnapshotInterval, snapshotEnabled))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := scheduler.Start(ctx); err != nil {
		log.Errorf("Failed to start scheduler: %v", err)
	}

	go func() {
		if err := server.Start(); err != nil {
			log.Errorf("HTTP server error: %v", err)
			cancel()
		}
	}()

	log.Info("System initialized successfully")

	waitForShutdown(ctx, cancel, server, scheduler, errorTracker, log)
}

// initErrorTracker initializes error tracking (Sentry or no-op)
func initErrorTracker(cfg *config.Config, log *logger.Logger) errors.Tracker {
	if !cfg.ErrorTracking.Enabled || cfg.ErrorTracking.SentryDSN == "" {
		log.Info("Error tracking disabled")
		return noop.New()
	}

	tracker, err := sentry.New(cfg.ErrorTracking.SentryDSN, cfg.ErrorTracking.Environment)
	if err != nil {
		log.Warnf("Failed to initialize Sentry: %v", err)
		return noop.New()
	}

	log.Info("Error tracking initialized (Sentry)")
	return tracker
}

// waitForShutdown waits for shutdown signal and performs graceful shutdown
func waitForShutdown(ctx context.Context, cancel context.CancelFunc, server *api.Server, scheduler *workers.Scheduler, errorTracker errors.Tracker, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
	case <-ctx.Done():
	}
	log.Info("Shutting down...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warnf("HTTP server shutdown error: %v", err)
	}

	if err := scheduler.Stop(); err != nil {
		log.Warnf("Scheduler stop error: %v", err)
	}

	// Flush error tracker
	if errorTracker != nil {
		if err := errorTracker.Flush(shutdownCtx); err != nil {
			log.Warnf("Failed to flush error tracker: %v", err)
		}
	}

	log.Info("Shutdown complete")
}
