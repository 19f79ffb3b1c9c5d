package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"cryptopulse/internal/api/health"
	"cryptopulse/internal/metrics"
	"cryptopulse/internal/services/analysis"
	sentimentsvc "cryptopulse/internal/services/sentiment"
	stockssvc "cryptopulse/internal/services/stocks"
	"cryptopulse/pkg/errors"
	"cryptopulse/pkg/logger"
)

// ServerConfig contains configuration for HTTP server
type ServerConfig struct {
	Port        int
	ServiceName string
	Version     string
}

// Services bundles everything the route handlers call into
type Services struct {
	Market          MarketService
	Reddit          RedditClient
	Analyzer        *sentimentsvc.Analyzer
	PriceAnalyzer   *analysis.PriceAnalyzer
	Correlator      *analysis.Correlator
	StocksData      *stockssvc.DataService
	StocksSentiment *stockssvc.SentimentService
}

// Server wraps HTTP server with lifecycle management
type Server struct {
	httpServer *http.Server
	log        *logger.Logger

	market          MarketService
	reddit          RedditClient
	analyzer        *sentimentsvc.Analyzer
	priceAnalyzer   *analysis.PriceAnalyzer
	correlator      *analysis.Correlator
	stocksData      *stockssvc.DataService
	stocksSentiment *stockssvc.SentimentService
}

// NewServer creates and configures HTTP server with all routes
func NewServer(cfg ServerConfig, svcs Services, healthHandler *health.Handler, log *logger.Logger) *Server {
	s := &Server{
		log:             log,
		market:          svcs.Market,
		reddit:          svcs.Reddit,
		analyzer:        svcs.Analyzer,
		priceAnalyzer:   svcs.PriceAnalyzer,
		correlator:      svcs.Correlator,
		stocksData:      svcs.StocksData,
		stocksSentiment: svcs.StocksSentiment,
	}

	router := mux.NewRouter()
	router.Use(requestIDMiddleware)
	router.Use(loggingMiddleware(log))

	// Health check endpoints (Kubernetes probes)
	router.HandleFunc("/health", healthHandler.HandleHealth).Methods(http.MethodGet)
	router.HandleFunc("/ready", healthHandler.HandleReadiness).Methods(http.MethodGet)
	router.HandleFunc("/live", healthHandler.HandleLiveness).Methods(http.MethodGet)

	// Prometheus metrics endpoint
	router.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()

	// Cryptocurrency market data
	api.HandleFunc("/cryptocurrencies", s.handleCryptocurrencies).Methods(http.MethodGet)
	api.HandleFunc("/cryptocurrency/{id}", s.handleCryptocurrency).Methods(http.MethodGet)
	api.HandleFunc("/cryptocurrency/{id}/price-history", s.handlePriceHistory).Methods(http.MethodGet)
	api.HandleFunc("/cryptocurrency/{id}/analysis", s.handlePriceAnalysis).Methods(http.MethodGet)
	api.HandleFunc("/price-correlation", s.handlePriceCorrelation).Methods(http.MethodGet)
	api.HandleFunc("/market-overview", s.handleMarketOverview).Methods(http.MethodGet)
	api.HandleFunc("/trending", s.handleTrending).Methods(http.MethodGet)
	api.HandleFunc("/market/movers", s.handleMarketMovers).Methods(http.MethodGet)

	// Sentiment
	api.HandleFunc("/text/sentiment", s.handleTextSentiment).Methods(http.MethodPost)
	api.HandleFunc("/reddit/sentiment", s.handleRedditSentiment).Methods(http.MethodGet)
	api.HandleFunc("/check-credentials", s.handleCheckCredentials).Methods(http.MethodPost)

	// Stocks
	api.HandleFunc("/stocks/symbols", s.handleStockSymbols).Methods(http.MethodGet)
	api.HandleFunc("/stocks/price-history/{symbol}", s.handleStockPriceHistory).Methods(http.MethodGet)
	api.HandleFunc("/stocks/analysis/{symbol}", s.handleStockAnalysis).Methods(http.MethodGet)
	api.HandleFunc("/stocks/movers", s.handleStockMovers).Methods(http.MethodGet)
	api.HandleFunc("/stocks/news", s.handleStockNews).Methods(http.MethodGet)
	api.HandleFunc("/stocks/sentiment", s.handleStockSentiment).Methods(http.MethodGet)
	api.HandleFunc("/stocks/charts/price/{symbol}", s.handleStockPriceChart).Methods(http.MethodGet)
	api.HandleFunc("/stocks/charts/volume/{symbol}", s.handleStockVolumeChart).Methods(http.MethodGet)
	api.HandleFunc("/stocks/charts/sentiment", s.handleStockSentimentChart).Methods(http.MethodGet)
	api.HandleFunc("/stocks/charts/movers", s.handleStockMoversChart).Methods(http.MethodGet)

	// Root endpoint (service info)
	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{
			"service": cfg.ServiceName,
			"version": cfg.Version,
			"status":  "running",
		})
	}).Methods(http.MethodGet)

	port := 8080
	if cfg.Port > 0 {
		port = cfg.Port
	}

	log.Infof("HTTP server configured on port %d", port)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler exposes the configured router, used by tests
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins listening for HTTP requests
// Blocks until server is stopped or encounters an error
func (s *Server) Start() error {
	s.log.Infof("Starting HTTP server on %s", s.httpServer.Addr)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return errors.Wrap(err, "http server failed")
	}

	return nil
}

// Shutdown gracefully stops the HTTP server
// Waits for active connections to complete within timeout
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("Stopping HTTP server...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return errors.Wrap(err, "http server shutdown failed")
	}

	s.log.Info("✓ HTTP server stopped")
	return nil
}
