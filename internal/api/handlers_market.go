package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	domain "cryptopulse/internal/domain/market"
	"cryptopulse/internal/services/analysis"
	"cryptopulse/pkg/errors"
)

// MarketService is the market data surface the handlers depend on
type MarketService interface {
	TopCoins(ctx context.Context, limit int) ([]domain.Coin, error)
	CoinDetails(ctx context.Context, coinID string) (*domain.CoinDetails, error)
	PriceHistory(ctx context.Context, coinID string, days int) (*domain.PriceHistory, error)
	GlobalOverview(ctx context.Context) (*domain.Overview, error)
	Trending(ctx context.Context) (*domain.Trending, error)
	Movers(ctx context.Context, limit int) (*domain.Movers, error)
}

func (s *Server) handleCryptocurrencies(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 10)

	coins, err := s.market.TopCoins(r.Context(), limit)
	if err != nil {
		s.log.Error("Failed to fetch cryptocurrencies", "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, coins)
}

func (s *Server) handleCryptocurrency(w http.ResponseWriter, r *http.Request) {
	coinID := mux.Vars(r)["id"]

	details, err := s.market.CoinDetails(r.Context(), coinID)
	if err != nil {
		s.log.Error("Failed to fetch coin details", "coin_id", coinID, "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, details)
}

func (s *Server) handlePriceHistory(w http.ResponseWriter, r *http.Request) {
	coinID := mux.Vars(r)["id"]
	days := queryInt(r, "days", 30)

	history, err := s.market.PriceHistory(r.Context(), coinID, days)
	if err != nil {
		s.log.Error("Failed to fetch price history", "coin_id", coinID, "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, history)
}

func (s *Server) handlePriceAnalysis(w http.ResponseWriter, r *http.Request) {
	coinID := mux.Vars(r)["id"]
	days := queryInt(r, "days", 30)

	history, err := s.market.PriceHistory(r.Context(), coinID, days)
	if err != nil {
		s.log.Error("Failed to fetch price history for analysis", "coin_id", coinID, "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	result, err := s.priceAnalyzer.Analyze(history)
	if err != nil {
		if errors.Is(err, errors.ErrNoData) {
			// Dashboard clients expect a 200 with an error body here
			respondJSON(w, http.StatusOK, map[string]string{
				"error": "No price data available for analysis",
			})
			return
		}
		s.log.Error("Price analysis failed", "coin_id", coinID, "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handlePriceCorrelation(w http.ResponseWriter, r *http.Request) {
	coinsParam := r.URL.Query().Get("coins")
	days := queryInt(r, "days", 30)

	if coinsParam == "" {
		respondError(w, http.StatusBadRequest, "No coins specified")
		return
	}

	coinIDs := strings.Split(coinsParam, ",")
	if len(coinIDs) < 2 {
		respondError(w, http.StatusBadRequest, "At least two coins are required for correlation")
		return
	}

	result := s.correlator.Correlate(r.Context(), coinIDs, days)
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleMarketOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := s.market.GlobalOverview(r.Context())
	if err != nil {
		s.log.Error("Failed to fetch market overview", "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, overview)
}

func (s *Server) handleTrending(w http.ResponseWriter, r *http.Request) {
	trending, err := s.market.Trending(r.Context())
	if err != nil {
		s.log.Error("Failed to fetch trending coins", "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, trending)
}

func (s *Server) handleMarketMovers(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 5)

	movers, err := s.market.Movers(r.Context(), limit)
	if err != nil {
		s.log.Error("Failed to fetch market movers", "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, movers)
}

// queryInt reads an integer query parameter, falling back to a default
// when missing or malformed
func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

var _ analysis.PriceProvider = (MarketService)(nil)
