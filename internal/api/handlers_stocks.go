package api

import (
	"net/http"

	"github.com/gorilla/mux"

	stocksdomain "cryptopulse/internal/domain/stocks"
	stockssvc "cryptopulse/internal/services/stocks"
	"cryptopulse/pkg/errors"
)

func (s *Server) handleStockSymbols(w http.ResponseWriter, r *http.Request) {
	symbols := s.stocksData.AvailableSymbols()
	if symbols == nil {
		symbols = []string{}
	}
	respondJSON(w, http.StatusOK, symbols)
}

func (s *Server) handleStockPriceHistory(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]
	days := queryInt(r, "days", 30)

	bars := s.stocksData.PriceHistory(symbol, days)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"symbol": symbol,
		"data":   bars,
	})
}

func (s *Server) handleStockAnalysis(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]

	analysis, err := s.stocksData.Analysis(symbol)
	if err != nil {
		if errors.Is(err, errors.ErrNoData) {
			respondJSON(w, http.StatusOK, map[string]string{
				"error": "No data available for this symbol",
			})
			return
		}
		s.log.Error("Stock analysis failed", "symbol", symbol, "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, analysis)
}

func (s *Server) handleStockMovers(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 10)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"gainers": s.stocksData.TopGainers(limit),
		"losers":  s.stocksData.TopLosers(limit),
	})
}

func (s *Server) handleStockNews(w http.ResponseWriter, r *http.Request) {
	company := r.URL.Query().Get("company")
	limit := queryInt(r, "limit", 20)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"news": s.stocksData.News(company, limit),
	})
}

func (s *Server) handleStockSentiment(w http.ResponseWriter, r *http.Request) {
	company := r.URL.Query().Get("company")

	if company != "" {
		respondJSON(w, http.StatusOK, s.stocksSentiment.CompanySentiment(company))
		return
	}
	respondJSON(w, http.StatusOK, s.stocksSentiment.MarketSentiment(100))
}

func (s *Server) handleStockPriceChart(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]
	days := queryInt(r, "days", 30)

	bars := s.stocksData.PriceHistory(symbol, days)
	respondJSON(w, http.StatusOK, stockssvc.PriceChart(bars))
}

func (s *Server) handleStockVolumeChart(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]
	days := queryInt(r, "days", 30)

	bars := s.stocksData.PriceHistory(symbol, days)
	respondJSON(w, http.StatusOK, stockssvc.VolumeChart(bars))
}

func (s *Server) handleStockSentimentChart(w http.ResponseWriter, r *http.Request) {
	company := r.URL.Query().Get("company")

	var sentiment stocksdomain.HeadlineSentiment
	if company != "" {
		sentiment = s.stocksSentiment.CompanySentiment(company)
	} else {
		sentiment = s.stocksSentiment.MarketSentiment(100)
	}
	respondJSON(w, http.StatusOK, stockssvc.SentimentChart(sentiment))
}

func (s *Server) handleStockMoversChart(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 10)

	chart := stockssvc.MoversChart(s.stocksData.TopGainers(limit), s.stocksData.TopLosers(limit))
	respondJSON(w, http.StatusOK, chart)
}
