package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cryptopulse/internal/adapters/config"
	"cryptopulse/internal/api/health"
	marketdomain "cryptopulse/internal/domain/market"
	sentimentdomain "cryptopulse/internal/domain/sentiment"
	"cryptopulse/internal/services/analysis"
	marketsvc "cryptopulse/internal/services/market"
	sentimentsvc "cryptopulse/internal/services/sentiment"
	stockssvc "cryptopulse/internal/services/stocks"
	"cryptopulse/pkg/logger"
)

type fakeMarket struct {
	*marketsvc.DemoSource
}

type fakeReddit struct {
	hasCreds bool
	posts    []sentimentdomain.Post
	err      error
}

func (f *fakeReddit) HasCredentials() bool { return f.hasCreds }

func (f *fakeReddit) GetPosts(ctx context.Context, subreddit, query string, limit int) ([]sentimentdomain.Post, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.posts, nil
}

func testServer(t *testing.T, reddit RedditClient) *Server {
	t.Helper()

	log := logger.Get()
	market := &fakeMarket{DemoSource: marketsvc.NewDemoSource()}
	analyzer := sentimentsvc.NewAnalyzer()
	stocksData := stockssvc.NewDataService(config.StocksConfig{
		AssetDir:       "testdata",
		HistoricalFile: "missing.csv",
		NewsFile:       "missing.csv",
		GainersFile:    "missing.csv",
		LosersFile:     "missing.csv",
	})

	healthHandler := health.New(log, nil, "cryptopulse", "test")

	return NewServer(
		ServerConfig{ServiceName: "cryptopulse", Version: "test"},
		Services{
			Market:          market,
			Reddit:          reddit,
			Analyzer:        analyzer,
			PriceAnalyzer:   analysis.NewPriceAnalyzer(),
			Correlator:      analysis.NewCorrelator(market),
			StocksData:      stocksData,
			StocksSentiment: stockssvc.NewSentimentService(analyzer, stocksData),
		},
		healthHandler,
		log,
	)
}

func doRequest(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestRoot_ServiceInfo(t *testing.T) {
	srv := testServer(t, &fakeReddit{})

	rec := doRequest(t, srv, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "cryptopulse", body["service"])
	assert.Equal(t, "running", body["status"])
}

func TestCryptocurrencies(t *testing.T) {
	srv := testServer(t, &fakeReddit{})

	rec := doRequest(t, srv, http.MethodGet, "/api/cryptocurrencies?limit=3", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var coins []marketdomain.Coin
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &coins))
	require.NotEmpty(t, coins)
	assert.Equal(t, "bitcoin", coins[0].ID)
}

func TestPriceAnalysis_ReturnsMetrics(t *testing.T) {
	srv := testServer(t, &fakeReddit{})

	rec := doRequest(t, srv, http.MethodGet, "/api/cryptocurrency/bitcoin/analysis?days=30", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body, "moving_averages")
	assert.Contains(t, body, "price_prediction")
}

func TestPriceCorrelation_Validation(t *testing.T) {
	srv := testServer(t, &fakeReddit{})

	rec := doRequest(t, srv, http.MethodGet, "/api/price-correlation", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "No coins specified")

	rec = doRequest(t, srv, http.MethodGet, "/api/price-correlation?coins=bitcoin", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "At least two coins are required for correlation")
}

func TestPriceCorrelation_ReturnsMatrix(t *testing.T) {
	srv := testServer(t, &fakeReddit{})

	rec := doRequest(t, srv, http.MethodGet, "/api/price-correlation?coins=bitcoin,ethereum&days=30", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		CorrelationMatrix map[string]map[string]float64 `json:"correlation_matrix"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.InDelta(t, 1.0, body.CorrelationMatrix["bitcoin"]["bitcoin"], 1e-9)
}

func TestTextSentiment(t *testing.T) {
	srv := testServer(t, &fakeReddit{})

	rec := doRequest(t, srv, http.MethodPost, "/api/text/sentiment", `{"text":"bitcoin is going to the moon! bullish!"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body sentimentdomain.TextAnalysis
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "positive", body.Sentiment)
	assert.Greater(t, body.Compound, 0.05)
}

func TestTextSentiment_Validation(t *testing.T) {
	srv := testServer(t, &fakeReddit{})

	rec := doRequest(t, srv, http.MethodPost, "/api/text/sentiment", `{}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Text is required")
}

func TestRedditSentiment_MissingQuery(t *testing.T) {
	srv := testServer(t, &fakeReddit{hasCreds: true})

	rec := doRequest(t, srv, http.MethodGet, "/api/reddit/sentiment", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Query parameter is required")
}

func TestRedditSentiment_MissingCredentials(t *testing.T) {
	srv := testServer(t, &fakeReddit{hasCreds: false})

	rec := doRequest(t, srv, http.MethodGet, "/api/reddit/sentiment?query=bitcoin", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["missing_credentials"])
	assert.Equal(t, true, body["needs_configuration"])
	assert.Contains(t, body, "instructions")
	assert.Contains(t, body, "credential_keys")
}

func TestRedditSentiment_AnalyzesPosts(t *testing.T) {
	srv := testServer(t, &fakeReddit{
		hasCreds: true,
		posts: []sentimentdomain.Post{
			{ID: "1", Title: "Bitcoin is bullish, to the moon!"},
			{ID: "2", Title: "This rug pull is a scam, total dump"},
		},
	})

	rec := doRequest(t, srv, http.MethodGet, "/api/reddit/sentiment?query=bitcoin", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body sentimentdomain.BatchResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.PostsAnalyzed)
	assert.Len(t, body.PostsDetails, 2)
}

func TestCheckCredentials(t *testing.T) {
	srv := testServer(t, &fakeReddit{})
	t.Setenv("CRYPTOPULSE_TEST_KEY", "present")

	rec := doRequest(t, srv, http.MethodPost, "/api/check-credentials", `{"keys":["CRYPTOPULSE_TEST_KEY","CRYPTOPULSE_ABSENT_KEY"]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Results      map[string]bool `json:"results"`
		AllAvailable bool            `json:"all_available"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Results["CRYPTOPULSE_TEST_KEY"])
	assert.False(t, body.Results["CRYPTOPULSE_ABSENT_KEY"])
	assert.False(t, body.AllAvailable)
}

func TestStockSymbols_EmptyData(t *testing.T) {
	srv := testServer(t, &fakeReddit{})

	rec := doRequest(t, srv, http.MethodGet, "/api/stocks/symbols", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestStockAnalysis_NoData(t *testing.T) {
	srv := testServer(t, &fakeReddit{})

	rec := doRequest(t, srv, http.MethodGet, "/api/stocks/analysis/RELIANCE", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No data available for this symbol")
}

func TestHealthEndpoints(t *testing.T) {
	srv := testServer(t, &fakeReddit{})

	rec := doRequest(t, srv, http.MethodGet, "/live", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, srv, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, srv, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequestIDHeader(t *testing.T) {
	srv := testServer(t, &fakeReddit{})

	rec := doRequest(t, srv, http.MethodGet, "/api/trending", "")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
