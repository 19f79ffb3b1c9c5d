package stocks

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "cryptopulse/internal/domain/stocks"
	sentimentsvc "cryptopulse/internal/services/sentiment"
	"cryptopulse/pkg/errors"
)

func testSentimentService(t *testing.T) *SentimentService {
	t.Helper()
	return NewSentimentService(sentimentsvc.NewAnalyzer(), testDataService(t))
}

func TestAnalyzeHeadlines_Empty(t *testing.T) {
	svc := testSentimentService(t)

	result := svc.AnalyzeHeadlines(nil)
	assert.Equal(t, 0, result.HeadlinesAnalyzed)
	assert.Equal(t, "neutral", result.OverallSentiment)
	assert.Equal(t, 1.0, result.SentimentDistribution["neutral"])
	assert.Empty(t, result.AnalyzedHeadlines)
}

func TestAnalyzeHeadlines_MixedBatch(t *testing.T) {
	svc := testSentimentService(t)

	items := []domain.NewsItem{
		{Company: "A", Headline: "Record profit and strong growth this quarter"},
		{Company: "B", Headline: "Massive losses as crisis deepens"},
		{Company: "C", Headline: "Board meets on Tuesday"},
	}

	result := svc.AnalyzeHeadlines(items)
	assert.Equal(t, 3, result.HeadlinesAnalyzed)
	assert.Equal(t, 1, result.SentimentCounts["positive"])
	assert.Equal(t, 1, result.SentimentCounts["negative"])
	assert.Equal(t, 1, result.SentimentCounts["neutral"])

	sum := result.SentimentDistribution["positive"] +
		result.SentimentDistribution["neutral"] +
		result.SentimentDistribution["negative"]
	assert.InDelta(t, 1.0, sum, 1e-9)
	assert.Len(t, result.AnalyzedHeadlines, 3)
}

func TestOverallLabel(t *testing.T) {
	cases := []struct {
		compound float64
		label    string
	}{
		{0.6, "very_positive"},
		{0.3, "positive"},
		{0.1, "slightly_positive"},
		{0.0, "neutral"},
		{-0.1, "slightly_negative"},
		{-0.3, "negative"},
		{-0.6, "very_negative"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.label, overallLabel(tc.compound), "compound %v", tc.compound)
	}
}

func TestCompanySentiment(t *testing.T) {
	svc := testSentimentService(t)

	result := svc.CompanySentiment("Reliance")
	assert.Equal(t, "Reliance", result.Company)
	assert.Equal(t, 2, result.HeadlinesAnalyzed)
	assert.Equal(t, 2, result.SentimentCounts["positive"])
	assert.Greater(t, result.SentimentScores.Compound, 0.05)
	assert.True(t, strings.Contains(result.OverallSentiment, "positive"))
}

func TestMarketSentiment(t *testing.T) {
	svc := testSentimentService(t)

	result := svc.MarketSentiment(100)
	assert.Equal(t, "overall", result.Market)
	assert.Equal(t, 4, result.HeadlinesAnalyzed)
}

func TestNewsImpact_Aligned(t *testing.T) {
	svc := testSentimentService(t)

	impact, err := svc.NewsImpact("RELIANCE")
	require.NoError(t, err)

	assert.Equal(t, "RELIANCE", impact.Symbol)
	assert.Equal(t, "RELIANCE", impact.Company)
	assert.Greater(t, impact.PriceChange, 0.0)
	assert.Greater(t, impact.SentimentScore, 0.0)
	assert.Equal(t, "aligned", impact.Correlation)
}

func TestCompanySentiment_Negative(t *testing.T) {
	svc := testSentimentService(t)

	result := svc.CompanySentiment("TCS")
	assert.Equal(t, 1, result.HeadlinesAnalyzed)
	assert.Equal(t, 1, result.SentimentCounts["negative"])
	assert.Less(t, result.SentimentScores.Compound, -0.05)
}

func TestNewsImpact_UnknownSymbol(t *testing.T) {
	svc := testSentimentService(t)

	_, err := svc.NewsImpact("NOPE")
	assert.ErrorIs(t, err, errors.ErrNoData)
}
