package stocks

import (
	"strings"

	domain "cryptopulse/internal/domain/stocks"
	sentimentsvc "cryptopulse/internal/services/sentiment"
	"cryptopulse/pkg/errors"
	"cryptopulse/pkg/logger"
)

// SentimentService scores stock news headlines
type SentimentService struct {
	analyzer *sentimentsvc.Analyzer
	data     *DataService
	log      *logger.Logger
}

// NewSentimentService creates a headline sentiment service
func NewSentimentService(analyzer *sentimentsvc.Analyzer, data *DataService) *SentimentService {
	return &SentimentService{
		analyzer: analyzer,
		data:     data,
		log:      logger.Get().With("component", "stocks_sentiment"),
	}
}

// AnalyzeHeadlines scores each headline and aggregates the results
func (s *SentimentService) AnalyzeHeadlines(items []domain.NewsItem) domain.HeadlineSentiment {
	if len(items) == 0 {
		return emptyHeadlineSentiment()
	}

	counts := map[string]int{
		"positive": 0,
		"neutral":  0,
		"negative": 0,
	}
	var totalCompound float64
	analyzed := make([]domain.AnalyzedHeadline, 0, len(items))

	for _, item := range items {
		result := s.analyzer.AnalyzeText(item.Headline)
		counts[result.Sentiment]++
		totalCompound += result.Compound

		analyzed = append(analyzed, domain.AnalyzedHeadline{
			Headline:      item.Headline,
			Sentiment:     result.Sentiment,
			CompoundScore: result.Compound,
			PublishedAt:   item.PublishedAt,
			Company:       item.Company,
			Source:        item.Source,
		})
	}

	total := float64(len(analyzed))
	distribution := map[string]float64{
		"positive": float64(counts["positive"]) / total,
		"neutral":  float64(counts["neutral"]) / total,
		"negative": float64(counts["negative"]) / total,
	}
	avgCompound := totalCompound / total

	return domain.HeadlineSentiment{
		SentimentCounts:       counts,
		SentimentDistribution: distribution,
		SentimentScores: domain.SentimentScores{
			Compound: avgCompound,
			Positive: distribution["positive"],
			Neutral:  distribution["neutral"],
			Negative: distribution["negative"],
		},
		HeadlinesAnalyzed: len(analyzed),
		OverallSentiment:  overallLabel(avgCompound),
		AnalyzedHeadlines: analyzed,
	}
}

// overallLabel maps an averaged compound score to a seven way label
func overallLabel(avgCompound float64) string {
	switch {
	case avgCompound >= 0.5:
		return "very_positive"
	case avgCompound >= 0.2:
		return "positive"
	case avgCompound >= 0.05:
		return "slightly_positive"
	case avgCompound <= -0.5:
		return "very_negative"
	case avgCompound <= -0.2:
		return "negative"
	case avgCompound <= -0.05:
		return "slightly_negative"
	default:
		return "neutral"
	}
}

// CompanySentiment analyzes headlines mentioning a company
func (s *SentimentService) CompanySentiment(company string) domain.HeadlineSentiment {
	news := s.data.News(company, 50)
	result := s.AnalyzeHeadlines(news)
	result.Company = company
	return result
}

// MarketSentiment analyzes the most recent headlines across all companies
func (s *SentimentService) MarketSentiment(maxHeadlines int) domain.HeadlineSentiment {
	news := s.data.News("", maxHeadlines)
	result := s.AnalyzeHeadlines(news)
	result.Market = "overall"
	return result
}

// NewsImpact relates headline sentiment for a symbol to its recent
// price move, labeling the two aligned or divergent
func (s *SentimentService) NewsImpact(symbol string) (*domain.NewsImpact, error) {
	bars := s.data.PriceHistory(symbol, 30)
	if len(bars) == 0 {
		return nil, errors.ErrNoData
	}

	// NSE style symbols carry an exchange suffix
	company := symbol
	if i := strings.IndexByte(symbol, '.'); i >= 0 {
		company = symbol[:i]
	}

	news := s.data.News(company, 30)
	if len(news) == 0 {
		return nil, errors.Wrapf(errors.ErrNoData, "no news for %s", company)
	}

	sentiment := s.AnalyzeHeadlines(news)

	var priceChange float64
	if len(bars) >= 2 {
		start := bars[0].Close
		end := bars[len(bars)-1].Close
		if start != 0 {
			priceChange = (end - start) / start * 100
		}
	}

	score := sentiment.SentimentScores.Compound
	correlation := "divergent"
	if (score > 0 && priceChange > 0) || (score < 0 && priceChange < 0) {
		correlation = "aligned"
	}

	return &domain.NewsImpact{
		Symbol:            symbol,
		Company:           company,
		PriceChange:       priceChange,
		SentimentScore:    score,
		Correlation:       correlation,
		SentimentAnalysis: sentiment,
	}, nil
}

func emptyHeadlineSentiment() domain.HeadlineSentiment {
	return domain.HeadlineSentiment{
		SentimentCounts: map[string]int{
			"positive": 0,
			"neutral":  0,
			"negative": 0,
		},
		SentimentDistribution: map[string]float64{
			"positive": 0,
			"neutral":  1,
			"negative": 0,
		},
		SentimentScores:   domain.SentimentScores{},
		HeadlinesAnalyzed: 0,
		OverallSentiment:  "neutral",
		AnalyzedHeadlines: []domain.AnalyzedHeadline{},
	}
}
