package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "cryptopulse/internal/domain/sentiment"
)

func TestClassify_Thresholds(t *testing.T) {
	assert.Equal(t, domain.LabelPositive, domain.Classify(0.05))
	assert.Equal(t, domain.LabelPositive, domain.Classify(0.9))
	assert.Equal(t, domain.LabelNegative, domain.Classify(-0.05))
	assert.Equal(t, domain.LabelNegative, domain.Classify(-0.9))
	assert.Equal(t, domain.LabelNeutral, domain.Classify(0.049))
	assert.Equal(t, domain.LabelNeutral, domain.Classify(-0.049))
	assert.Equal(t, domain.LabelNeutral, domain.Classify(0))
}

func TestAnalyzeText_EmptyText(t *testing.T) {
	a := NewAnalyzer()

	for _, text := range []string{"", "   ", "\n\t"} {
		result := a.AnalyzeText(text)

		assert.Zero(t, result.Compound)
		assert.Zero(t, result.Positive)
		assert.Zero(t, result.Neutral)
		assert.Zero(t, result.Negative)
		assert.Equal(t, domain.LabelNeutral, result.Sentiment)
		assert.Empty(t, result.Sentences)
		assert.Equal(t, "No text provided", result.Explanation)
	}
}

func TestScore_CryptoSlang(t *testing.T) {
	a := NewAnalyzer()

	t.Run("positive slang with exclamation emphasis", func(t *testing.T) {
		scores := a.Score("to the moon! bullish!!")
		assert.Greater(t, scores.Compound, 0.5)
	})

	t.Run("multi-word phrases fold before lookup", func(t *testing.T) {
		scores := a.Score("classic rug pull")
		assert.Less(t, scores.Compound, -0.05)
	})

	t.Run("negative slang", func(t *testing.T) {
		scores := a.Score("total rug pull, everyone got rekt")
		assert.Less(t, scores.Compound, -0.5)
	})
}

func TestScore_Heuristics(t *testing.T) {
	a := NewAnalyzer()

	t.Run("negation flips polarity", func(t *testing.T) {
		plain := a.Score("this project is good")
		negated := a.Score("this project is not good")
		assert.Greater(t, plain.Compound, 0.05)
		assert.Less(t, negated.Compound, -0.05)
	})

	t.Run("booster amplifies", func(t *testing.T) {
		plain := a.Score("the launch was good")
		boosted := a.Score("the launch was very good")
		assert.Greater(t, boosted.Compound, plain.Compound)
	})

	t.Run("exclamation marks amplify", func(t *testing.T) {
		plain := a.Score("bullish")
		shouted := a.Score("bullish!!!")
		assert.Greater(t, shouted.Compound, plain.Compound)
	})

	t.Run("but clause shifts weight to the second half", func(t *testing.T) {
		scores := a.Score("the tech is good but the team is a fraud")
		assert.Less(t, scores.Compound, 0.0)
	})
}

func TestScore_Proportions(t *testing.T) {
	a := NewAnalyzer()

	scores := a.Score("bitcoin is great but fees are terrible today")

	total := scores.Positive + scores.Neutral + scores.Negative
	assert.InDelta(t, 1.0, total, 0.01, "pos/neu/neg proportions should sum to ~1")
}

func TestAnalyzeText_Sentences(t *testing.T) {
	a := NewAnalyzer()

	result := a.AnalyzeText("Bitcoin is mooning! I lost everything on that shitcoin. Markets are open.")

	require.Len(t, result.Sentences, 3)
	assert.Equal(t, domain.LabelPositive, result.Sentences[0].Sentiment)
	assert.Equal(t, domain.LabelNegative, result.Sentences[1].Sentiment)
	assert.Equal(t, domain.LabelNeutral, result.Sentences[2].Sentiment)
	assert.NotEmpty(t, result.Explanation)
}

func TestAnalyzeText_ExplanationMentionsIntensity(t *testing.T) {
	a := NewAnalyzer()

	result := a.AnalyzeText("Markets are open.")
	assert.Contains(t, result.Explanation, "neutral")

	result = a.AnalyzeText("bullish bullish to the moon!!")
	assert.Contains(t, result.Explanation, "positive")
}

func TestAnalyzePosts_EmptyBatch(t *testing.T) {
	a := NewAnalyzer()

	result := a.AnalyzePosts(nil)

	assert.Equal(t, domain.LabelNeutral, result.OverallSentiment)
	assert.Zero(t, result.PostsAnalyzed)
	assert.Empty(t, result.PostsDetails)
	require.NotNil(t, result.SentimentDistribution)
	assert.Contains(t, result.SentimentDistribution, domain.LabelPositive)
	assert.Contains(t, result.SentimentDistribution, domain.LabelNeutral)
	assert.Contains(t, result.SentimentDistribution, domain.LabelNegative)
}

func TestAnalyzePosts_Aggregation(t *testing.T) {
	a := NewAnalyzer()

	posts := []domain.Post{
		{ID: "p1", Title: "Bullish on bitcoin, to the moon!", Score: 120, NumComments: 45},
		{ID: "p2", Title: "Another rug pull, got rekt again", Selftext: "Total fraud.", Score: 30, NumComments: 12},
		{ID: "p3", Title: "Market update for today", Score: 5, NumComments: 1},
	}

	result := a.AnalyzePosts(posts)

	assert.Equal(t, 3, result.PostsAnalyzed)
	require.Len(t, result.PostsDetails, 3)

	assert.Equal(t, "p1", result.PostsDetails[0].ID)
	assert.Equal(t, domain.LabelPositive, result.PostsDetails[0].Sentiment.Sentiment)
	assert.Equal(t, domain.LabelNegative, result.PostsDetails[1].Sentiment.Sentiment)
	assert.Equal(t, 120, result.PostsDetails[0].Score)
	assert.Equal(t, 45, result.PostsDetails[0].NumComments)

	var sum float64
	for _, frac := range result.SentimentDistribution {
		sum += frac
	}
	assert.InDelta(t, 1.0, sum, 1e-9, "distribution fractions should sum to 1")
}
