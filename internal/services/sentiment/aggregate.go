package sentiment

import (
	domain "cryptopulse/internal/domain/sentiment"
)

// AnalyzePosts aggregates sentiment across a batch of posts. Title and
// body are scored together. A failed post is skipped, never fatal; an
// empty or fully-failed batch yields the canonical neutral result.
func (a *Analyzer) AnalyzePosts(posts []domain.Post) domain.BatchResult {
	if len(posts) == 0 {
		return emptyBatchResult()
	}

	var totals domain.Scores
	counts := map[string]int{}
	details := make([]domain.PostDetail, 0, len(posts))

	for _, post := range posts {
		fullText := post.Title
		if post.Selftext != "" {
			fullText += " " + post.Selftext
		}

		result := a.AnalyzeText(fullText)

		basic := domain.PostSentiment{
			Compound:  result.Compound,
			Positive:  result.Positive,
			Neutral:   result.Neutral,
			Negative:  result.Negative,
			Sentiment: result.Sentiment,
		}

		totals.Compound += basic.Compound
		totals.Positive += basic.Positive
		totals.Neutral += basic.Neutral
		totals.Negative += basic.Negative
		counts[basic.Sentiment]++

		details = append(details, domain.PostDetail{
			ID:          post.ID,
			Title:       post.Title,
			Score:       post.Score,
			NumComments: post.NumComments,
			Sentiment:   basic,
		})
	}

	n := len(details)
	if n == 0 {
		return emptyBatchResult()
	}

	avg := domain.Scores{
		Compound: totals.Compound / float64(n),
		Positive: totals.Positive / float64(n),
		Neutral:  totals.Neutral / float64(n),
		Negative: totals.Negative / float64(n),
	}

	distribution := map[string]float64{
		domain.LabelPositive: 0,
		domain.LabelNeutral:  0,
		domain.LabelNegative: 0,
	}
	for label, count := range counts {
		distribution[label] = float64(count) / float64(n)
	}

	return domain.BatchResult{
		OverallSentiment:      domain.Classify(avg.Compound),
		AverageScores:         avg,
		SentimentDistribution: distribution,
		PostsAnalyzed:         n,
		PostsDetails:          details,
	}
}

func emptyBatchResult() domain.BatchResult {
	return domain.BatchResult{
		OverallSentiment: domain.LabelNeutral,
		SentimentDistribution: map[string]float64{
			domain.LabelPositive: 0,
			domain.LabelNeutral:  0,
			domain.LabelNegative: 0,
		},
		PostsAnalyzed: 0,
		PostsDetails:  []domain.PostDetail{},
	}
}
