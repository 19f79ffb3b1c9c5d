package sentiment

// Scores holds the raw polarity scores for a piece of text
type Scores struct {
	Compound float64 `json:"compound"`
	Positive float64 `json:"positive"`
	Neutral  float64 `json:"neutral"`
	Negative float64 `json:"negative"`
}

// SentenceScore is the per-sentence breakdown of a longer text
type SentenceScore struct {
	Text      string  `json:"text"`
	Compound  float64 `json:"compound"`
	Sentiment string  `json:"sentiment"`
}

// TextAnalysis is the full result of analyzing a single text
type TextAnalysis struct {
	Compound    float64         `json:"compound"`
	Positive    float64         `json:"positive"`
	Neutral     float64         `json:"neutral"`
	Negative    float64         `json:"negative"`
	Sentiment   string          `json:"sentiment"`
	Sentences   []SentenceScore `json:"sentences"`
	Explanation string          `json:"explanation"`
}

// Post is a social media post submitted for batch analysis
type Post struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Selftext    string  `json:"selftext"`
	Score       int     `json:"score"`
	NumComments int     `json:"num_comments"`
	CreatedUTC  float64 `json:"created_utc"`
	URL         string  `json:"url"`
	Permalink   string  `json:"permalink"`
}

// PostSentiment is the condensed sentiment attached to each analyzed post
type PostSentiment struct {
	Compound  float64 `json:"compound"`
	Positive  float64 `json:"positive"`
	Neutral   float64 `json:"neutral"`
	Negative  float64 `json:"negative"`
	Sentiment string  `json:"sentiment"`
}

// PostDetail pairs a post's identity with its sentiment
type PostDetail struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Score       int           `json:"score"`
	NumComments int           `json:"num_comments"`
	Sentiment   PostSentiment `json:"sentiment"`
}

// BatchResult aggregates sentiment across a batch of posts
type BatchResult struct {
	OverallSentiment      string             `json:"overall_sentiment"`
	AverageScores         Scores             `json:"average_scores"`
	SentimentDistribution map[string]float64 `json:"sentiment_distribution"`
	PostsAnalyzed         int                `json:"posts_analyzed"`
	PostsDetails          []PostDetail       `json:"posts_details"`
}

// Labels for classified sentiment
const (
	LabelPositive = "positive"
	LabelNeutral  = "neutral"
	LabelNegative = "negative"
)

// Classify maps a compound score to its three-way label.
// Thresholds at +-0.05 follow the standard VADER convention.
func Classify(compound float64) string {
	switch {
	case compound >= 0.05:
		return LabelPositive
	case compound <= -0.05:
		return LabelNegative
	default:
		return LabelNeutral
	}
}
