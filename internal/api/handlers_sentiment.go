package api

import (
	"context"
	"encoding/json"
	"net/http"
	"os"

	domain "cryptopulse/internal/domain/sentiment"
	"cryptopulse/internal/metrics"
	"cryptopulse/pkg/errors"
)

// RedditClient is the Reddit surface the handlers depend on
type RedditClient interface {
	HasCredentials() bool
	GetPosts(ctx context.Context, subreddit, query string, limit int) ([]domain.Post, error)
}

const credentialsErrorMessage = "Reddit API credentials are not configured. This feature requires Reddit API credentials."

// missingCredentialsPayload tells the client exactly how to configure
// Reddit access
func missingCredentialsPayload() map[string]interface{} {
	return map[string]interface{}{
		"error":               credentialsErrorMessage,
		"missing_credentials": true,
		"needs_configuration": true,
		"instructions": []string{
			"Register a Reddit app at https://www.reddit.com/prefs/apps",
			"Create an application of type 'script'",
			"Add the Client ID and Client Secret to your environment variables as REDDIT_CLIENT_ID and REDDIT_CLIENT_SECRET",
		},
		"credential_keys": []string{"REDDIT_CLIENT_ID", "REDDIT_CLIENT_SECRET"},
	}
}

func (s *Server) handleTextSentiment(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "No JSON data provided")
		return
	}
	if payload.Text == "" {
		respondError(w, http.StatusBadRequest, "Text is required")
		return
	}

	result := s.analyzer.AnalyzeText(payload.Text)
	metrics.RecordSentimentAnalysis("text", result.Sentiment)
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleRedditSentiment(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	subreddit := r.URL.Query().Get("subreddit")
	if subreddit == "" {
		subreddit = "cryptocurrency"
	}
	limit := queryInt(r, "limit", 100)

	if query == "" {
		respondError(w, http.StatusBadRequest, "Query parameter is required")
		return
	}

	if !s.reddit.HasCredentials() {
		s.log.Error(credentialsErrorMessage)
		respondJSON(w, http.StatusUnauthorized, missingCredentialsPayload())
		return
	}

	posts, err := s.reddit.GetPosts(r.Context(), subreddit, query, limit)
	if err != nil {
		if errors.Is(err, errors.ErrMissingCredentials) {
			respondJSON(w, http.StatusUnauthorized, missingCredentialsPayload())
			return
		}
		s.log.Error("Reddit sentiment analysis failed", "query", query, "error", err)
		respondJSON(w, http.StatusInternalServerError, map[string]string{
			"error":  "Error performing sentiment analysis: " + err.Error(),
			"status": "error",
		})
		return
	}

	result := s.analyzer.AnalyzePosts(posts)
	metrics.RecordSentimentAnalysis("reddit", result.OverallSentiment)
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleCheckCredentials(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Keys []string `json:"keys"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "No JSON data provided")
		return
	}

	results := make(map[string]bool, len(payload.Keys))
	allAvailable := true
	for _, key := range payload.Keys {
		available := os.Getenv(key) != ""
		results[key] = available
		if !available {
			allAvailable = false
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"results":       results,
		"all_available": allAvailable,
	})
}
