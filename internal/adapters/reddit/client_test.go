package reddit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cryptopulse/internal/adapters/config"
	"cryptopulse/pkg/errors"
)

func testConfig() config.RedditConfig {
	return config.RedditConfig{
		ClientID:          "id",
		ClientSecret:      "secret",
		UserAgent:         "test/1.0",
		Timeout:           5 * time.Second,
		CredentialRecheck: time.Hour,
	}
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(testConfig())
	client.authURL = server.URL + "/api/v1/access_token"
	client.apiURL = server.URL
	return client, server
}

func TestGetPosts_MissingCredentials(t *testing.T) {
	client := NewClient(config.RedditConfig{CredentialRecheck: time.Hour})

	_, err := client.GetPosts(context.Background(), "cryptocurrency", "bitcoin", 10)
	assert.ErrorIs(t, err, errors.ErrMissingCredentials)
	assert.False(t, client.HasCredentials())
}

func TestGetPosts_FetchesAndMapsPosts(t *testing.T) {
	tokenCalls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/access_token", func(w http.ResponseWriter, r *http.Request) {
		tokenCalls++
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "id", user)
		assert.Equal(t, "secret", pass)
		w.Write([]byte(`{"access_token":"tok","token_type":"bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/r/cryptocurrency/search", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "bitcoin", r.URL.Query().Get("q"))
		assert.Equal(t, "relevance", r.URL.Query().Get("sort"))
		assert.Equal(t, "on", r.URL.Query().Get("restrict_sr"))
		w.Write([]byte(`{"data":{"children":[
			{"data":{"id":"abc","title":"BTC to the moon","selftext":"hodl","score":42,"num_comments":7,"created_utc":1700000000,"url":"https://example.com","permalink":"/r/cryptocurrency/abc"}}
		]}}`))
	})

	client, _ := newTestClient(t, mux)

	posts, err := client.GetPosts(context.Background(), "cryptocurrency", "bitcoin", 10)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "abc", posts[0].ID)
	assert.Equal(t, "BTC to the moon", posts[0].Title)
	assert.Equal(t, 42, posts[0].Score)

	// Second call reuses the cached token
	_, err = client.GetPosts(context.Background(), "cryptocurrency", "bitcoin", 10)
	require.NoError(t, err)
	assert.Equal(t, 1, tokenCalls)
}

func TestGetPosts_UnauthorizedInvalidatesToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/access_token", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"access_token":"tok","token_type":"bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/r/cryptocurrency/search", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	client, _ := newTestClient(t, mux)

	_, err := client.GetPosts(context.Background(), "cryptocurrency", "bitcoin", 10)
	assert.ErrorIs(t, err, errors.ErrMissingCredentials)

	client.mu.Lock()
	assert.Empty(t, client.token)
	client.mu.Unlock()
}

func TestGetPosts_BadTokenCredentials(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/access_token", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	client, _ := newTestClient(t, mux)

	_, err := client.GetPosts(context.Background(), "cryptocurrency", "bitcoin", 10)
	assert.ErrorIs(t, err, errors.ErrMissingCredentials)
}

func TestGetPosts_ClampsLimit(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/access_token", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"access_token":"tok","token_type":"bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/r/cryptocurrency/search", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "100", r.URL.Query().Get("limit"))
		w.Write([]byte(`{"data":{"children":[]}}`))
	})

	client, _ := newTestClient(t, mux)

	posts, err := client.GetPosts(context.Background(), "cryptocurrency", "bitcoin", 500)
	require.NoError(t, err)
	assert.Empty(t, posts)
}
