package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"cryptopulse/internal/adapters/config"
	domain "cryptopulse/internal/domain/sentiment"
	"cryptopulse/pkg/errors"
	"cryptopulse/pkg/logger"
)

const (
	defaultAuthURL = "https://www.reddit.com/api/v1/access_token"
	defaultAPIURL  = "https://oauth.reddit.com"

	maxPostLimit = 100

	// tokens are refreshed this long before Reddit expires them
	tokenExpiryMargin = 60 * time.Second
)

// Client talks to the Reddit API using the application-only OAuth2 flow.
// Credentials are re-read from the environment periodically so keys
// configured after startup are picked up without a restart.
type Client struct {
	cfg        config.RedditConfig
	httpClient *http.Client
	log        *logger.Logger

	authURL string
	apiURL  string

	mu           sync.Mutex
	clientID     string
	clientSecret string
	lastCredRead time.Time
	token        string
	tokenExpiry  time.Time
}

// NewClient creates a Reddit API client
func NewClient(cfg config.RedditConfig) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		log:     logger.Get().With("component", "reddit_client"),
		authURL: defaultAuthURL,
		apiURL:  defaultAPIURL,

		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		lastCredRead: time.Now(),
	}
}

// HasCredentials reports whether both OAuth credentials are configured
func (c *Client) HasCredentials() bool {
	id, secret := c.credentials()
	return id != "" && secret != ""
}

// credentials returns the current credential pair, re-reading the
// environment once the recheck interval has elapsed.
func (c *Client) credentials() (string, string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if time.Since(c.lastCredRead) >= c.cfg.CredentialRecheck {
		id := os.Getenv("REDDIT_CLIENT_ID")
		secret := os.Getenv("REDDIT_CLIENT_SECRET")
		if id != c.clientID || secret != c.clientSecret {
			c.log.Info("Reddit credentials changed, resetting token")
			c.clientID = id
			c.clientSecret = secret
			c.token = ""
			c.tokenExpiry = time.Time{}
		}
		c.lastCredRead = time.Now()
	}
	return c.clientID, c.clientSecret
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// accessToken returns a cached token or fetches a fresh one
func (c *Client) accessToken(ctx context.Context) (string, error) {
	id, secret := c.credentials()
	if id == "" || secret == "" {
		return "", errors.ErrMissingCredentials
	}

	c.mu.Lock()
	if c.token != "" && time.Now().Before(c.tokenExpiry) {
		token := c.token
		c.mu.Unlock()
		return token, nil
	}
	c.mu.Unlock()

	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.authURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", errors.Wrap(err, "failed to create token request")
	}
	req.SetBasicAuth(id, secret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "token request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return "", errors.ErrMissingCredentials
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", errors.Wrapf(errors.ErrUpstreamUnavailable, "token endpoint returned %d: %s", resp.StatusCode, string(body))
	}

	var token tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", errors.Wrap(err, "failed to decode token response")
	}
	if token.AccessToken == "" {
		return "", errors.ErrMissingCredentials
	}

	c.mu.Lock()
	c.token = token.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(token.ExpiresIn)*time.Second - tokenExpiryMargin)
	c.mu.Unlock()

	return token.AccessToken, nil
}

// invalidateToken drops the cached token so the next call re-authenticates
func (c *Client) invalidateToken() {
	c.mu.Lock()
	c.token = ""
	c.tokenExpiry = time.Time{}
	c.mu.Unlock()
}

type listingResponse struct {
	Data struct {
		Children []struct {
			Data postData `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type postData struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Selftext    string  `json:"selftext"`
	Score       int     `json:"score"`
	NumComments int     `json:"num_comments"`
	CreatedUTC  float64 `json:"created_utc"`
	URL         string  `json:"url"`
	Permalink   string  `json:"permalink"`
}

// GetPosts searches a subreddit and returns the matching posts,
// most relevant first
func (c *Client) GetPosts(ctx context.Context, subreddit, query string, limit int) ([]domain.Post, error) {
	if limit <= 0 || limit > maxPostLimit {
		limit = maxPostLimit
	}

	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("sort", "relevance")
	params.Set("restrict_sr", "on")
	params.Set("t", "month")

	endpoint := fmt.Sprintf("%s/r/%s/search?%s", c.apiURL, url.PathEscape(subreddit), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create search request")
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "search request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.invalidateToken()
		return nil, errors.ErrMissingCredentials
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, errors.ErrRateLimitExceeded
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, errors.Wrapf(errors.ErrUpstreamUnavailable, "search returned %d: %s", resp.StatusCode, string(body))
	}

	var listing listingResponse
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, errors.Wrap(err, "failed to decode search response")
	}

	posts := make([]domain.Post, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		d := child.Data
		posts = append(posts, domain.Post{
			ID:          d.ID,
			Title:       d.Title,
			Selftext:    d.Selftext,
			Score:       d.Score,
			NumComments: d.NumComments,
			CreatedUTC:  d.CreatedUTC,
			URL:         d.URL,
			Permalink:   d.Permalink,
		})
	}

	c.log.Debug("Fetched Reddit posts", "subreddit", subreddit, "query", query, "count", len(posts))
	return posts, nil
}
