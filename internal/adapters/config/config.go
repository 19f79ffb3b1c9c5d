package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"cryptopulse/pkg/errors"
)

type Config struct {
	App           AppConfig
	Server        ServerConfig
	Redis         RedisConfig
	CoinGecko     CoinGeckoConfig
	Reddit        RedditConfig
	Stocks        StocksConfig
	ErrorTracking ErrorTrackingConfig
	Workers       WorkerConfig
}

type AppConfig struct {
	Name     string `envconfig:"APP_NAME" default:"cryptopulse"`
	Env      string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	Version  string `envconfig:"APP_VERSION" default:"1.0.0"`
}

type ServerConfig struct {
	Port         int           `envconfig:"HTTP_PORT" default:"5000"`
	ReadTimeout  time.Duration `envconfig:"HTTP_READ_TIMEOUT" default:"10s"`
	WriteTimeout time.Duration `envconfig:"HTTP_WRITE_TIMEOUT" default:"30s"`
	IdleTimeout  time.Duration `envconfig:"HTTP_IDLE_TIMEOUT" default:"60s"`
}

// RedisConfig configures the optional response cache.
// An empty host disables caching entirely.
type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST"`
	Port     int    `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c RedisConfig) Enabled() bool {
	return c.Host != ""
}

type CoinGeckoConfig struct {
	BaseURL           string        `envconfig:"COINGECKO_BASE_URL" default:"https://api.coingecko.com/api/v3"`
	APIKey            string        `envconfig:"COINGECKO_API_KEY"`
	RequestsPerMinute int           `envconfig:"COINGECKO_REQUESTS_PER_MINUTE" default:"30"`
	Timeout           time.Duration `envconfig:"COINGECKO_TIMEOUT" default:"15s"`
	// UseDemoData forces the synthetic source for price history,
	// bridging free-tier rate limits the same way the hosted dashboard does.
	UseDemoData bool `envconfig:"COINGECKO_USE_DEMO_DATA" default:"true"`
}

type RedditConfig struct {
	ClientID     string        `envconfig:"REDDIT_CLIENT_ID"`
	ClientSecret string        `envconfig:"REDDIT_CLIENT_SECRET"`
	UserAgent    string        `envconfig:"REDDIT_USER_AGENT" default:"CryptoPulse/1.0.0"`
	Timeout      time.Duration `envconfig:"REDDIT_TIMEOUT" default:"30s"`
	// CredentialRecheck controls how often the client re-reads credentials
	// from the environment, so keys added at runtime are picked up.
	CredentialRecheck time.Duration `envconfig:"REDDIT_CREDENTIAL_RECHECK" default:"30s"`
}

type StocksConfig struct {
	AssetDir       string `envconfig:"STOCKS_ASSET_DIR" default:"attached_assets"`
	HistoricalFile string `envconfig:"STOCKS_HISTORICAL_FILE" default:"all_nifty50_200day_hist.csv"`
	NewsFile       string `envconfig:"STOCKS_NEWS_FILE" default:"all_stocks_news.csv"`
	GainersFile    string `envconfig:"STOCKS_GAINERS_FILE" default:"top_gainers.csv"`
	LosersFile     string `envconfig:"STOCKS_LOSERS_FILE" default:"top_losers.csv"`
}

type ErrorTrackingConfig struct {
	Enabled     bool   `envconfig:"ERROR_TRACKING_ENABLED" default:"false"`
	SentryDSN   string `envconfig:"SENTRY_DSN"`
	Environment string `envconfig:"SENTRY_ENVIRONMENT" default:"production"`
}

// WorkerConfig contains intervals for background workers
type WorkerConfig struct {
	SnapshotInterval time.Duration `envconfig:"WORKER_SNAPSHOT_INTERVAL" default:"5m"`
	SnapshotEnabled  bool          `envconfig:"WORKER_SNAPSHOT_ENABLED" default:"true"`
}

// Load reads configuration from environment variables
// It first tries to load .env file (useful for local development)
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if not exists)
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to process env config")
	}

	return &cfg, nil
}
