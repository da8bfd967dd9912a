package config

import (
	"encoding/json"
	"os"
	"time"
)

// CoingeckoMarketsFetcher configures /coins/markets and /simple/price requests
type CoingeckoMarketsFetcher struct {
	PerPage               int           `yaml:"per_page" validate:"min=1,max=250"`
	Currency              string        `yaml:"currency" validate:"required"`
	Sparkline             bool          `yaml:"sparkline"`
	PriceChangePercentage []string      `yaml:"price_change_percentage"`
	MaxAttempts           int           `yaml:"max_attempts" validate:"min=1"`
	BaseBackoff           time.Duration `yaml:"base_backoff" validate:"gt=0"`
	RequestTimeout        time.Duration `yaml:"request_timeout" validate:"gt=0"`
	// Attempts used by id-filtered lookups, which never surface network errors
	IDsMaxAttempts int           `yaml:"ids_max_attempts" validate:"min=1"`
	IDsBaseBackoff time.Duration `yaml:"ids_base_backoff" validate:"gt=0"`
	// Upper bound for ids per request; longer lists are split in chunks
	IDsChunkSize int `yaml:"ids_chunk_size" validate:"min=1,max=250"`
}

func DefaultCoingeckoMarketsFetcher() CoingeckoMarketsFetcher {
	return CoingeckoMarketsFetcher{
		PerPage:               20,
		Currency:              "usd",
		Sparkline:             true,
		PriceChangePercentage: []string{"1h", "24h", "7d"},
		MaxAttempts:           2,
		BaseBackoff:           500 * time.Millisecond,
		RequestTimeout:        10 * time.Second,
		IDsMaxAttempts:        3,
		IDsBaseBackoff:        time.Second,
		IDsChunkSize:          100,
	}
}

// WatchlistFetcher configures markets requests filtered to favorite ids
type WatchlistFetcher struct {
	Sparkline             bool          `yaml:"sparkline"`
	PriceChangePercentage []string      `yaml:"price_change_percentage"`
	MaxAttempts           int           `yaml:"max_attempts" validate:"min=1"`
	BaseBackoff           time.Duration `yaml:"base_backoff" validate:"gt=0"`
}

func DefaultWatchlistFetcher() WatchlistFetcher {
	return WatchlistFetcher{
		Sparkline:             true,
		PriceChangePercentage: []string{"1h", "24h", "7d"},
		MaxAttempts:           2,
		BaseBackoff:           500 * time.Millisecond,
	}
}

// GlobalStatsFetcher configures the /global request
type GlobalStatsFetcher struct {
	Enabled     bool          `yaml:"enabled"`
	MaxAttempts int           `yaml:"max_attempts" validate:"min=1"`
	BaseBackoff time.Duration `yaml:"base_backoff" validate:"gt=0"`
}

func DefaultGlobalStatsFetcher() GlobalStatsFetcher {
	return GlobalStatsFetcher{
		Enabled:     true,
		MaxAttempts: 2,
		BaseBackoff: 500 * time.Millisecond,
	}
}

// APIKeyConfig configures rate limiting per CoinGecko key type.
// Zero values fall back to the built-in defaults.
type APIKeyConfig struct {
	Pro   RateLimit `yaml:"pro"`
	Demo  RateLimit `yaml:"demo"`
	NoKey RateLimit `yaml:"nokey"`
}

type RateLimit struct {
	RateLimitPerMinute int `yaml:"rate_limit_per_minute" validate:"min=0"`
	Burst              int `yaml:"burst" validate:"min=0"`
}

type APITokens struct {
	Tokens     []string `json:"api_tokens"`
	DemoTokens []string `json:"demo_api_tokens,omitempty"`
}

// LoadAPITokens reads CoinGecko keys from a json file. A missing file yields
// an empty token set so the public API is used.
func LoadAPITokens(filename string) (*APITokens, error) {
	if filename == "" {
		return &APITokens{Tokens: []string{}}, nil
	}

	data, err := os.ReadFile(filename)
	if os.IsNotExist(err) {
		return &APITokens{Tokens: []string{}}, nil
	}
	if err != nil {
		return nil, err
	}

	var tokens APITokens
	if err := json.Unmarshal(data, &tokens); err != nil {
		return nil, err
	}
	if tokens.Tokens == nil {
		tokens.Tokens = []string{}
	}
	return &tokens, nil
}
