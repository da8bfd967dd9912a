package config

import (
	"fmt"
	"time"
)

// Live price sources
const (
	PriceSourceCoingecko     = "coingecko"
	PriceSourceCoinbase      = "coinbase"
	PriceSourceBinanceStream = "binance_stream"
)

type AggregatorConfig struct {
	RefreshInterval   time.Duration `yaml:"refresh_interval" validate:"gt=0"`
	WatchlistInterval time.Duration `yaml:"watchlist_interval" validate:"gt=0"`
	TrendingLimit     int           `yaml:"trending_limit" validate:"min=1"`
	MoversLimit       int           `yaml:"movers_limit" validate:"min=1"`
	SearchDebounce    time.Duration `yaml:"search_debounce" validate:"gte=0"`

	LoadAttempts        int           `yaml:"load_attempts" validate:"min=1"`
	LoadRetryDelay      time.Duration `yaml:"load_retry_delay" validate:"gte=0"`
	WatchlistAttempts   int           `yaml:"watchlist_attempts" validate:"min=1"`
	WatchlistRetryDelay time.Duration `yaml:"watchlist_retry_delay" validate:"gte=0"`

	// When false a manual refresh arriving while another refresh is in flight is dropped
	AllowConcurrentRefresh bool `yaml:"allow_concurrent_refresh"`

	DefaultSortField     string `yaml:"default_sort_field"`
	DefaultSortDirection string `yaml:"default_sort_direction"`
}

func DefaultAggregatorConfig() AggregatorConfig {
	return AggregatorConfig{
		RefreshInterval:      30 * time.Second,
		WatchlistInterval:    15 * time.Second,
		TrendingLimit:        10,
		MoversLimit:          10,
		SearchDebounce:       300 * time.Millisecond,
		LoadAttempts:         3,
		LoadRetryDelay:       2 * time.Second,
		WatchlistAttempts:    3,
		WatchlistRetryDelay:  1 * time.Second,
		DefaultSortField:     "market_cap",
		DefaultSortDirection: "desc",
	}
}

// Validate checks the default sort settings
func (c *AggregatorConfig) Validate() error {
	switch c.DefaultSortField {
	case "coin", "price", "daily_change", "volume", "market_cap":
	default:
		return fmt.Errorf("unknown default_sort_field %q", c.DefaultSortField)
	}

	if c.DefaultSortDirection != "asc" && c.DefaultSortDirection != "desc" {
		return fmt.Errorf("unknown default_sort_direction %q", c.DefaultSortDirection)
	}

	return nil
}

type LivePricesConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Interval time.Duration `yaml:"interval" validate:"gt=0"`
	Source   string        `yaml:"source" validate:"oneof=coingecko coinbase binance_stream"`
}

func DefaultLivePricesConfig() LivePricesConfig {
	return LivePricesConfig{
		Enabled:  true,
		Interval: 5 * time.Second,
		Source:   PriceSourceCoingecko,
	}
}

type ReachabilityConfig struct {
	// When disabled the monitor stays online and never probes
	Enabled       bool          `yaml:"enabled"`
	ProbeURL      string        `yaml:"probe_url" validate:"required,url"`
	ProbeInterval time.Duration `yaml:"probe_interval" validate:"gt=0"`
	ProbeTimeout  time.Duration `yaml:"probe_timeout" validate:"gt=0"`
	InitialOnline bool          `yaml:"initial_online"`
}

func DefaultReachabilityConfig() ReachabilityConfig {
	return ReachabilityConfig{
		Enabled:       true,
		ProbeURL:      "https://api.coingecko.com/api/v3/ping",
		ProbeInterval: 15 * time.Second,
		ProbeTimeout:  5 * time.Second,
		InitialOnline: true,
	}
}
