package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/status-im/market-aggregator/cache"
)

const DefaultPort = "8080"

type Config struct {
	CoingeckoMarkets CoingeckoMarketsFetcher `yaml:"coingecko_markets"`
	Watchlist        WatchlistFetcher        `yaml:"watchlist"`
	GlobalStats      GlobalStatsFetcher      `yaml:"global_stats"`
	Coinbase         CoinbaseConfig          `yaml:"coinbase"`
	Binance          BinanceConfig           `yaml:"binance"`
	Cache            cache.Config            `yaml:"cache_store"`
	Reachability     ReachabilityConfig      `yaml:"reachability"`
	LivePrices       LivePricesConfig        `yaml:"live_prices"`
	Aggregator       AggregatorConfig        `yaml:"aggregator"`
	Logging          LoggingConfig           `yaml:"logging"`
	APIKeyRateLimits APIKeyConfig            `yaml:"api_key_rate_limits"`

	Port       string     `yaml:"port"`
	TokensFile string     `yaml:"tokens_file"`
	APITokens  *APITokens `yaml:"-"`

	OverrideCoingeckoPublicURL string `yaml:"override_coingecko_public_url" validate:"omitempty,url"`
	OverrideCoingeckoProURL    string `yaml:"override_coingecko_pro_url" validate:"omitempty,url"`
}

// Default returns a configuration with every section populated
func Default() *Config {
	return &Config{
		CoingeckoMarkets: DefaultCoingeckoMarketsFetcher(),
		Watchlist:        DefaultWatchlistFetcher(),
		GlobalStats:      DefaultGlobalStatsFetcher(),
		Coinbase:         DefaultCoinbaseConfig(),
		Binance:          DefaultBinanceConfig(),
		Cache:            cache.DefaultCacheConfig(),
		Reachability:     DefaultReachabilityConfig(),
		LivePrices:       DefaultLivePricesConfig(),
		Aggregator:       DefaultAggregatorConfig(),
		Logging:          DefaultLoggingConfig(),
		Port:             DefaultPort,
		TokensFile:       "coingecko_api_tokens.json",
		APITokens:        &APITokens{Tokens: []string{}},
	}
}

// LoadConfig reads the yaml file on top of the defaults, applies .env and
// environment overrides, loads API tokens and validates the result.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Config: could not load .env file: %v", err)
	}
	applyEnvOverrides(config)

	apiTokens, err := LoadAPITokens(config.TokensFile)
	if err != nil {
		log.Printf("Warning: Error loading API tokens from %s: %v. Using public API without authentication.",
			config.TokensFile, err)
		config.APITokens = &APITokens{Tokens: []string{}}
	} else {
		config.APITokens = apiTokens
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate runs struct tag validation followed by cross-field checks
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := c.Cache.Validate(); err != nil {
		return fmt.Errorf("invalid cache_store config: %w", err)
	}

	if err := c.Aggregator.Validate(); err != nil {
		return fmt.Errorf("invalid aggregator config: %w", err)
	}

	if c.LivePrices.Source == PriceSourceBinanceStream && !c.Binance.StreamEnabled {
		return fmt.Errorf("live_prices.source %q requires binance.stream_enabled", PriceSourceBinanceStream)
	}

	return nil
}

// GetPort returns the configured listen port, honouring the PORT variable
func (c *Config) GetPort() string {
	if port := os.Getenv("PORT"); port != "" {
		return port
	}
	if c.Port == "" {
		return DefaultPort
	}
	return c.Port
}
