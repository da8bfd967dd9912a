package config

import "time"

type CoinbaseConfig struct {
	BaseURL            string        `yaml:"base_url" validate:"required,url"`
	Fiat               string        `yaml:"fiat" validate:"required"`
	MaxRetries         int           `yaml:"max_retries" validate:"min=1"`
	RetryDelay         time.Duration `yaml:"retry_delay" validate:"gte=0"`
	RequestTimeout     time.Duration `yaml:"request_timeout" validate:"gt=0"`
	AllowUnlistedPairs bool          `yaml:"allow_unlisted_pairs"`
}

func DefaultCoinbaseConfig() CoinbaseConfig {
	return CoinbaseConfig{
		BaseURL:        "https://api.coinbase.com",
		Fiat:           "USD",
		MaxRetries:     3,
		RetryDelay:     2 * time.Second,
		RequestTimeout: 10 * time.Second,
	}
}

type BinanceConfig struct {
	RestURL        string        `yaml:"rest_url" validate:"required,url"`
	WSURL          string        `yaml:"ws_url" validate:"required"`
	QuoteAsset     string        `yaml:"quote_asset" validate:"required"`
	KlineInterval  string        `yaml:"kline_interval" validate:"required"`
	KlineLimit     int           `yaml:"kline_limit" validate:"min=2,max=1000"`
	RequestTimeout time.Duration `yaml:"request_timeout" validate:"gt=0"`
	// Max concurrent kline requests when building several sparklines
	SparklineConcurrency int `yaml:"sparkline_concurrency" validate:"min=1"`
	// Fill missing watchlist sparklines from klines
	EnrichSparklines bool `yaml:"enrich_sparklines"`
	StreamEnabled    bool `yaml:"stream_enabled"`
}

func DefaultBinanceConfig() BinanceConfig {
	return BinanceConfig{
		RestURL:              "https://api.binance.com",
		WSURL:                "wss://data-stream.binance.vision/ws/!ticker@arr",
		QuoteAsset:           "USDT",
		KlineInterval:        "1d",
		KlineLimit:           7,
		RequestTimeout:       10 * time.Second,
		SparklineConcurrency: 4,
		EnrichSparklines:     true,
	}
}
