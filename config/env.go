package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// EnvPrefix is the prefix of every environment override
const EnvPrefix = "MARKET_AGGREGATOR_"

// applyEnvOverrides overwrites config fields with MARKET_AGGREGATOR_* variables
// when they are set. Secrets such as the redis password are expected here
// rather than in config.yaml.
func applyEnvOverrides(cfg *Config) {
	setStr(&cfg.Port, "PORT")
	setStr(&cfg.TokensFile, "TOKENS_FILE")
	setStr(&cfg.OverrideCoingeckoPublicURL, "COINGECKO_PUBLIC_URL")
	setStr(&cfg.OverrideCoingeckoProURL, "COINGECKO_PRO_URL")

	setStr(&cfg.Logging.Level, "LOG_LEVEL")
	setStr(&cfg.Logging.Format, "LOG_FORMAT")

	setStr(&cfg.Cache.Backend, "CACHE_BACKEND")
	setStr(&cfg.Cache.Dir, "CACHE_DIR")
	setStr(&cfg.Cache.Redis.Addr, "REDIS_ADDR")
	setStr(&cfg.Cache.Redis.Password, "REDIS_PASSWORD")
	setInt(&cfg.Cache.Redis.DB, "REDIS_DB")

	setStr(&cfg.LivePrices.Source, "LIVE_PRICES_SOURCE")
	setDuration(&cfg.Aggregator.RefreshInterval, "REFRESH_INTERVAL")
	setBool(&cfg.Aggregator.AllowConcurrentRefresh, "ALLOW_CONCURRENT_REFRESH")
	setBool(&cfg.Binance.StreamEnabled, "BINANCE_STREAM_ENABLED")
	setBool(&cfg.Reachability.Enabled, "REACHABILITY_ENABLED")
}

func lookup(name string) (string, bool) {
	v, ok := os.LookupEnv(EnvPrefix + name)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

func setStr(dst *string, name string) {
	if v, ok := lookup(name); ok {
		*dst = v
	}
}

func setInt(dst *int, name string) {
	v, ok := lookup(name)
	if !ok {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Config: ignoring %s%s=%q: %v", EnvPrefix, name, v, err)
		return
	}
	*dst = n
}

func setBool(dst *bool, name string) {
	v, ok := lookup(name)
	if !ok {
		return
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("Config: ignoring %s%s=%q: %v", EnvPrefix, name, v, err)
		return
	}
	*dst = b
}

func setDuration(dst *time.Duration, name string) {
	v, ok := lookup(name)
	if !ok {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("Config: ignoring %s%s=%q: %v", EnvPrefix, name, v, err)
		return
	}
	*dst = d
}
