package e2etest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/status-im/market-aggregator/config"
)

// writeTestConfig writes a config.yaml pointing every upstream at the mock
// server and returns its path
func writeTestConfig(dir, mockURL, wsURL, port string) (string, error) {
	content := fmt.Sprintf(`
port: "%[4]s"
tokens_file: "%[5]s"
override_coingecko_public_url: "%[1]s"

coingecko_markets:
  per_page: 20
  currency: usd
  sparkline: true
  price_change_percentage: ["1h", "24h", "7d"]
  max_attempts: 2
  base_backoff: 10ms
  request_timeout: 2s
  ids_max_attempts: 2
  ids_base_backoff: 10ms
  ids_chunk_size: 50

watchlist:
  sparkline: true
  price_change_percentage: ["24h"]
  max_attempts: 2
  base_backoff: 10ms

global_stats:
  enabled: true
  max_attempts: 2
  base_backoff: 10ms

coinbase:
  base_url: "%[1]s"
  fiat: USD
  max_retries: 2
  retry_delay: 10ms
  request_timeout: 2s

binance:
  rest_url: "%[1]s"
  ws_url: "%[2]s"
  quote_asset: USDT
  kline_interval: 1d
  kline_limit: 7
  request_timeout: 2s
  sparkline_concurrency: 2
  enrich_sparklines: true
  stream_enabled: false

cache_store:
  backend: file
  dir: "%[3]s"
  go_cache:
    enabled: true
    default_expiration: 1m
    cleanup_interval: 2m

reachability:
  enabled: true
  probe_url: "%[1]s/api/v3/ping"
  probe_interval: 1s
  probe_timeout: 1s
  initial_online: true

live_prices:
  enabled: true
  interval: 200ms
  source: coingecko

aggregator:
  refresh_interval: 1m
  watchlist_interval: 1m
  trending_limit: 3
  movers_limit: 3
  search_debounce: 0s
  load_attempts: 2
  load_retry_delay: 10ms
  watchlist_attempts: 2
  watchlist_retry_delay: 10ms
  default_sort_field: market_cap
  default_sort_direction: desc

api_key_rate_limits:
  nokey:
    rate_limit_per_minute: 60000
    burst: 100

logging:
  level: info
  format: text
`, mockURL, wsURL, filepath.Join(dir, "cache"), port, filepath.Join(dir, "tokens.json"))

	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// loadTestConfig writes and loads the test configuration
func loadTestConfig(dir, mockURL, wsURL, port string) (*config.Config, error) {
	path, err := writeTestConfig(dir, mockURL, wsURL, port)
	if err != nil {
		return nil, err
	}
	return config.LoadConfig(path)
}
