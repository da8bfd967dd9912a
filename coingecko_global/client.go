package coingecko_global

import (
	"context"
	"encoding/json"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/status-im/market-aggregator/cache"
	cg "github.com/status-im/market-aggregator/coingecko_common"
	"github.com/status-im/market-aggregator/interfaces"
	"github.com/status-im/market-aggregator/metrics"
)

// GLOBAL_API_PATH is the aggregate market statistics endpoint
const GLOBAL_API_PATH = "/api/v3/global"

// Client fetches /global statistics
type Client struct {
	base *cg.BaseClient
}

func NewClient(deps cg.BaseClientDeps) *Client {
	cfg := deps.Config.GlobalStats

	opts := cg.DefaultRetryOptions()
	opts.MaxAttempts = cfg.MaxAttempts
	opts.BaseBackoff = cfg.BaseBackoff
	opts.RequestTimeout = deps.Config.CoingeckoMarkets.RequestTimeout
	opts.LogPrefix = "CoinGecko Global"

	return &Client{base: cg.NewBaseClient(metrics.ServiceGlobal, deps, opts)}
}

// FetchGlobalStats returns the global market snapshot, served from the
// cache when offline or after exhausted retries
func (c *Client) FetchGlobalStats(ctx context.Context) (*interfaces.GlobalMarketData, error) {
	data, err := cg.FetchWithCache(ctx, c.base, cg.CachedRequest[*interfaces.GlobalMarketData]{
		CacheKey: cache.GlobalKey,
		Fetch: func(ctx context.Context) ([]byte, error) {
			return c.base.Execute(ctx, c.base.NewRequestBuilder(GLOBAL_API_PATH))
		},
		Decode: DecodeGlobal,
	})
	if err != nil {
		return nil, err
	}

	log.Debugf("CoinGecko Global: %d active cryptocurrencies on %d markets", data.ActiveCryptocurrencies, data.Markets)
	return data, nil
}

// DecodeGlobal decodes a /global body. Every field of data is required.
func DecodeGlobal(body []byte) (*interfaces.GlobalMarketData, error) {
	var envelope struct {
		Data map[string]json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, err
	}
	if envelope.Data == nil {
		return nil, fmt.Errorf("missing data object")
	}

	for _, field := range []string{
		"total_market_cap",
		"total_volume",
		"market_cap_percentage",
		"market_cap_change_percentage_24h_usd",
		"active_cryptocurrencies",
		"markets",
	} {
		if raw, ok := envelope.Data[field]; !ok || string(raw) == "null" {
			return nil, fmt.Errorf("missing field data.%s", field)
		}
	}

	var response interfaces.GlobalDataResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, err
	}
	return &response.Data, nil
}
