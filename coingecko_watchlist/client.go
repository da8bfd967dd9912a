package coingecko_watchlist

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/status-im/market-aggregator/cache"
	cg "github.com/status-im/market-aggregator/coingecko_common"
	"github.com/status-im/market-aggregator/coingecko_markets"
	"github.com/status-im/market-aggregator/config"
	"github.com/status-im/market-aggregator/interfaces"
	"github.com/status-im/market-aggregator/metrics"
)

// Client fetches markets data for an explicit set of coin ids
type Client struct {
	config   config.WatchlistFetcher
	currency string
	chunk    int
	base     *cg.BaseClient
}

// NewClient creates a watchlist client sharing the CoinGecko key and limiter setup
func NewClient(deps cg.BaseClientDeps) *Client {
	cfg := deps.Config.Watchlist

	opts := cg.DefaultRetryOptions()
	opts.MaxAttempts = cfg.MaxAttempts
	opts.BaseBackoff = cfg.BaseBackoff
	opts.RequestTimeout = deps.Config.CoingeckoMarkets.RequestTimeout
	opts.LogPrefix = "CoinGecko Watchlist"

	return &Client{
		config:   cfg,
		currency: deps.Config.CoingeckoMarkets.Currency,
		chunk:    deps.Config.CoingeckoMarkets.IDsChunkSize,
		base:     cg.NewBaseClient(metrics.ServiceWatchlist, deps, opts),
	}
}

// FetchWatchlistMarkets returns markets entries for ids or ticker symbols with
// sparklines. Offline or after exhausted retries the cached coins for ids are served.
func (c *Client) FetchWatchlistMarkets(ctx context.Context, ids []string) ([]interfaces.Coin, error) {
	ids = cg.SymbolsToIDs(ids)
	if len(ids) == 0 {
		return []interfaces.Coin{}, nil
	}

	start := time.Now()
	defer func() { c.base.MetricsWriter().RecordDataFetchCycle(time.Since(start)) }()

	coins, err := cg.FetchWithCache(ctx, c.base, cg.CachedRequest[[]interfaces.Coin]{
		CacheKey: cache.WatchlistKey,
		Fetch: coingecko_markets.IDsFetcher(c.base, ids, coingecko_markets.IDsRequest{
			Currency:              c.currency,
			Sparkline:             c.config.Sparkline,
			PriceChangePercentage: c.config.PriceChangePercentage,
			ChunkSize:             c.chunk,
		}),
		Decode: cg.DecodeCoins,
		Fallback: func(ctx context.Context) ([]interfaces.Coin, bool) {
			cached := cg.CachedCoinsByIDs(ctx, c.base.Store(), ids)
			return cached, len(cached) > 0
		},
	})
	if err != nil {
		return nil, err
	}

	coins = interfaces.FilterCoinsByIDs(coins, ids)
	c.base.MetricsWriter().RecordCacheSize(len(coins))
	log.Debugf("CoinGecko Watchlist: Fetched %d of %d coins", len(coins), len(ids))
	return coins, nil
}
