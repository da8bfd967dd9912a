package coingecko_markets

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/status-im/market-aggregator/cache"
	cg "github.com/status-im/market-aggregator/coingecko_common"
	"github.com/status-im/market-aggregator/config"
	"github.com/status-im/market-aggregator/interfaces"
	"github.com/status-im/market-aggregator/metrics"
)

// Client fetches top markets, id-filtered markets and spot prices from CoinGecko
type Client struct {
	config  config.CoingeckoMarketsFetcher
	markets *cg.BaseClient
	coins   *cg.BaseClient
}

// NewClient creates a markets client; id lookups use their own attempt budget
func NewClient(deps cg.BaseClientDeps) *Client {
	cfg := deps.Config.CoingeckoMarkets

	opts := cg.DefaultRetryOptions()
	opts.MaxAttempts = cfg.MaxAttempts
	opts.BaseBackoff = cfg.BaseBackoff
	opts.RequestTimeout = cfg.RequestTimeout
	opts.LogPrefix = "CoinGecko Markets"

	idsOpts := opts
	idsOpts.MaxAttempts = cfg.IDsMaxAttempts
	idsOpts.BaseBackoff = cfg.IDsBaseBackoff
	idsOpts.LogPrefix = "CoinGecko Coins"

	return &Client{
		config:  cfg,
		markets: cg.NewBaseClient(metrics.ServiceMarkets, deps, opts),
		coins:   cg.NewBaseClient(metrics.ServiceCoins, deps, idsOpts),
	}
}

// FetchCoinMarkets returns the first page of coins ordered by market cap.
// Offline or after exhausted retries the cached list is served.
func (c *Client) FetchCoinMarkets(ctx context.Context) ([]interfaces.Coin, error) {
	start := time.Now()
	defer func() { c.markets.MetricsWriter().RecordDataFetchCycle(time.Since(start)) }()

	coins, err := cg.FetchWithCache(ctx, c.markets, cg.CachedRequest[[]interfaces.Coin]{
		CacheKey: cache.CoinsKey,
		Fetch: func(ctx context.Context) ([]byte, error) {
			rb := NewMarketRequestBuilder(c.markets.NewRequestBuilder(MARKETS_API_PATH)).
				WithMarketCurrency(c.config.Currency).
				WithPerPage(c.config.PerPage).
				WithPage(1).
				WithSparkline(c.config.Sparkline).
				WithPriceChangePercentage(c.config.PriceChangePercentage)
			return c.markets.Execute(ctx, rb.CoingeckoRequestBuilder)
		},
		Decode: cg.DecodeCoins,
	})
	if err != nil {
		return nil, err
	}

	c.markets.MetricsWriter().RecordCacheSize(len(coins))
	log.Printf("CoinGecko Markets: Fetched %d coins", len(coins))
	return coins, nil
}

// FetchCoins returns coins for ids or ticker symbols. Network failures
// degrade to cached coins for those ids or an empty list; only a cancelled
// context is reported as an error.
func (c *Client) FetchCoins(ctx context.Context, ids []string) ([]interfaces.Coin, error) {
	mapped := cg.SymbolsToIDs(ids)
	if len(mapped) == 0 {
		return []interfaces.Coin{}, nil
	}

	fallback := func(ctx context.Context) ([]interfaces.Coin, bool) {
		cached := cg.CachedCoinsByIDs(ctx, c.coins.Store(), mapped)
		return cached, len(cached) > 0
	}

	coins, err := cg.FetchWithCache(ctx, c.coins, cg.CachedRequest[[]interfaces.Coin]{
		CacheKey: cache.LookupKey,
		Fetch: IDsFetcher(c.coins, mapped, IDsRequest{
			Currency:              c.config.Currency,
			Sparkline:             false,
			PriceChangePercentage: []string{"24h"},
			ChunkSize:             c.config.IDsChunkSize,
		}),
		Decode:   cg.DecodeCoins,
		Fallback: fallback,
	})
	if err != nil {
		if cg.IsCancellation(err) || ctx.Err() != nil {
			return nil, err
		}
		log.Printf("CoinGecko Coins: Lookup of %d ids failed, serving cached coins: %v", len(mapped), err)
		c.coins.MetricsWriter().RecordCacheFallback("degraded")
		cached, _ := fallback(ctx)
		return cached, nil
	}
	return coins, nil
}

// FetchSpotPrice returns the price of one coin from /simple/price
func (c *Client) FetchSpotPrice(ctx context.Context, symbol string) (float64, error) {
	id := cg.SymbolToID(symbol)
	if id == "" {
		return 0, fmt.Errorf("empty symbol")
	}

	prices, err := c.fetchSimplePrices(ctx, []string{id})
	if err != nil {
		return 0, err
	}

	price, ok := prices[id]
	if !ok {
		return 0, &cg.BadServerResponseError{StatusCode: 200, Body: fmt.Sprintf("no %s price for %s", c.currency(), id)}
	}
	return price, nil
}

// FetchPrices implements interfaces.IPriceSource. The result is keyed by
// lowercase symbol; symbols without a price are omitted.
func (c *Client) FetchPrices(ctx context.Context, symbols []string) (map[string]float64, error) {
	idBySymbol := make(map[string]string, len(symbols))
	ids := make([]string, 0, len(symbols))
	for _, symbol := range symbols {
		key := strings.ToLower(strings.TrimSpace(symbol))
		if key == "" {
			continue
		}
		if _, dup := idBySymbol[key]; dup {
			continue
		}
		id := cg.SymbolToID(key)
		idBySymbol[key] = id
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return map[string]float64{}, nil
	}

	prices, err := c.fetchSimplePrices(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := make(map[string]float64, len(idBySymbol))
	for symbol, id := range idBySymbol {
		if price, ok := prices[id]; ok {
			result[symbol] = price
		}
	}
	return result, nil
}

// fetchSimplePrices returns the configured-currency price per coin id
func (c *Client) fetchSimplePrices(ctx context.Context, ids []string) (map[string]float64, error) {
	if !c.markets.IsOnline() {
		return nil, cg.ErrNotConnected
	}

	currency := c.currency()
	return cg.ChunkMapFetcher(ctx, ids, c.config.IDsChunkSize, 0,
		func(ctx context.Context, chunk []string) (map[string]float64, error) {
			rb := NewSimplePriceRequestBuilder(c.markets.NewRequestBuilder(SIMPLE_PRICE_API_PATH), chunk, currency)
			body, err := c.markets.Execute(ctx, rb)
			if err != nil {
				return nil, err
			}
			return decodeSimplePrices(body, currency)
		})
}

func (c *Client) currency() string {
	if c.config.Currency == "" {
		return "usd"
	}
	return strings.ToLower(c.config.Currency)
}

// decodeSimplePrices reads {"bitcoin":{"usd":1.0}} answers. Ids whose price is null are skipped.
func decodeSimplePrices(body []byte, currency string) (map[string]float64, error) {
	var raw map[string]map[string]*float64
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &cg.DecodeError{Err: err}
	}

	prices := make(map[string]float64, len(raw))
	for id, byCurrency := range raw {
		if price := byCurrency[currency]; price != nil {
			prices[id] = *price
		}
	}
	return prices, nil
}

// IDsRequest holds the parameters of an id-filtered markets request
type IDsRequest struct {
	Currency              string
	Sparkline             bool
	PriceChangePercentage []string
	ChunkSize             int
}

// IDsFetcher returns a fetch func requesting ids in chunks and merging the
// chunk bodies into one JSON array
func IDsFetcher(base *cg.BaseClient, ids []string, req IDsRequest) func(ctx context.Context) ([]byte, error) {
	return func(ctx context.Context) ([]byte, error) {
		chunkSize := req.ChunkSize
		if chunkSize <= 0 {
			chunkSize = len(ids)
		}

		bodies, err := cg.ChunkArrayFetcher(ctx, ids, chunkSize, 0,
			func(ctx context.Context, chunk []string) ([][]byte, error) {
				rb := NewMarketRequestBuilder(base.NewRequestBuilder(MARKETS_API_PATH)).
					WithMarketCurrency(req.Currency).
					WithCoinIDs(chunk).
					WithPerPage(len(chunk)).
					WithSparkline(req.Sparkline).
					WithPriceChangePercentage(req.PriceChangePercentage)
				body, err := base.Execute(ctx, rb.CoingeckoRequestBuilder)
				if err != nil {
					return nil, err
				}
				return [][]byte{body}, nil
			})
		if err != nil {
			return nil, err
		}

		if len(bodies) == 1 {
			return bodies[0], nil
		}
		return cg.MergeJSONArrays(bodies)
	}
}
