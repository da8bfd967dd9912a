package core

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/status-im/market-aggregator/aggregator"
	"github.com/status-im/market-aggregator/api"
	"github.com/status-im/market-aggregator/binance"
	"github.com/status-im/market-aggregator/cache"
	"github.com/status-im/market-aggregator/coinbase"
	cg "github.com/status-im/market-aggregator/coingecko_common"
	"github.com/status-im/market-aggregator/coingecko_global"
	"github.com/status-im/market-aggregator/coingecko_markets"
	"github.com/status-im/market-aggregator/coingecko_watchlist"
	"github.com/status-im/market-aggregator/config"
	"github.com/status-im/market-aggregator/favorites"
	"github.com/status-im/market-aggregator/interfaces"
	"github.com/status-im/market-aggregator/live_prices"
	"github.com/status-im/market-aggregator/reachability"
)

// Setup creates and registers all services
func Setup(ctx context.Context, cfg *config.Config) (*Registry, error) {
	registry := NewRegistry()

	backend, err := cache.NewBackend(ctx, cfg.Cache)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache backend: %w", err)
	}
	cacheService := cache.NewService(cfg.Cache, backend)
	registry.Register("cache", cacheService)

	monitor := reachability.NewMonitor(cfg.Reachability)
	registry.Register("reachability", monitor)

	limiterManager := cg.NewRateLimiterManager(cfg.APIKeyRateLimits)
	for _, host := range cg.OverriddenHosts(cfg) {
		limiterManager.AddHost(host)
	}

	apiTokens := cfg.APITokens
	if apiTokens == nil {
		apiTokens = &config.APITokens{}
	}
	deps := cg.BaseClientDeps{
		Config:         cfg,
		KeyManager:     cg.NewAPIKeyManager(apiTokens),
		LimiterManager: limiterManager,
		Store:          cacheService,
		Reachability:   monitor,
	}

	marketsClient := coingecko_markets.NewClient(deps)
	watchlistClient := coingecko_watchlist.NewClient(deps)
	coinbaseClient := coinbase.NewClient(cfg.Coinbase, monitor)

	var globalClient interfaces.IGlobalStatsClient
	if cfg.GlobalStats.Enabled {
		globalClient = coingecko_global.NewClient(deps)
	}

	var sparklines interfaces.ISparklineSource
	if cfg.Binance.EnrichSparklines {
		sparklines = binance.NewKlinesClient(cfg.Binance, monitor)
	}

	var binanceStream *binance.Service
	if cfg.Binance.StreamEnabled {
		binanceStream = binance.NewService(cfg.Binance)
		registry.Register("binance-stream", binanceStream)
	}

	var poller *live_prices.Poller
	var liveSource interfaces.IPriceSource
	if cfg.LivePrices.Enabled {
		liveSource, err = priceSource(cfg.LivePrices.Source, marketsClient, coinbaseClient, binanceStream)
		if err != nil {
			return nil, err
		}
		poller = live_prices.NewPoller(liveSource, cfg.LivePrices.Interval)
		registry.Register("live-prices", poller)
		log.Printf("Core: Live prices from %s every %v", cfg.LivePrices.Source, cfg.LivePrices.Interval)
	}

	favoritesStore := favorites.NewStore(cacheService)
	registry.Register("favorites", favoritesStore)

	aggregatorService := aggregator.NewService(cfg.Aggregator, aggregator.Deps{
		Markets:      marketsClient,
		Watchlist:    watchlistClient,
		Global:       globalClient,
		Sparklines:   sparklines,
		Favorites:    favoritesStore,
		Store:        cacheService,
		Poller:       poller,
		Reachability: monitor,
	})
	registry.Register("aggregator", aggregatorService)

	server := api.New(cfg.GetPort(), api.Deps{
		Aggregator:   aggregatorService,
		Prices:       marketsClient,
		FiatPrices:   coinbaseClient,
		LivePrices:   liveSource,
		Sparklines:   sparklines,
		Reachability: monitor,
		Fiat:         cfg.Coinbase.Fiat,
	})
	registry.Register("api", server)

	return registry, nil
}

// priceSource picks the live price provider named in config
func priceSource(name string, markets *coingecko_markets.Client, coinbaseClient *coinbase.Client, stream *binance.Service) (interfaces.IPriceSource, error) {
	switch name {
	case config.PriceSourceCoingecko, "":
		return markets, nil
	case config.PriceSourceCoinbase:
		return coinbaseClient, nil
	case config.PriceSourceBinanceStream:
		if stream == nil {
			return nil, fmt.Errorf("live price source %q requires the binance stream", name)
		}
		return stream, nil
	default:
		return nil, fmt.Errorf("unknown live price source %q", name)
	}
}
