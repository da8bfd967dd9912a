package interfaces

import "context"

//go:generate mockgen -destination=mocks/services.go . IReachability,IMarketsClient,IWatchlistClient,IGlobalStatsClient,IPriceSource,ISparklineSource,ISpotPriceClient,IFavoritesStore

// IReachability reports whether network fetches should be attempted
type IReachability interface {
	IsOnline() bool
}

// IMarketsClient fetches coin listings and spot prices
type IMarketsClient interface {
	// FetchCoinMarkets returns the top coins by market cap
	FetchCoinMarkets(ctx context.Context) ([]Coin, error)

	// FetchCoins returns coins for ids or symbols. Network failures degrade
	// to cached data or an empty list; only cancellation is an error.
	FetchCoins(ctx context.Context, ids []string) ([]Coin, error)

	// FetchSpotPrice returns the USD price of a single symbol
	FetchSpotPrice(ctx context.Context, symbol string) (float64, error)
}

// IWatchlistClient fetches markets filtered to an explicit id set
type IWatchlistClient interface {
	FetchWatchlistMarkets(ctx context.Context, ids []string) ([]Coin, error)
}

// IGlobalStatsClient fetches aggregate market statistics
type IGlobalStatsClient interface {
	FetchGlobalStats(ctx context.Context) (*GlobalMarketData, error)
}

// IPriceSource returns USD prices keyed by lowercase symbol. Symbols without
// a price are omitted from the result.
type IPriceSource interface {
	FetchPrices(ctx context.Context, symbols []string) (map[string]float64, error)
}

// ISparklineSource builds 7 point sparklines keyed by lowercase symbol
type ISparklineSource interface {
	FetchSparklines(ctx context.Context, symbols []string) map[string][]float64
}

// ISpotPriceClient fetches a single spot price for a base/fiat pair
type ISpotPriceClient interface {
	FetchSpotPrice(ctx context.Context, base, fiat string) (float64, error)
}

// IFavoritesStore is the persisted favorite coin id set
type IFavoritesStore interface {
	// Toggle adds or removes id and reports whether it is now a favorite
	Toggle(ctx context.Context, id string) (bool, error)
	Remove(ctx context.Context, id string) error
	IsFavorite(id string) bool
	// GetAllIDs returns the ids sorted
	GetAllIDs() []string
}
