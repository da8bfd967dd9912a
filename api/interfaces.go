package api

import (
	"context"

	"github.com/status-im/market-aggregator/aggregator"
	"github.com/status-im/market-aggregator/events"
	"github.com/status-im/market-aggregator/interfaces"
)

//go:generate mockgen -destination=mocks/services.go . IAggregator,ISymbolPriceClient

// IAggregator is the part of the aggregation service the API reads and drives
type IAggregator interface {
	View() *aggregator.View
	SubscribeViewChange() events.ISubscription
	SetSegment(ctx context.Context, segment aggregator.Segment) error
	SetSort(ctx context.Context, field aggregator.SortField, dir aggregator.SortDirection) error
	ToggleSort(ctx context.Context, field aggregator.SortField) error
	SetSearchText(ctx context.Context, text string) error
	ToggleFavorite(ctx context.Context, id string) (bool, error)
	RemoveFavorite(ctx context.Context, id string) error
	TriggerRefresh() bool
	FetchCoins(ctx context.Context, ids []string) ([]interfaces.Coin, error)
}

// ISymbolPriceClient returns the USD price of a ticker symbol
type ISymbolPriceClient interface {
	FetchSpotPrice(ctx context.Context, symbol string) (float64, error)
}
