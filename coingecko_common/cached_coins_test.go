package coingecko_common_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/status-im/market-aggregator/cache"
	mock_cache "github.com/status-im/market-aggregator/cache/mocks"
	cg "github.com/status-im/market-aggregator/coingecko_common"
	"github.com/status-im/market-aggregator/interfaces"
)

func TestCachedCoinsByIDs(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mock_cache.NewMockStore(ctrl)

	store.EXPECT().Get(gomock.Any(), cache.WatchlistKey).
		Return([]byte(`[{"id":"ethereum","symbol":"eth","name":"Ethereum","current_price":3000}]`), true, nil)
	store.EXPECT().Get(gomock.Any(), cache.CoinsKey).
		Return([]byte(`[{"id":"bitcoin","symbol":"btc","name":"Bitcoin"},{"id":"ethereum","symbol":"eth","name":"Ethereum","current_price":1}]`), true, nil)
	store.EXPECT().Get(gomock.Any(), cache.LookupKey).
		Return([]byte(`[{"id":"solana","symbol":"sol","name":"Solana"},{"id":"ethereum","symbol":"eth","name":"Ethereum","current_price":2}]`), true, nil)

	coins := cg.CachedCoinsByIDs(context.Background(), store, []string{"ethereum", "Bitcoin", "solana"})

	assert.Equal(t, []string{"ethereum", "bitcoin", "solana"}, interfaces.CoinIDs(coins))
	assert.Equal(t, 3000.0, coins[0].PriceValue(), "lookup entries never shadow the watchlist")
}

func TestCachedCoinsByIDs_EmptyAndMissing(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mock_cache.NewMockStore(ctrl)

	assert.Empty(t, cg.CachedCoinsByIDs(context.Background(), store, nil))

	store.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, false, nil).Times(3)
	assert.Empty(t, cg.CachedCoinsByIDs(context.Background(), store, []string{"bitcoin"}))
}
