package coingecko_watchlist

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/status-im/market-aggregator/cache"
	cg "github.com/status-im/market-aggregator/coingecko_common"
	"github.com/status-im/market-aggregator/coingecko_markets"
	"github.com/status-im/market-aggregator/config"
	"github.com/status-im/market-aggregator/interfaces"
	mock_interfaces "github.com/status-im/market-aggregator/interfaces/mocks"
)

const watchlistBody = `[
  {"id":"bitcoin","symbol":"btc","name":"Bitcoin","current_price":67000,"sparkline_in_7d":{"price":[1,2,3,4,5,6,7]}},
  {"id":"solana","symbol":"sol","name":"Solana","current_price":150}
]`

type fixture struct {
	server   *httptest.Server
	store    cache.Store
	online   atomic.Bool
	status   atomic.Int32
	requests atomic.Int32
	lastURL  atomic.Value
	deps     cg.BaseClientDeps
	client   *Client
}

// servedCoins answers like /coins/markets: only the requested ids are returned
func servedCoins(r *http.Request) []byte {
	var all []interfaces.Coin
	if err := json.Unmarshal([]byte(watchlistBody), &all); err != nil {
		return []byte(watchlistBody)
	}
	ids := strings.Split(r.URL.Query().Get("ids"), ",")
	body, err := json.Marshal(interfaces.FilterCoinsByIDs(all, ids))
	if err != nil {
		return []byte(watchlistBody)
	}
	return body
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{}
	f.online.Store(true)
	f.status.Store(http.StatusOK)

	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.requests.Add(1)
		f.lastURL.Store(r.URL.String())
		if status := int(f.status.Load()); status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		_, _ = w.Write(servedCoins(r))
	}))
	t.Cleanup(f.server.Close)

	store, err := cache.NewFileBackend(t.TempDir())
	require.NoError(t, err)
	f.store = store

	ctrl := gomock.NewController(t)
	reachability := mock_interfaces.NewMockIReachability(ctrl)
	reachability.EXPECT().IsOnline().DoAndReturn(f.online.Load).AnyTimes()

	cfg := config.Default()
	cfg.OverrideCoingeckoPublicURL = f.server.URL
	cfg.Watchlist.BaseBackoff = time.Millisecond

	f.deps = cg.BaseClientDeps{
		Config:       cfg,
		KeyManager:   cg.NewAPIKeyManager(&config.APITokens{}),
		Store:        store,
		Reachability: reachability,
	}
	f.client = NewClient(f.deps)
	return f
}

func TestFetchWatchlistMarkets_EmptyIDs(t *testing.T) {
	f := newFixture(t)
	f.online.Store(false)

	coins, err := f.client.FetchWatchlistMarkets(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, coins)
	assert.Zero(t, f.requests.Load())
}

func TestFetchWatchlistMarkets_Success(t *testing.T) {
	f := newFixture(t)

	coins, err := f.client.FetchWatchlistMarkets(context.Background(), []string{"bitcoin", "solana"})
	require.NoError(t, err)
	assert.Equal(t, []string{"bitcoin", "solana"}, interfaces.CoinIDs(coins))
	assert.Len(t, coins[0].Sparkline(), 7)

	requested := f.lastURL.Load().(string)
	assert.Contains(t, requested, "ids=bitcoin%2Csolana")
	assert.Contains(t, requested, "sparkline=true")
	assert.Contains(t, requested, "price_change_percentage=1h%2C24h%2C7d")

	_, found, err := f.store.Get(context.Background(), cache.WatchlistKey)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestFetchWatchlistMarkets_ResultFilteredToIDs(t *testing.T) {
	f := newFixture(t)

	coins, err := f.client.FetchWatchlistMarkets(context.Background(), []string{"solana"})
	require.NoError(t, err)
	assert.Equal(t, []string{"solana"}, interfaces.CoinIDs(coins))
}

func TestFetchWatchlistMarkets_OfflineServesFilteredCache(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.store.Set(context.Background(), cache.CoinsKey,
		[]byte(`[{"id":"bitcoin","symbol":"btc","name":"Bitcoin"},{"id":"ethereum","symbol":"eth","name":"Ethereum"}]`)))
	f.online.Store(false)

	coins, err := f.client.FetchWatchlistMarkets(context.Background(), []string{"ethereum"})
	require.NoError(t, err)
	assert.Equal(t, []string{"ethereum"}, interfaces.CoinIDs(coins))
	assert.Zero(t, f.requests.Load())
}

func TestFetchWatchlistMarkets_OfflineWithoutCache(t *testing.T) {
	f := newFixture(t)
	f.online.Store(false)

	_, err := f.client.FetchWatchlistMarkets(context.Background(), []string{"bitcoin"})
	assert.ErrorIs(t, err, cg.ErrNotConnected)
}

func TestFetchWatchlistMarkets_ExhaustedFallsBackToCache(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.store.Set(context.Background(), cache.WatchlistKey,
		[]byte(`[{"id":"bitcoin","symbol":"btc","name":"Bitcoin"},{"id":"dogecoin","symbol":"doge","name":"Dogecoin"}]`)))
	f.status.Store(http.StatusTooManyRequests)

	coins, err := f.client.FetchWatchlistMarkets(context.Background(), []string{"dogecoin"})
	require.NoError(t, err)
	assert.Equal(t, []string{"dogecoin"}, interfaces.CoinIDs(coins))
	assert.EqualValues(t, 2, f.requests.Load())
}

func TestFetchWatchlistMarkets_ExhaustedWithoutCache(t *testing.T) {
	f := newFixture(t)
	f.status.Store(http.StatusTooManyRequests)

	_, err := f.client.FetchWatchlistMarkets(context.Background(), []string{"bitcoin"})
	var exhausted *cg.RetriesExhaustedError
	assert.ErrorAs(t, err, &exhausted)
}

func TestFetchWatchlistMarkets_BadStatus(t *testing.T) {
	f := newFixture(t)
	f.status.Store(http.StatusBadRequest)

	_, err := f.client.FetchWatchlistMarkets(context.Background(), []string{"bitcoin"})
	code, ok := cg.IsBadStatus(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.EqualValues(t, 1, f.requests.Load())
}

func TestFetchWatchlistMarkets_MapsSymbols(t *testing.T) {
	f := newFixture(t)

	coins, err := f.client.FetchWatchlistMarkets(context.Background(), []string{"BTC", "sol", "bitcoin"})
	require.NoError(t, err)
	assert.Equal(t, []string{"bitcoin", "solana"}, interfaces.CoinIDs(coins))
	assert.Contains(t, f.lastURL.Load().(string), "ids=bitcoin%2Csolana")
}

func TestFetchWatchlistMarkets_IDLookupKeepsWatchlistCache(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	coins, err := f.client.FetchWatchlistMarkets(ctx, []string{"solana"})
	require.NoError(t, err)
	require.Equal(t, []string{"solana"}, interfaces.CoinIDs(coins))

	lookup, err := coingecko_markets.NewClient(f.deps).FetchCoins(ctx, []string{"doge"})
	require.NoError(t, err)
	assert.Empty(t, lookup)
	assert.EqualValues(t, 2, f.requests.Load())

	f.online.Store(false)
	coins, err = f.client.FetchWatchlistMarkets(ctx, []string{"solana"})
	require.NoError(t, err)
	assert.Equal(t, []string{"solana"}, interfaces.CoinIDs(coins))
	assert.EqualValues(t, 2, f.requests.Load())
}
