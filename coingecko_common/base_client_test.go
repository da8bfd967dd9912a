package coingecko_common_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_cache "github.com/status-im/market-aggregator/cache/mocks"
	cg "github.com/status-im/market-aggregator/coingecko_common"
	mock_coingecko_common "github.com/status-im/market-aggregator/coingecko_common/mocks"
	"github.com/status-im/market-aggregator/config"
	mock_interfaces "github.com/status-im/market-aggregator/interfaces/mocks"
)

const testCacheKey = "test_cache.json"

type fixture struct {
	server       *httptest.Server
	hits         int32
	status       int32
	body         string
	store        *mock_cache.MockStore
	reachability *mock_interfaces.MockIReachability
	client       *cg.BaseClient
}

func newFixture(t *testing.T, attempts int) *fixture {
	t.Helper()
	f := &fixture{status: http.StatusOK, body: `["a","b"]`}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&f.hits, 1)
		w.WriteHeader(int(atomic.LoadInt32(&f.status)))
		_, _ = w.Write([]byte(f.body))
	}))
	t.Cleanup(f.server.Close)

	ctrl := gomock.NewController(t)
	f.store = mock_cache.NewMockStore(ctrl)
	f.reachability = mock_interfaces.NewMockIReachability(ctrl)

	cfg := config.Default()
	cfg.OverrideCoingeckoPublicURL = f.server.URL
	cfg.OverrideCoingeckoProURL = f.server.URL

	opts := cg.DefaultRetryOptions()
	opts.MaxAttempts = attempts
	opts.BaseBackoff = time.Millisecond

	f.client = cg.NewBaseClient("test", cg.BaseClientDeps{
		Config:       cfg,
		KeyManager:   cg.NewAPIKeyManager(&config.APITokens{}),
		Store:        f.store,
		Reachability: f.reachability,
	}, opts)
	return f
}

func (f *fixture) request() cg.CachedRequest[[]string] {
	return cg.CachedRequest[[]string]{
		CacheKey: testCacheKey,
		Fetch: func(ctx context.Context) ([]byte, error) {
			return f.client.Execute(ctx, f.client.NewRequestBuilder("/api/v3/test"))
		},
		Decode: cg.DecodeJSONArray[string],
	}
}

func TestFetchWithCache_SuccessPersistsRawBody(t *testing.T) {
	f := newFixture(t, 2)
	f.reachability.EXPECT().IsOnline().Return(true)
	f.store.EXPECT().Set(gomock.Any(), testCacheKey, []byte(`["a","b"]`)).Return(nil)

	got, err := cg.FetchWithCache(context.Background(), f.client, f.request())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestFetchWithCache_OfflineServesCache(t *testing.T) {
	f := newFixture(t, 2)
	f.reachability.EXPECT().IsOnline().Return(false)
	f.store.EXPECT().Get(gomock.Any(), testCacheKey).Return([]byte(`["cached"]`), true, nil)

	got, err := cg.FetchWithCache(context.Background(), f.client, f.request())
	require.NoError(t, err)
	assert.Equal(t, []string{"cached"}, got)
	assert.Equal(t, int32(0), atomic.LoadInt32(&f.hits))
}

func TestFetchWithCache_OfflineWithoutCache(t *testing.T) {
	f := newFixture(t, 2)
	f.reachability.EXPECT().IsOnline().Return(false)
	f.store.EXPECT().Get(gomock.Any(), testCacheKey).Return(nil, false, nil)

	_, err := cg.FetchWithCache(context.Background(), f.client, f.request())
	assert.ErrorIs(t, err, cg.ErrNotConnected)
	assert.Equal(t, int32(0), atomic.LoadInt32(&f.hits))
}

func TestFetchWithCache_ExhaustedFallsBackToCache(t *testing.T) {
	f := newFixture(t, 2)
	f.status = http.StatusTooManyRequests
	f.reachability.EXPECT().IsOnline().Return(true)
	f.store.EXPECT().Get(gomock.Any(), testCacheKey).Return([]byte(`["cached"]`), true, nil)

	got, err := cg.FetchWithCache(context.Background(), f.client, f.request())
	require.NoError(t, err)
	assert.Equal(t, []string{"cached"}, got)
	assert.Equal(t, int32(2), atomic.LoadInt32(&f.hits))
}

func TestFetchWithCache_ExhaustedWithoutCache(t *testing.T) {
	f := newFixture(t, 2)
	f.status = http.StatusTooManyRequests
	f.reachability.EXPECT().IsOnline().Return(true)
	f.store.EXPECT().Get(gomock.Any(), testCacheKey).Return(nil, false, nil)

	_, err := cg.FetchWithCache(context.Background(), f.client, f.request())
	var exhausted *cg.RetriesExhaustedError
	assert.True(t, errors.As(err, &exhausted))
}

func TestFetchWithCache_BadStatusSurfaced(t *testing.T) {
	f := newFixture(t, 3)
	f.status = http.StatusNotFound
	f.reachability.EXPECT().IsOnline().Return(true)

	_, err := cg.FetchWithCache(context.Background(), f.client, f.request())
	code, ok := cg.IsBadStatus(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, int32(1), atomic.LoadInt32(&f.hits))
}

func TestFetchWithCache_DecodeErrorLeavesCacheUntouched(t *testing.T) {
	f := newFixture(t, 2)
	f.body = `{"not":"an array"}`
	f.reachability.EXPECT().IsOnline().Return(true)

	_, err := cg.FetchWithCache(context.Background(), f.client, f.request())
	var decodeErr *cg.DecodeError
	assert.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, int32(1), atomic.LoadInt32(&f.hits))
}

func TestFetchWithCache_CancellationSurfaced(t *testing.T) {
	f := newFixture(t, 2)
	f.reachability.EXPECT().IsOnline().Return(true)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := cg.FetchWithCache(ctx, f.client, f.request())
	assert.True(t, cg.IsCancellation(err))
}

func TestBaseClient_ExecuteMarksRateLimitedKey(t *testing.T) {
	var hits int32
	var seenKey atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		seenKey.Store(r.URL.Query().Get("x_cg_demo_api_key"))
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	ctrl := gomock.NewController(t)
	keyManager := mock_coingecko_common.NewMockIAPIKeyManager(ctrl)
	keyManager.EXPECT().GetAvailableKeys().Return([]cg.APIKey{{Key: "demo-1", Type: cg.DemoKey}, {Type: cg.NoKey}})
	keyManager.EXPECT().MarkKeyAsFailed("demo-1")

	cfg := config.Default()
	cfg.OverrideCoingeckoPublicURL = server.URL

	opts := cg.DefaultRetryOptions()
	opts.MaxAttempts = 1
	client := cg.NewBaseClient("test", cg.BaseClientDeps{Config: cfg, KeyManager: keyManager}, opts)

	_, err := client.Execute(context.Background(), client.NewRequestBuilder("/api/v3/ping"))
	assert.ErrorIs(t, err, cg.ErrRateLimited)
	assert.Equal(t, "demo-1", seenKey.Load())
	assert.True(t, client.IsOnline())
}

func TestFirstAvailableKey(t *testing.T) {
	assert.Equal(t, cg.APIKey{Type: cg.NoKey}, cg.FirstAvailableKey(nil))

	ctrl := gomock.NewController(t)
	keyManager := mock_coingecko_common.NewMockIAPIKeyManager(ctrl)

	keyManager.EXPECT().GetAvailableKeys().Return([]cg.APIKey{
		{Key: "demo", Type: cg.DemoKey},
		{Key: "", Type: cg.NoKey},
	})
	assert.Equal(t, cg.APIKey{Key: "demo", Type: cg.DemoKey}, cg.FirstAvailableKey(keyManager))

	keyManager.EXPECT().GetAvailableKeys().Return(nil)
	assert.Equal(t, cg.APIKey{Type: cg.NoKey}, cg.FirstAvailableKey(keyManager))
}

func TestMergeJSONArrays(t *testing.T) {
	merged, err := cg.MergeJSONArrays([][]byte{[]byte(`[{"id":"a"}]`), []byte(`[]`), []byte(`[{"id":"b"}]`)})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"a"},{"id":"b"}]`, string(merged))

	merged, err = cg.MergeJSONArrays(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(merged))

	_, err = cg.MergeJSONArrays([][]byte{[]byte(`{}`)})
	var decodeErr *cg.DecodeError
	assert.True(t, errors.As(err, &decodeErr))
}
