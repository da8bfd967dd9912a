package coingecko_common_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/time/rate"

	. "github.com/status-im/market-aggregator/coingecko_common"
	mock_coingecko_common "github.com/status-im/market-aggregator/coingecko_common/mocks"
)

func newOKServer(t *testing.T, count *int32) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if count != nil {
			atomic.AddInt32(count, 1)
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	t.Cleanup(server.Close)
	return server
}

func singleAttemptOptions() RetryOptions {
	opts := DefaultRetryOptions()
	opts.MaxAttempts = 1
	return opts
}

func TestHTTPClientWithRetries_RateLimiting_NoLimiter(t *testing.T) {
	server := newOKServer(t, nil)

	ctrl := gomock.NewController(t)
	mockManager := mock_coingecko_common.NewMockIRateLimiterManager(ctrl)
	mockManager.EXPECT().GetLimiterForURL(gomock.Any()).Return(nil)

	client := NewHTTPClientWithRetries(singleAttemptOptions(), nil, mockManager)

	req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
	start := time.Now()
	_, body, _, err := client.ExecuteRequest(req)

	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestHTTPClientWithRetries_RateLimiting_WithLimiter(t *testing.T) {
	server := newOKServer(t, nil)

	ctrl := gomock.NewController(t)
	mockManager := mock_coingecko_common.NewMockIRateLimiterManager(ctrl)

	// 1 request per 2 seconds, burst of 1
	limiter := rate.NewLimiter(rate.Every(2*time.Second), 1)
	mockManager.EXPECT().GetLimiterForURL(gomock.Any()).Return(limiter).Times(2)

	client := NewHTTPClientWithRetries(singleAttemptOptions(), nil, mockManager)
	req, _ := http.NewRequest(http.MethodGet, server.URL, nil)

	start1 := time.Now()
	_, _, _, err := client.ExecuteRequest(req)
	require.NoError(t, err)
	assert.Less(t, time.Since(start1), 100*time.Millisecond)

	start2 := time.Now()
	_, _, _, err = client.ExecuteRequest(req)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start2), 1500*time.Millisecond)
}

func TestHTTPClientWithRetries_RateLimiting_ContextCancellation(t *testing.T) {
	server := newOKServer(t, nil)

	ctrl := gomock.NewController(t)
	mockManager := mock_coingecko_common.NewMockIRateLimiterManager(ctrl)

	limiter := rate.NewLimiter(rate.Every(10*time.Second), 1)
	limiter.Allow() // drain the burst
	mockManager.EXPECT().GetLimiterForURL(gomock.Any()).Return(limiter)

	client := NewHTTPClientWithRetries(singleAttemptOptions(), nil, mockManager)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, server.URL, nil)

	start := time.Now()
	_, _, _, err := client.ExecuteRequest(req)

	require.Error(t, err)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestHTTPClientWithRetries_RateLimiting_NilManager(t *testing.T) {
	server := newOKServer(t, nil)

	client := NewHTTPClientWithRetries(singleAttemptOptions(), nil, nil)
	req, _ := http.NewRequest(http.MethodGet, server.URL, nil)

	start := time.Now()
	_, _, _, err := client.ExecuteRequest(req)

	require.NoError(t, err)
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestHTTPClientWithRetries_RateLimiting_MultipleRequests(t *testing.T) {
	var requestCount int32
	server := newOKServer(t, &requestCount)

	ctrl := gomock.NewController(t)
	mockManager := mock_coingecko_common.NewMockIRateLimiterManager(ctrl)

	// 2 requests per second, burst of 2
	limiter := rate.NewLimiter(2, 2)
	mockManager.EXPECT().GetLimiterForURL(gomock.Any()).Return(limiter).Times(3)

	client := NewHTTPClientWithRetries(singleAttemptOptions(), nil, mockManager)
	req, _ := http.NewRequest(http.MethodGet, server.URL, nil)

	start := time.Now()
	for i := 0; i < 3; i++ {
		_, _, _, err := client.ExecuteRequest(req)
		require.NoError(t, err, "request %d", i+1)
	}

	assert.GreaterOrEqual(t, time.Since(start), 400*time.Millisecond)
	assert.Equal(t, int32(3), atomic.LoadInt32(&requestCount))
}

func TestHTTPClientWithRetries_RateLimiting_WithRetries(t *testing.T) {
	var attempt int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempt, 1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer server.Close()

	ctrl := gomock.NewController(t)
	mockManager := mock_coingecko_common.NewMockIRateLimiterManager(ctrl)

	limiter := rate.NewLimiter(rate.Every(100*time.Millisecond), 1)
	// once per attempt
	mockManager.EXPECT().GetLimiterForURL(gomock.Any()).Return(limiter).Times(2)

	opts := DefaultRetryOptions()
	opts.MaxAttempts = 2
	opts.BaseBackoff = 10 * time.Millisecond

	client := NewHTTPClientWithRetries(opts, nil, mockManager)
	req, _ := http.NewRequest(http.MethodGet, server.URL, nil)

	start := time.Now()
	_, _, _, err := client.ExecuteRequest(req)

	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
	assert.Equal(t, int32(2), atomic.LoadInt32(&attempt))
}
