package coingecko_common

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/status-im/market-aggregator/config"
)

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestRateLimiterManager_GetLimiterForURL(t *testing.T) {
	manager := NewRateLimiterManager(config.APIKeyConfig{
		Pro:   config.RateLimit{RateLimitPerMinute: 300, Burst: 10},
		Demo:  config.RateLimit{RateLimitPerMinute: 60, Burst: 2},
		NoKey: config.RateLimit{RateLimitPerMinute: 30, Burst: 1},
	})

	tests := []struct {
		name            string
		url             string
		expectedLimiter bool
	}{
		{"pro key", "https://pro-api.coingecko.com/api/v3/coins/markets?x_cg_pro_api_key=test-pro-key", true},
		{"demo key", "https://api.coingecko.com/api/v3/coins/markets?x_cg_demo_api_key=test-demo-key", true},
		{"public api without key", "https://api.coingecko.com/api/v3/coins/markets", true},
		{"pro host without key", "https://pro-api.coingecko.com/api/v3/global", true},
		{"coinbase host", "https://api.coinbase.com/v2/prices/BTC-USD/spot", false},
		{"binance host", "https://api.binance.com/api/v3/klines?symbol=BTCUSDT", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limiter := manager.GetLimiterForURL(mustParse(t, tt.url))
			if tt.expectedLimiter {
				assert.NotNil(t, limiter)
			} else {
				assert.Nil(t, limiter)
			}
		})
	}
}

func TestRateLimiterManager_AddHost(t *testing.T) {
	manager := NewRateLimiterManager(config.APIKeyConfig{})
	u := mustParse(t, "http://127.0.0.1:9999/api/v3/coins/markets")

	assert.Nil(t, manager.GetLimiterForURL(u))

	manager.AddHost("127.0.0.1")
	assert.NotNil(t, manager.GetLimiterForURL(u))
}

func TestRateLimiterManager_NilChecks(t *testing.T) {
	manager := NewRateLimiterManager(config.APIKeyConfig{})
	assert.Nil(t, manager.GetLimiterForURL(nil))

	var nilManager *RateLimiterManager
	assert.Nil(t, nilManager.GetLimiterForURL(&url.URL{}))
}

func TestRateLimiterManager_LimiterIdentity(t *testing.T) {
	manager := NewRateLimiterManager(config.APIKeyConfig{})

	same1 := manager.GetLimiterForURL(mustParse(t, "https://pro-api.coingecko.com/api/v3/coins/markets?x_cg_pro_api_key=same-key"))
	same2 := manager.GetLimiterForURL(mustParse(t, "https://pro-api.coingecko.com/api/v3/global?x_cg_pro_api_key=same-key"))
	assert.Same(t, same1, same2)

	demo := manager.GetLimiterForURL(mustParse(t, "https://api.coingecko.com/api/v3/global?x_cg_demo_api_key=demo-key"))
	noKey := manager.GetLimiterForURL(mustParse(t, "https://api.coingecko.com/api/v3/global"))
	assert.NotSame(t, same1, demo)
	assert.NotSame(t, demo, noKey)
}

func TestRateLimiterManager_ConfiguredAndDefaultRates(t *testing.T) {
	manager := NewRateLimiterManager(config.APIKeyConfig{
		Pro: config.RateLimit{RateLimitPerMinute: 600, Burst: 15},
	})

	pro := manager.GetLimiterForURL(mustParse(t, "https://pro-api.coingecko.com/api/v3/coins/markets?x_cg_pro_api_key=test-key"))
	require.NotNil(t, pro)
	assert.Equal(t, 15, pro.Burst())
	assert.InDelta(t, 10.0, float64(pro.Limit()), 0.01)

	demo := manager.GetLimiterForURL(mustParse(t, "https://api.coingecko.com/api/v3/coins/markets?x_cg_demo_api_key=demo-key"))
	require.NotNil(t, demo)
	assert.InDelta(t, float64(defaultDemoRPM)/60.0, float64(demo.Limit()), 0.01)
	assert.Equal(t, 1, demo.Burst())
}

func TestRateLimiterManager_SetConfigRebuildsChangedTypes(t *testing.T) {
	manager := NewRateLimiterManager(config.APIKeyConfig{})
	u := mustParse(t, "https://api.coingecko.com/api/v3/global")

	before := manager.GetLimiterForURL(u)
	require.NotNil(t, before)

	manager.SetConfig(config.APIKeyConfig{NoKey: config.RateLimit{RateLimitPerMinute: 120, Burst: 4}})

	after := manager.GetLimiterForURL(u)
	require.NotNil(t, after)
	assert.NotSame(t, before, after)
	assert.Equal(t, 4, after.Burst())
	assert.InDelta(t, 2.0, float64(after.Limit()), 0.01)
}
