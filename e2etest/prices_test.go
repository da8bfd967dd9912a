package e2etest

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/status-im/market-aggregator/config"
	"github.com/status-im/market-aggregator/interfaces"
)

type priceBody struct {
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`
	Source string  `json:"source"`
}

func TestPrices_FromCoingecko(t *testing.T) {
	env := SetupTest(t)

	var body priceBody
	require.Equal(t, http.StatusOK, env.GetJSON(t, "/api/v1/prices/BTC", &body))
	assert.Equal(t, "btc", body.Symbol)
	assert.Equal(t, 60500.0, body.Price)
	assert.Equal(t, "coingecko", body.Source)
}

func TestPrices_FallbackToCoinbase(t *testing.T) {
	env := SetupTest(t)
	env.Mock.SetStatus("/api/v3/simple/price", http.StatusInternalServerError)

	var body priceBody
	require.Equal(t, http.StatusOK, env.GetJSON(t, "/api/v1/prices/eth", &body))
	assert.Equal(t, 3001.10, body.Price)
	assert.Equal(t, "coinbase", body.Source)

	assert.Equal(t, http.StatusBadGateway, env.GetJSON(t, "/api/v1/prices/doge", nil))
}

func TestPrices_Sparkline(t *testing.T) {
	env := SetupTest(t)

	var body struct {
		Symbol string    `json:"symbol"`
		Prices []float64 `json:"prices"`
	}
	require.Equal(t, http.StatusOK, env.GetJSON(t, "/api/v1/sparkline/BTC", &body))
	assert.Equal(t, "btc", body.Symbol)
	require.Len(t, body.Prices, 7)
	assert.Equal(t, 60000.5, body.Prices[0])
	assert.Equal(t, 60600.5, body.Prices[6])

	assert.Equal(t, http.StatusNotFound, env.GetJSON(t, "/api/v1/sparkline/xyz", nil))
}

func TestPrices_SparklineDisabled(t *testing.T) {
	env := SetupTest(t, func(cfg *config.Config) {
		cfg.Binance.EnrichSparklines = false
	})

	assert.Equal(t, http.StatusNotFound, env.GetJSON(t, "/api/v1/sparkline/btc", nil))
}

func TestLivePrices_MergedIntoMarkets(t *testing.T) {
	env := SetupTest(t)
	env.WaitForCoins(t, 4)
	env.Mock.SetLivePrice("bitcoin", 61234)

	require.Eventually(t, func() bool {
		var body marketsBody
		if env.GetJSON(t, "/api/v1/markets?search=btc", &body) != http.StatusOK || len(body.Coins) != 1 {
			return false
		}
		return body.Coins[0].PriceValue() == 61234
	}, 5*time.Second, 50*time.Millisecond)
}

func TestLivePrices_FromBinanceStream(t *testing.T) {
	env := SetupTest(t, func(cfg *config.Config) {
		cfg.Binance.StreamEnabled = true
		cfg.LivePrices.Source = config.PriceSourceBinanceStream
	})
	env.WaitForCoins(t, 4)

	require.Eventually(t, func() bool {
		var body marketsBody
		if env.GetJSON(t, "/api/v1/markets", &body) != http.StatusOK {
			return false
		}
		prices := make(map[string]float64)
		for _, coin := range body.Coins {
			prices[coin.ID] = coin.PriceValue()
		}
		return prices["bitcoin"] == 70000.25 && prices["ethereum"] == 3500.75
	}, 10*time.Second, 100*time.Millisecond)

	var body marketsBody
	require.Equal(t, http.StatusOK, env.GetJSON(t, "/api/v1/markets?search=sol", &body))
	require.Len(t, body.Coins, 1)
	assert.Equal(t, 150.0, body.Coins[0].PriceValue())
	assert.Equal(t, interfaces.CacheStatusLive, body.CacheStatus)
}
