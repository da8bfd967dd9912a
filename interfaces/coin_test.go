package interfaces

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bitcoinMarketJSON = `{
	"id": "bitcoin",
	"symbol": "btc",
	"name": "Bitcoin",
	"image": "https://assets.coingecko.com/coins/images/1/large/bitcoin.png",
	"current_price": 67000.5,
	"market_cap": 1320000000000,
	"market_cap_rank": 1,
	"total_volume": 25000000000,
	"max_supply": 21000000,
	"price_change_percentage_24h": 1.1,
	"price_change_percentage_1h_in_currency": 0.2,
	"price_change_percentage_24h_in_currency": 1.25,
	"price_change_percentage_7d_in_currency": -3.5,
	"sparkline_in_7d": {"price": [1, 2, 3]}
}`

func TestCoin_DecodeMarketsPayload(t *testing.T) {
	var coin Coin
	require.NoError(t, json.Unmarshal([]byte(bitcoinMarketJSON), &coin))

	assert.Equal(t, "bitcoin", coin.ID)
	assert.Equal(t, "btc", coin.LowerSymbol())
	assert.Equal(t, 67000.5, coin.PriceValue())
	assert.Equal(t, 1.25, coin.Change24hValue())
	assert.Equal(t, 25000000000.0, coin.VolumeValue())
	assert.Equal(t, 1320000000000.0, coin.MarketCapValue())
	require.NotNil(t, coin.MarketCapRank)
	assert.Equal(t, 1, *coin.MarketCapRank)
	assert.Equal(t, []float64{1, 2, 3}, coin.Sparkline())
}

func TestCoin_MissingValuesAreZero(t *testing.T) {
	var coin Coin
	require.NoError(t, json.Unmarshal([]byte(`{"id":"x","symbol":"X","name":"X"}`), &coin))

	assert.Zero(t, coin.PriceValue())
	assert.Zero(t, coin.Change24hValue())
	assert.Zero(t, coin.VolumeValue())
	assert.Zero(t, coin.MarketCapValue())
	assert.Nil(t, coin.Sparkline())
	assert.Equal(t, "x", coin.LowerSymbol())
}

func TestCoin_Change24hFallsBackToPlainField(t *testing.T) {
	var coin Coin
	require.NoError(t, json.Unmarshal([]byte(`{"id":"x","symbol":"x","name":"x","price_change_percentage_24h":-2.5}`), &coin))
	assert.Equal(t, -2.5, coin.Change24hValue())
}

func TestCoin_WithPriceLeavesOriginal(t *testing.T) {
	var coin Coin
	require.NoError(t, json.Unmarshal([]byte(bitcoinMarketJSON), &coin))

	patched := coin.WithPrice(70000)

	assert.Equal(t, 70000.0, patched.PriceValue())
	assert.Equal(t, 67000.5, coin.PriceValue())

	patched.CurrentPrice = coin.CurrentPrice
	assert.Equal(t, coin, patched)
}

func TestCoin_RoundTrip(t *testing.T) {
	var coin Coin
	require.NoError(t, json.Unmarshal([]byte(bitcoinMarketJSON), &coin))

	data, err := json.Marshal(coin)
	require.NoError(t, err)

	var decoded Coin
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, coin, decoded)
}

func TestFilterCoinsByIDs(t *testing.T) {
	coins := []Coin{{ID: "bitcoin"}, {ID: "ethereum"}, {ID: "solana"}}

	assert.Equal(t, []string{"bitcoin", "solana"}, CoinIDs(FilterCoinsByIDs(coins, []string{"solana", "BITCOIN"})))
	assert.Empty(t, FilterCoinsByIDs(coins, nil))
	assert.Empty(t, FilterCoinsByIDs(nil, []string{"bitcoin"}))
}
