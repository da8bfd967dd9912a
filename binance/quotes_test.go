package binance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tickerBatch = `[
	{"e":"24hrTicker","E":1672515782136,"s":"BTCUSDT","c":"50000.00","P":"1.5","v":"100.00"},
	{"e":"24hrTicker","E":1672515782136,"s":"ETHUSDT","c":"3000.00","P":"-0.5","v":"1000.00"},
	{"e":"24hrTicker","E":1672515782136,"s":"XRPUSDT","c":"0.50","P":"2","v":"1"}
]`

func TestQuotesManager_SetWatchList(t *testing.T) {
	qm := NewQuotesManager()
	qm.SetWatchList([]string{"BTC", "ETH"}, "USDT")
	assert.Empty(t, qm.GetLatestQuotes())

	require.NoError(t, qm.UpdateQuotes([]byte(tickerBatch)))
	assert.Len(t, qm.GetLatestQuotes(), 2)

	// quotes of symbols that stay watched survive a watch list change
	qm.SetWatchList([]string{"btc", "ADA", " "}, "USDT")
	quotes := qm.GetLatestQuotes()
	assert.Len(t, quotes, 1)
	assert.Equal(t, 50000.0, quotes["btc"].Price)
}

func TestQuotesManager_UpdateQuotes(t *testing.T) {
	qm := NewQuotesManager()
	qm.SetWatchList([]string{"BTC", "ETH"}, "USDT")

	require.NoError(t, qm.UpdateQuotes([]byte(tickerBatch)))

	quotes := qm.GetLatestQuotes()
	require.Len(t, quotes, 2, "unwatched XRP is ignored")
	assert.Equal(t, Quote{Price: 50000, PercentChange24h: 1.5, Volume24h: 100}, quotes["btc"])
	assert.Equal(t, Quote{Price: 3000, PercentChange24h: -0.5, Volume24h: 1000}, quotes["eth"])
}

func TestQuotesManager_UpdateSingleTicker(t *testing.T) {
	qm := NewQuotesManager()
	qm.SetWatchList([]string{"SOL"}, "USDT")

	require.NoError(t, qm.UpdateQuotes([]byte(`{"s":"SOLUSDT","c":"150.25","P":"3.1","v":"42"}`)))
	assert.Equal(t, 150.25, qm.GetLatestQuotes()["sol"].Price)
}

func TestQuotesManager_InvalidMessages(t *testing.T) {
	qm := NewQuotesManager()
	qm.SetWatchList([]string{"BTC"}, "USDT")

	assert.Error(t, qm.UpdateQuotes([]byte(`invalid json`)))
	assert.Error(t, qm.UpdateQuotes([]byte(`[{"s":"BTCUSDT","c":"invalid","P":"1.5","v":"100.00"}]`)))
	assert.Empty(t, qm.GetLatestQuotes())
}

func TestQuotesManager_GetLatestQuotesReturnsCopy(t *testing.T) {
	qm := NewQuotesManager()
	qm.SetWatchList([]string{"BTC"}, "USDT")
	require.NoError(t, qm.UpdateQuotes([]byte(tickerBatch)))

	quotes := qm.GetLatestQuotes()
	quotes["btc"] = Quote{Price: 60000}

	assert.Equal(t, 50000.0, qm.GetLatestQuotes()["btc"].Price)
}

func TestQuotesManager_Watches(t *testing.T) {
	qm := NewQuotesManager()
	qm.SetWatchList([]string{"BTC", "ETH"}, "USDT")

	assert.True(t, qm.Watches([]string{"btc"}))
	assert.True(t, qm.Watches([]string{"ETH", "BTC"}))
	assert.False(t, qm.Watches([]string{"btc", "sol"}))
}
