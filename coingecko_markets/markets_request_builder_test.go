package coingecko_markets

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cg "github.com/status-im/market-aggregator/coingecko_common"
)

const testBaseURL = "https://api.coingecko.com"

func newTestBuilder() *MarketsRequestBuilder {
	return NewMarketRequestBuilder(cg.NewCoingeckoRequestBuilder(testBaseURL, MARKETS_API_PATH))
}

func TestMarketsRequestBuilder_SpecificBehavior(t *testing.T) {
	tests := []struct {
		name          string
		configuration func(*MarketsRequestBuilder)
		expected      map[string]string
		absent        []string
	}{
		{
			name:          "Default market parameters",
			configuration: func(rb *MarketsRequestBuilder) {},
			expected:      map[string]string{"vs_currency": "usd", "order": "market_cap_desc"},
			absent:        []string{"page", "per_page", "ids", "sparkline"},
		},
		{
			name: "Top markets request",
			configuration: func(rb *MarketsRequestBuilder) {
				rb.WithPage(1).WithPerPage(20).WithSparkline(true).
					WithPriceChangePercentage([]string{"1h", "24h", "7d"})
			},
			expected: map[string]string{
				"page":                    "1",
				"per_page":                "20",
				"sparkline":               "true",
				"price_change_percentage": "1h,24h,7d",
			},
		},
		{
			name: "Ids request without sparkline",
			configuration: func(rb *MarketsRequestBuilder) {
				rb.WithCoinIDs([]string{"bitcoin", "ethereum"}).WithSparkline(false).
					WithPriceChangePercentage([]string{"24h"})
			},
			expected: map[string]string{
				"ids":                     "bitcoin,ethereum",
				"sparkline":               "false",
				"price_change_percentage": "24h",
			},
		},
		{
			name: "Zero pagination and empty values are skipped",
			configuration: func(rb *MarketsRequestBuilder) {
				rb.WithPage(0).WithPerPage(0).WithOrder("").WithCoinIDs(nil).WithPriceChangePercentage(nil)
			},
			expected: map[string]string{"order": "market_cap_desc"},
			absent:   []string{"page", "per_page", "ids", "price_change_percentage"},
		},
		{
			name: "Custom currency and order",
			configuration: func(rb *MarketsRequestBuilder) {
				rb.WithMarketCurrency("eur").WithOrder("volume_desc")
			},
			expected: map[string]string{"vs_currency": "eur", "order": "volume_desc"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rb := newTestBuilder()
			tt.configuration(rb)

			urlStr := rb.BuildURL()
			assert.True(t, strings.HasPrefix(urlStr, testBaseURL+MARKETS_API_PATH), urlStr)

			parsed, err := url.Parse(urlStr)
			require.NoError(t, err)
			query := parsed.Query()

			for key, value := range tt.expected {
				assert.Equal(t, value, query.Get(key), key)
			}
			for _, key := range tt.absent {
				assert.False(t, query.Has(key), key)
			}
		})
	}
}

func TestSimplePriceRequestBuilder(t *testing.T) {
	rb := NewSimplePriceRequestBuilder(cg.NewCoingeckoRequestBuilder(testBaseURL, SIMPLE_PRICE_API_PATH), []string{"bitcoin", "solana"})

	parsed, err := url.Parse(rb.BuildURL())
	require.NoError(t, err)

	assert.Equal(t, SIMPLE_PRICE_API_PATH, parsed.Path)
	assert.Equal(t, "bitcoin,solana", parsed.Query().Get("ids"))
	assert.Equal(t, "usd", parsed.Query().Get("vs_currencies"))
}
