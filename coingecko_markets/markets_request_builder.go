package coingecko_markets

import (
	"strconv"
	"strings"

	cg "github.com/status-im/market-aggregator/coingecko_common"
)

const (
	// Complete path for markets API endpoint
	MARKETS_API_PATH = "/api/v3/coins/markets"
	// Complete path for simple price API endpoint
	SIMPLE_PRICE_API_PATH = "/api/v3/simple/price"
)

// MarketsRequestBuilder implements the Builder pattern for CoinGecko markets API requests
type MarketsRequestBuilder struct {
	*cg.CoingeckoRequestBuilder
}

// NewMarketRequestBuilder wraps a base builder pointed at the markets path
// and applies the default usd / market_cap_desc parameters
func NewMarketRequestBuilder(base *cg.CoingeckoRequestBuilder) *MarketsRequestBuilder {
	rb := &MarketsRequestBuilder{CoingeckoRequestBuilder: base}

	rb.WithCurrency("usd")
	rb.WithOrder("market_cap_desc")

	return rb
}

// WithPage adds page parameter for pagination
func (rb *MarketsRequestBuilder) WithPage(page int) *MarketsRequestBuilder {
	if page > 0 {
		rb.With("page", strconv.Itoa(page))
	}
	return rb
}

// WithPerPage adds per_page parameter
func (rb *MarketsRequestBuilder) WithPerPage(perPage int) *MarketsRequestBuilder {
	if perPage > 0 {
		rb.With("per_page", strconv.Itoa(perPage))
	}
	return rb
}

// WithOrder adds ordering parameter
func (rb *MarketsRequestBuilder) WithOrder(order string) *MarketsRequestBuilder {
	if order != "" {
		rb.With("order", order)
	}
	return rb
}

// WithMarketCurrency overrides vs_currency
func (rb *MarketsRequestBuilder) WithMarketCurrency(currency string) *MarketsRequestBuilder {
	rb.WithCurrency(currency)
	return rb
}

// WithCoinIDs adds the ids parameter
func (rb *MarketsRequestBuilder) WithCoinIDs(ids []string) *MarketsRequestBuilder {
	rb.WithIDs(ids)
	return rb
}

// WithSparkline sets the sparkline parameter explicitly, false included
func (rb *MarketsRequestBuilder) WithSparkline(enabled bool) *MarketsRequestBuilder {
	rb.With("sparkline", strconv.FormatBool(enabled))
	return rb
}

// WithPriceChangePercentage adds price_change_percentage parameter
func (rb *MarketsRequestBuilder) WithPriceChangePercentage(percentages []string) *MarketsRequestBuilder {
	if len(percentages) > 0 {
		rb.With("price_change_percentage", strings.Join(percentages, ","))
	}
	return rb
}

// NewSimplePriceRequestBuilder builds /simple/price requests for ids in the given currencies
func NewSimplePriceRequestBuilder(base *cg.CoingeckoRequestBuilder, ids []string, currencies ...string) *cg.CoingeckoRequestBuilder {
	if len(currencies) == 0 {
		currencies = []string{"usd"}
	}
	return base.WithIDs(ids).With("vs_currencies", strings.Join(currencies, ","))
}
