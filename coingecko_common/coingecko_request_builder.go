package coingecko_common

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

const (
	// Base URL for public API
	COINGECKO_PUBLIC_URL = "https://api.coingecko.com"
	// Base URL for Pro API
	COINGECKO_PRO_URL = "https://pro-api.coingecko.com"

	DefaultUserAgent = "Mozilla/5.0 Market-Aggregator"
)

// CoingeckoRequestBuilder accumulates query parameters, headers and the API
// key of one CoinGecko GET request
type CoingeckoRequestBuilder struct {
	endpoint string
	query    url.Values
	header   http.Header
	apiKey   string
	keyType  KeyType
}

// NewCoingeckoRequestBuilder creates a builder for baseURL joined with apiPath
func NewCoingeckoRequestBuilder(baseURL, apiPath string) *CoingeckoRequestBuilder {
	header := http.Header{}
	header.Set("Accept", "application/json")
	header.Set("User-Agent", DefaultUserAgent)

	return &CoingeckoRequestBuilder{
		endpoint: strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(apiPath, "/"),
		query:    url.Values{},
		header:   header,
	}
}

// With sets a query parameter, replacing any previous value
func (rb *CoingeckoRequestBuilder) With(key, value string) *CoingeckoRequestBuilder {
	rb.query.Set(key, value)
	return rb
}

// WithCurrency sets vs_currency, skipped when empty
func (rb *CoingeckoRequestBuilder) WithCurrency(currency string) *CoingeckoRequestBuilder {
	if currency != "" {
		rb.query.Set("vs_currency", currency)
	}
	return rb
}

// WithIDs sets the comma separated ids parameter, skipped when empty
func (rb *CoingeckoRequestBuilder) WithIDs(ids []string) *CoingeckoRequestBuilder {
	if len(ids) > 0 {
		rb.query.Set("ids", strings.Join(ids, ","))
	}
	return rb
}

// WithApiKey attaches a key; an empty key keeps the request keyless
func (rb *CoingeckoRequestBuilder) WithApiKey(apiKey string, keyType KeyType) *CoingeckoRequestBuilder {
	if apiKey != "" {
		rb.apiKey = apiKey
		rb.keyType = keyType
	}
	return rb
}

func (rb *CoingeckoRequestBuilder) WithHeader(name, value string) *CoingeckoRequestBuilder {
	rb.header.Set(name, value)
	return rb
}

// GetApiKey returns the API key and its type
func (rb *CoingeckoRequestBuilder) GetApiKey() (string, KeyType) {
	return rb.apiKey, rb.keyType
}

// BuildURL returns the endpoint with the encoded query. The key travels as
// x_cg_pro_api_key or x_cg_demo_api_key depending on its type.
func (rb *CoingeckoRequestBuilder) BuildURL() string {
	query := url.Values{}
	for key, values := range rb.query {
		query[key] = append([]string(nil), values...)
	}

	if rb.apiKey != "" {
		switch rb.keyType {
		case ProKey:
			query.Set("x_cg_pro_api_key", rb.apiKey)
		case DemoKey:
			query.Set("x_cg_demo_api_key", rb.apiKey)
		}
	}

	if encoded := query.Encode(); encoded != "" {
		return rb.endpoint + "?" + encoded
	}
	return rb.endpoint
}

// BuildWithContext creates the http.Request bound to ctx
func (rb *CoingeckoRequestBuilder) BuildWithContext(ctx context.Context) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rb.BuildURL(), nil)
	if err != nil {
		return nil, err
	}
	req.Header = rb.header.Clone()
	return req, nil
}
