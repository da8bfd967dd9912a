package coingecko_common

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoingeckoRequestBuilder_BuildURL(t *testing.T) {
	rb := NewCoingeckoRequestBuilder("https://api.coingecko.com/", "/api/v3/coins/markets").
		WithCurrency("usd").
		WithIDs([]string{"bitcoin", "ethereum"}).
		With("page", "1")

	u, err := url.Parse(rb.BuildURL())
	require.NoError(t, err)

	assert.Equal(t, "/api/v3/coins/markets", u.Path)
	assert.Equal(t, "usd", u.Query().Get("vs_currency"))
	assert.Equal(t, "bitcoin,ethereum", u.Query().Get("ids"))
	assert.Equal(t, "1", u.Query().Get("page"))
	assert.False(t, u.Query().Has("x_cg_pro_api_key"))
}

func TestCoingeckoRequestBuilder_EmptyValuesSkipped(t *testing.T) {
	rb := NewCoingeckoRequestBuilder(COINGECKO_PUBLIC_URL, "api/v3/global").
		WithCurrency("").
		WithIDs(nil).
		WithApiKey("", ProKey)

	assert.Equal(t, "https://api.coingecko.com/api/v3/global", rb.BuildURL())
	key, keyType := rb.GetApiKey()
	assert.Empty(t, key)
	assert.Equal(t, NoKey, keyType)
}

func TestCoingeckoRequestBuilder_ApiKeyParams(t *testing.T) {
	pro := NewCoingeckoRequestBuilder(COINGECKO_PRO_URL, "api/v3/global").WithApiKey("p", ProKey)
	u, err := url.Parse(pro.BuildURL())
	require.NoError(t, err)
	assert.Equal(t, "p", u.Query().Get("x_cg_pro_api_key"))

	demo := NewCoingeckoRequestBuilder(COINGECKO_PUBLIC_URL, "api/v3/global").WithApiKey("d", DemoKey)
	u, err = url.Parse(demo.BuildURL())
	require.NoError(t, err)
	assert.Equal(t, "d", u.Query().Get("x_cg_demo_api_key"))
}

func TestCoingeckoRequestBuilder_BuildWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := NewCoingeckoRequestBuilder(COINGECKO_PUBLIC_URL, "api/v3/ping").
		WithHeader("X-Test", "1").
		BuildWithContext(ctx)
	require.NoError(t, err)

	assert.Equal(t, DefaultUserAgent, req.Header.Get("User-Agent"))
	assert.Equal(t, "application/json", req.Header.Get("Accept"))
	assert.Equal(t, "1", req.Header.Get("X-Test"))
	assert.Equal(t, ctx, req.Context())
}
