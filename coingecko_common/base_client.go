package coingecko_common

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"

	"github.com/status-im/market-aggregator/cache"
	"github.com/status-im/market-aggregator/config"
	"github.com/status-im/market-aggregator/interfaces"
	"github.com/status-im/market-aggregator/metrics"
)

// BaseClient holds what every CoinGecko client shares: key selection, the
// retrying HTTP client, the cache store and the reachability gate.
type BaseClient struct {
	name          string
	config        *config.Config
	httpClient    *HTTPClientWithRetries
	keyManager    IAPIKeyManager
	store         cache.Store
	reachability  interfaces.IReachability
	metricsWriter *metrics.MetricsWriter
}

// BaseClientDeps groups the shared collaborators of CoinGecko clients
type BaseClientDeps struct {
	Config         *config.Config
	KeyManager     IAPIKeyManager
	LimiterManager IRateLimiterManager
	Store          cache.Store
	Reachability   interfaces.IReachability
}

// NewBaseClient creates a client named after its metrics service label
func NewBaseClient(name string, deps BaseClientDeps, opts RetryOptions) *BaseClient {
	metricsWriter := metrics.NewMetricsWriter(name)
	if opts.LogPrefix == "" {
		opts.LogPrefix = name
	}
	return &BaseClient{
		name:          name,
		config:        deps.Config,
		httpClient:    NewHTTPClientWithRetries(opts, metricsWriter, deps.LimiterManager),
		keyManager:    deps.KeyManager,
		store:         deps.Store,
		reachability:  deps.Reachability,
		metricsWriter: metricsWriter,
	}
}

// Name returns the service label of the client
func (c *BaseClient) Name() string {
	return c.name
}

// Store returns the cache store backing the client
func (c *BaseClient) Store() cache.Store {
	return c.store
}

// MetricsWriter returns the writer shared with the HTTP client
func (c *BaseClient) MetricsWriter() *metrics.MetricsWriter {
	return c.metricsWriter
}

// IsOnline reports the reachability state, online when no monitor is set
func (c *BaseClient) IsOnline() bool {
	return c.reachability == nil || c.reachability.IsOnline()
}

// NewRequestBuilder prepares a request for apiPath using the preferred key
func (c *BaseClient) NewRequestBuilder(apiPath string) *CoingeckoRequestBuilder {
	key := FirstAvailableKey(c.keyManager)
	return NewCoingeckoRequestBuilder(GetApiBaseUrl(c.config, key.Type), apiPath).
		WithApiKey(key.Key, key.Type)
}

// Execute runs the request and returns the body of a 2xx answer. A key that
// got rate limited is put in backoff so the next call rotates away from it.
func (c *BaseClient) Execute(ctx context.Context, rb *CoingeckoRequestBuilder) ([]byte, error) {
	req, err := rb.BuildWithContext(ctx)
	if err != nil {
		return nil, err
	}

	_, body, _, err := c.httpClient.ExecuteRequest(req)
	if err != nil {
		if apiKey, _ := rb.GetApiKey(); apiKey != "" && errors.Is(err, ErrRateLimited) && c.keyManager != nil {
			c.keyManager.MarkKeyAsFailed(apiKey)
		}
		return nil, err
	}
	return body, nil
}

// CachedRequest describes one fetch in the offline/fetch/decode/persist
// pipeline shared by the CoinGecko clients.
type CachedRequest[T any] struct {
	// CacheKey receives the raw body of every decoded response. Empty disables persistence.
	CacheKey string
	Fetch    func(ctx context.Context) ([]byte, error)
	Decode   func(body []byte) (T, error)
	// Fallback returns cached data. Nil decodes the CacheKey entry with Decode.
	Fallback func(ctx context.Context) (T, bool)
}

// FetchWithCache runs req through the shared cache policy:
//   - offline: cached value, else ErrNotConnected
//   - cancelled: the context error
//   - retries exhausted: cached value, else the exhaustion error
//   - bad status: the error, the cache is left untouched
//   - decode failure: *DecodeError, the cache is left untouched
//   - success: the raw body replaces the cache entry
func FetchWithCache[T any](ctx context.Context, c *BaseClient, req CachedRequest[T]) (T, error) {
	var zero T

	fallback := req.Fallback
	if fallback == nil {
		fallback = func(ctx context.Context) (T, bool) {
			return LoadCached(ctx, c.store, req.CacheKey, req.Decode)
		}
	}

	if !c.IsOnline() {
		if cached, ok := fallback(ctx); ok {
			log.Printf("%s: Offline, serving cached data", c.name)
			c.metricsWriter.RecordCacheFallback("offline")
			return cached, nil
		}
		return zero, ErrNotConnected
	}

	body, err := req.Fetch(ctx)
	if err != nil {
		if IsCancellation(err) {
			return zero, err
		}
		var exhausted *RetriesExhaustedError
		if errors.As(err, &exhausted) {
			if cached, ok := fallback(ctx); ok {
				log.Printf("%s: %v, serving cached data", c.name, err)
				c.metricsWriter.RecordCacheFallback("exhausted")
				return cached, nil
			}
		}
		return zero, err
	}

	value, err := req.Decode(body)
	if err != nil {
		return zero, &DecodeError{Err: err}
	}

	if req.CacheKey != "" && c.store != nil {
		if err := c.store.Set(ctx, req.CacheKey, body); err != nil {
			log.Printf("%s: Failed to persist %s: %v", c.name, req.CacheKey, err)
		}
	}

	return value, nil
}

// LoadCached decodes the entry stored under key. Missing, unreadable and
// undecodable entries all report false.
func LoadCached[T any](ctx context.Context, store cache.Store, key string, decode func([]byte) (T, error)) (T, bool) {
	var zero T
	if store == nil || key == "" {
		return zero, false
	}
	data, found, err := store.Get(ctx, key)
	if err != nil {
		log.Printf("Cache: Failed to read %s: %v", key, err)
		return zero, false
	}
	if !found {
		return zero, false
	}
	value, err := decode(data)
	if err != nil {
		log.Printf("Cache: Ignoring undecodable entry %s: %v", key, err)
		return zero, false
	}
	return value, true
}
