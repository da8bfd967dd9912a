package coingecko_common

import (
	"math"
	"net/url"
	"sync"

	"golang.org/x/time/rate"

	"github.com/status-im/market-aggregator/config"
)

// IRateLimiterManager provides a way to get a rate limiter for a request URL
//
//go:generate mockgen -destination=mocks/rate_limiter_manager.go . IRateLimiterManager
type IRateLimiterManager interface {
	GetLimiterForURL(u *url.URL) *rate.Limiter
	SetConfig(cfg config.APIKeyConfig)
}

// Defaults in requests per minute, used when config is not provided
const (
	defaultProRPM   = 500
	defaultDemoRPM  = 30
	defaultNoKeyRPM = 30
)

type limiterKey struct {
	keyType KeyType
	key     string
}

// RateLimiterManager hands out one limiter per API key. Keyless requests to
// CoinGecko hosts share a single limiter.
type RateLimiterManager struct {
	mu       sync.RWMutex
	limiters map[limiterKey]*rate.Limiter
	config   config.APIKeyConfig
	// hosts that get the keyless limiter
	hosts map[string]struct{}
}

// NewRateLimiterManager creates a manager shared by every CoinGecko client
func NewRateLimiterManager(cfg config.APIKeyConfig) *RateLimiterManager {
	return &RateLimiterManager{
		limiters: make(map[limiterKey]*rate.Limiter),
		config:   cfg,
		hosts: map[string]struct{}{
			"api.coingecko.com":     {},
			"pro-api.coingecko.com": {},
		},
	}
}

// AddHost applies the keyless limiter to requests for host, used for
// overridden CoinGecko base URLs
func (m *RateLimiterManager) AddHost(host string) {
	if host == "" {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hosts[host] = struct{}{}
}

// SetConfig replaces the limits. Existing limiters of a key type whose
// settings changed are rebuilt; a zero burst falls back to the default for the new rate.
func (m *RateLimiterManager) SetConfig(newCfg config.APIKeyConfig) {
	m.mu.Lock()
	defer m.mu.Unlock()

	oldCfg := m.config
	m.config = newCfg

	for k := range m.limiters {
		if rateLimitFor(oldCfg, k.keyType) != rateLimitFor(newCfg, k.keyType) {
			m.limiters[k] = m.newLimiterLocked(k.keyType)
		}
	}
}

// GetLimiterForURL picks the limiter from the key parameter of the URL.
// Keyless requests to unknown hosts are not limited.
func (m *RateLimiterManager) GetLimiterForURL(u *url.URL) *rate.Limiter {
	if m == nil || u == nil {
		return nil
	}

	query := u.Query()
	if v := query.Get("x_cg_pro_api_key"); v != "" {
		return m.limiterFor(limiterKey{keyType: ProKey, key: v})
	}
	if v := query.Get("x_cg_demo_api_key"); v != "" {
		return m.limiterFor(limiterKey{keyType: DemoKey, key: v})
	}

	m.mu.RLock()
	_, known := m.hosts[u.Hostname()]
	m.mu.RUnlock()
	if known {
		return m.limiterFor(limiterKey{keyType: NoKey})
	}
	return nil
}

func (m *RateLimiterManager) limiterFor(k limiterKey) *rate.Limiter {
	m.mu.RLock()
	lim, ok := m.limiters[k]
	m.mu.RUnlock()
	if ok {
		return lim
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if lim, ok := m.limiters[k]; ok {
		return lim
	}
	lim = m.newLimiterLocked(k.keyType)
	m.limiters[k] = lim
	return lim
}

func (m *RateLimiterManager) newLimiterLocked(keyType KeyType) *rate.Limiter {
	rl := rateLimitFor(m.config, keyType)

	rpm := rl.RateLimitPerMinute
	if rpm <= 0 {
		rpm = defaultRPM(keyType)
	}
	limit := rate.Limit(float64(rpm) / 60.0)

	burst := rl.Burst
	if burst <= 0 {
		burst = defaultBurstForLimit(limit)
	}
	return rate.NewLimiter(limit, burst)
}

func rateLimitFor(cfg config.APIKeyConfig, keyType KeyType) config.RateLimit {
	switch keyType {
	case ProKey:
		return cfg.Pro
	case DemoKey:
		return cfg.Demo
	default:
		return cfg.NoKey
	}
}

func defaultRPM(keyType KeyType) int {
	switch keyType {
	case ProKey:
		return defaultProRPM
	case DemoKey:
		return defaultDemoRPM
	default:
		return defaultNoKeyRPM
	}
}

// defaultBurstForLimit allows one second worth of requests, at least one
func defaultBurstForLimit(limit rate.Limit) int {
	if limit <= 1.0 {
		return 1
	}
	return int(math.Ceil(float64(limit)))
}
