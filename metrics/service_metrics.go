package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	log "github.com/sirupsen/logrus"
)

// MetricsPrefix is the prefix used for all metrics
const MetricsPrefix = "market_aggregator_"

// Service constants
const (
	ServiceMarkets    = "coingecko-markets"
	ServiceCoins      = "coingecko-coins"
	ServiceWatchlist  = "coingecko-watchlist"
	ServiceGlobal     = "coingecko-global"
	ServiceCoinbase   = "coinbase"
	ServiceBinance    = "binance"
	ServiceAggregator = "aggregator"
	ServiceLivePrices = "live-prices"
)

var (
	// Upstream request counter per service
	// Cardinality: ~35 (7 services × 5 statuses)
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "upstream_requests_total",
			Help: "Total number of HTTP requests to upstream market APIs per service",
		},
		[]string{"service", "status"},
	)

	// Data fetch cycle duration per service
	DataFetchCycleDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: MetricsPrefix + "data_fetch_cycle_duration_seconds",
			Help: "Time taken to complete a full data fetch cycle",
		},
		[]string{"service"},
	)

	// Number of coins held per service
	ServiceCacheSizeGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: MetricsPrefix + "service_cache_size",
			Help: "Number of coins held in memory per service",
		},
		[]string{"service"},
	)

	ServiceRetryCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "service_retry_attempts_total",
			Help: "Total number of retry attempts per service",
		},
		[]string{"service"},
	)

	RateLimitCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "rate_limit_hits_total",
			Help: "Total number of rate limit hits per service",
		},
		[]string{"service"},
	)

	// Responses served from a persisted cache entry instead of the network
	CacheFallbackCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "cache_fallbacks_total",
			Help: "Total number of results served from the cache store after a failed or skipped fetch",
		},
		[]string{"service", "reason"},
	)

	LivePriceUpdatesCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "live_price_updates_total",
			Help: "Total number of published live price updates",
		},
		[]string{"service"},
	)

	OnlineGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricsPrefix + "network_online",
			Help: "1 when upstream APIs are considered reachable",
		},
	)
)

// RecordOnline sets the reachability gauge
func RecordOnline(online bool) {
	if online {
		OnlineGauge.Set(1)
	} else {
		OnlineGauge.Set(0)
	}
}

// MetricsWriter provides a unified interface for recording service metrics
type MetricsWriter struct {
	serviceName string
}

// NewMetricsWriter creates a new MetricsWriter for the specified service
func NewMetricsWriter(serviceName string) *MetricsWriter {
	return &MetricsWriter{
		serviceName: serviceName,
	}
}

// GetServiceName returns the service name
func (mw *MetricsWriter) GetServiceName() string {
	return mw.serviceName
}

// RecordRequest records an upstream request outcome
func (mw *MetricsWriter) RecordRequest(status string) {
	UpstreamRequestsTotal.WithLabelValues(mw.serviceName, status).Inc()
	if status == "rate_limited" {
		RateLimitCounter.WithLabelValues(mw.serviceName).Inc()
	}
	log.Debugf("Metrics: %s request recorded with status %s", mw.serviceName, status)
}

// RecordDataFetchCycle records the duration of a data fetch cycle
func (mw *MetricsWriter) RecordDataFetchCycle(duration time.Duration) {
	DataFetchCycleDuration.WithLabelValues(mw.serviceName).Observe(duration.Seconds())
	log.Debugf("Metrics: %s data fetch cycle took %.2fs", mw.serviceName, duration.Seconds())
}

// RecordCacheSize records the number of coins held by the service
func (mw *MetricsWriter) RecordCacheSize(size int) {
	ServiceCacheSizeGauge.WithLabelValues(mw.serviceName).Set(float64(size))
}

func (mw *MetricsWriter) RecordRetryAttempt() {
	ServiceRetryCounter.WithLabelValues(mw.serviceName).Inc()
}

// RecordCacheFallback records a result served from the cache store
func (mw *MetricsWriter) RecordCacheFallback(reason string) {
	CacheFallbackCounter.WithLabelValues(mw.serviceName, reason).Inc()
	log.Debugf("Metrics: %s served from cache (%s)", mw.serviceName, reason)
}

func (mw *MetricsWriter) RecordLivePriceUpdate() {
	LivePriceUpdatesCounter.WithLabelValues(mw.serviceName).Inc()
}

// OnRequest implements coingecko_common.IHttpStatusHandler
func (mw *MetricsWriter) OnRequest(status string) {
	mw.RecordRequest(status)
}

// OnRetry implements coingecko_common.IHttpStatusHandler
func (mw *MetricsWriter) OnRetry() {
	mw.RecordRetryAttempt()
}
