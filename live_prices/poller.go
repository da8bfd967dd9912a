package live_prices

import (
	"context"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/status-im/market-aggregator/interfaces"
	"github.com/status-im/market-aggregator/metrics"
	"github.com/status-im/market-aggregator/scheduler"
)

// Polling intervals by use
const (
	SingleSymbolInterval = 5 * time.Second
	WatchlistInterval    = 15 * time.Second
	FullRefreshInterval  = 30 * time.Second
)

// Poller periodically fetches prices for a symbol batch and publishes every
// non-empty result to its subscribers
type Poller struct {
	source        interfaces.IPriceSource
	interval      time.Duration
	metricsWriter *metrics.MetricsWriter

	mu      sync.RWMutex
	symbols []string

	subsMu sync.RWMutex
	subs   map[*Subscription]struct{}

	scheduler *scheduler.Scheduler
}

// NewPoller creates a poller for symbols; call Start to begin polling
func NewPoller(source interfaces.IPriceSource, interval time.Duration, symbols ...string) *Poller {
	p := &Poller{
		source:        source,
		interval:      interval,
		metricsWriter: metrics.NewMetricsWriter(metrics.ServiceLivePrices),
		subs:          make(map[*Subscription]struct{}),
	}
	p.SetSymbols(symbols)
	p.scheduler = scheduler.New(interval, p.Poll, scheduler.WithName("live-prices"), scheduler.WithOverlap())
	return p
}

// WatchSymbol creates a poller following one symbol every SingleSymbolInterval
func WatchSymbol(source interfaces.IPriceSource, symbol string) *Poller {
	return NewPoller(source, SingleSymbolInterval, symbol)
}

// SetSymbols replaces the polled batch; symbols are lowercased and deduplicated
func (p *Poller) SetSymbols(symbols []string) {
	normalized := make([]string, 0, len(symbols))
	seen := make(map[string]struct{}, len(symbols))
	for _, symbol := range symbols {
		key := strings.ToLower(strings.TrimSpace(symbol))
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		normalized = append(normalized, key)
	}

	p.mu.Lock()
	p.symbols = normalized
	p.mu.Unlock()
}

// Symbols returns a copy of the polled batch
func (p *Poller) Symbols() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]string(nil), p.symbols...)
}

// Start polls immediately and then every interval. Ticks are not coalesced:
// a slow fetch can overlap the next one.
func (p *Poller) Start(ctx context.Context) error {
	log.Printf("LivePrices: Polling every %v", p.interval)
	p.scheduler.Start(ctx, true)
	return nil
}

// Stop halts polling and waits for in-flight fetches
func (p *Poller) Stop() {
	p.scheduler.Stop()
}

// Poll performs one fetch and publishes a non-empty result. Failures are
// logged and dropped.
func (p *Poller) Poll(ctx context.Context) {
	symbols := p.Symbols()
	if len(symbols) == 0 {
		return
	}

	prices, err := p.source.FetchPrices(ctx, symbols)
	if err != nil {
		if ctx.Err() == nil {
			log.Printf("LivePrices: Failed to fetch %d prices: %v", len(symbols), err)
		}
		return
	}
	if len(prices) == 0 {
		return
	}

	p.metricsWriter.RecordLivePriceUpdate()
	p.publish(prices)
}

func (p *Poller) publish(prices map[string]float64) {
	p.subsMu.RLock()
	defer p.subsMu.RUnlock()

	for sub := range p.subs {
		update := make(map[string]float64, len(prices))
		for symbol, price := range prices {
			update[symbol] = price
		}
		select {
		case sub.ch <- update:
		default:
			log.Debugf("LivePrices: Subscriber busy, dropping update")
		}
	}
}

// Subscribe registers a receiver of price updates keyed by lowercase symbol
func (p *Poller) Subscribe() *Subscription {
	sub := &Subscription{
		ch:     make(chan map[string]float64, 1),
		poller: p,
	}

	p.subsMu.Lock()
	p.subs[sub] = struct{}{}
	p.subsMu.Unlock()

	return sub
}

// SubscriberCount returns the number of live subscriptions
func (p *Poller) SubscriberCount() int {
	p.subsMu.RLock()
	defer p.subsMu.RUnlock()
	return len(p.subs)
}

func (p *Poller) unsubscribe(sub *Subscription) {
	p.subsMu.Lock()
	defer p.subsMu.Unlock()
	if _, ok := p.subs[sub]; ok {
		delete(p.subs, sub)
		close(sub.ch)
	}
}

// Subscription receives price updates until cancelled
type Subscription struct {
	ch     chan map[string]float64
	poller *Poller
	once   sync.Once
}

// C returns the update channel; it is closed by Cancel
func (s *Subscription) C() <-chan map[string]float64 {
	return s.ch
}

// Cancel stops delivery. Safe for repeated calls.
func (s *Subscription) Cancel() {
	s.once.Do(func() {
		s.poller.unsubscribe(s)
	})
}
