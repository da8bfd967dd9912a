package reachability

import (
	"context"
	"net/http"
	"sync/atomic"

	log "github.com/sirupsen/logrus"

	"github.com/status-im/market-aggregator/config"
	"github.com/status-im/market-aggregator/events"
	"github.com/status-im/market-aggregator/metrics"
	"github.com/status-im/market-aggregator/scheduler"
)

// Monitor tracks whether upstream market APIs are reachable. Clients consult
// it before any network fetch and serve cached data while it reports offline.
type Monitor struct {
	config              config.ReachabilityConfig
	online              atomic.Bool
	httpClient          *http.Client
	scheduler           *scheduler.Scheduler
	subscriptionManager *events.SubscriptionManager
}

// NewMonitor creates a monitor in the configured initial state
func NewMonitor(cfg config.ReachabilityConfig) *Monitor {
	m := &Monitor{
		config:              cfg,
		httpClient:          &http.Client{Timeout: cfg.ProbeTimeout},
		subscriptionManager: events.NewSubscriptionManager(),
	}
	initial := cfg.InitialOnline || !cfg.Enabled
	m.online.Store(initial)
	metrics.RecordOnline(initial)
	return m
}

// Start launches periodic probing when enabled
func (m *Monitor) Start(ctx context.Context) error {
	if !m.config.Enabled {
		log.Printf("Reachability: Probing disabled, reporting online")
		m.SetOnline(true)
		return nil
	}

	m.scheduler = scheduler.New(m.config.ProbeInterval, func(ctx context.Context) {
		m.Probe(ctx)
	}, scheduler.WithName("reachability"))
	m.scheduler.Start(ctx, true)

	log.Printf("Reachability: Probing %s every %v", m.config.ProbeURL, m.config.ProbeInterval)
	return nil
}

// Stop halts probing
func (m *Monitor) Stop() {
	if m.scheduler != nil {
		m.scheduler.Stop()
	}
}

// IsOnline implements interfaces.IReachability
func (m *Monitor) IsOnline() bool {
	return m.online.Load()
}

// SetOnline overrides the state, notifying subscribers when it changes
func (m *Monitor) SetOnline(online bool) {
	previous := m.online.Swap(online)
	metrics.RecordOnline(online)
	if previous == online {
		return
	}

	if online {
		log.Printf("Reachability: Network is back online")
	} else {
		log.Printf("Reachability: Network is offline, serving cached data")
	}
	m.subscriptionManager.Emit(context.Background())
}

// SubscribeStatusChange notifies on every online/offline transition
func (m *Monitor) SubscribeStatusChange() events.ISubscription {
	return m.subscriptionManager.Subscribe()
}

// Probe sends a HEAD request to the probe URL and records the outcome. Any
// HTTP answer counts as reachable; a transport failure counts as offline.
func (m *Monitor) Probe(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, m.config.ProbeURL, nil)
	if err != nil {
		log.Printf("Reachability: Invalid probe URL %s: %v", m.config.ProbeURL, err)
		return m.IsOnline()
	}

	resp, err := m.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			// shutting down, keep the last known state
			return m.IsOnline()
		}
		log.Debugf("Reachability: Probe failed: %v", err)
		m.SetOnline(false)
		return false
	}
	resp.Body.Close()

	m.SetOnline(true)
	return true
}
