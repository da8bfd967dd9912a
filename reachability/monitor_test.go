package reachability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/status-im/market-aggregator/config"
)

func testConfig(url string) config.ReachabilityConfig {
	cfg := config.DefaultReachabilityConfig()
	cfg.ProbeURL = url
	cfg.ProbeInterval = 20 * time.Millisecond
	cfg.ProbeTimeout = time.Second
	return cfg
}

func TestMonitor_InitialState(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1")
	cfg.InitialOnline = false
	assert.False(t, NewMonitor(cfg).IsOnline())

	cfg.Enabled = false
	assert.True(t, NewMonitor(cfg).IsOnline(), "disabled monitor is pinned online")
}

func TestMonitor_ProbeAnyStatusIsOnline(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.InitialOnline = false
	m := NewMonitor(cfg)

	assert.True(t, m.Probe(context.Background()))
	assert.True(t, m.IsOnline())
}

func TestMonitor_ProbeTransportFailureIsOffline(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	m := NewMonitor(testConfig(url))
	require.True(t, m.IsOnline())

	assert.False(t, m.Probe(context.Background()))
	assert.False(t, m.IsOnline())
}

func TestMonitor_StatusChangeNotifications(t *testing.T) {
	m := NewMonitor(testConfig("http://127.0.0.1:1"))
	sub := m.SubscribeStatusChange()
	defer sub.Cancel()

	// unchanged state does not notify
	m.SetOnline(true)
	select {
	case <-sub.Chan():
		t.Fatal("unexpected notification")
	case <-time.After(20 * time.Millisecond):
	}

	m.SetOnline(false)
	select {
	case <-sub.Chan():
	case <-time.After(time.Second):
		t.Fatal("expected notification")
	}
	assert.False(t, m.IsOnline())
}

func TestMonitor_StartProbesPeriodically(t *testing.T) {
	up := make(chan struct{}, 100)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		up <- struct{}{}
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.InitialOnline = false
	m := NewMonitor(cfg)

	require.NoError(t, m.Start(context.Background()))
	defer m.Stop()

	assert.Eventually(t, func() bool { return len(up) >= 2 }, time.Second, 5*time.Millisecond)
	assert.True(t, m.IsOnline())
}

func TestMonitor_DisabledNeverProbes(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1")
	cfg.Enabled = false
	m := NewMonitor(cfg)

	require.NoError(t, m.Start(context.Background()))
	m.Stop()
	assert.True(t, m.IsOnline())
}
