package e2etest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/status-im/market-aggregator/aggregator"
	"github.com/status-im/market-aggregator/config"
	"github.com/status-im/market-aggregator/core"
	"github.com/status-im/market-aggregator/interfaces"
)

type marketsBody struct {
	Coins       []interfaces.Coin      `json:"coins"`
	Filter      aggregator.FilterState `json:"filter"`
	Status      aggregator.LoadStatus  `json:"status"`
	CacheStatus interfaces.CacheStatus `json:"cache_status"`
}

// TestEnv is a running aggregator wired to a mock upstream
type TestEnv struct {
	Mock     *MockServer
	Config   *config.Config
	Registry *core.Registry
	BaseURL  string
	CacheDir string

	cancel context.CancelFunc
}

// SetupTest starts the mock upstream and the full service graph. Mutators
// adjust the loaded config before the services are created.
func SetupTest(t *testing.T, mutators ...func(*config.Config)) *TestEnv {
	t.Helper()
	return SetupTestWithMock(t, NewMockServer(), mutators...)
}

// SetupTestWithMock is SetupTest with a mock prepared by the caller
func SetupTestWithMock(t *testing.T, mock *MockServer, mutators ...func(*config.Config)) *TestEnv {
	t.Helper()
	t.Setenv("PORT", "")
	t.Cleanup(mock.Close)

	port, err := freePort()
	require.NoError(t, err)

	dir := t.TempDir()
	cfg, err := loadTestConfig(dir, mock.GetURL(), mock.GetWSURL(), port)
	require.NoError(t, err)
	for _, mutate := range mutators {
		mutate(cfg)
	}
	require.NoError(t, cfg.Validate())

	ctx, cancel := context.WithCancel(context.Background())
	registry, err := core.Setup(ctx, cfg)
	require.NoError(t, err)
	require.NoError(t, registry.StartAll(ctx))

	env := &TestEnv{
		Mock:     mock,
		Config:   cfg,
		Registry: registry,
		BaseURL:  "http://localhost:" + port,
		CacheDir: cfg.Cache.Dir,
		cancel:   cancel,
	}
	t.Cleanup(env.TearDown)

	require.Eventually(t, func() bool {
		resp, err := http.Get(env.BaseURL + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 50*time.Millisecond, "server did not come up")

	return env
}

// TearDown stops every service
func (e *TestEnv) TearDown() {
	e.cancel()
	e.Registry.StopAll()
}

// GetJSON decodes the body of a GET request and returns the status code
func (e *TestEnv) GetJSON(t *testing.T, path string, out interface{}) int {
	t.Helper()
	return e.DoJSON(t, http.MethodGet, path, nil, out)
}

// DoJSON sends a request with an optional body and decodes a 2xx answer into out
func (e *TestEnv) DoJSON(t *testing.T, method, path string, body []byte, out interface{}) int {
	t.Helper()

	req, err := newRequest(method, e.BaseURL+path, body)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil && resp.StatusCode >= 200 && resp.StatusCode < 300 {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

// WaitForCoins blocks until /api/v1/markets serves n coins
func (e *TestEnv) WaitForCoins(t *testing.T, n int) {
	t.Helper()
	require.Eventually(t, func() bool {
		var body marketsBody
		if e.GetJSON(t, "/api/v1/markets", &body) != http.StatusOK {
			return false
		}
		return len(body.Coins) == n
	}, 5*time.Second, 50*time.Millisecond, fmt.Sprintf("expected %d coins", n))
}

func freePort() (string, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", err
	}
	defer l.Close()
	return fmt.Sprintf("%d", l.Addr().(*net.TCPAddr).Port), nil
}

func newRequest(method, url string, body []byte) (*http.Request, error) {
	if body == nil {
		return http.NewRequest(method, url, nil)
	}
	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}
