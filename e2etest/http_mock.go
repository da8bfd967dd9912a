package e2etest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/status-im/market-aggregator/interfaces"
)

type syncWSConn struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

// MockServer serves the CoinGecko, Coinbase and Binance endpoints the
// aggregator calls, from one httptest server
type MockServer struct {
	server   *httptest.Server
	upgrader websocket.Upgrader

	mu         sync.RWMutex
	coins      []interfaces.Coin
	livePrices map[string]float64
	spotPrices map[string]string
	statuses   map[string]int
	requests   map[string]int
	wsConns    []*syncWSConn

	stop     chan struct{}
	stopOnce sync.Once
}

// NewMockServer creates and starts a mock upstream
func NewMockServer() *MockServer {
	ms := &MockServer{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		coins:      defaultCoins(),
		livePrices: map[string]float64{"bitcoin": 60500, "ethereum": 3010},
		spotPrices: map[string]string{"BTC-USD": "60123.45", "ETH-USD": "3001.10"},
		statuses:   make(map[string]int),
		requests:   make(map[string]int),
		stop:       make(chan struct{}),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", ms.handleRequest)
	ms.server = httptest.NewServer(mux)

	go ms.broadcastTickers()

	return ms
}

// GetURL returns the http base url
func (ms *MockServer) GetURL() string {
	return ms.server.URL
}

// GetWSURL returns the ticker stream url
func (ms *MockServer) GetWSURL() string {
	return "ws" + strings.TrimPrefix(ms.server.URL, "http") + "/ws/!ticker@arr"
}

// SetStatus forces every request to path to answer status; 0 clears it
func (ms *MockServer) SetStatus(path string, status int) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if status == 0 {
		delete(ms.statuses, path)
		return
	}
	ms.statuses[path] = status
}

// SetLivePrice changes the /simple/price answer for a coin id
func (ms *MockServer) SetLivePrice(id string, price float64) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.livePrices[id] = price
}

// RequestCount returns how many requests reached path
func (ms *MockServer) RequestCount(path string) int {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return ms.requests[path]
}

// Close closes the mock server and all WebSocket connections
func (ms *MockServer) Close() {
	ms.stopOnce.Do(func() { close(ms.stop) })

	ms.mu.Lock()
	for _, c := range ms.wsConns {
		c.mu.Lock()
		c.conn.Close()
		c.mu.Unlock()
	}
	ms.wsConns = nil
	ms.mu.Unlock()

	ms.server.Close()
}

func (ms *MockServer) handleRequest(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	log.Debugf("MockServer: %s %s", r.Method, r.URL.String())

	if strings.HasPrefix(path, "/ws/") {
		ms.handleWebSocket(w, r)
		return
	}

	ms.mu.Lock()
	ms.requests[path]++
	status := ms.statuses[path]
	ms.mu.Unlock()

	if status != 0 {
		http.Error(w, fmt.Sprintf("forced status %d", status), status)
		return
	}

	switch {
	case path == "/api/v3/ping":
		writeJSON(w, map[string]string{"gecko_says": "(V3) To the Moon!"})
	case path == "/api/v3/coins/markets":
		ms.handleMarkets(w, r)
	case path == "/api/v3/simple/price":
		ms.handleSimplePrice(w, r)
	case path == "/api/v3/global":
		writeJSON(w, map[string]interface{}{"data": defaultGlobal()})
	case path == "/api/v3/klines":
		ms.handleKlines(w, r)
	case strings.HasPrefix(path, "/v2/prices/") && strings.HasSuffix(path, "/spot"):
		ms.handleSpot(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (ms *MockServer) handleMarkets(w http.ResponseWriter, r *http.Request) {
	ms.mu.RLock()
	coins := append([]interfaces.Coin(nil), ms.coins...)
	ms.mu.RUnlock()

	if ids := r.URL.Query().Get("ids"); ids != "" {
		coins = interfaces.FilterCoinsByIDs(coins, strings.Split(ids, ","))
	}
	if r.URL.Query().Get("sparkline") == "false" {
		for i := range coins {
			coins[i].SparklineIn7d = nil
		}
	}
	writeJSON(w, coins)
}

func (ms *MockServer) handleSimplePrice(w http.ResponseWriter, r *http.Request) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	result := make(map[string]map[string]float64)
	for _, id := range strings.Split(r.URL.Query().Get("ids"), ",") {
		if price, ok := ms.livePrices[id]; ok {
			result[id] = map[string]float64{"usd": price}
		}
	}
	writeJSON(w, result)
}

func (ms *MockServer) handleSpot(w http.ResponseWriter, r *http.Request) {
	pair := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/v2/prices/"), "/spot")

	ms.mu.RLock()
	amount, ok := ms.spotPrices[pair]
	ms.mu.RUnlock()
	if !ok {
		http.Error(w, `{"errors":[{"id":"not_found","message":"Invalid currency"}]}`, http.StatusNotFound)
		return
	}

	parts := strings.SplitN(pair, "-", 2)
	writeJSON(w, map[string]interface{}{
		"data": map[string]string{"amount": amount, "base": parts[0], "currency": parts[1]},
	})
}

func (ms *MockServer) handleKlines(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("symbol") != "BTCUSDT" {
		http.Error(w, `{"code":-1121,"msg":"Invalid symbol."}`, http.StatusBadRequest)
		return
	}
	rows := make([][]interface{}, 0, 7)
	for i := 0; i < 7; i++ {
		closePrice := fmt.Sprintf("%d.50", 60000+i*100)
		rows = append(rows, []interface{}{1700000000000 + i, "1", "2", "0.5", closePrice, "10", 1700000086399 + i})
	}
	writeJSON(w, rows)
}

func (ms *MockServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := ms.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("MockServer: WebSocket upgrade failed: %v", err)
		return
	}

	ms.mu.Lock()
	ms.wsConns = append(ms.wsConns, &syncWSConn{conn: conn})
	ms.mu.Unlock()

	// drain client frames so pings and closes are processed
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (ms *MockServer) broadcastTickers() {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ms.stop:
			return
		case <-ticker.C:
		}

		ms.mu.RLock()
		conns := append([]*syncWSConn(nil), ms.wsConns...)
		ms.mu.RUnlock()

		for _, c := range conns {
			c.mu.Lock()
			err := c.conn.WriteMessage(websocket.TextMessage, []byte(tickerBatch))
			c.mu.Unlock()
			if err != nil {
				log.Debugf("MockServer: WebSocket write failed: %v", err)
			}
		}
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("MockServer: encode failed: %v", err)
	}
}

const tickerBatch = `[
	{"e":"24hrTicker","E":1700000000000,"s":"BTCUSDT","p":"100","P":"1.5","c":"70000.25","v":"1234.5","o":"69900","h":"70500","l":"69000","q":"86000000"},
	{"e":"24hrTicker","E":1700000000000,"s":"ETHUSDT","p":"10","P":"0.5","c":"3500.75","v":"9876.5","o":"3490","h":"3550","l":"3400","q":"34000000"}
]`

func mockCoin(id, symbol, name string, price, change, volume, marketCap float64) interfaces.Coin {
	return interfaces.Coin{
		ID:                       id,
		Symbol:                   symbol,
		Name:                     name,
		CurrentPrice:             interfaces.Float64Ptr(price),
		PriceChangePercentage24h: interfaces.Float64Ptr(change),
		TotalVolume:              interfaces.Float64Ptr(volume),
		MarketCap:                interfaces.Float64Ptr(marketCap),
		SparklineIn7d:            &interfaces.SparklineIn7d{Price: []float64{price * 0.9, price * 0.95, price}},
	}
}

func defaultCoins() []interfaces.Coin {
	return []interfaces.Coin{
		mockCoin("bitcoin", "btc", "Bitcoin", 60000, 2.5, 3e10, 1.2e12),
		mockCoin("ethereum", "eth", "Ethereum", 3000, -1.2, 1.5e10, 3.6e11),
		mockCoin("solana", "sol", "Solana", 150, 7.8, 3e9, 7e10),
		mockCoin("dogecoin", "doge", "Dogecoin", 0.15, -4.1, 1e9, 2.1e10),
	}
}

func defaultGlobal() interfaces.GlobalMarketData {
	return interfaces.GlobalMarketData{
		TotalMarketCap:                  map[string]float64{"usd": 2.45e12},
		TotalVolume:                     map[string]float64{"usd": 8.9e10},
		MarketCapPercentage:             map[string]float64{"btc": 51.2, "eth": 16.8},
		MarketCapChangePercentage24hUsd: 1.75,
		ActiveCryptocurrencies:          13542,
		Markets:                         1100,
	}
}
