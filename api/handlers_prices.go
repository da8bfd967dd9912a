package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/status-im/market-aggregator/coingecko_global"
	"github.com/status-im/market-aggregator/live_prices"
)

// PriceResponse is the body of GET /prices/{symbol}
type PriceResponse struct {
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`
	Source string  `json:"source"`
}

// handlePrice answers a spot price from CoinGecko, falling back to Coinbase
func (s *Server) handlePrice(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToLower(strings.TrimSpace(mux.Vars(r)["symbol"]))

	price, err := s.prices.FetchSpotPrice(r.Context(), symbol)
	if err == nil {
		s.sendJSONResponse(w, PriceResponse{Symbol: symbol, Price: price, Source: "coingecko"})
		return
	}
	if r.Context().Err() != nil {
		return
	}

	if s.fiatPrices != nil {
		log.Printf("API: CoinGecko price for %s unavailable, trying Coinbase: %v", symbol, err)
		fiatPrice, fiatErr := s.fiatPrices.FetchSpotPrice(r.Context(), symbol, s.fiat)
		if fiatErr == nil {
			s.sendJSONResponse(w, PriceResponse{Symbol: symbol, Price: fiatPrice, Source: "coinbase"})
			return
		}
		err = fiatErr
	}

	http.Error(w, "Price unavailable: "+err.Error(), http.StatusBadGateway)
}

// handlePriceStream follows one symbol with a single-symbol poller and writes
// every update as a server-sent event until the client disconnects
func (s *Server) handlePriceStream(w http.ResponseWriter, r *http.Request) {
	if s.livePrices == nil {
		http.Error(w, "Live prices are disabled", http.StatusNotFound)
		return
	}

	symbol := strings.ToLower(strings.TrimSpace(mux.Vars(r)["symbol"]))
	ctx := r.Context()
	rc := http.NewResponseController(w)

	poller := live_prices.WatchSymbol(s.livePrices, symbol)
	sub := poller.Subscribe()
	defer sub.Cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	if err := rc.Flush(); err != nil {
		log.Printf("API: Price stream for %s cannot flush: %v", symbol, err)
		return
	}

	_ = poller.Start(ctx)
	defer poller.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case prices, ok := <-sub.C():
			if !ok {
				return
			}
			price, found := prices[symbol]
			if !found {
				continue
			}
			data, err := json.Marshal(PriceResponse{Symbol: symbol, Price: price, Source: "live"})
			if err != nil {
				log.Printf("API: Failed to encode price of %s: %v", symbol, err)
				return
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
				return
			}
			if err := rc.Flush(); err != nil {
				return
			}
		}
	}
}

// handleSparkline returns the daily close series for a symbol
func (s *Server) handleSparkline(w http.ResponseWriter, r *http.Request) {
	if s.sparklines == nil {
		http.Error(w, "Sparklines are disabled", http.StatusNotFound)
		return
	}

	symbol := strings.ToLower(strings.TrimSpace(mux.Vars(r)["symbol"]))
	lines := s.sparklines.FetchSparklines(r.Context(), []string{symbol})
	prices, ok := lines[symbol]
	if !ok {
		http.Error(w, "No sparkline for "+symbol, http.StatusNotFound)
		return
	}
	s.sendJSONResponse(w, map[string]interface{}{"symbol": symbol, "prices": prices})
}

// handleGlobal returns the global snapshot with display-ready stats
func (s *Server) handleGlobal(w http.ResponseWriter, r *http.Request) {
	view := s.aggregator.View()
	if view.Global == nil {
		http.Error(w, "Global market data not loaded", http.StatusServiceUnavailable)
		return
	}
	s.sendJSONResponse(w, map[string]interface{}{
		"data":  view.Global,
		"stats": coingecko_global.FormatStats(view.Global),
	})
}
