package binance

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
)

// QuotesManager keeps the latest quotes of the watched base assets
type QuotesManager struct {
	mu sync.RWMutex
	// Map of full symbol to quote (e.g. "BTCUSDT" -> Quote)
	quotes map[string]Quote
	// Map of full symbol to lowercase base symbol (e.g. "BTCUSDT" -> "btc")
	baseSymbols map[string]string
}

// NewQuotesManager creates a new QuotesManager
func NewQuotesManager() *QuotesManager {
	return &QuotesManager{
		quotes:      make(map[string]Quote),
		baseSymbols: make(map[string]string),
	}
}

// SetWatchList replaces the watched base symbols. Quotes of symbols that stay
// watched are kept.
func (qm *QuotesManager) SetWatchList(baseSymbols []string, quoteSymbol string) {
	qm.mu.Lock()
	defer qm.mu.Unlock()

	watched := make(map[string]string, len(baseSymbols))
	for _, baseSymbol := range baseSymbols {
		base := strings.ToLower(strings.TrimSpace(baseSymbol))
		if base == "" {
			continue
		}
		watched[strings.ToUpper(base+quoteSymbol)] = base
	}

	quotes := make(map[string]Quote, len(watched))
	for fullSymbol := range watched {
		if quote, ok := qm.quotes[fullSymbol]; ok {
			quotes[fullSymbol] = quote
		}
	}

	qm.baseSymbols = watched
	qm.quotes = quotes
}

// Watches reports whether every base symbol is already watched
func (qm *QuotesManager) Watches(baseSymbols []string) bool {
	qm.mu.RLock()
	defer qm.mu.RUnlock()

	watched := make(map[string]struct{}, len(qm.baseSymbols))
	for _, base := range qm.baseSymbols {
		watched[base] = struct{}{}
	}
	for _, symbol := range baseSymbols {
		if _, ok := watched[strings.ToLower(strings.TrimSpace(symbol))]; !ok {
			return false
		}
	}
	return true
}

// GetLatestQuotes returns a copy of the quotes keyed by lowercase base symbol
func (qm *QuotesManager) GetLatestQuotes() map[string]Quote {
	qm.mu.RLock()
	defer qm.mu.RUnlock()

	quotesCopy := make(map[string]Quote, len(qm.quotes))
	for fullSymbol, quote := range qm.quotes {
		if baseSymbol, ok := qm.baseSymbols[fullSymbol]; ok {
			quotesCopy[baseSymbol] = quote
		}
	}
	return quotesCopy
}

// UpdateQuotes applies a ticker message, either one ticker or an array.
// Tickers with unparsable numbers are skipped and reported in the error.
func (qm *QuotesManager) UpdateQuotes(message []byte) error {
	var tickers []Ticker
	if err := json.Unmarshal(message, &tickers); err != nil {
		var ticker Ticker
		if err := json.Unmarshal(message, &ticker); err != nil {
			return fmt.Errorf("failed to unmarshal ticker message: %w", err)
		}
		tickers = []Ticker{ticker}
	}

	qm.mu.Lock()
	defer qm.mu.Unlock()

	var firstErr error
	for i := range tickers {
		ticker := &tickers[i]
		if _, ok := qm.baseSymbols[ticker.Symbol]; !ok {
			continue
		}

		quote, err := parseTicker(ticker)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		qm.quotes[ticker.Symbol] = quote
	}

	return firstErr
}

func parseTicker(ticker *Ticker) (Quote, error) {
	price, err := parseDecimal(ticker.LastPrice)
	if err != nil {
		return Quote{}, fmt.Errorf("failed to parse price for %s: %w", ticker.Symbol, err)
	}

	volume24h, err := parseDecimal(ticker.Volume24h)
	if err != nil {
		return Quote{}, fmt.Errorf("failed to parse volume for %s: %w", ticker.Symbol, err)
	}

	percentChange24h, err := parseDecimal(ticker.PriceChangePercent)
	if err != nil {
		return Quote{}, fmt.Errorf("failed to parse price change percent for %s: %w", ticker.Symbol, err)
	}

	return Quote{
		Price:            price,
		Volume24h:        volume24h,
		PercentChange24h: percentChange24h,
	}, nil
}

// parseDecimal parses exchange number strings; a missing value is zero
func parseDecimal(n json.Number) (float64, error) {
	if n == "" {
		return 0, nil
	}
	d, err := decimal.NewFromString(n.String())
	if err != nil {
		return 0, err
	}
	return d.InexactFloat64(), nil
}
