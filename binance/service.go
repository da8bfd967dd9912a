package binance

import (
	"context"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/status-im/market-aggregator/config"
	"github.com/status-im/market-aggregator/metrics"
)

// reconnect delay after the stream fails
const RECONNECT_DELAY = 5 * time.Second

// Service keeps a ticker stream open and serves the latest quotes of the
// watched symbols as live prices
type Service struct {
	config         config.BinanceConfig
	quotes         *QuotesManager
	metricsWriter  *metrics.MetricsWriter
	reconnectDelay time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewService(cfg config.BinanceConfig) *Service {
	return &Service{
		config:         cfg,
		quotes:         NewQuotesManager(),
		metricsWriter:  metrics.NewMetricsWriter(metrics.ServiceBinance),
		reconnectDelay: RECONNECT_DELAY,
	}
}

// SetWatchList sets the base symbols whose tickers are kept
func (s *Service) SetWatchList(baseSymbols []string) {
	s.quotes.SetWatchList(baseSymbols, s.config.QuoteAsset)
}

// GetLatestQuotes returns the latest quotes keyed by lowercase base symbol
func (s *Service) GetLatestQuotes() map[string]Quote {
	return s.quotes.GetLatestQuotes()
}

// FetchPrices implements interfaces.IPriceSource from the stream snapshot.
// Symbols not watched yet are added; their prices appear with the next ticker batch.
func (s *Service) FetchPrices(ctx context.Context, symbols []string) (map[string]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !s.quotes.Watches(symbols) {
		s.SetWatchList(symbols)
	}

	quotes := s.quotes.GetLatestQuotes()
	prices := make(map[string]float64, len(symbols))
	for _, symbol := range symbols {
		key := strings.ToLower(strings.TrimSpace(symbol))
		if quote, ok := quotes[key]; ok && quote.Price > 0 {
			prices[key] = quote.Price
		}
	}
	return prices, nil
}

// Start opens the stream in the background and keeps reconnecting until Stop
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})

	go s.run(ctx, s.done)
	return nil
}

func (s *Service) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (s *Service) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	for {
		failed := make(chan error, 1)
		client := NewSimpleWebSocketClient(s.config.WSURL, s.onMessage, func(err error) {
			select {
			case failed <- err:
			default:
			}
		})
		client.Start(ctx)

		select {
		case <-ctx.Done():
			client.Stop()
			return
		case err := <-failed:
			client.Stop()
			s.metricsWriter.RecordRequest("stream_error")
			log.Printf("Binance: Stream failed, reconnecting in %s: %v", s.reconnectDelay, err)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(s.reconnectDelay):
		}
	}
}

func (s *Service) onMessage(message []byte) {
	if err := s.quotes.UpdateQuotes(message); err != nil {
		log.Debugf("Binance: %v", err)
	}
}
