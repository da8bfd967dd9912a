package binance

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	cg "github.com/status-im/market-aggregator/coingecko_common"
	"github.com/status-im/market-aggregator/config"
	"github.com/status-im/market-aggregator/interfaces"
	"github.com/status-im/market-aggregator/metrics"
)

const KLINES_API_PATH = "/api/v3/klines"

// KlinesClient builds sparklines from daily candles
type KlinesClient struct {
	config       config.BinanceConfig
	httpClient   *cg.HTTPClientWithRetries
	reachability interfaces.IReachability
}

func NewKlinesClient(cfg config.BinanceConfig, reachability interfaces.IReachability) *KlinesClient {
	opts := cg.DefaultRetryOptions()
	opts.RequestTimeout = cfg.RequestTimeout
	opts.LogPrefix = "Binance"

	return &KlinesClient{
		config:       cfg,
		httpClient:   cg.NewHTTPClientWithRetries(opts, metrics.NewMetricsWriter(metrics.ServiceBinance), nil),
		reachability: reachability,
	}
}

// FetchSparkline returns the last KlineLimit closes of symbol against the
// quote asset, oldest first
func (c *KlinesClient) FetchSparkline(ctx context.Context, symbol string) ([]float64, error) {
	base := strings.ToUpper(strings.TrimSpace(symbol))
	if base == "" {
		return nil, fmt.Errorf("empty symbol")
	}
	if c.reachability != nil && !c.reachability.IsOnline() {
		return nil, cg.ErrNotConnected
	}

	query := url.Values{}
	query.Set("symbol", base+strings.ToUpper(c.config.QuoteAsset))
	query.Set("interval", c.config.KlineInterval)
	query.Set("limit", strconv.Itoa(c.config.KlineLimit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		strings.TrimRight(c.config.RestURL, "/")+KLINES_API_PATH+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	_, body, _, err := c.httpClient.ExecuteRequest(req)
	if err != nil {
		return nil, err
	}
	return decodeCloses(body)
}

// FetchSparklines implements interfaces.ISparklineSource. Requests run
// concurrently up to SparklineConcurrency; failed symbols are omitted.
func (c *KlinesClient) FetchSparklines(ctx context.Context, symbols []string) map[string][]float64 {
	var mu sync.Mutex
	result := make(map[string][]float64, len(symbols))
	seen := make(map[string]struct{}, len(symbols))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(c.config.SparklineConcurrency, 1))

	for _, symbol := range symbols {
		key := strings.ToLower(strings.TrimSpace(symbol))
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		g.Go(func() error {
			closes, err := c.FetchSparkline(gctx, key)
			if err != nil {
				if cg.IsCancellation(err) {
					return err
				}
				log.Debugf("Binance: No sparkline for %s: %v", key, err)
				return nil
			}
			if len(closes) == 0 {
				return nil
			}
			mu.Lock()
			result[key] = closes
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Debugf("Binance: Sparkline fan-out stopped: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	return result
}

// decodeCloses reads the close column of a klines answer
func decodeCloses(body []byte) ([]float64, error) {
	var rows [][]json.RawMessage
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, &cg.DecodeError{Err: err}
	}

	closes := make([]float64, 0, len(rows))
	for i, row := range rows {
		if len(row) <= klineCloseIndex {
			return nil, &cg.DecodeError{Err: fmt.Errorf("kline %d has %d columns", i, len(row))}
		}
		var raw string
		if err := json.Unmarshal(row[klineCloseIndex], &raw); err != nil {
			return nil, &cg.DecodeError{Err: fmt.Errorf("kline %d close: %w", i, err)}
		}
		price, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, &cg.DecodeError{Err: fmt.Errorf("kline %d close %q: %w", i, raw, err)}
		}
		closes = append(closes, price.InexactFloat64())
	}
	return closes, nil
}
