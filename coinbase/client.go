package coinbase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
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

const SPOT_PRICE_PATH = "/v2/prices/%s/spot"

// concurrent spot requests issued by FetchPrices
const pricesConcurrency = 4

var (
	// ErrPairNotSupported the pair is not on the allow-list
	ErrPairNotSupported = errors.New("coinbase: trading pair not supported")

	// ErrPairNotFound Coinbase answered 400 or 404 for the pair
	ErrPairNotFound = errors.New("coinbase: trading pair not found")
)

type spotPriceResponse struct {
	Data *struct {
		Base     string `json:"base"`
		Currency string `json:"currency"`
		Amount   string `json:"amount"`
	} `json:"data"`
}

// Client fetches spot prices from the Coinbase public API
type Client struct {
	config       config.CoinbaseConfig
	httpClient   *cg.HTTPClientWithRetries
	reachability interfaces.IReachability

	loggedMu sync.Mutex
	logged   map[string]struct{}
}

// NewClient creates a Coinbase client. Retries wait attempt * RetryDelay.
func NewClient(cfg config.CoinbaseConfig, reachability interfaces.IReachability) *Client {
	opts := cg.DefaultRetryOptions()
	opts.MaxAttempts = cfg.MaxRetries
	opts.BaseBackoff = cfg.RetryDelay
	opts.Backoff = cg.BackoffLinear
	opts.RetryServerErrors = true
	opts.RequestTimeout = cfg.RequestTimeout
	opts.LogPrefix = "Coinbase"

	return &Client{
		config:       cfg,
		httpClient:   cg.NewHTTPClientWithRetries(opts, metrics.NewMetricsWriter(metrics.ServiceCoinbase), nil),
		reachability: reachability,
		logged:       make(map[string]struct{}),
	}
}

// FetchSpotPrice returns the spot price of base quoted in fiat
func (c *Client) FetchSpotPrice(ctx context.Context, base, fiat string) (float64, error) {
	pair := strings.ToUpper(strings.TrimSpace(base)) + "-" + strings.ToUpper(strings.TrimSpace(fiat))
	if !c.config.AllowUnlistedPairs && !IsSupportedPair(pair) {
		c.logRejectedOnce(pair)
		return 0, fmt.Errorf("%w: %s", ErrPairNotSupported, pair)
	}

	if c.reachability != nil && !c.reachability.IsOnline() {
		return 0, cg.ErrNotConnected
	}

	url := strings.TrimRight(c.config.BaseURL, "/") + fmt.Sprintf(SPOT_PRICE_PATH, pair)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", cg.DefaultUserAgent)

	_, body, _, err := c.httpClient.ExecuteRequest(req)
	if err != nil {
		if code, ok := cg.IsBadStatus(err); ok && (code == http.StatusBadRequest || code == http.StatusNotFound) {
			return 0, fmt.Errorf("%w: %s", ErrPairNotFound, pair)
		}
		return 0, err
	}

	return decodeSpotPrice(body)
}

// FetchPrices implements interfaces.IPriceSource. Symbols whose price cannot
// be fetched are left out; only a cancelled context is an error.
func (c *Client) FetchPrices(ctx context.Context, symbols []string) (map[string]float64, error) {
	var mu sync.Mutex
	prices := make(map[string]float64, len(symbols))
	seen := make(map[string]struct{}, len(symbols))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(pricesConcurrency)

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
			price, err := c.FetchSpotPrice(gctx, key, c.config.Fiat)
			if err != nil {
				if cg.IsCancellation(err) {
					return err
				}
				if !errors.Is(err, ErrPairNotSupported) {
					log.Debugf("Coinbase: No price for %s: %v", key, err)
				}
				return nil
			}
			mu.Lock()
			prices[key] = price
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return prices, nil
}

func (c *Client) logRejectedOnce(pair string) {
	c.loggedMu.Lock()
	defer c.loggedMu.Unlock()
	if _, ok := c.logged[pair]; ok {
		return
	}
	c.logged[pair] = struct{}{}
	log.Printf("Coinbase: Pair %s is not supported, skipping", pair)
}

func decodeSpotPrice(body []byte) (float64, error) {
	var resp spotPriceResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, &cg.DecodeError{Err: err}
	}
	if resp.Data == nil {
		return 0, &cg.DecodeError{Err: errors.New("missing data")}
	}

	amount, err := decimal.NewFromString(resp.Data.Amount)
	if err != nil {
		return 0, &cg.DecodeError{Err: fmt.Errorf("invalid amount %q: %w", resp.Data.Amount, err)}
	}
	return amount.InexactFloat64(), nil
}
