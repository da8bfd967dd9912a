package coingecko_common

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -destination=mocks/http_status_handler.go . IHttpStatusHandler

// IHttpStatusHandler is an interface for handling HTTP request statuses
type IHttpStatusHandler interface {
	// OnRequest handles a request with its status result
	OnRequest(status string)
	// OnRetry handles retry events
	OnRetry()
}

// Request statuses reported to IHttpStatusHandler
const (
	StatusSuccess     = "success"
	StatusError       = "error"
	StatusRateLimited = "rate_limited"
	StatusTimeout     = "timeout"
	StatusBadStatus   = "bad_status"
)

// BackoffStrategy computes the delay before a retry
type BackoffStrategy int

const (
	// BackoffExponential waits base * 2^(retry-1)
	BackoffExponential BackoffStrategy = iota
	// BackoffLinear waits base * retry
	BackoffLinear
)

// RetryOptions configures retry behavior for HTTP requests
type RetryOptions struct {
	MaxAttempts       int
	BaseBackoff       time.Duration
	Backoff           BackoffStrategy
	Jitter            bool
	RetryServerErrors bool // also retry 5xx answers
	LogPrefix         string
	ConnectionTimeout time.Duration // Timeout for establishing connection
	RequestTimeout    time.Duration // Total request timeout including reading response
}

// DefaultRetryOptions returns default retry options
func DefaultRetryOptions() RetryOptions {
	return RetryOptions{
		MaxAttempts:       2,
		BaseBackoff:       500 * time.Millisecond,
		Backoff:           BackoffExponential,
		LogPrefix:         "HTTP",
		ConnectionTimeout: 10 * time.Second,
		RequestTimeout:    30 * time.Second,
	}
}

// HTTPClientWithRetries wraps an HTTP Client with retry capabilities.
// Attempts of one call are strictly sequential.
type HTTPClientWithRetries struct {
	Client         *http.Client
	Opts           RetryOptions
	StatusHandler  IHttpStatusHandler
	LimiterManager IRateLimiterManager
}

// NewHTTPClientWithRetries creates a new HTTP Client with retry capabilities
func NewHTTPClientWithRetries(opts RetryOptions, handler IHttpStatusHandler, limiterManager IRateLimiterManager) *HTTPClientWithRetries {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 1
	}

	client := &http.Client{
		Timeout: opts.RequestTimeout,
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout: opts.ConnectionTimeout,
			}).DialContext,
		},
	}

	return &HTTPClientWithRetries{
		Client:         client,
		Opts:           opts,
		StatusHandler:  handler,
		LimiterManager: limiterManager,
	}
}

// SetStatusHandler sets the status handler for this Client
func (c *HTTPClientWithRetries) SetStatusHandler(handler IHttpStatusHandler) {
	c.StatusHandler = handler
}

func (c *HTTPClientWithRetries) report(status string) {
	if c.StatusHandler != nil {
		c.StatusHandler.OnRequest(status)
	}
}

// ExecuteRequest executes an HTTP request with retry logic.
//
// 429 answers and transport failures are retried with backoff; other non-2xx
// answers fail at once with *BadServerResponseError. When every attempt fails
// the result is *RetriesExhaustedError. A cancelled request context returns
// the context error without further attempts.
func (c *HTTPClientWithRetries) ExecuteRequest(req *http.Request) (*http.Response, []byte, time.Duration, error) {
	ctx := req.Context()
	var lastErr error

	for attempt := 0; attempt < c.Opts.MaxAttempts; attempt++ {
		if attempt > 0 {
			if c.StatusHandler != nil {
				c.StatusHandler.OnRetry()
			}

			backoffDuration := c.backoff(attempt)
			log.Printf("%s: Retry %d/%d in %.2fs after error: %v",
				c.Opts.LogPrefix, attempt, c.Opts.MaxAttempts-1, backoffDuration.Seconds(), lastErr)

			if err := sleepContext(ctx, backoffDuration); err != nil {
				return nil, nil, 0, err
			}
		}

		// Rate limit per API key before executing the request
		if c.LimiterManager != nil {
			if limiter := c.LimiterManager.GetLimiterForURL(req.URL); limiter != nil {
				if err := limiter.Wait(ctx); err != nil {
					c.report(StatusError)
					if ctx.Err() != nil {
						return nil, nil, 0, ctx.Err()
					}
					return nil, nil, 0, fmt.Errorf("rate limiter wait failed: %w", err)
				}
			}
		}

		requestStart := time.Now()
		resp, err := c.Client.Do(req)
		requestDuration := time.Since(requestStart)

		if err != nil {
			if ctx.Err() != nil {
				return nil, nil, requestDuration, ctx.Err()
			}
			if !isConnectivityError(err) {
				c.report(StatusError)
				return nil, nil, requestDuration, fmt.Errorf("request failed after %.2fs: %w", requestDuration.Seconds(), err)
			}
			if isTimeout(err) {
				c.report(StatusTimeout)
			} else {
				c.report(StatusError)
			}
			lastErr = &ConnectivityError{Err: err}
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode == http.StatusTooManyRequests {
			c.report(StatusRateLimited)
			lastErr = fmt.Errorf("%w (status %d, retry after %q)", ErrRateLimited, resp.StatusCode, resp.Header.Get("Retry-After"))
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			badErr := &BadServerResponseError{StatusCode: resp.StatusCode, Body: string(body)}
			if c.Opts.RetryServerErrors && resp.StatusCode >= 500 {
				c.report(StatusError)
				lastErr = badErr
				continue
			}
			c.report(StatusBadStatus)
			return resp, nil, requestDuration, badErr
		}

		if readErr != nil {
			if ctx.Err() != nil {
				return nil, nil, requestDuration, ctx.Err()
			}
			c.report(StatusError)
			lastErr = &ConnectivityError{Err: fmt.Errorf("error reading response: %w", readErr)}
			continue
		}

		c.report(StatusSuccess)
		return resp, body, requestDuration, nil
	}

	return nil, nil, 0, &RetriesExhaustedError{Attempts: c.Opts.MaxAttempts, Last: lastErr}
}

// backoff returns the delay before retry number attempt (1 based)
func (c *HTTPClientWithRetries) backoff(attempt int) time.Duration {
	var d time.Duration
	switch c.Opts.Backoff {
	case BackoffLinear:
		d = c.Opts.BaseBackoff * time.Duration(attempt)
	default:
		d = CalculateBackoff(c.Opts.BaseBackoff, attempt)
	}
	if c.Opts.Jitter && d > 1 {
		d += time.Duration(rand.Int63n(int64(d / 2)))
	}
	return d
}

// CalculateBackoff returns base * 2^(attempt-1) for attempt >= 1
func CalculateBackoff(baseBackoff time.Duration, attempt int) time.Duration {
	if attempt <= 1 {
		return baseBackoff
	}
	return baseBackoff * time.Duration(uint(1)<<uint(attempt-1))
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func isTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// isConnectivityError reports transport level failures worth retrying
func isConnectivityError(err error) bool {
	if isTimeout(err) {
		return true
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNABORTED) || errors.Is(err, syscall.ENETUNREACH) ||
		errors.Is(err, syscall.EHOSTUNREACH) || errors.Is(err, syscall.EPIPE) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr)
}
