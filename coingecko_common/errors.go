package coingecko_common

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrRateLimited upstream answered 429
	ErrRateLimited = errors.New("rate limited")

	// ErrNotConnected the network is offline and no cache entry exists
	ErrNotConnected = errors.New("not connected to the internet")
)

// BadServerResponseError is a non-2xx, non-429 answer. It is never retried.
type BadServerResponseError struct {
	StatusCode int
	Body       string
}

func (e *BadServerResponseError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("bad server response: status %d", e.StatusCode)
	}
	return fmt.Sprintf("bad server response: status %d: %s", e.StatusCode, truncate(e.Body, 200))
}

// DecodeError the payload could not be decoded. It is never retried.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ConnectivityError wraps transport failures such as timeouts, refused or
// reset connections.
type ConnectivityError struct {
	Err error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("connectivity failure: %v", e.Err)
}

func (e *ConnectivityError) Unwrap() error {
	return e.Err
}

// RetriesExhaustedError every attempt failed with a retryable error
type RetriesExhaustedError struct {
	Attempts int
	Last     error
}

func (e *RetriesExhaustedError) Error() string {
	return fmt.Sprintf("all %d attempts failed, last error: %v", e.Attempts, e.Last)
}

func (e *RetriesExhaustedError) Unwrap() error {
	return e.Last
}

// IsCancellation reports whether err comes from a cancelled caller context.
// Transport timeouts are connectivity failures, not cancellations.
func IsCancellation(err error) bool {
	if err == nil {
		return false
	}
	var connErr *ConnectivityError
	if errors.As(err, &connErr) {
		return false
	}
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// IsRetryable reports whether err may succeed on another attempt
func IsRetryable(err error) bool {
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	var connErr *ConnectivityError
	return errors.As(err, &connErr)
}

// IsBadStatus returns the status code of a BadServerResponseError
func IsBadStatus(err error) (int, bool) {
	var badErr *BadServerResponseError
	if errors.As(err, &badErr) {
		return badErr.StatusCode, true
	}
	return 0, false
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
