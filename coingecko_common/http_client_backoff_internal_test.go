package coingecko_common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBackoffStrategies(t *testing.T) {
	linear := &HTTPClientWithRetries{Opts: RetryOptions{BaseBackoff: 2 * time.Second, Backoff: BackoffLinear}}
	assert.Equal(t, 2*time.Second, linear.backoff(1))
	assert.Equal(t, 6*time.Second, linear.backoff(3))

	jittered := &HTTPClientWithRetries{Opts: RetryOptions{BaseBackoff: time.Second, Jitter: true}}
	for i := 0; i < 20; i++ {
		d := jittered.backoff(2)
		assert.GreaterOrEqual(t, d, 2*time.Second)
		assert.Less(t, d, 3*time.Second)
	}
}
