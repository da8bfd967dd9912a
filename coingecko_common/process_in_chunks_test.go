package coingecko_common

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitIntoChunks(t *testing.T) {
	assert.Nil(t, SplitIntoChunks(nil, 2))
	assert.Nil(t, SplitIntoChunks([]string{"a"}, 0))

	assert.Equal(t,
		[][]string{{"a", "b"}, {"c", "d"}, {"e"}},
		SplitIntoChunks([]string{"a", "b", "c", "d", "e"}, 2))

	long := strings.Repeat("x", MaxChunkStringLength/2)
	chunks := SplitIntoChunks([]string{long, long, long}, 100)
	require.Len(t, chunks, 3)
	for _, chunk := range chunks {
		assert.Len(t, chunk, 1)
	}
}

func TestChunkMapFetcher(t *testing.T) {
	lengths := func(ctx context.Context, chunk []string) (map[string]int, error) {
		result := make(map[string]int)
		for _, item := range chunk {
			result[item] = len(item)
		}
		return result, nil
	}

	tests := []struct {
		name        string
		items       []string
		chunkLimit  int
		fetchFunc   func(context.Context, []string) (map[string]int, error)
		expected    map[string]int
		expectedErr bool
	}{
		{
			name:       "empty items",
			items:      []string{},
			chunkLimit: 2,
			fetchFunc:  lengths,
			expected:   map[string]int{},
		},
		{
			name:       "multiple chunks",
			items:      []string{"a", "bb", "c", "dd", "e"},
			chunkLimit: 2,
			fetchFunc:  lengths,
			expected:   map[string]int{"a": 1, "bb": 2, "c": 1, "dd": 2, "e": 1},
		},
		{
			name:       "error in fetch function",
			items:      []string{"a", "b", "c"},
			chunkLimit: 2,
			fetchFunc: func(ctx context.Context, chunk []string) (map[string]int, error) {
				return nil, errors.New("fetch error")
			},
			expectedErr: true,
		},
		{
			name:       "zero chunk limit returns empty",
			items:      []string{"a", "b"},
			chunkLimit: 0,
			fetchFunc:  lengths,
			expected:   map[string]int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ChunkMapFetcher[int](context.Background(), tt.items, tt.chunkLimit, 0, tt.fetchFunc)
			if tt.expectedErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestChunkArrayFetcher(t *testing.T) {
	var calls [][]string
	result, err := ChunkArrayFetcher[string](context.Background(), []string{"a", "b", "c", "d", "e"}, 2, 0,
		func(ctx context.Context, chunk []string) ([]string, error) {
			calls = append(calls, chunk)
			out := make([]string, 0, len(chunk))
			for _, item := range chunk {
				out = append(out, fmt.Sprintf("%s_processed", item))
			}
			return out, nil
		})

	require.NoError(t, err)
	assert.Len(t, calls, 3)
	assert.Equal(t, []string{"a_processed", "b_processed", "c_processed", "d_processed", "e_processed"}, result)
}

func TestChunkArrayFetcher_ErrorStops(t *testing.T) {
	calls := 0
	_, err := ChunkArrayFetcher[string](context.Background(), []string{"a", "b", "c"}, 1, 0,
		func(ctx context.Context, chunk []string) ([]string, error) {
			calls++
			if calls == 2 {
				return nil, ErrRateLimited
			}
			return chunk, nil
		})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRateLimited)
	assert.Equal(t, 2, calls)
}

func TestChunkArrayFetcher_DelayHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0

	_, err := ChunkArrayFetcher[string](ctx, []string{"a", "b"}, 1, time.Hour,
		func(ctx context.Context, chunk []string) ([]string, error) {
			calls++
			cancel()
			return chunk, nil
		})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}
