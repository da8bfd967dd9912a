package coingecko_common

import (
	"context"
	"fmt"
	"time"
)

// MaxChunkStringLength bounds the joined ids of one request to stay clear of 414 answers
const MaxChunkStringLength = 7500

// SplitIntoChunks splits items into chunks of at most chunkLimit entries whose
// joined length stays under MaxChunkStringLength
func SplitIntoChunks(items []string, chunkLimit int) [][]string {
	if len(items) == 0 || chunkLimit <= 0 {
		return nil
	}

	var chunks [][]string
	var current []string
	currentLen := 0

	for _, item := range items {
		// +1 for the comma separator
		itemLen := len(item) + 1
		if len(current) > 0 && (len(current) >= chunkLimit || currentLen+itemLen > MaxChunkStringLength) {
			chunks = append(chunks, current)
			current = nil
			currentLen = 0
		}
		current = append(current, item)
		currentLen += itemLen
	}
	if len(current) > 0 {
		chunks = append(chunks, current)
	}
	return chunks
}

func processInChunks[T any](
	ctx context.Context,
	items []string,
	chunkLimit int,
	delay time.Duration,
	fetchFunc func(context.Context, []string) (T, error),
) ([]T, error) {
	chunks := SplitIntoChunks(items, chunkLimit)
	results := make([]T, 0, len(chunks))

	for i, chunk := range chunks {
		if delay > 0 && i > 0 {
			if err := sleepContext(ctx, delay); err != nil {
				return nil, err
			}
		}

		chunkResult, err := fetchFunc(ctx, chunk)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch chunk %d/%d: %w", i+1, len(chunks), err)
		}

		results = append(results, chunkResult)
	}

	return results, nil
}

// ChunkMapFetcher fetches items chunk by chunk and merges the resulting maps
func ChunkMapFetcher[T any](
	ctx context.Context,
	items []string,
	chunkLimit int,
	delay time.Duration,
	fetchFunc func(context.Context, []string) (map[string]T, error),
) (map[string]T, error) {
	chunkResults, err := processInChunks(ctx, items, chunkLimit, delay, fetchFunc)
	if err != nil {
		return nil, err
	}

	result := make(map[string]T)
	for _, chunkResult := range chunkResults {
		for k, v := range chunkResult {
			result[k] = v
		}
	}

	return result, nil
}

// ChunkArrayFetcher fetches items chunk by chunk and concatenates the results in order
func ChunkArrayFetcher[T any](
	ctx context.Context,
	items []string,
	chunkLimit int,
	delay time.Duration,
	fetchFunc func(context.Context, []string) ([]T, error),
) ([]T, error) {
	chunkResults, err := processInChunks(ctx, items, chunkLimit, delay, fetchFunc)
	if err != nil {
		return nil, err
	}

	var result []T
	for _, chunkResult := range chunkResults {
		result = append(result, chunkResult...)
	}

	return result, nil
}
