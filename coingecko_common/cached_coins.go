package coingecko_common

import (
	"context"
	"strings"

	"github.com/status-im/market-aggregator/cache"
	"github.com/status-im/market-aggregator/interfaces"
)

// DecodeCoins decodes a /coins/markets body
func DecodeCoins(body []byte) ([]interfaces.Coin, error) {
	return DecodeJSONArray[interfaces.Coin](body)
}

// CachedCoinsByIDs merges the watchlist, markets and lookup cache entries and
// keeps coins whose id is in ids. Earlier entries win for duplicate ids.
func CachedCoinsByIDs(ctx context.Context, store cache.Store, ids []string) []interfaces.Coin {
	if len(ids) == 0 {
		return []interfaces.Coin{}
	}

	seen := make(map[string]struct{})
	var merged []interfaces.Coin
	for _, key := range []string{cache.WatchlistKey, cache.CoinsKey, cache.LookupKey} {
		coins, ok := LoadCached(ctx, store, key, DecodeCoins)
		if !ok {
			continue
		}
		for _, coin := range coins {
			id := strings.ToLower(coin.ID)
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			merged = append(merged, coin)
		}
	}

	return interfaces.FilterCoinsByIDs(merged, ids)
}
