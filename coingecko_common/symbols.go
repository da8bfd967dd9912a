package coingecko_common

import "strings"

var symbolToID = map[string]string{
	"BTC":   "bitcoin",
	"ETH":   "ethereum",
	"DOGE":  "dogecoin",
	"ADA":   "cardano",
	"SOL":   "solana",
	"XRP":   "ripple",
	"DOT":   "polkadot",
	"MATIC": "matic-network",
}

// SymbolToID maps a ticker symbol to its CoinGecko id. Unknown symbols and
// values that already are ids are lowercased.
func SymbolToID(symbol string) string {
	trimmed := strings.TrimSpace(symbol)
	if id, ok := symbolToID[strings.ToUpper(trimmed)]; ok {
		return id
	}
	return strings.ToLower(trimmed)
}

// SymbolsToIDs maps every entry with SymbolToID, dropping blanks and duplicates
func SymbolsToIDs(symbols []string) []string {
	seen := make(map[string]struct{}, len(symbols))
	ids := make([]string, 0, len(symbols))
	for _, s := range symbols {
		id := SymbolToID(s)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
