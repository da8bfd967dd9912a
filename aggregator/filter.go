package aggregator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/status-im/market-aggregator/interfaces"
)

// Segment selects the base coin set of the filtered view
type Segment string

const (
	SegmentAll       Segment = "all"
	SegmentTrending  Segment = "trending"
	SegmentGainers   Segment = "gainers"
	SegmentLosers    Segment = "losers"
	SegmentFavorites Segment = "favorites"
)

// ParseSegment validates a segment name
func ParseSegment(s string) (Segment, error) {
	switch seg := Segment(strings.ToLower(strings.TrimSpace(s))); seg {
	case SegmentAll, SegmentTrending, SegmentGainers, SegmentLosers, SegmentFavorites:
		return seg, nil
	}
	return "", fmt.Errorf("unknown segment %q", s)
}

// SortField is the column the filtered view is ordered by
type SortField string

const (
	SortByCoin        SortField = "coin"
	SortByPrice       SortField = "price"
	SortByDailyChange SortField = "daily_change"
	SortByVolume      SortField = "volume"
	SortByMarketCap   SortField = "market_cap"
)

// ParseSortField validates a sort field name
func ParseSortField(s string) (SortField, error) {
	switch field := SortField(strings.ToLower(strings.TrimSpace(s))); field {
	case SortByCoin, SortByPrice, SortByDailyChange, SortByVolume, SortByMarketCap:
		return field, nil
	}
	return "", fmt.Errorf("unknown sort field %q", s)
}

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ParseSortDirection validates a sort direction
func ParseSortDirection(s string) (SortDirection, error) {
	switch dir := SortDirection(strings.ToLower(strings.TrimSpace(s))); dir {
	case SortAsc, SortDesc:
		return dir, nil
	}
	return "", fmt.Errorf("unknown sort direction %q", s)
}

// Toggle returns the opposite direction
func (d SortDirection) Toggle() SortDirection {
	if d == SortAsc {
		return SortDesc
	}
	return SortAsc
}

// FilterState is the user selection applied to the coin list
type FilterState struct {
	Segment       Segment       `json:"segment"`
	SearchText    string        `json:"search"`
	SortField     SortField     `json:"sort"`
	SortDirection SortDirection `json:"dir"`
}

// DefaultFilterState shows all coins by market cap, largest first
func DefaultFilterState() FilterState {
	return FilterState{
		Segment:       SegmentAll,
		SortField:     SortByMarketCap,
		SortDirection: SortDesc,
	}
}

// Slices are the derived coin lists
type Slices struct {
	All      []interfaces.Coin `json:"all"`
	Trending []interfaces.Coin `json:"trending"`
	Gainers  []interfaces.Coin `json:"gainers"`
	Losers   []interfaces.Coin `json:"losers"`
}

// DeriveSlices computes trending (the first trendingLimit coins in provider
// order), gainers (24h change descending) and losers (ascending), each
// capped at moversLimit
func DeriveSlices(coins []interfaces.Coin, trendingLimit, moversLimit int) Slices {
	byChange := make([]interfaces.Coin, len(coins))
	copy(byChange, coins)
	sort.SliceStable(byChange, func(i, j int) bool {
		return byChange[i].Change24hValue() > byChange[j].Change24hValue()
	})

	byChangeAsc := make([]interfaces.Coin, len(coins))
	copy(byChangeAsc, coins)
	sort.SliceStable(byChangeAsc, func(i, j int) bool {
		return byChangeAsc[i].Change24hValue() < byChangeAsc[j].Change24hValue()
	})

	return Slices{
		All:      coins,
		Trending: prefix(coins, trendingLimit),
		Gainers:  prefix(byChange, moversLimit),
		Losers:   prefix(byChangeAsc, moversLimit),
	}
}

// ApplyFilters selects the segment base set, keeps coins whose name or
// symbol contains the search text (case-insensitive) and stable-sorts by the
// selected field. Missing numbers sort as zero.
func ApplyFilters(slices Slices, favoriteIDs []string, state FilterState) []interfaces.Coin {
	var base []interfaces.Coin
	switch state.Segment {
	case SegmentTrending:
		base = slices.Trending
	case SegmentGainers:
		base = slices.Gainers
	case SegmentLosers:
		base = slices.Losers
	case SegmentFavorites:
		base = interfaces.FilterCoinsByIDs(slices.All, favoriteIDs)
	default:
		base = slices.All
	}

	query := strings.ToLower(strings.TrimSpace(state.SearchText))
	result := make([]interfaces.Coin, 0, len(base))
	for _, coin := range base {
		if query != "" &&
			!strings.Contains(strings.ToLower(coin.Name), query) &&
			!strings.Contains(strings.ToLower(coin.Symbol), query) {
			continue
		}
		result = append(result, coin)
	}

	less := lessFor(state.SortField)
	desc := state.SortDirection == SortDesc
	sort.SliceStable(result, func(i, j int) bool {
		if desc {
			return less(result[j], result[i])
		}
		return less(result[i], result[j])
	})

	return result
}

func lessFor(field SortField) func(a, b interfaces.Coin) bool {
	switch field {
	case SortByCoin:
		return func(a, b interfaces.Coin) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) }
	case SortByPrice:
		return func(a, b interfaces.Coin) bool { return a.PriceValue() < b.PriceValue() }
	case SortByDailyChange:
		return func(a, b interfaces.Coin) bool { return a.Change24hValue() < b.Change24hValue() }
	case SortByVolume:
		return func(a, b interfaces.Coin) bool { return a.VolumeValue() < b.VolumeValue() }
	default:
		return func(a, b interfaces.Coin) bool { return a.MarketCapValue() < b.MarketCapValue() }
	}
}

func prefix(coins []interfaces.Coin, n int) []interfaces.Coin {
	if n < 0 {
		n = 0
	}
	if len(coins) < n {
		n = len(coins)
	}
	out := make([]interfaces.Coin, n)
	copy(out, coins[:n])
	return out
}

// MergePrices returns a copy of coins with current_price replaced for every
// coin whose lowercase symbol has a price. Other fields are untouched.
func MergePrices(coins []interfaces.Coin, prices map[string]float64) ([]interfaces.Coin, int) {
	merged := make([]interfaces.Coin, len(coins))
	updated := 0
	for i, coin := range coins {
		if price, ok := prices[coin.LowerSymbol()]; ok {
			merged[i] = coin.WithPrice(price)
			updated++
			continue
		}
		merged[i] = coin
	}
	return merged, updated
}
