package aggregator

import (
	"time"

	"github.com/status-im/market-aggregator/interfaces"
)

// LoadStatus is the coin list load state
type LoadStatus string

const (
	StatusIdle    LoadStatus = "idle"
	StatusLoading LoadStatus = "loading"
	StatusSuccess LoadStatus = "success"
	StatusFailure LoadStatus = "failure"
)

// LoadState is the coin list state machine: idle -> loading -> success | failure
type LoadState struct {
	Status LoadStatus        `json:"status"`
	Coins  []interfaces.Coin `json:"-"`
	Error  string            `json:"error,omitempty"`
}

// HasData reports whether coins can be shown
func (s LoadState) HasData() bool {
	return s.Status == StatusSuccess
}

// View is an immutable snapshot published after every mutation
type View struct {
	State       LoadState                    `json:"state"`
	Filter      FilterState                  `json:"filter"`
	Slices      Slices                       `json:"slices"`
	Filtered    []interfaces.Coin            `json:"filtered"`
	Watchlist   []interfaces.Coin            `json:"watchlist"`
	FavoriteIDs []string                     `json:"favorite_ids"`
	Global      *interfaces.GlobalMarketData `json:"global,omitempty"`
	CacheStatus interfaces.CacheStatus       `json:"cache_status"`
	Refreshing  bool                         `json:"refreshing"`
	UpdatedAt   time.Time                    `json:"updated_at"`
}

// Coins returns all coins when no segment or search narrows the list,
// otherwise the filtered list
func (v *View) Coins() []interfaces.Coin {
	if v.Filter.Segment == SegmentAll && v.Filter.SearchText == "" {
		return v.Slices.All
	}
	return v.Filtered
}

// Apply filters this snapshot with a different filter state
func (v *View) Apply(filter FilterState) []interfaces.Coin {
	if !v.State.HasData() {
		return []interfaces.Coin{}
	}
	return ApplyFilters(v.Slices, v.FavoriteIDs, filter)
}

// state is owned by the service loop goroutine
type state struct {
	load        LoadState
	coins       []interfaces.Coin
	slices      Slices
	filter      FilterState
	filtered    []interfaces.Coin
	watchlist   []interfaces.Coin
	favoriteIDs []string
	global      *interfaces.GlobalMarketData
	cacheStatus interfaces.CacheStatus
	refreshes   int
	updatedAt   time.Time

	searchTimer *time.Timer
}

func (st *state) setCoins(coins []interfaces.Coin, trendingLimit, moversLimit int) {
	st.coins = coins
	st.slices = DeriveSlices(coins, trendingLimit, moversLimit)
}

// applyFilters recomputes the filtered view; nothing is shown without data
func (st *state) applyFilters() {
	if !st.load.HasData() {
		st.filtered = []interfaces.Coin{}
		return
	}
	st.filtered = ApplyFilters(st.slices, st.favoriteIDs, st.filter)
}

func (st *state) snapshot() *View {
	load := st.load
	if load.HasData() {
		load.Coins = st.coins
	}
	return &View{
		State:       load,
		Filter:      st.filter,
		Slices:      st.slices,
		Filtered:    st.filtered,
		Watchlist:   st.watchlist,
		FavoriteIDs: st.favoriteIDs,
		Global:      st.global,
		CacheStatus: st.cacheStatus,
		Refreshing:  st.refreshes > 0,
		UpdatedAt:   st.updatedAt,
	}
}
