package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/status-im/market-aggregator/aggregator"
	"github.com/status-im/market-aggregator/interfaces"
)

// MarketsResponse is the body of the coin list endpoints
type MarketsResponse struct {
	Coins       []interfaces.Coin      `json:"coins"`
	Filter      aggregator.FilterState `json:"filter"`
	Status      aggregator.LoadStatus  `json:"status"`
	CacheStatus interfaces.CacheStatus `json:"cache_status"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

// ViewRequest is the body of PUT /view; missing fields keep their value
type ViewRequest struct {
	Segment       *string `json:"segment"`
	SearchText    *string `json:"search"`
	SortField     *string `json:"sort"`
	SortDirection *string `json:"dir"`
}

// filterFromQuery overlays segment, search, sort and dir query parameters
// on the current filter. The second result reports whether any was given.
func filterFromQuery(r *http.Request, current aggregator.FilterState) (aggregator.FilterState, bool, error) {
	filter := current
	overridden := false
	query := r.URL.Query()

	if query.Has("segment") {
		segment, err := aggregator.ParseSegment(query.Get("segment"))
		if err != nil {
			return filter, false, err
		}
		filter.Segment = segment
		overridden = true
	}
	if query.Has("search") {
		filter.SearchText = query.Get("search")
		overridden = true
	}
	if query.Has("sort") {
		field, err := aggregator.ParseSortField(query.Get("sort"))
		if err != nil {
			return filter, false, err
		}
		filter.SortField = field
		overridden = true
	}
	if query.Has("dir") {
		dir, err := aggregator.ParseSortDirection(query.Get("dir"))
		if err != nil {
			return filter, false, err
		}
		filter.SortDirection = dir
		overridden = true
	}
	return filter, overridden, nil
}

// handleMarkets returns the filtered coin list. Query parameters override
// the stored filter for this request only.
func (s *Server) handleMarkets(w http.ResponseWriter, r *http.Request) {
	view := s.aggregator.View()
	if s.writeUnavailable(w, view) {
		return
	}

	filter, overridden, err := filterFromQuery(r, view.Filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	coins := view.Filtered
	if overridden {
		coins = view.Apply(filter)
	}

	s.setCacheStatusHeader(w, view.CacheStatus)
	s.sendJSONResponse(w, MarketsResponse{
		Coins:       coins,
		Filter:      filter,
		Status:      view.State.Status,
		CacheStatus: view.CacheStatus,
		UpdatedAt:   view.UpdatedAt,
	})
}

// handleMarketSlice returns one of the derived slices in its own order
func (s *Server) handleMarketSlice(w http.ResponseWriter, r *http.Request) {
	view := s.aggregator.View()

	var coins []interfaces.Coin
	switch mux.Vars(r)["slice"] {
	case "all":
		coins = view.Slices.All
	case "trending":
		coins = view.Slices.Trending
	case "gainers":
		coins = view.Slices.Gainers
	case "losers":
		coins = view.Slices.Losers
	default:
		http.Error(w, "Unknown slice, expected one of all, trending, gainers, losers", http.StatusNotFound)
		return
	}

	if s.writeUnavailable(w, view) {
		return
	}

	s.setCacheStatusHeader(w, view.CacheStatus)
	s.sendJSONResponse(w, MarketsResponse{
		Coins:       coins,
		Filter:      view.Filter,
		Status:      view.State.Status,
		CacheStatus: view.CacheStatus,
		UpdatedAt:   view.UpdatedAt,
	})
}

// handleCoins looks up coins by id or ticker symbol
func (s *Server) handleCoins(w http.ResponseWriter, r *http.Request) {
	ids := splitParamLowercase(r.URL.Query().Get("ids"))
	if len(ids) == 0 {
		http.Error(w, "Missing required parameter: ids", http.StatusBadRequest)
		return
	}

	coins, err := s.aggregator.FetchCoins(r.Context(), ids)
	if err != nil {
		http.Error(w, "Failed to fetch coins: "+err.Error(), http.StatusBadGateway)
		return
	}
	s.sendJSONResponse(w, map[string]interface{}{"coins": coins})
}

// handleSetView updates segment, sort and search on the service. Search text
// is debounced, so the response is the filter once it settles.
func (s *Server) handleSetView(w http.ResponseWriter, r *http.Request) {
	var req ViewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	filter := s.aggregator.View().Filter
	if req.Segment != nil {
		segment, err := aggregator.ParseSegment(*req.Segment)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		filter.Segment = segment
	}
	if req.SortField != nil {
		field, err := aggregator.ParseSortField(*req.SortField)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		filter.SortField = field
	}
	if req.SortDirection != nil {
		dir, err := aggregator.ParseSortDirection(*req.SortDirection)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		filter.SortDirection = dir
	}

	ctx := r.Context()
	if req.Segment != nil {
		if err := s.aggregator.SetSegment(ctx, filter.Segment); err != nil {
			writeServiceError(w, err)
			return
		}
	}
	if req.SortField != nil || req.SortDirection != nil {
		if err := s.aggregator.SetSort(ctx, filter.SortField, filter.SortDirection); err != nil {
			writeServiceError(w, err)
			return
		}
	}
	if req.SearchText != nil {
		filter.SearchText = *req.SearchText
		if err := s.aggregator.SetSearchText(ctx, filter.SearchText); err != nil {
			writeServiceError(w, err)
			return
		}
	}
	s.sendJSONResponse(w, filter)
}

// handleToggleSort flips the direction of the current sort field or switches
// to a new field ascending
func (s *Server) handleToggleSort(w http.ResponseWriter, r *http.Request) {
	field, err := aggregator.ParseSortField(mux.Vars(r)["field"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := s.aggregator.ToggleSort(r.Context(), field); err != nil {
		writeServiceError(w, err)
		return
	}
	s.sendJSONResponse(w, s.aggregator.View().Filter)
}

const (
	defaultViewWait = 25 * time.Second
	maxViewWait     = time.Minute
)

// handleNextView long-polls for the next published view and answers with the
// filtered list. Nothing published within timeout answers 204.
func (s *Server) handleNextView(w http.ResponseWriter, r *http.Request) {
	wait := defaultViewWait
	if raw := r.URL.Query().Get("timeout"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil || parsed <= 0 {
			http.Error(w, "Invalid timeout, expected a positive duration such as 30s", http.StatusBadRequest)
			return
		}
		wait = min(parsed, maxViewWait)
	}

	sub := s.aggregator.SubscribeViewChange()
	defer sub.Cancel()

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-sub.Chan():
	case <-timer.C:
		w.WriteHeader(http.StatusNoContent)
		return
	case <-r.Context().Done():
		return
	}

	view := s.aggregator.View()
	if s.writeUnavailable(w, view) {
		return
	}
	s.setCacheStatusHeader(w, view.CacheStatus)
	s.sendJSONResponse(w, MarketsResponse{
		Coins:       view.Filtered,
		Filter:      view.Filter,
		Status:      view.State.Status,
		CacheStatus: view.CacheStatus,
		UpdatedAt:   view.UpdatedAt,
	})
}

// handleRefresh starts a background refresh; a refresh already in flight
// absorbs the request
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	started := s.aggregator.TriggerRefresh()
	s.sendJSONResponseWithStatus(w, http.StatusAccepted, map[string]bool{"started": started})
}

func writeServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, aggregator.ErrNotRunning) {
		http.Error(w, "Service is not running", http.StatusServiceUnavailable)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
