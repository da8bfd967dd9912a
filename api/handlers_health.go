package api

import (
	"net/http"
)

// handleHealth reports load state and connectivity; it always answers 200
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	view := s.aggregator.View()

	online := true
	if s.reachability != nil {
		online = s.reachability.IsOnline()
	}

	status := map[string]interface{}{
		"status":       "ok",
		"online":       online,
		"load_state":   view.State.Status,
		"cache_status": view.CacheStatus,
		"coins":        len(view.Slices.All),
		"refreshing":   view.Refreshing,
	}
	if view.State.Error != "" {
		status["error"] = view.State.Error
	}

	s.sendJSONResponse(w, status)
}
