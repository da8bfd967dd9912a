package api

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
)

func (s *Server) handleWatchlist(w http.ResponseWriter, r *http.Request) {
	view := s.aggregator.View()
	s.sendJSONResponse(w, map[string]interface{}{
		"coins":        view.Watchlist,
		"favorite_ids": view.FavoriteIDs,
	})
}

func (s *Server) handleFavorites(w http.ResponseWriter, r *http.Request) {
	s.sendJSONResponse(w, map[string]interface{}{"ids": s.aggregator.View().FavoriteIDs})
}

func (s *Server) handleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	id := strings.ToLower(strings.TrimSpace(mux.Vars(r)["id"]))

	added, err := s.aggregator.ToggleFavorite(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	s.sendJSONResponse(w, map[string]interface{}{"id": id, "favorite": added})
}

func (s *Server) handleRemoveFavorite(w http.ResponseWriter, r *http.Request) {
	id := strings.ToLower(strings.TrimSpace(mux.Vars(r)["id"]))

	if err := s.aggregator.RemoveFavorite(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	s.sendJSONResponse(w, map[string]interface{}{"id": id, "favorite": false})
}
