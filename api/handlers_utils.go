package api

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/status-im/market-aggregator/aggregator"
	"github.com/status-im/market-aggregator/interfaces"
)

// setCacheStatusHeader sets the Cache-Status header based on cache status
func (s *Server) setCacheStatusHeader(w http.ResponseWriter, cacheStatus interfaces.CacheStatus) {
	if cacheStatus != "" {
		w.Header().Set("Cache-Status", cacheStatus.String())
	}
}

// sendJSONResponse is a common wrapper for JSON responses that sets Content-Type,
// Content-Length and ETag headers
func (s *Server) sendJSONResponse(w http.ResponseWriter, data interface{}) {
	s.sendJSONResponseWithStatus(w, http.StatusOK, data)
}

func (s *Server) sendJSONResponseWithStatus(w http.ResponseWriter, status int, data interface{}) {
	responseBytes, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "Error encoding response", http.StatusInternalServerError)
		return
	}

	// ETag is the MD5 of the body
	hash := md5.Sum(responseBytes)
	etag := hex.EncodeToString(hash[:])

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(responseBytes)))
	w.Header().Set("ETag", "\""+etag+"\"")
	w.WriteHeader(status)

	if _, err := w.Write(responseBytes); err != nil {
		log.Printf("Error writing response: %v", err)
		return
	}
}

// writeUnavailable answers 503 when the view has nothing to show yet. It
// reports whether a response was written.
func (s *Server) writeUnavailable(w http.ResponseWriter, view *aggregator.View) bool {
	if view.State.HasData() {
		return false
	}
	s.setCacheStatusHeader(w, view.CacheStatus)
	if view.State.Status == aggregator.StatusFailure {
		http.Error(w, "Market data unavailable: "+view.State.Error, http.StatusServiceUnavailable)
		return true
	}
	http.Error(w, "Market data is loading", http.StatusServiceUnavailable)
	return true
}

// Stop gracefully shuts down the server
func (s *Server) Stop() {
	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.server.Shutdown(ctx); err != nil {
			log.Printf("Error shutting down server: %v", err)
		}
	}
}

// splitParamLowercase splits a comma separated list, dropping blank entries
func splitParamLowercase(param string) []string {
	if param == "" {
		return []string{}
	}

	parts := strings.Split(param, ",")
	result := []string{}
	for _, part := range parts {
		trimmed := strings.ToLower(strings.TrimSpace(part))
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
