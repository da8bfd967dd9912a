package api

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/status-im/market-aggregator/interfaces"
)

// Deps are the services behind the API. FiatPrices, LivePrices, Sparklines
// and Reachability are optional.
type Deps struct {
	Aggregator   IAggregator
	Prices       ISymbolPriceClient
	FiatPrices   interfaces.ISpotPriceClient
	LivePrices   interfaces.IPriceSource
	Sparklines   interfaces.ISparklineSource
	Reachability interfaces.IReachability
	Fiat         string
}

type Server struct {
	port         string
	aggregator   IAggregator
	prices       ISymbolPriceClient
	fiatPrices   interfaces.ISpotPriceClient
	livePrices   interfaces.IPriceSource
	sparklines   interfaces.ISparklineSource
	reachability interfaces.IReachability
	fiat         string
	server       *http.Server
}

func New(port string, deps Deps) *Server {
	fiat := deps.Fiat
	if fiat == "" {
		fiat = "USD"
	}
	return &Server{
		port:         port,
		aggregator:   deps.Aggregator,
		prices:       deps.Prices,
		fiatPrices:   deps.FiatPrices,
		livePrices:   deps.LivePrices,
		sparklines:   deps.Sparklines,
		reachability: deps.Reachability,
		fiat:         fiat,
	}
}

// Router builds the route table
func (s *Server) Router() http.Handler {
	router := mux.NewRouter()
	router.Use(requestIDMiddleware)

	v1 := router.PathPrefix("/api/v1").Subrouter()
	v1.HandleFunc("/markets", s.handleMarkets).Methods(http.MethodGet)
	v1.HandleFunc("/markets/{slice}", s.handleMarketSlice).Methods(http.MethodGet)
	v1.HandleFunc("/coins", s.handleCoins).Methods(http.MethodGet)
	v1.HandleFunc("/watchlist", s.handleWatchlist).Methods(http.MethodGet)
	v1.HandleFunc("/favorites", s.handleFavorites).Methods(http.MethodGet)
	v1.HandleFunc("/favorites/{id}/toggle", s.handleToggleFavorite).Methods(http.MethodPost)
	v1.HandleFunc("/favorites/{id}", s.handleRemoveFavorite).Methods(http.MethodDelete)
	v1.HandleFunc("/view", s.handleSetView).Methods(http.MethodPut)
	v1.HandleFunc("/view/next", s.handleNextView).Methods(http.MethodGet)
	v1.HandleFunc("/view/sort/{field}", s.handleToggleSort).Methods(http.MethodPost)
	v1.HandleFunc("/refresh", s.handleRefresh).Methods(http.MethodPost)
	v1.HandleFunc("/global", s.handleGlobal).Methods(http.MethodGet)
	v1.HandleFunc("/prices/{symbol}", s.handlePrice).Methods(http.MethodGet)
	v1.HandleFunc("/prices/{symbol}/stream", s.handlePriceStream).Methods(http.MethodGet)
	v1.HandleFunc("/sparkline/{symbol}", s.handleSparkline).Methods(http.MethodGet)

	router.HandleFunc("/health", s.handleHealth)
	router.Handle("/metrics", promhttp.Handler())

	return router
}

func (s *Server) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:    ":" + s.port,
		Handler: s.Router(),
	}

	log.Printf("Server starting at http://localhost:%s", s.port)
	log.Println("Prometheus metrics available at /metrics endpoint")

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()

	return nil
}
