package aggregator

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/status-im/market-aggregator/cache"
	cg "github.com/status-im/market-aggregator/coingecko_common"
	"github.com/status-im/market-aggregator/config"
	"github.com/status-im/market-aggregator/events"
	"github.com/status-im/market-aggregator/interfaces"
	"github.com/status-im/market-aggregator/live_prices"
	"github.com/status-im/market-aggregator/metrics"
	"github.com/status-im/market-aggregator/scheduler"
)

// ErrNotRunning is returned by mutations while the service is stopped
var ErrNotRunning = errors.New("aggregator: service is not running")

// StatusNotifier reports connectivity and its transitions
type StatusNotifier interface {
	IsOnline() bool
	SubscribeStatusChange() events.ISubscription
}

// Deps are the collaborators of the aggregation service. Global, Sparklines,
// Poller and Reachability are optional.
type Deps struct {
	Markets      interfaces.IMarketsClient
	Watchlist    interfaces.IWatchlistClient
	Global       interfaces.IGlobalStatsClient
	Sparklines   interfaces.ISparklineSource
	Favorites    interfaces.IFavoritesStore
	Store        cache.Store
	Poller       *live_prices.Poller
	Reachability StatusNotifier
}

type op struct {
	fn   func(*state)
	done chan struct{}
}

// Service owns the coin list, the favorite ids and the filter state. Every
// mutation runs as a closure on a single loop goroutine; network I/O runs on
// the calling goroutine and only its result is marshalled onto the loop.
// Readers get immutable View snapshots.
type Service struct {
	config        config.AggregatorConfig
	deps          Deps
	metricsWriter *metrics.MetricsWriter

	ops                 chan op
	st                  *state
	view                atomic.Pointer[View]
	subscriptionManager *events.SubscriptionManager

	// set while a refresh runs when concurrent refreshes are not allowed
	refreshing atomic.Bool

	mu                 sync.Mutex
	ctx                context.Context
	cancel             context.CancelFunc
	wg                 sync.WaitGroup
	refreshScheduler   *scheduler.Scheduler
	watchlistScheduler *scheduler.Scheduler
	priceSub           *live_prices.Subscription
	statusSub          events.ISubscription
	watchlistCancel    context.CancelFunc
}

func NewService(cfg config.AggregatorConfig, deps Deps) *Service {
	filter := DefaultFilterState()
	if field, err := ParseSortField(cfg.DefaultSortField); err == nil {
		filter.SortField = field
	}
	if dir, err := ParseSortDirection(cfg.DefaultSortDirection); err == nil {
		filter.SortDirection = dir
	}

	st := &state{
		load:        LoadState{Status: StatusIdle},
		filter:      filter,
		watchlist:   []interfaces.Coin{},
		favoriteIDs: []string{},
		cacheStatus: interfaces.CacheStatusMiss,
	}
	st.setCoins([]interfaces.Coin{}, cfg.TrendingLimit, cfg.MoversLimit)
	st.applyFilters()

	s := &Service{
		config:              cfg,
		deps:                deps,
		metricsWriter:       metrics.NewMetricsWriter(metrics.ServiceAggregator),
		ops:                 make(chan op),
		st:                  st,
		subscriptionManager: events.NewSubscriptionManager(),
	}
	s.view.Store(st.snapshot())
	return s
}

// Start seeds state from the cache store, then starts the mutation loop, the
// refresh timers and the live price subscription. A refresh is triggered
// whenever connectivity comes back.
func (s *Service) Start(ctx context.Context) error {
	ctx, started := s.startLoop(ctx)
	if !started {
		return nil
	}

	s.seed(ctx)
	s.subscribeLivePrices(ctx)
	s.watchReachability(ctx)

	refreshScheduler := scheduler.New(s.config.RefreshInterval, func(ctx context.Context) {
		s.Refresh(ctx)
	}, scheduler.WithName("aggregator-refresh"))
	watchlistScheduler := scheduler.New(s.config.WatchlistInterval, s.loadWatchlistData,
		scheduler.WithName("aggregator-watchlist"))

	s.mu.Lock()
	s.refreshScheduler = refreshScheduler
	s.watchlistScheduler = watchlistScheduler
	s.mu.Unlock()

	refreshScheduler.Start(ctx, true)
	watchlistScheduler.Start(ctx, false)

	log.Printf("Aggregator: Started, refreshing every %v, watchlist every %v",
		s.config.RefreshInterval, s.config.WatchlistInterval)
	return nil
}

// Stop halts timers and the loop and waits for background work
func (s *Service) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	refreshScheduler, watchlistScheduler := s.refreshScheduler, s.watchlistScheduler
	priceSub, statusSub := s.priceSub, s.statusSub
	s.ctx, s.cancel = nil, nil
	s.refreshScheduler, s.watchlistScheduler, s.priceSub, s.watchlistCancel = nil, nil, nil, nil
	s.statusSub = nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()

	if refreshScheduler != nil {
		refreshScheduler.Stop()
	}
	if watchlistScheduler != nil {
		watchlistScheduler.Stop()
	}
	if priceSub != nil {
		priceSub.Cancel()
	}
	if statusSub != nil {
		statusSub.Cancel()
	}
	s.wg.Wait()
	log.Printf("Aggregator: Stopped")
}

// startLoop runs the mutation loop; it reports false when already running
func (s *Service) startLoop(parent context.Context) (context.Context, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctx != nil {
		return s.ctx, false
	}

	ctx, cancel := context.WithCancel(parent)
	s.ctx, s.cancel = ctx, cancel

	s.wg.Add(1)
	go s.run(ctx)
	return ctx, true
}

func (s *Service) run(ctx context.Context) {
	defer s.wg.Done()
	for {
		select {
		case <-ctx.Done():
			if s.st.searchTimer != nil {
				s.st.searchTimer.Stop()
			}
			return
		case o := <-s.ops:
			o.fn(s.st)
			s.view.Store(s.st.snapshot())
			close(o.done)
			s.subscriptionManager.Emit(ctx)
		}
	}
}

func (s *Service) loopContext() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctx
}

// apply runs fn on the loop goroutine and waits until the resulting view is
// published. fn must not block and must not call apply.
func (s *Service) apply(ctx context.Context, fn func(*state)) error {
	loopCtx := s.loopContext()
	if loopCtx == nil {
		return ErrNotRunning
	}

	o := op{fn: fn, done: make(chan struct{})}
	select {
	case s.ops <- o:
	case <-ctx.Done():
		return ctx.Err()
	case <-loopCtx.Done():
		return ErrNotRunning
	}
	<-o.done
	return nil
}

// View returns the latest published snapshot
func (s *Service) View() *View {
	return s.view.Load()
}

// Coins is View().Coins()
func (s *Service) Coins() []interfaces.Coin {
	return s.View().Coins()
}

// SubscribeViewChange notifies after every published snapshot
func (s *Service) SubscribeViewChange() events.ISubscription {
	return s.subscriptionManager.Subscribe()
}

// FetchCoins looks up coins by id or symbol outside the held list
func (s *Service) FetchCoins(ctx context.Context, ids []string) ([]interfaces.Coin, error) {
	return s.deps.Markets.FetchCoins(ctx, ids)
}

func (s *Service) seed(ctx context.Context) {
	var favoriteIDs []string
	if s.deps.Favorites != nil {
		favoriteIDs = s.deps.Favorites.GetAllIDs()
	}

	var cached, cachedWatchlist []interfaces.Coin
	if s.deps.Store != nil {
		var err error
		if cached, _, err = cache.GetJSON[[]interfaces.Coin](ctx, s.deps.Store, cache.CoinsKey); err != nil {
			log.Printf("Aggregator: Ignoring cached coins: %v", err)
			cached = nil
		}
		if cachedWatchlist, _, err = cache.GetJSON[[]interfaces.Coin](ctx, s.deps.Store, cache.WatchlistKey); err != nil {
			cachedWatchlist = nil
		}
	}

	_ = s.apply(ctx, func(st *state) {
		st.favoriteIDs = nonNil(favoriteIDs)
		if len(cached) > 0 {
			st.setCoins(cached, s.config.TrendingLimit, s.config.MoversLimit)
			st.load = LoadState{Status: StatusSuccess}
			st.cacheStatus = interfaces.CacheStatusHit
		}
		if len(favoriteIDs) > 0 && len(cachedWatchlist) > 0 {
			st.watchlist = interfaces.FilterCoinsByIDs(cachedWatchlist, favoriteIDs)
		}
		st.applyFilters()
	})

	if len(cached) > 0 {
		log.Printf("Aggregator: Seeded %d coins from cache", len(cached))
		s.pushSymbols(cached)
	}
}

// watchReachability refreshes on every offline to online transition
func (s *Service) watchReachability(ctx context.Context) {
	if s.deps.Reachability == nil {
		return
	}

	wasOnline := s.deps.Reachability.IsOnline()
	sub := s.deps.Reachability.SubscribeStatusChange().Watch(ctx, func() {
		online := s.deps.Reachability.IsOnline()
		if online && !wasOnline {
			log.Printf("Aggregator: Back online, refreshing")
			s.TriggerRefresh()
		}
		wasOnline = online
	}, false)

	s.mu.Lock()
	s.statusSub = sub
	s.mu.Unlock()
}

// Refresh reloads coins, watchlist and global stats. Without
// AllowConcurrentRefresh a call made while another refresh runs returns
// false immediately.
func (s *Service) Refresh(ctx context.Context) bool {
	if !s.config.AllowConcurrentRefresh {
		if !s.refreshing.CompareAndSwap(false, true) {
			log.Debugf("Aggregator: Refresh already in progress, skipping")
			return false
		}
		defer s.refreshing.Store(false)
	}

	logger := log.WithField("cycle", uuid.NewString())
	start := time.Now()

	if err := s.apply(ctx, func(st *state) { st.refreshes++ }); err != nil {
		return false
	}
	defer func() {
		_ = s.apply(context.Background(), func(st *state) { st.refreshes-- })
	}()

	s.loadAllData(ctx)
	s.loadWatchlistData(ctx)
	s.refreshGlobal(ctx)

	s.metricsWriter.RecordDataFetchCycle(time.Since(start))
	logger.Debugf("Aggregator: Refresh finished in %v", time.Since(start))
	return true
}

// TriggerRefresh starts Refresh in the background; it reports false when the
// service is stopped or a non-concurrent refresh is already running
func (s *Service) TriggerRefresh() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctx == nil {
		return false
	}
	if !s.config.AllowConcurrentRefresh && s.refreshing.Load() {
		return false
	}

	ctx := s.ctx
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.Refresh(ctx)
	}()
	return true
}

// loadAllData fetches the coin list with retries. Failures keep previously
// held coins; a cancelled fetch restores the state it found.
func (s *Service) loadAllData(ctx context.Context) {
	var previous LoadState
	markedLoading := false
	if err := s.apply(ctx, func(st *state) {
		previous = st.load
		if len(st.coins) == 0 && st.load.Status != StatusLoading {
			st.load = LoadState{Status: StatusLoading}
			st.applyFilters()
			markedLoading = true
		}
	}); err != nil {
		return
	}

	restore := func() {
		if !markedLoading {
			return
		}
		_ = s.apply(context.Background(), func(st *state) {
			if st.load.Status == StatusLoading {
				st.load = previous
				st.applyFilters()
			}
		})
	}

	var coins []interfaces.Coin
	var err error
	for attempt := 1; attempt <= s.config.LoadAttempts; attempt++ {
		coins, err = s.deps.Markets.FetchCoinMarkets(ctx)
		if err == nil {
			break
		}
		if isCancelled(ctx, err) {
			restore()
			return
		}
		log.Printf("Aggregator: Coin markets attempt %d/%d failed: %v", attempt, s.config.LoadAttempts, err)
		if attempt < s.config.LoadAttempts {
			if sleepErr := sleepContext(ctx, s.config.LoadRetryDelay); sleepErr != nil {
				restore()
				return
			}
		}
	}

	if err != nil {
		message := err.Error()
		_ = s.apply(context.Background(), func(st *state) {
			if len(st.coins) > 0 {
				st.load = LoadState{Status: StatusSuccess}
				st.cacheStatus = interfaces.CacheStatusStale
			} else {
				st.load = LoadState{Status: StatusFailure, Error: message}
			}
			st.applyFilters()
		})
		return
	}

	if coins == nil {
		coins = []interfaces.Coin{}
	}
	if err := s.apply(context.Background(), func(st *state) {
		st.setCoins(coins, s.config.TrendingLimit, s.config.MoversLimit)
		st.load = LoadState{Status: StatusSuccess}
		st.cacheStatus = interfaces.CacheStatusLive
		st.updatedAt = time.Now()
		st.applyFilters()
	}); err != nil {
		return
	}

	if s.deps.Store != nil {
		if err := cache.SetJSON(ctx, s.deps.Store, cache.CoinsKey, coins); err != nil {
			log.Printf("Aggregator: Failed to persist coins: %v", err)
		}
	}
	s.metricsWriter.RecordCacheSize(len(coins))
	s.pushSymbols(coins)
}

// loadWatchlistData fetches markets for the favorite ids with retries.
// Failures keep the previous watchlist; results of a cancelled load are dropped.
func (s *Service) loadWatchlistData(ctx context.Context) {
	var ids []string
	if s.deps.Favorites != nil {
		ids = s.deps.Favorites.GetAllIDs()
	}
	if len(ids) == 0 {
		_ = s.apply(ctx, func(st *state) {
			if ctx.Err() == nil {
				st.watchlist = []interfaces.Coin{}
			}
		})
		return
	}

	var coins []interfaces.Coin
	var err error
	for attempt := 1; attempt <= s.config.WatchlistAttempts; attempt++ {
		coins, err = s.deps.Watchlist.FetchWatchlistMarkets(ctx, ids)
		if err == nil {
			break
		}
		if isCancelled(ctx, err) {
			return
		}
		if attempt < s.config.WatchlistAttempts {
			if sleepContext(ctx, s.config.WatchlistRetryDelay) != nil {
				return
			}
		}
	}
	if err != nil {
		log.Printf("Aggregator: Watchlist load failed after %d attempts: %v", s.config.WatchlistAttempts, err)
		return
	}

	coins = s.enrichSparklines(ctx, coins)
	_ = s.apply(ctx, func(st *state) {
		if ctx.Err() != nil {
			return
		}
		st.watchlist = nonNilCoins(coins)
	})
}

// enrichSparklines fills missing sparklines from the kline source
func (s *Service) enrichSparklines(ctx context.Context, coins []interfaces.Coin) []interfaces.Coin {
	if s.deps.Sparklines == nil {
		return coins
	}

	var missing []string
	for _, coin := range coins {
		if len(coin.Sparkline()) == 0 {
			missing = append(missing, coin.LowerSymbol())
		}
	}
	if len(missing) == 0 {
		return coins
	}

	lines := s.deps.Sparklines.FetchSparklines(ctx, missing)
	if len(lines) == 0 {
		return coins
	}

	enriched := make([]interfaces.Coin, len(coins))
	for i, coin := range coins {
		if line, ok := lines[coin.LowerSymbol()]; ok && len(coin.Sparkline()) == 0 {
			coin.SparklineIn7d = &interfaces.SparklineIn7d{Price: line}
		}
		enriched[i] = coin
	}
	return enriched
}

func (s *Service) refreshGlobal(ctx context.Context) {
	if s.deps.Global == nil {
		return
	}
	data, err := s.deps.Global.FetchGlobalStats(ctx)
	if err != nil {
		if !isCancelled(ctx, err) {
			log.Printf("Aggregator: Global stats unavailable: %v", err)
		}
		return
	}
	_ = s.apply(ctx, func(st *state) { st.global = data })
}

// reloadWatchlist cancels an in-flight favorites reload and starts a new one
func (s *Service) reloadWatchlist() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctx == nil {
		return
	}
	if s.watchlistCancel != nil {
		s.watchlistCancel()
	}

	ctx, cancel := context.WithCancel(s.ctx)
	s.watchlistCancel = cancel

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer cancel()
		s.loadWatchlistData(ctx)
	}()
}

// ToggleFavorite flips id in the favorite set and reloads the watchlist
func (s *Service) ToggleFavorite(ctx context.Context, id string) (bool, error) {
	if s.loopContext() == nil {
		return false, ErrNotRunning
	}

	added, err := s.deps.Favorites.Toggle(ctx, id)
	if err != nil {
		return false, err
	}
	if err := s.apply(ctx, s.syncFavorites); err != nil {
		return false, err
	}

	s.reloadWatchlist()
	return added, nil
}

// RemoveFavorite drops id from the favorite set and reloads the watchlist
func (s *Service) RemoveFavorite(ctx context.Context, id string) error {
	if s.loopContext() == nil {
		return ErrNotRunning
	}

	if err := s.deps.Favorites.Remove(ctx, id); err != nil {
		return err
	}
	if err := s.apply(ctx, s.syncFavorites); err != nil {
		return err
	}

	s.reloadWatchlist()
	return nil
}

// syncFavorites copies the persisted favorite ids into st
func (s *Service) syncFavorites(st *state) {
	st.favoriteIDs = nonNil(s.deps.Favorites.GetAllIDs())
	st.watchlist = interfaces.FilterCoinsByIDs(st.watchlist, st.favoriteIDs)
	st.applyFilters()
}

// SetSegment changes the segment of the filtered view
func (s *Service) SetSegment(ctx context.Context, segment Segment) error {
	return s.apply(ctx, func(st *state) {
		st.filter.Segment = segment
		st.applyFilters()
	})
}

// SetSort sets both the sort field and direction
func (s *Service) SetSort(ctx context.Context, field SortField, dir SortDirection) error {
	return s.apply(ctx, func(st *state) {
		st.filter.SortField = field
		st.filter.SortDirection = dir
		st.applyFilters()
	})
}

// ToggleSort flips the direction for the current field; a new field starts ascending
func (s *Service) ToggleSort(ctx context.Context, field SortField) error {
	return s.apply(ctx, func(st *state) {
		if st.filter.SortField == field {
			st.filter.SortDirection = st.filter.SortDirection.Toggle()
		} else {
			st.filter.SortField = field
			st.filter.SortDirection = SortAsc
		}
		st.applyFilters()
	})
}

// SetFilter replaces the whole filter state at once, without debouncing
func (s *Service) SetFilter(ctx context.Context, filter FilterState) error {
	return s.apply(ctx, func(st *state) {
		if st.searchTimer != nil {
			st.searchTimer.Stop()
			st.searchTimer = nil
		}
		st.filter = filter
		st.applyFilters()
	})
}

// SetSearchText applies text after SearchDebounce without a newer call
func (s *Service) SetSearchText(ctx context.Context, text string) error {
	if s.config.SearchDebounce <= 0 {
		return s.apply(ctx, func(st *state) {
			st.filter.SearchText = text
			st.applyFilters()
		})
	}

	return s.apply(ctx, func(st *state) {
		if st.searchTimer != nil {
			st.searchTimer.Stop()
		}
		var timer *time.Timer
		timer = time.AfterFunc(s.config.SearchDebounce, func() {
			_ = s.apply(context.Background(), func(st *state) {
				if st.searchTimer != timer {
					return
				}
				st.searchTimer = nil
				st.filter.SearchText = text
				st.applyFilters()
			})
		})
		st.searchTimer = timer
	})
}

// MergeLivePrices patches current_price of held and watchlist coins by
// lowercase symbol
func (s *Service) MergeLivePrices(ctx context.Context, prices map[string]float64) error {
	if len(prices) == 0 {
		return nil
	}
	return s.apply(ctx, func(st *state) {
		merged, updated := MergePrices(st.coins, prices)
		if updated > 0 {
			st.setCoins(merged, s.config.TrendingLimit, s.config.MoversLimit)
		}
		st.watchlist, _ = MergePrices(st.watchlist, prices)
		st.applyFilters()
	})
}

func (s *Service) subscribeLivePrices(ctx context.Context) {
	if s.deps.Poller == nil {
		return
	}
	sub := s.deps.Poller.Subscribe()

	s.mu.Lock()
	s.priceSub = sub
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case prices, ok := <-sub.C():
				if !ok {
					return
				}
				if err := s.MergeLivePrices(ctx, prices); err != nil && !errors.Is(err, ErrNotRunning) && ctx.Err() == nil {
					log.Printf("Aggregator: Failed to merge live prices: %v", err)
				}
			}
		}
	}()
}

func (s *Service) pushSymbols(coins []interfaces.Coin) {
	if s.deps.Poller == nil {
		return
	}
	symbols := make([]string, 0, len(coins))
	for _, coin := range coins {
		symbols = append(symbols, coin.LowerSymbol())
	}
	s.deps.Poller.SetSymbols(symbols)
}

func isCancelled(ctx context.Context, err error) bool {
	return ctx.Err() != nil || cg.IsCancellation(err)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

func nonNilCoins(coins []interfaces.Coin) []interfaces.Coin {
	if coins == nil {
		return []interfaces.Coin{}
	}
	return coins
}
