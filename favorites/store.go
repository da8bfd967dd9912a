package favorites

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/status-im/market-aggregator/cache"
)

// Store is the favorite coin id set, persisted as a sorted JSON array
type Store struct {
	store cache.Store

	mu  sync.RWMutex
	ids map[string]struct{}
}

func NewStore(store cache.Store) *Store {
	return &Store{
		store: store,
		ids:   make(map[string]struct{}),
	}
}

// Start implements core.Interface by loading the persisted set
func (s *Store) Start(ctx context.Context) error {
	return s.Load(ctx)
}

// Stop implements core.Interface
func (s *Store) Stop() {}

// Load replaces the in-memory set with the persisted one. A missing entry
// is an empty set.
func (s *Store) Load(ctx context.Context) error {
	ids, found, err := cache.GetJSON[[]string](ctx, s.store, cache.FavoritesKey)
	if err != nil {
		return fmt.Errorf("failed to load favorites: %w", err)
	}

	set := make(map[string]struct{}, len(ids))
	if found {
		for _, id := range ids {
			if id = normalize(id); id != "" {
				set[id] = struct{}{}
			}
		}
	}

	s.mu.Lock()
	s.ids = set
	s.mu.Unlock()

	log.Printf("Favorites: Loaded %d favorites", len(set))
	return nil
}

// Toggle adds or removes id and reports whether it is now a favorite
func (s *Store) Toggle(ctx context.Context, id string) (bool, error) {
	id = normalize(id)
	if id == "" {
		return false, fmt.Errorf("empty coin id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, isFavorite := s.ids[id]
	if isFavorite {
		delete(s.ids, id)
	} else {
		s.ids[id] = struct{}{}
	}

	if err := s.persistLocked(ctx); err != nil {
		// keep memory and storage in agreement
		if isFavorite {
			s.ids[id] = struct{}{}
		} else {
			delete(s.ids, id)
		}
		return isFavorite, err
	}
	return !isFavorite, nil
}

// Remove drops id from the set; removing a missing id is a no-op
func (s *Store) Remove(ctx context.Context, id string) error {
	id = normalize(id)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ids[id]; !ok {
		return nil
	}
	delete(s.ids, id)
	if err := s.persistLocked(ctx); err != nil {
		s.ids[id] = struct{}{}
		return err
	}
	return nil
}

func (s *Store) IsFavorite(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.ids[normalize(id)]
	return ok
}

// GetAllIDs returns the favorite ids sorted
func (s *Store) GetAllIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedLocked()
}

func (s *Store) sortedLocked() []string {
	ids := make([]string, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (s *Store) persistLocked(ctx context.Context) error {
	if err := cache.SetJSON(ctx, s.store, cache.FavoritesKey, s.sortedLocked()); err != nil {
		return fmt.Errorf("failed to save favorites: %w", err)
	}
	return nil
}

func normalize(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
