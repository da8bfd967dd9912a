package interfaces

// CacheStatus tells where the data currently served came from
type CacheStatus string

const (
	// CacheStatusLive data comes from the last successful fetch
	CacheStatusLive CacheStatus = "live"
	// CacheStatusHit data was seeded from a persisted cache entry
	CacheStatusHit CacheStatus = "hit"
	// CacheStatusStale the last refresh failed and previous data is kept
	CacheStatusStale CacheStatus = "stale"
	// CacheStatusMiss nothing has been loaded yet
	CacheStatusMiss CacheStatus = "miss"
)

func (cs CacheStatus) String() string {
	return string(cs)
}
