// pkg/mem/route_cache.go
package mem

import (
	"fmt"
	"sync"
	"time"
)

// RouteCacheStore remembers computed driving durations between coordinate
// pairs so the upstream directions API is hit at most once per pair per TTL.
type RouteCacheStore interface {
	Set(key string, minutes int, ttl time.Duration)

	// Get returns the cached duration for key if not expired.
	Get(key string) (int, bool)
}

type routeEntry struct {
	minutes   int
	expiresAt time.Time
}

type RouteCache struct {
	mu   sync.RWMutex
	data map[string]routeEntry
}

func NewRouteCache() *RouteCache {
	return &RouteCache{
		data: make(map[string]routeEntry),
	}
}

// RouteKey builds the directional cache key for a coordinate pair.
// A->B and B->A are distinct routes.
func RouteKey(fromLat, fromLng, toLat, toLng float64) string {
	return fmt.Sprintf("%v,%v->%v,%v", fromLat, fromLng, toLat, toLng)
}

func (s *RouteCache) Set(key string, minutes int, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = routeEntry{
		minutes:   minutes,
		expiresAt: time.Now().Add(ttl),
	}
}

func (s *RouteCache) Get(key string) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[key]
	if !ok || time.Now().After(e.expiresAt) {
		return 0, false
	}
	return e.minutes, true
}
