// Package drivetime resolves transit durations between itinerary points
// through a layered cache: curated static table, persisted cross-session
// cache, in-memory session cache, and finally a remote proxy call. The same
// pair is asked about by many rendered cards at once, so concurrent lookups
// for one pair share a single network call.
package drivetime

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"tramper/internal/localstore"
	"tramper/internal/models/request_models"
	"tramper/internal/models/response_models"
)

// Point is one end of a lookup: a location id (for the static table) plus
// raw coordinates (for everything past it).
type Point struct {
	ID  string
	Lat float64
	Lng float64
}

// StaticLookup answers curated named-pair drive times at zero cost.
type StaticLookup func(fromID, toID string) (int, bool)

// Resolver holds all session-scoped lookup state. One resolver lives for
// one app session; constructing a new one resets the failure memory and the
// rate-limit latch.
type Resolver struct {
	store    *localstore.Store
	static   StaticLookup
	endpoint string
	http     *http.Client

	session *gocache.Cache

	mu      sync.Mutex
	failed  map[string]struct{}
	latched bool

	flight   singleflight.Group
	seedOnce sync.Once
	seedErr  error
}

func NewResolver(store *localstore.Store, static StaticLookup, endpoint string, httpClient *http.Client) *Resolver {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Resolver{
		store:    store,
		static:   static,
		endpoint: endpoint,
		http:     httpClient,
		session:  gocache.New(gocache.NoExpiration, 0),
		failed:   make(map[string]struct{}),
	}
}

// PairKey is directional: A->B and B->A are distinct entries. Coordinates
// are not normalized; a cache hit past the static table requires an exact
// floating-point match.
func PairKey(from, to Point) string {
	return fmt.Sprintf("%v,%v->%v,%v", from.Lat, from.Lng, to.Lat, to.Lng)
}

// Resolve returns the drive time in minutes between two points, or ok=false
// when it is unknown. Unknown is a normal displayable state, never an error.
func (r *Resolver) Resolve(ctx context.Context, from, to Point) (int, bool) {
	if from.ID != "" && to.ID != "" {
		if minutes, ok := r.static(from.ID, to.ID); ok {
			return minutes, true
		}
	}

	// Seed the session cache from the persisted cache at most once per
	// session; concurrent callers block on the same load.
	r.seedOnce.Do(func() { r.seedErr = r.seed(ctx) })
	if r.seedErr != nil {
		log.Printf("Failed to load drive time cache: %v", r.seedErr)
	}

	key := PairKey(from, to)

	if v, ok := r.session.Get(key); ok {
		return v.(int), true
	}

	r.mu.Lock()
	_, failedBefore := r.failed[key]
	latched := r.latched
	r.mu.Unlock()
	if failedBefore || latched {
		return 0, false
	}

	v, err, _ := r.flight.Do(key, func() (any, error) {
		return r.fetch(ctx, key, from, to)
	})
	if err != nil || v == nil {
		return 0, false
	}
	return v.(int), true
}

func (r *Resolver) seed(ctx context.Context) error {
	persisted, err := r.store.DriveTimes(ctx)
	if err != nil {
		return err
	}
	for key, minutes := range persisted {
		r.session.Set(key, minutes, gocache.NoExpiration)
	}
	return nil
}

// fetch issues the remote proxy call. Returns (nil, nil) for an unknown
// drive time; the miss reason is recorded on the resolver.
func (r *Resolver) fetch(ctx context.Context, key string, from, to Point) (any, error) {
	payload := request_models.FetchDriveTimePayload{
		FromLat: from.Lat,
		FromLng: from.Lng,
		ToLat:   to.Lat,
		ToLng:   to.Lng,
	}
	body, err := json.Marshal(map[string]any{"action": "fetchDriveTime", "data": payload})
	if err != nil {
		r.markFailed(key)
		return nil, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		r.markFailed(key)
		return nil, nil
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.http.Do(req)
	if err != nil {
		log.Printf("Drive time lookup failed for %s: %v", key, err)
		r.markFailed(key)
		return nil, nil
	}
	defer resp.Body.Close()

	var result response_models.DriveTimeResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		r.markFailed(key)
		return nil, nil
	}

	if result.LimitReached {
		// Quota exhausted: stop asking for every pair this session, but do
		// not remember the pair as failed; a later session may retry it.
		r.mu.Lock()
		r.latched = true
		r.mu.Unlock()
		return nil, nil
	}
	if !result.Success || result.DriveTime == nil {
		r.markFailed(key)
		return nil, nil
	}

	minutes := *result.DriveTime
	r.session.Set(key, minutes, gocache.NoExpiration)
	if err := r.store.SetDriveTime(ctx, key, minutes); err != nil {
		log.Printf("Failed to persist drive time for %s: %v", key, err)
	}
	return minutes, nil
}

func (r *Resolver) markFailed(key string) {
	r.mu.Lock()
	r.failed[key] = struct{}{}
	r.mu.Unlock()
}
