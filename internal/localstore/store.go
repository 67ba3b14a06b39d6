// Package localstore is the device-local source of truth for all mutable
// trip state. It is a small key-value store over a single SQLite file:
// every key holds one JSON composite (a whole map or list), and mutations
// are read-modify-write of that composite, serialized by a store mutex.
package localstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"tramper/internal/models/trip_models"
)

// Storage keys. Each is an independent unit of read/write granularity.
const (
	KeyVisited             = "trip-visited"
	KeyNotes               = "trip-notes"
	KeyDayPlans            = "trip-day-plans"
	KeyWeatherCache        = "trip-weather-cache"
	KeyCustomActivities    = "trip-custom-activities"
	KeyActivityEnrichments = "trip-activity-enrichments"
	KeyDriveTimes          = "trip-drive-times"
	KeyLastSync            = "trip-last-sync"
)

// Notifier receives a best-effort notification after a local mutation has
// committed. Implementations must swallow failures; the local store stays
// authoritative for this device whatever the network does.
type Notifier interface {
	Notify(ctx context.Context, action string, payload any)
}

// Store wraps the device database. The mutex serializes composite
// read-modify-write cycles so interleaved mutations cannot drop each
// other's writes.
type Store struct {
	db       *sql.DB
	mu       sync.Mutex
	notifier Notifier
}

// Open opens or creates the device database at the given path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TEXT NOT NULL DEFAULT (datetime('now'))
	);
	`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// SetNotifier attaches the sync notifier. A nil notifier disables
// notifications (useful for merges and tests).
func (s *Store) SetNotifier(n Notifier) {
	s.notifier = n
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Get decodes the composite stored under key into out. A missing key leaves
// out at its zero value and is not an error.
func (s *Store) Get(ctx context.Context, key string, out any) error {
	var raw string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("get %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

// Set stores value under key, last write wins.
func (s *Store) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, datetime('now'))
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(raw))
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM kv WHERE key = ?", key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (s *Store) notify(ctx context.Context, action string, payload any) {
	if s.notifier != nil {
		s.notifier.Notify(ctx, action, payload)
	}
}

// Visited locations

func (s *Store) VisitedState(ctx context.Context) (trip_models.VisitedState, error) {
	state := trip_models.VisitedState{}
	if err := s.Get(ctx, KeyVisited, &state); err != nil {
		return nil, err
	}
	return state, nil
}

func (s *Store) SetVisited(ctx context.Context, locationID string, visited bool) error {
	s.mu.Lock()
	err := s.setVisitedLocked(ctx, locationID, visited)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.notify(ctx, "setVisited", map[string]any{"locationId": locationID, "visited": visited})
	return nil
}

// ToggleVisited flips the flag and returns the new value.
func (s *Store) ToggleVisited(ctx context.Context, locationID string) (bool, error) {
	s.mu.Lock()
	state, err := s.VisitedState(ctx)
	if err != nil {
		s.mu.Unlock()
		return false, err
	}
	newValue := !state[locationID]
	err = s.setVisitedLocked(ctx, locationID, newValue)
	s.mu.Unlock()
	if err != nil {
		return false, err
	}
	s.notify(ctx, "setVisited", map[string]any{"locationId": locationID, "visited": newValue})
	return newValue, nil
}

func (s *Store) setVisitedLocked(ctx context.Context, locationID string, visited bool) error {
	state, err := s.VisitedState(ctx)
	if err != nil {
		return err
	}
	state[locationID] = visited
	return s.Set(ctx, KeyVisited, state)
}

// Notes

func (s *Store) NotesState(ctx context.Context) (trip_models.NotesState, error) {
	state := trip_models.NotesState{}
	if err := s.Get(ctx, KeyNotes, &state); err != nil {
		return nil, err
	}
	return state, nil
}

// SetNote stores a note for a location. An empty note deletes the entry so
// cleared notes do not accumulate.
func (s *Store) SetNote(ctx context.Context, locationID string, note string) error {
	s.mu.Lock()
	state, err := s.NotesState(ctx)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if note == "" {
		delete(state, locationID)
	} else {
		state[locationID] = note
	}
	err = s.Set(ctx, KeyNotes, state)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.notify(ctx, "setNote", map[string]any{"locationId": locationID, "note": note})
	return nil
}

// Day plans

func (s *Store) DayPlans(ctx context.Context) (map[string]trip_models.DayPlan, error) {
	plans := map[string]trip_models.DayPlan{}
	if err := s.Get(ctx, KeyDayPlans, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

func (s *Store) SetDayPlan(ctx context.Context, plan trip_models.DayPlan) error {
	s.mu.Lock()
	plans, err := s.DayPlans(ctx)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	plans[plan.Date] = plan
	err = s.Set(ctx, KeyDayPlans, plans)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.notify(ctx, "setDayPlan", plan)
	return nil
}

// Custom activities

func (s *Store) CustomActivities(ctx context.Context) ([]trip_models.CustomActivity, error) {
	activities := []trip_models.CustomActivity{}
	if err := s.Get(ctx, KeyCustomActivities, &activities); err != nil {
		return nil, err
	}
	return activities, nil
}

func (s *Store) AddCustomActivity(ctx context.Context, activity trip_models.CustomActivity) error {
	s.mu.Lock()
	activities, err := s.CustomActivities(ctx)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	activities = append(activities, activity)
	err = s.Set(ctx, KeyCustomActivities, activities)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	// The server copy does not carry the category tag.
	serverCopy := activity
	serverCopy.Category = ""
	s.notify(ctx, "addCustomActivity", serverCopy)
	return nil
}

func (s *Store) RemoveCustomActivity(ctx context.Context, activityID string) error {
	s.mu.Lock()
	activities, err := s.CustomActivities(ctx)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	filtered := activities[:0]
	for _, a := range activities {
		if a.ID != activityID {
			filtered = append(filtered, a)
		}
	}
	err = s.Set(ctx, KeyCustomActivities, filtered)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.notify(ctx, "removeCustomActivity", map[string]any{"activityId": activityID})
	return nil
}

// Activity enrichments

func (s *Store) ActivityEnrichments(ctx context.Context) (trip_models.ActivityEnrichments, error) {
	enrichments := trip_models.ActivityEnrichments{}
	if err := s.Get(ctx, KeyActivityEnrichments, &enrichments); err != nil {
		return nil, err
	}
	return enrichments, nil
}

func (s *Store) SetActivityEnrichment(ctx context.Context, activityID string, enrichment trip_models.ActivityEnrichment) error {
	s.mu.Lock()
	enrichments, err := s.ActivityEnrichments(ctx)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	enrichments[activityID] = enrichment
	err = s.Set(ctx, KeyActivityEnrichments, enrichments)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.notify(ctx, "setActivityEnrichment", map[string]any{"activityId": activityID, "enrichment": enrichment})
	return nil
}

// Weather cache

func (s *Store) CachedWeather(ctx context.Context) (*trip_models.WeatherCache, error) {
	var cache *trip_models.WeatherCache
	if err := s.Get(ctx, KeyWeatherCache, &cache); err != nil {
		return nil, err
	}
	return cache, nil
}

func (s *Store) SetCachedWeather(ctx context.Context, data trip_models.WeatherData) error {
	return s.Set(ctx, KeyWeatherCache, trip_models.WeatherCache{
		Data:      data,
		Timestamp: time.Now().UnixMilli(),
	})
}

func (s *Store) ClearWeatherCache(ctx context.Context) error {
	return s.Delete(ctx, KeyWeatherCache)
}

// Drive-time cache. Entries are permanent once learned; drive times between
// fixed points do not change.

func (s *Store) DriveTimes(ctx context.Context) (trip_models.DriveTimeCache, error) {
	cache := trip_models.DriveTimeCache{}
	if err := s.Get(ctx, KeyDriveTimes, &cache); err != nil {
		return nil, err
	}
	return cache, nil
}

func (s *Store) SetDriveTime(ctx context.Context, pairKey string, minutes int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cache, err := s.DriveTimes(ctx)
	if err != nil {
		return err
	}
	cache[pairKey] = minutes
	return s.Set(ctx, KeyDriveTimes, cache)
}

// Sync metadata

func (s *Store) LastSync(ctx context.Context) (int64, error) {
	var millis int64
	if err := s.Get(ctx, KeyLastSync, &millis); err != nil {
		return 0, err
	}
	return millis, nil
}

func (s *Store) SetLastSync(ctx context.Context, millis int64) error {
	return s.Set(ctx, KeyLastSync, millis)
}

// Replace-whole-composite setters used by sync merges. These bypass the
// notifier: a merge echoes remote state, it is not a new local mutation.

func (s *Store) ReplaceVisitedState(ctx context.Context, state trip_models.VisitedState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Set(ctx, KeyVisited, state)
}

func (s *Store) ReplaceNotesState(ctx context.Context, state trip_models.NotesState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Set(ctx, KeyNotes, state)
}

func (s *Store) ReplaceDayPlans(ctx context.Context, plans map[string]trip_models.DayPlan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Set(ctx, KeyDayPlans, plans)
}

func (s *Store) ReplaceCustomActivities(ctx context.Context, activities []trip_models.CustomActivity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Set(ctx, KeyCustomActivities, activities)
}

func (s *Store) ReplaceActivityEnrichments(ctx context.Context, enrichments trip_models.ActivityEnrichments) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Set(ctx, KeyActivityEnrichments, enrichments)
}

// ClearAll wipes every trip key. Full reset is the only deletion path for
// visited state.
func (s *Store) ClearAll(ctx context.Context) error {
	for _, key := range []string{
		KeyVisited, KeyNotes, KeyDayPlans, KeyWeatherCache,
		KeyCustomActivities, KeyActivityEnrichments, KeyDriveTimes, KeyLastSync,
	} {
		if err := s.Delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}
