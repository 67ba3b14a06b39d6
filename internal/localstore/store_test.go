package localstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tramper/internal/models/trip_models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "trip.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

type recordingNotifier struct {
	actions  []string
	payloads []any
}

func (n *recordingNotifier) Notify(_ context.Context, action string, payload any) {
	n.actions = append(n.actions, action)
	n.payloads = append(n.payloads, payload)
}

func TestSetVisitedIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetVisited(ctx, "hobbiton", true))
	require.NoError(t, store.SetVisited(ctx, "hobbiton", true))

	state, err := store.VisitedState(ctx)
	require.NoError(t, err)
	assert.Equal(t, trip_models.VisitedState{"hobbiton": true}, state)
}

func TestToggleVisited(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	v, err := store.ToggleVisited(ctx, "hobbiton")
	require.NoError(t, err)
	assert.True(t, v)

	v, err = store.ToggleVisited(ctx, "hobbiton")
	require.NoError(t, err)
	assert.False(t, v)

	state, err := store.VisitedState(ctx)
	require.NoError(t, err)
	assert.False(t, state["hobbiton"])
}

func TestEmptyNoteDeletesEntry(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetNote(ctx, "hobbiton", "bring camera"))
	require.NoError(t, store.SetNote(ctx, "waitomo-caves", "book early"))

	require.NoError(t, store.SetNote(ctx, "hobbiton", ""))

	notes, err := store.NotesState(ctx)
	require.NoError(t, err)
	_, present := notes["hobbiton"]
	assert.False(t, present, "cleared note must be deleted, not stored empty")
	assert.Equal(t, "book early", notes["waitomo-caves"])
}

func TestDayPlans(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	plan := trip_models.DayPlan{
		Date:              "12/31",
		OrderedActivities: []string{"waitomo-caves", "hobbiton", "mitai-maori"},
		DepartureTime:     "08:30",
	}
	require.NoError(t, store.SetDayPlan(ctx, plan))

	// Overwriting the same date replaces the plan.
	plan.OrderedActivities = []string{"hobbiton", "waitomo-caves"}
	require.NoError(t, store.SetDayPlan(ctx, plan))

	plans, err := store.DayPlans(ctx)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, []string{"hobbiton", "waitomo-caves"}, plans["12/31"].OrderedActivities)
	assert.Equal(t, "08:30", plans["12/31"].DepartureTime)
}

func TestCustomActivities(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	a := trip_models.CustomActivity{
		ID:       "custom-1",
		Name:     "Fergburger",
		Lat:      -45.0312,
		Lng:      168.6626,
		Date:     "1/8",
		Category: trip_models.CustomCategory,
	}
	require.NoError(t, store.AddCustomActivity(ctx, a))

	activities, err := store.CustomActivities(ctx)
	require.NoError(t, err)
	require.Len(t, activities, 1)
	assert.Equal(t, "Fergburger", activities[0].Name)

	require.NoError(t, store.RemoveCustomActivity(ctx, "custom-1"))
	activities, err = store.CustomActivities(ctx)
	require.NoError(t, err)
	assert.Empty(t, activities)
}

func TestActivityEnrichments(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	enr := trip_models.ActivityEnrichment{
		Address:  "501 Buckland Rd, Hinuera",
		MapsLink: "https://maps.app.goo.gl/abc",
	}
	require.NoError(t, store.SetActivityEnrichment(ctx, "hobbiton", enr))

	enrichments, err := store.ActivityEnrichments(ctx)
	require.NoError(t, err)
	assert.Equal(t, enr, enrichments["hobbiton"])
}

func TestDriveTimeCachePersists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trip.db")
	ctx := context.Background()

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.SetDriveTime(ctx, "-37.87,175.68->-38.1,176.22", 55))
	require.NoError(t, store.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	cache, err := reopened.DriveTimes(ctx)
	require.NoError(t, err)
	assert.Equal(t, 55, cache["-37.87,175.68->-38.1,176.22"])
}

func TestNotifierCalledPerMutation(t *testing.T) {
	store := newTestStore(t)
	n := &recordingNotifier{}
	store.SetNotifier(n)
	ctx := context.Background()

	require.NoError(t, store.SetVisited(ctx, "hobbiton", true))
	require.NoError(t, store.SetNote(ctx, "hobbiton", "bring camera"))
	require.NoError(t, store.AddCustomActivity(ctx, trip_models.CustomActivity{ID: "custom-1", Name: "Fergburger", Category: trip_models.CustomCategory}))

	assert.Equal(t, []string{"setVisited", "setNote", "addCustomActivity"}, n.actions)

	// The custom activity payload must not carry the category tag.
	sent, ok := n.payloads[2].(trip_models.CustomActivity)
	require.True(t, ok)
	assert.Empty(t, sent.Category)
}

func TestMergeSettersSkipNotifier(t *testing.T) {
	store := newTestStore(t)
	n := &recordingNotifier{}
	store.SetNotifier(n)
	ctx := context.Background()

	require.NoError(t, store.ReplaceVisitedState(ctx, trip_models.VisitedState{"hobbiton": true}))
	require.NoError(t, store.ReplaceNotesState(ctx, trip_models.NotesState{"hobbiton": "x"}))

	assert.Empty(t, n.actions)
}

func TestGetMissingKeyYieldsDefault(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	visited, err := store.VisitedState(ctx)
	require.NoError(t, err)
	assert.Empty(t, visited)

	weather, err := store.CachedWeather(ctx)
	require.NoError(t, err)
	assert.Nil(t, weather)

	last, err := store.LastSync(ctx)
	require.NoError(t, err)
	assert.Zero(t, last)
}

func TestClearAll(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetVisited(ctx, "hobbiton", true))
	require.NoError(t, store.SetNote(ctx, "hobbiton", "note"))
	require.NoError(t, store.SetLastSync(ctx, 1234))

	require.NoError(t, store.ClearAll(ctx))

	visited, err := store.VisitedState(ctx)
	require.NoError(t, err)
	assert.Empty(t, visited)
	notes, err := store.NotesState(ctx)
	require.NoError(t, err)
	assert.Empty(t, notes)
	last, err := store.LastSync(ctx)
	require.NoError(t, err)
	assert.Zero(t, last)
}
