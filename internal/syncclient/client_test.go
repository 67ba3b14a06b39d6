package syncclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tramper/internal/localstore"
	"tramper/internal/models/trip_models"
)

// fakeSyncServer is an in-memory implementation of the sync wire contract,
// standing in for the real postgres-backed endpoint.
type fakeSyncServer struct {
	mu    sync.Mutex
	state trip_models.Snapshot

	imports int
	actions []string
}

func newFakeSyncServer() *fakeSyncServer {
	return &fakeSyncServer{
		state: trip_models.Snapshot{
			Visited:             trip_models.VisitedState{},
			Notes:               trip_models.NotesState{},
			DayPlans:            map[string]trip_models.DayPlan{},
			ActivityEnrichments: trip_models.ActivityEnrichments{},
		},
	}
}

func (f *fakeSyncServer) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		if r.Method == http.MethodGet {
			_ = json.NewEncoder(w).Encode(f.state)
			return
		}

		var req struct {
			Action string          `json:"action"`
			Data   json.RawMessage `json:"data"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		f.actions = append(f.actions, req.Action)

		switch req.Action {
		case "import":
			f.imports++
			var snap trip_models.Snapshot
			_ = json.Unmarshal(req.Data, &snap)
			for id, v := range snap.Visited {
				f.state.Visited[id] = v
			}
			for id, n := range snap.Notes {
				if n == "" {
					delete(f.state.Notes, id)
					continue
				}
				f.state.Notes[id] = n
			}
			for date, p := range snap.DayPlans {
				f.state.DayPlans[date] = p
			}
			for _, a := range snap.CustomActivities {
				replaced := false
				for i := range f.state.CustomActivities {
					if f.state.CustomActivities[i].ID == a.ID {
						f.state.CustomActivities[i] = a
						replaced = true
						break
					}
				}
				if !replaced {
					f.state.CustomActivities = append(f.state.CustomActivities, a)
				}
			}
			for id, e := range snap.ActivityEnrichments {
				f.state.ActivityEnrichments[id] = e
			}
		case "setVisited":
			var p struct {
				LocationID string `json:"locationId"`
				Visited    bool   `json:"visited"`
			}
			_ = json.Unmarshal(req.Data, &p)
			f.state.Visited[p.LocationID] = p.Visited
		case "setNote":
			var p struct {
				LocationID string `json:"locationId"`
				Note       string `json:"note"`
			}
			_ = json.Unmarshal(req.Data, &p)
			if p.Note == "" {
				delete(f.state.Notes, p.LocationID)
			} else {
				f.state.Notes[p.LocationID] = p.Note
			}
		}

		_ = json.NewEncoder(w).Encode(map[string]bool{"success": true})
	})
}

func newTestStore(t *testing.T) *localstore.Store {
	t.Helper()
	store, err := localstore.Open(filepath.Join(t.TempDir(), "trip.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestPullMergePrecedence(t *testing.T) {
	server := newFakeSyncServer()
	server.state.Notes = trip_models.NotesState{"b": "3", "c": "4"}
	ts := httptest.NewServer(server.handler())
	defer ts.Close()

	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.ReplaceNotesState(ctx, trip_models.NotesState{"a": "1", "b": "2"}))

	client := New(store, ts.URL, nil)
	require.True(t, client.Pull(ctx))

	notes, err := store.NotesState(ctx)
	require.NoError(t, err)
	assert.Equal(t, trip_models.NotesState{"a": "1", "b": "3", "c": "4"}, notes)

	last, err := store.LastSync(ctx)
	require.NoError(t, err)
	assert.NotZero(t, last)
}

func TestPullEmptyCategoryLeavesLocal(t *testing.T) {
	server := newFakeSyncServer()
	ts := httptest.NewServer(server.handler())
	defer ts.Close()

	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.ReplaceVisitedState(ctx, trip_models.VisitedState{"hobbiton": true}))

	client := New(store, ts.URL, nil)
	require.True(t, client.Pull(ctx))

	visited, err := store.VisitedState(ctx)
	require.NoError(t, err)
	assert.Equal(t, trip_models.VisitedState{"hobbiton": true}, visited)
}

func TestPullFailureLeavesStateUntouched(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.SetVisited(ctx, "hobbiton", true))

	client := New(store, ts.URL, nil)
	assert.False(t, client.Pull(ctx))

	visited, err := store.VisitedState(ctx)
	require.NoError(t, err)
	assert.Equal(t, trip_models.VisitedState{"hobbiton": true}, visited)

	last, err := store.LastSync(ctx)
	require.NoError(t, err)
	assert.Zero(t, last, "failed pull must not record a sync time")
}

func TestPullGarbageBodyFails(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer ts.Close()

	store := newTestStore(t)
	client := New(store, ts.URL, nil)
	assert.False(t, client.Pull(context.Background()))
}

func TestPushPullRoundTrip(t *testing.T) {
	server := newFakeSyncServer()
	ts := httptest.NewServer(server.handler())
	defer ts.Close()

	ctx := context.Background()

	device1 := newTestStore(t)
	require.NoError(t, device1.SetVisited(ctx, "hobbiton", true))
	require.NoError(t, device1.SetNote(ctx, "waitomo-caves", "book early"))
	require.NoError(t, device1.SetDayPlan(ctx, trip_models.DayPlan{
		Date:              "12/31",
		OrderedActivities: []string{"waitomo-caves", "hobbiton"},
		DepartureTime:     "08:00",
	}))
	require.NoError(t, device1.AddCustomActivity(ctx, trip_models.CustomActivity{
		ID: "custom-1", Name: "Fergburger", Lat: -45.0312, Lng: 168.6626, Date: "1/8",
		Category: trip_models.CustomCategory,
	}))
	require.NoError(t, device1.SetActivityEnrichment(ctx, "hobbiton", trip_models.ActivityEnrichment{Address: "501 Buckland Rd"}))

	require.True(t, New(device1, ts.URL, nil).Push(ctx))

	device2 := newTestStore(t)
	require.True(t, New(device2, ts.URL, nil).Pull(ctx))

	visited, err := device2.VisitedState(ctx)
	require.NoError(t, err)
	assert.Equal(t, trip_models.VisitedState{"hobbiton": true}, visited)

	notes, err := device2.NotesState(ctx)
	require.NoError(t, err)
	assert.Equal(t, trip_models.NotesState{"waitomo-caves": "book early"}, notes)

	plans, err := device2.DayPlans(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"waitomo-caves", "hobbiton"}, plans["12/31"].OrderedActivities)

	activities, err := device2.CustomActivities(ctx)
	require.NoError(t, err)
	require.Len(t, activities, 1)
	assert.Equal(t, "Fergburger", activities[0].Name)
	assert.Equal(t, trip_models.CustomCategory, activities[0].Category, "pulled custom activities are re-tagged")

	enrichments, err := device2.ActivityEnrichments(ctx)
	require.NoError(t, err)
	assert.Equal(t, "501 Buckland Rd", enrichments["hobbiton"].Address)
}

// Device 1 toggles hobbiton visited; device 2 pushes a note for it. After
// device 1 pulls, the visited flag survives (remote had no visited data)
// and the note arrives.
func TestTwoDeviceScenario(t *testing.T) {
	server := newFakeSyncServer()
	ts := httptest.NewServer(server.handler())
	defer ts.Close()

	ctx := context.Background()

	device1 := newTestStore(t)
	require.NoError(t, device1.SetVisited(ctx, "hobbiton", true))

	device2 := newTestStore(t)
	require.NoError(t, device2.SetNote(ctx, "hobbiton", "bring camera"))
	require.True(t, New(device2, ts.URL, nil).Push(ctx))

	require.True(t, New(device1, ts.URL, nil).Pull(ctx))

	visited, err := device1.VisitedState(ctx)
	require.NoError(t, err)
	assert.True(t, visited["hobbiton"])

	notes, err := device1.NotesState(ctx)
	require.NoError(t, err)
	assert.Equal(t, "bring camera", notes["hobbiton"])
}

func TestFullSyncSkipsPushAfterFailedPull(t *testing.T) {
	server := newFakeSyncServer()
	var failGET bool
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet && failGET {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		server.handler().ServeHTTP(w, r)
	}))
	defer ts.Close()

	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.SetVisited(ctx, "hobbiton", true))

	client := New(store, ts.URL, nil)

	failGET = true
	assert.False(t, client.FullSync(ctx))
	assert.Zero(t, server.imports, "stale local view must not be pushed after a failed pull")

	failGET = false
	assert.True(t, client.FullSync(ctx))
	assert.Equal(t, 1, server.imports)
}

func TestNotifyIsFireAndForget(t *testing.T) {
	store := newTestStore(t)
	client := New(store, "http://127.0.0.1:1/sync", nil)

	// Unreachable endpoint: Notify must neither panic nor error out.
	client.Notify(context.Background(), "setVisited", map[string]any{"locationId": "hobbiton", "visited": true})
}

func TestStoreNotifiesThroughClient(t *testing.T) {
	server := newFakeSyncServer()
	ts := httptest.NewServer(server.handler())
	defer ts.Close()

	store := newTestStore(t)
	store.SetNotifier(New(store, ts.URL, nil))
	ctx := context.Background()

	require.NoError(t, store.SetVisited(ctx, "hobbiton", true))
	require.NoError(t, store.SetNote(ctx, "hobbiton", "bring camera"))

	server.mu.Lock()
	defer server.mu.Unlock()
	assert.Equal(t, []string{"setVisited", "setNote"}, server.actions)
	assert.True(t, server.state.Visited["hobbiton"])
	assert.Equal(t, "bring camera", server.state.Notes["hobbiton"])
}
