// Package syncclient propagates local mutations to the remote sync store
// and reconciles remote state back into the local store. Sync is advisory:
// every failure path resolves to a false outcome, never an error, and the
// local store stays authoritative for this device.
//
// Conflict handling is last-writer-wins per field. The server keeps no
// per-field timestamps, so when two devices edit the same field between a
// pull and the next push, the later push silently wins.
package syncclient

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"

	"tramper/internal/localstore"
	"tramper/internal/models/trip_models"
	"tramper/pkg/utils"
)

type Client struct {
	store    *localstore.Store
	endpoint string
	http     *http.Client
}

func New(store *localstore.Store, endpoint string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		store:    store,
		endpoint: endpoint,
		http:     httpClient,
	}
}

// Notify implements localstore.Notifier: one fire-and-forget POST per local
// mutation, issued after the local write has committed. The boolean is for
// tests and status indicators; callers in the mutation path ignore it.
func (c *Client) Notify(ctx context.Context, action string, payload any) {
	c.post(ctx, action, payload)
}

func (c *Client) post(ctx context.Context, action string, payload any) bool {
	body, err := json.Marshal(map[string]any{"action": action, "data": payload})
	if err != nil {
		log.Printf("Failed to encode sync action %s: %v", action, err)
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		log.Printf("Failed to build sync request: %v", err)
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		log.Printf("Failed to sync to server: %v", err)
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode/100 == 2
}

// Pull fetches the server dump and merges it into local state. Remote values
// win for keys present on both sides; keys present only locally survive.
// Returns false on any network or parse failure, in which case local state
// is untouched.
func (c *Client) Pull(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		log.Printf("Failed to pull from server: %v", err)
		return false
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return false
	}

	var remote trip_models.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&remote); err != nil {
		log.Printf("Failed to decode server state: %v", err)
		return false
	}

	if err := c.merge(ctx, remote); err != nil {
		log.Printf("Failed to merge server state: %v", err)
		return false
	}

	if err := c.store.SetLastSync(ctx, utils.NowUnixMillis()); err != nil {
		log.Printf("Failed to record sync time: %v", err)
	}
	return true
}

func (c *Client) merge(ctx context.Context, remote trip_models.Snapshot) error {
	if len(remote.Visited) > 0 {
		local, err := c.store.VisitedState(ctx)
		if err != nil {
			return err
		}
		for id, v := range remote.Visited {
			local[id] = v
		}
		if err := c.store.ReplaceVisitedState(ctx, local); err != nil {
			return err
		}
	}

	if len(remote.Notes) > 0 {
		local, err := c.store.NotesState(ctx)
		if err != nil {
			return err
		}
		for id, note := range remote.Notes {
			local[id] = note
		}
		if err := c.store.ReplaceNotesState(ctx, local); err != nil {
			return err
		}
	}

	if len(remote.DayPlans) > 0 {
		local, err := c.store.DayPlans(ctx)
		if err != nil {
			return err
		}
		for date, plan := range remote.DayPlans {
			local[date] = plan
		}
		if err := c.store.ReplaceDayPlans(ctx, local); err != nil {
			return err
		}
	}

	if len(remote.CustomActivities) > 0 {
		local, err := c.store.CustomActivities(ctx)
		if err != nil {
			return err
		}
		// Merge by id, remote replacing local; keep first-seen order.
		index := make(map[string]int, len(local))
		merged := make([]trip_models.CustomActivity, len(local))
		copy(merged, local)
		for i, a := range merged {
			index[a.ID] = i
		}
		for _, a := range remote.CustomActivities {
			a.Category = trip_models.CustomCategory
			if i, ok := index[a.ID]; ok {
				merged[i] = a
			} else {
				index[a.ID] = len(merged)
				merged = append(merged, a)
			}
		}
		if err := c.store.ReplaceCustomActivities(ctx, merged); err != nil {
			return err
		}
	}

	if len(remote.ActivityEnrichments) > 0 {
		local, err := c.store.ActivityEnrichments(ctx)
		if err != nil {
			return err
		}
		for id, e := range remote.ActivityEnrichments {
			local[id] = e
		}
		if err := c.store.ReplaceActivityEnrichments(ctx, local); err != nil {
			return err
		}
	}

	return nil
}

// Push sends the whole local state as an import action. True only on a
// confirmed 2xx.
func (c *Client) Push(ctx context.Context) bool {
	visited, err := c.store.VisitedState(ctx)
	if err != nil {
		log.Printf("Failed to read local state for push: %v", err)
		return false
	}
	notes, err := c.store.NotesState(ctx)
	if err != nil {
		log.Printf("Failed to read local state for push: %v", err)
		return false
	}
	plans, err := c.store.DayPlans(ctx)
	if err != nil {
		log.Printf("Failed to read local state for push: %v", err)
		return false
	}
	activities, err := c.store.CustomActivities(ctx)
	if err != nil {
		log.Printf("Failed to read local state for push: %v", err)
		return false
	}
	enrichments, err := c.store.ActivityEnrichments(ctx)
	if err != nil {
		log.Printf("Failed to read local state for push: %v", err)
		return false
	}

	// The server copy of custom activities has no category tag.
	serverActivities := make([]trip_models.CustomActivity, 0, len(activities))
	for _, a := range activities {
		a.Category = ""
		serverActivities = append(serverActivities, a)
	}

	ok := c.post(ctx, "import", trip_models.Snapshot{
		Visited:             visited,
		Notes:               notes,
		DayPlans:            plans,
		CustomActivities:    serverActivities,
		ActivityEnrichments: enrichments,
	})
	if !ok {
		return false
	}

	if err := c.store.SetLastSync(ctx, utils.NowUnixMillis()); err != nil {
		log.Printf("Failed to record sync time: %v", err)
	}
	return true
}

// FullSync pulls, then pushes local state only if the pull succeeded. A push
// after a failed pull would write back a stale view as the import source of
// truth, so the push is skipped instead.
func (c *Client) FullSync(ctx context.Context) bool {
	if !c.Pull(ctx) {
		return false
	}
	c.Push(ctx)
	return true
}
