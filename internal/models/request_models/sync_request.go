package request_models

import (
	"encoding/json"

	"tramper/internal/models/trip_models"
)

// SyncActionRequest is the POST envelope: data is decoded per action.
type SyncActionRequest struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data"`
}

type SetVisitedPayload struct {
	LocationID string `json:"locationId"`
	Visited    bool   `json:"visited"`
}

type SetNotePayload struct {
	LocationID string `json:"locationId"`
	Note       string `json:"note"`
}

type RemoveCustomActivityPayload struct {
	ActivityID string `json:"activityId"`
}

type SetActivityEnrichmentPayload struct {
	ActivityID string                         `json:"activityId"`
	Enrichment trip_models.ActivityEnrichment `json:"enrichment"`
}

type FetchDriveTimePayload struct {
	FromLat float64 `json:"fromLat"`
	FromLng float64 `json:"fromLng"`
	ToLat   float64 `json:"toLat"`
	ToLng   float64 `json:"toLng"`
}

type MapsLinkRequest struct {
	URL string `json:"url"`
}
