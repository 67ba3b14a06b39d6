package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tramper/internal/models/request_models"
	"tramper/internal/models/response_models"
	"tramper/internal/models/trip_models"
	"tramper/internal/services"
	"tramper/pkg/utils"
)

type SyncController struct {
	syncService services.SyncServiceInterface
	directions  services.DirectionsService
}

func NewSyncController(syncService services.SyncServiceInterface, directions services.DirectionsService) *SyncController {
	return &SyncController{
		syncService: syncService,
		directions:  directions,
	}
}

// GetState dumps the full server-side mirror. Clients treat it as
// authoritative per field when merging.
func (s *SyncController) GetState(c *gin.Context) {
	snap, err := s.syncService.Snapshot(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// ApplyAction handles the POST envelope: a named action plus its payload.
func (s *SyncController) ApplyAction(c *gin.Context) {
	var req request_models.SyncActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx := c.Request.Context()

	switch req.Action {
	case "import":
		var snapshot trip_models.Snapshot
		if err := json.Unmarshal(req.Data, &snapshot); err != nil {
			utils.HandleServiceError(c, utils.ErrInvalidPayload)
			return
		}
		if err := s.syncService.Import(ctx, snapshot); err != nil {
			utils.HandleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, response_models.ActionResponse{Success: true, Message: "Data imported successfully"})

	case "setVisited":
		var p request_models.SetVisitedPayload
		if err := json.Unmarshal(req.Data, &p); err != nil {
			utils.HandleServiceError(c, utils.ErrInvalidPayload)
			return
		}
		if err := s.syncService.SetVisited(ctx, p.LocationID, p.Visited); err != nil {
			utils.HandleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, response_models.ActionResponse{Success: true})

	case "setNote":
		var p request_models.SetNotePayload
		if err := json.Unmarshal(req.Data, &p); err != nil {
			utils.HandleServiceError(c, utils.ErrInvalidPayload)
			return
		}
		if err := s.syncService.SetNote(ctx, p.LocationID, p.Note); err != nil {
			utils.HandleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, response_models.ActionResponse{Success: true})

	case "setDayPlan":
		var plan trip_models.DayPlan
		if err := json.Unmarshal(req.Data, &plan); err != nil {
			utils.HandleServiceError(c, utils.ErrInvalidPayload)
			return
		}
		if err := s.syncService.SetDayPlan(ctx, plan); err != nil {
			utils.HandleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, response_models.ActionResponse{Success: true})

	case "addCustomActivity":
		var activity trip_models.CustomActivity
		if err := json.Unmarshal(req.Data, &activity); err != nil {
			utils.HandleServiceError(c, utils.ErrInvalidPayload)
			return
		}
		if err := s.syncService.AddCustomActivity(ctx, activity); err != nil {
			utils.HandleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, response_models.ActionResponse{Success: true})

	case "removeCustomActivity":
		var p request_models.RemoveCustomActivityPayload
		if err := json.Unmarshal(req.Data, &p); err != nil {
			utils.HandleServiceError(c, utils.ErrInvalidPayload)
			return
		}
		if err := s.syncService.RemoveCustomActivity(ctx, p.ActivityID); err != nil {
			utils.HandleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, response_models.ActionResponse{Success: true})

	case "setActivityEnrichment":
		var p request_models.SetActivityEnrichmentPayload
		if err := json.Unmarshal(req.Data, &p); err != nil {
			utils.HandleServiceError(c, utils.ErrInvalidPayload)
			return
		}
		if err := s.syncService.SetActivityEnrichment(ctx, p.ActivityID, p.Enrichment); err != nil {
			utils.HandleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, response_models.ActionResponse{Success: true})

	case "fetchDriveTime":
		var p request_models.FetchDriveTimePayload
		if err := json.Unmarshal(req.Data, &p); err != nil {
			utils.HandleServiceError(c, utils.ErrInvalidPayload)
			return
		}
		s.fetchDriveTime(c, p)

	default:
		utils.HandleServiceError(c, utils.ErrUnknownAction)
	}
}

// fetchDriveTime proxies to the directions API. Quota exhaustion is a
// successful response with limitReached set, not an HTTP error, so clients
// can latch without retry storms.
func (s *SyncController) fetchDriveTime(c *gin.Context, p request_models.FetchDriveTimePayload) {
	minutes, err := s.directions.DriveMinutes(c.Request.Context(), p.FromLat, p.FromLng, p.ToLat, p.ToLng)
	if err != nil {
		if errors.Is(err, utils.ErrRouteLimitReached) {
			c.JSON(http.StatusOK, response_models.DriveTimeResponse{
				Success:      false,
				DriveTime:    nil,
				LimitReached: true,
				Error:        "Drive time quota exhausted",
			})
			return
		}
		c.JSON(http.StatusOK, response_models.DriveTimeResponse{
			Success:   false,
			DriveTime: nil,
			Error:     "Failed to fetch drive time",
		})
		return
	}

	c.JSON(http.StatusOK, response_models.DriveTimeResponse{
		Success:   true,
		DriveTime: &minutes,
	})
}
