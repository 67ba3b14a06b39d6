package services

import (
	"context"
	"log"

	"tramper/internal/models/trip_models"
	"tramper/internal/repositories"
	"tramper/pkg/utils"
)

type SyncServiceInterface interface {
	Snapshot(ctx context.Context) (*trip_models.Snapshot, error)
	Import(ctx context.Context, snapshot trip_models.Snapshot) error
	SetVisited(ctx context.Context, locationID string, visited bool) error
	SetNote(ctx context.Context, locationID string, note string) error
	SetDayPlan(ctx context.Context, plan trip_models.DayPlan) error
	AddCustomActivity(ctx context.Context, activity trip_models.CustomActivity) error
	RemoveCustomActivity(ctx context.Context, activityID string) error
	SetActivityEnrichment(ctx context.Context, activityID string, enrichment trip_models.ActivityEnrichment) error
}

type SyncService struct {
	syncRepo repositories.SyncRepository
}

func NewSyncService(syncRepo repositories.SyncRepository) SyncServiceInterface {
	return &SyncService{syncRepo: syncRepo}
}

func (s *SyncService) Snapshot(ctx context.Context) (*trip_models.Snapshot, error) {
	snap, err := s.syncRepo.Snapshot(ctx)
	if err != nil {
		log.Printf("Error fetching sync snapshot: %v", err)
		return nil, utils.ErrDatabaseError
	}
	return snap, nil
}

func (s *SyncService) Import(ctx context.Context, snapshot trip_models.Snapshot) error {
	if err := s.syncRepo.Import(ctx, snapshot); err != nil {
		log.Printf("Error importing snapshot: %v", err)
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *SyncService) SetVisited(ctx context.Context, locationID string, visited bool) error {
	if locationID == "" {
		return utils.ErrInvalidPayload
	}
	if err := s.syncRepo.SetVisited(ctx, locationID, visited); err != nil {
		log.Printf("Error setting visited for %s: %v", locationID, err)
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *SyncService) SetNote(ctx context.Context, locationID string, note string) error {
	if locationID == "" {
		return utils.ErrInvalidPayload
	}
	if err := s.syncRepo.SetNote(ctx, locationID, note); err != nil {
		log.Printf("Error setting note for %s: %v", locationID, err)
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *SyncService) SetDayPlan(ctx context.Context, plan trip_models.DayPlan) error {
	if plan.Date == "" {
		return utils.ErrInvalidPayload
	}
	if err := s.syncRepo.SetDayPlan(ctx, plan); err != nil {
		log.Printf("Error setting day plan for %s: %v", plan.Date, err)
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *SyncService) AddCustomActivity(ctx context.Context, activity trip_models.CustomActivity) error {
	if activity.ID == "" || activity.Name == "" {
		return utils.ErrInvalidPayload
	}
	if err := s.syncRepo.UpsertCustomActivity(ctx, activity); err != nil {
		log.Printf("Error adding custom activity %s: %v", activity.ID, err)
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *SyncService) RemoveCustomActivity(ctx context.Context, activityID string) error {
	if activityID == "" {
		return utils.ErrInvalidPayload
	}
	if err := s.syncRepo.RemoveCustomActivity(ctx, activityID); err != nil {
		log.Printf("Error removing custom activity %s: %v", activityID, err)
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *SyncService) SetActivityEnrichment(ctx context.Context, activityID string, enrichment trip_models.ActivityEnrichment) error {
	if activityID == "" {
		return utils.ErrInvalidPayload
	}
	if err := s.syncRepo.SetActivityEnrichment(ctx, activityID, enrichment); err != nil {
		log.Printf("Error setting enrichment for %s: %v", activityID, err)
		return utils.ErrDatabaseError
	}
	return nil
}
