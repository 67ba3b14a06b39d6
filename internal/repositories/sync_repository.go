package repositories

import (
	"context"
	"encoding/json"
	"strconv"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tramper/internal/models/db_models"
	"tramper/internal/models/trip_models"
	"tramper/pkg/utils"
)

const lastImportKey = "last_import"

type SyncRepository interface {
	Snapshot(ctx context.Context) (*trip_models.Snapshot, error)

	SetVisited(ctx context.Context, locationID string, visited bool) error
	SetNote(ctx context.Context, locationID string, note string) error
	SetDayPlan(ctx context.Context, plan trip_models.DayPlan) error
	UpsertCustomActivity(ctx context.Context, activity trip_models.CustomActivity) error
	RemoveCustomActivity(ctx context.Context, activityID string) error
	SetActivityEnrichment(ctx context.Context, activityID string, enrichment trip_models.ActivityEnrichment) error

	// Import applies a full client snapshot in one transaction with
	// upsert semantics; rows absent from the snapshot are left alone.
	Import(ctx context.Context, snapshot trip_models.Snapshot) error
}

type syncRepository struct {
	db *gorm.DB
}

func NewSyncRepository(db *gorm.DB) SyncRepository {
	return &syncRepository{db: db}
}

func (r *syncRepository) Snapshot(ctx context.Context) (*trip_models.Snapshot, error) {
	snap := &trip_models.Snapshot{
		Visited:             trip_models.VisitedState{},
		Notes:               trip_models.NotesState{},
		DayPlans:            map[string]trip_models.DayPlan{},
		CustomActivities:    []trip_models.CustomActivity{},
		ActivityEnrichments: trip_models.ActivityEnrichments{},
	}

	var visited []db_models.VisitedLocation
	if err := r.db.WithContext(ctx).Find(&visited).Error; err != nil {
		return nil, err
	}
	for _, v := range visited {
		snap.Visited[v.LocationID] = v.Visited
	}

	var notes []db_models.LocationNote
	if err := r.db.WithContext(ctx).Find(&notes).Error; err != nil {
		return nil, err
	}
	for _, n := range notes {
		snap.Notes[n.LocationID] = n.Note
	}

	var plans []db_models.DayPlanRecord
	if err := r.db.WithContext(ctx).Find(&plans).Error; err != nil {
		return nil, err
	}
	for _, p := range plans {
		plan := trip_models.DayPlan{
			Date:              p.Date,
			OrderedActivities: append([]string{}, p.OrderedActivities...),
		}
		if p.DepartureTime != nil {
			plan.DepartureTime = *p.DepartureTime
		}
		snap.DayPlans[p.Date] = plan
	}

	var activities []db_models.CustomActivityRecord
	if err := r.db.WithContext(ctx).Find(&activities).Error; err != nil {
		return nil, err
	}
	for _, a := range activities {
		act := trip_models.CustomActivity{
			ID:   a.ID,
			Name: a.Name,
			Lat:  a.Lat,
			Lng:  a.Lng,
			Date: a.Date,
		}
		if a.Address != nil {
			act.Address = *a.Address
		}
		snap.CustomActivities = append(snap.CustomActivities, act)
	}

	var enrichments []db_models.ActivityEnrichmentRecord
	if err := r.db.WithContext(ctx).Find(&enrichments).Error; err != nil {
		return nil, err
	}
	for _, e := range enrichments {
		var enr trip_models.ActivityEnrichment
		if err := json.Unmarshal(e.Enrichment, &enr); err != nil {
			continue
		}
		snap.ActivityEnrichments[e.ActivityID] = enr
	}

	return snap, nil
}

func (r *syncRepository) SetVisited(ctx context.Context, locationID string, visited bool) error {
	return r.setVisitedTx(r.db.WithContext(ctx), locationID, visited)
}

func (r *syncRepository) setVisitedTx(tx *gorm.DB, locationID string, visited bool) error {
	row := db_models.VisitedLocation{LocationID: locationID, Visited: visited}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "location_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"visited", "updated_at"}),
	}).Create(&row).Error
}

func (r *syncRepository) SetNote(ctx context.Context, locationID string, note string) error {
	return r.setNoteTx(r.db.WithContext(ctx), locationID, note)
}

// An empty note removes the row rather than storing an empty string.
func (r *syncRepository) setNoteTx(tx *gorm.DB, locationID string, note string) error {
	if note == "" {
		return tx.Delete(&db_models.LocationNote{}, "location_id = ?", locationID).Error
	}
	row := db_models.LocationNote{LocationID: locationID, Note: note}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "location_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"note", "updated_at"}),
	}).Create(&row).Error
}

func (r *syncRepository) SetDayPlan(ctx context.Context, plan trip_models.DayPlan) error {
	return r.setDayPlanTx(r.db.WithContext(ctx), plan)
}

func (r *syncRepository) setDayPlanTx(tx *gorm.DB, plan trip_models.DayPlan) error {
	row := db_models.DayPlanRecord{
		Date:              plan.Date,
		OrderedActivities: append([]string{}, plan.OrderedActivities...),
	}
	if plan.DepartureTime != "" {
		row.DepartureTime = &plan.DepartureTime
	}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"ordered_activities", "departure_time", "updated_at"}),
	}).Create(&row).Error
}

func (r *syncRepository) UpsertCustomActivity(ctx context.Context, activity trip_models.CustomActivity) error {
	return r.upsertCustomActivityTx(r.db.WithContext(ctx), activity)
}

func (r *syncRepository) upsertCustomActivityTx(tx *gorm.DB, activity trip_models.CustomActivity) error {
	row := db_models.CustomActivityRecord{
		ID:   activity.ID,
		Name: activity.Name,
		Lat:  activity.Lat,
		Lng:  activity.Lng,
		Date: activity.Date,
	}
	if activity.Address != "" {
		row.Address = &activity.Address
	}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "lat", "lng", "date", "address"}),
	}).Create(&row).Error
}

func (r *syncRepository) RemoveCustomActivity(ctx context.Context, activityID string) error {
	err := r.db.WithContext(ctx).Delete(&db_models.CustomActivityRecord{}, "id = ?", activityID).Error
	return err
}

func (r *syncRepository) SetActivityEnrichment(ctx context.Context, activityID string, enrichment trip_models.ActivityEnrichment) error {
	return r.setActivityEnrichmentTx(r.db.WithContext(ctx), activityID, enrichment)
}

func (r *syncRepository) setActivityEnrichmentTx(tx *gorm.DB, activityID string, enrichment trip_models.ActivityEnrichment) error {
	raw, err := json.Marshal(enrichment)
	if err != nil {
		return err
	}
	row := db_models.ActivityEnrichmentRecord{ActivityID: activityID, Enrichment: raw}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "activity_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"enrichment", "updated_at"}),
	}).Create(&row).Error
}

func (r *syncRepository) Import(ctx context.Context, snapshot trip_models.Snapshot) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for locationID, visited := range snapshot.Visited {
			if err := r.setVisitedTx(tx, locationID, visited); err != nil {
				return err
			}
		}
		for locationID, note := range snapshot.Notes {
			if err := r.setNoteTx(tx, locationID, note); err != nil {
				return err
			}
		}
		for _, plan := range snapshot.DayPlans {
			if err := r.setDayPlanTx(tx, plan); err != nil {
				return err
			}
		}
		for _, activity := range snapshot.CustomActivities {
			if err := r.upsertCustomActivityTx(tx, activity); err != nil {
				return err
			}
		}
		for activityID, enrichment := range snapshot.ActivityEnrichments {
			if err := r.setActivityEnrichmentTx(tx, activityID, enrichment); err != nil {
				return err
			}
		}

		meta := db_models.SyncMetadataEntry{
			Key:   lastImportKey,
			Value: strconv.FormatInt(utils.NowUnixMillis(), 10),
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).Create(&meta).Error
	})
}
