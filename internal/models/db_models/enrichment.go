package db_models

import "gorm.io/datatypes"

type ActivityEnrichmentRecord struct {
	ActivityID string         `gorm:"primaryKey"`
	Enrichment datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
	UpdatedAt  int64          `gorm:"autoUpdateTime"`
}

func (ActivityEnrichmentRecord) TableName() string {
	return "activity_enrichments"
}
