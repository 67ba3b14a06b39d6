package db_models

import "github.com/lib/pq"

type DayPlanRecord struct {
	Date              string         `gorm:"primaryKey"`
	OrderedActivities pq.StringArray `gorm:"type:text[]"`
	DepartureTime     *string
	UpdatedAt         int64 `gorm:"autoUpdateTime"`
}

func (DayPlanRecord) TableName() string {
	return "day_plans"
}
