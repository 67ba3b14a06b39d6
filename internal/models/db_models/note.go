package db_models

type LocationNote struct {
	LocationID string `gorm:"primaryKey"`
	Note       string `gorm:"not null"`
	UpdatedAt  int64  `gorm:"autoUpdateTime"`
}

func (LocationNote) TableName() string {
	return "location_notes"
}
