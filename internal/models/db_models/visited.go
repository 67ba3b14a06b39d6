package db_models

type VisitedLocation struct {
	LocationID string `gorm:"primaryKey"`
	Visited    bool   `gorm:"not null;default:false"`
	UpdatedAt  int64  `gorm:"autoUpdateTime"`
}

func (VisitedLocation) TableName() string {
	return "visited_locations"
}
