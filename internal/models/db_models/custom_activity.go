package db_models

type CustomActivityRecord struct {
	ID        string `gorm:"primaryKey"`
	Name      string `gorm:"not null"`
	Lat       float64
	Lng       float64
	Date      string
	Address   *string
	CreatedAt int64 `gorm:"autoCreateTime"`
}

func (CustomActivityRecord) TableName() string {
	return "custom_activities"
}
