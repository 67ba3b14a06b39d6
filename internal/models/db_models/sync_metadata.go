package db_models

// SyncMetadataEntry tracks bookkeeping values such as the last import time.
type SyncMetadataEntry struct {
	Key       string `gorm:"primaryKey"`
	Value     string `gorm:"not null"`
	UpdatedAt int64  `gorm:"autoUpdateTime"`
}

func (SyncMetadataEntry) TableName() string {
	return "sync_metadata"
}
