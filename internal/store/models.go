package store

import "time"

// QueryRecord is one analyzed question and the category it resolved to.
type QueryRecord struct {
	ID        uint   `gorm:"primaryKey"`
	Question  string `gorm:"type:text"`
	Category  string `gorm:"size:32;index"`
	CreatedAt time.Time
}
