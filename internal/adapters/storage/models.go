package storage

import "time"

// DailyUsageModel is the GORM model for the daily_usage table
type DailyUsageModel struct {
	CacheReadTokens  int64 `gorm:"not null;default:0"`
	CacheWriteTokens int64 `gorm:"not null;default:0"`
	CreatedAt        time.Time
	Date             string    `gorm:"primaryKey;type:text"` // YYYY-MM-DD, sorts chronologically
	InputTokens      int64     `gorm:"not null;default:0"`
	LastUpdated      time.Time `gorm:"not null"`
	OutputTokens     int64     `gorm:"not null;default:0"`
	TokenCount       int64     `gorm:"not null;check:token_count >= 0"`
	TotalCost        float64   `gorm:"not null;default:0"`
}

// TableName specifies the table name for GORM
func (DailyUsageModel) TableName() string { return "daily_usage" }
