package model

import "github.com/google/uuid"

// DailyStat accumulates per-day counters for one user. Rows are upserted
// additively and never overwritten.
type DailyStat struct {
	UserID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	Day              string    `gorm:"primaryKey;size:10" json:"day"` // YYYY-MM-DD
	NewWords         int       `gorm:"not null;default:0" json:"new_words"`
	ReviewsCompleted int       `gorm:"not null;default:0" json:"reviews_completed"`
}

func (DailyStat) TableName() string {
	return "daily_stats"
}

// DailyStatResponse is one day of activity. Days without activity are
// absent from range results; clients treat missing days as zero.
type DailyStatResponse struct {
	Day              string `json:"day"`
	NewWords         int    `json:"new_words"`
	ReviewsCompleted int    `json:"reviews_completed"`
}
