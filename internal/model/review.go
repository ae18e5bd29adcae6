package model

import (
	"time"

	"github.com/google/uuid"
)

// Review is the single active scheduling record for a word. There is no
// terminal state: every answer reschedules the word with a new due time.
type Review struct {
	ReviewID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"review_id"`
	WordID          uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex" json:"word_id"`
	UserID          uuid.UUID  `gorm:"type:uuid;not null;index" json:"-"`
	ScheduledAt     time.Time  `gorm:"not null" json:"scheduled_at"`
	LastReviewedAt  *time.Time `json:"last_reviewed_at,omitempty"`
	IntervalMinutes int        `gorm:"not null" json:"interval_minutes"`
	Easiness        float64    `gorm:"not null" json:"easiness"`
	NextDueAt       time.Time  `gorm:"not null;index" json:"next_due_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	// Preload association
	Word *Word `gorm:"foreignKey:WordID;references:WordID" json:"-"`
}

func (Review) TableName() string {
	return "reviews"
}

// ReviewLogEntry is an append-only history row, one per submitted answer.
type ReviewLogEntry struct {
	LogID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"log_id"`
	WordID          uuid.UUID `gorm:"type:uuid;not null;index" json:"word_id"`
	ReviewID        uuid.UUID `gorm:"type:uuid;not null;index" json:"review_id"`
	Outcome         string    `gorm:"not null" json:"outcome"` // canonical rating bucket
	Easiness        float64   `gorm:"not null" json:"easiness"`
	IntervalMinutes int       `gorm:"not null" json:"interval_minutes"`
	ReviewedAt      time.Time `gorm:"not null" json:"reviewed_at"`
}

func (ReviewLogEntry) TableName() string {
	return "review_logs"
}

// DueReviewResponse is one row of the due-review queue.
type DueReviewResponse struct {
	ReviewID     uuid.UUID `json:"review_id"`
	WordID       uuid.UUID `json:"word_id"`
	Lemma        string    `json:"lemma"`
	AudioURL     string    `json:"audio_url,omitempty"`
	EnDefinition string    `json:"en_definition,omitempty"`
	EnExample    string    `json:"en_example,omitempty"`
	ZhDefinition string    `json:"zh_definition,omitempty"`
	ZhExample    string    `json:"zh_example,omitempty"`
	NextDueAt    time.Time `json:"next_due_at"`
}

// SubmitReviewRequest carries the user's answer label for a due review.
type SubmitReviewRequest struct {
	Rating string `json:"rating" validate:"required"`
}

// ReviewResultResponse reports the scheduling outcome of an answer.
type ReviewResultResponse struct {
	ReviewID        uuid.UUID `json:"review_id"`
	WordID          uuid.UUID `json:"word_id"`
	Rating          string    `json:"rating"`
	IntervalMinutes int       `json:"interval_minutes"`
	Easiness        float64   `json:"easiness"`
	NextDueAt       time.Time `json:"next_due_at"`
}
