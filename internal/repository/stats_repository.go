package repository

import (
	"context"
	"fmt"

	"lexisnap/internal/middleware"
	"lexisnap/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StatsRepository interface {
	Increment(ctx context.Context, tx *gorm.DB, userID uuid.UUID, day string, newWordsDelta, reviewsDelta int) error
	FindRange(ctx context.Context, db *gorm.DB, userID uuid.UUID, start, end string) ([]*model.DailyStat, error)
}

type gormStatsRepository struct{}

func NewGormStatsRepository() StatsRepository {
	return &gormStatsRepository{}
}

// Increment upserts the (user, day) row, accumulating counters rather than
// overwriting them.
func (r *gormStatsRepository) Increment(ctx context.Context, tx *gorm.DB, userID uuid.UUID, day string, newWordsDelta, reviewsDelta int) error {
	logger := middleware.GetLogger(ctx)
	stat := &model.DailyStat{
		UserID:           userID,
		Day:              day,
		NewWords:         newWordsDelta,
		ReviewsCompleted: reviewsDelta,
	}
	result := tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "day"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"new_words":         gorm.Expr("daily_stats.new_words + ?", newWordsDelta),
			"reviews_completed": gorm.Expr("daily_stats.reviews_completed + ?", reviewsDelta),
		}),
	}).Create(stat)
	if result.Error != nil {
		logger.Error("Error incrementing daily stats in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"day", day,
		)
		return fmt.Errorf("gormStatsRepository.Increment: %w", result.Error)
	}
	return nil
}

func (r *gormStatsRepository) FindRange(ctx context.Context, db *gorm.DB, userID uuid.UUID, start, end string) ([]*model.DailyStat, error) {
	var stats []*model.DailyStat
	result := db.WithContext(ctx).
		Where("user_id = ? AND day BETWEEN ? AND ?", userID, start, end).
		Order("day ASC").
		Find(&stats)
	if result.Error != nil {
		return nil, fmt.Errorf("gormStatsRepository.FindRange: %w", result.Error)
	}
	return stats, nil
}
