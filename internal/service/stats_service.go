package service

import (
	"context"
	"time"

	"lexisnap/internal/middleware"
	"lexisnap/internal/model"
	"lexisnap/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StatsService interface {
	// Summarize returns per-day activity within [start, end], both inclusive
	// YYYY-MM-DD dates. Days without activity are omitted.
	Summarize(ctx context.Context, userID uuid.UUID, start, end string) ([]*model.DailyStatResponse, error)
}

type statsService struct {
	db        *gorm.DB
	statsRepo repository.StatsRepository
}

func NewStatsService(db *gorm.DB, statsRepo repository.StatsRepository) StatsService {
	return &statsService{db: db, statsRepo: statsRepo}
}

func (s *statsService) Summarize(ctx context.Context, userID uuid.UUID, start, end string) ([]*model.DailyStatResponse, error) {
	logger := middleware.GetLogger(ctx)

	startDay, err := time.Parse(time.DateOnly, start)
	if err != nil {
		return nil, model.NewAppError("VALIDATION_ERROR", "start must be a YYYY-MM-DD date", "start", model.ErrInvalidInput)
	}
	endDay, err := time.Parse(time.DateOnly, end)
	if err != nil {
		return nil, model.NewAppError("VALIDATION_ERROR", "end must be a YYYY-MM-DD date", "end", model.ErrInvalidInput)
	}
	if endDay.Before(startDay) {
		return nil, model.NewAppError("VALIDATION_ERROR", "end must not be before start", "end", model.ErrInvalidInput)
	}

	stats, err := s.statsRepo.FindRange(ctx, s.db, userID, start, end)
	if err != nil {
		logger.Error("Failed to load daily stats", "error", err, "user_id", userID.String())
		return nil, err
	}

	responses := make([]*model.DailyStatResponse, 0, len(stats))
	for _, stat := range stats {
		responses = append(responses, &model.DailyStatResponse{
			Day:              stat.Day,
			NewWords:         stat.NewWords,
			ReviewsCompleted: stat.ReviewsCompleted,
		})
	}
	return responses, nil
}
