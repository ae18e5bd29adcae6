package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lexisnap/internal/config"
	"lexisnap/internal/middleware"
	"lexisnap/internal/model"
	"lexisnap/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReviewService interface {
	ScheduleInitialReview(ctx context.Context, userID, wordID uuid.UUID, now time.Time) (*model.Review, error)
	GetDueReviews(ctx context.Context, userID uuid.UUID, limit int, now time.Time) ([]*model.DueReviewResponse, error)
	SubmitReviewResult(ctx context.Context, userID, reviewID uuid.UUID, rating string, now time.Time) (*model.ReviewResultResponse, error)
}

type reviewService struct {
	db         *gorm.DB
	reviewRepo repository.ReviewRepository
	statsRepo  repository.StatsRepository
	cfg        *config.Config
}

func NewReviewService(db *gorm.DB, reviewRepo repository.ReviewRepository, statsRepo repository.StatsRepository, cfg *config.Config) ReviewService {
	return &reviewService{
		db:         db,
		reviewRepo: reviewRepo,
		statsRepo:  statsRepo,
		cfg:        cfg,
	}
}

func statDay(t time.Time) string {
	return t.UTC().Format(time.DateOnly)
}

// ScheduleInitialReview creates the scheduling record for a newly ingested
// word and counts it as a new word for the day. Re-ingesting an already
// scheduled word is a no-op and does not touch the counters.
func (s *reviewService) ScheduleInitialReview(ctx context.Context, userID, wordID uuid.UUID, now time.Time) (*model.Review, error) {
	logger := middleware.GetLogger(ctx)

	var scheduled *model.Review
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.reviewRepo.FindByWordID(ctx, tx, wordID)
		if err == nil {
			scheduled = existing
			return nil
		}
		if !errors.Is(err, model.ErrNotFound) {
			return fmt.Errorf("reviewRepo.FindByWordID: %w", err)
		}

		review := &model.Review{
			ReviewID:        uuid.New(),
			WordID:          wordID,
			UserID:          userID,
			ScheduledAt:     now,
			IntervalMinutes: initialIntervalMinutes,
			Easiness:        initialEasiness,
			NextDueAt:       now.Add(initialIntervalMinutes * time.Minute),
		}
		if err := s.reviewRepo.Create(ctx, tx, review); err != nil {
			return fmt.Errorf("reviewRepo.Create: %w", err)
		}
		if err := s.statsRepo.Increment(ctx, tx, userID, statDay(now), 1, 0); err != nil {
			return fmt.Errorf("statsRepo.Increment: %w", err)
		}
		scheduled = review
		return nil
	})
	if err != nil {
		logger.Error("Failed to schedule initial review",
			"error", err,
			"word_id", wordID.String(),
		)
		return nil, err
	}
	return scheduled, nil
}

// GetDueReviews returns the user's queue of reviews due at or before now,
// earliest first. A non-positive limit falls back to the configured default.
func (s *reviewService) GetDueReviews(ctx context.Context, userID uuid.UUID, limit int, now time.Time) ([]*model.DueReviewResponse, error) {
	logger := middleware.GetLogger(ctx)

	if limit <= 0 {
		limit = s.cfg.App.ReviewLimit
	}

	reviews, err := s.reviewRepo.FindDueByUser(ctx, s.db, userID, now, limit)
	if err != nil {
		logger.Error("Failed to fetch due reviews", "error", err, "user_id", userID.String())
		return nil, err
	}

	responses := make([]*model.DueReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		if review.Word == nil {
			logger.Warn("Due review references a missing word, skipping",
				"review_id", review.ReviewID.String(),
				"word_id", review.WordID.String(),
			)
			continue
		}
		item := &model.DueReviewResponse{
			ReviewID:  review.ReviewID,
			WordID:    review.WordID,
			Lemma:     review.Word.Lemma,
			AudioURL:  review.Word.AudioURL,
			NextDueAt: review.NextDueAt,
		}
		if meta := review.Word.Metadata; meta != nil {
			item.EnDefinition = meta.EnDefinition
			item.EnExample = meta.EnExample
			item.ZhDefinition = meta.ZhDefinition
			item.ZhExample = meta.ZhExample
		}
		responses = append(responses, item)
	}
	return responses, nil
}

// SubmitReviewResult applies one answer to a review: it normalizes the
// rating, reschedules the review, appends a history row and bumps the daily
// counter, all in a single transaction.
func (s *reviewService) SubmitReviewResult(ctx context.Context, userID, reviewID uuid.UUID, rating string, now time.Time) (*model.ReviewResultResponse, error) {
	logger := middleware.GetLogger(ctx)

	bucket, err := normalizeRating(rating)
	if err != nil {
		return nil, err
	}

	var response *model.ReviewResultResponse
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		review, err := s.reviewRepo.FindByID(ctx, tx, reviewID)
		if err != nil {
			return err
		}
		// Another user's review is indistinguishable from a missing one.
		if review.UserID != userID {
			return model.ErrNotFound
		}

		prevInterval := review.IntervalMinutes
		if prevInterval <= 0 {
			prevInterval = initialIntervalMinutes
		}
		prevEasiness := review.Easiness
		if prevEasiness == 0 {
			prevEasiness = initialEasiness
		}

		interval, easiness := nextSchedule(prevInterval, prevEasiness, bucket)
		reviewedAt := now

		review.LastReviewedAt = &reviewedAt
		review.IntervalMinutes = interval
		review.Easiness = easiness
		review.NextDueAt = now.Add(time.Duration(interval) * time.Minute)
		if err := s.reviewRepo.Update(ctx, tx, review); err != nil {
			return err
		}

		entry := &model.ReviewLogEntry{
			LogID:           uuid.New(),
			WordID:          review.WordID,
			ReviewID:        review.ReviewID,
			Outcome:         bucket,
			Easiness:        easiness,
			IntervalMinutes: interval,
			ReviewedAt:      reviewedAt,
		}
		if err := s.reviewRepo.AppendLog(ctx, tx, entry); err != nil {
			return err
		}
		if err := s.statsRepo.Increment(ctx, tx, userID, statDay(now), 0, 1); err != nil {
			return err
		}

		response = &model.ReviewResultResponse{
			ReviewID:        review.ReviewID,
			WordID:          review.WordID,
			Rating:          bucket,
			IntervalMinutes: interval,
			Easiness:        easiness,
			NextDueAt:       review.NextDueAt,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) || errors.Is(err, model.ErrUnsupportedRating) {
			return nil, err
		}
		logger.Error("Failed to record review result",
			"error", err,
			"review_id", reviewID.String(),
		)
		return nil, err
	}
	return response, nil
}
