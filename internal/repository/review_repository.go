package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lexisnap/internal/middleware"
	"lexisnap/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(ctx context.Context, tx *gorm.DB, review *model.Review) error
	FindByID(ctx context.Context, db *gorm.DB, reviewID uuid.UUID) (*model.Review, error)
	FindByWordID(ctx context.Context, db *gorm.DB, wordID uuid.UUID) (*model.Review, error)
	FindDueByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID, now time.Time, limit int) ([]*model.Review, error)
	Update(ctx context.Context, tx *gorm.DB, review *model.Review) error
	AppendLog(ctx context.Context, tx *gorm.DB, entry *model.ReviewLogEntry) error
}

type gormReviewRepository struct{}

func NewGormReviewRepository() ReviewRepository {
	return &gormReviewRepository{}
}

func (r *gormReviewRepository) Create(ctx context.Context, tx *gorm.DB, review *model.Review) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(review)
	if result.Error != nil {
		logger.Error("Error creating review in DB",
			"error", result.Error,
			"word_id", review.WordID.String(),
		)
		return fmt.Errorf("gormReviewRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormReviewRepository) FindByID(ctx context.Context, db *gorm.DB, reviewID uuid.UUID) (*model.Review, error) {
	var review model.Review
	result := db.WithContext(ctx).Preload("Word").Where("review_id = ?", reviewID).First(&review)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormReviewRepository.FindByID: %w", result.Error)
	}
	return &review, nil
}

func (r *gormReviewRepository) FindByWordID(ctx context.Context, db *gorm.DB, wordID uuid.UUID) (*model.Review, error) {
	var review model.Review
	result := db.WithContext(ctx).Where("word_id = ?", wordID).First(&review)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormReviewRepository.FindByWordID: %w", result.Error)
	}
	return &review, nil
}

// FindDueByUser returns reviews due at or before now, earliest first.
// A NULL next_due_at counts as immediately due for rows imported from
// elsewhere; the application itself always writes the column.
func (r *gormReviewRepository) FindDueByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID, now time.Time, limit int) ([]*model.Review, error) {
	var reviews []*model.Review
	result := db.WithContext(ctx).
		Preload("Word.Metadata").
		Preload("Word").
		Where("user_id = ? AND (next_due_at IS NULL OR next_due_at <= ?)", userID, now).
		Order("next_due_at ASC").
		Limit(limit).
		Find(&reviews)
	if result.Error != nil {
		return nil, fmt.Errorf("gormReviewRepository.FindDueByUser: %w", result.Error)
	}
	return reviews, nil
}

func (r *gormReviewRepository) Update(ctx context.Context, tx *gorm.DB, review *model.Review) error {
	result := tx.WithContext(ctx).Save(review)
	if result.Error != nil {
		return fmt.Errorf("gormReviewRepository.Update: %w", result.Error)
	}
	return nil
}

func (r *gormReviewRepository) AppendLog(ctx context.Context, tx *gorm.DB, entry *model.ReviewLogEntry) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(entry)
	if result.Error != nil {
		logger.Error("Error appending review log in DB",
			"error", result.Error,
			"review_id", entry.ReviewID.String(),
		)
		return fmt.Errorf("gormReviewRepository.AppendLog: %w", result.Error)
	}
	return nil
}
