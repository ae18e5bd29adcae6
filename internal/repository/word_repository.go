package repository

import (
	"context"
	"errors"
	"fmt"

	"lexisnap/internal/middleware"
	"lexisnap/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WordRepository interface {
	Create(ctx context.Context, tx *gorm.DB, word *model.Word) error
	FindByID(ctx context.Context, db *gorm.DB, userID, wordID uuid.UUID) (*model.Word, error)
	FindByLemma(ctx context.Context, db *gorm.DB, userID uuid.UUID, lemma string) (*model.Word, error)
	FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID, limit int) ([]*model.Word, error)
	Update(ctx context.Context, tx *gorm.DB, userID, wordID uuid.UUID, updates map[string]interface{}) error
}

type gormWordRepository struct{}

func NewGormWordRepository() WordRepository {
	return &gormWordRepository{}
}

func (r *gormWordRepository) Create(ctx context.Context, tx *gorm.DB, word *model.Word) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(word)
	if result.Error != nil {
		logger.Error("Error creating word in DB",
			"error", result.Error,
			"user_id", word.UserID.String(),
			"lemma", word.Lemma,
		)
		return fmt.Errorf("gormWordRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormWordRepository) FindByID(ctx context.Context, db *gorm.DB, userID, wordID uuid.UUID) (*model.Word, error) {
	logger := middleware.GetLogger(ctx)
	var word model.Word
	result := db.WithContext(ctx).Preload("Metadata").Where("user_id = ? AND word_id = ?", userID, wordID).First(&word)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding word by ID in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"word_id", wordID.String(),
		)
		return nil, fmt.Errorf("gormWordRepository.FindByID: %w", result.Error)
	}
	return &word, nil
}

func (r *gormWordRepository) FindByLemma(ctx context.Context, db *gorm.DB, userID uuid.UUID, lemma string) (*model.Word, error) {
	logger := middleware.GetLogger(ctx)
	var word model.Word
	result := db.WithContext(ctx).Where("user_id = ? AND lemma = ?", userID, lemma).First(&word)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding word by lemma in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"lemma", lemma,
		)
		return nil, fmt.Errorf("gormWordRepository.FindByLemma: %w", result.Error)
	}
	return &word, nil
}

func (r *gormWordRepository) FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID, limit int) ([]*model.Word, error) {
	logger := middleware.GetLogger(ctx)
	var words []*model.Word
	query := db.WithContext(ctx).Preload("Metadata").Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	result := query.Find(&words)
	if result.Error != nil {
		logger.Error("Error finding words by user in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return nil, fmt.Errorf("gormWordRepository.FindByUser: %w", result.Error)
	}
	return words, nil
}

func (r *gormWordRepository) Update(ctx context.Context, tx *gorm.DB, userID, wordID uuid.UUID, updates map[string]interface{}) error {
	logger := middleware.GetLogger(ctx)
	if len(updates) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Model(&model.Word{}).Where("user_id = ? AND word_id = ?", userID, wordID).Updates(updates)
	if result.Error != nil {
		logger.Error("Error updating word in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"word_id", wordID.String(),
		)
		return fmt.Errorf("gormWordRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
