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

type MetadataRepository interface {
	Create(ctx context.Context, tx *gorm.DB, meta *model.WordMetadata) error
	FindByWordID(ctx context.Context, db *gorm.DB, wordID uuid.UUID) (*model.WordMetadata, error)
	Update(ctx context.Context, tx *gorm.DB, wordID uuid.UUID, updates map[string]interface{}) error
}

type gormMetadataRepository struct{}

func NewGormMetadataRepository() MetadataRepository {
	return &gormMetadataRepository{}
}

func (r *gormMetadataRepository) Create(ctx context.Context, tx *gorm.DB, meta *model.WordMetadata) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(meta)
	if result.Error != nil {
		logger.Error("Error creating word metadata in DB",
			"error", result.Error,
			"word_id", meta.WordID.String(),
		)
		return fmt.Errorf("gormMetadataRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormMetadataRepository) FindByWordID(ctx context.Context, db *gorm.DB, wordID uuid.UUID) (*model.WordMetadata, error) {
	logger := middleware.GetLogger(ctx)
	var meta model.WordMetadata
	result := db.WithContext(ctx).Where("word_id = ?", wordID).First(&meta)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding word metadata in DB",
			"error", result.Error,
			"word_id", wordID.String(),
		)
		return nil, fmt.Errorf("gormMetadataRepository.FindByWordID: %w", result.Error)
	}
	return &meta, nil
}

func (r *gormMetadataRepository) Update(ctx context.Context, tx *gorm.DB, wordID uuid.UUID, updates map[string]interface{}) error {
	logger := middleware.GetLogger(ctx)
	if len(updates) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Model(&model.WordMetadata{}).Where("word_id = ?", wordID).Updates(updates)
	if result.Error != nil {
		logger.Error("Error updating word metadata in DB",
			"error", result.Error,
			"word_id", wordID.String(),
		)
		return fmt.Errorf("gormMetadataRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
