package repository

import (
	"context"
	"errors"

	"statusworld/internal/models"

	"gorm.io/gorm"
)

// MediaRepository defines storage operations for uploaded media records.
type MediaRepository interface {
	Create(ctx context.Context, media *models.Media) error
	GetByHash(ctx context.Context, hash string) (*models.Media, error)
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Media, error)
}

type mediaRepository struct {
	db *gorm.DB
}

// NewMediaRepository returns a repository implementation for media metadata.
func NewMediaRepository(db *gorm.DB) MediaRepository {
	return &mediaRepository{db: db}
}

func (r *mediaRepository) Create(ctx context.Context, media *models.Media) error {
	if err := r.db.WithContext(ctx).Create(media).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError("Media already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *mediaRepository) GetByHash(ctx context.Context, hash string) (*models.Media, error) {
	var media models.Media
	if err := r.db.WithContext(ctx).Where("hash = ?", hash).First(&media).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &media, nil
}

func (r *mediaRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Media, error) {
	var items []models.Media
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return items, nil
}
