package repository

import (
	"context"

	"statusworld/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines interface for comment operations. Comments are
// append-only, so there is no update or delete.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	ListByStatus(ctx context.Context, statusID uint, limit, offset int) ([]models.Comment, error)
	CountByStatus(ctx context.Context, statusID uint) (int64, error)
	// RecentCommentActivity lists the newest comments left by other users on
	// the author's statuses, using the comment's own author snapshot.
	RecentCommentActivity(ctx context.Context, authorID uint, limit int) ([]models.Activity, error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, models.NewNotFoundError("Comment", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &comment, nil
}

func (r *commentRepository) ListByStatus(ctx context.Context, statusID uint, limit, offset int) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Where("status_id = ?", statusID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&comments).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return comments, nil
}

func (r *commentRepository) RecentCommentActivity(ctx context.Context, authorID uint, limit int) ([]models.Activity, error) {
	var entries []models.Activity
	err := r.db.WithContext(ctx).
		Table("comments").
		Select(`comments.status_id, statuses.media_url, statuses.media_kind,
			comments.author_id AS actor_id, comments.author_name AS actor_name,
			comments.author_photo_url AS actor_photo_url, comments.text,
			comments.created_at`).
		Joins("JOIN statuses ON statuses.id = comments.status_id AND statuses.deleted_at IS NULL").
		Where("statuses.author_id = ? AND comments.author_id <> ? AND comments.deleted_at IS NULL",
			authorID, authorID).
		Order("comments.created_at DESC").
		Limit(limit).
		Scan(&entries).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	for i := range entries {
		entries[i].Type = models.ActivityComment
	}
	return entries, nil
}

func (r *commentRepository) CountByStatus(ctx context.Context, statusID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("status_id = ?", statusID).
		Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
