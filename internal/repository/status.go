// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"
	"strings"

	"statusworld/internal/cache"
	"statusworld/internal/models"

	"gorm.io/gorm"
)

// StatusRepository defines the interface for status data operations
type StatusRepository interface {
	Create(ctx context.Context, status *models.Status) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Status, error)
	GetByAuthorID(ctx context.Context, authorID uint, limit, offset int, currentUserID uint) ([]models.Status, error)
	// ListSnapshot returns every non-deleted status newest-first, hidden and
	// expired included. Visibility filtering happens above this layer.
	ListSnapshot(ctx context.Context, currentUserID uint) ([]models.Status, error)
	Delete(ctx context.Context, id uint) error

	// RecentLikeActivity lists the newest likes left by other users on the
	// author's statuses, with the liker's current profile joined in.
	RecentLikeActivity(ctx context.Context, authorID uint, limit int) ([]models.Activity, error)

	IsLiked(ctx context.Context, userID, statusID uint) (bool, error)
	GetLikedStatusIDs(ctx context.Context, userID uint, statusIDs []uint) ([]uint, error)
	// Like inserts the like row and, only when a row was actually inserted,
	// bumps like_count. The two writes are sequential, not transactional.
	Like(ctx context.Context, userID, statusID uint) (bool, error)
	// Unlike removes the like row and, only when a row was actually removed,
	// drops like_count, flooring at zero.
	Unlike(ctx context.Context, userID, statusID uint) (bool, error)

	IncrementCommentCount(ctx context.Context, statusID uint) error
	IncrementViewCount(ctx context.Context, statusID uint) error
	SetViewCount(ctx context.Context, statusID uint, views int) error
	SetFeatured(ctx context.Context, statusID uint, featured bool) error
	SetHidden(ctx context.Context, statusID uint, hidden bool) error
}

// statusRepository implements StatusRepository
type statusRepository struct {
	db *gorm.DB
}

// NewStatusRepository creates a new status repository
func NewStatusRepository(db *gorm.DB) StatusRepository {
	return &statusRepository{db: db}
}

func (r *statusRepository) Create(ctx context.Context, status *models.Status) error {
	if err := r.db.WithContext(ctx).Create(status).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateFeed(ctx)
	return nil
}

func (r *statusRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Status, error) {
	var status models.Status
	key := cache.StatusKey(id)

	var err error
	if currentUserID == 0 {
		err = cache.Aside(ctx, key, &status, cache.StatusTTL, func() error {
			return r.db.WithContext(ctx).First(&status, id).Error
		})
	} else {
		err = r.db.WithContext(ctx).First(&status, id).Error
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Status", id)
		}
		return nil, models.NewInternalError(err)
	}

	status.Normalize()
	if currentUserID != 0 {
		liked, err := r.IsLiked(ctx, currentUserID, status.ID)
		if err != nil {
			return nil, err
		}
		status.Liked = liked
	}
	return &status, nil
}

func (r *statusRepository) GetByAuthorID(ctx context.Context, authorID uint, limit, offset int, currentUserID uint) ([]models.Status, error) {
	var statuses []models.Status
	err := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&statuses).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := r.enrichLiked(ctx, statuses, currentUserID); err != nil {
		return nil, err
	}
	return statuses, nil
}

func (r *statusRepository) ListSnapshot(ctx context.Context, currentUserID uint) ([]models.Status, error) {
	var statuses []models.Status
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&statuses).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := r.enrichLiked(ctx, statuses, currentUserID); err != nil {
		return nil, err
	}
	return statuses, nil
}

// enrichLiked normalizes each status and fills Liked from a single IN query.
func (r *statusRepository) enrichLiked(ctx context.Context, statuses []models.Status, currentUserID uint) error {
	for i := range statuses {
		statuses[i].Normalize()
	}
	if currentUserID == 0 || len(statuses) == 0 {
		return nil
	}

	ids := make([]uint, len(statuses))
	for i := range statuses {
		ids[i] = statuses[i].ID
	}
	likedIDs, err := r.GetLikedStatusIDs(ctx, currentUserID, ids)
	if err != nil {
		return err
	}
	likedSet := make(map[uint]struct{}, len(likedIDs))
	for _, id := range likedIDs {
		likedSet[id] = struct{}{}
	}
	for i := range statuses {
		_, statuses[i].Liked = likedSet[statuses[i].ID]
	}
	return nil
}

func (r *statusRepository) RecentLikeActivity(ctx context.Context, authorID uint, limit int) ([]models.Activity, error) {
	var entries []models.Activity
	err := r.db.WithContext(ctx).
		Table("likes").
		Select(`likes.status_id, statuses.media_url, statuses.media_kind,
			likes.user_id AS actor_id, users.display_name AS actor_name,
			users.photo_url AS actor_photo_url, likes.created_at`).
		Joins("JOIN statuses ON statuses.id = likes.status_id AND statuses.deleted_at IS NULL").
		Joins("JOIN users ON users.id = likes.user_id").
		Where("statuses.author_id = ? AND likes.user_id <> ?", authorID, authorID).
		Order("likes.created_at DESC").
		Limit(limit).
		Scan(&entries).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	for i := range entries {
		entries[i].Type = models.ActivityLike
	}
	return entries, nil
}

func (r *statusRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Status{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateStatus(ctx, id)
	return nil
}

func (r *statusRepository) IsLiked(ctx context.Context, userID, statusID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND status_id = ?", userID, statusID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *statusRepository) GetLikedStatusIDs(ctx context.Context, userID uint, statusIDs []uint) ([]uint, error) {
	if len(statusIDs) == 0 {
		return nil, nil
	}
	var likedIDs []uint
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND status_id IN ?", userID, statusIDs).
		Pluck("status_id", &likedIDs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return likedIDs, nil
}

func (r *statusRepository) Like(ctx context.Context, userID, statusID uint) (bool, error) {
	// INSERT ... ON CONFLICT DO NOTHING makes the sub-record write race-safe;
	// the counter bump only fires when this call actually created the row.
	result := r.db.WithContext(ctx).Exec(
		`INSERT INTO likes (user_id, status_id, created_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (user_id, status_id) DO NOTHING`,
		userID, statusID,
	)
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return false, nil
	}

	err := r.db.WithContext(ctx).
		Model(&models.Status{}).
		Where("id = ?", statusID).
		UpdateColumn("like_count", gorm.Expr("like_count + 1")).Error
	if err != nil {
		// The like row exists but the counter missed the bump. Left as-is:
		// counters are advisory and never recomputed.
		return true, models.NewInternalError(err)
	}
	cache.InvalidateStatus(ctx, statusID)
	return true, nil
}

func (r *statusRepository) Unlike(ctx context.Context, userID, statusID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND status_id = ?", userID, statusID).
		Delete(&models.Like{})
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return false, nil
	}

	err := r.db.WithContext(ctx).
		Model(&models.Status{}).
		Where("id = ?", statusID).
		UpdateColumn("like_count", gorm.Expr("CASE WHEN like_count > 0 THEN like_count - 1 ELSE 0 END")).Error
	if err != nil {
		return true, models.NewInternalError(err)
	}
	cache.InvalidateStatus(ctx, statusID)
	return true, nil
}

func (r *statusRepository) IncrementCommentCount(ctx context.Context, statusID uint) error {
	err := r.db.WithContext(ctx).
		Model(&models.Status{}).
		Where("id = ?", statusID).
		UpdateColumn("comment_count", gorm.Expr("comment_count + 1")).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateStatus(ctx, statusID)
	return nil
}

func (r *statusRepository) IncrementViewCount(ctx context.Context, statusID uint) error {
	err := r.db.WithContext(ctx).
		Model(&models.Status{}).
		Where("id = ?", statusID).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateStatus(ctx, statusID)
	return nil
}

// SetViewCount overwrites the counter with an absolute value. Unlike the
// increments, this is a direct admin edit.
func (r *statusRepository) SetViewCount(ctx context.Context, statusID uint, views int) error {
	return r.updateFlag(ctx, statusID, "view_count", views)
}

func (r *statusRepository) SetFeatured(ctx context.Context, statusID uint, featured bool) error {
	return r.updateFlag(ctx, statusID, "featured", featured)
}

func (r *statusRepository) SetHidden(ctx context.Context, statusID uint, hidden bool) error {
	return r.updateFlag(ctx, statusID, "hidden", hidden)
}

func (r *statusRepository) updateFlag(ctx context.Context, statusID uint, column string, value any) error {
	result := r.db.WithContext(ctx).
		Model(&models.Status{}).
		Where("id = ?", statusID).
		UpdateColumn(column, value)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Status", statusID)
	}
	cache.InvalidateStatus(ctx, statusID)
	return nil
}

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	// PostgreSQL unique violation SQLSTATE 23505
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}
