package service

import (
	"context"

	"statusworld/internal/models"
	"statusworld/internal/repository"

	"gorm.io/gorm"
)

// FeedStats aggregates counters for the admin dashboard.
type FeedStats struct {
	TotalStatuses int64 `json:"total_statuses"`
	TotalViews    int64 `json:"total_views"`
	TotalLikes    int64 `json:"total_likes"`
	TotalComments int64 `json:"total_comments"`
	FeaturedCount int64 `json:"featured_count"`
	HiddenCount   int64 `json:"hidden_count"`
	TotalUsers    int64 `json:"total_users"`
	BannedUsers   int64 `json:"banned_users"`
}

// ModerationService provides admin moderation logic. Stats aggregation reads
// the DB directly; everything else goes through the repositories.
type ModerationService struct {
	db         *gorm.DB
	statusRepo repository.StatusRepository
	userRepo   repository.UserRepository
}

// NewModerationService returns a new ModerationService.
func NewModerationService(db *gorm.DB, statusRepo repository.StatusRepository, userRepo repository.UserRepository) *ModerationService {
	return &ModerationService{db: db, statusRepo: statusRepo, userRepo: userRepo}
}

// SetFeatured flips the featured flag. Featured and hidden are independent;
// a status may carry both.
func (s *ModerationService) SetFeatured(ctx context.Context, statusID uint, featured bool) (*models.Status, error) {
	if err := s.statusRepo.SetFeatured(ctx, statusID, featured); err != nil {
		return nil, err
	}
	return s.statusRepo.GetByID(ctx, statusID, 0)
}

func (s *ModerationService) SetHidden(ctx context.Context, statusID uint, hidden bool) (*models.Status, error) {
	if err := s.statusRepo.SetHidden(ctx, statusID, hidden); err != nil {
		return nil, err
	}
	return s.statusRepo.GetByID(ctx, statusID, 0)
}

// SetViews overwrites the view counter with an absolute value.
func (s *ModerationService) SetViews(ctx context.Context, statusID uint, views int) (*models.Status, error) {
	if views < 0 {
		return nil, models.NewValidationError("views must be non-negative")
	}
	if err := s.statusRepo.SetViewCount(ctx, statusID, views); err != nil {
		return nil, err
	}
	return s.statusRepo.GetByID(ctx, statusID, 0)
}

// ListAllStatuses returns the raw snapshot, hidden and expired included.
func (s *ModerationService) ListAllStatuses(ctx context.Context) ([]models.Status, error) {
	return s.statusRepo.ListSnapshot(ctx, 0)
}

func (s *ModerationService) DeleteStatus(ctx context.Context, statusID uint) error {
	if _, err := s.statusRepo.GetByID(ctx, statusID, 0); err != nil {
		return err
	}
	return s.statusRepo.Delete(ctx, statusID)
}

func (s *ModerationService) SetBanned(ctx context.Context, adminID, targetID uint, banned bool) (*models.User, error) {
	if adminID == targetID {
		return nil, models.NewValidationError("You cannot ban yourself")
	}
	if err := s.userRepo.SetBanned(ctx, targetID, banned); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, targetID)
}

func (s *ModerationService) SetAdmin(ctx context.Context, adminID, targetID uint, admin bool) (*models.User, error) {
	if adminID == targetID && !admin {
		return nil, models.NewValidationError("You cannot demote yourself")
	}
	if err := s.userRepo.SetAdmin(ctx, targetID, admin); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, targetID)
}

// GetStats aggregates feed-wide counters for the admin dashboard.
func (s *ModerationService) GetStats(ctx context.Context) (*FeedStats, error) {
	var stats FeedStats

	type counterSums struct {
		Views    int64
		Likes    int64
		Comments int64
	}
	var sums counterSums
	if err := s.db.WithContext(ctx).
		Model(&models.Status{}).
		Select("COALESCE(SUM(view_count),0) as views, COALESCE(SUM(like_count),0) as likes, COALESCE(SUM(comment_count),0) as comments").
		Scan(&sums).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	stats.TotalViews = sums.Views
	stats.TotalLikes = sums.Likes
	stats.TotalComments = sums.Comments

	counts := []struct {
		dest  *int64
		model interface{}
		cond  string
		args  []interface{}
	}{
		{&stats.TotalStatuses, &models.Status{}, "", nil},
		{&stats.FeaturedCount, &models.Status{}, "featured = ?", []interface{}{true}},
		{&stats.HiddenCount, &models.Status{}, "hidden = ?", []interface{}{true}},
		{&stats.TotalUsers, &models.User{}, "", nil},
		{&stats.BannedUsers, &models.User{}, "banned = ?", []interface{}{true}},
	}
	for _, c := range counts {
		q := s.db.WithContext(ctx).Model(c.model)
		if c.cond != "" {
			q = q.Where(c.cond, c.args...)
		}
		if err := q.Count(c.dest).Error; err != nil {
			return nil, models.NewInternalError(err)
		}
	}

	return &stats, nil
}
