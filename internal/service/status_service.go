// Package service contains the application's business logic layer.
package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"statusworld/internal/cache"
	"statusworld/internal/feed"
	"statusworld/internal/models"
	"statusworld/internal/observability"
	"statusworld/internal/repository"
	"statusworld/internal/validation"
)

// DoubleTapWindow is how close two taps must land to count as a double tap.
const DoubleTapWindow = 300 * time.Millisecond

// tapPruneThreshold caps how many stale tap entries accumulate before a
// sweep; entries older than DoubleTapWindow are dead weight.
const tapPruneThreshold = 1024

type StatusService struct {
	statusRepo  repository.StatusRepository
	commentRepo repository.CommentRepository
	userRepo    repository.UserRepository
	policy      feed.Policy
	isAdmin     func(ctx context.Context, userID uint) (bool, error)
	now         func() time.Time

	tapMu    sync.Mutex
	lastTaps map[tapKey]time.Time
}

type tapKey struct {
	userID   uint
	statusID uint
}

type CreateStatusInput struct {
	AuthorID  uint
	MediaURL  string
	MediaKind string
	Caption   string
	SongURL   string
	SongName  string
}

type AddCommentInput struct {
	UserID   uint
	StatusID uint
	Text     string
}

func NewStatusService(
	statusRepo repository.StatusRepository,
	commentRepo repository.CommentRepository,
	userRepo repository.UserRepository,
	policy feed.Policy,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *StatusService {
	return &StatusService{
		statusRepo:  statusRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
		policy:      policy,
		isAdmin:     isAdmin,
		now:         time.Now,
		lastTaps:    make(map[tapKey]time.Time),
	}
}

func (s *StatusService) CreateStatus(ctx context.Context, in CreateStatusInput) (*models.Status, error) {
	if err := validation.ValidateMediaURL(in.MediaURL); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateCaption(in.Caption); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateSongURL(in.SongURL); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	kind := in.MediaKind
	switch kind {
	case "":
		kind = models.MediaKindImage
	case models.MediaKindImage, models.MediaKindVideo:
		// valid
	default:
		return nil, models.NewValidationError("media_kind must be image or video")
	}

	author, err := s.userRepo.GetByID(ctx, in.AuthorID)
	if err != nil {
		return nil, err
	}
	if author.Banned {
		return nil, models.NewForbiddenError("Banned users cannot post")
	}

	// Author fields are snapshots; later profile edits do not touch them.
	status := &models.Status{
		MediaURL:       strings.TrimSpace(in.MediaURL),
		MediaKind:      kind,
		Caption:        in.Caption,
		SongURL:        strings.TrimSpace(in.SongURL),
		SongName:       in.SongName,
		AuthorID:       author.ID,
		AuthorName:     author.DisplayName,
		AuthorPhotoURL: author.PhotoURL,
	}
	if err := s.statusRepo.Create(ctx, status); err != nil {
		return nil, err
	}

	observability.StatusCreatedTotal.WithLabelValues(kind).Inc()
	return status, nil
}

// GetFeed composes the visible, ranked feed from a fresh snapshot. Anonymous
// requests go through the short-TTL cache; authenticated ones skip it so the
// Liked flag stays accurate.
func (s *StatusService) GetFeed(ctx context.Context, currentUserID uint) ([]models.Status, error) {
	if currentUserID == 0 {
		var composed []models.Status
		err := cache.Aside(ctx, cache.FeedKey, &composed, cache.FeedTTL, func() error {
			snapshot, fetchErr := s.statusRepo.ListSnapshot(ctx, 0)
			if fetchErr != nil {
				return fetchErr
			}
			composed = s.policy.Compose(snapshot, s.now())
			return nil
		})
		if err != nil {
			return nil, err
		}
		return composed, nil
	}

	snapshot, err := s.statusRepo.ListSnapshot(ctx, currentUserID)
	if err != nil {
		return nil, err
	}
	return s.policy.Compose(snapshot, s.now()), nil
}

// GetStatus fetches one status by ID. Hidden statuses are admin-suppressed
// everywhere, so direct lookup reports not-found unless the viewer is the
// author or an admin.
func (s *StatusService) GetStatus(ctx context.Context, id uint, currentUserID uint) (*models.Status, error) {
	status, err := s.statusRepo.GetByID(ctx, id, currentUserID)
	if err != nil {
		return nil, err
	}
	if status.Hidden && status.AuthorID != currentUserID {
		admin, err := s.viewerIsAdmin(ctx, currentUserID)
		if err != nil {
			return nil, err
		}
		if !admin {
			return nil, models.NewNotFoundError("Status", id)
		}
	}
	return status, nil
}

// GetUserStatuses lists an author's statuses through the same visibility
// policy as the feed: hidden and expired entries are dropped for everyone
// but admins, the author included. Order stays newest-first.
func (s *StatusService) GetUserStatuses(ctx context.Context, authorID uint, limit, offset int, currentUserID uint) ([]models.Status, error) {
	statuses, err := s.statusRepo.GetByAuthorID(ctx, authorID, limit, offset, currentUserID)
	if err != nil {
		return nil, err
	}
	admin, err := s.viewerIsAdmin(ctx, currentUserID)
	if err != nil {
		return nil, err
	}
	if admin {
		return statuses, nil
	}
	return s.policy.Visible(statuses, s.now()), nil
}

func (s *StatusService) viewerIsAdmin(ctx context.Context, userID uint) (bool, error) {
	if userID == 0 || s.isAdmin == nil {
		return false, nil
	}
	return s.isAdmin(ctx, userID)
}

// ToggleLike flips the caller's like on a status and returns the refreshed
// record.
func (s *StatusService) ToggleLike(ctx context.Context, userID, statusID uint) (*models.Status, error) {
	if _, err := s.statusRepo.GetByID(ctx, statusID, 0); err != nil {
		return nil, err
	}

	isLiked, err := s.statusRepo.IsLiked(ctx, userID, statusID)
	if err != nil {
		return nil, err
	}

	if isLiked {
		if _, err := s.statusRepo.Unlike(ctx, userID, statusID); err != nil {
			return nil, err
		}
	} else {
		if _, err := s.statusRepo.Like(ctx, userID, statusID); err != nil {
			return nil, err
		}
	}

	return s.statusRepo.GetByID(ctx, statusID, userID)
}

// DoubleTap records a tap and, when it completes a double tap, applies like
// intent: it likes the status if not already liked and never unlikes. The
// returned bool reports whether a like was applied.
func (s *StatusService) DoubleTap(ctx context.Context, userID, statusID uint) (bool, *models.Status, error) {
	key := tapKey{userID: userID, statusID: statusID}
	now := s.now()

	s.tapMu.Lock()
	last, tapped := s.lastTaps[key]
	s.lastTaps[key] = now
	if len(s.lastTaps) > tapPruneThreshold {
		for k, t := range s.lastTaps {
			if now.Sub(t) > DoubleTapWindow {
				delete(s.lastTaps, k)
			}
		}
	}
	s.tapMu.Unlock()

	if !tapped || now.Sub(last) > DoubleTapWindow {
		// First tap of a potential pair.
		status, err := s.statusRepo.GetByID(ctx, statusID, userID)
		return false, status, err
	}

	isLiked, err := s.statusRepo.IsLiked(ctx, userID, statusID)
	if err != nil {
		return false, nil, err
	}
	applied := false
	if !isLiked {
		applied, err = s.statusRepo.Like(ctx, userID, statusID)
		if err != nil {
			return false, nil, err
		}
	}

	status, err := s.statusRepo.GetByID(ctx, statusID, userID)
	return applied, status, err
}

func (s *StatusService) AddComment(ctx context.Context, in AddCommentInput) (*models.Comment, error) {
	if err := validation.ValidateComment(in.Text); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if _, err := s.statusRepo.GetByID(ctx, in.StatusID, 0); err != nil {
		return nil, err
	}

	author, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if author.Banned {
		return nil, models.NewForbiddenError("Banned users cannot comment")
	}

	comment := &models.Comment{
		StatusID:       in.StatusID,
		Text:           strings.TrimSpace(in.Text),
		AuthorID:       author.ID,
		AuthorName:     author.DisplayName,
		AuthorPhotoURL: author.PhotoURL,
	}

	// Sub-record first, counter second. A failure between the two leaves the
	// counter behind by one; counters are advisory and never reconciled.
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	if err := s.statusRepo.IncrementCommentCount(ctx, in.StatusID); err != nil {
		return comment, err
	}
	return comment, nil
}

func (s *StatusService) ListComments(ctx context.Context, statusID uint, limit, offset int) ([]models.Comment, error) {
	if _, err := s.statusRepo.GetByID(ctx, statusID, 0); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByStatus(ctx, statusID, limit, offset)
}

// DefaultActivityLimit caps how many entries the activity view returns.
const DefaultActivityLimit = 50

// GetActivity merges the newest likes and comments other users left on the
// caller's statuses, newest first. Self-actions are excluded at the query
// level.
func (s *StatusService) GetActivity(ctx context.Context, userID uint, limit int) ([]models.Activity, error) {
	if limit <= 0 || limit > DefaultActivityLimit {
		limit = DefaultActivityLimit
	}

	likes, err := s.statusRepo.RecentLikeActivity(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	comments, err := s.commentRepo.RecentCommentActivity(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	merged := make([]models.Activity, 0, len(likes)+len(comments))
	merged = append(merged, likes...)
	merged = append(merged, comments...)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].CreatedAt.After(merged[j].CreatedAt)
	})
	if len(merged) > limit {
		merged = merged[:limit]
	}
	return merged, nil
}

func (s *StatusService) RecordView(ctx context.Context, statusID uint) error {
	return s.statusRepo.IncrementViewCount(ctx, statusID)
}

func (s *StatusService) DeleteStatus(ctx context.Context, userID, statusID uint) error {
	status, err := s.statusRepo.GetByID(ctx, statusID, 0)
	if err != nil {
		return err
	}

	if status.AuthorID != userID {
		if s.isAdmin == nil {
			return models.NewForbiddenError("You can only delete your own statuses")
		}
		admin, err := s.isAdmin(ctx, userID)
		if err != nil {
			return err
		}
		if !admin {
			return models.NewForbiddenError("You can only delete your own statuses")
		}
	}

	return s.statusRepo.Delete(ctx, statusID)
}
