package service

import (
	"context"

	"statusworld/internal/models"
	"statusworld/internal/repository"
	"statusworld/internal/validation"
)

type UserService struct {
	userRepo repository.UserRepository
}

type UpdateProfileInput struct {
	UserID      uint
	DisplayName string
	Bio         string
	PhotoURL    string
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) SearchUsers(ctx context.Context, query string, limit, offset int) ([]models.User, error) {
	if query == "" {
		return nil, models.NewValidationError("Search query is required")
	}
	return s.userRepo.Search(ctx, query, limit, offset)
}

func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.DisplayName != "" {
		if err := validation.ValidateDisplayName(in.DisplayName); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.DisplayName = in.DisplayName
	}
	if in.Bio != "" {
		if len(in.Bio) > validation.MaxBioLength {
			return nil, models.NewValidationError("Bio too long (max 500 characters)")
		}
		user.Bio = in.Bio
	}
	if in.PhotoURL != "" {
		user.PhotoURL = in.PhotoURL
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// IsAdmin reports whether the user holds the admin flag. Wired into services
// that need an admin check without a repository dependency.
func (s *UserService) IsAdmin(ctx context.Context, userID uint) (bool, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	return user.IsAdmin, nil
}

// EnsureFirstAdmin promotes the user when no admin exists yet. Returns the
// possibly-updated user. Safe to call on every successful authentication.
func (s *UserService) EnsureFirstAdmin(ctx context.Context, user *models.User) (*models.User, error) {
	if user.IsAdmin || user.Banned {
		return user, nil
	}
	exists, err := s.userRepo.AdminExists(ctx)
	if err != nil {
		return nil, err
	}
	if exists {
		return user, nil
	}
	claimed, err := s.userRepo.ClaimFirstAdmin(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if claimed {
		user.IsAdmin = true
	}
	return user, nil
}
