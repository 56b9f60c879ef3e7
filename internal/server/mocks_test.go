package server

import (
	"context"

	"statusworld/internal/feed"
	"statusworld/internal/models"
	"statusworld/internal/service"

	"github.com/stretchr/testify/mock"
)

// MockStatusRepository is a mock of the StatusRepository interface
type MockStatusRepository struct {
	mock.Mock
}

func (m *MockStatusRepository) Create(ctx context.Context, status *models.Status) error {
	args := m.Called(ctx, status)
	return args.Error(0)
}

func (m *MockStatusRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Status, error) {
	args := m.Called(ctx, id, currentUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Status), args.Error(1)
}

func (m *MockStatusRepository) GetByAuthorID(ctx context.Context, authorID uint, limit, offset int, currentUserID uint) ([]models.Status, error) {
	args := m.Called(ctx, authorID, limit, offset, currentUserID)
	return args.Get(0).([]models.Status), args.Error(1)
}

func (m *MockStatusRepository) ListSnapshot(ctx context.Context, currentUserID uint) ([]models.Status, error) {
	args := m.Called(ctx, currentUserID)
	return args.Get(0).([]models.Status), args.Error(1)
}

func (m *MockStatusRepository) RecentLikeActivity(ctx context.Context, authorID uint, limit int) ([]models.Activity, error) {
	args := m.Called(ctx, authorID, limit)
	return args.Get(0).([]models.Activity), args.Error(1)
}

func (m *MockStatusRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStatusRepository) IsLiked(ctx context.Context, userID, statusID uint) (bool, error) {
	args := m.Called(ctx, userID, statusID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStatusRepository) GetLikedStatusIDs(ctx context.Context, userID uint, statusIDs []uint) ([]uint, error) {
	args := m.Called(ctx, userID, statusIDs)
	return args.Get(0).([]uint), args.Error(1)
}

func (m *MockStatusRepository) Like(ctx context.Context, userID, statusID uint) (bool, error) {
	args := m.Called(ctx, userID, statusID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStatusRepository) Unlike(ctx context.Context, userID, statusID uint) (bool, error) {
	args := m.Called(ctx, userID, statusID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStatusRepository) IncrementCommentCount(ctx context.Context, statusID uint) error {
	args := m.Called(ctx, statusID)
	return args.Error(0)
}

func (m *MockStatusRepository) IncrementViewCount(ctx context.Context, statusID uint) error {
	args := m.Called(ctx, statusID)
	return args.Error(0)
}

func (m *MockStatusRepository) SetViewCount(ctx context.Context, statusID uint, views int) error {
	args := m.Called(ctx, statusID, views)
	return args.Error(0)
}

func (m *MockStatusRepository) SetFeatured(ctx context.Context, statusID uint, featured bool) error {
	args := m.Called(ctx, statusID, featured)
	return args.Error(0)
}

func (m *MockStatusRepository) SetHidden(ctx context.Context, statusID uint, hidden bool) error {
	args := m.Called(ctx, statusID, hidden)
	return args.Error(0)
}

// MockUserRepository is a mock of the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByPhone(ctx context.Context, phone string) (*models.User, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) Search(ctx context.Context, query string, limit, offset int) ([]models.User, error) {
	args := m.Called(ctx, query, limit, offset)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) SetBanned(ctx context.Context, id uint, banned bool) error {
	args := m.Called(ctx, id, banned)
	return args.Error(0)
}

func (m *MockUserRepository) SetAdmin(ctx context.Context, id uint, admin bool) error {
	args := m.Called(ctx, id, admin)
	return args.Error(0)
}

func (m *MockUserRepository) AdminExists(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ClaimFirstAdmin(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockCommentRepository is a mock of the CommentRepository interface
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListByStatus(ctx context.Context, statusID uint, limit, offset int) ([]models.Comment, error) {
	args := m.Called(ctx, statusID, limit, offset)
	return args.Get(0).([]models.Comment), args.Error(1)
}

func (m *MockCommentRepository) CountByStatus(ctx context.Context, statusID uint) (int64, error) {
	args := m.Called(ctx, statusID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCommentRepository) RecentCommentActivity(ctx context.Context, authorID uint, limit int) ([]models.Activity, error) {
	args := m.Called(ctx, authorID, limit)
	return args.Get(0).([]models.Activity), args.Error(1)
}

// testDeps bundles the mocks behind a Server wired like production.
type testDeps struct {
	statusRepo  *MockStatusRepository
	userRepo    *MockUserRepository
	commentRepo *MockCommentRepository
}

func newTestServer() (*Server, *testDeps) {
	deps := &testDeps{
		statusRepo:  new(MockStatusRepository),
		userRepo:    new(MockUserRepository),
		commentRepo: new(MockCommentRepository),
	}

	s := &Server{
		userRepo:    deps.userRepo,
		statusRepo:  deps.statusRepo,
		commentRepo: deps.commentRepo,
	}
	s.userService = service.NewUserService(deps.userRepo)
	s.statusService = service.NewStatusService(
		deps.statusRepo, deps.commentRepo, deps.userRepo, feed.Policy{}, s.userService.IsAdmin)
	s.moderationService = service.NewModerationService(nil, deps.statusRepo, deps.userRepo)
	return s, deps
}
