package service

import (
	"context"
	"testing"

	"statusworld/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupModerationDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared&_pragma=foreign_keys(1)&mode=memory"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Status{}, &models.Comment{}, &models.Like{}))
	t.Cleanup(func() {
		db.Exec("DELETE FROM statuses")
		db.Exec("DELETE FROM users")
	})
	return db
}

func TestModerationService_Toggles(t *testing.T) {
	t.Parallel()

	t.Run("feature and hide are independent", func(t *testing.T) {
		t.Parallel()
		statusRepo := noopStatusRepo()
		var gotFeatured, gotHidden bool
		statusRepo.setFeaturedFn = func(_ context.Context, _ uint, featured bool) error {
			gotFeatured = featured
			return nil
		}
		statusRepo.setHiddenFn = func(_ context.Context, _ uint, hidden bool) error {
			gotHidden = hidden
			return nil
		}

		svc := NewModerationService(nil, statusRepo, noopUserRepo())
		_, err := svc.SetFeatured(context.Background(), 1, true)
		require.NoError(t, err)
		_, err = svc.SetHidden(context.Background(), 1, true)
		require.NoError(t, err)
		assert.True(t, gotFeatured)
		assert.True(t, gotHidden)
	})

	t.Run("negative view override rejected", func(t *testing.T) {
		t.Parallel()
		svc := NewModerationService(nil, noopStatusRepo(), noopUserRepo())
		_, err := svc.SetViews(context.Background(), 1, -1)
		assertValidationError(t, err)
	})

	t.Run("view override goes through SetViewCount", func(t *testing.T) {
		t.Parallel()
		statusRepo := noopStatusRepo()
		var setTo int
		statusRepo.setViewCountFn = func(_ context.Context, _ uint, views int) error {
			setTo = views
			return nil
		}
		svc := NewModerationService(nil, statusRepo, noopUserRepo())
		_, err := svc.SetViews(context.Background(), 1, 4200)
		require.NoError(t, err)
		assert.Equal(t, 4200, setTo)
	})
}

func TestModerationService_SelfTargeting(t *testing.T) {
	t.Parallel()

	svc := NewModerationService(nil, noopStatusRepo(), noopUserRepo())

	_, err := svc.SetBanned(context.Background(), 1, 1, true)
	assertValidationError(t, err)

	_, err = svc.SetAdmin(context.Background(), 1, 1, false)
	assertValidationError(t, err)

	// Self-promotion is a no-op but not an error.
	_, err = svc.SetAdmin(context.Background(), 1, 1, true)
	assert.NoError(t, err)
}

func TestModerationService_GetStats(t *testing.T) {
	db := setupModerationDB(t)

	require.NoError(t, db.Create(&models.User{DisplayName: "A", Email: "a@example.com", Password: "x"}).Error)
	require.NoError(t, db.Create(&models.User{DisplayName: "B", Email: "b@example.com", Password: "x", Banned: true}).Error)
	require.NoError(t, db.Create(&models.Status{MediaURL: "/m/1.webp", AuthorID: 1, ViewCount: 10, LikeCount: 3, CommentCount: 2, Featured: true}).Error)
	require.NoError(t, db.Create(&models.Status{MediaURL: "/m/2.webp", AuthorID: 1, ViewCount: 5, LikeCount: 1, Hidden: true}).Error)

	svc := NewModerationService(db, noopStatusRepo(), noopUserRepo())
	stats, err := svc.GetStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(2), stats.TotalStatuses)
	assert.Equal(t, int64(15), stats.TotalViews)
	assert.Equal(t, int64(4), stats.TotalLikes)
	assert.Equal(t, int64(2), stats.TotalComments)
	assert.Equal(t, int64(1), stats.FeaturedCount)
	assert.Equal(t, int64(1), stats.HiddenCount)
	assert.Equal(t, int64(2), stats.TotalUsers)
	assert.Equal(t, int64(1), stats.BannedUsers)
}
