// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"statusworld/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by seed presets and tests.
type Factory struct {
	db   *gorm.DB
	opts Options
	rnd  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	// seed gofakeit for richer content
	gofakeit.Seed(time.Now().UnixNano())
	//nolint:gosec // Weak random number generator is fine for seeding
	return &Factory{db: db, opts: opts, rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	name := gofakeit.Name()
	user := &models.User{
		DisplayName: name,
		Email:       gofakeit.Email(),
		Bio:         gofakeit.Sentence(10),
		PhotoURL:    fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
	}

	// Password handling: allow skipping bcrypt in dev fast mode
	if f.opts.SkipBcrypt {
		user.Password = defaultSeedPassword
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(defaultSeedPassword), bcrypt.DefaultCost)
		user.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateStatus constructs and persists a sample `models.Status` for the
// given author, with the author snapshot taken the way posting does.
func (f *Factory) CreateStatus(author *models.User, overrides ...func(*models.Status)) (*models.Status, error) {
	kind := models.MediaKindImage
	if f.rnd.Float32() < 0.25 {
		kind = models.MediaKindVideo
	}

	status := &models.Status{
		MediaURL:       fmt.Sprintf("https://picsum.photos/seed/%s/800/1200", gofakeit.UUID()),
		MediaKind:      kind,
		Caption:        gofakeit.Sentence(6),
		AuthorID:       author.ID,
		AuthorName:     author.DisplayName,
		AuthorPhotoURL: author.PhotoURL,
	}

	if f.rnd.Float32() < 0.4 {
		status.SongName = fakeSongTitle()
		status.SongURL = gofakeit.URL()
	}

	// Spread creation times across the retention window, with some already
	// past it.
	hoursBack := f.rnd.Intn(60)
	status.CreatedAt = time.Now().Add(-time.Duration(hoursBack)*time.Hour - time.Duration(f.rnd.Intn(60))*time.Minute)

	for _, override := range overrides {
		override(status)
	}

	if err := f.db.Create(status).Error; err != nil {
		return nil, err
	}
	return status, nil
}

// fakeSongTitle composes a plausible track name; gofakeit v6 has no song
// generator.
func fakeSongTitle() string {
	return fmt.Sprintf("%s %s", gofakeit.HipsterWord(), gofakeit.NounAbstract())
}

// CreateComment persists a comment from `user` on `status` and bumps the
// comment counter so seeded counters stay consistent with sub-records.
func (f *Factory) CreateComment(user *models.User, status *models.Status, overrides ...func(*models.Comment)) (*models.Comment, error) {
	comment := &models.Comment{
		StatusID:       status.ID,
		Text:           gofakeit.Sentence(8),
		AuthorID:       user.ID,
		AuthorName:     user.DisplayName,
		AuthorPhotoURL: user.PhotoURL,
	}

	for _, override := range overrides {
		override(comment)
	}

	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	if err := f.db.Model(status).UpdateColumn("comment_count", gorm.Expr("comment_count + 1")).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateLike persists a like from `user` on `status` and bumps the like
// counter.
func (f *Factory) CreateLike(user *models.User, status *models.Status) error {
	like := &models.Like{
		UserID:   user.ID,
		StatusID: status.ID,
	}
	if err := f.db.Create(like).Error; err != nil {
		return err
	}
	return f.db.Model(status).UpdateColumn("like_count", gorm.Expr("like_count + 1")).Error
}
