package seed

import (
	"fmt"
	"log"
	"math/rand"

	"statusworld/internal/models"

	"gorm.io/gorm"
)

// defaultSeedPassword is the plaintext password every seeded account gets.
const defaultSeedPassword = "password123"

// Options controls a seeding run.
type Options struct {
	NumUsers    int
	NumStatuses int
	ShouldClean bool
	// SkipBcrypt stores the password as plaintext instead of hashing.
	// Only useful for very large seed runs where bcrypt dominates the
	// runtime. Logins will not work against these accounts.
	SkipBcrypt bool
}

// Seed populates the database with sample users, statuses, comments and
// likes. Counters on seeded statuses always match the sub-records created
// for them.
func Seed(db *gorm.DB, opts Options) error {
	log.Println("🌱 Starting database seeding...")

	if opts.NumUsers <= 0 {
		opts.NumUsers = 10
	}
	if opts.NumStatuses <= 0 {
		opts.NumStatuses = 30
	}

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			return fmt.Errorf("failed to clear data: %w", err)
		}
	}

	factory := NewFactory(db, opts)

	users, err := createUsers(factory, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ Created %d users", len(users))

	statuses, err := createStatuses(factory, users, opts.NumStatuses)
	if err != nil {
		return fmt.Errorf("failed to create statuses: %w", err)
	}
	log.Printf("✓ Created %d statuses", len(statuses))

	likes, comments, err := createEngagement(factory, users, statuses)
	if err != nil {
		return fmt.Errorf("failed to create engagement: %w", err)
	}
	log.Printf("✓ Created %d likes and %d comments", likes, comments)

	log.Println("🎉 Database seeding completed!")
	log.Printf("   All accounts use the password %q", defaultSeedPassword)
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("🧹 Clearing existing data...")

	tables := []string{"likes", "comments", "statuses", "media_assets", "users"}
	for _, table := range tables {
		if err := db.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			// Fall back for databases without TRUNCATE ... CASCADE (sqlite).
			if err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
				return fmt.Errorf("failed to clear table %s: %w", table, err)
			}
		}
	}
	return nil
}

func createUsers(factory *Factory, count int) ([]*models.User, error) {
	users := make([]*models.User, 0, count)

	// A predictable admin account for local development.
	admin, err := factory.CreateUser(func(u *models.User) {
		u.DisplayName = "Admin"
		u.Email = "admin@statusworld.local"
		u.IsAdmin = true
	})
	if err != nil {
		return nil, err
	}
	users = append(users, admin)

	// A predictable regular account.
	demo, err := factory.CreateUser(func(u *models.User) {
		u.DisplayName = "Demo User"
		u.Email = "demo@statusworld.local"
	})
	if err != nil {
		return nil, err
	}
	users = append(users, demo)

	for i := len(users); i < count; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func createStatuses(factory *Factory, users []*models.User, count int) ([]*models.Status, error) {
	statuses := make([]*models.Status, 0, count)

	for i := 0; i < count; i++ {
		author := users[factory.rnd.Intn(len(users))]
		status, err := factory.CreateStatus(author, func(s *models.Status) {
			// A handful of featured and hidden entries so the feed and the
			// admin dashboard both have something interesting to show.
			if factory.rnd.Float32() < 0.15 {
				s.Featured = true
			}
			if factory.rnd.Float32() < 0.1 {
				s.Hidden = true
			}
			s.ViewCount = factory.rnd.Intn(500)
		})
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

// createEngagement attaches likes and comments to seeded statuses. Each
// like is a real sub-record, so the toggle endpoint behaves correctly for
// seeded data.
func createEngagement(factory *Factory, users []*models.User, statuses []*models.Status) (int, int, error) {
	totalLikes := 0
	totalComments := 0

	for _, status := range statuses {
		numLikes := factory.rnd.Intn(len(users))
		for _, user := range pickUsers(factory.rnd, users, numLikes) {
			if err := factory.CreateLike(user, status); err != nil {
				return totalLikes, totalComments, err
			}
			totalLikes++
		}

		numComments := factory.rnd.Intn(4)
		for i := 0; i < numComments; i++ {
			commenter := users[factory.rnd.Intn(len(users))]
			if _, err := factory.CreateComment(commenter, status); err != nil {
				return totalLikes, totalComments, err
			}
			totalComments++
		}
	}
	return totalLikes, totalComments, nil
}

// pickUsers returns n distinct users chosen at random. Distinctness matters
// for likes, which are unique per user and status.
func pickUsers(rnd *rand.Rand, users []*models.User, n int) []*models.User {
	shuffled := make([]*models.User, len(users))
	copy(shuffled, users)
	rnd.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if n > len(shuffled) {
		n = len(shuffled)
	}
	return shuffled[:n]
}
