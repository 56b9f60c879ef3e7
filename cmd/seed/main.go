// Command main runs the database seeder for Statusworld.
package main

import (
	"flag"
	"log"

	"statusworld/internal/config"
	"statusworld/internal/database"
	"statusworld/internal/seed"
)

func main() {
	// Parse command line flags
	numUsers := flag.Int("users", 15, "Number of users to create")
	numStatuses := flag.Int("statuses", 50, "Number of statuses to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	skipBcrypt := flag.Bool("skip-bcrypt", false, "Store plaintext passwords (faster, logins won't work)")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")
	log.Printf("Target: %d users, %d statuses, clean=%v\n", *numUsers, *numStatuses, *shouldClean)

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Seed(db, seed.Options{
		NumUsers:    *numUsers,
		NumStatuses: *numStatuses,
		ShouldClean: *shouldClean,
		SkipBcrypt:  *skipBcrypt,
	}); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Println("✨ All done! Your database is now populated with test data.")
}
