// Package main provides admin management utilities for Statusworld.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"statusworld/internal/config"
	"statusworld/internal/database"
	"statusworld/internal/models"

	"gorm.io/gorm"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage:")
		fmt.Println("  go run ./cmd/admin promote <user_id>      - Promote user to admin")
		fmt.Println("  go run ./cmd/admin demote <user_id>       - Demote user from admin")
		fmt.Println("  go run ./cmd/admin ban <user_id>          - Ban a user")
		fmt.Println("  go run ./cmd/admin unban <user_id>        - Lift a user's ban")
		fmt.Println("  go run ./cmd/admin list-admins            - List all admins")
		os.Exit(1)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	command := os.Args[1]

	switch command {
	case "promote":
		setAdmin(db, requireUserIDArg(command), true)

	case "demote":
		setAdmin(db, requireUserIDArg(command), false)

	case "ban":
		setBanned(db, requireUserIDArg(command), true)

	case "unban":
		setBanned(db, requireUserIDArg(command), false)

	case "list-admins":
		listAdmins(db)

	default:
		fmt.Printf("Unknown command: %s\n", command)
		os.Exit(1)
	}
}

func requireUserIDArg(command string) string {
	if len(os.Args) < 3 {
		fmt.Printf("Usage: go run ./cmd/admin %s <user_id>\n", command)
		os.Exit(1)
	}
	return os.Args[2]
}

func loadUser(db *gorm.DB, userID string) *models.User {
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fmt.Printf("User with ID %s not found\n", userID)
		} else {
			log.Fatalf("Database error: %v", err)
		}
		os.Exit(1)
	}
	return &user
}

func setAdmin(db *gorm.DB, userID string, admin bool) {
	user := loadUser(db, userID)

	if user.IsAdmin == admin {
		if admin {
			fmt.Printf("User %s (ID: %d) is already an admin\n", user.DisplayName, user.ID)
		} else {
			fmt.Printf("User %s (ID: %d) is not an admin\n", user.DisplayName, user.ID)
		}
		return
	}

	user.IsAdmin = admin
	if err := db.Save(user).Error; err != nil {
		log.Fatalf("Failed to update user: %v", err)
	}

	if admin {
		fmt.Printf("✅ Successfully promoted %s (ID: %d) to admin\n", user.DisplayName, user.ID)
	} else {
		fmt.Printf("✅ Successfully demoted %s (ID: %d) from admin\n", user.DisplayName, user.ID)
	}
}

func setBanned(db *gorm.DB, userID string, banned bool) {
	user := loadUser(db, userID)

	if user.Banned == banned {
		if banned {
			fmt.Printf("User %s (ID: %d) is already banned\n", user.DisplayName, user.ID)
		} else {
			fmt.Printf("User %s (ID: %d) is not banned\n", user.DisplayName, user.ID)
		}
		return
	}

	user.Banned = banned
	if err := db.Save(user).Error; err != nil {
		log.Fatalf("Failed to update user: %v", err)
	}

	if banned {
		fmt.Printf("🚫 Banned %s (ID: %d)\n", user.DisplayName, user.ID)
	} else {
		fmt.Printf("✅ Lifted ban for %s (ID: %d)\n", user.DisplayName, user.ID)
	}
}

func listAdmins(db *gorm.DB) {
	var admins []models.User
	if err := db.Where("is_admin = ?", true).Find(&admins).Error; err != nil {
		log.Fatalf("Failed to fetch admins: %v", err)
	}

	if len(admins) == 0 {
		fmt.Println("No admins found in the system")
		return
	}

	fmt.Println("\n📋 Current Admins:")
	fmt.Println("─────────────────────────────────────")
	for _, admin := range admins {
		fmt.Printf("ID: %d | Name: %s | Email: %s\n", admin.ID, admin.DisplayName, admin.Email)
	}
	fmt.Println("─────────────────────────────────────")
}
