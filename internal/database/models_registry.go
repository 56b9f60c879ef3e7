package database

import "statusworld/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Status{},
		&models.Comment{},
		&models.Like{},
		&models.Media{},
	}
}
