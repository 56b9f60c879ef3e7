package models

import "time"

// Like marks that a user liked a status. The (StatusID, UserID) pair is
// unique: presence of the row is the toggle state. No soft delete; an
// unlike removes the row so a later like can recreate it.
type Like struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	StatusID uint `gorm:"not null;uniqueIndex:idx_status_user" json:"status_id"`
	UserID   uint `gorm:"not null;uniqueIndex:idx_status_user" json:"user_id"`

	CreatedAt time.Time `json:"created_at"`
}
