package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment is an append-only sub-record of a status; there is no edit or
// delete path. Comments are listed newest-first.
type Comment struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	StatusID uint   `gorm:"not null;index" json:"status_id"`
	Text     string `gorm:"not null" json:"text"`

	AuthorID       uint   `gorm:"not null" json:"author_id"`
	AuthorName     string `json:"author_name"`
	AuthorPhotoURL string `json:"author_photo_url"`

	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
