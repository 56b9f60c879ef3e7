package models

import (
	"time"

	"gorm.io/gorm"
)

// Media kinds a status can carry.
const (
	MediaKindImage = "image"
	MediaKindVideo = "video"
	MediaKindAudio = "audio"
)

// Status is one ephemeral post. CreatedAt is immutable once set and is the
// sole basis for expiry and recency ordering. The counter columns are
// adjusted by discrete increments (admin view edits excepted), never
// recomputed from the sub-record tables.
type Status struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	MediaURL  string `gorm:"not null" json:"media_url"`
	MediaKind string `gorm:"not null;default:image" json:"media_kind"`
	Caption   string `json:"caption"`
	SongURL   string `json:"song_url"`
	SongName  string `json:"song_name"`

	AuthorID       uint   `gorm:"not null;index" json:"author_id"`
	AuthorName     string `json:"author_name"`
	AuthorPhotoURL string `json:"author_photo_url"`

	LikeCount    int `gorm:"not null;default:0" json:"like_count"`
	CommentCount int `gorm:"not null;default:0" json:"comment_count"`
	ViewCount    int `gorm:"not null;default:0" json:"view_count"`

	Featured bool `gorm:"not null;default:false" json:"featured"`
	Hidden   bool `gorm:"not null;default:false" json:"hidden"`

	// Liked is whether the requesting user liked this status (computed).
	Liked bool `gorm:"-" json:"liked"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Normalize substitutes documented defaults for malformed or missing
// optional fields on a freshly read record, so the rest of the code never
// defaults at call sites. A record is repaired, never rejected.
func (s *Status) Normalize() {
	if s.MediaKind != MediaKindImage && s.MediaKind != MediaKindVideo {
		s.MediaKind = MediaKindImage
	}
	if s.AuthorName == "" {
		s.AuthorName = "User"
	}
	if s.LikeCount < 0 {
		s.LikeCount = 0
	}
	if s.CommentCount < 0 {
		s.CommentCount = 0
	}
	if s.ViewCount < 0 {
		s.ViewCount = 0
	}
}
