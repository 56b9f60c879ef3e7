package models

import "time"

// Activity kinds.
const (
	ActivityLike    = "like"
	ActivityComment = "comment"
)

// Activity is one recent like or comment left on the viewer's statuses. It
// is a derived projection over the sub-record tables, never persisted
// itself.
type Activity struct {
	Type          string    `gorm:"-" json:"type"`
	StatusID      uint      `json:"status_id"`
	MediaURL      string    `json:"media_url"`
	MediaKind     string    `json:"media_kind"`
	ActorID       uint      `json:"actor_id"`
	ActorName     string    `json:"actor_name"`
	ActorPhotoURL string    `json:"actor_photo_url"`
	Text          string    `json:"text,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
