package models

import "time"

// Media is an upload record. The file itself lives under the configured
// upload directory; URL is the public path clients embed in statuses.
type Media struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Hash      string `gorm:"uniqueIndex;not null" json:"hash"`
	URL       string `gorm:"not null" json:"url"`
	Kind      string `gorm:"not null" json:"kind"`
	MimeType  string `json:"mime_type"`
	SizeBytes int64  `json:"size_bytes"`
	UserID    uint   `gorm:"not null;index" json:"user_id"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName pins the table name; gorm's pluralizer mangles "media".
func (Media) TableName() string {
	return "media_assets"
}
