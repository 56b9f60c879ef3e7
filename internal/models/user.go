package models

import (
	"time"

	"gorm.io/gorm"
)

// User is an account profile. Email or Phone may be empty, but at least one
// is always present (enforced at signup). AuthorName/AuthorPhotoURL on
// statuses are snapshots of this profile taken at post time and are not kept
// in sync with later edits.
type User struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	DisplayName string `gorm:"not null" json:"display_name"`
	Email       string `gorm:"uniqueIndex;default:null" json:"email,omitempty"`
	Phone       string `gorm:"uniqueIndex;default:null" json:"phone,omitempty"`
	Password    string `gorm:"not null" json:"-"`
	PhotoURL    string `json:"photo_url"`
	Bio         string `json:"bio"`
	Banned      bool   `gorm:"default:false" json:"banned"`
	IsAdmin     bool   `gorm:"default:false" json:"is_admin"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// HasContact reports whether the profile carries at least one contact
// address.
func (u *User) HasContact() bool {
	return u.Email != "" || u.Phone != ""
}
