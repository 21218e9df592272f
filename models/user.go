package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the account record the relay reads. Sign-up, verification and
// profile editing happen in the web app; the relay only checks identity.
type User struct {
	ID             string    `gorm:"primaryKey;type:varchar(36)" json:"_id"`
	UserName       string    `gorm:"unique;not null" json:"userName"`
	ProfilePicture string    `json:"profilePicture,omitempty"`
	IsVerified     bool      `gorm:"default:false" json:"isVerified"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// UserConnection links a user to one accepted friend. Rows come in pairs,
// one per direction, written by the friend-request flow.
type UserConnection struct {
	UserID       string    `gorm:"primaryKey;type:varchar(36)" json:"user_id"`
	ConnectionID string    `gorm:"primaryKey;type:varchar(36)" json:"connection_id"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
