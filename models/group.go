package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Group 群组模型
type Group struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"_id"`
	Name        string    `gorm:"not null" json:"name"`
	OwnerID     string    `gorm:"type:varchar(36)" json:"owner_id"`
	Description string    `json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// GroupMember 群组成员模型
type GroupMember struct {
	GroupID  string    `gorm:"primaryKey;type:varchar(36)" json:"group_id"`
	UserID   string    `gorm:"primaryKey;type:varchar(36)" json:"user_id"`
	JoinedAt time.Time `gorm:"autoCreateTime" json:"joined_at"`
}

func (g *Group) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return nil
}
