package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GroupMessage is a chat message scoped to one group.
type GroupMessage struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"_id"`
	GroupID   string    `gorm:"type:varchar(36);index;not null" json:"groupId"`
	SenderID  string    `gorm:"type:varchar(36);index;not null" json:"senderId"`
	Content   string    `gorm:"type:varchar(2000);not null" json:"content"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (m *GroupMessage) BeforeSave(tx *gorm.DB) error {
	content, err := normalizeContent(m.Content)
	if err != nil {
		return err
	}
	m.Content = content
	return nil
}

func (m *GroupMessage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
