package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GroupPost is a post on a group's wall, visible to group members.
type GroupPost struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"_id"`
	GroupID   string    `gorm:"type:varchar(36);index;not null" json:"groupId"`
	CreatorID string    `gorm:"type:varchar(36);index;not null" json:"creatorId"`
	Content   string    `gorm:"type:varchar(2000);not null" json:"content"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (p *GroupPost) BeforeSave(tx *gorm.DB) error {
	content, err := normalizeContent(p.Content)
	if err != nil {
		return err
	}
	p.Content = content
	p.Image = strings.TrimSpace(p.Image)
	return nil
}

func (p *GroupPost) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
