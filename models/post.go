package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post is a personal feed post, visible to the creator and their friends.
type Post struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"_id"`
	CreatorID string    `gorm:"type:varchar(36);index;not null" json:"creatorId"`
	Content   string    `gorm:"type:varchar(2000);not null" json:"content"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (p *Post) BeforeSave(tx *gorm.DB) error {
	content, err := normalizeContent(p.Content)
	if err != nil {
		return err
	}
	p.Content = content
	p.Image = strings.TrimSpace(p.Image)
	return nil
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
