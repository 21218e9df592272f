package models

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxContentLen = 2000

var (
	ErrEmptyContent   = errors.New("content cannot be empty")
	ErrContentTooLong = errors.New("content cannot exceed 2000 characters")
)

// normalizeContent trims and enforces the 1-2000 character rule shared by
// messages and posts. The limit counts characters, not bytes, matching
// the boundary validation.
func normalizeContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", ErrEmptyContent
	}
	if utf8.RuneCountInString(content) > maxContentLen {
		return "", ErrContentTooLong
	}
	return content, nil
}

// Message is a one-on-one chat message.
type Message struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"_id"`
	SenderID    string    `gorm:"type:varchar(36);index;not null" json:"senderId"`
	RecipientID string    `gorm:"type:varchar(36);index;not null" json:"recipientId"`
	Content     string    `gorm:"type:varchar(2000);not null" json:"content"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (m *Message) BeforeSave(tx *gorm.DB) error {
	content, err := normalizeContent(m.Content)
	if err != nil {
		return err
	}
	m.Content = content
	return nil
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
