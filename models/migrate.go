package models

import (
	"log"

	"gorm.io/gorm"
)

// Migrate 自动迁移
func Migrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&User{},
		&UserConnection{},
		&Group{},
		&GroupMember{},
		&Message{},
		&GroupMessage{},
		&Post{},
		&GroupPost{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
}
