package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/noah-isme/clarifyai-api/internal/models"
)

// AutoMigrate creates or widens the faqs, announcements and chat_logs tables.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.FAQ{}, &models.Announcement{}, &models.ChatLog{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
