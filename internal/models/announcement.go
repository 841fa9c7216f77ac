package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Announcement is a dated campus notice such as an event or exam.
type Announcement struct {
	ID          string               `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string               `gorm:"size:200;not null" json:"title"`
	Description string               `gorm:"type:text;not null" json:"description"`
	Category    AnnouncementCategory `gorm:"size:32;not null;index" json:"category"`
	Date        time.Time            `gorm:"not null;index" json:"date"`
	Priority    Priority             `gorm:"size:16;not null;default:medium" json:"priority"`
	IsActive    bool                 `gorm:"not null;index" json:"is_active"`
	CreatedBy   *string              `gorm:"size:255;index" json:"created_by"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// TableName pins the table to the name used by the hosted schema.
func (Announcement) TableName() string {
	return "announcements"
}

// BeforeCreate assigns a UUID when the caller did not provide one.
func (a *Announcement) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
