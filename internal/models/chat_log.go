package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChatLog records one question asked to the assistant. Rows are immutable
// apart from the WasHelpful feedback flag.
type ChatLog struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       string    `gorm:"size:255;not null;index" json:"user_id"`
	Question     string    `gorm:"size:1000;not null" json:"question"`
	MatchedFAQID *string   `gorm:"column:matched_faq_id;type:uuid" json:"matched_faq_id"`
	Confidence   *float64  `json:"confidence"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
	WasHelpful   *bool     `json:"was_helpful"`
}

// TableName pins the table to the name used by the hosted schema.
func (ChatLog) TableName() string {
	return "chat_logs"
}

// BeforeCreate assigns a UUID when the caller did not provide one.
func (l *ChatLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}
