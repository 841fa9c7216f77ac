package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// FAQ is a frequently asked question curated by a campus user.
type FAQ struct {
	ID        string                      `gorm:"type:uuid;primaryKey" json:"id"`
	Question  string                      `gorm:"size:500;not null" json:"question"`
	Answer    string                      `gorm:"type:text;not null" json:"answer"`
	Category  FAQCategory                 `gorm:"size:32;not null;index" json:"category"`
	Tags      datatypes.JSONSlice[string] `json:"tags"`
	IsActive  bool                        `gorm:"not null;index" json:"is_active"`
	CreatedBy *string                     `gorm:"size:255;index" json:"created_by"`
	CreatedAt time.Time                   `gorm:"index" json:"created_at"`
	UpdatedAt time.Time                   `json:"updated_at"`
	ViewCount int                         `gorm:"not null;default:0" json:"view_count"`
}

// TableName pins the table to the name used by the hosted schema.
func (FAQ) TableName() string {
	return "faqs"
}

// BeforeCreate assigns a UUID when the caller did not provide one.
func (f *FAQ) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}
