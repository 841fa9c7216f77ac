package dto

import (
	"time"

	"github.com/noah-isme/clarifyai-api/internal/models"
)

// AnnouncementCreateRequest is the payload for creating an announcement.
// Date accepts RFC 3339 or a naive timestamp, which is read as UTC.
type AnnouncementCreateRequest struct {
	Title       string `json:"title" validate:"required,min=5,max=200"`
	Description string `json:"description" validate:"required,min=10,max=2000"`
	Category    string `json:"category" validate:"required,oneof=academic event exam holiday general sports cultural placement emergency facilities events holidays"`
	Date        string `json:"date" validate:"required"`
	Priority    string `json:"priority" validate:"omitempty,oneof=low medium high urgent normal"`
}

// AnnouncementUpdateRequest carries a partial announcement update.
type AnnouncementUpdateRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=5,max=200"`
	Description *string `json:"description" validate:"omitempty,min=10,max=2000"`
	Category    *string `json:"category" validate:"omitempty,oneof=academic event exam holiday general sports cultural placement emergency facilities events holidays"`
	Date        *string `json:"date"`
	Priority    *string `json:"priority" validate:"omitempty,oneof=low medium high urgent normal"`
	IsActive    *bool   `json:"is_active"`
}

// AnnouncementListQuery captures list filters after query parsing.
type AnnouncementListQuery struct {
	UpcomingOnly bool
	Category     string
	Limit        int
}

// AnnouncementResponse is the public announcement record.
type AnnouncementResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Date        time.Time `json:"date"`
	Priority    string    `json:"priority"`
	IsActive    bool      `json:"is_active"`
	CreatedBy   *string   `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewAnnouncementResponse maps the model to its response shape.
func NewAnnouncementResponse(item models.Announcement) AnnouncementResponse {
	return AnnouncementResponse{
		ID:          item.ID,
		Title:       item.Title,
		Description: item.Description,
		Category:    string(item.Category),
		Date:        item.Date.UTC(),
		Priority:    string(item.Priority),
		IsActive:    item.IsActive,
		CreatedBy:   item.CreatedBy,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

func NewAnnouncementResponseSlice(items []models.Announcement) []AnnouncementResponse {
	responses := make([]AnnouncementResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, NewAnnouncementResponse(item))
	}
	return responses
}
