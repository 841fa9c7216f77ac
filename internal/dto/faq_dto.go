package dto

import (
	"time"

	"github.com/noah-isme/clarifyai-api/internal/models"
)

// FAQCreateRequest is the payload for creating an FAQ.
type FAQCreateRequest struct {
	Question string   `json:"question" validate:"required,min=5,max=500"`
	Answer   string   `json:"answer" validate:"required,min=10,max=5000"`
	Category string   `json:"category" validate:"required,oneof=academics admissions facilities events general sports library hostel placement clubs accommodation technical"`
	Tags     []string `json:"tags"`
	IsActive *bool    `json:"is_active"`
}

// FAQUpdateRequest carries a partial FAQ update; nil fields are left untouched.
type FAQUpdateRequest struct {
	Question *string  `json:"question" validate:"omitempty,min=5,max=500"`
	Answer   *string  `json:"answer" validate:"omitempty,min=10,max=5000"`
	Category *string  `json:"category" validate:"omitempty,oneof=academics admissions facilities events general sports library hostel placement clubs accommodation technical"`
	Tags     []string `json:"tags"`
	IsActive *bool    `json:"is_active"`
}

// FAQListQuery captures list filters after query parsing.
type FAQListQuery struct {
	Category string
	Search   string
	Limit    int
}

// FAQResponse is the public FAQ record.
type FAQResponse struct {
	ID        string    `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Category  string    `json:"category"`
	Tags      []string  `json:"tags"`
	IsActive  bool      `json:"is_active"`
	CreatedBy *string   `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ViewCount int       `json:"view_count"`
}

// NewFAQResponse maps the model to its response shape.
func NewFAQResponse(faq models.FAQ) FAQResponse {
	tags := make([]string, 0, len(faq.Tags))
	tags = append(tags, faq.Tags...)

	return FAQResponse{
		ID:        faq.ID,
		Question:  faq.Question,
		Answer:    faq.Answer,
		Category:  string(faq.Category),
		Tags:      tags,
		IsActive:  faq.IsActive,
		CreatedBy: faq.CreatedBy,
		CreatedAt: faq.CreatedAt,
		UpdatedAt: faq.UpdatedAt,
		ViewCount: faq.ViewCount,
	}
}

// NewFAQResponseSlice maps a list of models, never returning nil.
func NewFAQResponseSlice(items []models.FAQ) []FAQResponse {
	responses := make([]FAQResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, NewFAQResponse(item))
	}
	return responses
}
