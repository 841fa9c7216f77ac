package dto

import (
	"time"

	"github.com/noah-isme/clarifyai-api/internal/models"
)

// ChatLogCreateRequest records a question asked by the caller.
type ChatLogCreateRequest struct {
	UserID       string   `json:"user_id" validate:"required"`
	Question     string   `json:"question" validate:"required,min=1,max=1000"`
	MatchedFAQID *string  `json:"matched_faq_id" validate:"omitempty,uuid"`
	Confidence   *float64 `json:"confidence" validate:"omitempty,gte=0,lte=1"`
}

// ChatLogFeedbackRequest sets the helpfulness flag.
type ChatLogFeedbackRequest struct {
	WasHelpful *bool `json:"was_helpful" validate:"required"`
}

// ChatLogResponse is the public chat log record.
type ChatLogResponse struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Question     string    `json:"question"`
	MatchedFAQID *string   `json:"matched_faq_id"`
	Confidence   *float64  `json:"confidence"`
	CreatedAt    time.Time `json:"created_at"`
	WasHelpful   *bool     `json:"was_helpful"`
}

func NewChatLogResponse(log models.ChatLog) ChatLogResponse {
	return ChatLogResponse{
		ID:           log.ID,
		UserID:       log.UserID,
		Question:     log.Question,
		MatchedFAQID: log.MatchedFAQID,
		Confidence:   log.Confidence,
		CreatedAt:    log.CreatedAt,
		WasHelpful:   log.WasHelpful,
	}
}

func NewChatLogResponseSlice(items []models.ChatLog) []ChatLogResponse {
	responses := make([]ChatLogResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, NewChatLogResponse(item))
	}
	return responses
}
