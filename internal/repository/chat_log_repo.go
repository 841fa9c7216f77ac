package repository

import (
	"context"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/clarifyai-api/internal/models"
)

const defaultChatLogLimit = 50

// ChatLogRepository is the store gateway for the chat_logs table.
type ChatLogRepository interface {
	Create(ctx context.Context, log *models.ChatLog) error
	ListByUser(ctx context.Context, userID string, limit int) ([]models.ChatLog, error)
	SetFeedback(ctx context.Context, id string, helpful bool) (models.ChatLog, error)
}

type chatLogRepository struct {
	gateway
}

// NewChatLogRepository constructs the GORM-backed chat log gateway.
func NewChatLogRepository(db *gorm.DB, logger zerolog.Logger) ChatLogRepository {
	return &chatLogRepository{gateway: newGateway(db, logger, "chat_log_repository")}
}

// Create stamps created_at and a fresh id; feedback always starts unset.
func (r *chatLogRepository) Create(ctx context.Context, log *models.ChatLog) error {
	log.ID = ""
	log.CreatedAt = r.timestamp()
	log.WasHelpful = nil

	if err := r.db.WithContext(ctx).Create(log).Error; err != nil {
		return r.fail("chat_log.create", "", err)
	}

	r.logger.Info().Str("id", log.ID).Str("user_id", log.UserID).Msg("chat log created")
	return nil
}

// ListByUser returns a user's logs, most recent first.
func (r *chatLogRepository) ListByUser(ctx context.Context, userID string, limit int) ([]models.ChatLog, error) {
	var items []models.ChatLog
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(normalizeLimit(limit, defaultChatLogLimit)).
		Find(&items).Error
	if err != nil {
		return nil, r.fail("chat_log.list", "", err)
	}

	r.logger.Debug().Int("count", len(items)).Str("user_id", userID).Msg("chat logs retrieved")
	return items, nil
}

func (r *chatLogRepository) SetFeedback(ctx context.Context, id string, helpful bool) (models.ChatLog, error) {
	result := r.db.WithContext(ctx).Model(&models.ChatLog{}).Where("id = ?", id).UpdateColumn("was_helpful", helpful)
	if result.Error != nil {
		return models.ChatLog{}, r.fail("chat_log.feedback", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return models.ChatLog{}, ErrNotFound
	}

	var log models.ChatLog
	if err := r.first("chat_log.get", r.db.WithContext(ctx), &log, id); err != nil {
		return models.ChatLog{}, err
	}
	return log, nil
}
