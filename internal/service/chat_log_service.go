package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/clarifyai-api/internal/auth"
	"github.com/noah-isme/clarifyai-api/internal/dto"
	"github.com/noah-isme/clarifyai-api/internal/models"
	"github.com/noah-isme/clarifyai-api/internal/repository"
	"github.com/noah-isme/clarifyai-api/pkg/events"
)

// feedbackScanLimit bounds how far back a caller's history is searched when
// setting feedback. Older logs are reported as not found.
const feedbackScanLimit = 1000

// ChatLogService records assistant questions and their feedback.
type ChatLogService interface {
	Create(ctx context.Context, actor auth.Identity, payload dto.ChatLogCreateRequest) (dto.ChatLogResponse, error)
	History(ctx context.Context, actor auth.Identity, limit int) ([]dto.ChatLogResponse, error)
	Feedback(ctx context.Context, actor auth.Identity, id string, payload dto.ChatLogFeedbackRequest) (dto.ChatLogResponse, error)
}

type chatLogService struct {
	repo      repository.ChatLogRepository
	validator *validator.Validate
	events    events.Publisher
	logger    zerolog.Logger
	tracer    trace.Tracer
}

// NewChatLogService constructs the chat log service.
func NewChatLogService(repo repository.ChatLogRepository, validate *validator.Validate, publisher events.Publisher, logger zerolog.Logger) ChatLogService {
	return &chatLogService{
		repo:      repo,
		validator: validate,
		events:    publisher,
		logger:    logger.With().Str("component", "chat_log_service").Logger(),
		tracer:    otel.Tracer("github.com/noah-isme/clarifyai-api/internal/service/chat_log"),
	}
}

func (s *chatLogService) Create(ctx context.Context, actor auth.Identity, payload dto.ChatLogCreateRequest) (dto.ChatLogResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ChatLogResponse{}, err
	}
	if payload.UserID != actor.ID {
		s.logger.Warn().Str("actor", actor.ID).Str("user_id", payload.UserID).Msg("chat log identity mismatch")
		return dto.ChatLogResponse{}, ErrChatLogIdentityMismatch
	}

	ctx, span := s.tracer.Start(ctx, "chat_log.create", trace.WithAttributes(attribute.String("actor.id", actor.ID)))
	defer span.End()

	log := models.ChatLog{
		UserID:       actor.ID,
		Question:     payload.Question,
		MatchedFAQID: payload.MatchedFAQID,
		Confidence:   payload.Confidence,
	}
	if err := s.repo.Create(ctx, &log); err != nil {
		failSpan(span, err, "create_failed")
		return dto.ChatLogResponse{}, err
	}

	response := dto.NewChatLogResponse(log)
	publishEvent(ctx, s.events, s.logger, events.Event{Type: events.ChatLogCreated, ID: log.ID, Actor: actor.ID, Data: response})
	return response, nil
}

// History returns the caller's logs, newest first. Store failures degrade to
// an empty list.
func (s *chatLogService) History(ctx context.Context, actor auth.Identity, limit int) ([]dto.ChatLogResponse, error) {
	items, err := s.repo.ListByUser(ctx, actor.ID, limit)
	if err != nil {
		if errors.Is(err, repository.ErrOperationFailed) {
			s.logger.Warn().Str("actor", actor.ID).Msg("chat history degraded to empty result")
			return []dto.ChatLogResponse{}, nil
		}
		return nil, err
	}
	return dto.NewChatLogResponseSlice(items), nil
}

// Feedback only reaches logs found in the caller's own history, so another
// user's log is indistinguishable from a missing one.
func (s *chatLogService) Feedback(ctx context.Context, actor auth.Identity, id string, payload dto.ChatLogFeedbackRequest) (dto.ChatLogResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ChatLogResponse{}, err
	}

	ctx, span := s.tracer.Start(ctx, "chat_log.feedback", trace.WithAttributes(
		attribute.String("chat_log.id", id),
		attribute.String("actor.id", actor.ID),
	))
	defer span.End()

	history, err := s.repo.ListByUser(ctx, actor.ID, feedbackScanLimit)
	if err != nil && !errors.Is(err, repository.ErrOperationFailed) {
		failSpan(span, err, "history_failed")
		return dto.ChatLogResponse{}, err
	}

	owned := false
	for _, log := range history {
		if log.ID == id {
			owned = true
			break
		}
	}
	if !owned {
		span.SetAttributes(attribute.Bool("chat_log.found", false))
		return dto.ChatLogResponse{}, repository.ErrNotFound
	}

	updated, err := s.repo.SetFeedback(ctx, id, *payload.WasHelpful)
	if err != nil {
		failSpan(span, err, "feedback_failed")
		return dto.ChatLogResponse{}, err
	}

	response := dto.NewChatLogResponse(updated)
	publishEvent(ctx, s.events, s.logger, events.Event{Type: events.ChatLogFeedback, ID: id, Actor: actor.ID, Data: response})
	return response, nil
}
