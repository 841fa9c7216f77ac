package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/datatypes"

	"github.com/noah-isme/clarifyai-api/internal/auth"
	"github.com/noah-isme/clarifyai-api/internal/dto"
	"github.com/noah-isme/clarifyai-api/internal/models"
	"github.com/noah-isme/clarifyai-api/internal/observability"
	"github.com/noah-isme/clarifyai-api/internal/repository"
	"github.com/noah-isme/clarifyai-api/pkg/events"
)

const maxAnswerRunes = 5000

// FAQService exposes FAQ reads and owner-scoped writes.
type FAQService interface {
	List(ctx context.Context, query dto.FAQListQuery) ([]dto.FAQResponse, error)
	Get(ctx context.Context, id string) (dto.FAQResponse, error)
	Create(ctx context.Context, actor auth.Identity, payload dto.FAQCreateRequest) (dto.FAQResponse, error)
	Update(ctx context.Context, actor auth.Identity, id string, payload dto.FAQUpdateRequest) (dto.FAQResponse, error)
	Delete(ctx context.Context, actor auth.Identity, id string) error
}

type faqService struct {
	repo      repository.FAQRepository
	validator *validator.Validate
	events    events.Publisher
	logger    zerolog.Logger
	tracer    trace.Tracer
	sanitizer *bluemonday.Policy
}

// NewFAQService constructs the FAQ service. A nil publisher disables events.
func NewFAQService(repo repository.FAQRepository, validate *validator.Validate, publisher events.Publisher, logger zerolog.Logger) FAQService {
	return &faqService{
		repo:      repo,
		validator: validate,
		events:    publisher,
		logger:    logger.With().Str("component", "faq_service").Logger(),
		tracer:    otel.Tracer("github.com/noah-isme/clarifyai-api/internal/service/faq"),
		sanitizer: newRichTextPolicy(),
	}
}

// List returns active FAQs. The search term is applied to the already
// limited result set. Store failures degrade to an empty list.
func (s *faqService) List(ctx context.Context, query dto.FAQListQuery) ([]dto.FAQResponse, error) {
	items, err := s.repo.List(ctx, repository.FAQFilter{Category: query.Category, Limit: query.Limit})
	if err != nil {
		if errors.Is(err, repository.ErrOperationFailed) {
			s.logger.Warn().Str("category", query.Category).Msg("faq list degraded to empty result")
			return []dto.FAQResponse{}, nil
		}
		return nil, err
	}

	term := strings.ToLower(query.Search)
	if term == "" {
		return dto.NewFAQResponseSlice(items), nil
	}

	matched := make([]models.FAQ, 0, len(items))
	for _, item := range items {
		if matchesSearch(item, term) {
			matched = append(matched, item)
		}
	}
	return dto.NewFAQResponseSlice(matched), nil
}

func matchesSearch(faq models.FAQ, term string) bool {
	return strings.Contains(strings.ToLower(faq.Question), term) ||
		strings.Contains(strings.ToLower(faq.Answer), term) ||
		strings.Contains(strings.ToLower(strings.Join(faq.Tags, " ")), term)
}

// Get returns the FAQ as read and then bumps its view count. A failed bump
// is logged and does not affect the response.
func (s *faqService) Get(ctx context.Context, id string) (dto.FAQResponse, error) {
	faq, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dto.FAQResponse{}, err
	}

	if err := s.repo.IncrementViews(ctx, id); err != nil {
		s.logger.Warn().Err(err).Str("id", id).Msg("failed to increment faq views")
	} else {
		observability.FAQViews().Inc()
	}

	return dto.NewFAQResponse(faq), nil
}

func (s *faqService) Create(ctx context.Context, actor auth.Identity, payload dto.FAQCreateRequest) (dto.FAQResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.FAQResponse{}, err
	}

	ctx, span := s.tracer.Start(ctx, "faq.create", trace.WithAttributes(
		attribute.String("faq.category", payload.Category),
		attribute.String("actor.id", actor.ID),
	))
	defer span.End()

	answer, err := s.cleanAnswer(payload.Answer)
	if err != nil {
		failSpan(span, err, "answer_rejected")
		return dto.FAQResponse{}, err
	}

	active := true
	if payload.IsActive != nil {
		active = *payload.IsActive
	}

	faq := models.FAQ{
		Question: payload.Question,
		Answer:   answer,
		Category: models.FAQCategory(payload.Category),
		Tags:     datatypes.JSONSlice[string](normalizeTags(payload.Tags)),
		IsActive: active,
	}
	if err := s.repo.Create(ctx, &faq, actor.ID); err != nil {
		failSpan(span, err, "create_failed")
		return dto.FAQResponse{}, err
	}

	span.SetAttributes(attribute.String("faq.id", faq.ID))
	response := dto.NewFAQResponse(faq)
	publishEvent(ctx, s.events, s.logger, events.Event{Type: events.FAQCreated, ID: faq.ID, Actor: actor.ID, Data: response})
	return response, nil
}

func (s *faqService) Update(ctx context.Context, actor auth.Identity, id string, payload dto.FAQUpdateRequest) (dto.FAQResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.FAQResponse{}, err
	}

	ctx, span := s.tracer.Start(ctx, "faq.update", trace.WithAttributes(
		attribute.String("faq.id", id),
		attribute.String("actor.id", actor.ID),
	))
	defer span.End()

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		failSpan(span, err, "lookup_failed")
		return dto.FAQResponse{}, err
	}
	if err := authorizeOwner(existing.CreatedBy, actor); err != nil {
		s.logger.Warn().Str("id", id).Str("actor", actor.ID).Msg("faq update denied")
		failSpan(span, err, "forbidden")
		return dto.FAQResponse{}, err
	}

	fields := make(map[string]interface{})
	if payload.Question != nil {
		fields["question"] = *payload.Question
	}
	if payload.Answer != nil {
		answer, err := s.cleanAnswer(*payload.Answer)
		if err != nil {
			failSpan(span, err, "answer_rejected")
			return dto.FAQResponse{}, err
		}
		fields["answer"] = answer
	}
	if payload.Category != nil {
		fields["category"] = *payload.Category
	}
	if payload.Tags != nil {
		fields["tags"] = datatypes.JSONSlice[string](normalizeTags(payload.Tags))
	}
	if payload.IsActive != nil {
		fields["is_active"] = *payload.IsActive
	}
	if len(fields) == 0 {
		return dto.FAQResponse{}, ErrNoFieldsToUpdate
	}

	updated, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		failSpan(span, err, "update_failed")
		return dto.FAQResponse{}, err
	}

	response := dto.NewFAQResponse(updated)
	publishEvent(ctx, s.events, s.logger, events.Event{Type: events.FAQUpdated, ID: id, Actor: actor.ID, Data: response})
	return response, nil
}

func (s *faqService) Delete(ctx context.Context, actor auth.Identity, id string) error {
	ctx, span := s.tracer.Start(ctx, "faq.delete", trace.WithAttributes(
		attribute.String("faq.id", id),
		attribute.String("actor.id", actor.ID),
	))
	defer span.End()

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		failSpan(span, err, "lookup_failed")
		return err
	}
	if err := authorizeOwner(existing.CreatedBy, actor); err != nil {
		s.logger.Warn().Str("id", id).Str("actor", actor.ID).Msg("faq delete denied")
		failSpan(span, err, "forbidden")
		return err
	}

	if err := s.repo.SoftDelete(ctx, id); err != nil {
		failSpan(span, err, "delete_failed")
		return err
	}

	publishEvent(ctx, s.events, s.logger, events.Event{Type: events.FAQDeleted, ID: id, Actor: actor.ID})
	return nil
}

func (s *faqService) cleanAnswer(answer string) (string, error) {
	return cleanRichText(s.sanitizer, "answer", answer, maxAnswerRunes)
}
