package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/clarifyai-api/internal/auth"
	"github.com/noah-isme/clarifyai-api/internal/dto"
	"github.com/noah-isme/clarifyai-api/internal/models"
	"github.com/noah-isme/clarifyai-api/internal/observability"
	"github.com/noah-isme/clarifyai-api/internal/repository"
	"github.com/noah-isme/clarifyai-api/pkg/events"
)

const (
	announcementCachePrefix = "announcements:list:"
	maxDescriptionRunes     = 2000
)

var announcementDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// AnnouncementService exposes announcement reads and owner-scoped writes.
type AnnouncementService interface {
	List(ctx context.Context, query dto.AnnouncementListQuery) ([]dto.AnnouncementResponse, error)
	Get(ctx context.Context, id string) (dto.AnnouncementResponse, error)
	Create(ctx context.Context, actor auth.Identity, payload dto.AnnouncementCreateRequest) (dto.AnnouncementResponse, error)
	Update(ctx context.Context, actor auth.Identity, id string, payload dto.AnnouncementUpdateRequest) (dto.AnnouncementResponse, error)
	Delete(ctx context.Context, actor auth.Identity, id string) error
}

type announcementService struct {
	repo      repository.AnnouncementRepository
	cache     *redis.Client
	ttl       time.Duration
	validator *validator.Validate
	events    events.Publisher
	logger    zerolog.Logger
	tracer    trace.Tracer
	sanitizer *bluemonday.Policy
	now       func() time.Time
}

// NewAnnouncementService constructs the announcement service. A nil cache
// client disables list caching.
func NewAnnouncementService(repo repository.AnnouncementRepository, cache *redis.Client, ttl time.Duration, validate *validator.Validate, publisher events.Publisher, logger zerolog.Logger) AnnouncementService {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &announcementService{
		repo:      repo,
		cache:     cache,
		ttl:       ttl,
		validator: validate,
		events:    publisher,
		logger:    logger.With().Str("component", "announcement_service").Logger(),
		tracer:    otel.Tracer("github.com/noah-isme/clarifyai-api/internal/service/announcement"),
		sanitizer: newRichTextPolicy(),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *announcementService) List(ctx context.Context, query dto.AnnouncementListQuery) ([]dto.AnnouncementResponse, error) {
	cacheKey := ""
	if s.cache != nil {
		cacheKey = fmt.Sprintf("%sv1:%t:%s:%d", announcementCachePrefix, query.UpcomingOnly, query.Category, query.Limit)
		if cached, ok := s.readCache(ctx, cacheKey); ok {
			observability.AnnouncementsCache().WithLabelValues("hit").Inc()
			if query.UpcomingOnly {
				return s.dropPast(cached), nil
			}
			return cached, nil
		}
	}

	items, err := s.repo.List(ctx, repository.AnnouncementFilter{
		Category:     query.Category,
		Limit:        query.Limit,
		UpcomingOnly: query.UpcomingOnly,
	})
	if err != nil {
		if errors.Is(err, repository.ErrOperationFailed) {
			s.logger.Warn().Bool("upcoming_only", query.UpcomingOnly).Msg("announcement list degraded to empty result")
			return []dto.AnnouncementResponse{}, nil
		}
		return nil, err
	}

	responses := dto.NewAnnouncementResponseSlice(items)
	if cacheKey != "" {
		observability.AnnouncementsCache().WithLabelValues("miss").Inc()
		s.writeCache(ctx, cacheKey, responses)
	}
	return responses, nil
}

// dropPast removes entries that started after they were cached.
func (s *announcementService) dropPast(items []dto.AnnouncementResponse) []dto.AnnouncementResponse {
	now := s.now()
	upcoming := make([]dto.AnnouncementResponse, 0, len(items))
	for _, item := range items {
		if !item.Date.Before(now) {
			upcoming = append(upcoming, item)
		}
	}
	return upcoming
}

func (s *announcementService) readCache(ctx context.Context, key string) ([]dto.AnnouncementResponse, bool) {
	cached, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			observability.AnnouncementsCache().WithLabelValues("error").Inc()
			s.logger.Warn().Err(err).Str("key", key).Msg("failed to read announcements cache")
		}
		return nil, false
	}

	var responses []dto.AnnouncementResponse
	if err := json.Unmarshal(cached, &responses); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("discarding corrupt announcements cache entry")
		return nil, false
	}
	return responses, true
}

func (s *announcementService) writeCache(ctx context.Context, key string, responses []dto.AnnouncementResponse) {
	payload, err := json.Marshal(responses)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, payload, s.ttl).Err(); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("failed to cache announcements")
	}
}

func (s *announcementService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}

	iter := s.cache.Scan(ctx, 0, announcementCachePrefix+"*", 100).Iterator()
	keys := make([]string, 0)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to scan announcements cache")
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := s.cache.Del(ctx, keys...).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to invalidate announcements cache")
	}
}

func (s *announcementService) Get(ctx context.Context, id string) (dto.AnnouncementResponse, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dto.AnnouncementResponse{}, err
	}
	return dto.NewAnnouncementResponse(item), nil
}

func (s *announcementService) Create(ctx context.Context, actor auth.Identity, payload dto.AnnouncementCreateRequest) (dto.AnnouncementResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AnnouncementResponse{}, err
	}

	ctx, span := s.tracer.Start(ctx, "announcement.create", trace.WithAttributes(
		attribute.String("announcement.category", payload.Category),
		attribute.String("actor.id", actor.ID),
	))
	defer span.End()

	date, err := parseAnnouncementDate(payload.Date)
	if err != nil {
		failSpan(span, err, "invalid_date")
		return dto.AnnouncementResponse{}, err
	}
	description, err := s.cleanDescription(payload.Description)
	if err != nil {
		failSpan(span, err, "description_rejected")
		return dto.AnnouncementResponse{}, err
	}

	priority := models.Priority(payload.Priority)
	if priority == "" {
		priority = models.PriorityMedium
	}

	item := models.Announcement{
		Title:       payload.Title,
		Description: description,
		Category:    models.AnnouncementCategory(payload.Category),
		Date:        date,
		Priority:    priority,
	}
	if err := s.repo.Create(ctx, &item, actor.ID); err != nil {
		failSpan(span, err, "create_failed")
		return dto.AnnouncementResponse{}, err
	}

	s.invalidate(ctx)
	response := dto.NewAnnouncementResponse(item)
	publishEvent(ctx, s.events, s.logger, events.Event{Type: events.AnnouncementCreated, ID: item.ID, Actor: actor.ID, Data: response})
	return response, nil
}

func (s *announcementService) Update(ctx context.Context, actor auth.Identity, id string, payload dto.AnnouncementUpdateRequest) (dto.AnnouncementResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AnnouncementResponse{}, err
	}

	var date time.Time
	if payload.Date != nil {
		parsed, err := parseAnnouncementDate(*payload.Date)
		if err != nil {
			return dto.AnnouncementResponse{}, err
		}
		date = parsed
	}

	ctx, span := s.tracer.Start(ctx, "announcement.update", trace.WithAttributes(
		attribute.String("announcement.id", id),
		attribute.String("actor.id", actor.ID),
	))
	defer span.End()

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		failSpan(span, err, "lookup_failed")
		return dto.AnnouncementResponse{}, err
	}
	if err := authorizeOwner(existing.CreatedBy, actor); err != nil {
		s.logger.Warn().Str("id", id).Str("actor", actor.ID).Msg("announcement update denied")
		failSpan(span, err, "forbidden")
		return dto.AnnouncementResponse{}, err
	}

	fields := make(map[string]interface{})
	if payload.Title != nil {
		fields["title"] = *payload.Title
	}
	if payload.Description != nil {
		description, err := s.cleanDescription(*payload.Description)
		if err != nil {
			failSpan(span, err, "description_rejected")
			return dto.AnnouncementResponse{}, err
		}
		fields["description"] = description
	}
	if payload.Category != nil {
		fields["category"] = *payload.Category
	}
	if payload.Date != nil {
		fields["date"] = date
	}
	if payload.Priority != nil {
		fields["priority"] = *payload.Priority
	}
	if payload.IsActive != nil {
		fields["is_active"] = *payload.IsActive
	}
	if len(fields) == 0 {
		return dto.AnnouncementResponse{}, ErrNoFieldsToUpdate
	}

	updated, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		failSpan(span, err, "update_failed")
		return dto.AnnouncementResponse{}, err
	}

	s.invalidate(ctx)
	response := dto.NewAnnouncementResponse(updated)
	publishEvent(ctx, s.events, s.logger, events.Event{Type: events.AnnouncementUpdated, ID: id, Actor: actor.ID, Data: response})
	return response, nil
}

func (s *announcementService) Delete(ctx context.Context, actor auth.Identity, id string) error {
	ctx, span := s.tracer.Start(ctx, "announcement.delete", trace.WithAttributes(
		attribute.String("announcement.id", id),
		attribute.String("actor.id", actor.ID),
	))
	defer span.End()

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		failSpan(span, err, "lookup_failed")
		return err
	}
	if err := authorizeOwner(existing.CreatedBy, actor); err != nil {
		s.logger.Warn().Str("id", id).Str("actor", actor.ID).Msg("announcement delete denied")
		failSpan(span, err, "forbidden")
		return err
	}

	if err := s.repo.SoftDelete(ctx, id); err != nil {
		failSpan(span, err, "delete_failed")
		return err
	}

	s.invalidate(ctx)
	publishEvent(ctx, s.events, s.logger, events.Event{Type: events.AnnouncementDeleted, ID: id, Actor: actor.ID})
	return nil
}

func (s *announcementService) cleanDescription(description string) (string, error) {
	return cleanRichText(s.sanitizer, "description", description, maxDescriptionRunes)
}

// parseAnnouncementDate accepts RFC 3339 and naive ISO timestamps. Naive
// values are read as UTC. The result is UTC at microsecond precision.
func parseAnnouncementDate(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	for _, layout := range announcementDateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.UTC().Truncate(time.Microsecond), nil
		}
	}
	return time.Time{}, &FieldError{Field: "date", Err: ErrInvalidDate}
}
