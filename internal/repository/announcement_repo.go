package repository

import (
	"context"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/clarifyai-api/internal/models"
)

const defaultAnnouncementLimit = 50

// AnnouncementFilter narrows announcement list queries.
type AnnouncementFilter struct {
	Category     string
	Limit        int
	UpcomingOnly bool
}

// AnnouncementRepository is the store gateway for the announcements table.
type AnnouncementRepository interface {
	List(ctx context.Context, filter AnnouncementFilter) ([]models.Announcement, error)
	GetByID(ctx context.Context, id string) (models.Announcement, error)
	Create(ctx context.Context, announcement *models.Announcement, ownerID string) error
	Update(ctx context.Context, id string, fields map[string]interface{}) (models.Announcement, error)
	SoftDelete(ctx context.Context, id string) error
}

type announcementRepository struct {
	gateway
}

// NewAnnouncementRepository constructs the GORM-backed announcement gateway.
func NewAnnouncementRepository(db *gorm.DB, logger zerolog.Logger) AnnouncementRepository {
	return &announcementRepository{gateway: newGateway(db, logger, "announcement_repository")}
}

// List returns active announcements, soonest event first.
func (r *announcementRepository) List(ctx context.Context, filter AnnouncementFilter) ([]models.Announcement, error) {
	query := r.db.WithContext(ctx).Model(&models.Announcement{}).Where("is_active = ?", true)
	if filter.UpcomingOnly {
		query = query.Where("date >= ?", r.now().UTC())
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	var items []models.Announcement
	if err := query.Order("date ASC").Limit(normalizeLimit(filter.Limit, defaultAnnouncementLimit)).Find(&items).Error; err != nil {
		return nil, r.fail("announcement.list", "", err)
	}

	r.logger.Debug().Int("count", len(items)).Bool("upcoming_only", filter.UpcomingOnly).Msg("announcements retrieved")
	return items, nil
}

func (r *announcementRepository) GetByID(ctx context.Context, id string) (models.Announcement, error) {
	var announcement models.Announcement
	if err := r.first("announcement.get", r.db.WithContext(ctx), &announcement, id); err != nil {
		return models.Announcement{}, err
	}
	return announcement, nil
}

// Create stamps ownership and timestamps and forces the row active.
func (r *announcementRepository) Create(ctx context.Context, announcement *models.Announcement, ownerID string) error {
	now := r.timestamp()
	owner := ownerID
	announcement.ID = ""
	announcement.CreatedBy = &owner
	announcement.CreatedAt = now
	announcement.UpdatedAt = now
	announcement.IsActive = true

	if err := r.db.WithContext(ctx).Create(announcement).Error; err != nil {
		return r.fail("announcement.create", "", err)
	}

	r.logger.Info().Str("id", announcement.ID).Str("created_by", ownerID).Msg("announcement created")
	return nil
}

func (r *announcementRepository) Update(ctx context.Context, id string, fields map[string]interface{}) (models.Announcement, error) {
	changes := make(map[string]interface{}, len(fields)+1)
	for column, value := range fields {
		changes[column] = value
	}
	changes["updated_at"] = r.timestamp()

	result := r.db.WithContext(ctx).Model(&models.Announcement{}).Where("id = ?", id).Updates(changes)
	if result.Error != nil {
		return models.Announcement{}, r.fail("announcement.update", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return models.Announcement{}, ErrNotFound
	}

	r.logger.Info().Str("id", id).Msg("announcement updated")
	return r.GetByID(ctx, id)
}

func (r *announcementRepository) SoftDelete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Model(&models.Announcement{}).Where("id = ?", id).Updates(map[string]interface{}{
		"is_active":  false,
		"updated_at": r.timestamp(),
	})
	if result.Error != nil {
		return r.fail("announcement.delete", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	r.logger.Info().Str("id", id).Msg("announcement soft deleted")
	return nil
}
