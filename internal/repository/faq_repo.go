package repository

import (
	"context"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/clarifyai-api/internal/models"
)

const defaultFAQLimit = 100

// FAQFilter narrows FAQ list queries.
type FAQFilter struct {
	Category string
	Limit    int
}

// FAQRepository is the store gateway for the faqs table.
type FAQRepository interface {
	List(ctx context.Context, filter FAQFilter) ([]models.FAQ, error)
	GetByID(ctx context.Context, id string) (models.FAQ, error)
	Create(ctx context.Context, faq *models.FAQ, ownerID string) error
	Update(ctx context.Context, id string, fields map[string]interface{}) (models.FAQ, error)
	SoftDelete(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, id string) error
}

type faqRepository struct {
	gateway
}

// NewFAQRepository constructs the GORM-backed FAQ gateway.
func NewFAQRepository(db *gorm.DB, logger zerolog.Logger) FAQRepository {
	return &faqRepository{gateway: newGateway(db, logger, "faq_repository")}
}

func (r *faqRepository) List(ctx context.Context, filter FAQFilter) ([]models.FAQ, error) {
	query := r.db.WithContext(ctx).Model(&models.FAQ{}).Where("is_active = ?", true)
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	var items []models.FAQ
	if err := query.Order("created_at DESC").Limit(normalizeLimit(filter.Limit, defaultFAQLimit)).Find(&items).Error; err != nil {
		return nil, r.fail("faq.list", "", err)
	}

	r.logger.Debug().Int("count", len(items)).Msg("faqs retrieved")
	return items, nil
}

func (r *faqRepository) GetByID(ctx context.Context, id string) (models.FAQ, error) {
	var faq models.FAQ
	if err := r.first("faq.get", r.db.WithContext(ctx), &faq, id); err != nil {
		return models.FAQ{}, err
	}
	return faq, nil
}

// Create stamps ownership, timestamps and a zero view count, overriding
// whatever the caller put in those fields.
func (r *faqRepository) Create(ctx context.Context, faq *models.FAQ, ownerID string) error {
	now := r.timestamp()
	owner := ownerID
	faq.ID = ""
	faq.CreatedBy = &owner
	faq.CreatedAt = now
	faq.UpdatedAt = now
	faq.ViewCount = 0

	if err := r.db.WithContext(ctx).Create(faq).Error; err != nil {
		return r.fail("faq.create", "", err)
	}

	r.logger.Info().Str("id", faq.ID).Str("created_by", ownerID).Msg("faq created")
	return nil
}

// Update applies only the supplied columns and re-stamps updated_at.
func (r *faqRepository) Update(ctx context.Context, id string, fields map[string]interface{}) (models.FAQ, error) {
	changes := make(map[string]interface{}, len(fields)+1)
	for column, value := range fields {
		changes[column] = value
	}
	changes["updated_at"] = r.timestamp()

	result := r.db.WithContext(ctx).Model(&models.FAQ{}).Where("id = ?", id).Updates(changes)
	if result.Error != nil {
		return models.FAQ{}, r.fail("faq.update", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return models.FAQ{}, ErrNotFound
	}

	r.logger.Info().Str("id", id).Msg("faq updated")
	return r.GetByID(ctx, id)
}

func (r *faqRepository) SoftDelete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Model(&models.FAQ{}).Where("id = ?", id).Updates(map[string]interface{}{
		"is_active":  false,
		"updated_at": r.timestamp(),
	})
	if result.Error != nil {
		return r.fail("faq.delete", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	r.logger.Info().Str("id", id).Msg("faq soft deleted")
	return nil
}

// IncrementViews reads the current count and writes count+1. The two
// statements are not atomic; concurrent readers can lose increments.
func (r *faqRepository) IncrementViews(ctx context.Context, id string) error {
	faq, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&models.FAQ{}).Where("id = ?", id).UpdateColumn("view_count", faq.ViewCount+1)
	if result.Error != nil {
		return r.fail("faq.increment_views", id, result.Error)
	}

	return nil
}
