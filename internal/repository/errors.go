package repository

import (
	"errors"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/clarifyai-api/internal/observability"
)

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrOperationFailed is the neutral signal for any store failure. The
	// cause is logged at the gateway and never returned.
	ErrOperationFailed = errors.New("store operation failed")
)

// gateway holds what every table repository shares.
type gateway struct {
	db     *gorm.DB
	logger zerolog.Logger
	now    func() time.Time
}

func newGateway(db *gorm.DB, logger zerolog.Logger, component string) gateway {
	return gateway{
		db:     db,
		logger: logger.With().Str("component", component).Logger(),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// timestamp returns the current time at the precision Postgres stores.
func (g gateway) timestamp() time.Time {
	return g.now().UTC().Truncate(time.Microsecond)
}

// fail logs and counts a store error and returns the neutral failure.
func (g gateway) fail(operation, id string, err error) error {
	observability.StoreFailures().WithLabelValues(operation).Inc()
	event := g.logger.Error().Err(err).Str("operation", operation)
	if id != "" {
		event = event.Str("id", id)
	}
	event.Msg("store operation failed")
	return ErrOperationFailed
}

// first loads a single row by primary key, distinguishing absence from failure.
func (g gateway) first(operation string, tx *gorm.DB, dest interface{}, id string) error {
	err := tx.Where("id = ?", id).Take(dest).Error
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		g.logger.Warn().Str("operation", operation).Str("id", id).Msg("record not found")
		return ErrNotFound
	}
	return g.fail(operation, id, err)
}

func normalizeLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	return limit
}
