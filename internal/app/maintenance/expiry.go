package maintenance

import (
	"context"
	"errors"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/dealdock/dealdock/internal/models"
	"github.com/dealdock/dealdock/pkg/logger"
)

const defaultExpirySpec = "@hourly"

// Sweeper reconciles deal room status with wall-clock expiry: published rooms
// whose expiresAt has passed are flipped to expired. The share surface gates
// on the timestamp at read time regardless; the sweeper keeps stored status
// honest for dashboards and room lists.
type Sweeper struct {
	db   *gorm.DB
	cron *cron.Cron
	now  func() time.Time
	log  *zap.Logger

	expirySchedule string
}

// Option customises the Sweeper.
type Option func(*Sweeper)

// WithCron injects a preconfigured cron instance, primarily for testing.
func WithCron(c *cron.Cron) Option {
	return func(s *Sweeper) {
		if c != nil {
			s.cron = c
		}
	}
}

// WithNow overrides the clock used for expiry comparisons.
func WithNow(now func() time.Time) Option {
	return func(s *Sweeper) {
		if now != nil {
			s.now = now
		}
	}
}

// WithExpirySchedule overrides the cron specification for the expiry sweep.
func WithExpirySchedule(spec string) Option {
	return func(s *Sweeper) {
		if spec != "" {
			s.expirySchedule = spec
		}
	}
}

// NewSweeper constructs a Sweeper with sensible defaults.
func NewSweeper(db *gorm.DB, opts ...Option) *Sweeper {
	sweeper := &Sweeper{
		db:             db,
		now:            time.Now,
		expirySchedule: defaultExpirySpec,
		log:            logger.WithModule("maintenance"),
	}

	for _, opt := range opts {
		opt(sweeper)
	}

	if sweeper.cron == nil {
		sweeper.cron = cron.New(cron.WithLogger(cron.DiscardLogger))
	}

	return sweeper
}

// Start registers the sweep with the cron scheduler and launches it.
func (s *Sweeper) Start() error {
	if s.db == nil {
		return nil
	}

	if _, err := s.cron.AddFunc(s.expirySchedule, func() {
		if _, err := s.expireOverdueRooms(context.Background()); err != nil {
			s.log.Warn("room expiry sweep failed", zap.Error(err))
		}
	}); err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

// Stop halts the underlying scheduler, waiting for any running sweep to complete.
func (s *Sweeper) Stop() context.Context {
	if s.cron == nil {
		return context.Background()
	}
	return s.cron.Stop()
}

// RunOnce executes the sweep immediately. Primarily used in tests and during
// graceful shutdown.
func (s *Sweeper) RunOnce(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var errs error
	if s.db != nil {
		if _, err := s.expireOverdueRooms(ctx); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}

func (s *Sweeper) expireOverdueRooms(ctx context.Context) (int64, error) {
	if s.db == nil {
		return 0, errors.New("maintenance: db is required")
	}

	result := s.db.WithContext(ctx).
		Model(&models.DealRoom{}).
		Where("status = ?", models.RoomStatusPublished).
		Where("expires_at IS NOT NULL AND expires_at < ?", s.now()).
		Update("status", models.RoomStatusExpired)
	if result.Error != nil {
		return 0, result.Error
	}

	if result.RowsAffected > 0 {
		s.log.Info("expired overdue rooms", zap.Int64("count", result.RowsAffected))
	}
	return result.RowsAffected, nil
}
