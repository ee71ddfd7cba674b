// Package remind sends a day-before nudge for upcoming appointments.
package remind

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"lacquer/internal/domain"
)

// Notifier delivers reminder messages.
type Notifier interface {
	BookingReminder(b domain.Booking)
}

// History lists confirmed bookings.
type History interface {
	ListBookings(ctx context.Context) ([]domain.Booking, error)
}

// Config controls when the daily reminder run fires.
type Config struct {
	Enabled     bool   `yaml:"enabled"`
	Timezone    string `yaml:"timezone"`
	DailyHour   int    `yaml:"daily_hour"`
	DailyMinute int    `yaml:"daily_minute"`
}

// Scheduler runs one reminder pass per day at the configured local time,
// notifying for every booking dated tomorrow.
type Scheduler struct {
	config        Config
	history       History
	notifier      Notifier
	location      *time.Location
	checkInterval time.Duration
	logger        zerolog.Logger

	mu          sync.Mutex
	lastRunDate string
}

// NewScheduler creates a reminder scheduler. An empty timezone means UTC.
func NewScheduler(cfg Config, history History, notifier Notifier, logger zerolog.Logger) (*Scheduler, error) {
	loc := time.UTC
	if cfg.Timezone != "" {
		var err error
		loc, err = time.LoadLocation(cfg.Timezone)
		if err != nil {
			return nil, err
		}
	}
	return &Scheduler{
		config:        cfg,
		history:       history,
		notifier:      notifier,
		location:      loc,
		checkInterval: time.Minute,
		logger:        logger.With().Str("component", "remind").Logger(),
	}, nil
}

// Start runs the scheduler loop until the context is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	if !s.config.Enabled {
		s.logger.Info().Msg("reminders disabled")
		return
	}

	s.logger.Info().
		Str("timezone", s.location.String()).
		Int("hour", s.config.DailyHour).
		Int("minute", s.config.DailyMinute).
		Msg("reminder scheduler started")

	ticker := time.NewTicker(s.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.checkAndRun(ctx)
		}
	}
}

func (s *Scheduler) checkAndRun(ctx context.Context) {
	now := time.Now().In(s.location)
	today := now.Format("2006-01-02")

	s.mu.Lock()
	alreadyRan := s.lastRunDate == today
	s.mu.Unlock()
	if alreadyRan {
		return
	}
	if now.Hour() != s.config.DailyHour || now.Minute() != s.config.DailyMinute {
		return
	}

	s.mu.Lock()
	s.lastRunDate = today
	s.mu.Unlock()

	s.RunNow(ctx)
}

// RunNow performs one reminder pass immediately.
func (s *Scheduler) RunNow(ctx context.Context) {
	bookings, err := s.history.ListBookings(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("listing bookings for reminders failed")
		return
	}

	tomorrow := time.Now().In(s.location).AddDate(0, 0, 1).Format("2006-01-02")
	sent := 0
	for _, b := range bookings {
		if b.Date.In(s.location).Format("2006-01-02") != tomorrow {
			continue
		}
		s.notifier.BookingReminder(b)
		sent++
	}
	s.logger.Info().Int("total", len(bookings)).Int("sent", sent).Msg("reminder pass finished")
}
