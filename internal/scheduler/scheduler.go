// Package scheduler integrates booking submissions with the studio calendar.
package scheduler

import (
	"context"

	"github.com/mianvisuals/studio-api/internal/config"
	"github.com/mianvisuals/studio-api/internal/domain/model"
	"github.com/rs/zerolog"
)

// Scheduler defines the interface for the calendar-event creation service.
type Scheduler interface {
	// Schedule creates a calendar event for the booking and returns the
	// provider's event identifier. It is attempted at most once per
	// submission; the caller surfaces failures, it never retries.
	Schedule(ctx context.Context, ev model.BookingEvent) (string, error)
}

// NewScheduler selects the calendar implementation based on the
// configuration mode, falling back to the log-only scheduler when the
// Google credentials are absent.
func NewScheduler(cfg *config.Config, logger *zerolog.Logger) (Scheduler, error) {
	log := logger.With().Str("component", "scheduler").Logger()

	if cfg.Notifiers.Mode == "production" && cfg.Calendar.ServiceAccountEmail != "" && cfg.Calendar.PrivateKey != "" {
		gs, err := NewGoogleScheduler(cfg.Calendar, logger)
		if err != nil {
			return nil, err
		}
		log.Info().Str("calendar_id", cfg.Calendar.CalendarID).Msg("google calendar scheduler enabled")
		return gs, nil
	}

	log.Info().Msg("log scheduler enabled")
	return NewLogScheduler(logger), nil
}
