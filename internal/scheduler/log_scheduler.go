package scheduler

import (
	"context"

	"github.com/google/uuid"
	"github.com/mianvisuals/studio-api/internal/domain/model"
	"github.com/rs/zerolog"
)

// LogScheduler is a mock scheduler for development. It logs the would-be
// calendar event and hands back a synthetic event id.
type LogScheduler struct {
	logger zerolog.Logger
}

// NewLogScheduler creates a new instance of LogScheduler.
func NewLogScheduler(logger *zerolog.Logger) *LogScheduler {
	return &LogScheduler{
		logger: logger.With().Str("component", "log_scheduler").Logger(),
	}
}

// Schedule implements the Scheduler interface.
func (s *LogScheduler) Schedule(_ context.Context, ev model.BookingEvent) (string, error) {
	id := "dev-" + uuid.New().String()

	s.logger.Info().
		Str("event_id", id).
		Str("title", ev.Title).
		Time("start", ev.Start).
		Time("end", ev.End).
		Str("attendee", ev.AttendeeEmail).
		Msg(">>> MOCK SCHEDULE: calendar event created")

	return id, nil
}
