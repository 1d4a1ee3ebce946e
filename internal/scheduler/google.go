package scheduler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mianvisuals/studio-api/internal/config"
	"github.com/mianvisuals/studio-api/internal/domain/model"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// GoogleScheduler creates events on the studio's Google Calendar through a
// service account.
type GoogleScheduler struct {
	svc        *calendar.Service
	calendarID string
	timeZone   string
	logger     zerolog.Logger
}

// NewGoogleScheduler authenticates with the service-account JWT flow and
// builds the Calendar API client. Keys pasted into env vars arrive with
// literal "\n" sequences, so those are unescaped first.
func NewGoogleScheduler(cfg config.CalendarConfig, logger *zerolog.Logger) (*GoogleScheduler, error) {
	conf := &jwt.Config{
		Email:      cfg.ServiceAccountEmail,
		PrivateKey: []byte(strings.ReplaceAll(cfg.PrivateKey, `\n`, "\n")),
		Scopes:     []string{calendar.CalendarScope},
		TokenURL:   google.JWTTokenURL,
	}

	ctx := context.Background()
	svc, err := calendar.NewService(ctx, option.WithTokenSource(conf.TokenSource(ctx)))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar client: %w", err)
	}

	return &GoogleScheduler{
		svc:        svc,
		calendarID: cfg.CalendarID,
		timeZone:   cfg.TimeZone,
		logger:     logger.With().Str("component", "google_scheduler").Logger(),
	}, nil
}

// Schedule implements the Scheduler interface. Attendees get the calendar
// invitation plus an email reminder a day ahead and a popup half an hour
// before the shoot.
func (s *GoogleScheduler) Schedule(ctx context.Context, ev model.BookingEvent) (string, error) {
	event := &calendar.Event{
		Summary:     ev.Title,
		Description: ev.Description,
		Location:    ev.Location,
		Start: &calendar.EventDateTime{
			DateTime: ev.Start.Format(time.RFC3339),
			TimeZone: s.timeZone,
		},
		End: &calendar.EventDateTime{
			DateTime: ev.End.Format(time.RFC3339),
			TimeZone: s.timeZone,
		},
		Attendees: []*calendar.EventAttendee{
			{Email: ev.AttendeeEmail, DisplayName: ev.AttendeeName},
		},
		Reminders: &calendar.EventReminders{
			UseDefault: false,
			Overrides: []*calendar.EventReminder{
				{Method: "email", Minutes: 24 * 60},
				{Method: "popup", Minutes: 30},
			},
			ForceSendFields: []string{"UseDefault"},
		},
	}

	created, err := s.svc.Events.Insert(s.calendarID, event).SendUpdates("all").Context(ctx).Do()
	if err != nil {
		s.logger.Error().Err(err).Str("title", ev.Title).Msg("failed to create calendar event")
		return "", err
	}
	if created.Id == "" {
		return "", fmt.Errorf("calendar API returned an event without an id")
	}

	s.logger.Info().Str("event_id", created.Id).Str("title", ev.Title).Msg("calendar event created")
	return created.Id, nil
}
