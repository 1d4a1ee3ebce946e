package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mianvisuals/studio-api/internal/config"
	"github.com/mianvisuals/studio-api/internal/domain/model"
	"github.com/mianvisuals/studio-api/internal/events"
	"github.com/mianvisuals/studio-api/internal/forms"
	"github.com/mianvisuals/studio-api/internal/mailer"
	"github.com/mianvisuals/studio-api/internal/notifiers"
	"github.com/mianvisuals/studio-api/internal/scheduler"
	"github.com/rs/zerolog"
)

// ErrRecipientNotConfigured means the operator inbox address is missing from
// configuration. No external call is attempted in that state.
var ErrRecipientNotConfigured = errors.New("contact email is not configured")

// ErrDispatchFailed marks a failed external sink call. Sink calls are made at
// most once; a failure surfaces to the caller immediately, who may retry
// out-of-band.
var ErrDispatchFailed = errors.New("dispatch failed")

// Receipt is the successful outcome of one submission.
type Receipt struct {
	// EventID is the calendar event created for a booking, empty otherwise.
	EventID string
	// AckFailed is set when the operator notification went out but the
	// requester acknowledgment did not. The operator email is not rolled
	// back; partial success is reported distinctly instead.
	AckFailed bool
}

// DispatchService orchestrates one submission end-to-end:
// normalize -> validate -> (booking) schedule -> notify operator -> acknowledge
// requester. The sequence is fixed because the operator message references
// the scheduling result. Everything is synchronous; no work continues after
// the response.
type DispatchService struct {
	normalizer *forms.Normalizer
	validator  *forms.Validator
	formatter  *mailer.Formatter
	notifier   notifiers.Notifier
	scheduler  scheduler.Scheduler
	bus        *events.Bus
	recipient  string
	sendAck    bool
	timeout    time.Duration
	logger     zerolog.Logger
}

// NewDispatchService wires the pipeline from configuration and its
// collaborators.
func NewDispatchService(
	cfg *config.Config,
	normalizer *forms.Normalizer,
	validator *forms.Validator,
	formatter *mailer.Formatter,
	notifier notifiers.Notifier,
	sched scheduler.Scheduler,
	bus *events.Bus,
	logger *zerolog.Logger,
) *DispatchService {
	return &DispatchService{
		normalizer: normalizer,
		validator:  validator,
		formatter:  formatter,
		notifier:   notifier,
		scheduler:  sched,
		bus:        bus,
		recipient:  cfg.Mail.Recipient,
		sendAck:    cfg.Dispatch.SendAcknowledgment,
		timeout:    cfg.Dispatch.Timeout,
		logger:     logger.With().Str("layer", "dispatch").Logger(),
	}
}

// Dispatch runs the pipeline for one inbound payload. Validation failures
// return forms.FieldErrors; infrastructure failures return
// ErrRecipientNotConfigured or ErrDispatchFailed.
func (s *DispatchService) Dispatch(ctx context.Context, kind model.SchemaKind, payload map[string]any) (*Receipt, error) {
	inq := s.normalizer.Normalize(kind, payload)
	log := s.logger.With().Stringer("submission_id", inq.ID).Str("kind", string(kind)).Logger()

	validated, err := s.validator.Validate(inq)
	if err != nil {
		var fieldErrs forms.FieldErrors
		if errors.As(err, &fieldErrs) {
			log.Warn().Int("errors", len(fieldErrs)).Msg("submission failed validation")
			s.publish(inq, events.OutcomeValidationFailed, "")
			return nil, err
		}
		return nil, err
	}

	if s.recipient == "" {
		log.Error().Msg("operator recipient address is not configured")
		s.publish(inq, events.OutcomeConfigurationError, "")
		return nil, ErrRecipientNotConfigured
	}

	receipt := &Receipt{}

	if kind == model.SchemaBooking {
		eventID, err := s.schedule(ctx, validated)
		if err != nil {
			log.Error().Err(err).Msg("failed to create calendar event")
			s.publish(inq, events.OutcomeDispatchFailed, "")
			return nil, fmt.Errorf("%w: create calendar event: %v", ErrDispatchFailed, err)
		}
		receipt.EventID = eventID
		log.Info().Str("event_id", eventID).Msg("calendar event created")
	}

	operator := s.formatter.Operator(validated, receipt.EventID)
	operator.Recipient = s.recipient
	if err := s.send(ctx, &operator); err != nil {
		log.Error().Err(err).Msg("failed to send operator notification")
		s.publish(inq, events.OutcomeDispatchFailed, receipt.EventID)
		return nil, fmt.Errorf("%w: operator notification: %v", ErrDispatchFailed, err)
	}
	log.Info().Str("recipient", s.recipient).Msg("operator notification sent")

	if s.acknowledges(kind) {
		ack := s.formatter.Requester(validated)
		if err := s.send(ctx, &ack); err != nil {
			// The operator email already went out; report partial success
			// rather than pretending nothing happened.
			log.Error().Err(err).Msg("acknowledgment failed after operator notification was sent")
			receipt.AckFailed = true
			s.publish(inq, events.OutcomePartiallyAccepted, receipt.EventID)
			return receipt, nil
		}
		log.Info().Str("recipient", validated.Email).Msg("requester acknowledgment sent")
	}

	s.publish(inq, events.OutcomeAccepted, receipt.EventID)
	return receipt, nil
}

// acknowledges reports whether the requester gets an acknowledgment for this
// schema kind. Bookings always confirm back to the client; the other forms
// follow the configuration toggle.
func (s *DispatchService) acknowledges(kind model.SchemaKind) bool {
	return s.sendAck || kind == model.SchemaBooking
}

// schedule builds the calendar event from the validated booking and calls the
// scheduling sink once, under the dispatch timeout.
func (s *DispatchService) schedule(ctx context.Context, v model.ValidatedInquiry) (string, error) {
	start, end, ok := v.EventWindow()
	if !ok {
		// The validator guarantees a parsed date for bookings.
		return "", fmt.Errorf("booking without a resolvable event window")
	}

	ev := model.BookingEvent{
		Title:         fmt.Sprintf("%s - %s", v.Category, v.Name),
		Description:   bookingDescription(v),
		Start:         start,
		End:           end,
		AttendeeEmail: v.Email,
		AttendeeName:  v.Name,
		Location:      v.Venue,
	}

	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.scheduler.Schedule(cctx, ev)
}

func (s *DispatchService) send(ctx context.Context, msg *model.NotificationMessage) error {
	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.notifier.Send(cctx, msg)
}

func (s *DispatchService) publish(inq model.Inquiry, outcome events.Outcome, eventID string) {
	s.bus.Publish(events.Submission{
		ID:      inq.ID,
		Kind:    inq.Kind,
		Outcome: outcome,
		Email:   inq.Email,
		EventID: eventID,
	})
}

func bookingDescription(v model.ValidatedInquiry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Event Type: %s\nClient: %s\nEmail: %s\nPhone: %s", v.Category, v.Name, v.Email, v.Phone)
	if v.Venue != "" {
		fmt.Fprintf(&b, "\nLocation: %s", v.Venue)
	}
	if v.Message != "" {
		fmt.Fprintf(&b, "\n\nAdditional Notes:\n%s", v.Message)
	}
	return b.String()
}
