package model

import (
	"time"

	"github.com/google/uuid"
)

// SchemaKind selects which required-field configuration applies to a submission.
type SchemaKind string

const (
	SchemaContact SchemaKind = "contact"
	SchemaQuote   SchemaKind = "quote"
	SchemaBooking SchemaKind = "booking"
)

// DateRange is a pair of calendar dates. To never precedes From; the
// normalizer discards inverted pairs instead of producing one.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Single reports whether the range covers exactly one day.
func (r DateRange) Single() bool {
	return r.From.Equal(r.To)
}

// Inquiry is the canonical record produced by the normalizer. It reconciles
// the several historical payload shapes the site's forms have used into one
// struct. It is technology-agnostic and does not carry DB or JSON tags.
type Inquiry struct {
	ID   uuid.UUID
	Kind SchemaKind

	Name     string
	Email    string
	Phone    string
	Category string // event type, or how the requester found the studio

	Dates        *DateRange
	DatesDisplay string // human-readable dates, "Not specified" when unset

	DurationLabel string
	Venue         string

	Packages     []string // canonical package codes as submitted
	PackageLabel string   // display form, e.g. "Gold, Destination Wedding"

	Message string

	// Booking-only fields.
	EventTime     string // "HH:MM", local to the studio's time zone
	DurationHours int

	ReceivedAt time.Time
}

// ValidatedInquiry is an Inquiry that passed schema validation. Only the
// validator constructs one; the formatter and the dispatch coordinator accept
// nothing else.
type ValidatedInquiry struct {
	Inquiry
}

// FieldError describes a single violated validation rule. The API returns the
// full list so a client can highlight every offending field at once.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// EventWindow resolves the booking's start and end instants from the event
// date, the "HH:MM" event time, and the requested duration. A missing or
// malformed time leaves the start at midnight; a missing duration yields a
// one-hour window. ok is false when no event date was supplied.
func (i Inquiry) EventWindow() (start, end time.Time, ok bool) {
	if i.Dates == nil {
		return time.Time{}, time.Time{}, false
	}
	start = i.Dates.From
	if t, err := time.Parse("15:04", i.EventTime); err == nil {
		start = start.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute)
	}
	hours := i.DurationHours
	if hours < 1 {
		hours = 1
	}
	return start, start.Add(time.Duration(hours) * time.Hour), true
}

// NewInquiry stamps identity and receipt time onto a normalized record.
func NewInquiry(kind SchemaKind) Inquiry {
	return Inquiry{
		ID:         uuid.New(),
		Kind:       kind,
		ReceivedAt: time.Now().UTC(),
	}
}
