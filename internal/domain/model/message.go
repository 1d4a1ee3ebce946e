package model

import "time"

// Audience distinguishes the two notification templates.
type Audience string

const (
	AudienceOperator  Audience = "operator"  // the studio inbox
	AudienceRequester Audience = "requester" // acknowledgment back to the client
)

// NotificationMessage is a fully rendered email, built fresh per dispatch and
// never persisted.
type NotificationMessage struct {
	Audience  Audience
	Recipient string
	Subject   string
	BodyHTML  string
	BodyText  string
	ReplyTo   string // empty means the sender's own address
}

// BookingEvent is a calendar-event creation request handed to the scheduling
// sink. End is always after Start; the validator rejects past start times
// before one of these is ever built.
type BookingEvent struct {
	Title         string
	Description   string
	Start         time.Time
	End           time.Time
	AttendeeEmail string
	AttendeeName  string
	Location      string
}
