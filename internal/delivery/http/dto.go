package http

import (
	"github.com/mianvisuals/studio-api/internal/domain/model"
	"github.com/mianvisuals/studio-api/internal/instagram"
)

// SubmissionResponse is returned on a successful form submission. EventID is
// populated for bookings; Warning is set when the operator was notified but
// the requester acknowledgment could not be delivered.
type SubmissionResponse struct {
	Message string `json:"message"`
	EventID string `json:"eventId,omitempty"`
	Warning string `json:"warning,omitempty"`
}

// ValidationErrorResponse carries the full list of field errors so a client
// UI can highlight every offending field at once.
type ValidationErrorResponse struct {
	Error   string             `json:"error"`
	Details []model.FieldError `json:"details"`
}

// ErrorResponse defines a standard structure for API error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// InstagramFeedResponse wraps the proxied feed.
type InstagramFeedResponse struct {
	Posts []instagram.Post `json:"posts"`
	Count int              `json:"count"`
}
