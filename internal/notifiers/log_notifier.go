package notifiers

import (
	"context"

	"github.com/mianvisuals/studio-api/internal/domain/model"
	"github.com/rs/zerolog"
)

// LogNotifier is a mock notifier that implements the Notifier interface.
// It simply logs the message details instead of sending them through a real
// channel. This is extremely useful for development and testing.
type LogNotifier struct {
	logger zerolog.Logger
}

// NewLogNotifier creates a new instance of LogNotifier.
func NewLogNotifier(logger *zerolog.Logger) *LogNotifier {
	return &LogNotifier{
		logger: logger.With().Str("component", "log_notifier").Logger(),
	}
}

// Send implements the Notifier interface.
func (n *LogNotifier) Send(_ context.Context, msg *model.NotificationMessage) error {
	n.logger.Info().
		Str("audience", string(msg.Audience)).
		Str("recipient", msg.Recipient).
		Str("subject", msg.Subject).
		Msg(">>> MOCK SEND: Notification dispatched")

	return nil
}
