package notifiers

import (
	"context"

	"github.com/mianvisuals/studio-api/internal/domain/model"
)

// Notifier defines the interface for any notification sending service.
// This allows us to easily swap or add new delivery channels.
type Notifier interface {
	// Send dispatches an already-rendered message. It is attempted at most
	// once per submission; the caller surfaces failures, it never retries.
	Send(ctx context.Context, msg *model.NotificationMessage) error
}
