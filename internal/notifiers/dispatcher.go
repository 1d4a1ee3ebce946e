package notifiers

import (
	"context"
	"fmt"

	"github.com/mianvisuals/studio-api/internal/config"
	"github.com/mianvisuals/studio-api/internal/domain/model"
	"github.com/rs/zerolog"
)

// Dispatcher is a composite notifier: it delivers every message through the
// primary channel (SMTP, or the log in development mode) and mirrors
// operator-bound messages to the Telegram ops chat when one is configured.
// It implements the Notifier interface itself.
type Dispatcher struct {
	primary Notifier
	mirror  Notifier
	logger  zerolog.Logger
}

// NewDispatcher creates a new Dispatcher and initializes channel notifiers
// based on the application's configuration mode.
func NewDispatcher(cfg *config.Config, logger *zerolog.Logger) (*Dispatcher, error) {
	log := logger.With().Str("component", "dispatcher").Logger()
	log.Info().Str("mode", cfg.Notifiers.Mode).Msg("initializing notifiers")

	// LogNotifier is the default, so a bare config still runs end-to-end.
	var primary Notifier = NewLogNotifier(logger)
	var mirror Notifier

	// In "production" mode, try to override the default with real channels.
	if cfg.Notifiers.Mode == "production" {
		if cfg.Mail.Host != "" {
			primary = NewEmailNotifier(cfg.Mail, logger)
			log.Info().Msg("email notifier enabled")
		}
		if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != 0 {
			tgNotifier, err := NewTelegramNotifier(cfg.Telegram, logger)
			if err != nil {
				return nil, fmt.Errorf("failed to initialize telegram notifier: %w", err)
			}
			mirror = tgNotifier
			log.Info().Msg("telegram mirror enabled")
		}
	}

	return &Dispatcher{
		primary: primary,
		mirror:  mirror,
		logger:  log,
	}, nil
}

// Send implements the Notifier interface. Primary delivery failure is the
// caller's problem; a mirror failure is logged and swallowed, because the
// operator email already went out.
func (d *Dispatcher) Send(ctx context.Context, msg *model.NotificationMessage) error {
	if err := d.primary.Send(ctx, msg); err != nil {
		return err
	}

	if d.mirror != nil && msg.Audience == model.AudienceOperator {
		if err := d.mirror.Send(ctx, msg); err != nil {
			d.logger.Error().Err(err).Str("subject", msg.Subject).Msg("ops mirror delivery failed")
		}
	}

	return nil
}
