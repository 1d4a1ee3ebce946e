package notifiers

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/mianvisuals/studio-api/internal/config"
	"github.com/mianvisuals/studio-api/internal/domain/model"
	"github.com/rs/zerolog"
)

// TelegramNotifier mirrors notifications to the studio's operations chat via
// a Telegram bot, so new inquiries show up on the operator's phone without
// polling the inbox.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger zerolog.Logger
}

// NewTelegramNotifier creates a new instance of TelegramNotifier.
func NewTelegramNotifier(cfg config.TelegramConfig, logger *zerolog.Logger) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot api: %w", err)
	}
	return &TelegramNotifier{
		bot:    bot,
		chatID: cfg.ChatID,
		logger: logger.With().Str("component", "telegram_notifier").Logger(),
	}, nil
}

// Send implements the Notifier interface for Telegram. The plain-text body is
// used; Telegram is a mirror channel, not a markup surface.
func (n *TelegramNotifier) Send(ctx context.Context, notification *model.NotificationMessage) error {
	fullMessage := fmt.Sprintf("%s\n\n%s", notification.Subject, notification.BodyText)

	msg := tgbotapi.NewMessage(n.chatID, fullMessage)

	// The bot client has no context-aware send, so the same goroutine-and-
	// select shape as the email path keeps the mirror inside the dispatch
	// window.
	done := make(chan error, 1)
	go func() {
		_, err := n.bot.Send(msg)
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			n.logger.Error().Err(err).Int64("chat_id", n.chatID).Msg("failed to send telegram message")
			return err
		}
	case <-ctx.Done():
		n.logger.Error().Err(ctx.Err()).Int64("chat_id", n.chatID).Msg("gave up sending telegram message")
		return fmt.Errorf("send telegram message: %w", ctx.Err())
	}

	n.logger.Info().Int64("chat_id", n.chatID).Str("subject", notification.Subject).Msg("telegram message sent successfully")
	return nil
}
