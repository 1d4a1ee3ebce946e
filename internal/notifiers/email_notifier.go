package notifiers

import (
	"context"
	"fmt"

	"github.com/mianvisuals/studio-api/internal/config"
	"github.com/mianvisuals/studio-api/internal/domain/model"
	"github.com/mianvisuals/studio-api/internal/mailer"
	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"
)

// EmailNotifier sends notifications via SMTP.
type EmailNotifier struct {
	dialer   *gomail.Dialer
	from     string
	fromName string
	logger   zerolog.Logger
}

// NewEmailNotifier creates a new instance of EmailNotifier.
func NewEmailNotifier(cfg config.MailConfig, logger *zerolog.Logger) *EmailNotifier {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	return &EmailNotifier{
		dialer:   d,
		from:     cfg.From,
		fromName: cfg.FromName,
		logger:   logger.With().Str("component", "email_notifier").Logger(),
	}
}

// Send implements the Notifier interface for email. The HTML body is attached
// as an alternative to the plain-text one; a message carrying only HTML gets
// its text part derived by stripping tags.
func (n *EmailNotifier) Send(ctx context.Context, msg *model.NotificationMessage) error {
	if msg.Recipient == "" {
		return fmt.Errorf("email notification without recipient")
	}

	text := msg.BodyText
	if text == "" {
		text = mailer.StripTags(msg.BodyHTML)
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", n.from, n.fromName)
	m.SetHeader("To", msg.Recipient)
	m.SetHeader("Subject", msg.Subject)
	if msg.ReplyTo != "" {
		m.SetHeader("Reply-To", msg.ReplyTo)
	}
	m.SetBody("text/plain", text)
	if msg.BodyHTML != "" {
		m.AddAlternative("text/html", msg.BodyHTML)
	}

	// DialAndSend opens a connection, sends the email, and closes it. It has
	// no notion of deadlines, so run it on the side and bail out when the
	// context expires; the abandoned goroutine finishes once TCP gives up.
	done := make(chan error, 1)
	go func() {
		done <- n.dialer.DialAndSend(m)
	}()

	select {
	case err := <-done:
		if err != nil {
			n.logger.Error().Err(err).Str("recipient", msg.Recipient).Msg("failed to send email")
			return err
		}
	case <-ctx.Done():
		n.logger.Error().Err(ctx.Err()).Str("recipient", msg.Recipient).Msg("gave up sending email")
		return fmt.Errorf("send email to %s: %w", msg.Recipient, ctx.Err())
	}

	n.logger.Info().Str("recipient", msg.Recipient).Str("audience", string(msg.Audience)).Str("subject", msg.Subject).Msg("email sent successfully")
	return nil
}
