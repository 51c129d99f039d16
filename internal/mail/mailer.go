package mail

import (
	"context"
	"fmt"
	"strings"

	"github.com/avoronin/go-blog/internal/config"
	"github.com/avoronin/go-blog/internal/logger"
	"github.com/avoronin/go-blog/models"
	gomail "gopkg.in/gomail.v2"
)

// SMTPMailer delivers transactional mail through an SMTP relay.
type SMTPMailer struct {
	dialer      *gomail.Dialer
	from        string
	externalURL string
	logger      *logger.Logger
}

// NewSMTPMailer constructs a Mailer that talks to the relay configured in
// cfg. externalURL is the public base URL used to build absolute links in
// message bodies.
func NewSMTPMailer(cfg config.Mail, externalURL string, logger *logger.Logger) *SMTPMailer {
	return &SMTPMailer{
		dialer:      gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:        cfg.From,
		externalURL: strings.TrimRight(externalURL, "/"),
		logger:      logger,
	}
}

// SendPasswordReset delivers the password-reset message for user carrying a
// link with the signed token. The dial-and-send happens synchronously; the
// context is only consulted for early cancellation because the underlying
// SMTP client is not context-aware.
func (m *SMTPMailer) SendPasswordReset(ctx context.Context, user models.User, tokenString string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", user.Email)
	msg.SetHeader("Subject", "Password Reset Request")
	msg.SetBody("text/plain", m.resetBody(tokenString))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("error sending password reset mail: %w", err)
	}

	m.logger.Info().Int64("id", user.UserID).Msg("password reset mail sent")
	return nil
}

// resetBody renders the plain-text body of the password-reset message.
func (m *SMTPMailer) resetBody(tokenString string) string {
	link := m.ResetLink(tokenString)
	return "To reset your password, visit the following link:\n" +
		link + "\n\n" +
		"If you did not make this request then simply ignore this email and no changes will be made.\n"
}

// ResetLink builds the absolute URL a reset token is redeemed at.
func (m *SMTPMailer) ResetLink(tokenString string) string {
	return fmt.Sprintf("%s/reset_password/%s", m.externalURL, tokenString)
}
