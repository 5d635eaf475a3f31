// Package mailer implements out-of-band delivery of password-reset secrets
// over SMTP. When SMTP is not configured the mailer reports itself as
// unconfigured and the auth service falls back to dev-mode behaviour
// instead of silently dropping the message.
package mailer

import (
	"context"
	"fmt"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/MKhiriev/go-user-admin/internal/config"
	"github.com/MKhiriev/go-user-admin/internal/logger"
)

// EmailMailer sends password-reset messages through an SMTP relay.
type EmailMailer struct {
	cfg           config.SMTP
	resetLifetime time.Duration
	logger        *logger.Logger
}

// NewEmailMailer constructs an [EmailMailer] from SMTP settings.
// resetLifetime is quoted in the message so recipients know how long the
// secret stays valid.
func NewEmailMailer(cfg config.SMTP, resetLifetime time.Duration, logger *logger.Logger) *EmailMailer {
	return &EmailMailer{
		cfg:           cfg,
		resetLifetime: resetLifetime,
		logger:        logger,
	}
}

// Configured reports whether an SMTP transport is available.
func (m *EmailMailer) Configured() bool {
	return m.cfg.Host != "" && m.cfg.User != "" && m.cfg.Pass != ""
}

// SendPasswordReset delivers the raw reset secret to the given address.
// The secret appears only in the message body; it is never logged.
func (m *EmailMailer) SendPasswordReset(ctx context.Context, to string, rawSecret string) error {
	if !m.Configured() {
		return fmt.Errorf("smtp transport is not configured")
	}

	from := m.cfg.From
	if from == "" {
		from = m.cfg.User
	}

	expiresIn := formatLifetime(m.resetLifetime)

	msg := gomail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Password reset request")
	msg.SetBody("text/plain", fmt.Sprintf(
		"A password reset was requested for your account.\n\n"+
			"Reset token: %s\n\n"+
			"The token expires in %s. If you did not request a reset, ignore this message.",
		rawSecret, expiresIn))
	msg.AddAlternative("text/html", fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif;">
  <div style="max-width: 520px; margin: 0 auto; padding: 16px;">
    <h2>Password reset</h2>
    <p>A password reset was requested for your account. Your reset token:</p>
    <div style="font-size: 18px; font-weight: bold; letter-spacing: 1px; word-break: break-all;">%s</div>
    <p>The token expires in %s. If you did not request a reset, ignore this message.</p>
  </div>
</body>
</html>`, rawSecret, expiresIn))

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.User, m.cfg.Pass)
	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send reset email: %w", err)
	}

	m.logger.Info().Str("to", to).Msg("password reset email sent")
	return nil
}

// formatLifetime renders a duration in human-friendly whole units for the
// message body ("15 minutes", "2 hours").
func formatLifetime(d time.Duration) string {
	if d >= time.Hour && d%time.Hour == 0 {
		hours := int(d.Hours())
		if hours == 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", hours)
	}

	minutes := int(d.Minutes())
	if minutes <= 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", minutes)
}
