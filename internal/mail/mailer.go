package mail

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Mailer sends transactional mail.
type Mailer interface {
	SendPasswordReset(ctx context.Context, to, username, resetURL string) error
}

// SMTPMailer delivers mail through an SMTP relay.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(host string, port int, user, password, from string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, user, password),
		from:   from,
	}
}

func (m *SMTPMailer) SendPasswordReset(ctx context.Context, to, username, resetURL string) error {
	msg := passwordResetMessage(m.from, to, username, resetURL)
	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send password reset to %s: %w", to, err)
	}
	return nil
}

// LogMailer writes the reset link to the log instead of sending it.
// Used when SMTP_HOST is empty.
type LogMailer struct{}

func (LogMailer) SendPasswordReset(ctx context.Context, to, username, resetURL string) error {
	zap.L().Info("password reset requested (smtp disabled)",
		zap.String("to", to),
		zap.String("reset_url", resetURL),
	)
	return nil
}

func passwordResetMessage(from, to, username, resetURL string) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Reset your vendops password")
	msg.SetBody("text/plain", fmt.Sprintf(
		"Hi %s,\n\nUse the link below to choose a new password. It expires in one hour.\n\n%s\n\nIf you did not ask for this, ignore this email.\n",
		username, resetURL,
	))
	msg.AddAlternative("text/html", fmt.Sprintf(
		`<p>Hi %s,</p><p><a href="%s">Reset your password</a>. The link expires in one hour.</p>`,
		username, resetURL,
	))
	return msg
}
