// Package mailer delivers transactional email over SMTP.
package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"submission-portal/pkg/errors"
)

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Mailer sends messages through a single SMTP account.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewMailer(cfg Config) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

// SendPasswordReset emails the reset link to the given address. The link
// is only valid for a short window, which the message calls out.
func (m *Mailer) SendPasswordReset(to, resetURL string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Password Reset Request")
	msg.SetBody("text/html", fmt.Sprintf(
		`<p>You requested a password reset.</p>
<p><a href=%q>Click here to reset your password</a></p>
<p>This link expires in 2 minutes. If you did not request a reset, ignore this email.</p>`,
		resetURL,
	))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return errors.NewAppError("MAIL_DELIVERY_FAILED", "failed to send password reset email", errors.ErrMailDelivery)
	}
	return nil
}
