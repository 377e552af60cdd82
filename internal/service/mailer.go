package service

import (
	"gopkg.in/gomail.v2"

	"github.com/woodcrrests/scratchcard_api/internal/config"
)

// Mailer delivers a rendered message to a single recipient.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

// SMTPMailer sends mail through the configured SMTP transport.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer constructs an SMTPMailer from config.
func NewSMTPMailer(cfg *config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

// Send delivers a single HTML message. No retry; the caller decides what a
// failure means.
func (m *SMTPMailer) Send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	return m.dialer.DialAndSend(msg)
}
