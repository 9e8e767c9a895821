package smtp

import (
	"fmt"
	"net/smtp"

	"github.com/taskdeck/backend/internal/config"
)

// Sender delivers mail over plain SMTP with AUTH PLAIN credentials.
type Sender struct {
	addr string
	auth smtp.Auth
	from string
}

// NewSender builds a sender from mail configuration.
func NewSender(cfg config.MailConfig) *Sender {
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return &Sender{
		addr: fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		auth: auth,
		from: cfg.From,
	}
}

// Send delivers a single HTML message.
func (s *Sender) Send(to, subject, htmlBody string) error {
	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s\r\n",
		s.from, to, subject, htmlBody,
	)
	return smtp.SendMail(s.addr, s.auth, s.from, []string{to}, []byte(msg))
}
