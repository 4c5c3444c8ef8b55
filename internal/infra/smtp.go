package infra

import (
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"

	"jandervidros/internal/config"
)

// Mailer wraps SMTP configuration for sending receipts and stock digests.
type Mailer struct {
	host     string
	user     string
	password string
	addr     string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
	}
}

// Configured reports whether an SMTP host was set.
func (m *Mailer) Configured() bool { return m.host != "" }

// Send delivers a plain-text message, attaching the file at attachPath if given.
func (m *Mailer) Send(to, subject, body, attachPath string) error {
	if !m.Configured() {
		return fmt.Errorf("mailer: SMTP_HOST not set")
	}
	e := email.NewEmail()
	e.From = m.user
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)

	if attachPath != "" {
		if _, err := e.AttachFile(attachPath); err != nil {
			return fmt.Errorf("mailer: attach: %w", err)
		}
	}

	auth := smtp.PlainAuth("", m.user, m.password, m.host)
	return e.Send(m.addr, auth)
}
