package email

import (
	"context"
	"fmt"
	"net/smtp"

	"go-portfolio-backend/config"
)

// SMTPSender delivers via a plain SMTP relay (Brevo by default).
type SMTPSender struct {
	host      string
	port      string
	username  string
	password  string
	fromEmail string
	toEmail   string
}

// NewSMTPSender creates an SMTP sender from configuration. When
// SMTP_FROM_EMAIL is unset the relay login doubles as the sender address,
// which is how Brevo accounts behave.
func NewSMTPSender(cfg *config.Config) *SMTPSender {
	from := cfg.SMTPFromEmail
	if from == "" {
		from = cfg.SMTPUsername
	}
	return &SMTPSender{
		host:      cfg.SMTPHost,
		port:      cfg.SMTPPort,
		username:  cfg.SMTPUsername,
		password:  cfg.SMTPPassword,
		fromEmail: from,
		toEmail:   cfg.ContactEmailTo,
	}
}

// Send composes a MIME HTML mail and hands it to the relay. SMTP has no
// message identifier to return.
func (s *SMTPSender) Send(_ context.Context, data ContactEmailData) (string, error) {
	body, err := RenderContactBody(data)
	if err != nil {
		return "", err
	}

	msg := []byte(fmt.Sprintf(
		"From: %s\r\n"+
			"To: %s\r\n"+
			"Reply-To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=UTF-8\r\n"+
			"\r\n"+
			"%s",
		s.fromEmail,
		s.toEmail,
		data.SenderEmail,
		subjectFor(data),
		body,
	))

	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	if err := smtp.SendMail(addr, auth, s.fromEmail, []string{s.toEmail}, msg); err != nil {
		return "", fmt.Errorf("failed to send email: %w", err)
	}
	return "", nil
}

// IsConfigured checks that the relay credentials and recipient are present.
func (s *SMTPSender) IsConfigured() bool {
	return s.host != "" && s.username != "" && s.password != "" && s.toEmail != ""
}
