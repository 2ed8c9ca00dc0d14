package services

import (
	"fmt"
	"html"
	"log/slog"
	"net/smtp"
	"strings"

	"portfolio-site/internal/models"
)

type EmailService struct {
	host    string
	port    string
	user    string
	pass    string
	from    string
	to      string
	devMode bool
	send    func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewEmailService(host, port, user, pass, from, to string) *EmailService {
	devMode := host == "" || user == "" || to == ""
	if devMode {
		slog.Warn("email service running in dev mode, messages are logged instead of sent")
	}
	return &EmailService{
		host:    host,
		port:    port,
		user:    user,
		pass:    pass,
		from:    from,
		to:      to,
		devMode: devMode,
		send:    smtp.SendMail,
	}
}

// SendContactNotification forwards a contact form submission to the site owner.
func (s *EmailService) SendContactNotification(msg *models.ContactMessage) error {
	subject := "New message from " + headerSafe(msg.Name)
	body := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body style="font-family: 'Segoe UI', Arial, sans-serif; color: #1e293b;">
  <h2 style="margin: 0 0 12px;">Portfolio contact form</h2>
  <p><strong>From:</strong> %s &lt;%s&gt;</p>
  <p style="white-space: pre-wrap; line-height: 1.6;">%s</p>
  <p style="color: #94a3b8; font-size: 12px;">Message %s</p>
</body>
</html>`,
		html.EscapeString(msg.Name),
		html.EscapeString(msg.Email),
		html.EscapeString(msg.Message),
		msg.ID,
	)

	return s.sendHTML(msg.Email, subject, body)
}

func (s *EmailService) sendHTML(replyTo, subject, htmlBody string) error {
	if s.devMode {
		slog.Info("dev email", "to", s.to, "subject", subject, "reply_to", replyTo)
		slog.Debug("dev email body", "body", htmlBody)
		return nil
	}

	headers := []string{
		fmt.Sprintf("From: %s", s.from),
		fmt.Sprintf("To: %s", s.to),
		fmt.Sprintf("Reply-To: %s", headerSafe(replyTo)),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=UTF-8",
	}

	message := strings.Join(headers, "\r\n") + "\r\n\r\n" + htmlBody

	auth := smtp.PlainAuth("", s.user, s.pass, s.host)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)

	if err := s.send(addr, auth, s.from, []string{s.to}, []byte(message)); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", s.to, err)
	}

	slog.Info("email sent", "to", s.to, "subject", subject)
	return nil
}

// headerSafe strips line breaks so visitor input cannot add mail headers.
func headerSafe(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}
