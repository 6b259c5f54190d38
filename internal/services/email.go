package services

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/inspire-dataserver/data-share-hub/internal/config"
)

// EmailService sends transactional mail over plain SMTP. With no SMTP
// settings configured every send is a silent no-op, which keeps local
// development working without a mail server.
type EmailService struct {
	cfg config.SMTPConfig
}

func NewEmailService(cfg config.SMTPConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

func (s *EmailService) IsConfigured() bool {
	return s.cfg.Host != "" && s.cfg.Username != "" && s.cfg.Password != "" && s.cfg.From != ""
}

func (s *EmailService) Send(to, subject, body string) error {
	if !s.IsConfigured() {
		return nil
	}

	var msg strings.Builder
	msg.WriteString("From: " + s.cfg.From + "\r\n")
	msg.WriteString("To: " + to + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	return smtp.SendMail(s.cfg.Host+":"+s.cfg.Port, auth, s.cfg.From, []string{to}, []byte(msg.String()))
}

// SendSaleNotice emails the seller about a new sale. Best-effort: callers
// log a failure and move on, the in-app notification is the primary channel.
func (s *EmailService) SendSaleNotice(to, datasetTitle string, amount float64) error {
	subject := fmt.Sprintf("Your dataset %q was purchased", datasetTitle)
	body := fmt.Sprintf(`
		<html>
		<body>
			<h2>New Sale</h2>
			<p>Hi,</p>
			<p>Your dataset <strong>%s</strong> was just purchased for <strong>$%.2f</strong>.</p>
			<p>Sign in to your seller dashboard to see the details.</p>
		</body>
		</html>
	`, datasetTitle, amount)

	return s.Send(to, subject, body)
}
