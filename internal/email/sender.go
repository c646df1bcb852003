package email

import (
	"blog_backend/internal/config"

	"gopkg.in/gomail.v2"
)

// SMTPSender delivers mail over SMTP using the configured sender address.
type SMTPSender struct {
	cfg *config.Config
}

func NewSMTPSender(cfg *config.Config) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

func (s *SMTPSender) SendVerification(to, login, token string) error {
	body, err := renderTemplate("verification", templateData{
		Login: login,
		Token: token,
	})
	if err != nil {
		return err
	}
	return s.send(to, login, "Please verify your email address.", body)
}

func (s *SMTPSender) SendPasswordReset(to, login, token string) error {
	body, err := renderTemplate("password_reset", templateData{
		Login: login,
		Token: token,
	})
	if err != nil {
		return err
	}
	return s.send(to, login, "Password reset request", body)
}

func (s *SMTPSender) send(to, name, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.cfg.Email.FromEmail, s.cfg.Email.FromName)
	m.SetAddressHeader("To", to, name)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(
		s.cfg.Email.SMTPHost,
		s.cfg.Email.SMTPPort,
		s.cfg.Email.SMTPUser,
		s.cfg.Email.SMTPPassword,
	)

	return d.DialAndSend(m)
}
