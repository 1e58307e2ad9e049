package service

import (
	config "github.com/reservapp/reservapp/configs"
	"gopkg.in/gomail.v2"
)

// EmailSender delivers transactional mail. The SMTP implementation is used
// in production; the queue worker tests use a fake.
type EmailSender interface {
	Send(to, subject, body string) error
}

type smtpEmailSender struct {
	cfg config.Config
}

func NewEmailSender(cfg config.Config) EmailSender {
	return &smtpEmailSender{cfg: cfg}
}

func (e *smtpEmailSender) Send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", e.cfg.SMTP.FromEmail)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(
		e.cfg.SMTP.Host,
		e.cfg.SMTP.Port,
		e.cfg.SMTP.User,
		e.cfg.SMTP.Password,
	)

	return d.DialAndSend(m)
}
