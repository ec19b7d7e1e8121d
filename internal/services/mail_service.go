package services

import (
	"fmt"
	"net/smtp"
	"os"
	"strings"
)

// MailService отправляет почту через SMTP.
// Отправка без подтверждения доставки: ошибка только логируется вызывающим.
type MailService struct {
	host     string
	port     string
	username string
	password string
	from     string
}

func NewMailService() *MailService {
	host := os.Getenv("SMTP_HOST")
	port := os.Getenv("SMTP_PORT")

	if host == "" {
		host = "localhost"
	}
	if port == "" {
		port = "25"
	}

	return &MailService{
		host:     host,
		port:     port,
		username: os.Getenv("SMTP_USER"),
		password: os.Getenv("SMTP_PASSWORD"),
		from:     os.Getenv("SMTP_FROM"),
	}
}

// Send отправляет письмо получателям
func (m *MailService) Send(subject, body string, to []string) error {
	if len(to) == 0 {
		return fmt.Errorf("пустой список получателей")
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		m.from, strings.Join(to, ", "), subject, body)

	addr := fmt.Sprintf("%s:%s", m.host, m.port)

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	return smtp.SendMail(addr, auth, m.from, to, []byte(msg))
}
