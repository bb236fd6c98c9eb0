package mail

import (
	"bytes"
	"fmt"
	"path/filepath"
	"text/template"

	"gopkg.in/gomail.v2"
)

func NewEmailSender(host string, port int, user, password string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
	}
}

// SendBookedNotification avisa o time de vendas que um lead marcou reunião.
func (s *EmailSender) SendBookedNotification(to, leadName, company string) error {
	data := BookedEmailData{
		LeadName: leadName,
		Company:  company,
	}

	tmplPath := filepath.Join("templates", "booked.html")
	t, err := template.ParseFiles(tmplPath)
	if err != nil {
		return fmt.Errorf("erro ao ler template de email: %w", err)
	}

	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return fmt.Errorf("erro ao processar template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", "no-reply@spectix.ai")
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("🎉 Reunião marcada: %s (%s)", leadName, company))
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}

	return nil
}
