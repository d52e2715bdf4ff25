package services

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/smashhub/smashhub-server/config"
	"github.com/smashhub/smashhub-server/models"
)

type EmailService struct {
	cfg *config.Config
}

func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{cfg: cfg}
}

func (s *EmailService) SendEmail(to []string, subject string, body string) error {
	auth := smtp.PlainAuth("", s.cfg.SMTPUser, s.cfg.SMTPPass, s.cfg.SMTPHost)

	msg := []byte("To: " + to[0] + "\r\n" +
		"From: " + s.cfg.SMTPFrom + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\r\n" +
		"\r\n" +
		body + "\r\n")

	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)

	tlsconfig := &tls.Config{
		InsecureSkipVerify: true,
		ServerName:         s.cfg.SMTPHost,
	}

	var client *smtp.Client
	if s.cfg.SMTPPort == 465 {
		// Direct TLS connection
		conn, err := tls.Dial("tcp", addr, tlsconfig)
		if err != nil {
			return fmt.Errorf("TLS connection failed: %w", err)
		}
		defer conn.Close()
		client, err = smtp.NewClient(conn, s.cfg.SMTPHost)
		if err != nil {
			return fmt.Errorf("failed to create SMTP client: %w", err)
		}
	} else {
		// STARTTLS (port 587)
		c, err := smtp.Dial(addr)
		if err != nil {
			return fmt.Errorf("SMTP connection failed: %w", err)
		}
		client = c
		if err = client.StartTLS(tlsconfig); err != nil {
			client.Close()
			return fmt.Errorf("STARTTLS command failed: %w", err)
		}
	}
	defer client.Quit()

	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("SMTP authentication failed: %w", err)
	}

	if err := client.Mail(s.cfg.SMTPFrom); err != nil {
		return fmt.Errorf("MAIL FROM failed: %w", err)
	}
	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			return fmt.Errorf("RCPT TO failed: %w", err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("DATA command failed: %w", err)
	}

	_, err = w.Write(msg)
	if err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	err = w.Close()
	if err != nil {
		return fmt.Errorf("failed to close DATA: %w", err)
	}

	return nil
}

var dailyReportTemplate = template.Must(template.New("daily_report").Parse(`
<h2>Club night report for {{.Date}}</h2>
<p>Total matches played: <strong>{{.TotalMatches}}</strong></p>
{{if .TopPlayer}}<p>Player of the day: <strong>{{.TopPlayer.Name}}</strong> ({{.TopPlayer.Wins}} wins)</p>{{end}}
{{if .TopMale}}<p>Top male: {{.TopMale.Name}} ({{.TopMale.Wins}} wins)</p>{{end}}
{{if .TopFemale}}<p>Top female: {{.TopFemale.Name}} ({{.TopFemale.Wins}} wins)</p>{{end}}
`))

// SendDailyReport mails the winner board to the club's admins after a session.
func (s *EmailService) SendDailyReport(emails []string, summary *models.DecoratedSummary) error {
	if len(emails) == 0 || summary == nil {
		return nil
	}

	var body bytes.Buffer
	if err := dailyReportTemplate.Execute(&body, summary); err != nil {
		return fmt.Errorf("failed to render daily report: %w", err)
	}

	subject := fmt.Sprintf("SmashHub report for %s", summary.Date)
	for _, email := range emails {
		if err := s.SendEmail([]string{email}, subject, body.String()); err != nil {
			return fmt.Errorf("failed to send daily report to %s: %w", email, err)
		}
	}
	return nil
}
