package mailer

import (
	"context"
	"errors"
	"log"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// SMTPSender delivers messages through a single SMTP account configured via
// SMTP_HOST, SMTP_PORT, SMTP_USER, SMTP_PASS and SMTP_FROM.
type SMTPSender struct {
	host string
	port int
	user string
	pass string
	from string
}

func NewSMTPSenderFromEnv() (*SMTPSender, error) {
	host := os.Getenv("SMTP_HOST")
	portStr := os.Getenv("SMTP_PORT")
	user := os.Getenv("SMTP_USER")
	pass := os.Getenv("SMTP_PASS")
	from := os.Getenv("SMTP_FROM")

	if host == "" || portStr == "" || user == "" {
		return nil, errors.New("SMTP_HOST, SMTP_PORT and SMTP_USER must be set")
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, errors.New("SMTP_PORT must be a number")
	}
	if from == "" {
		from = user
	}

	return &SMTPSender{host: host, port: port, user: user, pass: pass, from: from}, nil
}

// Send renders the message template and delivers it synchronously.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	body, err := RenderEmail(msg)
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetAddressHeader("To", msg.Envelope.To, msg.Envelope.ToName)
	if len(msg.Envelope.CC) > 0 {
		m.SetHeader("Cc", msg.Envelope.CC...)
	}
	if msg.Envelope.ReplyTo != "" {
		m.SetAddressHeader("Reply-To", msg.Envelope.ReplyTo, msg.Envelope.ReplyToName)
	}
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", body)

	for name, path := range msg.Envelope.Attachments {
		m.Attach(path, gomail.Rename(name))
	}

	d := gomail.NewDialer(s.host, s.port, s.user, s.pass)
	if err := d.DialAndSend(m); err != nil {
		log.Println("❌ Failed to send email to", msg.Envelope.To, ":", err)
		return err
	}

	log.Println("✅ Email sent to", msg.Envelope.To)
	return nil
}
