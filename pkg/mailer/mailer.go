package mailer

import (
	"gopkg.in/gomail.v2"
)

// Mailer delivers composed (subject, body) pairs. The engine decides what
// fires; this type only sends.
type Mailer interface {
	Send(subject, htmlBody string) error
}

type smtpMailer struct {
	dialer    *gomail.Dialer
	sender    string
	recipient string
}

func New(host string, port int, sender, password, recipient string) Mailer {
	return &smtpMailer{
		dialer:    gomail.NewDialer(host, port, sender, password),
		sender:    sender,
		recipient: recipient,
	}
}

func (m *smtpMailer) Send(subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.sender)
	msg.SetHeader("To", m.recipient)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	return m.dialer.DialAndSend(msg)
}
