package mailer

import (
	"github.com/sirupsen/logrus"
	gomail "gopkg.in/gomail.v2"
)

// Mailer delivers outbound notification mail. Delivery is best-effort at the
// call sites: a returned error is logged by the caller, never propagated to
// the request.
type Mailer interface {
	Send(to []string, subject, body string) error
}

// SMTPMailer sends mail over SMTP. When no host is configured the mailer is
// disabled and Send becomes a logged no-op.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
	log    *logrus.Entry
}

// Ensure SMTPMailer implements Mailer
var _ Mailer = (*SMTPMailer)(nil)

// New builds an SMTPMailer. An empty host disables delivery.
func New(host string, port int, username, password, from string, log *logrus.Logger) *SMTPMailer {
	m := &SMTPMailer{
		from: from,
		log:  log.WithField("component", "mailer"),
	}
	if host != "" {
		m.dialer = gomail.NewDialer(host, port, username, password)
	}
	return m
}

func (m *SMTPMailer) Send(to []string, subject, body string) error {
	if m.dialer == nil {
		m.log.WithField("subject", subject).Debug("mail delivery disabled, skipping")
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	return m.dialer.DialAndSend(msg)
}
