package service

import (
	"fmt"
	"time"

	mail "github.com/go-mail/mail/v2"
)

// Mailer sends transactional mail over SMTP. The dialer carries a hard timeout
// so a slow mail server cannot stall a request goroutine.
type Mailer struct {
	dialer       *mail.Dialer
	from         string
	resetURLBase string
}

func NewMailer(host string, port int, username, password, from, resetURLBase string) *Mailer {
	d := mail.NewDialer(host, port, username, password)
	d.Timeout = 10 * time.Second
	return &Mailer{dialer: d, from: from, resetURLBase: resetURLBase}
}

// SendPasswordReset delivers the plaintext reset token. Only the sha256 of the
// token is ever stored server-side.
func (m *Mailer) SendPasswordReset(to, name, token string) error {
	msg := mail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Library account password reset")

	body := fmt.Sprintf(
		"Hello %s,\n\nA password reset was requested for your library account.\n\nReset token: %s\n",
		name, token)
	if m.resetURLBase != "" {
		body += fmt.Sprintf("\nOr open: %s/%s\n", m.resetURLBase, token)
	}
	body += "\nThe token expires in one hour. If you did not request this, ignore this mail.\n"
	msg.SetBody("text/plain", body)

	return m.dialer.DialAndSend(msg)
}
