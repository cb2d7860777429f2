package email

import (
	"gopkg.in/mail.v2"
)

// Client sends messages through an authenticated SMTP relay.
type Client struct {
	smtpHost string
	smtpPort int
	username string
	password string
	from     string
}

// Message is one outbound email. HTMLBody, when set, is attached as an
// alternative part alongside the plain body. Attachments are file paths
// resolved at send time.
type Message struct {
	To          string
	Subject     string
	Body        string
	HTMLBody    string
	Attachments []string
}

// NewClient creates an SMTP client bound to one relay account.
func NewClient(smtpHost string, smtpPort int, username, password, from string) *Client {
	return &Client{
		smtpHost: smtpHost,
		smtpPort: smtpPort,
		username: username,
		password: password,
		from:     from,
	}
}

// Send composes and delivers a single message. Connection, authentication and
// rejection failures surface as the dialer's error.
func (c *Client) Send(msg Message) error {
	m := mail.NewMessage()

	m.SetHeader("From", c.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)

	m.SetBody("text/plain", msg.Body)
	if msg.HTMLBody != "" {
		m.AddAlternative("text/html", msg.HTMLBody)
	}

	for _, path := range msg.Attachments {
		m.Attach(path)
	}

	dialer := mail.NewDialer(c.smtpHost, c.smtpPort, c.username, c.password)

	return dialer.DialAndSend(m)
}
