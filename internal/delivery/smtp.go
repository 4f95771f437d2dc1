package delivery

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strings"

	"content-backend/internal/shared/telemetry"
)

// SMTPDeliverer emails content over SMTP with STARTTLS when the server
// offers it.
type SMTPDeliverer struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// Deliver sends the text as a plain-text email. Failures are logged and
// reported as false.
func (d *SMTPDeliverer) Deliver(ctx context.Context, recipient, subject, text string) bool {
	if d.Host == "" || d.From == "" || recipient == "" {
		telemetry.Error("delivery.smtp_misconfigured", map[string]any{
			"host_set": d.Host != "",
			"from_set": d.From != "",
		})
		return false
	}
	if err := ctx.Err(); err != nil {
		return false
	}

	addr := net.JoinHostPort(d.Host, d.portOrDefault())
	msg := buildMessage(d.From, recipient, subject, text)

	var auth smtp.Auth
	if d.Username != "" {
		auth = smtp.PlainAuth("", d.Username, d.Password, d.Host)
	}

	if err := smtp.SendMail(addr, auth, d.From, []string{recipient}, msg); err != nil {
		telemetry.Error("delivery.smtp_failed", map[string]any{
			"recipient": recipient,
			"error":     err.Error(),
		})
		return false
	}
	telemetry.Info("delivery.sent", map[string]any{"recipient": recipient})
	return true
}

func (d *SMTPDeliverer) portOrDefault() string {
	if d.Port == "" {
		return "587"
	}
	return d.Port
}

func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", sanitizeHeader(subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}

func sanitizeHeader(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}

var _ Deliverer = (*SMTPDeliverer)(nil)
