package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"

	pkgLog "engineering-sync/pkg/log"
)

// Sender delivers rendered bulletins. Implementations never fail one
// recipient because another recipient's delivery failed.
type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
	// DryRun reports whether delivery is simulated for lack of credentials.
	DryRun() bool
}

// Config carries SMTP delivery settings. With an empty user or password the
// mailer runs in dry-run mode and logs bodies instead of sending.
type Config struct {
	Host        string
	Port        int
	User        string
	Password    string
	SenderEmail string
}

type implMailer struct {
	cfg Config
	l   pkgLog.Logger
}

func New(cfg Config, l pkgLog.Logger) Sender {
	if cfg.SenderEmail == "" {
		cfg.SenderEmail = cfg.User
	}
	return &implMailer{cfg: cfg, l: l}
}

func (m *implMailer) DryRun() bool {
	return m.cfg.User == "" || m.cfg.Password == ""
}

func (m *implMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	if m.DryRun() {
		m.l.Warnf(ctx, "smtp credentials not set, dry-run delivery to %s: %s", to, subject)
		return nil
	}

	addr := net.JoinHostPort(m.cfg.Host, fmt.Sprintf("%d", m.cfg.Port))
	c, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("dial smtp: %w", err)
	}
	defer c.Close()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: m.cfg.Host}); err != nil {
			return fmt.Errorf("starttls: %w", err)
		}
	}

	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)
	if err := c.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}

	if err := c.Mail(m.cfg.SenderEmail); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err := c.Rcpt(to); err != nil {
		return fmt.Errorf("smtp rcpt: %w", err)
	}

	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	msg := buildMessage(m.cfg.SenderEmail, to, subject, htmlBody)
	if _, err := w.Write([]byte(msg)); err != nil {
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp close data: %w", err)
	}

	m.l.Infof(ctx, "bulletin delivered to %s", to)
	return c.Quit()
}

func buildMessage(from, to, subject, htmlBody string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(htmlBody)
	b.WriteString("\r\n")
	return b.String()
}

// SplitRecipients parses a comma-separated recipient string, trimming
// whitespace and dropping empties.
func SplitRecipients(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
