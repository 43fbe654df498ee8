package notifier

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"
	"time"

	"SignalScout/internal/model"
)

// EmailNotifier delivers entry-signal reports over SMTP.
type EmailNotifier struct {
	Host string
	Port int
	User string
	Pass string
	From string
	To   string
}

// NewEmailNotifier creates an SMTP notifier. Auth is skipped when user is
// empty.
func NewEmailNotifier(host string, port int, user, pass, from, to string) *EmailNotifier {
	return &EmailNotifier{Host: host, Port: port, User: user, Pass: pass, From: from, To: to}
}

// Notify emails the candidate report. Returns whether delivery succeeded;
// failures are logged, never fatal to the caller.
func (n *EmailNotifier) Notify(c *model.ScanCandidate) bool {
	rec := c.Indicators.Recommendation
	subject := fmt.Sprintf("%s SignalScout: %s - %s (strength %d/100)",
		recommendationEmoji(rec), strings.ReplaceAll(string(rec), "_", " "),
		c.Asset.Symbol, c.Indicators.SignalStrength)
	body := FormatEntrySignal(c)

	if err := n.sendWithRetry(subject, body, 2); err != nil {
		log.Printf("[ERROR] send email for %s: %v", c.Asset.Symbol, err)
		return false
	}
	log.Printf("[INFO] email sent for %s notification %d", c.Asset.Symbol, c.NotificationID)
	return true
}

func (n *EmailNotifier) sendWithRetry(subject, body string, maxRetries int) error {
	var lastErr error
	for i := 0; i <= maxRetries; i++ {
		if err := n.send(subject, body); err != nil {
			lastErr = err
			backoff := time.Duration(1<<uint(i)) * time.Second
			log.Printf("[WARN] email send failed (attempt %d/%d): %v, retrying in %v", i+1, maxRetries+1, err, backoff)
			time.Sleep(backoff)
			continue
		}
		return nil
	}
	return fmt.Errorf("all %d attempts exhausted: %w", maxRetries+1, lastErr)
}

func (n *EmailNotifier) send(subject, body string) error {
	addr := fmt.Sprintf("%s:%d", n.Host, n.Port)

	var auth smtp.Auth
	if n.User != "" {
		auth = smtp.PlainAuth("", n.User, n.Pass, n.Host)
	}

	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("From: %s\r\n", n.From))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", n.To))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	return smtp.SendMail(addr, auth, n.From, []string{n.To}, []byte(msg.String()))
}

func recommendationEmoji(rec model.Recommendation) string {
	switch rec {
	case model.StrongBuy:
		return "🚀"
	case model.Buy:
		return "📈"
	default:
		return "⏸️"
	}
}
