// Package handoff builds the WhatsApp deep link the finished order is handed
// to. The link is fire-and-forget; nothing ever comes back across it.
package handoff

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"
)

// DefaultBaseURL is the wa.me link prefix.
const DefaultBaseURL = "https://wa.me"

// CleanNumber strips every non-digit from a configured contact number, so
// "+91 98765-43210" becomes "919876543210".
func CleanNumber(number string) string {
	var b strings.Builder
	for _, r := range number {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// BuildLink composes <base>/<digits-only-phone>?text=<encoded message>.
func BuildLink(baseURL, phone, message string) string {
	q := url.Values{"text": {message}}
	return fmt.Sprintf("%s/%s?%s", strings.TrimRight(baseURL, "/"), CleanNumber(phone), q.Encode())
}

// Sender receives the composed link. Delivery success is unobservable by
// design; implementations must not pretend otherwise.
type Sender interface {
	Send(ctx context.Context, link string) error
}

// LogSender logs the link. The HTTP layer returns the link to the client,
// which is what actually opens the messaging app.
type LogSender struct{}

func (LogSender) Send(_ context.Context, link string) error {
	log.Printf("order hand-off link: %s", link)
	return nil
}
