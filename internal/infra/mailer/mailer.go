// Package mailer delivers transactional email.
package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
)

// Message is a rendered email ready for delivery.
type Message struct {
	To      []mail.Address
	ReplyTo *mail.Address
	Subject string
	Text    string
	HTML    string
}

// Mailer sends one message. Implementations make a single attempt.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// ProviderError is a rejection reported by the mail provider.
type ProviderError struct {
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("mail provider returned status %d", e.StatusCode)
}

// Log writes messages to the logger instead of sending them.
type Log struct {
	Logger *slog.Logger
}

func (l Log) Send(ctx context.Context, msg Message) error {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}

	to := make([]string, 0, len(msg.To))
	for _, a := range msg.To {
		to = append(to, a.String())
	}
	logger.InfoContext(ctx, "mail not sent (log driver)",
		slog.Any("to", to),
		slog.String("subject", msg.Subject),
		slog.String("text", msg.Text))
	return nil
}
