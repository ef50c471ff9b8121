package notification

import (
	"context"
	"log/slog"
)

const (
	// KindEmailVerification marks the post-registration verification mail.
	KindEmailVerification = "email_verification"
)

// Message describes a notification payload.
type Message struct {
	Kind    string
	To      string
	Subject string
	Body    string
}

// Notifier delivers notifications to downstream systems. Sends are
// best-effort from the caller's point of view: registration commits before
// the notifier runs and a failed send never rolls it back.
type Notifier interface {
	Send(ctx context.Context, message Message) error
}

// LoggerNotifier is a stub implementation that writes notifications to the
// logger. Used in development and tests.
type LoggerNotifier struct {
	logger *slog.Logger
}

// NewLoggerNotifier constructs a logging notifier stub.
func NewLoggerNotifier(logger *slog.Logger) *LoggerNotifier {
	return &LoggerNotifier{logger: logger}
}

// Send writes the message to the structured logger.
func (n *LoggerNotifier) Send(_ context.Context, message Message) error {
	if n == nil || n.logger == nil {
		return nil
	}
	n.logger.Info("notification", "kind", message.Kind, "to", message.To, "subject", message.Subject)
	return nil
}
