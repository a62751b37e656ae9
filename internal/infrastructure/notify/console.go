package notify

import (
	"context"
	"log/slog"

	"BlogForge/internal/ports"
)

// ConsoleNotifier logs notifications instead of delivering them. Used when
// no Telegram credentials are configured.
type ConsoleNotifier struct {
	logger *slog.Logger
}

var _ ports.Notifier = (*ConsoleNotifier)(nil)

// NewConsoleNotifier wraps the given logger.
func NewConsoleNotifier(logger *slog.Logger) *ConsoleNotifier {
	return &ConsoleNotifier{logger: logger}
}

// Notify writes the notification at info level.
func (n *ConsoleNotifier) Notify(ctx context.Context, title, message string) error {
	if n.logger != nil {
		n.logger.Info("notification", "title", title, "message", message)
	}
	return nil
}
