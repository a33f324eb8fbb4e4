package notifier

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/pfrederiksen/promiedos-alerts/internal/logger"
	"github.com/pfrederiksen/promiedos-alerts/internal/telegram"
)

// MessageSender sends one text message
type MessageSender interface {
	SendMessage(ctx context.Context, text string) error
}

// TelegramNotifier delivers notifications to a Telegram chat
type TelegramNotifier struct {
	sender MessageSender
	limit  int
}

// NewTelegramNotifier creates a notifier sending through the given client
func NewTelegramNotifier(sender MessageSender) *TelegramNotifier {
	return &TelegramNotifier{
		sender: sender,
		limit:  telegram.MaxMessageLength,
	}
}

// Notify sends message, split into as many Telegram messages as needed.
// Stops at the first chunk that fails.
func (n *TelegramNotifier) Notify(ctx context.Context, message string) error {
	chunks := telegram.SplitMessage(message, n.limit)
	if len(chunks) == 0 {
		return errors.New("nothing to send")
	}

	for i, chunk := range chunks {
		if err := n.sender.SendMessage(ctx, chunk); err != nil {
			return errors.Wrapf(err, "sending message %d/%d", i+1, len(chunks))
		}
		logger.IncrCounter("notifier.messages_sent")
	}

	logger.Debug("Notification delivered", logger.Fields{
		"messages": len(chunks),
	})
	return nil
}
