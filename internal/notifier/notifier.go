package notifier

import "context"

// Notifier defines the interface for delivering a formatted notification
type Notifier interface {
	// Notify delivers message to its destination
	Notify(ctx context.Context, message string) error
}
