package notifier

import "context"

// UnavailableNotifier stands in when no real notifier could be built.
// Every delivery fails with the error that prevented building it.
type UnavailableNotifier struct {
	err error
}

// NewUnavailableNotifier creates a notifier that always fails with err
func NewUnavailableNotifier(err error) *UnavailableNotifier {
	return &UnavailableNotifier{err: err}
}

// Notify returns the construction error
func (n *UnavailableNotifier) Notify(_ context.Context, _ string) error {
	return n.err
}
