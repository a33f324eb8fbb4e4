package notifier

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pfrederiksen/promiedos-alerts/internal/telegram"
)

// DryRunNotifier prints what would be sent without contacting the messaging API
type DryRunNotifier struct {
	out   io.Writer
	limit int
}

// NewDryRunNotifier creates a new dry-run notifier writing to out (stdout when nil)
func NewDryRunNotifier(out io.Writer) *DryRunNotifier {
	if out == nil {
		out = os.Stdout
	}
	return &DryRunNotifier{out: out, limit: telegram.MaxMessageLength}
}

// Notify prints the messages that would be sent
func (n *DryRunNotifier) Notify(_ context.Context, message string) error {
	chunks := telegram.SplitMessage(message, n.limit)
	for i, chunk := range chunks {
		fmt.Fprintf(n.out, "--- Message %d/%d ---\n", i+1, len(chunks))
		fmt.Fprintln(n.out, chunk)
		fmt.Fprintf(n.out, "\n(Length: %d characters)\n\n", len([]rune(chunk)))
	}
	return nil
}
