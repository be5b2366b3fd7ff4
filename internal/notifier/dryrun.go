package notifier

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
)

// DryRunNotifier prints what would be sent without contacting any provider
type DryRunNotifier struct {
	mu  sync.Mutex
	out io.Writer
	n   int
}

// NewDryRunNotifier creates a new dry-run notifier writing to out (stdout when nil)
func NewDryRunNotifier(out io.Writer) *DryRunNotifier {
	if out == nil {
		out = os.Stdout
	}
	return &DryRunNotifier{out: out}
}

// Notify prints the message that would be sent
func (n *DryRunNotifier) Notify(_ context.Context, text string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.n++
	if _, err := fmt.Fprintf(n.out, "--- Message %d ---\n%s\n\n(Length: %d characters)\n\n", n.n, text, len(text)); err != nil {
		return fmt.Errorf("writing dry-run output: %w", err)
	}
	return nil
}
