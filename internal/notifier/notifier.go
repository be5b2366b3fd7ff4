package notifier

import (
	"context"
)

// Notifier defines the interface for delivering a formatted message
type Notifier interface {
	// Notify delivers text exactly once; it does not retry
	Notify(ctx context.Context, text string) error
}
