package interfaces

import "context"

// Notification describes a push message in the shape understood by
// ntfy-compatible endpoints. Only Title and Message are required.
type Notification struct {
	Title    string
	Message  string
	Priority string
	Tags     []string
	Click    string
}

// Notifier delivers a notification to a named topic. Implementations should
// treat delivery as best-effort; callers decide whether failures are fatal.
type Notifier interface {
	Send(ctx context.Context, topic string, notification Notification) error
}
