// Package notify delivers push notifications to an ntfy-compatible endpoint
// and hosts the best-effort dispatch queue used by the submission lifecycle.
package notify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-places/pkg/interfaces"
)

// ErrNotification marks every delivery failure. Callers on the submission
// path swallow it; the contact flow surfaces it because delivery is the
// operation there.
var ErrNotification = errors.New("notify: delivery failed")

// NotificationError wraps a failed delivery attempt with its topic.
type NotificationError struct {
	Topic string
	Err   error
}

func (e *NotificationError) Error() string {
	if e == nil {
		return ErrNotification.Error()
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: topic=%s: %v", ErrNotification.Error(), e.Topic, e.Err)
	}
	return fmt.Sprintf("%s: topic=%s", ErrNotification.Error(), e.Topic)
}

func (e *NotificationError) Unwrap() error {
	if e != nil && e.Err != nil {
		return e.Err
	}
	return ErrNotification
}

// Is lets errors.Is(err, ErrNotification) match wrapped delivery failures.
func (e *NotificationError) Is(target error) bool {
	return target == ErrNotification
}

const (
	defaultBaseURL = "https://ntfy.sh"
	defaultTimeout = 10 * time.Second
)

// Client posts notifications ntfy-style: one POST per message with the
// metadata carried in headers and the body holding the message text.
type Client struct {
	baseURL string
	http    *http.Client
}

// ClientOption configures the client at construction time.
type ClientOption func(*Client)

// WithBaseURL overrides the notification endpoint base URL.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		if trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/"); trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// WithHTTPClient overrides the underlying HTTP client, used mainly for tests.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		if httpClient != nil {
			c.http = httpClient
		}
	}
}

// NewClient constructs a notifier targeting ntfy.sh unless overridden.
func NewClient(opts ...ClientOption) *Client {
	client := &Client{
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

var _ interfaces.Notifier = (*Client)(nil)

// Send delivers one notification to the given topic.
func (c *Client) Send(ctx context.Context, topic string, notification interfaces.Notification) error {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return &NotificationError{Err: errors.New("topic is required")}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+topic, strings.NewReader(notification.Message))
	if err != nil {
		return &NotificationError{Topic: topic, Err: err}
	}
	req.Header.Set("Title", notification.Title)
	if notification.Priority != "" {
		req.Header.Set("Priority", notification.Priority)
	}
	if len(notification.Tags) > 0 {
		req.Header.Set("Tags", strings.Join(notification.Tags, ","))
	}
	if notification.Click != "" {
		req.Header.Set("Click", notification.Click)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &NotificationError{Topic: topic, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &NotificationError{
			Topic: topic,
			Err:   fmt.Errorf("endpoint returned status %d", resp.StatusCode),
		}
	}
	return nil
}
