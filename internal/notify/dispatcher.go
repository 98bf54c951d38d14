package notify

import (
	"context"
	"sync"
	"time"

	"github.com/goliatone/go-places/internal/logging"
	"github.com/goliatone/go-places/pkg/interfaces"
)

const (
	defaultQueueSize      = 64
	defaultDeliverTimeout = 15 * time.Second
)

type task struct {
	topic        string
	notification interfaces.Notification
}

// Dispatcher queues notifications and delivers them from a single worker
// goroutine. Enqueue never blocks the caller: when the queue is full the
// notification is dropped and logged. Delivery failures are logged and
// dropped as well; nothing on the submission path waits for the endpoint.
type Dispatcher struct {
	notifier interfaces.Notifier
	logger   interfaces.Logger
	timeout  time.Duration
	queue    chan task
	wg       sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// DispatcherOption configures the dispatcher at construction time.
type DispatcherOption func(*Dispatcher)

// WithQueueSize overrides the queue capacity.
func WithQueueSize(size int) DispatcherOption {
	return func(d *Dispatcher) {
		if size > 0 {
			d.queue = make(chan task, size)
		}
	}
}

// WithDeliverTimeout bounds each delivery attempt.
func WithDeliverTimeout(timeout time.Duration) DispatcherOption {
	return func(d *Dispatcher) {
		if timeout > 0 {
			d.timeout = timeout
		}
	}
}

// WithLogger overrides the module logger.
func WithLogger(logger interfaces.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// NewDispatcher constructs the dispatcher and starts its worker.
func NewDispatcher(notifier interfaces.Notifier, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		notifier: notifier,
		logger:   logging.NoOp(),
		timeout:  defaultDeliverTimeout,
		queue:    make(chan task, defaultQueueSize),
	}
	for _, opt := range opts {
		opt(d)
	}

	d.wg.Add(1)
	go d.run()
	return d
}

// Enqueue schedules a notification for delivery without blocking. A full
// queue drops the notification, and so does a closed dispatcher.
func (d *Dispatcher) Enqueue(topic string, notification interfaces.Notification) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		d.logger.Warn("dispatcher closed, dropping notification",
			"topic", topic,
			"title", notification.Title,
		)
		return
	}

	select {
	case d.queue <- task{topic: topic, notification: notification}:
	default:
		d.logger.Warn("notification queue full, dropping",
			"topic", topic,
			"title", notification.Title,
		)
	}
}

// Close stops accepting work and waits until queued notifications drain.
// Safe to call more than once; Enqueue after Close drops the notification.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()
	d.wg.Wait()
}

func (d *Dispatcher) run() {
	defer d.wg.Done()
	for item := range d.queue {
		d.deliver(item)
	}
}

func (d *Dispatcher) deliver(item task) {
	if d.notifier == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	if err := d.notifier.Send(ctx, item.topic, item.notification); err != nil {
		d.logger.Warn("notification delivery failed",
			"topic", item.topic,
			"title", item.notification.Title,
			"error", err.Error(),
		)
		return
	}
	d.logger.Debug("notification delivered",
		"topic", item.topic,
		"title", item.notification.Title,
	)
}
