package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/avolkov/task-manager-api/internal/constants"
)

// Notification is one pending email.
type Notification struct {
	Recipient string
	TaskTitle string
}

// Notifier simulates email delivery off the request path. Dispatch never
// blocks and never reports failure to the caller; a full queue drops the
// notification with a log line.
type Notifier struct {
	queue   chan Notification
	workers int
	delay   time.Duration
	logger  *slog.Logger

	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a Notifier with the given worker count. Delay defaults to the
// simulated send latency; tests shrink it.
func New(workers int, delay time.Duration, logger *slog.Logger) *Notifier {
	if workers <= 0 {
		workers = 1
	}
	if delay < 0 {
		delay = constants.NotifyDelay
	}
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Notifier{
		queue:   make(chan Notification, constants.NotifyQueueSize),
		workers: workers,
		delay:   delay,
		logger:  logger,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start launches the worker goroutines.
func (n *Notifier) Start() {
	for i := 0; i < n.workers; i++ {
		n.wg.Add(1)
		go n.worker()
	}
}

// Stop signals the workers and waits for them to exit. A send already in
// flight finishes; queued notifications are abandoned.
func (n *Notifier) Stop() {
	n.cancel()
	n.wg.Wait()
}

// Dispatch enqueues a notification without blocking the caller.
func (n *Notifier) Dispatch(recipient, taskTitle string) {
	select {
	case n.queue <- Notification{Recipient: recipient, TaskTitle: taskTitle}:
	default:
		n.logger.Warn("notification queue full, dropping",
			"recipient", recipient,
			"task_title", taskTitle)
	}
}

func (n *Notifier) worker() {
	defer n.wg.Done()
	for {
		select {
		case <-n.ctx.Done():
			return
		case msg := <-n.queue:
			n.send(msg)
		}
	}
}

func (n *Notifier) send(msg Notification) {
	// Simulated latency of a real mail provider round trip.
	time.Sleep(n.delay)

	n.logger.Info(fmt.Sprintf("--- EMAIL SENT to %s ---", msg.Recipient))
	n.logger.Info(fmt.Sprintf("Notification: New critical task created: '%s'", msg.TaskTitle))
	n.logger.Info("---------------------------------")
}
