// Package notify models toast notifications as fire-and-forget values.
package notify

import (
	"sync"

	"go.uber.org/zap"
)

type Severity string

const (
	Success Severity = "success"
	Error   Severity = "error"
	Info    Severity = "info"
)

type Notification struct {
	Severity Severity `json:"severity"`
	Title    string   `json:"title"`
	Message  string   `json:"message"`
}

// Notifier receives toasts. Implementations must not block.
type Notifier interface {
	Notify(n Notification)
}

type Func func(Notification)

func (f Func) Notify(n Notification) { f(n) }

// Nop discards every notification.
var Nop Notifier = Func(func(Notification) {})

// Collector buffers notifications so they can be returned with a response.
type Collector struct {
	mu    sync.Mutex
	items []Notification
}

func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) Notify(n Notification) {
	c.mu.Lock()
	c.items = append(c.items, n)
	c.mu.Unlock()
}

// Drain returns the buffered notifications and resets the buffer.
func (c *Collector) Drain() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.items
	c.items = nil
	return out
}

// Logged writes every notification to logger before forwarding it to next.
func Logged(logger *zap.Logger, next Notifier) Notifier {
	if next == nil {
		next = Nop
	}
	return Func(func(n Notification) {
		logger.Debug("toast",
			zap.String("severity", string(n.Severity)),
			zap.String("title", n.Title),
			zap.String("message", n.Message))
		next.Notify(n)
	})
}
