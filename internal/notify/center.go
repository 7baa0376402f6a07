// Package notify implements the transient toast surface. A toast always
// preempts the one currently showing for the same surface key; nothing is
// queued. Auto-dismissal runs on the shared scheduler so a newer toast
// supersedes the pending dismissal of the one it replaced.
package notify

import (
	"sync"
	"time"

	"github.com/hookedbylulu/storefront-api/internal/sched"
)

// Severity classifies a toast.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
)

// DefaultTTL is how long a toast stays visible without being preempted.
const DefaultTTL = 3 * time.Second

// Toast is one transient notification.
type Toast struct {
	Message  string    `json:"message"`
	Severity Severity  `json:"severity"`
	ShownAt  time.Time `json:"shownAt"`
}

// Center tracks the current toast per surface key.
type Center struct {
	Sched *sched.Scheduler
	TTL   time.Duration
	Now   func() time.Time

	mu      sync.Mutex
	current map[string]Toast
}

func (c *Center) ttl() time.Duration {
	if c.TTL <= 0 {
		return DefaultTTL
	}
	return c.TTL
}

func (c *Center) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// Notify replaces the current toast for the key and schedules its dismissal.
func (c *Center) Notify(key, message string, severity Severity) Toast {
	toast := Toast{Message: message, Severity: severity, ShownAt: c.now()}
	c.mu.Lock()
	if c.current == nil {
		c.current = make(map[string]Toast)
	}
	c.current[key] = toast
	c.mu.Unlock()

	if c.Sched != nil {
		c.Sched.Schedule("toast:"+key, c.ttl(), func() { c.Dismiss(key) })
	}
	return toast
}

// Current returns the toast visible for the key, if any.
func (c *Center) Current(key string) (Toast, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	toast, ok := c.current[key]
	return toast, ok
}

// Dismiss clears the toast for the key.
func (c *Center) Dismiss(key string) {
	c.mu.Lock()
	delete(c.current, key)
	c.mu.Unlock()
}

// Success is shorthand for a success toast.
func (c *Center) Success(key, message string) Toast {
	return c.Notify(key, message, SeveritySuccess)
}

// Error is shorthand for an error toast.
func (c *Center) Error(key, message string) Toast {
	return c.Notify(key, message, SeverityError)
}

// Info is shorthand for an info toast.
func (c *Center) Info(key, message string) Toast {
	return c.Notify(key, message, SeverityInfo)
}
