package service

import (
	"fmt"
	"sync"
	"time"
)

// NotifyLevel grades notifications for UI display.
type NotifyLevel string

const (
	NotifyInfo    NotifyLevel = "info"
	NotifySuccess NotifyLevel = "success"
	NotifyWarning NotifyLevel = "warning"
	NotifyError   NotifyLevel = "error"
)

// Notification is one user-facing feedback event (stock limits, sale results,
// print failures). These are UI toasts, not errors; errors travel separately.
type Notification struct {
	Level   NotifyLevel `json:"level"`
	Message string      `json:"message"`
	At      time.Time   `json:"at"`
}

// NotificationFeed is a bounded in-process queue of notifications. The UI
// drains it; when it overflows, the oldest entries drop first.
type NotificationFeed struct {
	mu    sync.Mutex
	items []Notification
	max   int
}

// NewNotificationFeed creates a feed holding at most max undrained entries.
func NewNotificationFeed(max int) *NotificationFeed {
	if max <= 0 {
		max = 64
	}
	return &NotificationFeed{max: max}
}

// Push appends a notification, evicting the oldest entry when full.
func (f *NotificationFeed) Push(level NotifyLevel, format string, args ...interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.items = append(f.items, Notification{
		Level:   level,
		Message: fmt.Sprintf(format, args...),
		At:      time.Now(),
	})
	if len(f.items) > f.max {
		f.items = f.items[len(f.items)-f.max:]
	}
}

// Drain returns all pending notifications and empties the feed.
func (f *NotificationFeed) Drain() []Notification {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := f.items
	f.items = nil
	return out
}

// Pending returns a copy of the queued notifications without draining them.
func (f *NotificationFeed) Pending() []Notification {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]Notification, len(f.items))
	copy(out, f.items)
	return out
}
