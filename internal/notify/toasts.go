// Package notify shows short-lived informational messages.
package notify

import (
	"sync"
	"time"
)

// Toast is one message and the moment it disappears.
type Toast struct {
	Text    string
	Expires time.Time
}

// Toasts is a fire-and-forget message queue. Menu callbacks may post from
// any goroutine.
type Toasts struct {
	mu    sync.Mutex
	ttl   time.Duration
	now   func() time.Time
	items []Toast
}

func NewToasts(ttl time.Duration) *Toasts {
	if ttl <= 0 {
		ttl = 3 * time.Second
	}
	return &Toasts{ttl: ttl, now: time.Now}
}

// Info queues msg.
func (t *Toasts) Info(msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.items = append(t.items, Toast{Text: msg, Expires: t.now().Add(t.ttl)})
}

// Active drops expired toasts and returns the rest, oldest first.
func (t *Toasts) Active() []Toast {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()
	kept := t.items[:0]
	for _, it := range t.items {
		if now.Before(it.Expires) {
			kept = append(kept, it)
		}
	}
	t.items = kept
	out := make([]Toast, len(kept))
	copy(out, kept)
	return out
}
