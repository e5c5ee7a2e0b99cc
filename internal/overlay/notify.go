package overlay

import (
	"log"
	"sync"
)

// Notifier delivers transient, non-blocking notices (toasts).
type Notifier interface {
	Toast(message string)
}

// LogNotifier writes toasts to the process log.
type LogNotifier struct{}

func (LogNotifier) Toast(message string) {
	log.Printf("toast: %s", message)
}

// QueueNotifier collects toasts so the next page render can flush them.
type QueueNotifier struct {
	mu     sync.Mutex
	queued []string
}

func (n *QueueNotifier) Toast(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.queued = append(n.queued, message)
}

// Drain returns and clears the queued toasts.
func (n *QueueNotifier) Drain() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := n.queued
	n.queued = nil
	return out
}
