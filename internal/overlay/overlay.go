// Package overlay owns the single reusable overlay surface. At least
// six unrelated flows (new order, telemetry detail, alerts, password
// change, settings confirmations, share notices) present through one
// instance, so opening always starts from a cleared state: no call
// site can observe another flow's slots or callback.
package overlay

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/Hitargot/Qooa-Frontend/internal/settings"
)

// Spec describes one overlay presentation.
type Spec struct {
	Title  string
	Body   string
	Footer string
	// Size overrides the settings default when non-empty.
	Size settings.OverlaySize
	// OnOpen runs synchronously once the overlay is visible and wired,
	// e.g. to focus an input. Errors and panics are logged, never
	// propagated to the caller of Open.
	OnOpen func() error
}

// State is the overlay's externally visible state.
type State struct {
	IsOpen bool                 `json:"isOpen"`
	Title  string               `json:"title"`
	Body   string               `json:"body"`
	Footer string               `json:"footer"`
	Size   settings.OverlaySize `json:"size"`
}

// Manager is the finite-state owner of the shared overlay. Exactly one
// instance exists per UI session.
type Manager struct {
	mu       sync.Mutex
	state    State
	onOpen   func() error
	settings *settings.Store
}

// NewManager creates a Manager resolving default sizes from the given
// settings store.
func NewManager(store *settings.Store) *Manager {
	return &Manager{settings: store}
}

// Open presents the overlay with the given content. Any previous
// content is fully discarded first; re-entrant opens replace, they do
// not queue.
func (m *Manager) Open(ctx context.Context, spec Spec) {
	m.mu.Lock()
	m.reset()

	size := spec.Size
	if size == "" {
		size = m.settings.Load(ctx).DefaultOverlaySize
	}
	if size == "" {
		size = settings.SizeRegular
	}

	m.state = State{
		IsOpen: true,
		Title:  spec.Title,
		Body:   spec.Body,
		Footer: spec.Footer,
		Size:   size,
	}
	m.onOpen = spec.OnOpen
	callback := m.onOpen
	m.mu.Unlock()

	if callback != nil {
		runOnOpen(callback)
	}
}

func runOnOpen(fn func() error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("overlay: onOpen panic: %v", r)
		}
	}()
	if err := fn(); err != nil {
		log.Printf("overlay: onOpen: %v", err)
	}
}

// Close hides the overlay and clears every slot and the onOpen
// reference, so no stale handler can fire after close.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reset()
}

// reset clears all state. Caller holds the lock.
func (m *Manager) reset() {
	m.state = State{}
	m.onOpen = nil
}

// Snapshot returns a copy of the current overlay state.
func (m *Manager) Snapshot() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// SetBody replaces only the body slot of an open overlay. Used by
// flows that surface inline errors without re-opening.
func (m *Manager) SetBody(body string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.IsOpen {
		m.state.Body = body
	}
}

// Alert presents a small alert overlay with an OK button. It is the
// non-fatal error surface for view-switch failures and similar.
func (m *Manager) Alert(ctx context.Context, message, title string) {
	if title == "" {
		title = "Alert"
	}
	m.Open(ctx, Spec{
		Title:  title,
		Body:   fmt.Sprintf(`<div class="alert-body">%s</div>`, message),
		Footer: `<button class="btn-primary" data-action="overlay-close">OK</button>`,
		Size:   settings.SizeSmall,
	})
}
