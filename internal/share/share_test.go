package share

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Hitargot/Qooa-Frontend/internal/provider"
)

type toastRecorder struct {
	mu       sync.Mutex
	messages []string
}

func (r *toastRecorder) Toast(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, message)
}

func (r *toastRecorder) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.messages...)
}

type fakeSharer struct {
	mu      sync.Mutex
	calls   int
	err     error
	block   chan struct{} // when set, Share waits until closed
	entered chan struct{} // when set, closed on first entry
	last    Payload
}

func (f *fakeSharer) Share(ctx context.Context, p Payload) error {
	f.mu.Lock()
	f.calls++
	f.last = p
	entered, block := f.entered, f.block
	f.mu.Unlock()
	if entered != nil {
		close(entered)
		f.mu.Lock()
		f.entered = nil
		f.mu.Unlock()
	}
	if block != nil {
		<-block
	}
	return f.err
}

func (f *fakeSharer) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeClipboard struct {
	calls int
	err   error
	text  string
}

func (f *fakeClipboard) WriteText(ctx context.Context, text string) error {
	f.calls++
	f.text = text
	return f.err
}

type fakePrompter struct {
	calls int
	label string
	text  string
}

func (f *fakePrompter) Prompt(label, text string) {
	f.calls++
	f.label = label
	f.text = text
}

func newController(t *testing.T) (*Controller, *toastRecorder) {
	t.Helper()
	toasts := &toastRecorder{}
	c := NewController(provider.NewMemory(nil), toasts, "https://qooa.example")
	c.retryDelay = time.Millisecond
	return c, toasts
}

func TestShareSuccess(t *testing.T) {
	c, toasts := newController(t)
	sharer := &fakeSharer{}
	c.SetSharer(sharer)

	c.ShareSnapshot(context.Background(), "SHP-001")

	if sharer.callCount() != 1 {
		t.Fatalf("share calls = %d", sharer.callCount())
	}
	if got := toasts.all(); len(got) != 1 || got[0] != "Telemetry shared" {
		t.Errorf("toasts = %v", got)
	}
	p := sharer.last
	if p.Title != "Telemetry — SHP-001" {
		t.Errorf("title = %q", p.Title)
	}
	if !strings.Contains(p.Text, "Shipment: SHP-001") || !strings.Contains(p.Text, "Ethylene Gas: 120 ppm") {
		t.Errorf("text = %q", p.Text)
	}
	if p.URL != "https://qooa.example/#telemetry" {
		t.Errorf("url = %q", p.URL)
	}
}

func TestConcurrentShareIsRejected(t *testing.T) {
	c, toasts := newController(t)
	sharer := &fakeSharer{
		block:   make(chan struct{}),
		entered: make(chan struct{}),
	}
	c.SetSharer(sharer)

	done := make(chan struct{})
	go func() {
		c.ShareSnapshot(context.Background(), "SHP-001")
		close(done)
	}()
	<-sharer.entered

	// The second request must bounce off the guard without reaching
	// the share target.
	c.ShareSnapshot(context.Background(), "SHP-002")
	if sharer.callCount() != 1 {
		t.Errorf("share calls = %d, want 1", sharer.callCount())
	}
	found := false
	for _, m := range toasts.all() {
		if strings.HasPrefix(m, "Previous share still in progress") {
			found = true
		}
	}
	if !found {
		t.Errorf("busy notice missing: %v", toasts.all())
	}

	close(sharer.block)
	<-done

	// The guard clears once the first share settles.
	c.ShareSnapshot(context.Background(), "SHP-002")
	if sharer.callCount() != 2 {
		t.Errorf("share calls after release = %d, want 2", sharer.callCount())
	}
}

func TestShareFailureFallsBackToClipboard(t *testing.T) {
	c, toasts := newController(t)
	sharer := &fakeSharer{err: errors.New("user dismissed")}
	clip := &fakeClipboard{}
	c.SetSharer(sharer)
	c.SetClipboard(clip)

	c.ShareSnapshot(context.Background(), "SHP-001")

	if clip.calls != 1 {
		t.Fatalf("clipboard calls = %d", clip.calls)
	}
	if !strings.Contains(clip.text, "Shipment: SHP-001") {
		t.Errorf("clipboard text = %q", clip.text)
	}
	if got := toasts.all(); len(got) != 1 || got[0] != "Telemetry copied to clipboard" {
		t.Errorf("toasts = %v", got)
	}
}

func TestInvalidStateRetriesClipboardAfterDelay(t *testing.T) {
	c, toasts := newController(t)
	sharer := &fakeSharer{err: ErrInvalidState}
	clip := &fakeClipboard{}
	c.SetSharer(sharer)
	c.SetClipboard(clip)

	start := time.Now()
	c.ShareSnapshot(context.Background(), "SHP-001")

	if clip.calls != 1 {
		t.Fatalf("clipboard calls = %d", clip.calls)
	}
	if time.Since(start) < c.retryDelay {
		t.Errorf("clipboard fallback ran before the settle delay")
	}
	if got := toasts.all(); len(got) != 1 || got[0] != "Telemetry copied to clipboard" {
		t.Errorf("toasts = %v", got)
	}
}

func TestNoSharerUsesClipboardDirectly(t *testing.T) {
	c, toasts := newController(t)
	clip := &fakeClipboard{}
	c.SetClipboard(clip)

	c.ShareSnapshot(context.Background(), "SHP-001")

	if clip.calls != 1 {
		t.Errorf("clipboard calls = %d", clip.calls)
	}
	if got := toasts.all(); len(got) != 1 || got[0] != "Telemetry copied to clipboard" {
		t.Errorf("toasts = %v", got)
	}
}

func TestClipboardFailureFallsBackToPrompt(t *testing.T) {
	c, toasts := newController(t)
	clip := &fakeClipboard{err: errors.New("denied")}
	prompter := &fakePrompter{}
	c.SetClipboard(clip)
	c.SetPrompter(prompter)

	c.ShareSnapshot(context.Background(), "SHP-001")

	if prompter.calls != 1 {
		t.Fatalf("prompt calls = %d, want 1", prompter.calls)
	}
	if !strings.Contains(prompter.text, "Shipment: SHP-001") {
		t.Errorf("prompt text = %q", prompter.text)
	}
	if got := toasts.all(); len(got) != 1 || got[0] != "Unable to copy telemetry" {
		t.Errorf("toasts = %v", got)
	}
}

func TestNoClipboardFallsBackToPrompt(t *testing.T) {
	c, _ := newController(t)
	prompter := &fakePrompter{}
	c.SetPrompter(prompter)

	c.ShareSnapshot(context.Background(), "SHP-001")

	if prompter.calls != 1 {
		t.Fatalf("prompt calls = %d", prompter.calls)
	}
	if prompter.label != "Copy telemetry data" {
		t.Errorf("label = %q", prompter.label)
	}
	if !strings.Contains(prompter.text, "Shipment: SHP-001") {
		t.Errorf("text = %q", prompter.text)
	}
}

func TestShipmentWithoutReadings(t *testing.T) {
	toasts := &toastRecorder{}
	mem := provider.NewMemory(nil)
	c := NewController(mem, toasts, "https://qooa.example")
	sharer := &fakeSharer{}
	c.SetSharer(sharer)

	shipment, err := mem.CreateOrder(context.Background(), provider.OrderRequest{
		Origin:      "Lokoja",
		Destination: "Abuja",
		Crates:      4,
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	// A fresh order has no telemetry yet; sharing it must report that
	// instead of reaching the share target.
	c.ShareSnapshot(context.Background(), shipment.ID)

	if sharer.callCount() != 0 {
		t.Errorf("share must not run without a reading")
	}
	if got := toasts.all(); len(got) != 1 || got[0] != "Telemetry not available to share" {
		t.Errorf("toasts = %v", got)
	}
}

func TestUnknownShipment(t *testing.T) {
	c, toasts := newController(t)
	sharer := &fakeSharer{}
	c.SetSharer(sharer)

	c.ShareSnapshot(context.Background(), "SHP-999")

	if sharer.callCount() != 0 {
		t.Errorf("share must not run for an unknown shipment")
	}
	if got := toasts.all(); len(got) != 1 || got[0] != "Telemetry not available to share" {
		t.Errorf("toasts = %v", got)
	}
}
