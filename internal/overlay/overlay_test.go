package overlay

import (
	"context"
	"errors"
	"testing"

	"github.com/Hitargot/Qooa-Frontend/internal/kv"
	"github.com/Hitargot/Qooa-Frontend/internal/settings"
)

func newManager(t *testing.T) (*Manager, *settings.Store) {
	t.Helper()
	store := settings.NewStore(kv.NewMemory())
	return NewManager(store), store
}

func TestOpenReplacesAllSlots(t *testing.T) {
	m, _ := newManager(t)
	ctx := context.Background()

	m.Open(ctx, Spec{Title: "New Order", Body: "order form", Footer: "submit"})
	m.Open(ctx, Spec{Title: "Alerts", Body: "alert list"})

	got := m.Snapshot()
	if got.Title != "Alerts" || got.Body != "alert list" {
		t.Errorf("second open did not replace content: %+v", got)
	}
	// No residue from the first flow.
	if got.Footer != "" {
		t.Errorf("footer leaked from previous open: %q", got.Footer)
	}
}

func TestCloseClearsEverything(t *testing.T) {
	m, _ := newManager(t)
	ctx := context.Background()

	fired := false
	m.Open(ctx, Spec{Title: "Flow A", Body: "a", OnOpen: func() error {
		fired = true
		return nil
	}})
	if !fired {
		t.Fatalf("onOpen did not run on open")
	}

	m.Close()
	got := m.Snapshot()
	if got.IsOpen || got.Title != "" || got.Body != "" || got.Footer != "" || got.Size != "" {
		t.Errorf("close left residual state: %+v", got)
	}

	// A stale callback must not fire for a later, unrelated open.
	staleFired := false
	m.Open(ctx, Spec{Title: "Flow A", OnOpen: func() error {
		staleFired = true
		return nil
	}})
	m.Close()
	staleFired = false
	m.Open(ctx, Spec{Title: "Flow B"})
	m.Close()
	if staleFired {
		t.Errorf("previous flow's onOpen fired after close")
	}
}

func TestOnOpenFailuresAreContained(t *testing.T) {
	m, _ := newManager(t)
	ctx := context.Background()

	m.Open(ctx, Spec{Title: "err", OnOpen: func() error {
		return errors.New("focus failed")
	}})
	if !m.Snapshot().IsOpen {
		t.Errorf("onOpen error should not prevent open")
	}

	m.Open(ctx, Spec{Title: "panic", OnOpen: func() error {
		panic("boom")
	}})
	if got := m.Snapshot(); !got.IsOpen || got.Title != "panic" {
		t.Errorf("onOpen panic should not prevent open: %+v", got)
	}
}

func TestSizeResolution(t *testing.T) {
	m, store := newManager(t)
	ctx := context.Background()

	// Explicit size wins.
	m.Open(ctx, Spec{Title: "a", Size: settings.SizeSmall})
	if got := m.Snapshot().Size; got != settings.SizeSmall {
		t.Errorf("explicit size: got %q", got)
	}

	// Settings default used otherwise.
	s := settings.Defaults()
	s.DefaultOverlaySize = settings.SizeSmall
	if err := store.Save(ctx, s); err != nil {
		t.Fatalf("saving settings: %v", err)
	}
	m.Open(ctx, Spec{Title: "b"})
	if got := m.Snapshot().Size; got != settings.SizeSmall {
		t.Errorf("settings default size: got %q", got)
	}

	// Regular when nothing else applies.
	s.DefaultOverlaySize = settings.SizeRegular
	store.Save(ctx, s)
	m.Open(ctx, Spec{Title: "c"})
	if got := m.Snapshot().Size; got != settings.SizeRegular {
		t.Errorf("fallback size: got %q", got)
	}
}

func TestSetBodyOnlyWhenOpen(t *testing.T) {
	m, _ := newManager(t)
	ctx := context.Background()

	m.SetBody("ignored")
	if got := m.Snapshot(); got.Body != "" {
		t.Errorf("SetBody on closed overlay took effect: %+v", got)
	}

	m.Open(ctx, Spec{Title: "form", Body: "initial"})
	m.SetBody("inline error")
	if got := m.Snapshot().Body; got != "inline error" {
		t.Errorf("SetBody: got %q", got)
	}
}

func TestAlertUsesSmallOverlay(t *testing.T) {
	m, _ := newManager(t)
	m.Alert(context.Background(), "Shipment not found!", "Shipment")

	got := m.Snapshot()
	if !got.IsOpen || got.Title != "Shipment" || got.Size != settings.SizeSmall {
		t.Errorf("unexpected alert state: %+v", got)
	}
}

func TestQueueNotifier(t *testing.T) {
	n := &QueueNotifier{}
	n.Toast("one")
	n.Toast("two")
	got := n.Drain()
	if len(got) != 2 || got[0] != "one" || got[1] != "two" {
		t.Errorf("Drain = %v", got)
	}
	if len(n.Drain()) != 0 {
		t.Errorf("Drain did not clear the queue")
	}
}
