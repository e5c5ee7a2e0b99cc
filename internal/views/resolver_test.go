package views

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Hitargot/Qooa-Frontend/internal/kv"
	"github.com/Hitargot/Qooa-Frontend/internal/overlay"
	"github.com/Hitargot/Qooa-Frontend/internal/provider"
	"github.com/Hitargot/Qooa-Frontend/internal/routes"
	"github.com/Hitargot/Qooa-Frontend/internal/session"
	"github.com/Hitargot/Qooa-Frontend/internal/settings"
)

type fixture struct {
	resolver *Resolver
	overlay  *overlay.Manager
	sessions *session.Store
	provider *provider.Memory
}

func newFixture(t *testing.T, fragments FragmentSource) *fixture {
	t.Helper()
	backing := kv.NewMemory()
	settingsStore := settings.NewStore(backing)
	sessions := session.NewStore(backing)
	ov := overlay.NewManager(settingsStore)
	p := provider.NewMemory(nil)
	return &fixture{
		resolver: NewResolver(fragments, p, sessions, settingsStore, ov),
		overlay:  ov,
		sessions: sessions,
		provider: p,
	}
}

func TestActivateLocalTelemetry(t *testing.T) {
	f := newFixture(t, nil)
	f.resolver.Activate(context.Background(), routes.Telemetry)

	got := f.resolver.Current()
	if got.Route != routes.Telemetry || got.Source != "local" {
		t.Fatalf("unexpected content meta: %+v", got)
	}
	if got.Title != "Live Telemetry" {
		t.Errorf("title = %q", got.Title)
	}
	if got.LastRefreshed.IsZero() {
		t.Errorf("LastRefreshed not stamped")
	}

	// One sensor card per shipment with telemetry, correctly classified.
	if n := strings.Count(got.HTML, `class="sensor-card"`); n != 3 {
		t.Errorf("expected 3 sensor cards, got %d", n)
	}
	// SHP-003's latest reading (31.2 C, 355 ppm, 90%) is critical on
	// temperature and gas, elevated on humidity.
	for _, want := range []string{
		`sensor-value status-critical">31.2&deg;C`,
		`sensor-value status-critical">355 ppm`,
		`sensor-value status-warning">90%`,
		// SHP-001 (24.1 °C, 120 ppm) is nominal.
		`sensor-value status-good">24.1&deg;C`,
		`sensor-value status-good">120 ppm`,
	} {
		if !strings.Contains(got.HTML, want) {
			t.Errorf("telemetry view missing %q", want)
		}
	}
}

func TestActivateDashboardGreeting(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	f.resolver.Activate(ctx, routes.Dashboard)
	got := f.resolver.Current()
	if !strings.Contains(got.Greeting, "Welcome to QOOA Control Tower") {
		t.Errorf("anonymous greeting = %q", got.Greeting)
	}
	if got.Stats.TotalShipments != 3 {
		t.Errorf("stats not populated: %+v", got.Stats)
	}

	f.sessions.Save(ctx, session.Session{Token: "tok", Vendor: session.Vendor{Name: "Amina"}})
	f.resolver.Activate(ctx, routes.Dashboard)
	if got := f.resolver.Current().Greeting; got != "Welcome back, Amina" {
		t.Errorf("vendor greeting = %q", got)
	}
}

func TestActivateUnknownRouteFallsBackToDashboard(t *testing.T) {
	f := newFixture(t, nil)
	f.resolver.Activate(context.Background(), routes.Route("bogus"))
	if got := f.resolver.Current().Route; got != routes.Dashboard {
		t.Errorf("route = %q, want dashboard", got)
	}
}

func TestRemoteFragmentWithSecondaryPass(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/components/views/dashboard.html" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`<header>Remote Dashboard</header><div id="shipmentsContainer"></div>`))
	}))
	defer srv.Close()

	f := newFixture(t, NewHTTPFragments(srv.URL, srv.Client()))
	f.resolver.Activate(context.Background(), routes.Dashboard)

	got := f.resolver.Current()
	if got.Source != "remote" {
		t.Fatalf("expected remote source, got %q", got.Source)
	}
	if !strings.Contains(got.HTML, "Remote Dashboard") {
		t.Errorf("fragment content missing")
	}
	// The shipments-list pass must have filled the container.
	if !strings.Contains(got.HTML, `class="shipment-card"`) {
		t.Errorf("dashboard secondary renderer did not run")
	}
}

func TestRemoteFragmentSkipsSecondaryPassForOtherRoutes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<header>Remote Reports</header>`))
	}))
	defer srv.Close()

	f := newFixture(t, NewHTTPFragments(srv.URL, srv.Client()))
	f.resolver.Activate(context.Background(), routes.Reports)

	got := f.resolver.Current()
	if got.Source != "remote" || strings.Contains(got.HTML, "shipment-card") {
		t.Errorf("unexpected reports content: source=%q", got.Source)
	}
}

func TestFragmentFailureFallsBackToLocal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	f := newFixture(t, NewHTTPFragments(srv.URL, srv.Client()))
	f.resolver.Activate(context.Background(), routes.Shipments)

	got := f.resolver.Current()
	if got.Source != "local" {
		t.Fatalf("expected local fallback, got %q", got.Source)
	}
	if !strings.Contains(got.HTML, "All Shipments") {
		t.Errorf("local shipments view not rendered")
	}
}

// blockingFragments holds the telemetry fetch in flight; other routes
// resolve immediately.
type blockingFragments struct {
	entered chan struct{}
	release chan struct{}
}

func (b *blockingFragments) Fetch(ctx context.Context, route routes.Route) (string, error) {
	if route == routes.Telemetry {
		b.entered <- struct{}{}
		<-b.release
		return "<header>Slow Telemetry</header>", nil
	}
	return "<header>Remote " + string(route) + "</header>", nil
}

func TestStaleFragmentResponseIsDiscarded(t *testing.T) {
	frags := &blockingFragments{
		entered: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	f := newFixture(t, frags)
	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		defer close(done)
		f.resolver.Activate(ctx, routes.Telemetry)
	}()
	<-frags.entered

	// Navigate away while the telemetry fetch is outstanding, then let
	// the slow response arrive.
	f.resolver.Activate(ctx, routes.Reports)
	close(frags.release)
	<-done

	got := f.resolver.Current()
	if got.Route != routes.Reports {
		t.Fatalf("current route = %q, want reports", got.Route)
	}
	if strings.Contains(got.HTML, "Slow Telemetry") {
		t.Fatalf("stale telemetry response overwrote the reports view")
	}
	if !strings.Contains(got.HTML, "Remote reports") {
		t.Errorf("reports content missing: %q", got.HTML)
	}
}

// panicProvider triggers the view-switch failure path.
type panicProvider struct {
	provider.Provider
}

func (panicProvider) Shipments(ctx context.Context) ([]provider.Shipment, error) {
	panic("data provider exploded")
}

func TestActivatePanicIsContained(t *testing.T) {
	f := newFixture(t, nil)
	f.resolver.provider = panicProvider{}

	f.resolver.Activate(context.Background(), routes.Shipments)

	// The failure is surfaced via the alert surface, not a crash, and
	// the requested route stays current.
	ov := f.overlay.Snapshot()
	if !ov.IsOpen || ov.Title != "Navigation Error" {
		t.Errorf("expected navigation error alert, got %+v", ov)
	}
	if got := f.resolver.Current().Route; got != routes.Shipments {
		t.Errorf("route state corrupted: %q", got)
	}
}

func TestLastRefreshedAdvances(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	f.resolver.Activate(ctx, routes.Dashboard)
	first := f.resolver.Current().LastRefreshed
	time.Sleep(10 * time.Millisecond)
	f.resolver.Activate(ctx, routes.Dashboard)
	second := f.resolver.Current().LastRefreshed
	if !second.After(first) {
		t.Errorf("LastRefreshed did not advance: %v -> %v", first, second)
	}
}
