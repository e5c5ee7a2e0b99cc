package routes

import (
	"net/url"
	"testing"
)

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parsing %q: %v", raw, err)
	}
	return u
}

func TestResolvePathScheme(t *testing.T) {
	tests := []struct {
		addr string
		want Route
	}{
		{"/dashboard", Dashboard},
		{"/dashboard/", Dashboard},
		{"/dashboard/shipments", Shipments},
		{"/dashboard/TELEMETRY", Telemetry},
		{"/dashboard/reports", Reports},
		{"/dashboard/settings", Settings},
		{"/dashboard/sidebar", Settings}, // legacy alias
		{"/dashboard/unknown-view", Dashboard},
		{"/app/dashboard/shipments", Shipments}, // 'dashboard' segment found mid-path
		{"/", Dashboard},
		{"/somewhere/else", Dashboard},
	}
	for _, tt := range tests {
		got := Resolve(mustParse(t, tt.addr))
		if got != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.addr, got, tt.want)
		}
	}
}

func TestResolveFragmentWinsOverPath(t *testing.T) {
	tests := []struct {
		addr string
		want Route
	}{
		{"/dashboard/reports#telemetry", Telemetry},
		{"/dashboard/shipments#SETTINGS", Settings},
		{"/dashboard#reports", Reports},
		// An unrecognized fragment still takes precedence and falls
		// back to the default, ignoring the path.
		{"/dashboard/reports#bogus", Dashboard},
	}
	for _, tt := range tests {
		if got := Resolve(mustParse(t, tt.addr)); got != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.addr, got, tt.want)
		}
	}
}

func TestSidebarAliasMatchesSettings(t *testing.T) {
	alias := Resolve(mustParse(t, "/dashboard/sidebar"))
	direct := Resolve(mustParse(t, "/dashboard/settings"))
	if alias != direct || alias != Settings {
		t.Errorf("sidebar alias = %q, settings = %q; want both %q", alias, direct, Settings)
	}
}

func TestPathRoundTrip(t *testing.T) {
	for _, r := range All {
		if got := Resolve(mustParse(t, Path(r))); got != r {
			t.Errorf("Resolve(Path(%q)) = %q", r, got)
		}
	}
	if Path(Dashboard) != "/dashboard" {
		t.Errorf("Path(dashboard) = %q", Path(Dashboard))
	}
	if Path(Telemetry) != "/dashboard/telemetry" {
		t.Errorf("Path(telemetry) = %q", Path(Telemetry))
	}
}

func TestTableCoversAllRoutes(t *testing.T) {
	if len(Table) != len(All) {
		t.Fatalf("route table has %d entries, want %d", len(Table), len(All))
	}
	for _, r := range All {
		d, ok := Table[r]
		if !ok {
			t.Errorf("route %q missing from table", r)
			continue
		}
		if d.Title == "" {
			t.Errorf("route %q has no title", r)
		}
	}
	if Title(Telemetry) != "Live Telemetry" {
		t.Errorf("Title(telemetry) = %q", Title(Telemetry))
	}
}
