// Package routes resolves the canonical route from an address. Two
// addressing schemes are in use: fragment deep links (#telemetry) kept
// for backward compatibility, and clean paths (/dashboard/telemetry).
// The fragment wins when both are present.
package routes

import (
	"net/url"
	"strings"
)

// Route is the canonical identifier for a navigable view.
type Route string

const (
	Dashboard Route = "dashboard"
	Shipments Route = "shipments"
	Telemetry Route = "telemetry"
	Reports   Route = "reports"
	Settings  Route = "settings"
)

// Strategy selects how a view is materialized.
type Strategy int

const (
	// RemoteThenLocal tries the remote fragment first and falls back
	// to the local builder.
	RemoteThenLocal Strategy = iota
	// LocalOnly never consults the remote source.
	LocalOnly
)

// ViewDescriptor pairs a route with its title and resolution strategy.
type ViewDescriptor struct {
	Route    Route
	Title    string
	Strategy Strategy
}

// Table is the static route table. Every canonical route appears here
// exactly once.
var Table = map[Route]ViewDescriptor{
	Dashboard: {Route: Dashboard, Title: "Dashboard", Strategy: RemoteThenLocal},
	Shipments: {Route: Shipments, Title: "Shipments", Strategy: RemoteThenLocal},
	Telemetry: {Route: Telemetry, Title: "Live Telemetry", Strategy: RemoteThenLocal},
	Reports:   {Route: Reports, Title: "Reports", Strategy: RemoteThenLocal},
	Settings:  {Route: Settings, Title: "Settings", Strategy: RemoteThenLocal},
}

// All lists the routes in sidebar order.
var All = []Route{Dashboard, Shipments, Telemetry, Reports, Settings}

// Known reports whether r is a canonical route.
func Known(r Route) bool {
	_, ok := Table[r]
	return ok
}

// Resolve derives the canonical route from the given address.
// Priority: a non-empty fragment, lowercased and used verbatim; then
// the path segment following a literal "dashboard" segment, with the
// legacy "sidebar" alias normalized to settings. Anything that does
// not name a known route resolves to Dashboard.
func Resolve(u *url.URL) Route {
	if frag := strings.ToLower(u.Fragment); frag != "" {
		return normalize(frag)
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i, p := range parts {
		if p != "dashboard" {
			continue
		}
		if i+1 >= len(parts) || parts[i+1] == "" {
			return Dashboard
		}
		sub := strings.ToLower(parts[i+1])
		if sub == "sidebar" {
			sub = "settings"
		}
		return normalize(sub)
	}

	return Dashboard
}

func normalize(key string) Route {
	if r := Route(key); Known(r) {
		return r
	}
	return Dashboard
}

// Path returns the clean address-bar path for a route.
func Path(r Route) string {
	if r == Dashboard {
		return "/dashboard"
	}
	return "/dashboard/" + string(r)
}

// Title returns the human-readable title for a route.
func Title(r Route) string {
	if d, ok := Table[r]; ok {
		return d.Title
	}
	return Table[Dashboard].Title
}
