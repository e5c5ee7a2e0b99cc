// Package views turns a canonical route into rendered main-content
// markup. A pre-rendered remote fragment is preferred when a fragment
// source is configured; every route also has a local builder that
// synthesizes an equivalent view straight from the data provider, so
// the dashboard is fully functional with no remote source at all.
package views

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/Hitargot/Qooa-Frontend/internal/overlay"
	"github.com/Hitargot/Qooa-Frontend/internal/provider"
	"github.com/Hitargot/Qooa-Frontend/internal/routes"
	"github.com/Hitargot/Qooa-Frontend/internal/session"
	"github.com/Hitargot/Qooa-Frontend/internal/settings"
)

// Content is the resolved state of the main content region.
type Content struct {
	Route         routes.Route
	Title         string
	HTML          string
	Greeting      string
	Stats         provider.Stats
	Source        string // "remote" or "local"
	LastRefreshed time.Time
}

// Resolver resolves and holds the active view.
type Resolver struct {
	fragments FragmentSource // nil means local builders only
	provider  provider.Provider
	sessions  *session.Store
	settings  *settings.Store
	overlay   *overlay.Manager

	mu      sync.Mutex
	gen     uint64
	content Content
}

// NewResolver wires a Resolver. fragments may be nil.
func NewResolver(fragments FragmentSource, p provider.Provider, sessions *session.Store, st *settings.Store, ov *overlay.Manager) *Resolver {
	return &Resolver{
		fragments: fragments,
		provider:  p,
		sessions:  sessions,
		settings:  st,
		overlay:   ov,
	}
}

// Current returns the last resolved content.
func (r *Resolver) Current() Content {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.content
}

// Activate resolves the view for route and installs it as the current
// content. The requested route becomes current even when rendering
// fails, so the address bar and active-nav indication stay consistent;
// rendering failures are surfaced through the overlay alert, never
// returned as a hard error.
func (r *Resolver) Activate(ctx context.Context, route routes.Route) {
	if !routes.Known(route) {
		route = routes.Dashboard
	}

	r.mu.Lock()
	r.gen++
	myGen := r.gen
	// Route state commits before rendering: a failed render must not
	// leave the nav pointing at the previous view.
	r.content.Route = route
	r.content.Title = routes.Title(route)
	r.mu.Unlock()

	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("views: panic while switching to %s: %v", route, rec)
			r.overlay.Alert(ctx, "An error occurred while switching views. Please refresh the page.", "Navigation Error")
		}
	}()

	html, source := r.resolveMarkup(ctx, route)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.gen != myGen {
		// A newer navigation happened while this one was in flight;
		// its content must not overwrite the newer view.
		log.Printf("views: discarding stale %s render", route)
		return
	}
	r.content.HTML = html
	r.content.Source = source
	r.content.Greeting = r.greeting(ctx)
	if stats, err := r.provider.Stats(ctx); err == nil {
		r.content.Stats = stats
	}
	r.content.LastRefreshed = time.Now()
}

// resolveMarkup tries the remote fragment, then the local builder.
func (r *Resolver) resolveMarkup(ctx context.Context, route routes.Route) (html, source string) {
	desc := routes.Table[route]

	if r.fragments != nil && desc.Strategy == routes.RemoteThenLocal {
		fragment, err := r.fragments.Fetch(ctx, route)
		if err == nil {
			return r.afterFragment(ctx, route, fragment), "remote"
		}
		log.Printf("views: fragment for %s unavailable, using local builder: %v", route, err)
	}

	built, err := r.build(ctx, route)
	if err != nil {
		log.Printf("views: local builder for %s: %v", route, err)
		r.overlay.Alert(ctx, "An error occurred while switching views. Please refresh the page.", "Navigation Error")
		return "", "local"
	}
	return built, "local"
}

// afterFragment runs the route-specific secondary renderer over a
// remotely fetched fragment. Only the dashboard needs one: its
// fragment ships an empty shipments container that gets a local
// shipments-list pass.
func (r *Resolver) afterFragment(ctx context.Context, route routes.Route, fragment string) string {
	if route != routes.Dashboard {
		return fragment
	}

	cards, err := r.shipmentCards(ctx)
	if err != nil {
		log.Printf("views: shipments pass: %v", err)
		return fragment
	}

	const marker = `id="shipmentsContainer">`
	if idx := strings.Index(fragment, marker); idx >= 0 {
		at := idx + len(marker)
		return fragment[:at] + cards + fragment[at:]
	}
	return fragment + fmt.Sprintf(`<div id="shipmentsContainer">%s</div>`, cards)
}

func (r *Resolver) greeting(ctx context.Context) string {
	if sess := r.sessions.Check(ctx); sess != nil && sess.Vendor.Name != "" {
		return "Welcome back, " + sess.Vendor.Name
	}
	return "Welcome to QOOA Control Tower"
}
