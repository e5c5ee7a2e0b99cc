// Package server wires every dashboard feature behind one chi router.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Hitargot/Qooa-Frontend/internal/alerts"
	"github.com/Hitargot/Qooa-Frontend/internal/credentials"
	"github.com/Hitargot/Qooa-Frontend/internal/db"
	"github.com/Hitargot/Qooa-Frontend/internal/overlay"
	"github.com/Hitargot/Qooa-Frontend/internal/provider"
	"github.com/Hitargot/Qooa-Frontend/internal/session"
	"github.com/Hitargot/Qooa-Frontend/internal/settings"
	"github.com/Hitargot/Qooa-Frontend/internal/share"
	"github.com/Hitargot/Qooa-Frontend/internal/views"
)

// Options holds server configuration.
type Options struct {
	Port     int
	AllowAll bool // allow all CORS origins (dev mode)
}

// Deps bundles the feature components the server routes over.
type Deps struct {
	DB          *db.DB
	Provider    provider.Provider
	Settings    *settings.Store
	Sessions    *session.Store
	Overlay     *overlay.Manager
	Resolver    *views.Resolver
	Credentials *credentials.Controller
	Share       *share.Controller
	Alerts      *alerts.Store
	Dispatcher  *alerts.Dispatcher
	Toasts      *overlay.QueueNotifier
}

// Server is the control tower HTTP front end.
type Server struct {
	opts       Options
	deps       Deps
	router     chi.Router
	httpServer *http.Server
}

// New creates a server with all dependencies wired.
func New(opts Options, deps Deps) *Server {
	s := &Server{opts: opts, deps: deps}
	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.opts.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Pages
	r.Get("/static/dashboard.css", handleStylesheet)
	r.Get("/", s.handlePage)
	r.Get("/dashboard", s.handlePage)
	r.Get("/dashboard/{view}", s.handlePage)

	// API
	r.Get("/api/dashboard/stats", s.handleStats)
	r.Get("/api/shipments", s.handleShipments)
	r.Get("/api/shipments/{id}", s.handleShipment)
	r.Get("/api/telemetry/{id}", s.handleTelemetry)
	r.Post("/api/telemetry/{id}", s.handleIngestTelemetry)
	r.Post("/api/telemetry/{id}/share", s.handleShare)
	r.Post("/api/orders", s.handleCreateOrder)

	r.Get("/api/settings", s.handleGetSettings)
	r.Put("/api/settings", s.handlePutSettings)
	r.Post("/api/settings/reset", s.handleResetSettings)

	r.Post("/api/password/change-form", s.handlePasswordForm)
	r.Post("/api/password/submit", s.handlePasswordSubmit)

	alerts.RegisterRoutes(r, s.deps.Alerts, s.deps.Dispatcher)

	// Live telemetry feed
	r.Get("/ws/telemetry", s.handleTelemetrySocket)

	return r
}

// Router returns the chi router, mainly for tests.
func (s *Server) Router() chi.Router { return s.router }

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.opts.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("server: control tower listening on %s", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
