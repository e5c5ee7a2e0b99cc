package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Hitargot/Qooa-Frontend/internal/alerts"
	"github.com/Hitargot/Qooa-Frontend/internal/config"
	"github.com/Hitargot/Qooa-Frontend/internal/credentials"
	"github.com/Hitargot/Qooa-Frontend/internal/db"
	"github.com/Hitargot/Qooa-Frontend/internal/kv"
	"github.com/Hitargot/Qooa-Frontend/internal/overlay"
	"github.com/Hitargot/Qooa-Frontend/internal/provider"
	"github.com/Hitargot/Qooa-Frontend/internal/server"
	"github.com/Hitargot/Qooa-Frontend/internal/session"
	"github.com/Hitargot/Qooa-Frontend/internal/settings"
	"github.com/Hitargot/Qooa-Frontend/internal/share"
	"github.com/Hitargot/Qooa-Frontend/internal/views"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the control tower dashboard server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if servePort != 0 {
			cfg.Port = servePort
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}
		dbPath := filepath.Join(cfg.DataDir, "qooa.db")
		database, err := db.Open(dbPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		backing := kv.NewSQLite(database)
		prefs := settings.NewStore(backing)
		sessions := session.NewStore(backing)
		ov := overlay.NewManager(prefs)
		toasts := &overlay.QueueNotifier{}
		data := provider.NewMemory(database)

		var fragments views.FragmentSource
		if cfg.AssetBaseURL != "" {
			fragments = views.NewHTTPFragments(cfg.AssetBaseURL, &http.Client{Timeout: 10 * time.Second})
		}
		resolver := views.NewResolver(fragments, data, sessions, prefs, ov)

		creds := credentials.NewController(ov, sessions, credentials.NewClient(cfg.BackendURL, nil), toasts)

		sharer := share.NewController(data, toasts, fmt.Sprintf("http://localhost:%d", cfg.Port))

		alertStore := alerts.NewStore(database)
		dispatcher := alerts.NewDispatcher(alertStore, prefs, nil)

		srv := server.New(server.Options{
			Port:     cfg.Port,
			AllowAll: cfg.AllowAll,
		}, server.Deps{
			DB:          database,
			Provider:    data,
			Settings:    prefs,
			Sessions:    sessions,
			Overlay:     ov,
			Resolver:    resolver,
			Credentials: creds,
			Share:       sharer,
			Alerts:      alertStore,
			Dispatcher:  dispatcher,
			Toasts:      toasts,
		})

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			srv.Shutdown(context.Background())
		}()

		fmt.Fprintf(os.Stderr, "qooa v%s starting on port %d\n", Version, cfg.Port)
		fmt.Fprintf(os.Stderr, "  Database: %s\n", dbPath)
		fmt.Fprintf(os.Stderr, "  Backend: %s\n", cfg.BackendURL)
		if cfg.AssetBaseURL != "" {
			fmt.Fprintf(os.Stderr, "  Fragments: %s\n", cfg.AssetBaseURL)
		}

		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "override the configured listen port")
	rootCmd.AddCommand(serveCmd)
}
