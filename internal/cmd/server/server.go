// Package server wires configuration, storage, sessions, and the HTTP
// transport into the runnable inventory service.
package server

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	platformotel "github.com/louisbranch/unclutter.space/internal/platform/otel"
	"github.com/louisbranch/unclutter.space/internal/service"
	"github.com/louisbranch/unclutter.space/internal/session"
	"github.com/louisbranch/unclutter.space/internal/storage/sqlite"
	"github.com/louisbranch/unclutter.space/internal/web"
)

const (
	defaultHTTPAddr = "localhost:8080"
	defaultDBPath   = "unclutter.db"

	// reapInterval is how often expired temp users are swept.
	reapInterval = 6 * time.Hour

	shutdownTimeout = 10 * time.Second
)

// Config holds the server command configuration.
type Config struct {
	HTTPAddr string
	DBPath   string
}

// EnvLookup returns the value for a key when present.
type EnvLookup func(string) (string, bool)

// ParseConfig parses flags into a Config, with env fallbacks.
func ParseConfig(fs *flag.FlagSet, args []string, lookup EnvLookup) (Config, error) {
	cfg := Config{
		HTTPAddr: envOrDefault(lookup, "UNCLUTTER_HTTP_ADDR", defaultHTTPAddr),
		DBPath:   envOrDefault(lookup, "UNCLUTTER_DB_PATH", defaultDBPath),
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database path")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Run starts the inventory server and blocks until ctx is cancelled.
func Run(ctx context.Context, cfg Config) error {
	shutdownTracing, err := platformotel.Setup(ctx, "unclutter.space")
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Printf("otel shutdown: %v", err)
		}
	}()

	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("close store: %v", err)
		}
	}()

	sessionCfg, err := session.LoadConfigFromEnv(nil)
	if err != nil {
		return fmt.Errorf("load session config: %w", err)
	}
	sessions, err := session.NewService(sessionCfg)
	if err != nil {
		return fmt.Errorf("init session service: %w", err)
	}

	serviceCfg, err := service.LoadConfigFromEnv()
	if err != nil {
		return fmt.Errorf("load service config: %w", err)
	}
	svc := service.New(store, serviceCfg)

	go reapLoop(ctx, svc)

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: web.New(svc, sessions).Routes(),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("server listening at %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// reapLoop sweeps expired temp users on an interval. A failed sweep is
// logged and retried next tick; it never takes the server down.
func reapLoop(ctx context.Context, svc *service.Service) {
	ticker := time.NewTicker(reapInterval)
	defer ticker.Stop()

	for {
		removed, err := svc.ReapExpiredUsers(ctx)
		if err != nil {
			log.Printf("reap expired users: %v", err)
		} else if removed > 0 {
			log.Printf("reaped %d expired users", removed)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func envOrDefault(lookup EnvLookup, key, fallback string) string {
	if lookup == nil {
		return fallback
	}
	value, ok := lookup(key)
	if !ok {
		return fallback
	}
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	return trimmed
}
