package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"github.com/vmunix/scanarr/internal/api"
	"github.com/vmunix/scanarr/internal/catalog"
	"github.com/vmunix/scanarr/internal/config"
	"github.com/vmunix/scanarr/internal/conflict"
	"github.com/vmunix/scanarr/internal/events"
	"github.com/vmunix/scanarr/internal/migrations"
	"github.com/vmunix/scanarr/internal/scanner"
	"github.com/vmunix/scanarr/internal/server"
	"github.com/vmunix/scanarr/internal/tmdb"
)

func parseLogLevel(s string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// loggingWriter captures the first status code written; handlers that
// never call WriteHeader leave it at zero, logged as 200.
type loggingWriter struct {
	http.ResponseWriter
	code int
}

func (w *loggingWriter) WriteHeader(code int) {
	if w.code == 0 {
		w.code = code
	}
	w.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler, log *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lw := &loggingWriter{ResponseWriter: w}
		start := time.Now()
		next.ServeHTTP(lw, r)
		if lw.code == 0 {
			lw.code = http.StatusOK
		}
		log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", lw.code,
			"remote", r.RemoteAddr,
			"elapsed", time.Since(start).Round(time.Millisecond))
	})
}

func runServer(configPath string) error {
	// Load config
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return fmt.Errorf("config: %s", strings.Join(errs, "; "))
	}

	// Create logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Server.LogLevel),
	}))

	// Ensure database directory exists
	dbDir := filepath.Dir(cfg.Database.Path)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}

	// One daemon per database. A second instance would race the scanner's
	// in-process scan lock.
	lock := flock.New(cfg.Database.Path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another scanarrd instance is using %s", cfg.Database.Path)
	}
	defer func() { _ = lock.Unlock() }()

	// Open database
	db, err := sql.Open("sqlite", cfg.Database.Path+"?_foreign_keys=on")
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer func() { _ = db.Close() }()

	// Run migrations
	if _, err := db.Exec(migrations.InitialSQL); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	// === Stores ===
	catalogStore := catalog.NewStore(db)
	conflictStore := conflict.NewStore(db)

	// === Clients and services ===
	tmdbClient := tmdb.NewClient(cfg.TMDB.APIKey, tmdb.WithLanguage(cfg.TMDB.Language))

	bus := events.NewBus(logger.With("component", "bus"))
	defer bus.Close()

	// Mirror bus traffic into the debug log.
	eventSub := bus.Subscribe(64)
	go func() {
		eventLog := logger.With("component", "events")
		for e := range eventSub.C() {
			eventLog.Debug("event",
				"type", e.EventType(),
				"entity_type", e.EntityType(),
				"entity_id", e.EntityID())
		}
	}()

	sc := scanner.New(catalogStore, conflictStore, tmdbClient, bus, scanner.Config{
		Extensions: cfg.Scanner.Extensions,
	}, logger.With("component", "scanner"))

	// === HTTP Setup ===
	mux := http.NewServeMux()
	api.New(catalogStore, conflictStore, sc, version).RegisterRoutes(mux)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("server starting",
		"addr", addr,
		"database", cfg.Database.Path,
		"schedule", cfg.Scanner.Schedule,
		"log_level", cfg.Server.LogLevel,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner := server.NewRunner(logRequests(mux, logger), sc, server.Config{
		Addr:     addr,
		Schedule: cfg.Scanner.Schedule,
	}, logger)

	if err := runner.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}

	logger.Info("server stopped")
	return nil
}
