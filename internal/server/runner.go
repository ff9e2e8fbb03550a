// Package server runs the long-lived daemon components: the HTTP API
// and the scheduled scan trigger.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"github.com/vmunix/scanarr/internal/scanner"
)

// Config for the runner.
type Config struct {
	Addr string
	// Schedule is a cron expression for automatic scans; empty disables them.
	Schedule string
}

// Runner manages the daemon components.
type Runner struct {
	handler http.Handler
	scanner *scanner.Scanner
	config  Config
	logger  *slog.Logger
}

// NewRunner creates a new runner.
func NewRunner(handler http.Handler, sc *scanner.Scanner, cfg Config, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		handler: handler,
		scanner: sc,
		config:  cfg,
		logger:  logger,
	}
}

// Run starts all components. It blocks until the context is canceled or a
// component fails.
func (r *Runner) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	// Validate the schedule before any component starts.
	var c *cron.Cron
	if r.config.Schedule != "" {
		c = cron.New()
		_, err := c.AddFunc(r.config.Schedule, func() {
			if err := r.scanner.Start(ctx); err != nil {
				if errors.Is(err, scanner.ErrScanInProgress) {
					r.logger.Warn("scheduled scan skipped, previous scan still running")
					return
				}
				r.logger.Error("scheduled scan failed to start", "error", err)
			}
		})
		if err != nil {
			return err
		}
	}

	srv := &http.Server{
		Addr:    r.config.Addr,
		Handler: r.handler,
	}

	g.Go(func() error {
		r.logger.Info("http server listening", "addr", r.config.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if c != nil {
		c.Start()
		r.logger.Info("scheduled scans enabled", "schedule", r.config.Schedule)

		g.Go(func() error {
			<-ctx.Done()
			<-c.Stop().Done()
			return nil
		})
	}

	return g.Wait()
}
