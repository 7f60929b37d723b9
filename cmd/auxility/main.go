// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"

	"github.com/auxility/site/internal/cache"
	"github.com/auxility/site/internal/config"
	"github.com/auxility/site/internal/contact"
	"github.com/auxility/site/internal/content"
	"github.com/auxility/site/internal/copytext"
	"github.com/auxility/site/internal/diagnostics"
	"github.com/auxility/site/internal/handler"
	"github.com/auxility/site/internal/logging"
	"github.com/auxility/site/internal/middleware"
	"github.com/auxility/site/internal/scheduler"
	"github.com/auxility/site/internal/sections"
	"github.com/auxility/site/internal/store"
	"github.com/auxility/site/internal/version"
)

const (
	contactRetrySchedule = "@every 1m"
	eventsPruneSchedule  = "@daily"
	eventsRetention      = 30 * 24 * time.Hour
	shutdownTimeout      = 30 * time.Second
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")
	check := flag.Bool("check", false, "Probe every content collection and exit")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "Auxility site API\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AUXILITY_CONTENT_URL        Spreadsheet content endpoint (empty: defaults + demo contact)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AUXILITY_DB_PATH            SQLite database path (default: ./data/auxility.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AUXILITY_SERVER_PORT        Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AUXILITY_ENV                development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AUXILITY_REDIS_URL          Redis URL for a shared collection cache (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AUXILITY_REFRESH_SCHEDULE   Cron expression for content refresh (default: */5 * * * *)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AUXILITY_SITE_URL           Public landing page URL for sitemap.xml (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AUXILITY_TRUST_PROXY        Take client IPs from X-Forwarded-For (default: false)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AUXILITY_ALLOWED_ORIGINS    Comma-separated CORS origins\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		_, _ = fmt.Println(version.Current().String())
		os.Exit(0)
	}

	var err error
	if *check {
		err = runCheck(os.Stdout)
	} else {
		err = run()
	}
	if err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, slog.Level, error) {
	// .env is optional (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, 0, fmt.Errorf("loading config: %w", err)
	}

	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}
	return cfg, logLevel, nil
}

func newContentClient(cfg *config.Config, logger *slog.Logger) *content.Client {
	return content.NewClient(content.ClientOptions{
		BaseURL: cfg.ContentURL,
		Timeout: cfg.FetchTimeoutDuration(),
		Logger:  logger,
	})
}

// runCheck probes the content endpoint and prints one line per collection.
func runCheck(out io.Writer) error {
	cfg, logLevel, err := loadConfig()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	report := diagnostics.Check(ctx, newContentClient(cfg, logger), diagnostics.DefaultProbes())
	if !report.Configured {
		_, _ = fmt.Fprintln(out, "content endpoint not configured (AUXILITY_CONTENT_URL); the site serves compiled-in defaults")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "COLLECTION\tSTATUS\tROWS\tDURATION\tMESSAGE")
	for _, res := range report.Results {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", res.Collection, res.Status, res.Rows, res.Duration.Round(time.Millisecond), res.Message)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if !report.OK() {
		return fmt.Errorf("%d of %d collections failed", report.Count(diagnostics.StatusError), len(report.Results))
	}
	return nil
}

func run() error {
	cfg, logLevel, err := loadConfig()
	if err != nil {
		return err
	}
	info := version.Current()

	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger := slog.New(textHandler)
	slog.SetDefault(logger)

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	// WARN and ERROR records also go to the event log.
	logger = slog.New(logging.NewEventLogHandler(textHandler, db))
	slog.SetDefault(logger)
	slog.Info("event log integration enabled", "min_level", "warn")

	ctx := context.Background()

	collectionCache := cache.New(ctx, cache.Config{
		RedisURL:   cfg.RedisURL,
		Prefix:     cfg.CachePrefix,
		DefaultTTL: cfg.CacheTTLDuration(),
		MaxEntries: cfg.CacheMaxSize,
	}, logger)
	defer func() { _ = collectionCache.Close() }()

	client := newContentClient(cfg, logger)
	if !client.Configured() {
		slog.Warn("content endpoint not configured, serving compiled-in defaults and running contact form in demo mode")
	}
	cached := content.NewCachedSource(client, collectionCache, cfg.CacheTTLDuration())

	site := sections.NewSite(cached, copytext.MustLoadDefaults(), logger)
	defer site.Close()

	contactService := contact.NewService(db, client, cfg.ContactCollection, logger)

	sched := scheduler.New(logger)
	jobs := []scheduler.Job{
		scheduler.ContactRetryJob(contactRetrySchedule, contactService),
		scheduler.EventsPruneJob(eventsPruneSchedule, store.New(db), eventsRetention),
	}
	if cfg.RefreshSchedule != "" {
		jobs = append(jobs, scheduler.ContentRefreshJob(cfg.RefreshSchedule, site, cached))
	}
	for _, job := range jobs {
		if err := sched.Add(job); err != nil {
			return fmt.Errorf("scheduling %s: %w", job.Name, err)
		}
	}
	sched.Start()
	defer sched.Stop()

	router := handler.NewRouter(handler.RouterConfig{
		Health:         handler.NewHealthHandler(db, collectionCache, site, info),
		Site:           handler.NewSiteHandler(site, logger),
		Contact:        handler.NewContactHandler(contactService, site.Copy(), logger),
		Diagnostics:    handler.NewDiagnosticsHandler(client, sched, store.New(db), logger).WithOutbox(contactService),
		SEO:            handler.NewSEOHandler(cfg.SiteURL, cfg.IsDevelopment(), logger),
		IsDevelopment:  cfg.IsDevelopment(),
		AllowedOrigins: cfg.AllowedOrigins,
		RequestTimeout: cfg.RequestTimeoutDuration(),
		ContactLimiter: middleware.NewRateLimiter(cfg.ContactRate, cfg.ContactBurst),
		RequestLogger:  cfg.IsDevelopment(),
		TrustProxy:     cfg.TrustProxy,
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.RequestTimeoutDuration() + 10*time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "version", info.Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
