// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/olegiv/folio-go/internal/ai"
	"github.com/olegiv/folio-go/internal/cache"
	"github.com/olegiv/folio-go/internal/cdn"
	"github.com/olegiv/folio-go/internal/config"
	"github.com/olegiv/folio-go/internal/geoip"
	"github.com/olegiv/folio-go/internal/handler"
	"github.com/olegiv/folio-go/internal/live"
	"github.com/olegiv/folio-go/internal/mailer"
	"github.com/olegiv/folio-go/internal/middleware"
	"github.com/olegiv/folio-go/internal/scheduler"
	"github.com/olegiv/folio-go/internal/store"
	"github.com/olegiv/folio-go/internal/version"
	"github.com/olegiv/folio-go/internal/visitor"
)

// shutdownTimeout bounds graceful shutdown of in-flight requests.
const shutdownTimeout = 30 * time.Second

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "folio - Portfolio API service\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_DB_PATH              SQLite database path (default: ./data/folio.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_SERVER_PORT          Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_ENV                  Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_ALLOWED_ORIGINS      CORS origin allowlist, comma separated\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_ADMIN_TOKEN          Bearer token for admin endpoints\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_GEMINI_API_KEY       Gemini API key for AI features (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_SMTP_USER/PASS       SMTP credentials for contact notifications (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_CLOUDINARY_*         Cloudinary credentials for the upload proxy (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_REDIS_URL            Redis URL for distributed caching (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_GEOIP_DB_PATH        GeoLite2-Country.mmdb path (optional)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}
	if *showVersion {
		info := version.Get()
		_, _ = fmt.Printf("folio %s (commit: %s, built: %s)\n", info.Version, info.GitCommit, info.BuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Setup logger
	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Ensure data directory exists
	dbDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	// Initialize database
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

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := store.Seed(ctx, db, cfg.DoSeed); err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}

	// GeoIP lookup (optional)
	geo, err := geoip.NewLookup(cfg.GeoIPDBPath)
	if err != nil {
		slog.Warn("geoip database unavailable, country enrichment disabled", "error", err)
	} else if geo.IsEnabled() {
		slog.Info("geoip enabled", "path", cfg.GeoIPDBPath)
	}
	defer func() { _ = geo.Close() }()

	// Stats cache: Redis when configured, in-memory otherwise
	statsTTL := time.Duration(cfg.StatsTTL) * time.Second
	var statsCache cache.Cache
	if cfg.UseRedisCache() {
		statsCache, err = cache.NewRedisCache(cfg.RedisURL, cfg.CachePrefix, statsTTL)
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		slog.Info("redis cache enabled")
	} else {
		statsCache = cache.NewMemoryCache(statsTTL)
		slog.Info("in-memory cache enabled")
	}
	defer func() { _ = statsCache.Close() }()

	// Services
	visitors := visitor.NewService(store.New(db), geo, statsCache, statsTTL)
	mail := mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailRecipient())
	aiClient := ai.NewClient(cfg.GeminiAPIKey, cfg.GeminiBaseURL)
	cdnClient := cdn.NewClient(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)

	slog.Info("feature status",
		"mail", mail.Configured(),
		"ai", aiClient.Configured(),
		"uploads", cdnClient.Configured(),
		"admin", cfg.AdminToken != "",
	)

	// Websocket hub
	hub := live.NewHub(logger)
	go hub.Run(ctx)

	h := handler.New(db, visitors, hub, mail, aiClient, cdnClient)

	// Maintenance jobs
	sched := scheduler.New(cfg.BaseURL, geo, logger)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	router := buildRouter(cfg, h)

	server := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", server.Addr, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-stop:
		slog.Info("shutting down", "signal", sig)
	}

	// Stop accepting websocket broadcasts and close clients
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

// buildRouter wires middleware and routes.
func buildRouter(cfg *config.Config, h *handler.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.SecurityHeaders(cfg.IsDevelopment()))
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit, time.Duration(cfg.RateWindow)*time.Second)
	adminOnly := middleware.AdminAuth(cfg.AdminToken)

	r.Route("/api", func(api chi.Router) {
		api.Use(chimw.Compress(5))
		api.Use(chimw.Timeout(30 * time.Second))
		api.Use(rateLimiter.Middleware())

		api.Get("/health", h.Health)

		api.Post("/visitor/track", h.TrackVisitor)
		api.Get("/stats", h.Stats)
		api.Get("/stats/last7days", h.StatsLast7Days)

		api.Post("/contact", h.SubmitContact)
		api.Group(func(admin chi.Router) {
			admin.Use(adminOnly)
			admin.Get("/contacts", h.ListContacts)
			admin.Get("/contacts/{id}", h.GetContact)
			admin.Patch("/contacts/{id}", h.UpdateContactStatus)

			admin.Post("/upload/image", h.UploadImage)
			admin.Post("/upload/images", h.UploadImages)
			admin.Delete("/upload/image/*", h.DeleteImage)

			admin.Get("/email/test-config", h.MailConfig)
			admin.Post("/email/test", h.SendTestMail)
		})

		api.Get("/projects", h.ListProjects)
		api.Get("/blog", h.ListPosts)
		api.Get("/blog/{slug}", h.GetPost)

		api.Post("/ai/chat", h.AIChat)
		api.Post("/ai/analyze-resume", h.AIAnalyzeResume)
		api.Post("/ai/summarize-blog", h.AISummarizeBlog)
		api.Post("/ai/recommendations", h.AIRecommendations)
		api.Get("/ai/health", h.AIHealth)
	})

	// Websocket endpoint sits outside /api: no compression, no timeout
	r.Get("/ws", h.ServeWS(cfg.AllowedOrigins))

	return r
}
