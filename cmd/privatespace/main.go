// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the PrivateSpace server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"privatespace/internal/auth"
	"privatespace/internal/cache"
	"privatespace/internal/config"
	"privatespace/internal/database"
	"privatespace/internal/handlers"
	"privatespace/internal/middleware"
	"privatespace/internal/preview"
	"privatespace/internal/render"
	"privatespace/internal/router"
	"privatespace/internal/session"
	"privatespace/internal/storage"
	"privatespace/internal/store"
	"privatespace/web"
)

func main() {
	// Load configuration from the environment (and .env when present).
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Structured logger: text in development, JSON elsewhere.
	var logHandler slog.Handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	if cfg.IsDev() {
		logHandler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	slog.SetDefault(slog.New(logHandler))

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"s3", cfg.UseS3(),
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey (sessions and the public page cache).
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	secureCookies := !cfg.IsDev()
	sessionStore := session.NewStore(valkeyClient, secureCookies)
	pageCache := cache.NewPageCache(valkeyClient, cache.DefaultPageTTL)

	// Pages cached by a previous build may not match the current templates.
	pageCache.InvalidateAll(context.Background())

	renderer, err := render.New()
	if err != nil {
		slog.Error("failed to initialize template renderer", "error", err)
		os.Exit(1)
	}

	// Media storage: S3-compatible when configured, local disk otherwise.
	var media storage.Backend
	var uploadDir string
	var mediaOrigins []string
	if cfg.UseS3() {
		s3, err := storage.NewS3(cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3PublicURL)
		if err != nil {
			slog.Error("failed to initialize S3 storage", "error", err)
			os.Exit(1)
		}
		media = s3
		mediaOrigins = append(mediaOrigins, cfg.S3PublicURL, cfg.S3Endpoint)
		slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
	} else {
		local, err := storage.NewLocal(cfg.UploadDir)
		if err != nil {
			slog.Error("failed to initialize local storage", "error", err)
			os.Exit(1)
		}
		media = local
		uploadDir = local.Root()
		slog.Info("local media storage", "dir", uploadDir)
	}

	previews, err := preview.NewRegistry(cfg.PreviewDir, cfg.PreviewTTL)
	if err != nil {
		slog.Error("failed to initialize preview staging", "error", err)
		os.Exit(1)
	}
	defer previews.Stop()

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	services := &handlers.Services{
		Users:      store.NewUserStore(db),
		Journal:    store.NewJournalStore(db),
		Blog:       store.NewBlogStore(db),
		Album:      store.NewAlbumStore(db),
		Sections:   store.NewSectionStore(db),
		Dashboard:  store.NewDashboardStore(db),
		Sessions:   sessionStore,
		JWT:        jwtManager,
		Media:      media,
		Pages:      pageCache,
		AlbumQuota: cfg.AlbumQuotaBytes,
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	loginLimiter := middleware.NewRateLimiter(10, time.Minute)
	defer loginLimiter.Stop()

	r := router.New(router.Handlers{
		API:    handlers.NewAPI(services),
		Auth:   handlers.NewAuth(services, renderer),
		Space:  handlers.NewSpace(services, renderer, previews),
		Public: handlers.NewPublic(services, renderer),
	}, router.Options{
		Authenticator: middleware.NewAuthenticator(jwtManager, sessionStore),
		Metrics:       middleware.NewMetrics(reg),
		LoginLimiter:  loginLimiter,
		SecureCookies: secureCookies,
		MediaOrigins:  mediaOrigins,
		UploadDir:     uploadDir,
		Static:        web.Static(),
	})

	// Uploads of up to 50 MB need a generous read timeout.
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       2 * time.Minute,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
