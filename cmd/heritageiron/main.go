// Copyright (c) 2026 Heritage Iron Restorations LLC <shop@heritageiron.example>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the Heritage Iron site server.
// It loads configuration, connects to PostgreSQL, Valkey, and object
// storage, wires the handler groups, and runs the HTTP server with
// graceful shutdown.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"heritageiron/internal/ai"
	"heritageiron/internal/bloggen"
	"heritageiron/internal/cache"
	"heritageiron/internal/config"
	"heritageiron/internal/database"
	"heritageiron/internal/handlers"
	"heritageiron/internal/router"
	"heritageiron/internal/session"
	"heritageiron/internal/storage"
	"heritageiron/internal/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded", "env", cfg.Env, "addr", cfg.Addr())

	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if users already exist).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyAddr(), cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	// Session cookies are HTTPS-only outside development.
	secureCookies := !cfg.IsDev()
	sessionStore := session.NewStore(valkeyClient, secureCookies)
	responseCache := cache.NewResponseCache(valkeyClient, cache.DefaultResponseTTL)

	userStore := store.NewUserStore(db)
	postStore := store.NewPostStore(db)
	projectStore := store.NewProjectStore(db)
	contactStore := store.NewContactStore(db)
	settingsStore := store.NewSiteSettingsStore(db)

	// Object storage is optional; media uploads return 503 without it.
	storageClient, err := storage.New(
		cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
		cfg.S3Bucket, cfg.S3PublicURL,
	)
	if err != nil {
		slog.Error("failed to initialize object storage", "error", err)
		os.Exit(1)
	}
	if storageClient == nil {
		slog.Warn("object storage not configured, media uploads disabled")
	} else {
		slog.Info("object storage connected", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
	}

	aiClient := ai.NewClient(ai.Config{
		APIKey: cfg.AnthropicAPIKey,
		Model:  cfg.AIModel,
	})
	if !aiClient.Configured() {
		slog.Warn("ANTHROPIC_API_KEY not set, blog draft generation disabled")
	}
	generator := bloggen.NewGenerator(aiClient, postStore)

	if cfg.AIBatchToken == "" {
		slog.Warn("AI_BATCH_TOKEN not set, scheduled draft trigger disabled")
	}

	r := router.New(sessionStore, cfg.AIBatchToken, router.Handlers{
		Public: handlers.NewPublic(postStore, projectStore, contactStore, responseCache),
		Auth:   handlers.NewAuth(sessionStore, userStore),
		Admin:  handlers.NewAdmin(postStore, projectStore, contactStore, userStore, settingsStore, responseCache),
		AI:     handlers.NewAdminAI(generator, userStore),
		Media:  handlers.NewMedia(storageClient),
	})

	// WriteTimeout accommodates the AI generation endpoints, which wait
	// on the model for most of a minute on long articles.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 150 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
