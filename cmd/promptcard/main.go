// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the PromptCard core service. It
// loads configuration, opens the card store in the data directory, and
// serves the JSON API and change events to the local presentation layer
// with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"promptcard/internal/config"
	"promptcard/internal/desktop"
	"promptcard/internal/events"
	"promptcard/internal/handlers"
	"promptcard/internal/imaging"
	"promptcard/internal/persist"
	"promptcard/internal/presets"
	"promptcard/internal/router"
	"promptcard/internal/store"
)

func main() {
	// Load configuration from .env and environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Structured logger: JSON in production, text in development.
	opts := &slog.HandlerOptions{Level: cfg.LogLevel()}
	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, opts)
	if cfg.IsDev() {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"data_dir", cfg.DataDir,
	)

	// Model and platform presets, optionally overridden from a file.
	catalogue := presets.Default()
	if cfg.PresetsFile != "" {
		catalogue, err = presets.Load(cfg.PresetsFile)
		if err != nil {
			slog.Error("failed to load presets", "error", err, "path", cfg.PresetsFile)
			os.Exit(1)
		}
		slog.Info("presets loaded", "path", cfg.PresetsFile,
			"models", len(catalogue.Models),
			"platforms", len(catalogue.Platforms),
		)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Change events for the presentation layer.
	hub := events.NewHub()
	go hub.Run(ctx)

	// Card store backed by cards.json in the data directory.
	gateway := persist.New(cfg.DataDir)
	st, err := store.Open(gateway,
		store.WithNotifier(hub),
		store.WithPresets(catalogue),
	)
	if err != nil {
		slog.Error("failed to open data document", "error", err, "path", gateway.Path())
		os.Exit(1)
	}

	// Native collaborators are provided by the desktop shell; a standalone
	// process runs headless.
	images := imaging.NewImporter(cfg.DataDir)
	svc := desktop.NewService(desktop.Deps{Store: st, Images: images})

	api := handlers.NewAPI(st, svc, images)
	r := router.New(api, hub)

	// Create the HTTP server with sensible timeouts. Websocket connections
	// manage their own deadlines after the upgrade.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
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

	// Stop the event hub; Shutdown does not track hijacked websocket
	// connections.
	stop()

	// Give active requests up to 10 seconds to complete.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
