// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// PromptCard API. Everything is served to loopback clients only.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"promptcard/internal/handlers"
	"promptcard/internal/middleware"
)

// New creates and returns the configured Chi router. events may be nil,
// in which case /ws is not mounted.
func New(api *handlers.API, events http.Handler) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.LocalOnly)

	// Health check, no security headers needed.
	r.Get("/health", healthHandler)

	if events != nil {
		r.Handle("/ws", events)
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.SecureHeaders)

		// Cards
		r.Route("/cards", func(r chi.Router) {
			r.Get("/", api.CardsList)
			r.Post("/", api.CardCreate)
			r.Get("/{id}", api.CardGet)
			r.Get("/{id}/preview", api.CardPreview)
			r.Patch("/{id}", api.CardUpdate)
			r.Delete("/{id}", api.CardDelete)
			r.Post("/{id}/favorite", api.CardToggleFavorite)
			r.Post("/{id}/images", api.CardImagesUpload)
			r.Delete("/{id}/images", api.CardImageRemove)
			r.Put("/{id}/cover", api.CardSetCover)

			// Native-window actions
			r.Post("/{id}/capture", api.DesktopCapture)
			r.Post("/{id}/images/import", api.DesktopImportImages)
			r.Post("/{id}/images/save", api.DesktopSaveImage)
		})

		// Folders
		r.Route("/folders", func(r chi.Router) {
			r.Get("/", api.FoldersList)
			r.Post("/", api.FolderCreate)
			r.Get("/tree", api.FoldersTree)
			r.Get("/{id}", api.FolderGet)
			r.Patch("/{id}", api.FolderUpdate)
			r.Put("/{id}/parent", api.FolderMove)
			r.Delete("/{id}", api.FolderDelete)
		})

		// Tags
		r.Route("/tags", func(r chi.Router) {
			r.Get("/", api.TagsList)
			r.Get("/custom", api.TagsCustom)
			r.Get("/platforms", api.TagsPlatforms)
			r.Post("/{kind}", api.TagAdd)
			r.Delete("/{kind}", api.TagRemove)
		})

		// Settings and whole-store operations
		r.Get("/settings", api.SettingsGet)
		r.Patch("/settings", api.SettingsUpdate)
		r.Get("/stats", api.Stats)
		r.Get("/snapshot", api.SnapshotExport)
		r.Put("/snapshot", api.SnapshotImport)
		r.Delete("/store", api.StoreClear)

		r.Route("/desktop", func(r chi.Router) {
			r.Post("/screenshot-dir", api.DesktopScreenshotDir)
			r.Post("/backup/export", api.DesktopExportBackup)
			r.Post("/backup/import", api.DesktopImportBackup)
			r.Post("/open-url", api.DesktopOpenURL)
			r.Post("/reveal-data", api.DesktopRevealData)
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
