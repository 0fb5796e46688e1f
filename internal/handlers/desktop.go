// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"promptcard/internal/desktop"
	"promptcard/internal/store"
)

// Handlers in this file drive native dialogs, screen capture and the OS
// shell through desktop.Service. In a headless process they answer 503.

// pathResult reports a file picked or written by a desktop action.
// Cancelled is true when the user dismissed the dialog.
type pathResult struct {
	Path      string `json:"path,omitempty"`
	Cancelled bool   `json:"cancelled"`
}

func (a *API) desktopReady(w http.ResponseWriter) bool {
	if a.desktop == nil {
		writeError(w, desktop.ErrUnavailable)
		return false
	}
	return true
}

// DesktopScreenshotDir opens a directory picker and stores the choice as
// the screenshot directory.
func (a *API) DesktopScreenshotDir(w http.ResponseWriter, r *http.Request) {
	if !a.desktopReady(w) {
		return
	}
	dir, ok, err := a.desktop.ChooseScreenshotDir(r.Context())
	writeResult(w, http.StatusOK, pathResult{Path: dir, Cancelled: !ok}, err)
}

// DesktopCapture saves the card's on-screen region as PNG.
func (a *API) DesktopCapture(w http.ResponseWriter, r *http.Request) {
	if !a.desktopReady(w) {
		return
	}
	var b desktop.Bounds
	if !decodeJSON(w, r, &b) {
		return
	}
	if b.Empty() {
		writeBadRequest(w, "Capture region must have a positive width and height.")
		return
	}
	path, err := a.desktop.CaptureCard(r.Context(), chi.URLParam(r, "id"), b)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, pathResult{Path: path})
}

// DesktopImportImages opens a file picker and attaches the chosen images
// to the card.
func (a *API) DesktopImportImages(w http.ResponseWriter, r *http.Request) {
	if !a.desktopReady(w) {
		return
	}
	c, err := a.desktop.ImportImages(r.Context(), chi.URLParam(r, "id"))
	switch {
	case c == nil && err == nil:
		writeJSON(w, http.StatusOK, pathResult{Cancelled: true})
	case c != nil:
		// Some files may have failed; the card still changed.
		if err != nil && !store.IsPersistError(err) {
			err = nil
		}
		writeResult(w, http.StatusOK, c, err)
	default:
		writeError(w, err)
	}
}

type saveImage struct {
	Path string `json:"path"`
}

// DesktopSaveImage copies one of the card's images to a location chosen
// in a save dialog.
func (a *API) DesktopSaveImage(w http.ResponseWriter, r *http.Request) {
	if !a.desktopReady(w) {
		return
	}
	var s saveImage
	if !decodeJSON(w, r, &s) {
		return
	}
	dst, ok, err := a.desktop.SaveImageAs(r.Context(), chi.URLParam(r, "id"), s.Path)
	writeResult(w, http.StatusOK, pathResult{Path: dst, Cancelled: !ok}, err)
}

// DesktopExportBackup writes a backup to a location chosen in a save dialog.
func (a *API) DesktopExportBackup(w http.ResponseWriter, r *http.Request) {
	if !a.desktopReady(w) {
		return
	}
	path, ok, err := a.desktop.ExportBackup(r.Context())
	writeResult(w, http.StatusOK, pathResult{Path: path, Cancelled: !ok}, err)
}

// DesktopImportBackup replaces the store with a backup chosen in a file
// dialog.
func (a *API) DesktopImportBackup(w http.ResponseWriter, r *http.Request) {
	if !a.desktopReady(w) {
		return
	}
	ok, err := a.desktop.ImportBackup(r.Context())
	writeResult(w, http.StatusOK, pathResult{Cancelled: !ok}, err)
}

type openURL struct {
	URL string `json:"url"`
}

// DesktopOpenURL opens an http(s) link in the default browser.
func (a *API) DesktopOpenURL(w http.ResponseWriter, r *http.Request) {
	if !a.desktopReady(w) {
		return
	}
	var u openURL
	if !decodeJSON(w, r, &u) {
		return
	}
	if err := a.desktop.OpenURL(u.URL); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DesktopRevealData shows the data directory in the file manager.
func (a *API) DesktopRevealData(w http.ResponseWriter, r *http.Request) {
	if !a.desktopReady(w) {
		return
	}
	if err := a.desktop.RevealDataDir(); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
