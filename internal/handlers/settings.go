// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"promptcard/internal/desktop"
	"promptcard/internal/persist"
)

// SettingsGet returns the current settings.
func (a *API) SettingsGet(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.store.Settings())
}

type settingsPatch struct {
	ScreenshotPath  *string `json:"screenshotPath"`
	DefaultCategory *string `json:"defaultCategory"`
}

// SettingsUpdate changes the screenshot directory and/or the default
// category. Fields are applied in that order; the first failure stops.
func (a *API) SettingsUpdate(w http.ResponseWriter, r *http.Request) {
	var p settingsPatch
	if !decodeJSON(w, r, &p) {
		return
	}
	if p.ScreenshotPath != nil {
		if err := a.store.SetScreenshotPath(*p.ScreenshotPath); err != nil {
			writeResult(w, http.StatusOK, a.store.Settings(), err)
			return
		}
	}
	if p.DefaultCategory != nil {
		if err := a.store.SetDefaultCategory(*p.DefaultCategory); err != nil {
			writeResult(w, http.StatusOK, a.store.Settings(), err)
			return
		}
	}
	writeJSON(w, http.StatusOK, a.store.Settings())
}

// Stats returns counts for the settings screen.
func (a *API) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.store.Stats())
}

// SnapshotExport downloads the whole document as a backup file.
func (a *API) SnapshotExport(w http.ResponseWriter, r *http.Request) {
	data, err := persist.Encode(a.store.ExportSnapshot())
	if err != nil {
		writeError(w, err)
		return
	}
	name := desktop.BackupName(time.Now())
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// SnapshotImport replaces the whole store with the posted document.
// Nothing is merged.
func (a *API) SnapshotImport(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxSnapshotBody))
	if err != nil {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorBody{Error: "Snapshot is too large."})
		return
	}
	err = a.store.ImportSnapshot(raw)
	writeResult(w, http.StatusOK, a.store.Stats(), err)
}

// StoreClear resets the store to its initial state. Settings that point
// at the local machine are kept.
func (a *API) StoreClear(w http.ResponseWriter, r *http.Request) {
	err := a.store.Clear()
	writeResult(w, http.StatusOK, a.store.Stats(), err)
}
