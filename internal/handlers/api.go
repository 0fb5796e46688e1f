// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers of the PromptCard JSON API.
// Handlers are grouped by resource (cards, folders, tags, settings,
// snapshots, desktop actions) and receive their dependencies through the
// API struct.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"promptcard/internal/desktop"
	"promptcard/internal/imaging"
	"promptcard/internal/store"
)

// API groups all JSON handlers and their dependencies.
type API struct {
	store   *store.Store
	desktop *desktop.Service
	images  *imaging.Importer
}

// NewAPI creates the handler group. dsk and images may be nil, in which
// case the endpoints that need them answer 503.
func NewAPI(st *store.Store, dsk *desktop.Service, images *imaging.Importer) *API {
	return &API{store: st, desktop: dsk, images: images}
}

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
	Code  string `json:"code,omitempty"`
}

// persistFailure is returned when a mutation was applied but could not be
// written to disk. Result carries the committed value.
type persistFailure struct {
	Error  string `json:"error"`
	Result any    `json:"result,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response failed", "error", err)
	}
}

// writeResult writes v with status, or maps err. A persistence failure
// still carries v since the in-memory change went through.
func writeResult(w http.ResponseWriter, status int, v any, err error) {
	switch {
	case err == nil:
		writeJSON(w, status, v)
	case store.IsPersistError(err):
		writeJSON(w, http.StatusInternalServerError, persistFailure{Error: err.Error(), Result: v})
	default:
		writeError(w, err)
	}
}

// writeError maps domain errors to HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	var ve *store.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Error: ve.Error(), Field: ve.Field, Code: ve.Code})
	case errors.Is(err, store.ErrNotFound), errors.Is(err, desktop.ErrCardNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: "Not Found"})
	case errors.Is(err, store.ErrNotPermitted):
		writeJSON(w, http.StatusForbidden, errorBody{Error: err.Error()})
	case errors.Is(err, desktop.ErrUnavailable):
		writeJSON(w, http.StatusServiceUnavailable, errorBody{Error: err.Error()})
	case errors.Is(err, desktop.ErrNoScreenshotDir):
		writeJSON(w, http.StatusConflict, errorBody{Error: err.Error()})
	case errors.Is(err, desktop.ErrBadURL):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
	case errors.Is(err, imaging.ErrUnsupported):
		writeJSON(w, http.StatusUnsupportedMediaType, errorBody{Error: err.Error()})
	case errors.Is(err, imaging.ErrTooLarge):
		writeJSON(w, http.StatusRequestEntityTooLarge, errorBody{Error: err.Error()})
	case store.IsPersistError(err):
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: err.Error()})
	default:
		slog.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "Internal Server Error"})
	}
}

func writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorBody{Error: msg})
}
