// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"promptcard/internal/models"
)

// tagsResponse lists both vocabularies with usage counts.
type tagsResponse struct {
	Models    []models.TagCount `json:"models"`
	Platforms []models.TagCount `json:"platforms"`
}

// TagsList returns the model and platform tags (presets, custom tags and
// tags found on cards) with the number of cards using each.
func (a *API) TagsList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, tagsResponse{
		Models:    a.store.ModelTags(),
		Platforms: a.store.PlatformTags(),
	})
}

// TagsCustom returns the user-defined tags only.
func (a *API) TagsCustom(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.store.CustomTags())
}

// TagsPlatforms returns the platforms that carry a link, presets first.
func (a *API) TagsPlatforms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.store.PresetPlatforms())
}

type customTag struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// TagAdd registers a custom tag of the {kind} vocabulary. Adding an
// existing tag is not an error.
func (a *API) TagAdd(w http.ResponseWriter, r *http.Request) {
	kind, ok := tagKindParam(w, r)
	if !ok {
		return
	}
	var t customTag
	if !decodeJSON(w, r, &t) {
		return
	}
	err := a.store.AddCustomTag(kind, t.Name, t.URL)
	writeResult(w, http.StatusOK, a.store.CustomTags(), err)
}

// TagRemove unregisters the custom tag given by the "name" query
// parameter. Cards keep the tag.
func (a *API) TagRemove(w http.ResponseWriter, r *http.Request) {
	kind, ok := tagKindParam(w, r)
	if !ok {
		return
	}
	name := r.URL.Query().Get("name")
	if name == "" {
		writeBadRequest(w, "Missing tag name.")
		return
	}
	err := a.store.RemoveCustomTag(kind, name)
	writeResult(w, http.StatusOK, a.store.CustomTags(), err)
}
