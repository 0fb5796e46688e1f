// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"promptcard/internal/models"
)

// FoldersList returns every folder, ordered by parent then order.
func (a *API) FoldersList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.store.Folders())
}

// FoldersTree returns the folder forest with card counts. With ?flat=1
// the tree is flattened depth-first for indented list rendering.
func (a *API) FoldersTree(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("flat") != "" {
		writeJSON(w, http.StatusOK, a.store.FlatTree())
		return
	}
	writeJSON(w, http.StatusOK, a.store.FolderTree())
}

// FolderGet returns a single folder.
func (a *API) FolderGet(w http.ResponseWriter, r *http.Request) {
	f, ok := a.store.Folder(chi.URLParam(r, "id"))
	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "Not Found"})
		return
	}
	writeJSON(w, http.StatusOK, f)
}

// FolderCreate adds a custom folder, optionally under a parent.
func (a *API) FolderCreate(w http.ResponseWriter, r *http.Request) {
	var d models.FolderDraft
	if !decodeJSON(w, r, &d) {
		return
	}
	f, err := a.store.AddFolder(d)
	writeResult(w, http.StatusCreated, f, err)
}

// folderPatch is the body of FolderUpdate. Only present fields change.
type folderPatch struct {
	Name *string `json:"name"`
	Icon *string `json:"icon"`
}

// FolderUpdate renames a custom folder and/or changes its icon.
func (a *API) FolderUpdate(w http.ResponseWriter, r *http.Request) {
	var p folderPatch
	if !decodeJSON(w, r, &p) {
		return
	}
	if p.Name == nil && p.Icon == nil {
		writeBadRequest(w, "Nothing to update.")
		return
	}

	id := chi.URLParam(r, "id")
	if p.Name != nil {
		if err := a.store.RenameFolder(id, *p.Name); err != nil {
			f, _ := a.store.Folder(id)
			writeResult(w, http.StatusOK, f, err)
			return
		}
	}
	if p.Icon != nil {
		if err := a.store.SetFolderIcon(id, *p.Icon); err != nil {
			f, _ := a.store.Folder(id)
			writeResult(w, http.StatusOK, f, err)
			return
		}
	}
	f, _ := a.store.Folder(id)
	writeJSON(w, http.StatusOK, f)
}

type folderMove struct {
	Parent *string `json:"parent"`
}

// FolderMove reparents a custom folder. A null parent moves it to the root.
func (a *API) FolderMove(w http.ResponseWriter, r *http.Request) {
	var m folderMove
	if !decodeJSON(w, r, &m) {
		return
	}
	id := chi.URLParam(r, "id")
	err := a.store.MoveFolder(id, m.Parent)
	f, _ := a.store.Folder(id)
	writeResult(w, http.StatusOK, f, err)
}

// FolderDelete removes a custom folder and all of its descendants. Cards
// in the removed folders are moved to the uncategorized folder. This
// cannot be undone.
func (a *API) FolderDelete(w http.ResponseWriter, r *http.Request) {
	res, err := a.store.DeleteFolder(chi.URLParam(r, "id"))
	writeResult(w, http.StatusOK, res, err)
}
