// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"

	"promptcard/internal/imaging"
	"promptcard/internal/markdown"
	"promptcard/internal/models"
	"promptcard/internal/query"
	"promptcard/internal/store"
)

// maxUploadSize caps a multipart image upload request.
const maxUploadSize = 4 * imaging.MaxFileSize

// CardsList returns the cards matching the filter given in the query
// string (category, q, models, platforms, sort, order).
func (a *API) CardsList(w http.ResponseWriter, r *http.Request) {
	f := query.ParseFilter(r.URL.Query())
	cards := a.store.FilteredCards(f)
	if cards == nil {
		cards = []models.Card{}
	}
	writeJSON(w, http.StatusOK, cards)
}

// CardGet returns a single card.
func (a *API) CardGet(w http.ResponseWriter, r *http.Request) {
	c, ok := a.store.Card(chi.URLParam(r, "id"))
	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "Not Found"})
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// CardPreview renders the card's prompt text as HTML.
func (a *API) CardPreview(w http.ResponseWriter, r *http.Request) {
	c, ok := a.store.Card(chi.URLParam(r, "id"))
	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "Not Found"})
		return
	}
	out, err := markdown.ToHTML(c.Description)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"html": out})
}

// CardCreate adds a card from a draft. An empty category falls back to
// the default category.
func (a *API) CardCreate(w http.ResponseWriter, r *http.Request) {
	var d models.CardDraft
	if !decodeJSON(w, r, &d) {
		return
	}
	c, err := a.store.AddCard(d)
	writeResult(w, http.StatusCreated, c, err)
}

// CardUpdate applies a partial update.
func (a *API) CardUpdate(w http.ResponseWriter, r *http.Request) {
	var p models.CardPatch
	if !decodeJSON(w, r, &p) {
		return
	}
	c, err := a.store.UpdateCard(chi.URLParam(r, "id"), p)
	writeResult(w, http.StatusOK, c, err)
}

// CardDelete removes a card and the image files imported for it.
func (a *API) CardDelete(w http.ResponseWriter, r *http.Request) {
	c, err := a.store.DeleteCard(chi.URLParam(r, "id"))
	if c == nil {
		writeError(w, err)
		return
	}
	a.removeImageFiles(c.Images...)
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CardToggleFavorite flips the favorite flag and returns the new value.
func (a *API) CardToggleFavorite(w http.ResponseWriter, r *http.Request) {
	fav, err := a.store.ToggleFavorite(chi.URLParam(r, "id"))
	writeResult(w, http.StatusOK, map[string]bool{"favorite": fav}, err)
}

// CardImagesUpload attaches images sent as multipart "file" parts. Parts
// that are not images are skipped; the request fails only when none could
// be imported.
func (a *API) CardImagesUpload(w http.ResponseWriter, r *http.Request) {
	if a.images == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorBody{Error: "Image storage is not configured."})
		return
	}
	id := chi.URLParam(r, "id")
	if _, ok := a.store.Card(id); !ok {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "Not Found"})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+1024)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorBody{Error: "Upload too large or not multipart."})
		return
	}
	defer r.MultipartForm.RemoveAll()

	headers := r.MultipartForm.File["file"]
	if len(headers) == 0 {
		writeBadRequest(w, "No file provided.")
		return
	}

	var (
		images  []models.Image
		lastErr error
	)
	for _, h := range headers {
		img, err := a.importPart(h)
		if err != nil {
			slog.Warn("image upload rejected", "card", id, "file", h.Filename, "error", err)
			lastErr = err
			continue
		}
		images = append(images, img)
	}
	if len(images) == 0 {
		writeError(w, lastErr)
		return
	}

	c, err := a.store.AddImages(id, images...)
	if err != nil && c == nil {
		a.removeImageFiles(images...)
	}
	writeResult(w, http.StatusCreated, c, err)
}

func (a *API) importPart(h *multipart.FileHeader) (models.Image, error) {
	f, err := h.Open()
	if err != nil {
		return models.Image{}, err
	}
	defer f.Close()
	return a.images.ImportReader(h.Filename, f)
}

type imageRef struct {
	Path string `json:"path"`
}

// CardSetCover marks one of the card's images as the cover.
func (a *API) CardSetCover(w http.ResponseWriter, r *http.Request) {
	var ref imageRef
	if !decodeJSON(w, r, &ref) {
		return
	}
	id := chi.URLParam(r, "id")
	err := a.store.SetCoverImage(id, ref.Path)
	c, _ := a.store.Card(id)
	writeResult(w, http.StatusOK, c, err)
}

// CardImageRemove detaches the image given by the "path" query parameter
// and deletes its files. The next image becomes the cover if needed.
func (a *API) CardImageRemove(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		writeBadRequest(w, "Missing image path.")
		return
	}
	id := chi.URLParam(r, "id")
	img, err := a.store.RemoveImage(id, path)
	if err != nil && !store.IsPersistError(err) {
		writeError(w, err)
		return
	}
	a.removeImageFiles(img)
	c, _ := a.store.Card(id)
	writeResult(w, http.StatusOK, c, err)
}

func (a *API) removeImageFiles(images ...models.Image) {
	if a.images == nil {
		return
	}
	for _, img := range images {
		if err := a.images.Remove(img); err != nil {
			slog.Warn("failed to remove image files", "path", img.Path, "error", err)
		}
	}
}
