// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler tests.
// Every test gets its own store in a temporary data directory.
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"promptcard/internal/desktop"
	"promptcard/internal/imaging"
	"promptcard/internal/models"
	"promptcard/internal/persist"
	"promptcard/internal/store"
)

// testEnv holds all dependencies for handler tests.
type testEnv struct {
	Dir    string
	Store  *store.Store
	Images *imaging.Importer
	API    *API
}

// newTestEnv creates a store backed by a temp dir and a headless desktop
// service.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	st, err := store.Open(persist.New(dir))
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	images := imaging.NewImporter(dir)
	svc := desktop.NewService(desktop.Deps{Store: st, Images: images})
	return &testEnv{Dir: dir, Store: st, Images: images, API: NewAPI(st, svc, images)}
}

// failingBackend accepts loads but fails every save.
type failingBackend struct{}

func (failingBackend) Load() (*models.Document, error) { return models.NewDocument(), nil }
func (failingBackend) Save(*models.Document) error      { return errors.New("disk full") }

// withChiURLParam adds a chi URL parameter to a request.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// jsonRequest builds a request with a JSON body and an optional {id}
// (or other) URL parameter given as key, value.
func jsonRequest(t *testing.T, method, target string, body any, param ...string) *http.Request {
	t.Helper()
	var rd io.Reader = http.NoBody
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		rd = bytes.NewReader(data)
	}
	r := httptest.NewRequest(method, target, rd)
	r.Header.Set("Content-Type", "application/json")
	if len(param) == 2 {
		r = withChiURLParam(r, param[0], param[1])
	}
	return r
}

// decodeBody decodes a recorder's JSON body into v.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status: got %d, want %d (body %s)", rec.Code, want, rec.Body.String())
	}
}

// createCard adds a card through the store directly.
func createCard(t *testing.T, env *testEnv, d models.CardDraft) models.Card {
	t.Helper()
	c, err := env.Store.AddCard(d)
	if err != nil {
		t.Fatalf("AddCard: %v", err)
	}
	return *c
}

// pngBytes encodes a solid w x h PNG.
func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 30, G: 144, B: 255, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}
