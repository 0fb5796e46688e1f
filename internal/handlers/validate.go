package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"promptcard/internal/models"
)

// Request size limits.
const (
	maxJSONBody     = 1 << 20  // 1 MB for regular JSON requests
	maxSnapshotBody = 64 << 20 // 64 MB for a full document import
)

// decodeJSON reads a JSON body of at most maxJSONBody bytes into v. It
// writes a 400 and returns false on any decode problem.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		writeBadRequest(w, decodeMessage(err))
		return false
	}
	if dec.More() {
		writeBadRequest(w, "Request body must contain a single JSON value.")
		return false
	}
	return true
}

func decodeMessage(err error) string {
	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
		sizeErr   *http.MaxBytesError
	)
	switch {
	case errors.Is(err, io.EOF):
		return "Request body is empty."
	case errors.As(err, &syntaxErr):
		return fmt.Sprintf("Malformed JSON at offset %d.", syntaxErr.Offset)
	case errors.As(err, &typeErr):
		return fmt.Sprintf("Field %q has the wrong type.", typeErr.Field)
	case errors.As(err, &sizeErr):
		return "Request body is too large."
	default:
		return "Invalid request body: " + err.Error()
	}
}

// tagKindParam reads the {kind} URL parameter. It writes a 400 and
// returns false for anything but "models" or "platforms".
func tagKindParam(w http.ResponseWriter, r *http.Request) (models.TagKind, bool) {
	kind := models.TagKind(chi.URLParam(r, "kind"))
	if !kind.Valid() {
		writeBadRequest(w, `Tag kind must be "models" or "platforms".`)
		return "", false
	}
	return kind, true
}
