// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package persist owns the on-disk layout of the data directory: a single
// JSON document holding every card, folder, custom tag and setting.
// The document is always written whole; there is no partial update.
package persist

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"promptcard/internal/models"
)

// FileName is the name of the data document inside the data directory.
const FileName = "cards.json"

// ErrMalformed is returned (wrapped) by Load when the document exists but
// can't be parsed. Load still returns a usable default document with it.
var ErrMalformed = errors.New("malformed document")

// Gateway reads and writes the data document of one data directory.
// It assumes a single owning process and takes no file locks.
type Gateway struct {
	dir string
	now func() time.Time
}

// New returns a Gateway for the given data directory.
func New(dir string) *Gateway {
	return &Gateway{dir: dir, now: time.Now}
}

// Dir returns the data directory.
func (g *Gateway) Dir() string {
	return g.dir
}

// Path returns the full path of the data document.
func (g *Gateway) Path() string {
	return filepath.Join(g.dir, FileName)
}

// Load reads the data document.
//
//   - If the file doesn't exist, defaults are created and saved. A failed
//     initial save is returned as an error alongside the defaults.
//   - If the file can't be parsed, defaults are returned together with an
//     error wrapping ErrMalformed. The broken file is copied aside for
//     manual recovery and never modified.
//   - Any other read error returns a nil document.
func (g *Gateway) Load() (*models.Document, error) {
	data, err := os.ReadFile(g.Path())
	if errors.Is(err, fs.ErrNotExist) {
		doc := g.defaults()
		if err := g.Save(doc); err != nil {
			return doc, err
		}
		slog.Info("data document initialised", "path", g.Path())
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("persist: read %s: %w", g.Path(), err)
	}

	doc, err := Decode(data)
	if err != nil {
		if backup, berr := g.backupMalformed(data); berr != nil {
			slog.Error("failed to back up malformed document", "path", g.Path(), "error", berr)
		} else {
			slog.Warn("malformed document copied aside", "backup", backup)
		}
		return g.defaults(), fmt.Errorf("persist: %s: %w: %v", g.Path(), ErrMalformed, err)
	}

	doc.Settings.DataDirectory = g.dir
	return doc, nil
}

// Save stamps the document with the current version and time and replaces
// the file on disk. The new content is written to a temporary file in the
// same directory first, then renamed over the old one.
func (g *Gateway) Save(doc *models.Document) error {
	doc.Version = models.DocumentVersion
	doc.LastModified = g.now().UTC()

	data, err := Encode(doc)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(g.dir, FileName, data); err != nil {
		return fmt.Errorf("persist: save %s: %w", g.Path(), err)
	}
	return nil
}

// Encode serialises a document as indented JSON.
func Encode(doc *models.Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("persist: encode: %w", err)
	}
	return data, nil
}

// Decode parses a document and migrates it to the current layout.
func Decode(data []byte) (*models.Document, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New("empty document")
	}
	if bytes.Equal(trimmed, []byte("null")) {
		return nil, errors.New("document is null")
	}
	var doc models.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	Migrate(&doc)
	return &doc, nil
}

func (g *Gateway) defaults() *models.Document {
	doc := models.NewDocument()
	doc.Settings.DataDirectory = g.dir
	return doc
}

// backupMalformed copies unreadable content next to the document so a
// later save doesn't destroy it.
func (g *Gateway) backupMalformed(data []byte) (string, error) {
	name := fmt.Sprintf("%s.malformed-%s", FileName, g.now().UTC().Format("20060102T150405Z"))
	if err := writeFileAtomic(g.dir, name, data); err != nil {
		return "", err
	}
	return filepath.Join(g.dir, name), nil
}

// writeFileAtomic writes data to dir/name through a temp file and rename.
func writeFileAtomic(dir, name string, data []byte) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+name+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, filepath.Join(dir, name))
}
