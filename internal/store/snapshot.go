// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"log/slog"

	"promptcard/internal/models"
	"promptcard/internal/persist"
)

// Stats summarises the store for the settings screen.
type Stats struct {
	Cards        int `json:"cards"`
	ImageCards   int `json:"imageCards"`
	Images       int `json:"images"`
	Favorites    int `json:"favorites"`
	Folders      int `json:"folders"`
	CustomModels int `json:"customModels"`
	CustomSites  int `json:"customPlatforms"`
	DocumentSize int `json:"documentSize"`

	// Byte totals pre-formatted for display.
	ImageBytes       int64  `json:"imageBytes"`
	ImageSize        string `json:"imageSize"`
	DocumentSizeText string `json:"documentSizeText"`
}

// ExportSnapshot returns a deep copy of the whole document.
func (s *Store) ExportSnapshot() *models.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc := s.snapshotLocked()
	doc.LastModified = s.now().UTC()
	return doc
}

// ImportSnapshot replaces the whole store with the document in raw.
// Nothing is merged. The data directory of the running store is kept.
func (s *Store) ImportSnapshot(raw []byte) error {
	doc, err := persist.Decode(raw)
	if err != nil {
		slog.Warn("rejected snapshot import", "error", err)
		return invalid("snapshot", CodeMalformed)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc.Settings.DataDirectory = s.settings.DataDirectory
	s.replaceLocked(doc)
	slog.Info("snapshot imported", "cards", len(s.cards), "folders", len(s.folders))
	return s.commitLocked(EntityStore, ActionReplaced, "")
}

// Clear removes every card, custom folder and custom tag. System folders
// and settings stay.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := models.NewDocument()
	doc.Settings.DataDirectory = s.settings.DataDirectory
	doc.Settings.ScreenshotPath = s.settings.ScreenshotPath
	if models.IsSystemFolder(s.settings.DefaultCategory) {
		doc.Settings.DefaultCategory = s.settings.DefaultCategory
	}
	s.replaceLocked(doc)
	return s.commitLocked(EntityStore, ActionReplaced, "")
}

// Stats counts the store's contents and the size of its encoded document.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Stats{
		Cards:        len(s.cards),
		Folders:      len(s.folders),
		CustomModels: len(s.customTags.Models),
		CustomSites:  len(s.customTags.Platforms),
	}
	for _, c := range s.cards {
		if c.Type == models.CardTypeImage {
			st.ImageCards++
		}
		if c.Favorite {
			st.Favorites++
		}
		st.Images += len(c.Images)
		for _, img := range c.Images {
			st.ImageBytes += img.Size
		}
	}
	if data, err := persist.Encode(s.snapshotLocked()); err == nil {
		st.DocumentSize = len(data)
	}
	st.ImageSize = models.HumanSize(st.ImageBytes)
	st.DocumentSizeText = models.HumanSize(int64(st.DocumentSize))
	return st
}
