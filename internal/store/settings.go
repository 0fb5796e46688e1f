// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"strings"

	"promptcard/internal/models"
)

// Settings returns the current settings.
func (s *Store) Settings() models.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// SetScreenshotPath sets the directory card captures are written to.
func (s *Store) SetScreenshotPath(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path = strings.TrimSpace(path)
	if path == "" {
		return invalid("screenshotPath", CodeRequired)
	}
	s.settings.ScreenshotPath = path
	return s.commitLocked(EntitySettings, ActionUpdated, "screenshotPath")
}

// SetDefaultCategory sets the folder new cards land in when created
// without a category.
func (s *Store) SetDefaultCategory(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.folders[id]; !ok {
		return invalid("defaultCategory", CodeUnknownFolder)
	}
	s.settings.DefaultCategory = id
	return s.commitLocked(EntitySettings, ActionUpdated, "defaultCategory")
}
