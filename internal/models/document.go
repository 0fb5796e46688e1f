// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// DocumentVersion is written into every saved document.
const DocumentVersion = "1.0.0"

// Settings is process-wide configuration persisted with the document.
type Settings struct {
	DataDirectory   string `json:"dataDirectory"`
	ScreenshotPath  string `json:"screenshotPath"`
	DefaultCategory string `json:"defaultCategory"`
}

// Document is the full persisted state. The same shape is used for
// backup export and restore.
type Document struct {
	Cards        []Card     `json:"cards"`
	Folders      []Folder   `json:"folders"`
	CustomTags   CustomTags `json:"customTags"`
	Settings     Settings   `json:"settings"`
	Version      string     `json:"version"`
	LastModified time.Time  `json:"lastModified"`
}

// NewDocument returns the state of a first run: no cards, the system
// folders and default settings.
func NewDocument() *Document {
	return &Document{
		Cards:      []Card{},
		Folders:    SystemFolders(),
		CustomTags: CustomTags{Models: []string{}, Platforms: []string{}},
		Settings:   Settings{DefaultCategory: FolderUncategorized},
		Version:    DocumentVersion,
	}
}
