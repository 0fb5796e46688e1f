// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// System folder IDs. These folders ship with the application and can't be
// renamed, moved or deleted.
const (
	FolderUncategorized = "uncategorized"
	FolderAIChat        = "ai-chat"
	FolderAIArt         = "ai-art"
	FolderAIVideo       = "ai-video"
	FolderAICoding      = "ai-coding"
	FolderAIAgent       = "ai-agent"
)

// DefaultFolderIcon is used for custom folders created without an icon.
const DefaultFolderIcon = "fas fa-folder"

// Folder is a hierarchical category container for cards.
type Folder struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Icon     string   `json:"icon"`
	Parent   *string  `json:"parent"`
	Children []string `json:"children"`
	Order    int      `json:"order"`
	IsCustom bool     `json:"isCustom"`
}

// ParentID returns the parent id, or "" for a root folder.
func (f *Folder) ParentID() string {
	if f.Parent == nil {
		return ""
	}
	return *f.Parent
}

// Clone returns a deep copy of the folder.
func (f *Folder) Clone() Folder {
	out := *f
	if f.Parent != nil {
		p := *f.Parent
		out.Parent = &p
	}
	out.Children = append([]string{}, f.Children...)
	return out
}

// SystemFolders returns a fresh copy of the six built-in root folders.
func SystemFolders() []Folder {
	return []Folder{
		{ID: FolderUncategorized, Name: "Uncategorized", Icon: "fas fa-inbox", Order: 0},
		{ID: FolderAIChat, Name: "AI Chat", Icon: "fas fa-comments", Order: 1},
		{ID: FolderAIArt, Name: "AI Art", Icon: "fas fa-palette", Order: 2},
		{ID: FolderAIVideo, Name: "AI Video", Icon: "fas fa-video", Order: 3},
		{ID: FolderAICoding, Name: "AI Coding", Icon: "fas fa-code", Order: 4},
		{ID: FolderAIAgent, Name: "Agents", Icon: "fas fa-robot", Order: 5},
	}
}

// IsSystemFolder reports whether id names one of the built-in folders.
func IsSystemFolder(id string) bool {
	switch id {
	case FolderUncategorized, FolderAIChat, FolderAIArt, FolderAIVideo, FolderAICoding, FolderAIAgent:
		return true
	default:
		return false
	}
}

// FolderDraft is the input for creating a custom folder.
type FolderDraft struct {
	Name   string  `json:"name"`
	Icon   string  `json:"icon"`
	Parent *string `json:"parent"`
}

// FolderNode is a folder placed in the display tree.
type FolderNode struct {
	Folder
	Depth     int          `json:"depth"`
	CardCount int          `json:"cardCount"`
	Nodes     []FolderNode `json:"nodes,omitempty"`
}
