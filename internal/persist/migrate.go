// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package persist

import (
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"promptcard/internal/models"
)

// Migrate repairs a decoded document in place so it satisfies the store's
// invariants. It runs on every load and import:
//
//   - system folders exist, are roots and are not custom
//   - parents point at existing folders and never form a cycle
//   - children lists mirror the parent links exactly
//   - sibling order values are unique
//   - every card has a unique id, a valid type, a single cover image and
//     a category that names an existing folder
//   - custom tag lists have no blanks or duplicates
func Migrate(doc *models.Document) {
	if doc.Version == "" {
		doc.Version = models.DocumentVersion
	}

	migrateFolders(doc)
	index := make(map[string]bool, len(doc.Folders))
	for _, f := range doc.Folders {
		index[f.ID] = true
	}

	migrateCards(doc, index)

	if !index[doc.Settings.DefaultCategory] {
		doc.Settings.DefaultCategory = models.FolderUncategorized
	}

	doc.CustomTags.Models = dedupe(doc.CustomTags.Models)
	doc.CustomTags.Platforms = dedupe(doc.CustomTags.Platforms)
	for name := range doc.CustomTags.PlatformURLs {
		if !contains(doc.CustomTags.Platforms, name) {
			delete(doc.CustomTags.PlatformURLs, name)
		}
	}
}

func migrateFolders(doc *models.Document) {
	folders := make([]models.Folder, 0, len(doc.Folders)+6)
	byID := make(map[string]int, len(doc.Folders))

	for _, f := range doc.Folders {
		f.ID = strings.TrimSpace(f.ID)
		if f.ID == "" {
			continue
		}
		if _, dup := byID[f.ID]; dup {
			slog.Warn("migrate: dropping duplicate folder", "id", f.ID)
			continue
		}
		if models.IsSystemFolder(f.ID) {
			f.IsCustom = false
			f.Parent = nil
		} else {
			f.IsCustom = true
		}
		if f.Icon == "" {
			f.Icon = models.DefaultFolderIcon
		}
		byID[f.ID] = len(folders)
		folders = append(folders, f)
	}

	for _, sys := range models.SystemFolders() {
		if _, ok := byID[sys.ID]; !ok {
			byID[sys.ID] = len(folders)
			folders = append(folders, sys)
		}
	}

	// Dangling or self parents become roots.
	for i := range folders {
		p := folders[i].ParentID()
		if p == "" {
			folders[i].Parent = nil
			continue
		}
		if _, ok := byID[p]; !ok || p == folders[i].ID {
			folders[i].Parent = nil
		}
	}

	// Break cycles: walk up from every folder and cut the link that closes
	// a loop.
	for i := range folders {
		seen := map[string]bool{folders[i].ID: true}
		cur := i
		for folders[cur].Parent != nil {
			next := byID[*folders[cur].Parent]
			if seen[folders[next].ID] {
				slog.Warn("migrate: breaking folder cycle", "id", folders[cur].ID)
				folders[cur].Parent = nil
				break
			}
			seen[folders[next].ID] = true
			cur = next
		}
	}

	// Rebuild children from parent links, keeping the stored order where
	// it is still valid.
	kids := make(map[string][]string, len(folders))
	for _, f := range folders {
		if p := f.ParentID(); p != "" {
			kids[p] = append(kids[p], f.ID)
		}
	}
	for i := range folders {
		actual := kids[folders[i].ID]
		ordered := make([]string, 0, len(actual))
		for _, c := range folders[i].Children {
			if contains(actual, c) && !contains(ordered, c) {
				ordered = append(ordered, c)
			}
		}
		for _, c := range actual {
			if !contains(ordered, c) {
				ordered = append(ordered, c)
			}
		}
		folders[i].Children = ordered
	}

	// Unique order among siblings.
	type siblingState struct {
		seen map[int]bool
		max  int
	}
	groups := make(map[string]*siblingState)
	for _, f := range folders {
		g, ok := groups[f.ParentID()]
		if !ok {
			g = &siblingState{seen: map[int]bool{}, max: f.Order}
			groups[f.ParentID()] = g
		}
		if f.Order > g.max {
			g.max = f.Order
		}
	}
	for i := range folders {
		g := groups[folders[i].ParentID()]
		if g.seen[folders[i].Order] {
			g.max++
			folders[i].Order = g.max
		}
		g.seen[folders[i].Order] = true
	}

	doc.Folders = folders
}

func migrateCards(doc *models.Document, folders map[string]bool) {
	if doc.Cards == nil {
		doc.Cards = []models.Card{}
	}
	seen := make(map[string]bool, len(doc.Cards))
	for i := range doc.Cards {
		c := &doc.Cards[i]
		if c.ID == "" || seen[c.ID] {
			old := c.ID
			c.ID = uuid.NewString()
			slog.Warn("migrate: reassigned card id", "old", old, "new", c.ID)
		}
		seen[c.ID] = true

		if !c.Type.Valid() {
			if len(c.Images) > 0 {
				c.Type = models.CardTypeImage
			} else {
				c.Type = models.CardTypeText
			}
		}
		if !folders[c.Category] {
			c.Category = models.FolderUncategorized
		}
		c.Normalize()
	}
}

func dedupe(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" || contains(out, s) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
