// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"slices"
	"strings"

	"promptcard/internal/models"
)

// FolderDeletion describes the effect of DeleteFolder.
type FolderDeletion struct {
	Removed         []string `json:"removed"`
	ReassignedCards int      `json:"reassignedCards"`
}

// Folders returns every folder in display order: by parent, then by order.
func (s *Store) Folders() []models.Folder {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Folder, 0, len(s.folderSeq))
	for _, id := range s.folderSeq {
		out = append(out, s.folders[id].Clone())
	}
	slices.SortStableFunc(out, func(a, b models.Folder) int {
		if c := strings.Compare(a.ParentID(), b.ParentID()); c != 0 {
			return c
		}
		return a.Order - b.Order
	})
	return out
}

// Folder returns a copy of the folder with the given id.
func (s *Store) Folder(id string) (models.Folder, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.folders[id]
	if !ok {
		return models.Folder{}, false
	}
	return f.Clone(), true
}

// FolderTree returns the folders as a nested tree with card counts.
func (s *Store) FolderTree() []models.FolderNode {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int, len(s.folders))
	for _, c := range s.cards {
		counts[c.Category]++
	}
	return s.buildTreeLocked(s.rootsLocked(), 0, counts)
}

// FlatTree returns the folder tree flattened depth-first, with Depth set
// for indentation. Useful for folder pickers.
func (s *Store) FlatTree() []models.FolderNode {
	var result []models.FolderNode
	flattenTree(s.FolderTree(), &result)
	return result
}

// rootsLocked returns the root folder ids ordered by Order.
func (s *Store) rootsLocked() []string {
	var roots []string
	for _, id := range s.folderSeq {
		if s.folders[id].Parent == nil {
			roots = append(roots, id)
		}
	}
	s.sortByOrderLocked(roots)
	return roots
}

func (s *Store) sortByOrderLocked(ids []string) {
	slices.SortStableFunc(ids, func(a, b string) int {
		return s.folders[a].Order - s.folders[b].Order
	})
}

// buildTreeLocked recursively builds nodes for ids and their children.
func (s *Store) buildTreeLocked(ids []string, depth int, counts map[string]int) []models.FolderNode {
	var result []models.FolderNode
	for _, id := range ids {
		f := s.folders[id]
		kids := slices.Clone(f.Children)
		s.sortByOrderLocked(kids)

		node := models.FolderNode{
			Folder:    f.Clone(),
			Depth:     depth,
			CardCount: counts[id],
		}
		node.Nodes = s.buildTreeLocked(kids, depth+1, counts)
		result = append(result, node)
	}
	return result
}

// flattenTree walks a folder tree depth-first, appending to result.
func flattenTree(nodes []models.FolderNode, result *[]models.FolderNode) {
	for _, n := range nodes {
		children := n.Nodes
		n.Nodes = nil
		*result = append(*result, n)
		if len(children) > 0 {
			flattenTree(children, result)
		}
	}
}

// AddFolder creates a custom folder under d.Parent, or at the root when
// d.Parent is nil or empty.
func (s *Store) AddFolder(d models.FolderDraft) (*models.Folder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name, err := cleanName("name", d.Name, maxFolderNameLen)
	if err != nil {
		return nil, err
	}
	var parent *string
	if d.Parent != nil && *d.Parent != "" {
		if _, ok := s.folders[*d.Parent]; !ok {
			return nil, invalid("parent", CodeUnknownFolder)
		}
		p := *d.Parent
		parent = &p
	}
	icon := strings.TrimSpace(d.Icon)
	if icon == "" {
		icon = models.DefaultFolderIcon
	}

	f := &models.Folder{
		ID:       s.freshIDLocked(),
		Name:     name,
		Icon:     icon,
		Parent:   parent,
		Children: []string{},
		Order:    s.nextOrderLocked(parent),
		IsCustom: true,
	}
	s.folders[f.ID] = f
	s.folderSeq = append(s.folderSeq, f.ID)
	if parent != nil {
		p := s.folders[*parent]
		p.Children = append(p.Children, f.ID)
	}

	out := f.Clone()
	return &out, s.commitLocked(EntityFolder, ActionCreated, f.ID)
}

// nextOrderLocked returns max(sibling order)+1, or 1 without siblings.
func (s *Store) nextOrderLocked(parent *string) int {
	want := ""
	if parent != nil {
		want = *parent
	}
	found := false
	maxOrder := 0
	for _, f := range s.folders {
		if f.ParentID() != want {
			continue
		}
		if !found || f.Order > maxOrder {
			maxOrder = f.Order
			found = true
		}
	}
	if !found {
		return 1
	}
	return maxOrder + 1
}

// RenameFolder changes a custom folder's display name.
func (s *Store) RenameFolder(id, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.folders[id]
	if !ok {
		return ErrNotFound
	}
	if !f.IsCustom {
		return ErrNotPermitted
	}
	name, err := cleanName("name", name, maxFolderNameLen)
	if err != nil {
		return err
	}
	if f.Name == name {
		return nil
	}
	f.Name = name
	return s.commitLocked(EntityFolder, ActionUpdated, id)
}

// SetFolderIcon changes a custom folder's icon.
func (s *Store) SetFolderIcon(id, icon string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.folders[id]
	if !ok {
		return ErrNotFound
	}
	if !f.IsCustom {
		return ErrNotPermitted
	}
	icon = strings.TrimSpace(icon)
	if icon == "" {
		icon = models.DefaultFolderIcon
	}
	f.Icon = icon
	return s.commitLocked(EntityFolder, ActionUpdated, id)
}

// MoveFolder reparents a custom folder. A nil or empty parent moves it to
// the root. The folder is placed last among its new siblings.
func (s *Store) MoveFolder(id string, parent *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.folders[id]
	if !ok {
		return ErrNotFound
	}
	if !f.IsCustom {
		return ErrNotPermitted
	}

	target := ""
	if parent != nil {
		target = *parent
	}
	if target != "" {
		if _, ok := s.folders[target]; !ok {
			return invalid("parent", CodeUnknownFolder)
		}
		// Walk up from the target; meeting id means a cycle.
		for cur := target; cur != ""; cur = s.folders[cur].ParentID() {
			if cur == id {
				return invalid("parent", CodeCycle)
			}
		}
	}
	if f.ParentID() == target {
		return nil
	}

	if old := f.ParentID(); old != "" {
		p := s.folders[old]
		p.Children = slices.DeleteFunc(p.Children, func(c string) bool { return c == id })
	}
	if target == "" {
		f.Parent = nil
		f.Order = s.nextOrderLocked(nil)
	} else {
		f.Parent = nil // exclude f from its new siblings while computing order
		f.Order = s.nextOrderLocked(&target)
		t := target
		f.Parent = &t
		s.folders[target].Children = append(s.folders[target].Children, id)
	}
	return s.commitLocked(EntityFolder, ActionUpdated, id)
}

// DeleteFolder removes a custom folder and, recursively, every folder
// below it. Cards in any removed folder are moved to "uncategorized".
// The operation can't be undone.
func (s *Store) DeleteFolder(id string) (*FolderDeletion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.folders[id]
	if !ok {
		return nil, ErrNotFound
	}
	if !f.IsCustom {
		return nil, ErrNotPermitted
	}

	// Depth-first over an explicit stack; children are removed before
	// their parent.
	var order []string
	visited := map[string]bool{}
	stack := []string{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[cur] {
			continue
		}
		visited[cur] = true
		order = append(order, cur)
		for _, c := range s.folders[cur].Children {
			if _, ok := s.folders[c]; ok && !visited[c] {
				stack = append(stack, c)
			}
		}
	}
	slices.Reverse(order)

	res := &FolderDeletion{Removed: order}
	for _, c := range s.cards {
		if visited[c.Category] {
			c.Category = models.FolderUncategorized
			res.ReassignedCards++
		}
	}

	if p := f.ParentID(); p != "" {
		if parent, ok := s.folders[p]; ok {
			parent.Children = slices.DeleteFunc(parent.Children, func(c string) bool { return c == id })
		}
	}
	for _, rid := range order {
		delete(s.folders, rid)
	}
	s.folderSeq = slices.DeleteFunc(s.folderSeq, func(fid string) bool { return visited[fid] })

	if visited[s.settings.DefaultCategory] {
		s.settings.DefaultCategory = models.FolderUncategorized
	}
	return res, s.commitLocked(EntityFolder, ActionDeleted, id)
}
