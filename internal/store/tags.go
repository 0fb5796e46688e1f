// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"slices"
	"strings"

	"promptcard/internal/models"
)

// AddCustomTag registers a user tag. Adding a name that already exists is
// a no-op. A platform added with a URL also joins the preset platforms.
func (s *Store) AddCustomTag(kind models.TagKind, name, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !kind.Valid() {
		return invalid("kind", CodeUnknownKind)
	}
	name, err := cleanName("name", name, maxTagLen)
	if err != nil {
		return err
	}
	url = strings.TrimSpace(url)

	changed := false
	switch kind {
	case models.TagModels:
		if !slices.Contains(s.customTags.Models, name) {
			s.customTags.Models = append(s.customTags.Models, name)
			changed = true
		}
	case models.TagPlatforms:
		if !slices.Contains(s.customTags.Platforms, name) {
			s.customTags.Platforms = append(s.customTags.Platforms, name)
			changed = true
			if url != "" && !s.presets.HasPlatform(name) {
				if s.customTags.PlatformURLs == nil {
					s.customTags.PlatformURLs = map[string]string{}
				}
				s.customTags.PlatformURLs[name] = url
			}
		}
	}
	if !changed {
		return nil
	}
	return s.commitLocked(EntityTag, ActionCreated, string(kind)+":"+name)
}

// RemoveCustomTag drops a user tag. Cards keep the tag; only the
// registered vocabulary changes. Removing an unknown name is a no-op.
func (s *Store) RemoveCustomTag(kind models.TagKind, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !kind.Valid() {
		return invalid("kind", CodeUnknownKind)
	}
	name = strings.TrimSpace(name)

	var list *[]string
	if kind == models.TagModels {
		list = &s.customTags.Models
	} else {
		list = &s.customTags.Platforms
	}
	n := len(*list)
	*list = slices.DeleteFunc(*list, func(t string) bool { return t == name })
	_, hadURL := s.customTags.PlatformURLs[name]
	if kind == models.TagPlatforms {
		delete(s.customTags.PlatformURLs, name)
	}
	if len(*list) == n && !(kind == models.TagPlatforms && hadURL) {
		return nil
	}
	return s.commitLocked(EntityTag, ActionDeleted, string(kind)+":"+name)
}

// CustomTags returns a copy of the user tag vocabulary.
func (s *Store) CustomTags() models.CustomTags {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.customTags.Clone()
}

// ModelTags lists every model tag known from the presets, the custom
// vocabulary or any card, with the number of cards using it.
func (s *Store) ModelTags() []models.TagCount {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := slices.Clone(s.presets.Models)
	names = appendMissing(names, s.customTags.Models...)
	for _, c := range s.cards {
		names = appendMissing(names, c.Tags.Models...)
	}

	out := make([]models.TagCount, 0, len(names))
	for _, n := range names {
		tc := models.TagCount{
			Name:     n,
			IsPreset: s.presets.HasModel(n),
			IsCustom: slices.Contains(s.customTags.Models, n),
		}
		for _, c := range s.cards {
			if c.Tags.HasModel(n) {
				tc.Count++
			}
		}
		out = append(out, tc)
	}
	return out
}

// PlatformTags lists every platform tag known from the preset platforms,
// the custom vocabulary or any card, with the number of cards using it.
func (s *Store) PlatformTags() []models.TagCount {
	s.mu.RLock()
	defer s.mu.RUnlock()

	preset := s.presetPlatformsLocked()
	names := make([]string, 0, len(preset))
	for _, p := range preset {
		names = appendMissing(names, p.Name)
	}
	presetCount := len(names)
	names = appendMissing(names, s.customTags.Platforms...)
	for _, c := range s.cards {
		for _, w := range c.Tags.Websites {
			names = appendMissing(names, w.Name)
		}
	}

	out := make([]models.TagCount, 0, len(names))
	for i, n := range names {
		tc := models.TagCount{
			Name:     n,
			IsPreset: i < presetCount,
			IsCustom: slices.Contains(s.customTags.Platforms, n),
		}
		for _, c := range s.cards {
			if c.Tags.HasWebsite(n) {
				tc.Count++
			}
		}
		out = append(out, tc)
	}
	return out
}

// PresetPlatforms returns the built-in platforms followed by custom
// platforms registered with a URL.
func (s *Store) PresetPlatforms() []models.Platform {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.presetPlatformsLocked()
}

func (s *Store) presetPlatformsLocked() []models.Platform {
	out := slices.Clone(s.presets.Platforms)
	for _, name := range s.customTags.Platforms {
		if url, ok := s.customTags.PlatformURLs[name]; ok {
			out = append(out, models.Platform{Name: name, URL: url})
		}
	}
	return out
}

func appendMissing(list []string, names ...string) []string {
	for _, n := range names {
		if n != "" && !slices.Contains(list, n) {
			list = append(list, n)
		}
	}
	return list
}
