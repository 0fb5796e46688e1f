// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// TagKind selects one of the two tag vocabularies.
type TagKind string

const (
	TagModels    TagKind = "models"
	TagPlatforms TagKind = "platforms"
)

// Valid reports whether k is a known tag kind.
func (k TagKind) Valid() bool {
	return k == TagModels || k == TagPlatforms
}

// Platform is a platform tag with the URL it links to.
type Platform struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url"`
}

// CustomTags holds the tag names entered by the user that are not part of
// the preset lists. PlatformURLs remembers the link registered alongside a
// custom platform so it keeps showing among the preset platforms.
type CustomTags struct {
	Models       []string          `json:"models"`
	Platforms    []string          `json:"platforms"`
	PlatformURLs map[string]string `json:"platformUrls,omitempty"`
}

// Clone returns a deep copy.
func (t *CustomTags) Clone() CustomTags {
	out := CustomTags{
		Models:    append([]string{}, t.Models...),
		Platforms: append([]string{}, t.Platforms...),
	}
	if len(t.PlatformURLs) > 0 {
		out.PlatformURLs = make(map[string]string, len(t.PlatformURLs))
		for k, v := range t.PlatformURLs {
			out.PlatformURLs[k] = v
		}
	}
	return out
}

// TagCount is one row of a tag cloud.
type TagCount struct {
	Name     string `json:"name"`
	Count    int    `json:"count"`
	IsPreset bool   `json:"isPreset"`
	IsCustom bool   `json:"isCustom"`
}
